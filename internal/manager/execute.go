package manager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gopak/sigma2splunk/internal/logging"
	"github.com/gopak/sigma2splunk/internal/splunk"
)

// Execute runs query once, waits for the job to finish and reports up to
// maxResults rows. Cancelling ctx cancels the remote job too.
func (m *Manager) Execute(ctx context.Context, query string, maxResults int) (splunk.JobStatus, error) {
	if err := m.login(ctx); err != nil {
		return splunk.JobStatus{}, err
	}
	sid, err := m.svc.CreateJob(ctx, query)
	if err != nil {
		return splunk.JobStatus{}, err
	}
	logging.Info("Search job " + sid + " created. Waiting for results...")

	var st splunk.JobStatus
	for {
		st, err = m.svc.JobStatus(ctx, sid)
		if err != nil {
			if ctx.Err() != nil {
				m.cancelJob(ctx, sid)
				return st, ctx.Err()
			}
			return st, err
		}
		m.rep.OnJobProgress(st)
		if st.IsFailed {
			return st, fmt.Errorf("%w: job %s failed: %s", splunk.ErrExecution, sid, strings.Join(st.Messages, "; "))
		}
		if st.IsDone {
			break
		}
		select {
		case <-ctx.Done():
			m.cancelJob(ctx, sid)
			return st, ctx.Err()
		case <-time.After(m.pollInterval):
		}
	}
	logging.Info("Search completed.")

	res, err := m.svc.JobResults(ctx, sid, maxResults)
	if err != nil {
		return st, err
	}
	m.rep.OnResults(res)
	return st, nil
}

// cancelJob stops sid on the server after ctx is done.
func (m *Manager) cancelJob(ctx context.Context, sid string) {
	if err := m.svc.CancelJob(context.WithoutCancel(ctx), sid); err != nil {
		logging.Debug("cancel: " + err.Error())
	}
}
