package splunk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type JobStatus struct {
	SID           string
	DispatchState string
	IsDone        bool
	IsFailed      bool
	DoneProgress  float64
	ScanCount     int64
	EventCount    int64
	ResultCount   int64
	Messages      []string
}

// Results is one page of job output. Fields keeps splunkd's column order.
type Results struct {
	Fields []string
	Rows   []map[string]any
}

// CreateJob dispatches q as a normal (asynchronous) search job.
func (c *Client) CreateJob(ctx context.Context, q string) (string, error) {
	form := url.Values{}
	form.Set("search", SearchString(q))
	form.Set("exec_mode", "normal")
	var out struct {
		SID string `json:"sid"`
	}
	if err := c.do(ctx, http.MethodPost, c.ns()+"/search/jobs", form, &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecution, err)
	}
	if out.SID == "" {
		return "", fmt.Errorf("%w: no sid in response", ErrExecution)
	}
	return out.SID, nil
}

func (c *Client) jobPath(sid string) string {
	return c.ns() + "/search/jobs/" + url.PathEscape(sid)
}

func (c *Client) JobStatus(ctx context.Context, sid string) (JobStatus, error) {
	var out struct {
		Entry []struct {
			Content struct {
				DispatchState string    `json:"dispatchState"`
				IsDone        flexBool  `json:"isDone"`
				IsFailed      flexBool  `json:"isFailed"`
				DoneProgress  float64   `json:"doneProgress"`
				ScanCount     int64     `json:"scanCount"`
				EventCount    int64     `json:"eventCount"`
				ResultCount   int64     `json:"resultCount"`
				Messages      []message `json:"messages"`
			} `json:"content"`
		} `json:"entry"`
	}
	if err := c.do(ctx, http.MethodGet, c.jobPath(sid), nil, &out); err != nil {
		return JobStatus{}, fmt.Errorf("%w: job %s: %w", ErrExecution, sid, err)
	}
	if len(out.Entry) == 0 {
		return JobStatus{}, fmt.Errorf("%w: job %s: empty status", ErrExecution, sid)
	}
	ct := out.Entry[0].Content
	st := JobStatus{
		SID:           sid,
		DispatchState: ct.DispatchState,
		IsDone:        bool(ct.IsDone),
		IsFailed:      bool(ct.IsFailed) || ct.DispatchState == "FAILED",
		DoneProgress:  ct.DoneProgress,
		ScanCount:     ct.ScanCount,
		EventCount:    ct.EventCount,
		ResultCount:   ct.ResultCount,
	}
	for _, m := range ct.Messages {
		st.Messages = append(st.Messages, strings.TrimSpace(m.Type+" "+m.Text))
	}
	return st, nil
}

// JobResults fetches up to count rows; count <= 0 lets splunkd decide.
func (c *Client) JobResults(ctx context.Context, sid string, count int) (Results, error) {
	form := url.Values{}
	if count > 0 {
		form.Set("count", strconv.Itoa(count))
	}
	var out struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
		Results []map[string]any `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, c.jobPath(sid)+"/results", form, &out); err != nil {
		return Results{}, fmt.Errorf("%w: job %s: %w", ErrExecution, sid, err)
	}
	res := Results{Rows: out.Results}
	for _, f := range out.Fields {
		res.Fields = append(res.Fields, f.Name)
	}
	return res, nil
}

// CancelJob is used when the caller gives up on a running job.
func (c *Client) CancelJob(ctx context.Context, sid string) error {
	form := url.Values{}
	form.Set("action", "cancel")
	if err := c.do(ctx, http.MethodPost, c.jobPath(sid)+"/control", form, nil); err != nil {
		return fmt.Errorf("cancel job %s: %w", sid, err)
	}
	return nil
}
