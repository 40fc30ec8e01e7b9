package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gopak/sigma2splunk/internal/config"
	"github.com/gopak/sigma2splunk/internal/logging"
	"github.com/gopak/sigma2splunk/internal/rule"
	"github.com/gopak/sigma2splunk/internal/splunk"
)

const DefaultPollInterval = 2 * time.Second

type Converter interface {
	Convert(ctx context.Context, rulePath, pipeline string) (string, error)
}

// SearchService is the part of the splunkd API the manager drives.
type SearchService interface {
	Login(ctx context.Context) error
	GetSavedSearch(ctx context.Context, name string) (splunk.SavedSearch, error)
	ListSavedSearches(ctx context.Context) ([]splunk.SavedSearch, error)
	CreateSavedSearch(ctx context.Context, s splunk.SavedSearch) error
	UpdateSavedSearch(ctx context.Context, s splunk.SavedSearch) error
	DeleteSavedSearch(ctx context.Context, name string) error
	CreateJob(ctx context.Context, query string) (string, error)
	JobStatus(ctx context.Context, sid string) (splunk.JobStatus, error)
	JobResults(ctx context.Context, sid string, count int) (splunk.Results, error)
	CancelJob(ctx context.Context, sid string) error
}

type Manager struct {
	svc          SearchService
	conv         Converter
	rep          Reporter
	pollInterval time.Duration
	loggedIn     bool
}

// New wires the manager. svc may be nil for purely local work (Convert).
func New(svc SearchService, conv Converter, rep Reporter) *Manager {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Manager{svc: svc, conv: conv, rep: rep, pollInterval: DefaultPollInterval}
}

// SetPollInterval changes how often a running job is polled.
func (m *Manager) SetPollInterval(d time.Duration) { m.pollInterval = d }

// CreateResult describes a finished create run. ExecErr is set when the
// one-shot execution failed after the saved search was already stored.
type CreateResult struct {
	Rule    rule.Rule
	Query   string
	Created bool
	Job     splunk.JobStatus
	ExecErr error
}

// Convert loads and checks the rule, then turns it into a Splunk query.
func (m *Manager) Convert(ctx context.Context, rulePath, pipeline string) (rule.Rule, string, error) {
	r, err := rule.Load(rulePath)
	if err != nil {
		return rule.Rule{}, "", err
	}
	logging.Debug(fmt.Sprintf("rule %q loaded from %s", r.Title, rulePath))
	q, err := m.conv.Convert(ctx, rulePath, pipeline)
	if err != nil {
		return rule.Rule{}, "", err
	}
	m.rep.OnQuery(q)
	return r, q, nil
}

// Create converts the rule and stores it as a scheduled search named
// inv.Name, replacing the query and schedule of an existing one.
func (m *Manager) Create(ctx context.Context, inv config.Invocation) (CreateResult, error) {
	r, q, err := m.Convert(ctx, inv.RulePath, inv.Pipeline)
	if err != nil {
		return CreateResult{}, err
	}
	res := CreateResult{Rule: r, Query: q}
	if err := m.login(ctx); err != nil {
		return res, err
	}
	s := splunk.SavedSearch{
		Name:         inv.Name,
		Search:       q,
		CronSchedule: inv.Timer,
		IsScheduled:  true,
		Description:  r.Summary(),
	}
	created, err := m.upsert(ctx, s)
	if err != nil {
		return res, err
	}
	res.Created = created
	verb := "updated"
	if created {
		verb = "created"
	}
	logging.Success(fmt.Sprintf("Saved search '%s' %s (cron: %s).", inv.Name, verb, inv.Timer))

	if !inv.Execute {
		return res, nil
	}
	res.Job, err = m.Execute(ctx, q, inv.MaxResults)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		logging.Error("query execution failed: " + err.Error())
		res.ExecErr = err
	}
	return res, nil
}

func (m *Manager) upsert(ctx context.Context, s splunk.SavedSearch) (bool, error) {
	_, err := m.svc.GetSavedSearch(ctx, s.Name)
	switch {
	case err == nil:
		logging.Debug(fmt.Sprintf("saved search %q exists, updating", s.Name))
		return false, m.svc.UpdateSavedSearch(ctx, s)
	case errors.Is(err, splunk.ErrNotFound):
		err = m.svc.CreateSavedSearch(ctx, s)
		if errors.Is(err, splunk.ErrConflict) {
			logging.Debug(fmt.Sprintf("saved search %q appeared concurrently, updating", s.Name))
			return false, m.svc.UpdateSavedSearch(ctx, s)
		}
		return err == nil, err
	default:
		return false, err
	}
}

// Delete removes the saved search called name. A missing search is
// reported and returns (false, nil).
func (m *Manager) Delete(ctx context.Context, name string) (bool, error) {
	if err := m.login(ctx); err != nil {
		return false, err
	}
	err := m.svc.DeleteSavedSearch(ctx, name)
	if errors.Is(err, splunk.ErrNotFound) {
		logging.Error(fmt.Sprintf("Saved search '%s' not found.", name))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logging.Success(fmt.Sprintf("Saved search '%s' deleted.", name))
	return true, nil
}

func (m *Manager) List(ctx context.Context) ([]splunk.SavedSearch, error) {
	if err := m.login(ctx); err != nil {
		return nil, err
	}
	return m.svc.ListSavedSearches(ctx)
}

func (m *Manager) login(ctx context.Context) error {
	if m.loggedIn {
		return nil
	}
	if m.svc == nil {
		return errors.New("no splunk connection configured")
	}
	if err := m.svc.Login(ctx); err != nil {
		return err
	}
	m.loggedIn = true
	logging.Info("Successfully connected to Splunk.")
	return nil
}
