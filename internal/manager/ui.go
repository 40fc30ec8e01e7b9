package manager

import "github.com/gopak/sigma2splunk/internal/splunk"

// Reporter renders what the remote side tells us while a job runs.
type Reporter interface {
	OnQuery(query string)
	OnJobProgress(st splunk.JobStatus)
	OnResults(res splunk.Results)
}

type nopReporter struct{}

func (nopReporter) OnQuery(string)                 {}
func (nopReporter) OnJobProgress(splunk.JobStatus) {}
func (nopReporter) OnResults(splunk.Results)       {}
