package domain

import "time"

// RunResult is the verdict of one invocation of the test runner
type RunResult struct {
	Success bool
}

// RunRecord is a finished run as kept in the run history
type RunRecord struct {
	ID          string        `json:"id"`
	Environment string        `json:"environment"`
	Files       []string      `json:"files"`
	All         bool          `json:"all"`
	Tags        []string      `json:"tags"`
	Command     string        `json:"command"`
	Success     bool          `json:"success"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// Status returns a short human readable verdict
func (r RunRecord) Status() string {
	if r.Success {
		return "passed"
	}
	return "failed"
}
