package doctor

import "time"

// Check is one diagnostic run by prefs doctor.
type Check interface {
	// Name identifies the check in reports.
	Name() string

	// Category groups checks in reports ("config", "sources", "catalogue").
	Category() string

	// Run performs the check. A nil result is reported as an error.
	Run() *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck appends c to the run list.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Len reports how many checks are registered.
func (r *Runner) Len() int {
	return len(r.checks)
}

// Run executes every check and tallies the results.
func (r *Runner) Run() *DoctorReport {
	report := &DoctorReport{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		res := c.Run()
		if res == nil {
			res = &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  "check returned no result",
			}
		}
		report.Results = append(report.Results, res)
		report.Summary.record(res.Status)
	}
	return report
}

// DoctorReport is the outcome of one Runner.Run.
type DoctorReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check failed.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check produced a warning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the most severe status in the report, SeverityPass when
// the report is empty.
func (r *DoctorReport) Worst() Severity {
	switch {
	case r.HasErrors():
		return SeverityError
	case r.HasWarnings():
		return SeverityWarning
	case r.Summary.Info > 0:
		return SeverityInfo
	}
	return SeverityPass
}
