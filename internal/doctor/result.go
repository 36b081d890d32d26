package doctor

import "github.com/cockroachdb/errors"

// Severity indicates the importance level of a check result.
type Severity int

const (
	SeverityPass Severity = iota
	// SeverityInfo marks an absent optional source, which is not a problem.
	SeverityInfo
	// SeverityWarning marks something that silently degrades lookups, such
	// as an unbound shared store or a mistyped value.
	SeverityWarning
	// SeverityError marks a source that cannot be read at all.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = SeverityPass
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// CheckResult is the outcome of one Check. Details carries check specific
// context such as key counts, paths and type mismatches.
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	FixHint  string         `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) record(status Severity) {
	switch status {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
