package doctor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	assert.Equal(t, 0, r.Len())

	for _, name := range []string{"shared-store", "local-store", "document"} {
		check := NewMockCheck(t)
		check.EXPECT().Name().Return(name).Maybe()
		r.AddCheck(check)
	}

	require.Equal(t, 3, r.Len())
	assert.Equal(t, "shared-store", r.checks[0].Name())
	assert.Equal(t, "document", r.checks[2].Name())
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Severity
		want     Summary
		worst    Severity
	}{
		{"empty", nil, Summary{}, SeverityPass},
		{"all pass", []Severity{SeverityPass, SeverityPass}, Summary{Passed: 2}, SeverityPass},
		{"missing document", []Severity{SeverityPass, SeverityInfo}, Summary{Passed: 1, Info: 1}, SeverityInfo},
		{
			"unbound shared store",
			[]Severity{SeverityWarning, SeverityPass, SeverityInfo},
			Summary{Passed: 1, Info: 1, Warnings: 1},
			SeverityWarning,
		},
		{
			"malformed document",
			[]Severity{SeverityWarning, SeverityError, SeverityPass, SeverityError},
			Summary{Passed: 1, Warnings: 1, Errors: 2},
			SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for i, status := range tt.statuses {
				check := NewMockCheck(t)
				check.EXPECT().Run().Return(&CheckResult{Name: string(rune('a' + i)), Status: status})
				r.AddCheck(check)
			}

			before := time.Now().UTC()
			report := r.Run()

			assert.False(t, report.Timestamp.Before(before), "timestamp predates run")
			assert.Len(t, report.Results, len(tt.statuses))
			assert.Equal(t, tt.want, report.Summary)
			assert.Equal(t, tt.worst, report.Worst())
			assert.Equal(t, tt.want.Errors > 0, report.HasErrors())
			assert.Equal(t, tt.want.Warnings > 0, report.HasWarnings())
			for i, res := range report.Results {
				assert.Equal(t, string(rune('a'+i)), res.Name, "results keep registration order")
			}
		})
	}
}

func TestRunner_Run_NilResult(t *testing.T) {
	r := NewRunner()
	check := NewMockCheck(t)
	check.EXPECT().Run().Return(nil)
	check.EXPECT().Name().Return("document")
	check.EXPECT().Category().Return(categorySources)
	r.AddCheck(check)

	report := r.Run()

	require.Len(t, report.Results, 1)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, "document", report.Results[0].Name)
	assert.Equal(t, categorySources, report.Results[0].Category)
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestDoctorReport_JSON(t *testing.T) {
	report := &DoctorReport{
		Results: []*CheckResult{{
			Name:     "catalogue-types",
			Category: categoryCatalogue,
			Status:   SeverityWarning,
			Message:  "1 values have the wrong type",
			FixHint:  "store values using the type listed by: prefs keys",
		}},
		Summary: Summary{Warnings: 1},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	result := decoded["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "warning", result["status"])
	assert.NotContains(t, result, "details")
	assert.Equal(t, map[string]any{"passed": 0.0, "info": 0.0, "warnings": 1.0, "errors": 0.0}, decoded["summary"])
}
