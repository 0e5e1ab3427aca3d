package domain

// Status classifies a finished check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Property is one key/value pair surfaced to the report. Order matters,
// so outcomes carry a slice instead of a map.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Outcome is the result of a single check (DNS, HTTP, or HTTPS).
// It is built once by the runner and never mutated afterwards.
//
// StatusCode is 0 when no HTTP response was received (DNS failure,
// transport error). Stdout/Stderr hold the captured console narration
// of the check for the report's system-out/system-err fields.
type Outcome struct {
	CaseName   string  `json:"case_name"`
	Status     Status  `json:"status"`
	Duration   float64 `json:"duration_seconds"`
	StatusCode int     `json:"status_code,omitempty"`
	FinalURL   string  `json:"final_url,omitempty"`

	FailureMessage string `json:"failure_message,omitempty"`
	FailureDetail  string `json:"failure_detail,omitempty"`
	ErrorDetail    string `json:"error_detail,omitempty"`
	SkipReason     string `json:"skip_reason,omitempty"`

	Properties []Property `json:"properties,omitempty"`
	Stdout     string     `json:"stdout,omitempty"`
	Stderr     string     `json:"stderr,omitempty"`
}

// Skipped builds an outcome for a check that never ran.
// Skipped outcomes always report zero duration.
func Skipped(caseName, reason string) Outcome {
	return Outcome{
		CaseName:   caseName,
		Status:     StatusSkipped,
		Duration:   0,
		SkipReason: reason,
	}
}

// Failed reports whether the outcome counts against the run.
func (o Outcome) Failed() bool {
	return o.Status == StatusFail || o.Status == StatusError
}
