package harness

import (
	"encoding/json"

	"github.com/roach88/vlei/internal/credential"
)

// TraceEvent records the outcome of one step.
type TraceEvent struct {
	Seq     int64           `json:"seq"`
	Ref     string          `json:"ref"`
	Variant string          `json:"variant"`
	Digest  string          `json:"digest,omitempty"`
	Sad     json.RawMessage `json:"sad,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step behaved as expected and all assertions hold.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in step order.
	// Used for golden comparison.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// records holds the credentials built by successful steps, by ref.
	records map[string]credential.Record
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		records: make(map[string]credential.Record),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Record returns the credential built by the step named ref.
func (r *Result) Record(ref string) (credential.Record, bool) {
	rec, ok := r.records[ref]
	return rec, ok
}

// addRecord adds a constructed credential to the trace.
func (r *Result) addRecord(ref string, rec credential.Record, sad json.RawMessage) {
	r.records[ref] = rec
	r.Trace = append(r.Trace, TraceEvent{
		Seq:     int64(len(r.Trace) + 1),
		Ref:     ref,
		Variant: string(rec.Variant()),
		Digest:  string(rec.Digest()),
		Sad:     sad,
	})
}

// addFailure adds a failed construction to the trace.
func (r *Result) addFailure(ref, variant string, err error) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:     int64(len(r.Trace) + 1),
		Ref:     ref,
		Variant: variant,
		Error:   err.Error(),
	})
}
