package harness

// TraceEvent records one resolved message in a scenario run.
type TraceEvent struct {
	Step  int               `json:"step"`
	Entry string            `json:"entry"`
	Text  string            `json:"text"`
	Vars  map[string]string `json:"vars,omitempty"`
	Next  []string          `json:"next"`
	Path  []string          `json:"path,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Trace contains one event per message step, in order.
	Trace []TraceEvent `json:"trace"`

	// Code is the compiled program, when the scenario has a compile
	// section.
	Code string `json:"code,omitempty"`

	// Unreachable lists dead block ids from compilation.
	Unreachable []string `json:"unreachable,omitempty"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records an expectation failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
