package swarm

import "time"

// Outcome is the settled result of one task. Err is nil when Value is the
// real result; otherwise Value is the task's fallback.
type Outcome struct {
	Name     string
	Value    any
	Duration time.Duration
	Err      error
}

// Failed reports whether the outcome carries the fallback.
func (o Outcome) Failed() bool { return o.Err != nil }

// Outcomes are ordered like the tasks passed to Run.
type Outcomes []Outcome

// Get returns the outcome named name.
func (o Outcomes) Get(name string) (Outcome, bool) {
	for _, outcome := range o {
		if outcome.Name == name {
			return outcome, true
		}
	}
	return Outcome{}, false
}

// ValueOf returns the value of the named outcome, or fallback when the
// outcome is missing or holds a different type.
func ValueOf[T any](outcomes Outcomes, name string, fallback T) T {
	outcome, ok := outcomes.Get(name)
	if !ok {
		return fallback
	}
	value, ok := outcome.Value.(T)
	if !ok {
		return fallback
	}
	return value
}

// Diagnostics summarises a run for operators: per-task wall time in
// milliseconds and one "name: message" entry per failed task, in task order.
type Diagnostics struct {
	Timings map[string]int64 `json:"timings"`
	Errors  []string         `json:"errors"`
}

// NewDiagnostics returns diagnostics with an empty, non-nil timing map and
// error list so they encode as {} and [] rather than null.
func NewDiagnostics() Diagnostics {
	return Diagnostics{Timings: map[string]int64{}, Errors: []string{}}
}

// Failed returns the number of tasks that resolved to their fallback.
func (d Diagnostics) Failed() int { return len(d.Errors) }
