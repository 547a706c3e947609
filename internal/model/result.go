package model

// ConvergenceStatus describes the probed state of the path relative to the
// desired state.
type ConvergenceStatus string

const (
	// StatusSatisfied means the path already matches the desired state.
	StatusSatisfied ConvergenceStatus = "satisfied"
	// StatusMissing means the desired resource does not exist yet.
	StatusMissing ConvergenceStatus = "missing"
	// StatusDrifted means the path exists but the desired state says it
	// should not.
	StatusDrifted ConvergenceStatus = "drifted"
)

// EvaluationResult contains the read-only assessment of the path's current
// state against the desired state. It is produced by Reconciler.Evaluate and
// consumed by Reconciler.Apply when action is required.
type EvaluationResult struct {
	// CurrentState classifies the path relative to the desired state.
	CurrentState ConvergenceStatus

	// RequiresAction indicates whether Apply should be called.
	RequiresAction bool

	// Message is a human-readable description of the assessment.
	Message string

	// Probe is the raw probe snapshot the assessment was derived from.
	Probe ProbeResult
}

// Result is the single output artifact of a reconciliation. It is built
// incrementally across the run and emitted once, on success or as partial
// context attached to a failure.
type Result struct {
	Path    string `json:"path"`
	Size    *int64 `json:"size"`
	State   string `json:"state"`
	Status  int    `json:"status,omitempty"`
	URL     string `json:"url"`
	Reason  string `json:"reason,omitempty"`
	Changed bool   `json:"changed"`
}

// SetSize records the observed file size on the result.
func (r *Result) SetSize(size int64) {
	r.Size = &size
}

// Failure is the structured payload emitted on a fatal error. It carries the
// error message plus whatever result fields had accumulated before the run
// aborted.
type Failure struct {
	Msg     string              `json:"msg"`
	Headers map[string][]string `json:"headers,omitempty"`
	Result
}
