package model

// ProbeState is the explicit outcome variant of the existence probe. Probes
// that cannot be classified as found or absent surface as errors instead, so
// the dispatcher only ever branches over these two values.
type ProbeState string

const (
	// ProbeFound indicates the probe saw the path (HTTP 200).
	ProbeFound ProbeState = "found"
	// ProbeAbsent indicates the probe did not find the path (HTTP 404).
	ProbeAbsent ProbeState = "absent"
)

// ProbeResult is the read-only snapshot of the path's current existence and
// metadata, derived from a single HEAD response. It is immutable once
// computed and consumed by the state dispatch.
type ProbeResult struct {
	// State classifies the probe outcome.
	State ProbeState

	// Size is the reported content length. Only meaningful when State is
	// ProbeFound.
	Size int64

	// Status is the HTTP status code the probe observed.
	Status int
}

// Exists reports whether the probed path is present on the datastore.
func (p ProbeResult) Exists() bool {
	return p.State == ProbeFound
}
