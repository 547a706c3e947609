package model

// DesiredState is the declarative target for a datastore path.
type DesiredState string

const (
	// StateAbsent removes the file if it exists.
	StateAbsent DesiredState = "absent"
	// StateDirectory creates the directory if it does not exist.
	StateDirectory DesiredState = "directory"
	// StateFile reports metadata of an existing file and fails when absent.
	StateFile DesiredState = "file"
	// StateTouch creates an empty file if the path does not exist.
	StateTouch DesiredState = "touch"
)

// DefaultState is applied when no state is requested.
const DefaultState = StateFile

// IsValid reports whether s is one of the supported desired states.
func (s DesiredState) IsValid() bool {
	switch s {
	case StateAbsent, StateDirectory, StateFile, StateTouch:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the state.
func (s DesiredState) String() string {
	return string(s)
}
