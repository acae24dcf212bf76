// Package port holds the definition of a sampled digital line
package port

// StateType is the logical level of the line.
type StateType int

const (
	// High indicates a logical 1.
	High StateType = 1
	// Low indicates a logical 0.
	Low StateType = 0
	// Invalid indicates an unknown or invalid state.
	Invalid StateType = -1
)

// Event is a single transition of the line.
type Event struct {
	// Timestamp is the time of the transition in seconds, relative to the start of the capture.
	Timestamp float64
	// Level is the state of the line after the transition.
	Level StateType
}

// String returns the level as it appears in a capture file.
func (s StateType) String() string {
	switch s {
	case High:
		return "1"
	case Low:
		return "0"
	default:
		return "x"
	}
}
