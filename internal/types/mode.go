// Package types contains shared types used across the application.
package types

// Mode represents the current interaction mode of the board
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeMove
	ModeTransition
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	case ModeMove:
		return "MOVE"
	case ModeTransition:
		return "TRANSITION"
	default:
		return "UNKNOWN"
	}
}
