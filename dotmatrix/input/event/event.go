// Package event holds the kinds of input transitions.
package event

// Type is the kind of input transition.
type Type int

const (
	Press   Type = iota // key went down
	Release             // key went up
	Hold                // reported every poll while held, never debounced
)
