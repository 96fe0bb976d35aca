package component

import "time"

// Input stores per-frame pointer state in screen pixels.
type Input struct {
	CursorX  float64
	CursorY  float64
	Pressed  bool
	Released bool
	// Now is the frame timestamp measured from game start.
	Now time.Duration
}

var InputComponent = NewComponent[Input]()
