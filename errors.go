package termbar

import "errors"

// Misuse errors. Every one of these is a contract violation by the
// caller, detected before any state mutation or terminal write, so a
// failed call leaves the bar exactly as it was.
var (
	// ErrAlreadyStarted is returned by Start on a bar that left Ready.
	ErrAlreadyStarted = errors.New("termbar: bar already started")

	// ErrNotRunning is returned by Tick outside the Running state.
	ErrNotRunning = errors.New("termbar: bar is not running")

	// ErrNeverStarted is returned by Stop on a bar that never started.
	ErrNeverStarted = errors.New("termbar: bar was never started")

	// ErrOverTotal is returned by Tick when the increment would push
	// progress past the total.
	ErrOverTotal = errors.New("termbar: tick exceeds total")
)
