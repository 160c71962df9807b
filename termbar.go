// Package termbar renders a live, self-updating progress bar on a
// terminal, tracking completion, speed and time remaining, while
// letting the host interleave log lines without corrupting the display.
//
// A Bar moves one way through three states: it is constructed Ready,
// Start moves it to Running, Stop moves it to Stopped. A stopped bar is
// inert; create a fresh one to run again. When the output is not an
// interactive terminal every drawing operation degrades to a no-op and
// Logf to a plain write, so a bar is safe to leave in place when output
// is piped.
package termbar

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"tangled.org/atscan.net/termbar/internal/rate"
	"tangled.org/atscan.net/termbar/internal/termio"
)

// State is the lifecycle position of a Bar.
type State int

const (
	StateReady State = iota
	StateRunning
	StateStopped
)

// Bar is a single terminal progress bar.
type Bar struct {
	mu       sync.Mutex
	cfg      *config
	total    int
	progress int
	state    State

	est *rate.Estimator
	// lastEstimate is written only by the redraw paths; tick-driven
	// redraws reuse it instead of forcing a timer-independent estimate.
	lastEstimate *rate.Estimate

	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
	sigCh    chan os.Signal
}

// New creates a bar in the Ready state. The total must be at least 1.
func New(total int, opts ...Option) (*Bar, error) {
	if total < 1 {
		return nil, fmt.Errorf("termbar: total must be >= 1, got %d", total)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.width != 0 && cfg.width < 16 {
		return nil, fmt.Errorf("termbar: width must be >= 16, got %d", cfg.width)
	}
	if cfg.term == nil {
		cfg.term = termio.Open(os.Stderr)
	}
	if cfg.drawAtBottom {
		// A bottom-anchored bar has no inline line to leave behind.
		cfg.clearAfterStop = true
	}

	return &Bar{cfg: cfg, total: total}, nil
}

// Progress returns the current progress value.
func (b *Bar) Progress() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Total returns the total the bar was constructed with.
func (b *Bar) Total() int {
	return b.total
}

// State returns the current lifecycle state.
func (b *Bar) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Start transitions the bar to Running. On an interactive terminal it
// hides the cursor, registers an interrupt hook that restores it, and
// arms the periodic estimate ticker. On a non-interactive output it
// only advances the state.
func (b *Bar) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateReady {
		return ErrAlreadyStarted
	}
	b.state = StateRunning

	if !b.cfg.term.Interactive() {
		return nil
	}

	b.est = rate.NewEstimator(b.cfg.windowCap)
	b.stopCh = make(chan struct{})
	b.stopOnce = sync.Once{}

	// Restore the cursor if the process is killed mid-run; the hook
	// lives only as long as the bar does.
	b.sigCh = make(chan os.Signal, 1)
	signal.Notify(b.sigCh, exitSignals()...)
	go b.watchSignals(b.sigCh)

	b.cfg.term.HideCursor()

	b.ticker = time.NewTicker(b.cfg.interval)
	go b.refreshLoop(b.ticker, b.stopCh)

	return nil
}

// Tick advances progress by value (default usage: 1) and redraws
// immediately. It fails without mutating anything if the bar is not
// running or the increment would push progress past the total.
func (b *Bar) Tick(value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateRunning {
		return ErrNotRunning
	}
	if value < 1 {
		return fmt.Errorf("termbar: tick value must be >= 1, got %d", value)
	}
	if b.progress+value > b.total {
		return fmt.Errorf("%w: %d+%d > %d", ErrOverTotal, b.progress, value, b.total)
	}

	b.progress += value
	if !b.cfg.term.Interactive() {
		return nil
	}

	// Before the first periodic firing there is no estimate to reuse,
	// so the first drawn frame computes one out of band.
	if b.lastEstimate == nil {
		est := b.est.Sample(b.progress, b.total)
		b.lastEstimate = &est
	}
	b.draw()
	return nil
}

// Increment advances progress by one.
func (b *Bar) Increment() error {
	return b.Tick(1)
}

// Stop transitions the bar to Stopped, cancels the periodic ticker,
// finishes the display (clearing the bar line or advancing past it) and
// shows the cursor again. Stopping an already stopped bar is a no-op;
// stopping a bar that never ran is an error.
func (b *Bar) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateReady:
		return ErrNeverStarted
	case StateStopped:
		return nil
	}
	b.state = StateStopped

	if !b.cfg.term.Interactive() {
		return nil
	}

	// The state flip above is the cancellation point: a firing already
	// pending takes the lock, sees Stopped and draws nothing.
	b.haltTicker()
	signal.Stop(b.sigCh)
	close(b.sigCh)

	b.finishDisplay()
	b.cfg.term.ShowCursor()
	return nil
}

// Logf writes a printf-style message above or through the bar without
// corrupting it. Outside the Running state, or on a non-interactive
// output, it degrades to a plain line write.
func (b *Bar) Logf(format string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if b.state != StateRunning || !b.cfg.term.Interactive() {
		b.cfg.term.Write(msg + "\n")
		return
	}
	b.logDraw(msg)
}

// refreshLoop runs the periodic estimate/redraw until stopped.
func (b *Bar) refreshLoop(ticker *time.Ticker, stopCh chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			b.periodicRefresh()
		}
	}
}

// periodicRefresh computes a fresh estimate and redraws. Once a firing
// observes a completed bar it cancels the ticker itself; completion
// reached by Tick between firings keeps the ticker alive until then.
func (b *Bar) periodicRefresh() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateRunning {
		return
	}

	est := b.est.Sample(b.progress, b.total)
	b.lastEstimate = &est
	b.draw()

	if b.progress == b.total {
		b.haltTicker()
	}
}

// haltTicker stops the ticker and releases the refresh goroutine.
// Safe to call from both Stop and the completion path.
func (b *Bar) haltTicker() {
	b.ticker.Stop()
	b.stopOnce.Do(func() { close(b.stopCh) })
}

// watchSignals restores the cursor on an exit signal and re-raises it
// so the process still terminates with the default disposition.
func (b *Bar) watchSignals(ch chan os.Signal) {
	sig, ok := <-ch
	if !ok {
		return
	}
	b.restoreCursor(sig)
	signal.Stop(ch)
	if p, err := os.FindProcess(os.Getpid()); err == nil {
		p.Signal(sig)
	}
}

// restoreCursor shows the cursor under the bar lock, so the restore
// write cannot land in the middle of a draw's escape sequence.
func (b *Bar) restoreCursor(sig os.Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.term.ShowCursor()
	b.cfg.logger.Printf("termbar: interrupted by %v, cursor restored", sig)
}

// width returns the frame width: the fixed configured width, or the
// terminal's current column count queried fresh for this frame.
func (b *Bar) width() int {
	if b.cfg.width != 0 {
		return b.cfg.width
	}
	return b.cfg.term.Columns()
}

type defaultLogger struct{}

func (l *defaultLogger) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func (l *defaultLogger) Println(v ...interface{}) {
	log.Println(v...)
}
