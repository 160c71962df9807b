package termbar

import (
	"time"

	"tangled.org/atscan.net/termbar/internal/rate"
	"tangled.org/atscan.net/termbar/internal/termio"
)

type config struct {
	width          int // 0 = query the terminal each frame
	clearAfterStop bool
	drawAtBottom   bool
	avoidBlink     bool
	term           termio.Terminal
	logger         Logger
	interval       time.Duration
	windowCap      int
}

func defaultConfig() *config {
	return &config{
		logger:    &defaultLogger{},
		interval:  time.Second,
		windowCap: rate.DefaultCapacity,
	}
}

// Option configures a Bar
type Option func(*config)

// WithWidth fixes the rendered width instead of querying the terminal
// each frame. Must be at least the structured-bar minimum of 16.
func WithWidth(width int) Option {
	return func(c *config) {
		c.width = width
	}
}

// WithTerminal sets the terminal the bar draws through.
// Default is the process stderr.
func WithTerminal(t termio.Terminal) Option {
	return func(c *config) {
		c.term = t
	}
}

// WithClearAfterStop erases the bar line when the bar stops instead of
// leaving it on screen.
func WithClearAfterStop(clear bool) Option {
	return func(c *config) {
		c.clearAfterStop = clear
	}
}

// WithDrawAtBottom anchors the bar to the bottom terminal row instead of
// drawing it inline. Implies clear-after-stop.
func WithDrawAtBottom(bottom bool) Option {
	return func(c *config) {
		c.drawAtBottom = bottom
	}
}

// WithAvoidBlink reorders log writes so the new bar is drawn before the
// old one is erased, shrinking the window where neither is visible.
func WithAvoidBlink(avoid bool) Option {
	return func(c *config) {
		c.avoidBlink = avoid
	}
}

// WithLogger sets a custom logger for diagnostics
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRefreshInterval overrides the periodic estimate interval.
// Default is one second.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// Logger interface
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
