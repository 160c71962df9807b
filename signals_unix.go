//go:build unix

package termbar

import (
	"os"

	"golang.org/x/sys/unix"
)

// exitSignals lists the signals that must restore the cursor before the
// process dies.
func exitSignals() []os.Signal {
	return []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
}
