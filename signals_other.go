//go:build !unix

package termbar

import "os"

// exitSignals lists the signals that must restore the cursor before the
// process dies.
func exitSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
