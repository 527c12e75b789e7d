//go:build unix

package runctl

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// NotifySignals returns a channel that receives one value the first time the
// process is sent SIGINT or SIGTERM, and a stop function that must be called
// to release the underlying os/signal registration. golang.org/x/sys/unix
// supplies the signal numbers directly rather than the generic os.Signal
// constants, keeping this file's platform dependency explicit the way the
// rest of this module pins its Unix-only behavior behind a build tag.
func NotifySignals() (<-chan struct{}, func()) {
	raw := make(chan os.Signal, 1)
	signal.Notify(raw, unix.SIGINT, unix.SIGTERM)

	out := make(chan struct{})
	done := make(chan struct{})
	go func() {
		select {
		case <-raw:
			close(out)
		case <-done:
		}
	}()

	stop := func() {
		signal.Stop(raw)
		close(done)
	}
	return out, stop
}
