// Package spinner renders a terminal progress line for passes that can take
// a while, such as checking external links over HTTP.
package spinner

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const interval = 100 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Start animates message on w until the returned stop function is called.
// Stop blocks until the line has been cleared, so regular output never
// interleaves with a half-drawn frame.
func Start(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%*s\r", len(message)+2, "") //nolint:errcheck
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[frame%len(frames)], message) //nolint:errcheck
				frame++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}
