package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"igvfcatalog/cli/internal/terminal"

	"atomicgo.dev/cursor"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startSpinner draws an inline spinner on w while a call is in flight.
// Nothing is drawn when w is not a terminal or when verbose logging shares
// the same stream. The returned function stops the spinner and clears its line.
func startSpinner(w io.Writer, text string, verbose bool) func() {
	if verbose || !terminal.IsInteractive(w) {
		return func() {}
	}
	f := w.(*os.File)
	if limit := terminal.Width(f) - 3; limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	cur := cursor.NewCursor().WithWriter(f)
	cur.Hide()
	stop := startInlineSpinner(w, text, spinnerFrames, 100*time.Millisecond)
	return func() {
		stop()
		cur.Show()
	}
}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The spinner runs in a separate goroutine and
// can be stopped by calling the returned function.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}
