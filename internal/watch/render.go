package watch

import (
	"fmt"
	"os"
)

// RenderFunc re-parses and re-evaluates the watched document, producing
// whatever output side effect the caller wants (writing a file, printing
// to stdout, pushing into a live preview.Model).
type RenderFunc func() error

// WatchAndRender watches path and calls render once immediately, then
// again after every debounced change, until stop is closed. Errors
// returned by render are written to stderr rather than stopping the
// loop, so one bad save doesn't kill a long-running --watch session.
func WatchAndRender(path string, render RenderFunc, stop <-chan struct{}) error {
	w, err := NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer func() { _ = w.Close() }()

	if err := render(); err != nil {
		fmt.Fprintf(os.Stderr, "gada: %v\n", err)
	}

	for {
		select {
		case <-stop:
			return nil
		case <-w.Events():
			if err := render(); err != nil {
				fmt.Fprintf(os.Stderr, "gada: %v\n", err)
			}
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "gada: watch error: %v\n", err)
		}
	}
}
