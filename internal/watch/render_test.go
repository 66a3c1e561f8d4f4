package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchAndRender_InitialAndOnChange(t *testing.T) {
	if !isFsnotifySupported() {
		t.Skip("fsnotify not supported on this platform")
	}

	tempFile := filepath.Join(t.TempDir(), "doc.adoc")
	if err := os.WriteFile(tempFile, []byte("= Title"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	var calls int32
	stop := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- WatchAndRender(tempFile, func() error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, stop)
	}()

	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(tempFile, []byte("= Title\n\ncontent"), 0644); err != nil {
		t.Fatalf("failed to modify temp file: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for re-render, calls = %d", atomic.LoadInt32(&calls))
		case <-time.After(10 * time.Millisecond):
		}
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WatchAndRender() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WatchAndRender did not return after stop was closed")
	}
}
