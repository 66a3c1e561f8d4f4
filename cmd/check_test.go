package cmd

import (
	"os"
	"testing"
)

func TestCheckCmd_Run_NoDiagnostics(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\nSome paragraph.\n")

	cmd := &CheckCmd{Files: []string{path}}
	var err error
	_ = captureStderr(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestCheckCmd_Run_AggregatesAcrossFiles(t *testing.T) {
	good := writeTempDoc(t, "= Title\n\ncontent\n")
	missing := good + ".does-not-exist"

	cmd := &CheckCmd{Files: []string{good, missing}}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected an aggregated error for the missing file")
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	os.Stderr = w
	fn()
	_ = w.Close()
	os.Stderr = oldStderr
	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	return string(buf[:n])
}
