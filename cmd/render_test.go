package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.adoc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	_ = w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestRenderCmd_Run_ToStdout(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\nSome paragraph.\n")

	cmd := &RenderCmd{File: path}
	var err error
	output := captureStdout(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output, "Title") {
		t.Errorf("rendered output missing document title, got: %s", output)
	}
}

func TestRenderCmd_Run_ToFile(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\nSome paragraph.\n")
	outPath := filepath.Join(filepath.Dir(path), "out.html")

	cmd := &RenderCmd{File: path, Out: outPath}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", outPath, err)
	}
	if !strings.Contains(string(data), "Title") {
		t.Errorf("output file missing document title, got: %s", data)
	}
}

func TestRenderCmd_Run_UnknownBackend(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\ncontent\n")

	cmd := &RenderCmd{File: path, Backend: "docbook"}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for unknown backend, got nil")
	}
}

func TestRenderCmd_Run_Html5s(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\nSome paragraph.\n")

	cmd := &RenderCmd{File: path, Backend: "html5s"}
	var err error
	output := captureStdout(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if output == "" {
		t.Error("expected non-empty html5s output")
	}
}
