package cmd

import (
	"strings"
	"testing"
)

func TestTOCCmd_Run(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\n== First\n\ncontent\n\n== Second\n\nmore content\n")

	cmd := &TOCCmd{File: path}
	var err error
	output := captureStdout(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output, "First") || !strings.Contains(output, "Second") {
		t.Errorf("expected TOC to list both sections, got: %s", output)
	}
}

func TestTOCCmd_Run_LevelsOverride(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\n== First\n\n=== Nested\n\ncontent\n")

	cmd := &TOCCmd{File: path, Levels: 1}
	var err error
	output := captureStdout(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(output, "Nested") {
		t.Errorf("Levels: 1 should exclude the nested subsection, got: %s", output)
	}
}
