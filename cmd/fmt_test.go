package cmd

import (
	"strings"
	"testing"
)

func TestFmtCmd_Run(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\n== Section\n\nparagraph text\n")

	cmd := &FmtCmd{File: path}
	var err error
	output := captureStdout(t, func() {
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output, "Section") {
		t.Errorf("expected dump to mention the section heading, got: %s", output)
	}
}

func TestFmtCmd_Run_StableAcrossRuns(t *testing.T) {
	path := writeTempDoc(t, "= Title\n\n== Section\n\nparagraph text\n")

	cmd := &FmtCmd{File: path}
	var first, second string
	_ = captureStdout(t, func() { _ = cmd.Run() })
	first = captureStdout(t, func() { _ = cmd.Run() })
	second = captureStdout(t, func() { _ = cmd.Run() })

	if first != second {
		t.Errorf("dump should be stable across repeated runs over unchanged input:\n%s\n---\n%s", first, second)
	}
}
