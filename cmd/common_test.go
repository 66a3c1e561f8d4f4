package cmd

import (
	"path/filepath"
	"testing"

	"github.com/gada-doc/gada/internal/config"
)

func TestParseOptionsFor_DefaultsFromConfig(t *testing.T) {
	cfg := &config.Config{Doctype: "book", SafeMode: "unsafe"}
	path := "/tmp/example/doc.adoc"

	opts := parseOptionsFor(path, cfg, "", "")
	if opts.Doctype != "book" {
		t.Errorf("Doctype = %q, want %q", opts.Doctype, "book")
	}
	if opts.SafeMode != "unsafe" {
		t.Errorf("SafeMode = %q, want %q", opts.SafeMode, "unsafe")
	}
	if opts.CurrentPath != path {
		t.Errorf("CurrentPath = %q, want %q", opts.CurrentPath, path)
	}
	if opts.Resolver == nil {
		t.Error("expected a non-nil Resolver")
	}
}

func TestParseOptionsFor_OverridesWin(t *testing.T) {
	cfg := &config.Config{Doctype: "book", SafeMode: "unsafe"}
	opts := parseOptionsFor("doc.adoc", cfg, "manpage", "safe")

	if opts.Doctype != "manpage" {
		t.Errorf("Doctype = %q, want %q", opts.Doctype, "manpage")
	}
	if opts.SafeMode != "safe" {
		t.Errorf("SafeMode = %q, want %q", opts.SafeMode, "safe")
	}
}

func TestBackendFor(t *testing.T) {
	cfg := &config.Config{Backend: "html5s"}

	b, err := backendFor("", cfg)
	if err != nil {
		t.Fatalf("backendFor() error = %v", err)
	}
	if b == nil {
		t.Fatal("expected a non-nil backend falling back to cfg.Backend")
	}

	if _, err := backendFor("bogus", cfg); err == nil {
		t.Error("expected an error for an unknown backend name")
	}
}

func TestParseFile_ReadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.adoc")
	cfg := &config.Config{Doctype: "article", SafeMode: "safe"}
	if _, err := parseFile(missing, parseOptionsFor(missing, cfg, "", "")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
