package resolve

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/gada-doc/gada/internal/asciidoc"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		currentPath string
		target      string
		mode        asciidoc.SafeMode
		wantErr     bool
		wantContent string
	}{
		{
			name:        "relative include within base dir",
			currentPath: "docs/index.adoc",
			target:      "chapter1.adoc",
			mode:        asciidoc.SafeModeSafe,
			wantContent: "chapter one",
		},
		{
			name:        "relative include from root document",
			currentPath: "",
			target:      "chapter1.adoc",
			mode:        asciidoc.SafeModeSafe,
			wantContent: "chapter one",
		},
		{
			name:        "nested relative include",
			currentPath: "docs/index.adoc",
			target:      "sub/nested.adoc",
			mode:        asciidoc.SafeModeServer,
			wantContent: "nested content",
		},
		{
			name:        "parent traversal rejected under safe mode",
			currentPath: "docs/index.adoc",
			target:      "../secret.adoc",
			mode:        asciidoc.SafeModeSafe,
			wantErr:     true,
		},
		{
			name:        "parent traversal permitted under unsafe mode",
			currentPath: "docs/index.adoc",
			target:      "../secret.adoc",
			mode:        asciidoc.SafeModeUnsafe,
			wantContent: "top secret",
		},
		{
			name:        "absolute path rejected under safe mode",
			currentPath: "docs/index.adoc",
			target:      "/docs/chapter1.adoc",
			mode:        asciidoc.SafeModeSafe,
			wantErr:     true,
		},
		{
			name:        "all includes rejected under secure mode",
			currentPath: "docs/index.adoc",
			target:      "chapter1.adoc",
			mode:        asciidoc.SafeModeSecure,
			wantErr:     true,
		},
		{
			name:        "remote uri rejected regardless of mode",
			currentPath: "docs/index.adoc",
			target:      "https://example.com/chapter1.adoc",
			mode:        asciidoc.SafeModeUnsafe,
			wantErr:     true,
		},
		{
			name:        "missing file reports an error",
			currentPath: "docs/index.adoc",
			target:      "missing.adoc",
			mode:        asciidoc.SafeModeSafe,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			mustWrite(t, fs, "docs/chapter1.adoc", "chapter one")
			mustWrite(t, fs, "docs/sub/nested.adoc", "nested content")
			mustWrite(t, fs, "secret.adoc", "top secret")
			mustWrite(t, fs, "docs/chapter1.adoc", "chapter one")

			r := New(fs, "docs")
			_, content, err := r.Resolve(tt.currentPath, tt.target, tt.mode)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if string(content) != tt.wantContent {
				t.Errorf("Resolve() content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func mustWrite(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to seed %s: %v", path, err)
	}
}
