// Package resolve implements an afero-backed asciidoc.IncludeResolver,
// reading include:: targets from a filesystem rooted at a base directory
// and gating escapes according to the active SafeMode.
package resolve

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gada-doc/gada/internal/asciidoc"
)

// ErrIncludesDisabled is wrapped into an asciidoc.IncludeError when an
// include:: directive is encountered under SafeModeSecure.
var ErrIncludesDisabled = errors.New("includes are disabled in secure mode")

// Resolver resolves include:: targets against an afero.Fs, so tests can
// substitute an in-memory filesystem (afero.NewMemMapFs) without
// touching disk, the same dependency-injected-filesystem shape the
// teacher's project initializers use for their own file operations.
type Resolver struct {
	Fs      afero.Fs
	BaseDir string // document source root; escapes rejected outside SafeModeUnsafe
}

// New returns a Resolver rooted at baseDir, reading through fs.
func New(fs afero.Fs, baseDir string) *Resolver {
	return &Resolver{Fs: fs, BaseDir: baseDir}
}

// Resolve implements asciidoc.IncludeResolver. currentPath is the path of
// the document (or enclosing include) the directive appears in; relative
// targets resolve against its directory, falling back to BaseDir for the
// root document.
func (r *Resolver) Resolve(currentPath, target string, mode asciidoc.SafeMode) (string, []byte, error) {
	if mode == asciidoc.SafeModeSecure {
		return "", nil, &asciidoc.IncludeError{Target: target, Reason: ErrIncludesDisabled.Error()}
	}
	if isRemoteURI(target) {
		return "", nil, &asciidoc.IncludeError{Target: target, Reason: "remote includes are not supported"}
	}

	dir := filepath.Dir(currentPath)
	if currentPath == "" || dir == "." {
		dir = r.BaseDir
	}
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(dir, target)
	}

	if mode != asciidoc.SafeModeUnsafe {
		if filepath.IsAbs(target) {
			return "", nil, &asciidoc.IncludeError{Target: target, Reason: "absolute include paths require unsafe mode"}
		}
		if r.escapesBase(resolved) {
			return "", nil, &asciidoc.IncludeError{Target: target, Reason: "include escapes the document base directory"}
		}
	}

	content, err := afero.ReadFile(r.Fs, resolved)
	if err != nil {
		return "", nil, &asciidoc.IncludeError{Target: target, Reason: err.Error()}
	}
	return resolved, content, nil
}

// escapesBase reports whether resolved lies outside r.BaseDir, gating
// "../" traversal under SafeModeSafe/SafeModeServer (spec.md §6.3: server
// forbids paths escaping the base directory; safe is at least as strict).
func (r *Resolver) escapesBase(resolved string) bool {
	if r.BaseDir == "" {
		return false
	}
	rel, err := filepath.Rel(r.BaseDir, resolved)
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isRemoteURI(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
