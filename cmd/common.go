package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/gada-doc/gada/internal/asciidoc"
	"github.com/gada-doc/gada/internal/config"
	"github.com/gada-doc/gada/internal/html"
	"github.com/gada-doc/gada/internal/html5s"
	"github.com/gada-doc/gada/internal/resolve"
)

// parseOptionsFor builds asciidoc.ParseOptions for path, layering cfg's
// defaults under any non-empty override. The include resolver is rooted
// at path's containing directory so include:: targets resolve relative
// to the document being processed.
func parseOptionsFor(path string, cfg *config.Config, doctype, safeMode string) asciidoc.ParseOptions {
	if doctype == "" {
		doctype = cfg.Doctype
	}
	if safeMode == "" {
		safeMode = cfg.SafeMode
	}
	return asciidoc.ParseOptions{
		Doctype:     doctype,
		SafeMode:    safeMode,
		Attributes:  cfg.Attributes,
		Resolver:    resolve.New(afero.NewOsFs(), filepath.Dir(path)),
		CurrentPath: path,
	}
}

// backendFor resolves the asciidoc.Backend named by name, falling back to
// cfg.Backend when name is empty.
func backendFor(name string, cfg *config.Config) (asciidoc.Backend, error) {
	if name == "" {
		name = cfg.Backend
	}
	switch name {
	case "", "html":
		return html.New(), nil
	case "html5s":
		return html5s.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want html or html5s)", name)
	}
}

// parseFile reads path and runs it through asciidoc.Parse with opts.
func parseFile(path string, opts asciidoc.ParseOptions) (*asciidoc.Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := asciidoc.Parse(source, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
