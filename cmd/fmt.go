package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/gada-doc/gada/internal/asciidoc"
	"github.com/gada-doc/gada/internal/config"
)

// FmtCmd parses a document and dumps its structured tree, as a
// normalization smoke test: a stable parse produces a stable dump across
// repeated runs over unchanged input.
type FmtCmd struct {
	File string `arg:"" help:"AsciiDoc source file" type:"existingfile"`
}

// Run implements the fmt command.
func (c *FmtCmd) Run() error {
	cfg, err := config.LoadFromPath(filepath.Dir(c.File))
	if err != nil {
		return err
	}
	doc, err := parseFile(c.File, parseOptionsFor(c.File, cfg, "", ""))
	if err != nil {
		return err
	}
	fmt.Print(asciidoc.Dump(doc))
	return nil
}
