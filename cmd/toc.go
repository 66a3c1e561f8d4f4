package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gada-doc/gada/internal/asciidoc"
	"github.com/gada-doc/gada/internal/config"
)

// TOCCmd prints a document's table of contents as an indented outline.
type TOCCmd struct {
	File   string `arg:"" help:"AsciiDoc source file" type:"existingfile"`
	Levels int    `help:"Maximum heading depth" default:"0"`
}

// Run implements the toc command.
func (c *TOCCmd) Run() error {
	cfg, err := config.LoadFromPath(filepath.Dir(c.File))
	if err != nil {
		return err
	}
	doc, err := parseFile(c.File, parseOptionsFor(c.File, cfg, "", ""))
	if err != nil {
		return err
	}

	levels := c.Levels
	if levels <= 0 {
		levels = cfg.TOCLevels
	}
	toc := asciidoc.BuildTOC(doc.Sections, levels)
	printTOC(toc, 0)
	return nil
}

func printTOC(entries []*asciidoc.TOCEntry, depth int) {
	for _, e := range entries {
		fmt.Printf("%s- %s\n", strings.Repeat("  ", depth), asciidoc.PlainText(e.Title))
		printTOC(e.Children, depth+1)
	}
}
