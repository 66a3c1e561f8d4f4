package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gada-doc/gada/internal/config"
	"github.com/gada-doc/gada/internal/diag"
)

// CheckCmd parses one or more documents and reports their diagnostics
// without evaluating them, exiting non-zero if any file produced a fatal
// diagnostic or a strict-mode error.
type CheckCmd struct {
	Files    []string `arg:"" help:"AsciiDoc source files" type:"existingfile"`
	Strict   bool     `help:"Treat diagnostic errors as fatal for the whole run"`
	Doctype  string   `help:"Override each document's doctype" enum:",article,book,manpage,inline" default:""`
	SafeMode string   `help:"Override each document's safe mode" name:"safe-mode" enum:",unsafe,safe,server,secure" default:""`
}

// Run implements the check command.
func (c *CheckCmd) Run() error {
	var agg diag.Aggregator
	for _, path := range c.Files {
		cfg, err := config.LoadFromPath(filepath.Dir(path))
		if err != nil {
			agg.Add(path, err)
			continue
		}
		opts := parseOptionsFor(path, cfg, c.Doctype, c.SafeMode)
		opts.Strict = c.Strict

		doc, err := parseFile(path, opts)
		if err != nil {
			agg.Add(path, err)
			continue
		}
		for _, d := range doc.Diagnostics.All() {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		agg.AddDiagnostics(path, doc.Diagnostics)
	}
	return agg.ErrorOrNil()
}
