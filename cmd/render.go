package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/gada-doc/gada/internal/asciidoc"
	"github.com/gada-doc/gada/internal/config"
	"github.com/gada-doc/gada/internal/preview"
	"github.com/gada-doc/gada/internal/watch"
)

// RenderCmd parses a document and evaluates it through a Backend,
// writing the result to stdout, to -o's file, or into the interactive
// preview.
type RenderCmd struct {
	File     string `arg:"" help:"AsciiDoc source file" type:"existingfile"`
	Out      string `help:"Write output to a file instead of stdout" short:"o"`
	Backend  string `help:"Output backend: html or html5s" enum:",html,html5s" default:""`
	Doctype  string `help:"Override the document's doctype" enum:",article,book,manpage,inline" default:""`
	SafeMode string `help:"Override the document's safe mode" name:"safe-mode" enum:",unsafe,safe,server,secure" default:""`
	Preview  bool   `help:"Open the rendered document in the interactive preview pane"`
	Watch    bool   `help:"Re-render on every save"`
}

// Run implements the render command.
func (c *RenderCmd) Run() error {
	cfg, err := config.LoadFromPath(filepath.Dir(c.File))
	if err != nil {
		return err
	}
	backend, err := backendFor(c.Backend, cfg)
	if err != nil {
		return err
	}

	if c.Preview {
		return c.runPreview(cfg, backend)
	}

	render := func() error {
		doc, err := parseFile(c.File, parseOptionsFor(c.File, cfg, c.Doctype, c.SafeMode))
		if err != nil {
			return err
		}
		out, err := asciidoc.Render(doc, backend)
		if err != nil {
			return fmt.Errorf("render %s: %w", c.File, err)
		}
		return c.writeOutput(out)
	}

	if !c.Watch {
		return render()
	}
	return watch.WatchAndRender(c.File, render, nil)
}

// writeOutput writes out to -o's file, or to stdout: byte-for-byte when
// stdout is piped (a downstream tool shouldn't see an injected newline),
// with one trailing newline appended for readability when it's an
// interactive terminal.
func (c *RenderCmd) writeOutput(out string) error {
	if c.Out == "" {
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			_, err := fmt.Fprint(os.Stdout, out)
			return err
		}
		_, err := fmt.Fprintln(os.Stdout, out)
		return err
	}
	return os.WriteFile(c.Out, []byte(out), 0o644)
}

// runPreview builds an interactive split-pane preview of the document.
func (c *RenderCmd) runPreview(cfg *config.Config, backend asciidoc.Backend) error {
	doc, err := parseFile(c.File, parseOptionsFor(c.File, cfg, c.Doctype, c.SafeMode))
	if err != nil {
		return err
	}
	out, err := asciidoc.Render(doc, backend)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.File, err)
	}
	m := preview.NewModel(doc, out, nil)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
