package main

import (
	"github.com/alecthomas/kong"

	"github.com/gada-doc/gada/cmd"
	"github.com/gada-doc/gada/internal/config"
	"github.com/gada-doc/gada/internal/theme"
)

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gada"),
		kong.Description("An AsciiDoc processor: parse, render, and inspect AsciiDoc documents"),
		kong.UsageOnError(),
	)

	// Ignore errors - theme will default to "default" if config not found.
	if cfg, err := config.Load(); err == nil {
		_ = theme.Load(cfg.Theme)
	}

	ctx.FatalIfErrorf(ctx.Run())
}
