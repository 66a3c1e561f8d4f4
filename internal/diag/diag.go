// Package diag aggregates failures across a multi-file CLI invocation
// (check walking a file list) into a single reportable error,
// so one bad file does not stop the rest from being processed.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/gada-doc/gada/internal/asciidoc"
)

// Aggregator collects per-file failures observed during one CLI
// invocation. Its zero value is ready to use.
type Aggregator struct {
	errs *multierror.Error
}

// Add records err against path, if non-nil.
func (a *Aggregator) Add(path string, err error) {
	if err == nil {
		return
	}
	a.errs = multierror.Append(a.errs, fmt.Errorf("%s: %w", path, err))
}

// AddDiagnostics records every error-severity diagnostic in diags against
// path. Warnings and info diagnostics are not fatal and are left for the
// caller to print separately.
func (a *Aggregator) AddDiagnostics(path string, diags asciidoc.Diagnostics) {
	for _, d := range diags.All() {
		if d.Severity == asciidoc.SeverityError {
			a.errs = multierror.Append(a.errs, fmt.Errorf("%s: %s", path, d.Message))
		}
	}
}

// Len reports how many failures have been recorded.
func (a *Aggregator) Len() int {
	if a.errs == nil {
		return 0
	}
	return len(a.errs.Errors)
}

// ErrorOrNil returns the aggregated error, or nil if nothing failed.
func (a *Aggregator) ErrorOrNil() error {
	if a.errs == nil {
		return nil
	}
	a.errs.ErrorFormat = listFormat
	return a.errs.ErrorOrNil()
}

// listFormat renders one failure per line with a leading dash, instead of
// go-multierror's default "N errors occurred:" block, to read naturally
// as CLI output.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	s := fmt.Sprintf("%d failures:\n", len(errs))
	for _, e := range errs {
		s += fmt.Sprintf("  - %s\n", e)
	}
	return s
}
