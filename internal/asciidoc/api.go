package asciidoc

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var optionsValidator = validator.New()

// Parse is the package's public parser entry point (spec.md §6.1):
//
//	parse(source_bytes, options) -> Result<Document, Diagnostics>
//
// Validation failures in opts (an unrecognized doctype/safe_mode string)
// are returned as an error before any parsing is attempted; structural
// document problems are instead collected into the returned Document's
// Diagnostics and do not themselves fail the call, per spec.md §4.D
// "Failure policy" (strict mode promotes them to fatal via opts.Strict).
func Parse(source []byte, opts ParseOptions) (*Document, error) {
	if err := optionsValidator.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid parse options: %w", err)
	}
	p := AcquireParser(source, opts)
	defer ReleaseParser(p)

	doc, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if opts.Strict && doc.Diagnostics.HasErrors() {
		n := 0
		for _, d := range doc.Diagnostics.All() {
			if d.Severity == SeverityError {
				n++
			}
		}
		return doc, fmt.Errorf("strict mode: %d diagnostic error(s)", n)
	}
	return doc, nil
}

// Render is the package's public evaluator entry point (spec.md §6.2):
//
//	render(document, backend) -> Result<String, RenderError>
func Render(doc *Document, backend Backend) (string, error) {
	return Eval(doc, backend)
}
