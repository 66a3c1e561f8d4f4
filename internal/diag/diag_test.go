package diag

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/gada-doc/gada/internal/asciidoc"
)

func TestAggregator_ErrorOrNil(t *testing.T) {
	var a Aggregator
	assert.NoError(t, a.ErrorOrNil())

	a.Add("doc1.adoc", errors.New("boom"))
	assert.Equal(t, 1, a.Len())
	assert.Error(t, a.ErrorOrNil())

	a.Add("doc2.adoc", nil)
	assert.Equal(t, 1, a.Len(), "Add(nil) should not record a failure")
}

func TestAggregator_AddDiagnostics(t *testing.T) {
	var a Aggregator
	var diags asciidoc.Diagnostics
	diags.Add(asciidoc.SeverityWarning, "unused attribute", asciidoc.Location{}, "")
	diags.Add(asciidoc.SeverityError, "unresolved xref", asciidoc.Location{}, "")

	a.AddDiagnostics("doc.adoc", diags)
	assert.Equal(t, 1, a.Len(), "only error-severity diagnostics recorded")

	err := a.ErrorOrNil()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved xref")
}
