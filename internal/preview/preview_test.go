//nolint:revive // test file
package preview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/gada-doc/gada/internal/asciidoc"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	source := "= Doc Title\n\n== First Section\n\ncontent one\n\n== Second Section\n\ncontent two\n"
	doc, err := asciidoc.Parse([]byte(source), asciidoc.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return NewModel(doc, "rendered first rendered second", nil)
}

// TestModel_RendersOutlineAndQuits drives the split-pane Model through a
// real bubbletea test harness: waits for its sidebar to render, then sends
// 'q' and checks the program exits with a Quit result.
func TestModel_RendersOutlineAndQuits(t *testing.T) {
	m := newTestModel(t)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	waitForOutput(t, tm, "Outline")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*2))

	final := tm.FinalModel(t)
	fm, ok := final.(*Model)
	if !ok {
		t.Fatalf("final model is %T, want *Model", final)
	}
	if fm.Result() == nil || !fm.Result().Quit {
		t.Errorf("expected a Quit result, got %+v", fm.Result())
	}
}

func waitForOutput(t *testing.T, tm *teatest.TestModel, s string) {
	t.Helper()
	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool { return strings.Contains(string(b), s) },
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}
