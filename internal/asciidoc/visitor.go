package asciidoc

import "errors"

// SkipChildren is a sentinel error a Backend's Enter hook can return to
// suppress traversal of a node's children (e.g. a literal block's raw
// text child, or a comment block that should not be walked at all).
// Named after the teacher's own visitor sentinel.
var SkipChildren = errors.New("skip children")

// Backend is the pluggable renderer the evaluator drives. Unlike the
// teacher's one-method-per-node-kind Visitor (suited to a dozen markdown
// node kinds), AsciiDoc's ~40-kind vocabulary is dispatched through a
// single Enter/Leave pair keyed on Kind(); a concrete Backend switches on
// n.Kind() internally. This keeps the interface surface fixed regardless
// of how many node kinds the engine grows to support, while preserving
// the enter/exit-hook-per-kind semantics spec.md §4.H requires.
type Backend interface {
	// Enter is called on entering n, before its children are walked.
	// Returning SkipChildren suppresses the children walk (Leave is
	// still called); any other non-nil error aborts the walk.
	Enter(n Node, ctx *EvalContext) error
	// Leave is called after n's children (or immediately after Enter if
	// Enter returned SkipChildren).
	Leave(n Node, ctx *EvalContext) error
}

// BaseBackend embeds into a concrete Backend to provide no-op Enter/Leave,
// so implementations only override the kinds they care about via an
// internal kind switch, matching the teacher's BaseVisitor convenience
// embedding.
type BaseBackend struct{}

func (BaseBackend) Enter(Node, *EvalContext) error { return nil }
func (BaseBackend) Leave(Node, *EvalContext) error { return nil }

// Walk performs a depth-first enter/leave traversal of n and its
// children against backend, threading ctx through every call. This is
// the evaluator's core loop (spec.md §4.H "walks the document tree in
// source order").
func Walk(n Node, backend Backend, ctx *EvalContext) error {
	if n == nil {
		return nil
	}
	err := backend.Enter(n, ctx)
	if err != nil {
		if errors.Is(err, SkipChildren) {
			return backend.Leave(n, ctx)
		}
		return err
	}
	for _, child := range n.Children() {
		if werr := Walk(child, backend, ctx); werr != nil {
			return werr
		}
	}
	return backend.Leave(n, ctx)
}
