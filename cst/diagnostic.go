package cst

import "fmt"

// TextRange is a half-open byte range into the original parser input.
type TextRange struct {
	Start int
	End   int
}

// Diagnostic is one accumulated parse error: a malformed construct the
// parser recovered from rather than aborting on. Unlike the patch
// package's fail-fast errors, a Diagnostic never stops the parse — it is
// recorded alongside an ERROR node and the parser moves on to the next
// line (spec.md §9, "Conflicts vs. syntax errors").
type Diagnostic struct {
	Message string
	Range   TextRange
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d-%d: %s", d.Range.Start, d.Range.End, d.Message)
}

// Parse wraps the result of parsing a byte stream: the lossless tree plus
// whatever diagnostics were accumulated along the way. It is intentionally
// never an error return - a Parse is always produced, even for completely
// unrecognizable input (each unrecognized line becomes its own JUNK node).
type Parse struct {
	tree   *Node
	errors []Diagnostic
}

// NewParse wraps a tree and its accumulated diagnostics into a Parse,
// for dialect packages (e.g. quilt) that drive their own parser loop
// but want to return the same result type cst.Parse does.
func NewParse(tree *Node, errors []Diagnostic) *Parse {
	return &Parse{tree: tree, errors: errors}
}

// Tree returns the root of the concrete syntax tree.
func (p *Parse) Tree() *Node { return p.tree }

// Ok reports whether the parse accumulated zero diagnostics.
func (p *Parse) Ok() bool { return len(p.errors) == 0 }

// Errors returns the accumulated diagnostics, in the order encountered.
func (p *Parse) Errors() []Diagnostic { return p.errors }
