package cst

import "github.com/emirpasic/gods/stacks/arraystack"

// Node is one interior node of the persistent concrete-syntax tree: a
// Kind plus an ordered list of children, each either a token leaf or
// another Node. Nodes are immutable once built; editing (see edit.go)
// produces new Nodes that share untouched subtrees with the original,
// rather than mutating in place.
type Node struct {
	Kind     Kind
	Children []Element
}

// Element is a child of a Node: exactly one of Token or Node is set.
type Element struct {
	Token *Token
	Node  *Node
}

// Bytes returns the exact source bytes this element spans, by
// concatenating every leaf token in pre-order. This is the invariant
// that makes the tree lossless: Bytes() on the root always equals the
// original parser input (spec.md GLOSSARY, "Lossless tree").
func (e Element) Bytes() []byte {
	if e.Token != nil {
		return e.Token.Text
	}
	return e.Node.Bytes()
}

// Bytes concatenates every leaf token under n in pre-order.
func (n *Node) Bytes() []byte {
	var out []byte
	for _, c := range n.Children {
		out = append(out, c.Bytes()...)
	}
	return out
}

// eventKind tags one step of the builder's event log.
type eventKind int8

const (
	evStart eventKind = iota
	evStartAt
	evToken
	evFinish
)

type event struct {
	kind eventKind
	node Kind
	tok  Token
}

// Builder accumulates a flat event log during a single parse pass and
// reduces it to a tree on Finish. Using an event log instead of building
// the tree directly is what makes `Checkpoint`/`StartNodeAt` possible:
// the parser can decide long after the fact ("this run of tokens was
// actually a HUNK") and retroactively wrap them, because the wrapping
// start event is spliced into the log rather than requiring the tree
// shape to have been known up front (spec.md §9, checkpoint-based
// building).
type Builder struct {
	events []event
}

// Checkpoint marks the current position in the event log. Pass the
// returned value to StartNodeAt later to open a node that retroactively
// contains every token/node emitted since the checkpoint.
func (b *Builder) Checkpoint() int {
	return len(b.events)
}

// StartNode opens a new node of the given kind; every subsequent Token
// or StartNode/FinishNode pair belongs to it until the matching
// FinishNode.
func (b *Builder) StartNode(kind Kind) {
	b.events = append(b.events, event{kind: evStart, node: kind})
}

// StartNodeAt retroactively opens a node at a previously taken
// checkpoint, wrapping everything emitted since then. The matching
// FinishNode must still be called once the wrapped content, and
// anything opened after it, has been closed.
func (b *Builder) StartNodeAt(checkpoint int, kind Kind) {
	ev := event{kind: evStartAt, node: kind}
	b.events = append(b.events[:checkpoint], append([]event{ev}, b.events[checkpoint:]...)...)
}

// Token emits a leaf token.
func (b *Builder) Token(kind Kind, text []byte) {
	b.events = append(b.events, event{kind: evToken, tok: Token{Kind: kind, Text: text}})
}

// FinishNode closes the most recently opened, still-open node.
func (b *Builder) FinishNode() {
	b.events = append(b.events, event{kind: evFinish})
}

// Finish reduces the event log into a tree rooted at the outermost
// node and returns it.
func (b *Builder) Finish() *Node {
	stack := arraystack.New()
	for _, ev := range b.events {
		switch ev.kind {
		case evStart, evStartAt:
			stack.Push(&Node{Kind: ev.node})
		case evToken:
			tok := ev.tok
			top, _ := stack.Peek()
			parent := top.(*Node)
			parent.Children = append(parent.Children, Element{Token: &tok})
		case evFinish:
			childVal, _ := stack.Pop()
			child := childVal.(*Node)
			if stack.Empty() {
				stack.Push(child)
				continue
			}
			top, _ := stack.Peek()
			parent := top.(*Node)
			parent.Children = append(parent.Children, Element{Node: child})
		}
	}
	root, _ := stack.Pop()
	return root.(*Node)
}
