package cst

// This file is the typed AST façade over the concrete syntax tree: thin,
// kind-guarded wrappers around *Node, generated by hand in place of the
// teacher corpus's macro-based approach (spec.md §9 calls for "a kind
// enum + two layers"; this is the typed-view layer). Each wrapper casts
// only if the underlying node's Kind matches, mirroring the rowan
// AstNode::cast pattern.

// DiffFormat names which dialect a root-level child belongs to.
type DiffFormat int8

const (
	FormatUnknown DiffFormat = iota
	FormatUnified
	FormatContext
	FormatEd
	FormatNormal
)

// Patch wraps a ROOT node: the whole parsed input, possibly mixing
// several dialects and junk across its top-level children.
type Patch struct{ n *Node }

// CastPatch wraps n as a Patch if its kind is ROOT.
func CastPatch(n *Node) (Patch, bool) {
	if n == nil || n.Kind != ROOT {
		return Patch{}, false
	}
	return Patch{n}, true
}

func childrenOfKind(n *Node, kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

func firstChildOfKind(n *Node, kind Kind) (*Node, bool) {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node, true
		}
	}
	return nil, false
}

// PatchFiles returns every unified-diff file in the patch.
func (p Patch) PatchFiles() []PatchFile {
	var out []PatchFile
	for _, n := range childrenOfKind(p.n, PATCH_FILE) {
		out = append(out, PatchFile{n})
	}
	return out
}

// ContextDiffFiles returns every context-diff file in the patch.
func (p Patch) ContextDiffFiles() []ContextDiffFile {
	var out []ContextDiffFile
	for _, n := range childrenOfKind(p.n, CONTEXT_DIFF_FILE) {
		out = append(out, ContextDiffFile{n})
	}
	return out
}

// EdCommands returns every ed-script command in the patch.
func (p Patch) EdCommands() []EdCommand {
	var out []EdCommand
	for _, c := range p.n.Children {
		if c.Node == nil {
			continue
		}
		switch c.Node.Kind {
		case ED_ADD_COMMAND, ED_DELETE_COMMAND, ED_CHANGE_COMMAND:
			out = append(out, EdCommand{c.Node})
		}
	}
	return out
}

// NormalHunks returns every normal-diff hunk in the patch.
func (p Patch) NormalHunks() []NormalHunk {
	var out []NormalHunk
	for _, n := range childrenOfKind(p.n, NORMAL_HUNK) {
		out = append(out, NormalHunk{n})
	}
	return out
}

// Errors returns every ERROR node at the root, in source order.
func (p Patch) Errors() []*Node {
	return childrenOfKind(p.n, ERROR)
}

// DetectFormat reports the patch's dialect by a fixed priority, not by
// source position: unified if any top-level unified file is present, else
// context, then ed, then normal (spec.md §4.6, `detect_format`).
func (p Patch) DetectFormat() DiffFormat {
	if len(p.PatchFiles()) > 0 {
		return FormatUnified
	}
	if len(p.ContextDiffFiles()) > 0 {
		return FormatContext
	}
	if len(p.EdCommands()) > 0 {
		return FormatEd
	}
	if len(p.NormalHunks()) > 0 {
		return FormatNormal
	}
	return FormatUnknown
}

// PatchFile wraps a PATCH_FILE node: one unified-diff file.
type PatchFile struct{ n *Node }

func (f PatchFile) Node() *Node { return f.n }

// OldFile returns the `--- ` header node, if present.
func (f PatchFile) OldFile() (*Node, bool) { return firstChildOfKind(f.n, OLD_FILE) }

// NewFile returns the `+++ ` header node, if present.
func (f PatchFile) NewFile() (*Node, bool) { return firstChildOfKind(f.n, NEW_FILE) }

// OldPath returns the path text from the `--- ` header, if present.
func (f PatchFile) OldPath() (string, bool) {
	n, ok := f.OldFile()
	if !ok {
		return "", false
	}
	return path(n), true
}

// NewPath returns the path text from the `+++ ` header, if present.
func (f PatchFile) NewPath() (string, bool) {
	n, ok := f.NewFile()
	if !ok {
		return "", false
	}
	return path(n), true
}

// Hunks returns every hunk belonging to this file, in source order.
func (f PatchFile) Hunks() []Hunk {
	var out []Hunk
	for _, n := range childrenOfKind(f.n, HUNK) {
		out = append(out, Hunk{n})
	}
	return out
}

// path extracts the PATH-ish payload from a header node's tokens: it
// skips the leading marker run (the "---"/"+++"/"***" token and the
// single SPACE/WHITESPACE after it), then collects every
// TEXT/SLASH/DOT/NUMBER/COLON/BACKSLASH token up to the next
// SPACE/WHITESPACE (the boundary before an optional trailing timestamp),
// mirroring the teacher corpus's own path-collection loop.
func path(n *Node) string {
	var out []byte
	started := false
	for _, c := range n.Children {
		if c.Token == nil {
			continue
		}
		switch c.Token.Kind {
		case TEXT, SLASH, DOT, NUMBER, COLON, BACKSLASH:
			started = true
			out = append(out, c.Token.Text...)
		case SPACE, WHITESPACE:
			if started {
				return string(out)
			}
		}
	}
	return string(out)
}

// Hunk wraps a HUNK node.
type Hunk struct{ n *Node }

func (h Hunk) Node() *Node { return h.n }

// Header returns the hunk's header node.
func (h Hunk) Header() (HunkHeader, bool) {
	n, ok := firstChildOfKind(h.n, HUNK_HEADER)
	if !ok {
		return HunkHeader{}, false
	}
	return HunkHeader{n}, true
}

// Lines returns every context/add/delete line in the hunk, in order.
func (h Hunk) Lines() []HunkLine {
	var out []HunkLine
	for _, c := range h.n.Children {
		if c.Node == nil {
			continue
		}
		switch c.Node.Kind {
		case CONTEXT_LINE, ADD_LINE, DELETE_LINE:
			out = append(out, HunkLine{c.Node})
		}
	}
	return out
}

// HunkHeader wraps a HUNK_HEADER node (the raw `@@ -a,b +c,d @@` line).
type HunkHeader struct{ n *Node }

// oldNewNumbers splits the header's NUMBER tokens into the group before
// the "+" (old range) and the group from "+" onward (new range), so a
// missing count on one side never bleeds into the other side's start.
func oldNewNumbers(n *Node) (old, new []string) {
	seenPlus := false
	for _, c := range n.Children {
		if c.Token == nil {
			continue
		}
		switch c.Token.Kind {
		case PLUS:
			seenPlus = true
		case NUMBER:
			if seenPlus {
				new = append(new, string(c.Token.Text))
			} else {
				old = append(old, string(c.Token.Text))
			}
		}
	}
	return old, new
}

// OldRange returns the old-file (start, count) pair from the header's
// "-a[,b]" group. Count defaults to 1 if the header omitted it (per
// spec.md §4.2, the single-number-means-count-1 convention).
func (h HunkHeader) OldRange() (start, count int, ok bool) {
	old, _ := oldNewNumbers(h.n)
	if len(old) < 1 {
		return 0, 0, false
	}
	return atoiOrZero(old[0]), countOrDefault(old, 1), true
}

// NewRange returns the new-file (start, count) pair from the header's
// "+c[,d]" group.
func (h HunkHeader) NewRange() (start, count int, ok bool) {
	_, new := oldNewNumbers(h.n)
	if len(new) < 1 {
		return 0, 0, false
	}
	return atoiOrZero(new[0]), countOrDefault(new, 1), true
}

func countOrDefault(nums []string, def int) int {
	if len(nums) >= 2 {
		return atoiOrZero(nums[1])
	}
	return def
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// HunkLine wraps one of CONTEXT_LINE, ADD_LINE, DELETE_LINE: a tagged
// union represented as a single wrapper with kind-guarded accessors,
// matching spec.md §9's "do not model it as a base class with
// subclasses" note.
type HunkLine struct{ n *Node }

func (l HunkLine) Kind() Kind { return l.n.Kind }

// AsContext reports whether this line is a CONTEXT_LINE.
func (l HunkLine) AsContext() (HunkLine, bool) { return l, l.n.Kind == CONTEXT_LINE }

// AsAdd reports whether this line is an ADD_LINE.
func (l HunkLine) AsAdd() (HunkLine, bool) { return l, l.n.Kind == ADD_LINE }

// AsDelete reports whether this line is a DELETE_LINE.
func (l HunkLine) AsDelete() (HunkLine, bool) { return l, l.n.Kind == DELETE_LINE }

// Text returns the line's payload, including its trailing newline, with
// only the leading prefix token (SPACE, MINUS, or PLUS) stripped.
func (l HunkLine) Text() []byte {
	var out []byte
	skippedPrefix := false
	for _, c := range l.n.Children {
		if c.Token == nil {
			continue
		}
		if !skippedPrefix {
			switch c.Token.Kind {
			case SPACE, MINUS, PLUS:
				skippedPrefix = true
				continue
			}
		}
		out = append(out, c.Token.Text...)
	}
	return out
}

// ContextDiffFile wraps a CONTEXT_DIFF_FILE node.
type ContextDiffFile struct{ n *Node }

func (f ContextDiffFile) Node() *Node { return f.n }

// OldFile returns the `*** ` header node, if present.
func (f ContextDiffFile) OldFile() (*Node, bool) { return firstChildOfKind(f.n, CONTEXT_OLD_FILE) }

// NewFile returns the `--- ` header node, if present.
func (f ContextDiffFile) NewFile() (*Node, bool) { return firstChildOfKind(f.n, CONTEXT_NEW_FILE) }

// OldPath returns the path text from the `*** ` header, if present.
func (f ContextDiffFile) OldPath() (string, bool) {
	n, ok := f.OldFile()
	if !ok {
		return "", false
	}
	return path(n), true
}

// NewPath returns the path text from the `--- ` header, if present.
func (f ContextDiffFile) NewPath() (string, bool) {
	n, ok := f.NewFile()
	if !ok {
		return "", false
	}
	return path(n), true
}

// Hunks returns every context hunk in this file.
func (f ContextDiffFile) Hunks() []ContextHunk {
	var out []ContextHunk
	for _, n := range childrenOfKind(f.n, CONTEXT_HUNK) {
		out = append(out, ContextHunk{n})
	}
	return out
}

// ContextHunk wraps a CONTEXT_HUNK node.
type ContextHunk struct{ n *Node }

func (h ContextHunk) Node() *Node { return h.n }

// OldSection returns the bracketed `*** N,M ****` section.
func (h ContextHunk) OldSection() (*Node, bool) { return firstChildOfKind(h.n, CONTEXT_OLD_SECTION) }

// NewSection returns the bracketed `--- N,M ----` section.
func (h ContextHunk) NewSection() (*Node, bool) { return firstChildOfKind(h.n, CONTEXT_NEW_SECTION) }

// EdCommand wraps one of ED_ADD_COMMAND, ED_DELETE_COMMAND,
// ED_CHANGE_COMMAND.
type EdCommand struct{ n *Node }

func (c EdCommand) Node() *Node { return c.n }

// ContentLines returns the command's `> `/`< ` content lines, in order.
func (c EdCommand) ContentLines() []*Node {
	return childrenOfKind(c.n, ED_CONTENT_LINE)
}

// NormalHunk wraps a NORMAL_HUNK node.
type NormalHunk struct{ n *Node }

func (h NormalHunk) Node() *Node { return h.n }

// OldLines returns the `< ` lines of the hunk.
func (h NormalHunk) OldLines() (*Node, bool) { return firstChildOfKind(h.n, NORMAL_OLD_LINES) }

// NewLines returns the `> ` lines of the hunk.
func (h NormalHunk) NewLines() (*Node, bool) { return firstChildOfKind(h.n, NORMAL_NEW_LINES) }
