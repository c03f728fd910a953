package quilt

import "github.com/antgroup/patchkit/cst"

// SeriesFile wraps a SERIES_ROOT node: a quilt series file's full,
// lossless content.
type SeriesFile struct{ n *cst.Node }

// New wraps a parsed tree as a SeriesFile.
func New(n *cst.Node) SeriesFile { return SeriesFile{n} }

// Node returns the underlying tree root.
func (f SeriesFile) Node() *cst.Node { return f.n }

// Bytes returns the file's exact source bytes.
func (f SeriesFile) Bytes() []byte { return f.n.Bytes() }

func childrenOfKind(n *cst.Node, kind cst.Kind) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

func firstChildOfKind(n *cst.Node, kind cst.Kind) (*cst.Node, bool) {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node, true
		}
	}
	return nil, false
}

// Entries returns every SERIES_ENTRY in the file, including comment-only
// and whitespace-only lines, in source order. An empty line is a bare
// NEWLINE token under the root, not an entry.
func (f SeriesFile) Entries() []SeriesEntry {
	var out []SeriesEntry
	for _, n := range childrenOfKind(f.n, cst.SERIES_ENTRY) {
		out = append(out, SeriesEntry{n})
	}
	return out
}

// PatchEntries returns every patch entry in the file, in source order.
func (f SeriesFile) PatchEntries() []PatchEntry {
	var out []PatchEntry
	for _, e := range f.Entries() {
		if p, ok := e.AsPatchEntry(); ok {
			out = append(out, p)
		}
	}
	return out
}

// CommentLines returns every comment line in the file, in source order.
func (f SeriesFile) CommentLines() []CommentLine {
	var out []CommentLine
	for _, e := range f.Entries() {
		if c, ok := e.AsCommentLine(); ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of patch entries in the file.
func (f SeriesFile) Len() int { return len(f.PatchEntries()) }

// IsEmpty reports whether the file has no patch entries.
func (f SeriesFile) IsEmpty() bool { return f.Len() == 0 }

// SeriesEntry wraps a SERIES_ENTRY node: one line of the series file,
// either a patch entry, a comment, or a whitespace-only line.
type SeriesEntry struct{ n *cst.Node }

func (e SeriesEntry) Node() *cst.Node { return e.n }

// AsPatchEntry reports whether this entry is a patch entry.
func (e SeriesEntry) AsPatchEntry() (PatchEntry, bool) {
	n, ok := firstChildOfKind(e.n, cst.PATCH_ENTRY)
	if !ok {
		return PatchEntry{}, false
	}
	return PatchEntry{n}, true
}

// AsCommentLine reports whether this entry is a comment line.
func (e SeriesEntry) AsCommentLine() (CommentLine, bool) {
	n, ok := firstChildOfKind(e.n, cst.COMMENT_LINE)
	if !ok {
		return CommentLine{}, false
	}
	return CommentLine{n}, true
}

// PatchEntry wraps a PATCH_ENTRY node: one referenced patch file, plus
// whatever quilt options (`-p1`, `--reverse`, ...) follow its name.
type PatchEntry struct{ n *cst.Node }

func (p PatchEntry) Node() *cst.Node { return p.n }

// Name returns the patch's file name.
func (p PatchEntry) Name() (string, bool) {
	for _, c := range p.n.Children {
		if c.Token != nil && c.Token.Kind == cst.PATCH_NAME {
			return string(c.Token.Text), true
		}
	}
	return "", false
}

// Options returns the OPTIONS node, if this entry has any options.
func (p PatchEntry) Options() (Options, bool) {
	n, ok := firstChildOfKind(p.n, cst.OPTIONS)
	if !ok {
		return Options{}, false
	}
	return Options{n}, true
}

// OptionStrings returns every option string attached to this entry, in
// order, or nil if it has none.
func (p PatchEntry) OptionStrings() []string {
	opts, ok := p.Options()
	if !ok {
		return nil
	}
	return opts.Strings()
}

// CommentLine wraps a COMMENT_LINE node.
type CommentLine struct{ n *cst.Node }

func (c CommentLine) Node() *cst.Node { return c.n }

// Text returns the comment's text, excluding the leading `#` and any
// whitespace immediately following it.
func (c CommentLine) Text() string {
	var out []byte
	foundHash := false
	for _, el := range c.n.Children {
		if el.Token == nil {
			continue
		}
		switch el.Token.Kind {
		case cst.HASH:
			foundHash = true
		case cst.TEXT:
			if foundHash {
				out = append(out, el.Token.Text...)
			}
		}
	}
	return string(out)
}

// FullText returns the comment line's exact source bytes, including the
// `#` prefix and trailing newline.
func (c CommentLine) FullText() []byte { return c.n.Bytes() }

// Options wraps an OPTIONS node.
type Options struct{ n *cst.Node }

func (o Options) Node() *cst.Node { return o.n }

// Items returns every OPTION_ITEM under this node, in order.
func (o Options) Items() []OptionItem {
	var out []OptionItem
	for _, n := range childrenOfKind(o.n, cst.OPTION_ITEM) {
		out = append(out, OptionItem{n})
	}
	return out
}

// Strings returns every option's raw text, in order.
func (o Options) Strings() []string {
	var out []string
	for _, it := range o.Items() {
		if v, ok := it.Value(); ok {
			out = append(out, v)
		}
	}
	return out
}

// OptionItem wraps an OPTION_ITEM node: a single option token.
type OptionItem struct{ n *cst.Node }

func (i OptionItem) Node() *cst.Node { return i.n }

// Value returns the option's raw text (e.g. "-p1").
func (i OptionItem) Value() (string, bool) {
	for _, c := range i.n.Children {
		if c.Token != nil && c.Token.Kind == cst.OPTION {
			return string(c.Token.Text), true
		}
	}
	return "", false
}
