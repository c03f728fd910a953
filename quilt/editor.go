package quilt

import "github.com/antgroup/patchkit/cst"

// This file is the structural editor for series files: single-entry
// operations bottom out in cst.SpliceChildren, grounded on
// original_source/src/edit/quilt/editor.rs's use of rowan's
// splice_children (spec.md §4.7); Clear, UpdateAll and Reorder build the
// new root node directly from a filtered or rewritten copy of its
// children. Each method returns a new SeriesFile
// rather than mutating in place (spec.md §5, "Edits return... new
// versions"): the underlying tree is persistent, so an edit only
// reallocates the spine from the root down to the touched entry.

func isPatchSeriesEntry(el cst.Element) (PatchEntry, bool) {
	if el.Node == nil || el.Node.Kind != cst.SERIES_ENTRY {
		return PatchEntry{}, false
	}
	return SeriesEntry{el.Node}.AsPatchEntry()
}

// buildPatchSeriesEntry constructs a standalone SERIES_ENTRY subtree
// wrapping a PATCH_ENTRY: PATCH_NAME, an optional OPTIONS node of
// SPACE-separated OPTION_ITEM children, and a final NEWLINE (spec.md
// §4.7, "Constructing a new patch subtree builds...").
func buildPatchSeriesEntry(name string, options []string) cst.Element {
	var b cst.Builder
	b.StartNode(cst.SERIES_ENTRY)
	b.StartNode(cst.PATCH_ENTRY)
	b.Token(cst.PATCH_NAME, []byte(name))
	if len(options) > 0 {
		b.StartNode(cst.OPTIONS)
		for _, opt := range options {
			b.Token(cst.SPACE, []byte(" "))
			b.StartNode(cst.OPTION_ITEM)
			b.Token(cst.OPTION, []byte(opt))
			b.FinishNode()
		}
		b.FinishNode()
	}
	b.Token(cst.NEWLINE, []byte("\n"))
	b.FinishNode() // PATCH_ENTRY
	b.FinishNode() // SERIES_ENTRY
	return cst.Element{Node: b.Finish()}
}

// buildCommentSeriesEntry constructs a standalone SERIES_ENTRY subtree
// wrapping a COMMENT_LINE: `# ` followed by text and a final NEWLINE.
func buildCommentSeriesEntry(text string) cst.Element {
	var b cst.Builder
	b.StartNode(cst.SERIES_ENTRY)
	b.StartNode(cst.COMMENT_LINE)
	b.Token(cst.HASH, []byte("#"))
	b.Token(cst.SPACE, []byte(" "))
	b.Token(cst.TEXT, []byte(text))
	b.Token(cst.NEWLINE, []byte("\n"))
	b.FinishNode() // COMMENT_LINE
	b.FinishNode() // SERIES_ENTRY
	return cst.Element{Node: b.Finish()}
}

// Insert returns a new SeriesFile with a patch entry for name inserted
// at the given patch-counted index (comments and blank lines are
// skipped when counting, but preserved in place). An out-of-range index
// appends.
func (f SeriesFile) Insert(index int, name string, options []string) SeriesFile {
	children := f.n.Children
	patchCount := 0
	insertionIndex := 0
	for i, el := range children {
		if _, ok := isPatchSeriesEntry(el); ok {
			if patchCount == index {
				insertionIndex = i
				return New(cst.SpliceChildren(f.n, insertionIndex, insertionIndex, []cst.Element{buildPatchSeriesEntry(name, options)}))
			}
			patchCount++
		}
		insertionIndex = i + 1
	}
	return New(cst.SpliceChildren(f.n, insertionIndex, insertionIndex, []cst.Element{buildPatchSeriesEntry(name, options)}))
}

// Push appends a patch entry at the end of the series.
func (f SeriesFile) Push(name string, options []string) SeriesFile {
	return f.Insert(f.Len(), name, options)
}

// Prepend adds a patch entry at the beginning of the series.
func (f SeriesFile) Prepend(name string, options []string) SeriesFile {
	return f.Insert(0, name, options)
}

// Remove returns a new SeriesFile with the named patch entry removed,
// and true, or the file unchanged and false if no such entry exists.
func (f SeriesFile) Remove(name string) (SeriesFile, bool) {
	for i, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			if n, ok2 := p.Name(); ok2 && n == name {
				return New(cst.SpliceChildren(f.n, i, i+1, nil)), true
			}
		}
	}
	return f, false
}

// SetOptions returns a new SeriesFile with the named patch entry's
// options replaced, and true, or the file unchanged and false if no
// such entry exists.
func (f SeriesFile) SetOptions(name string, options []string) (SeriesFile, bool) {
	for i, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			if n, ok2 := p.Name(); ok2 && n == name {
				replacement := buildPatchSeriesEntry(name, options)
				return New(cst.SpliceChildren(f.n, i, i+1, []cst.Element{replacement})), true
			}
		}
	}
	return f, false
}

// Rename returns a new SeriesFile with the patch entry named oldName
// renamed to newName, keeping its existing options, and true, or the
// file unchanged and false if no such entry exists.
func (f SeriesFile) Rename(oldName, newName string) (SeriesFile, bool) {
	for i, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			if n, ok2 := p.Name(); ok2 && n == oldName {
				replacement := buildPatchSeriesEntry(newName, p.OptionStrings())
				return New(cst.SpliceChildren(f.n, i, i+1, []cst.Element{replacement})), true
			}
		}
	}
	return f, false
}

// MoveTo returns a new SeriesFile with the named patch entry relocated
// to the given patch-counted index, and true, or the file unchanged and
// false if no such entry exists.
func (f SeriesFile) MoveTo(name string, newIndex int) (SeriesFile, bool) {
	var options []string
	oldIndex := -1
	for i, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			if n, ok2 := p.Name(); ok2 && n == name {
				options = p.OptionStrings()
				oldIndex = i
				break
			}
		}
	}
	if oldIndex < 0 {
		return f, false
	}
	removed := New(cst.SpliceChildren(f.n, oldIndex, oldIndex+1, nil))
	return removed.Insert(newIndex, name, options), true
}

// AddComment appends a comment line at the end of the series.
func (f SeriesFile) AddComment(text string) SeriesFile {
	end := len(f.n.Children)
	return New(cst.SpliceChildren(f.n, end, end, []cst.Element{buildCommentSeriesEntry(text)}))
}

// InsertComment inserts a comment line at the given raw top-level entry
// index (counting every entry, not just patches). An out-of-range index
// appends.
func (f SeriesFile) InsertComment(index int, text string) SeriesFile {
	if index < 0 || index > len(f.n.Children) {
		index = len(f.n.Children)
	}
	return New(cst.SpliceChildren(f.n, index, index, []cst.Element{buildCommentSeriesEntry(text)}))
}

// Clear returns a new SeriesFile with every patch entry removed;
// comments and blank lines are kept in place.
func (f SeriesFile) Clear() SeriesFile {
	kept := make([]cst.Element, 0, len(f.n.Children))
	for _, el := range f.n.Children {
		if _, ok := isPatchSeriesEntry(el); ok {
			continue
		}
		kept = append(kept, el)
	}
	return New(&cst.Node{Kind: f.n.Kind, Children: kept})
}

// Contains reports whether a patch entry named name exists.
func (f SeriesFile) Contains(name string) bool {
	_, ok := f.Position(name)
	return ok
}

// Position returns the patch-counted index of the named entry, and
// true, or false if no such entry exists.
func (f SeriesFile) Position(name string) (int, bool) {
	for i, p := range f.PatchEntries() {
		if n, ok := p.Name(); ok && n == name {
			return i, true
		}
	}
	return 0, false
}

// UpdateAll returns a new SeriesFile with fn applied to every patch
// entry's (name, options), replacing its options with fn's result.
// Non-patch entries are left untouched.
func (f SeriesFile) UpdateAll(fn func(name string, options []string) []string) SeriesFile {
	children := make([]cst.Element, len(f.n.Children))
	for i, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			name, _ := p.Name()
			children[i] = buildPatchSeriesEntry(name, fn(name, p.OptionStrings()))
			continue
		}
		children[i] = el
	}
	return New(&cst.Node{Kind: f.n.Kind, Children: children})
}

// Reorder returns a new SeriesFile with its patch entries rearranged to
// match order (a permutation of every existing patch name), and true.
// Comments and blank lines keep their existing top-level positions.
// Reports false, leaving the file unchanged, if order is not exactly
// the set of existing patch names.
func (f SeriesFile) Reorder(order []string) (SeriesFile, bool) {
	byName := make(map[string]cst.Element, len(order))
	count := 0
	for _, el := range f.n.Children {
		if p, ok := isPatchSeriesEntry(el); ok {
			if name, ok2 := p.Name(); ok2 {
				byName[name] = el
				count++
			}
		}
	}
	if len(order) != count {
		return f, false
	}
	reordered := make([]cst.Element, 0, len(order))
	for _, name := range order {
		el, ok := byName[name]
		if !ok {
			return f, false
		}
		reordered = append(reordered, el)
	}

	children := make([]cst.Element, 0, len(f.n.Children))
	next := 0
	for _, el := range f.n.Children {
		if _, ok := isPatchSeriesEntry(el); ok {
			children = append(children, reordered[next])
			next++
			continue
		}
		children = append(children, el)
	}
	return New(&cst.Node{Kind: f.n.Kind, Children: children}), true
}
