package patch

import "bytes"

// EntryKind tags one chunk produced by the multi-file stream splitter.
type EntryKind int8

const (
	// JunkEntry is a run of lines outside any recognized patch.
	JunkEntry EntryKind = iota
	// MetaEntry is a single "=== ..." VCS metadata line.
	MetaEntry
	// PatchEntryKind is a contiguous run of lines belonging to one file's
	// unified (or binary) patch.
	PatchEntryKind
)

// Entry is one chunk yielded by SplitEntries.
type Entry struct {
	Kind  EntryKind
	Lines [][]byte // JunkEntry, PatchEntryKind
	Line  []byte   // MetaEntry
}

type splitterState int8

const (
	stateOutside splitterState = iota
	stateInPatch
	stateInHunkBody
)

// SplitEntries classifies data's lines into Junk, Meta, and Patch chunks
// per the state machine in §4.3/§4.9: {Outside, InPatch, InHunkBody}. A
// "--- " line starts a new Patch chunk, which then collects the following
// lines (headers, hunks, and any other text) up to the next "--- " or
// "=== " line; Meta chunks hold "=== " lines singly; Junk chunks hold the
// text before the first "--- " line. Outside a hunk body, lines starting
// with "*** " or "#" are dropped.
func SplitEntries(data []byte) []Entry {
	lines := SplitLines(data)
	var entries []Entry
	var junk, current [][]byte
	state := stateOutside
	origRemaining, modRemaining := 0, 0

	flushJunk := func() {
		if len(junk) > 0 {
			entries = append(entries, Entry{Kind: JunkEntry, Lines: junk})
			junk = nil
		}
	}
	flushPatch := func() {
		if len(current) > 0 {
			entries = append(entries, Entry{Kind: PatchEntryKind, Lines: current})
			current = nil
		}
	}

	for _, line := range lines {
		if state == stateInHunkBody {
			current = append(current, line)
			if string(line) != noNewlineMarker {
				switch firstByte(line) {
				case '-':
					origRemaining--
				case '+':
					modRemaining--
				case ' ':
					origRemaining--
					modRemaining--
				}
			}
			if origRemaining <= 0 && modRemaining <= 0 {
				state = stateInPatch
			}
			continue
		}

		switch {
		case bytes.HasPrefix(line, []byte("--- ")):
			flushPatch()
			if state == stateOutside {
				flushJunk()
			}
			current = append(current, line)
			state = stateInPatch
		case bytes.HasPrefix(line, []byte("+++ ")) && state == stateInPatch:
			current = append(current, line)
		case bytes.HasPrefix(line, []byte("@@")):
			current = append(current, line)
			if h, err := HunkFromHeader(line); err == nil {
				origRemaining, modRemaining = h.OrigRange, h.ModRange
				if origRemaining > 0 || modRemaining > 0 {
					state = stateInHunkBody
				}
			}
		case bytes.HasPrefix(line, []byte("=== ")):
			flushPatch()
			flushJunk()
			entries = append(entries, Entry{Kind: MetaEntry, Line: line})
		case bytes.HasPrefix(line, []byte("*** ")), bytes.HasPrefix(line, []byte("#")):
			// Comment line outside a hunk, per §4.3/§9 open question #2 for
			// the semantic splitter: always skipped here, whatever line
			// follows it.
		default:
			if state == stateInPatch {
				current = append(current, line)
			} else {
				junk = append(junk, line)
			}
		}
	}
	flushPatch()
	flushJunk()
	return entries
}

func firstByte(line []byte) byte {
	if len(line) == 0 {
		return 0
	}
	return line[0]
}

// StreamItem wraps one Entry together with its parsed Patch, if any. A
// parse failure on one file's lines is captured in Err rather than
// aborting the whole stream.
type StreamItem struct {
	Kind  EntryKind
	Junk  [][]byte
	Meta  []byte
	Patch Patch
	Err   error
}

// ParseStream splits data into entries and parses every PatchEntryKind
// chunk, per §4.3's "multi-file stream splitter... each Patch chunk is
// then fed to the single-file parser".
func ParseStream(data []byte) []StreamItem {
	entries := SplitEntries(data)
	items := make([]StreamItem, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case JunkEntry:
			items = append(items, StreamItem{Kind: JunkEntry, Junk: e.Lines})
		case MetaEntry:
			items = append(items, StreamItem{Kind: MetaEntry, Meta: e.Line})
		case PatchEntryKind:
			p, err := ParsePatch(e.Lines)
			items = append(items, StreamItem{Kind: PatchEntryKind, Patch: p, Err: err})
		}
	}
	return items
}
