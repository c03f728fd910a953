// Package ed implements the ed-script diff dialect (diff -e): a sequence
// of append/delete/change commands applied sequentially to an in-memory
// array of lines.
package ed

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/antgroup/patchkit/patch"
)

// HunkKind tags an EdHunk's command.
type HunkKind int8

const (
	Add HunkKind = iota
	Remove
	Change
)

// Hunk is one ed-script command: `<start>{a,d,c}<end>` (e.g. `5a10`). Start and End are
// 1-based line numbers in the file as it stood when this hunk is reached;
// Start <= End.
type Hunk struct {
	Kind  HunkKind
	Start int
	End   int
	// Old holds the expected removed/changed lines (Remove, Change); New
	// holds the lines to insert (Add, Change). Each line includes its
	// trailing newline except possibly the last.
	Old [][]byte
	New [][]byte
}

// Patch is an ordered sequence of ed-script hunks, applied in file order
// against the evolving line array (per spec.md §3, "applied sequentially").
type Patch struct {
	Hunks []*Hunk
}

var hunkHeaderRE = regexp.MustCompile(`^(\d+)([adc])(\d+)\n?$`)

// ParsePatch parses an already line-split ed script. Each command reads
// exactly one content line: `a` and the new side of `c` carry a "> "
// prefix, `d` and the old side of `c` carry a "< " prefix, and `c` alone
// separates its two content lines with a literal "---\n" line. This
// mirrors the original's one-`parse_hunk_line`-per-command model; there
// is no ".\n" terminator in this dialect.
func ParsePatch(lines [][]byte) (*Patch, error) {
	var hunks []*Hunk
	i := 0
	for i < len(lines) {
		line := lines[i]
		if len(bytes.TrimSpace(line)) == 0 {
			i++
			continue
		}
		m := hunkHeaderRE.FindSubmatch(line)
		if m == nil {
			return nil, patch.NewPatchSyntaxError("malformed ed hunk header", line)
		}
		start, err := atoi(m[1])
		if err != nil {
			return nil, patch.NewPatchSyntaxError(err.Error(), line)
		}
		end, err := atoi(m[3])
		if err != nil {
			return nil, patch.NewPatchSyntaxError(err.Error(), line)
		}
		if start > end {
			return nil, patch.NewPatchSyntaxError("ed hunk header start exceeds end", line)
		}
		i++

		h := &Hunk{Start: start, End: end}
		switch m[2][0] {
		case 'a':
			h.Kind = Add
			content, err := readContentLine(lines, i, '>')
			if err != nil {
				return nil, err
			}
			h.New = [][]byte{content}
			i++
		case 'd':
			h.Kind = Remove
			old, err := readContentLine(lines, i, '<')
			if err != nil {
				return nil, err
			}
			h.Old = [][]byte{old}
			i++
		case 'c':
			h.Kind = Change
			old, err := readContentLine(lines, i, '<')
			if err != nil {
				return nil, err
			}
			h.Old = [][]byte{old}
			i++
			if i >= len(lines) || string(lines[i]) != "---\n" {
				return nil, patch.NewPatchSyntaxError("expected \"---\" separator in change hunk", lineOrNil(lines, i))
			}
			i++
			newContent, err := readContentLine(lines, i, '>')
			if err != nil {
				return nil, err
			}
			h.New = [][]byte{newContent}
			i++
		}
		hunks = append(hunks, h)
	}
	return &Patch{Hunks: hunks}, nil
}

func lineOrNil(lines [][]byte, i int) []byte {
	if i < len(lines) {
		return lines[i]
	}
	return nil
}

// readContentLine reads exactly one line prefixed with "<prefix> "
// (prefix is '>' for added content, '<' for removed content, spec.md
// §6/GLOSSARY) and returns its de-prefixed payload.
func readContentLine(lines [][]byte, i int, prefix byte) ([]byte, error) {
	if i >= len(lines) {
		return nil, patch.NewPatchSyntaxError("unterminated ed content block", nil)
	}
	line := lines[i]
	if len(line) < 2 || line[0] != prefix || line[1] != ' ' {
		return nil, patch.NewPatchSyntaxError("malformed ed content line", line)
	}
	return line[2:], nil
}

func atoi(b []byte) (int, error) {
	n := 0
	if len(b) == 0 {
		return 0, fmt.Errorf("empty line number")
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-numeric line number %q", b)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// Apply runs every hunk in order against lines, an in-memory array of
// already-split lines, returning the result. Per the expanded Open
// Question decision (SPEC_FULL.md), Remove and Change hunks support
// Start <= End multi-line ranges, consuming End-Start+1 lines, rather
// than asserting Start == End.
func (p *Patch) Apply(lines [][]byte) ([][]byte, error) {
	out := append([][]byte(nil), lines...)
	for _, h := range p.Hunks {
		var err error
		out, err = h.apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (h *Hunk) apply(lines [][]byte) ([][]byte, error) {
	switch h.Kind {
	case Add:
		if h.Start < 0 || h.Start > len(lines) {
			return nil, patch.NewConflictError(h.Start, nil, nil)
		}
		out := make([][]byte, 0, len(lines)+len(h.New))
		out = append(out, lines[:h.Start]...)
		out = append(out, h.New...)
		out = append(out, lines[h.Start:]...)
		return out, nil
	case Remove:
		return h.removeRange(lines, nil)
	case Change:
		return h.removeRange(lines, h.New)
	}
	return lines, nil
}

// removeRange checks that lines[Start-1:End] match h.Old (when present,
// i.e. the hunk carries removal text to verify), then replaces that range
// with replacement.
func (h *Hunk) removeRange(lines [][]byte, replacement [][]byte) ([][]byte, error) {
	if h.Start < 1 || h.End < h.Start || h.End > len(lines) {
		return nil, patch.NewConflictError(h.Start, nil, nil)
	}
	lo, hi := h.Start-1, h.End // half-open [lo,hi)
	for idx := lo; idx < hi; idx++ {
		if h.Old != nil {
			wantIdx := idx - lo
			if wantIdx < len(h.Old) && !bytes.Equal(trimNL(lines[idx]), trimNL(h.Old[wantIdx])) {
				return nil, patch.NewConflictError(idx+1, lines[idx], h.Old[wantIdx])
			}
		}
	}
	out := make([][]byte, 0, len(lines)-(hi-lo)+len(replacement))
	out = append(out, lines[:lo]...)
	out = append(out, replacement...)
	out = append(out, lines[hi:]...)
	return out, nil
}

func trimNL(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\n"))
}
