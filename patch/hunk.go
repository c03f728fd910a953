package patch

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// LineKind tags a HunkLine's role within a hunk.
type LineKind int8

const (
	// Context lines are present in both the original and modified file.
	Context LineKind = iota
	// Insert lines are present only in the modified file.
	Insert
	// Remove lines are present only in the original file.
	Remove
)

func (k LineKind) prefix() byte {
	switch k {
	case Insert:
		return '+'
	case Remove:
		return '-'
	default:
		return ' '
	}
}

// HunkLine is one line of a unified-diff hunk body: a tag plus the payload
// bytes, including the trailing newline unless this is the file's final
// line and the original lacked one.
type HunkLine struct {
	Kind    LineKind
	Payload []byte
}

// ParseHunkLine classifies line by its first byte: ' '->Context, '+'->Insert,
// '-'->Remove, and a bare "\n" is treated as an empty Context line. Any other
// leading byte is a PatchSyntaxError.
func ParseHunkLine(line []byte) (HunkLine, error) {
	if len(line) == 0 {
		return HunkLine{}, NewPatchSyntaxError("empty hunk line", line)
	}
	switch line[0] {
	case ' ':
		return HunkLine{Kind: Context, Payload: line[1:]}, nil
	case '+':
		return HunkLine{Kind: Insert, Payload: line[1:]}, nil
	case '-':
		return HunkLine{Kind: Remove, Payload: line[1:]}, nil
	case '\n':
		return HunkLine{Kind: Context, Payload: line}, nil
	default:
		return HunkLine{}, &PatchSyntaxError{Message: "unrecognized hunk line prefix", Line: line}
	}
}

// Bytes renders the line with its prefix byte, folding a missing trailing
// newline into the canonical "\ No newline at end of file" marker.
func (l HunkLine) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(l.Kind.prefix())
	if bytes.HasSuffix(l.Payload, []byte("\n")) || len(l.Payload) == 0 {
		buf.Write(l.Payload)
	} else {
		buf.Write(l.Payload)
		buf.WriteByte('\n')
		buf.WriteString(noNewlineMarker)
	}
	return buf.Bytes()
}

// Hunk is one `@@ ... @@` region of a unified diff.
type Hunk struct {
	OrigPos   int
	OrigRange int
	ModPos    int
	ModRange  int
	// Tail holds any bytes that followed the closing "@@" on the header
	// line, verbatim, minus the one separating space.
	Tail  string
	Lines []HunkLine
}

var hunkHeaderRE = regexp.MustCompile(`^@@ ([^@]*) @@(?: (.*))?\n?$`)

// HunkFromHeader parses a line of the form "@@ -A[,B] +C[,D] @@[ tail]\n".
func HunkFromHeader(line []byte) (*Hunk, error) {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		return nil, &MalformedHunkHeaderError{Message: "missing terminating newline", Line: line}
	}
	m := hunkHeaderRE.FindSubmatch(line)
	if m == nil {
		return nil, &MalformedHunkHeaderError{Message: "does not match @@ ... @@ grammar", Line: line}
	}
	ranges := bytes.Fields(m[1])
	if len(ranges) != 2 {
		return nil, &MalformedHunkHeaderError{Message: "expected two ranges", Line: line}
	}
	if len(ranges[0]) == 0 || ranges[0][0] != '-' {
		return nil, &MalformedHunkHeaderError{Message: "old range missing '-' sign", Line: line}
	}
	if len(ranges[1]) == 0 || ranges[1][0] != '+' {
		return nil, &MalformedHunkHeaderError{Message: "new range missing '+' sign", Line: line}
	}
	origPos, origRange, err := parseRange(ranges[0][1:])
	if err != nil {
		return nil, &MalformedHunkHeaderError{Message: err.Error(), Line: line}
	}
	modPos, modRange, err := parseRange(ranges[1][1:])
	if err != nil {
		return nil, &MalformedHunkHeaderError{Message: err.Error(), Line: line}
	}
	return &Hunk{
		OrigPos:   origPos,
		OrigRange: origRange,
		ModPos:    modPos,
		ModRange:  modRange,
		Tail:      string(m[2]),
	}, nil
}

// parseRange parses "N" or "N,M"; a bare "N" defaults the count to 1.
func parseRange(s []byte) (pos, count int, err error) {
	parts := bytes.SplitN(s, []byte(","), 2)
	pos, err = strconv.Atoi(string(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric range position %q", parts[0])
	}
	if len(parts) == 1 {
		return pos, 1, nil
	}
	count, err = strconv.Atoi(string(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric range count %q", parts[1])
	}
	return pos, count, nil
}

// rangeString renders a range, omitting the count when it equals 1.
func rangeString(sign byte, pos, count int) string {
	if count == 1 {
		return fmt.Sprintf("%c%d", sign, pos)
	}
	return fmt.Sprintf("%c%d,%d", sign, pos, count)
}

// Header renders the hunk's "@@ ... @@" line.
func (h *Hunk) Header() string {
	old := rangeString('-', h.OrigPos, h.OrigRange)
	new := rangeString('+', h.ModPos, h.ModRange)
	if h.Tail == "" {
		return fmt.Sprintf("@@ %s %s @@\n", old, new)
	}
	return fmt.Sprintf("@@ %s %s @@ %s\n", old, new, h.Tail)
}

// Bytes renders the full hunk: header followed by every line.
func (h *Hunk) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(h.Header())
	for _, l := range h.Lines {
		buf.Write(l.Bytes())
	}
	return buf.Bytes()
}

// ShiftToMod returns the signed line-count offset that a 0-based line
// index in the original file is translated by after this hunk is applied. The
// zero value means "this far out, nothing has shifted yet"; a nil return
// means pos names a line the hunk deletes, so it has no image in the
// modified file.
func (h *Hunk) ShiftToMod(pos int) *int {
	zero := 0
	if pos < h.OrigPos-1 {
		return &zero
	}
	tail := h.ModRange - h.OrigRange
	if pos > h.OrigPos+h.OrigRange-1 {
		return &tail
	}
	return h.shiftToModLines(pos)
}

func (h *Hunk) shiftToModLines(pos int) *int {
	position := h.OrigPos - 1
	shift := 0
	for _, l := range h.Lines {
		if position > pos {
			break
		}
		switch l.Kind {
		case Insert:
			shift++
		case Remove:
			if position == pos {
				return nil
			}
			shift--
			position++
		case Context:
			position++
		}
	}
	return &shift
}
