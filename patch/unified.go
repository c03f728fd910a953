package patch

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/antgroup/patchkit/patchts"
)

// UnifiedPatch is a single-file unified diff: two file headers plus an
// ordered, non-overlapping sequence of hunks.
type UnifiedPatch struct {
	OrigName string
	OrigTS   string // empty when the header carried no timestamp
	ModName  string
	ModTS    string
	Hunks    []*Hunk
}

var binaryFilesRE = regexp.MustCompile(`^Binary files (.+) and (.+) differ(?:\r?\n)?$`)

// ParsePatch parses a single patch-stream entry (the lines belonging to one
// file) as either a BinaryPatch or a UnifiedPatch, dispatching on whether
// the first line is the binary-files indicator.
func ParsePatch(lines [][]byte) (Patch, error) {
	if len(lines) == 0 {
		return nil, NewPatchSyntaxError("empty patch entry", nil)
	}
	if m := binaryFilesRE.FindSubmatch(lines[0]); m != nil {
		return &BinaryPatch{OldName: string(m[1]), NewName: string(m[2])}, nil
	}
	return ParseUnifiedPatch(lines)
}

// ParseUnifiedPatch parses an already line-split (§4.1) sequence of lines
// into a UnifiedPatch: two header lines followed by zero or more hunks,
// with blank lines between hunks skipped.
func ParseUnifiedPatch(lines [][]byte) (*UnifiedPatch, error) {
	i := 0
	oldName, oldTS, err := parseFileHeader(lines, &i, "--- ")
	if err != nil {
		return nil, err
	}
	newName, newTS, err := parseFileHeader(lines, &i, "+++ ")
	if err != nil {
		return nil, err
	}

	var hunks []*Hunk
	for i < len(lines) {
		if len(bytes.TrimSpace(lines[i])) == 0 {
			i++
			continue
		}
		h, err := HunkFromHeader(lines[i])
		if err != nil {
			return nil, err
		}
		i++
		body, consumed, err := parseHunkBody(lines, i, h.OrigRange, h.ModRange)
		if err != nil {
			return nil, err
		}
		h.Lines = body
		i += consumed
		hunks = append(hunks, h)
	}

	return &UnifiedPatch{
		OrigName: oldName,
		OrigTS:   oldTS,
		ModName:  newName,
		ModTS:    newTS,
		Hunks:    hunks,
	}, nil
}

// OrigTimestamp parses OrigTS as a patch timestamp, returning the UTC unix
// time and offset it names. ok is false when OrigTS is empty or malformed.
func (p *UnifiedPatch) OrigTimestamp() (secs, offset int64, ok bool) {
	return parseOptionalTimestamp(p.OrigTS)
}

// ModTimestamp parses ModTS as a patch timestamp, returning the UTC unix
// time and offset it names. ok is false when ModTS is empty or malformed.
func (p *UnifiedPatch) ModTimestamp() (secs, offset int64, ok bool) {
	return parseOptionalTimestamp(p.ModTS)
}

func parseOptionalTimestamp(ts string) (secs, offset int64, ok bool) {
	if ts == "" {
		return 0, 0, false
	}
	secs, offset, err := patchts.Parse(ts)
	if err != nil {
		return 0, 0, false
	}
	return secs, offset, true
}

// parseFileHeader parses lines[*i], requiring it start with prefix
// ("--- " or "+++ "), splitting the remainder on the first tab into a path
// and an optional timestamp, and advances *i past the header.
func parseFileHeader(lines [][]byte, i *int, prefix string) (name, ts string, err error) {
	if *i >= len(lines) {
		return "", "", &MalformedPatchHeaderError{Message: fmt.Sprintf("missing %q header", prefix), Line: nil}
	}
	line := lines[*i]
	if !bytes.HasPrefix(line, []byte(prefix)) {
		return "", "", &MalformedPatchHeaderError{Message: fmt.Sprintf("expected %q prefix", prefix), Line: line}
	}
	rest := bytes.TrimSuffix(line[len(prefix):], []byte("\n"))
	parts := bytes.SplitN(rest, []byte("\t"), 2)
	*i++
	if len(parts) == 2 {
		return string(parts[0]), string(parts[1]), nil
	}
	return string(parts[0]), "", nil
}

// parseHunkBody consumes lines starting at start until origRange lines of
// {Context,Remove} and modRange lines of {Context,Insert} have both been
// seen, folding any "\ No newline at end of file" marker into the
// preceding line. It returns the parsed lines and how many raw input lines
// were consumed.
func parseHunkBody(lines [][]byte, start, origRange, modRange int) ([]HunkLine, int, error) {
	origRemaining, modRemaining := origRange, modRange
	var result []HunkLine
	i := start
	for origRemaining > 0 || modRemaining > 0 {
		if i >= len(lines) {
			return nil, 0, NewPatchSyntaxError("hunk truncated before end of input", nil)
		}
		line := lines[i]
		if string(line) == noNewlineMarker {
			if len(result) == 0 {
				return nil, 0, NewPatchSyntaxError("no-newline marker with no preceding hunk line", line)
			}
			last := result[len(result)-1]
			last.Payload = bytes.TrimSuffix(last.Payload, []byte("\n"))
			result[len(result)-1] = last
			i++
			continue
		}
		hl, err := ParseHunkLine(line)
		if err != nil {
			return nil, 0, err
		}
		switch hl.Kind {
		case Context:
			origRemaining--
			modRemaining--
		case Remove:
			origRemaining--
		case Insert:
			modRemaining--
		}
		result = append(result, hl)
		i++
	}
	if i < len(lines) && string(lines[i]) == noNewlineMarker && len(result) > 0 {
		last := result[len(result)-1]
		last.Payload = bytes.TrimSuffix(last.Payload, []byte("\n"))
		result[len(result)-1] = last
		i++
	}
	return result, i - start, nil
}

func headerLine(prefix, name, ts string) string {
	if ts == "" {
		return fmt.Sprintf("%s%s\n", prefix, name)
	}
	return fmt.Sprintf("%s%s\t%s\n", prefix, name, ts)
}

// AsBytes renders the file headers and then each hunk. Hunk headers are
// re-rendered from their ranges, so a count of 1 is written without ",1";
// input already in that form is reproduced byte-for-byte.
func (p *UnifiedPatch) AsBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(headerLine("--- ", p.OrigName, p.OrigTS))
	buf.WriteString(headerLine("+++ ", p.ModName, p.ModTS))
	for _, h := range p.Hunks {
		buf.Write(h.Bytes())
	}
	return buf.Bytes()
}

// ApplyExact applies every hunk in order to orig, per §4.3: matching
// Context/Remove lines byte-for-byte, emitting Context and Insert lines,
// and failing with a *ConflictError on the first mismatch or short file.
func (p *UnifiedPatch) ApplyExact(orig []byte) ([]byte, error) {
	origLines := SplitLines(orig)
	var out bytes.Buffer
	cursor := 0 // 0-based index into origLines, i.e. next unconsumed original line

	for _, h := range p.Hunks {
		// Emit unchanged lines up to the hunk's start.
		target := h.OrigPos - 1
		if target < cursor {
			target = cursor
		}
		for cursor < target {
			if cursor >= len(origLines) {
				return nil, NewConflictError(cursor+1, nil, nil)
			}
			out.Write(origLines[cursor])
			cursor++
		}
		for _, l := range h.Lines {
			switch l.Kind {
			case Context, Remove:
				if cursor >= len(origLines) {
					return nil, NewConflictError(cursor+1, nil, l.Payload)
				}
				observed := origLines[cursor]
				if !bytes.Equal(observed, l.Payload) {
					return nil, NewConflictError(cursor+1, observed, l.Payload)
				}
				if l.Kind == Context {
					out.Write(observed)
				}
				cursor++
			case Insert:
				out.Write(l.Payload)
			}
		}
	}
	for cursor < len(origLines) {
		out.Write(origLines[cursor])
		cursor++
	}
	return out.Bytes(), nil
}

