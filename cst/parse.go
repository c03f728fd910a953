package cst

import (
	"bytes"
	"regexp"

	"github.com/antgroup/patchkit/patch"
)

// Parser drives the dialect dispatcher documented in spec.md §9
// ("Multi-dialect dispatch"): a tagged variant at the root rather than
// inheritance, sharing only the lexer and the checkpoint builder across
// dialects.
type parser struct {
	lines  [][]byte
	offset []int // byte offset of lines[i] into the original input
	pos    int
	b      Builder
	errors []Diagnostic
}

const noNewlineMarker = "\\ No newline at end of file\n"

var (
	edHeaderRE    = regexp.MustCompile(`^(\d+)([adc])(\d+)\n?$`)
	normalHunkRE  = regexp.MustCompile(`^(\d+)(?:,(\d+))?([adc])(\d+)(?:,(\d+))?\n?$`)
	contextRangeRE = regexp.MustCompile(`^\*\*\* (\d+)(?:,(\d+))? \*\*\*\*\n?$`)
	contextNewRE   = regexp.MustCompile(`^--- (\d+)(?:,(\d+))? ----\n?$`)
)

// Parse lexes and parses input into a lossless concrete syntax tree. It
// never fails: malformed constructs become ERROR nodes and diagnostics,
// and parsing continues with the next line (spec.md §8 scenario S5).
func Parse(input []byte) *Parse {
	lines := patch.SplitLines(input)
	offsets := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		offsets[i] = off
		off += len(l)
	}
	p := &parser{lines: lines, offset: offsets}
	p.b.StartNode(ROOT)
	p.parseRoot()
	p.b.FinishNode()
	return &Parse{tree: p.b.Finish(), errors: p.errors}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.lines) }

func (p *parser) line() []byte { return p.lines[p.pos] }

func (p *parser) lineRange() TextRange {
	start := p.offset[p.pos]
	return TextRange{Start: start, End: start + len(p.lines[p.pos])}
}

// emitLine wraps the current line's lexed tokens in a node of the given
// kind and advances past it.
func (p *parser) emitLine(kind Kind) {
	p.b.StartNode(kind)
	for _, tok := range lexLine(p.line()) {
		p.b.Token(tok.Kind, tok.Text)
	}
	p.b.FinishNode()
	p.pos++
}

// emitError records a diagnostic and wraps the current line in an ERROR
// node, so the byte-exactness invariant holds even over garbage input.
func (p *parser) emitError(message string) {
	p.errors = append(p.errors, Diagnostic{Message: message, Range: p.lineRange()})
	p.emitLine(ERROR)
}

// lexLine tokenizes one line, dropping the synthetic EOF sentinel that Lex
// always appends (meaningful only for a whole-input lex).
func lexLine(line []byte) []Token {
	toks := Lex(line)
	if n := len(toks); n > 0 && toks[n-1].Kind == EOF {
		toks = toks[:n-1]
	}
	return toks
}

func (p *parser) parseRoot() {
	for !p.atEnd() {
		line := p.line()
		switch {
		case len(bytes.TrimSpace(line)) == 0:
			p.emitLine(JUNK)
		case bytes.HasPrefix(line, []byte("*** ")):
			if p.looksLikeContextHunkRange(line) {
				p.b.StartNode(CONTEXT_DIFF_FILE)
				p.parseContextHunk()
				p.b.FinishNode()
			} else {
				p.parseContextDiffFile()
			}
		case bytes.HasPrefix(line, []byte("--- ")) && !p.looksLikeContextNewSection(line):
			p.parsePatchFile()
		case bytes.HasPrefix(line, []byte("+++ ")):
			p.parsePatchFile()
		case edHeaderRE.Match(line):
			p.parseEdCommand()
		case normalHunkRE.Match(line):
			p.parseNormalHunk()
		default:
			p.emitLine(JUNK)
		}
	}
}

func (p *parser) looksLikeContextHunkRange(line []byte) bool {
	return contextRangeRE.Match(line)
}

func (p *parser) looksLikeContextNewSection(line []byte) bool {
	return contextNewRE.Match(line)
}

// --- Unified diff (PATCH_FILE) ---

func (p *parser) parsePatchFile() {
	p.b.StartNode(PATCH_FILE)
	if !p.atEnd() && bytes.HasPrefix(p.line(), []byte("--- ")) {
		p.emitLine(OLD_FILE)
	}
	if !p.atEnd() && bytes.HasPrefix(p.line(), []byte("+++ ")) {
		p.emitLine(NEW_FILE)
	}
	for !p.atEnd() && bytes.HasPrefix(p.line(), []byte("@@")) {
		p.parseHunk()
	}
	p.b.FinishNode()
}

func (p *parser) parseHunk() {
	header := p.line()
	h, err := patch.HunkFromHeader(header)
	if err != nil {
		p.emitError("malformed hunk header: " + err.Error())
		return
	}
	p.b.StartNode(HUNK)
	p.emitLine(HUNK_HEADER)

	origRemaining, modRemaining := h.OrigRange, h.ModRange
	for origRemaining > 0 || modRemaining > 0 {
		if p.atEnd() {
			p.errors = append(p.errors, Diagnostic{Message: "hunk truncated before end of input"})
			break
		}
		line := p.line()
		if string(line) == noNewlineMarker {
			p.emitLine(NO_NEWLINE_LINE)
			continue
		}
		hl, err := patch.ParseHunkLine(line)
		if err != nil {
			p.emitError("malformed hunk line: " + err.Error())
			continue
		}
		switch hl.Kind {
		case patch.Context:
			p.emitLine(CONTEXT_LINE)
			origRemaining--
			modRemaining--
		case patch.Remove:
			p.emitLine(DELETE_LINE)
			origRemaining--
		case patch.Insert:
			p.emitLine(ADD_LINE)
			modRemaining--
		}
	}
	// A "\ No newline at end of file" marker following the hunk's last
	// line arrives after origRemaining/modRemaining have already hit
	// zero; fold it into this HUNK instead of leaving it for the
	// caller to see as an unrecognized top-level line.
	for !p.atEnd() && string(p.line()) == noNewlineMarker {
		p.emitLine(NO_NEWLINE_LINE)
	}
	p.b.FinishNode()
}

// --- Context diff (CONTEXT_DIFF_FILE) ---

func (p *parser) parseContextDiffFile() {
	p.b.StartNode(CONTEXT_DIFF_FILE)
	if !p.atEnd() && bytes.HasPrefix(p.line(), []byte("*** ")) {
		p.emitLine(CONTEXT_OLD_FILE)
	}
	if !p.atEnd() && bytes.HasPrefix(p.line(), []byte("--- ")) {
		p.emitLine(CONTEXT_NEW_FILE)
	}
	for !p.atEnd() && contextRangeRE.Match(p.line()) {
		p.parseContextHunk()
	}
	p.b.FinishNode()
}

// parseContextHunk parses one `*** N,M ****` / `--- N,M ----` pair and the
// lines bracketed by each, as a single CONTEXT_HUNK node.
func (p *parser) parseContextHunk() {
	p.b.StartNode(CONTEXT_HUNK)
	p.emitLine(CONTEXT_HUNK_HEADER)

	p.b.StartNode(CONTEXT_OLD_SECTION)
	for !p.atEnd() && !contextNewRE.Match(p.line()) {
		p.emitContextBodyLine()
	}
	p.b.FinishNode()

	if !p.atEnd() && contextNewRE.Match(p.line()) {
		p.b.StartNode(CONTEXT_NEW_SECTION)
		p.emitLine(CONTEXT_HUNK_HEADER)
		for !p.atEnd() && !p.isHunkOrFileBoundary() {
			p.emitContextBodyLine()
		}
		p.b.FinishNode()
	}
	p.b.FinishNode()
}

func (p *parser) isHunkOrFileBoundary() bool {
	line := p.line()
	return contextRangeRE.Match(line) || bytes.HasPrefix(line, []byte("*** "))
}

func (p *parser) emitContextBodyLine() {
	line := p.line()
	switch {
	case bytes.HasPrefix(line, []byte("+ ")), bytes.HasPrefix(line, []byte("+\t")):
		p.emitLine(ADD_LINE)
	case bytes.HasPrefix(line, []byte("- ")), bytes.HasPrefix(line, []byte("-\t")):
		p.emitLine(DELETE_LINE)
	case bytes.HasPrefix(line, []byte("! ")):
		p.emitLine(CONTEXT_CHANGE_LINE)
	default:
		p.emitLine(CONTEXT_LINE)
	}
}

// --- Ed script (ED_COMMAND) ---

func (p *parser) parseEdCommand() {
	m := edHeaderRE.FindSubmatch(p.line())
	kind := ED_COMMAND
	switch m[2][0] {
	case 'a':
		kind = ED_ADD_COMMAND
	case 'd':
		kind = ED_DELETE_COMMAND
	case 'c':
		kind = ED_CHANGE_COMMAND
	}
	p.b.StartNode(kind)
	p.emitLine(HUNK_HEADER)
	for !p.atEnd() && !edHeaderRE.Match(p.line()) {
		line := p.line()
		if bytes.Equal(line, []byte("---\n")) || bytes.Equal(line, []byte("---")) {
			p.emitLine(NORMAL_SEPARATOR)
			continue
		}
		if len(bytes.TrimRight(line, "\n")) == 1 && line[0] == '.' {
			p.emitLine(NORMAL_SEPARATOR)
			break
		}
		p.emitLine(ED_CONTENT_LINE)
	}
	p.b.FinishNode()
}

// --- Normal diff (NORMAL_HUNK) ---

func (p *parser) parseNormalHunk() {
	p.b.StartNode(NORMAL_HUNK)
	p.emitLine(NORMAL_CHANGE_COMMAND)

	p.b.StartNode(NORMAL_OLD_LINES)
	for !p.atEnd() && bytes.HasPrefix(p.line(), []byte("< ")) {
		p.emitLine(DELETE_LINE)
	}
	p.b.FinishNode()

	if !p.atEnd() && (bytes.Equal(p.line(), []byte("---\n")) || bytes.Equal(p.line(), []byte("---"))) {
		p.emitLine(NORMAL_SEPARATOR)
	}

	p.b.StartNode(NORMAL_NEW_LINES)
	for !p.atEnd() && bytes.HasPrefix(p.line(), []byte("> ")) {
		p.emitLine(ADD_LINE)
	}
	p.b.FinishNode()

	p.b.FinishNode()
}
