// Package quilt implements a lossless parser and structural editor for
// quilt series files: the newline-separated list of patch names (each
// with optional quilt options) and `#`-prefixed comments that drives
// quilt's patch stack. It builds on the cst package's tree and splice
// primitives rather than a parallel implementation.
package quilt

import "github.com/antgroup/patchkit/cst"

// Lex tokenizes a series file's bytes. Unlike cst.Lex, a patch name or
// option token only starts at the beginning of a line or right after
// whitespace; everywhere else a run of characters is TEXT, matching
// original_source/src/edit/quilt/lex.rs's "comment body is all text"
// rule for the remainder of a `#` line.
func Lex(input []byte) []cst.Token {
	l := &quiltLexer{input: input, atLineStart: true}
	var toks []cst.Token
	for l.pos < len(l.input) {
		toks = append(toks, l.next())
	}
	toks = append(toks, cst.Token{Kind: cst.EOF})
	return toks
}

type quiltLexer struct {
	input       []byte
	pos         int
	atLineStart bool
	inComment   bool
}

func (l *quiltLexer) current() (byte, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *quiltLexer) prevIsWhitespace() bool {
	if l.pos == 0 {
		return false
	}
	prev := l.input[l.pos-1]
	return prev == ' ' || prev == '\t'
}

func (l *quiltLexer) next() cst.Token {
	c, _ := l.current()
	switch c {
	case '#':
		l.pos++
		l.inComment = true
		l.atLineStart = false
		return cst.Token{Kind: cst.HASH, Text: []byte("#")}
	case ' ':
		l.pos++
		l.atLineStart = false
		return cst.Token{Kind: cst.SPACE, Text: []byte(" ")}
	case '\t':
		l.pos++
		l.atLineStart = false
		return cst.Token{Kind: cst.TAB, Text: []byte("\t")}
	case '\n':
		l.pos++
		l.atLineStart = true
		l.inComment = false
		return cst.Token{Kind: cst.NEWLINE, Text: []byte("\n")}
	}

	switch {
	case l.inComment:
		return l.readUntilNewline(cst.TEXT)
	case l.atLineStart || l.prevIsWhitespace():
		l.atLineStart = false
		if c == '-' {
			return l.readUntilBreak(cst.OPTION)
		}
		return l.readUntilBreak(cst.PATCH_NAME)
	default:
		l.atLineStart = false
		return l.readUntilNewline(cst.TEXT)
	}
}

func (l *quiltLexer) readUntilBreak(kind cst.Kind) cst.Token {
	start := l.pos
	for {
		c, ok := l.current()
		if !ok || c == ' ' || c == '\t' || c == '\n' {
			break
		}
		l.pos++
	}
	return cst.Token{Kind: kind, Text: l.input[start:l.pos]}
}

func (l *quiltLexer) readUntilNewline(kind cst.Kind) cst.Token {
	start := l.pos
	for {
		c, ok := l.current()
		if !ok || c == '\n' {
			break
		}
		l.pos++
	}
	return cst.Token{Kind: kind, Text: l.input[start:l.pos]}
}
