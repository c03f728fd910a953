package quilt

import "github.com/antgroup/patchkit/cst"

// parser drives a token-cursor grammar over the full token slice,
// grounded on original_source/src/edit/quilt/parse.rs's Parser. Unlike
// the line-oriented cst.parser, a series file's grammar nests below
// line granularity (an entry's trailing NEWLINE belongs to it, a
// comment's body is a single TEXT token, options are individually
// wrapped), so it is driven token-by-token instead.
type parser struct {
	toks   []cst.Token
	pos    int
	b      cst.Builder
	errors []cst.Diagnostic
}

// Parse lexes and parses a series file's bytes into a lossless tree
// rooted at SERIES_ROOT. Like cst.Parse, it never fails wholesale: a
// line matching neither a comment nor a patch name becomes an error and
// parsing resumes at the next newline.
func Parse(input []byte) *cst.Parse {
	p := &parser{toks: Lex(input)}
	p.b.StartNode(cst.SERIES_ROOT)
	for !p.atEnd() {
		if p.currentKind() == cst.NEWLINE {
			p.consume()
			continue
		}
		p.parseEntry()
	}
	p.b.FinishNode()
	return cst.NewParse(p.b.Finish(), p.errors)
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks) || p.toks[p.pos].Kind == cst.EOF
}

func (p *parser) currentKind() cst.Kind {
	if p.pos >= len(p.toks) {
		return cst.EOF
	}
	return p.toks[p.pos].Kind
}

func (p *parser) peekKind(offset int) cst.Kind {
	i := p.pos + offset
	if i >= len(p.toks) {
		return cst.EOF
	}
	return p.toks[i].Kind
}

func (p *parser) consume() {
	if p.pos >= len(p.toks) {
		return
	}
	tok := p.toks[p.pos]
	p.b.Token(tok.Kind, tok.Text)
	p.pos++
}

func isSpaceOrTab(k cst.Kind) bool { return k == cst.SPACE || k == cst.TAB }

func (p *parser) parseEntry() {
	p.b.StartNode(cst.SERIES_ENTRY)

	for isSpaceOrTab(p.currentKind()) {
		p.consume()
	}

	switch p.currentKind() {
	case cst.NEWLINE:
		// A blank (whitespace-only) line; the parent loop consumes the
		// newline itself.
	case cst.HASH:
		p.parseComment()
	case cst.PATCH_NAME:
		p.parsePatchEntry()
	default:
		p.errors = append(p.errors, cst.Diagnostic{Message: "expected patch name or comment"})
		for p.currentKind() != cst.NEWLINE && !p.atEnd() {
			p.consume()
		}
	}

	p.b.FinishNode()
}

func (p *parser) parseComment() {
	p.b.StartNode(cst.COMMENT_LINE)
	p.consume() // '#'
	for isSpaceOrTab(p.currentKind()) {
		p.consume()
	}
	if p.currentKind() == cst.TEXT {
		p.consume()
	}
	if p.currentKind() == cst.NEWLINE {
		p.consume()
	}
	p.b.FinishNode()
}

func (p *parser) parsePatchEntry() {
	p.b.StartNode(cst.PATCH_ENTRY)
	p.consume() // patch name

	if p.hasOptionsAhead() {
		p.parseOptions()
	}

	if p.currentKind() == cst.NEWLINE {
		p.consume()
	}
	p.b.FinishNode()
}

func (p *parser) hasOptionsAhead() bool {
	i := 0
	for isSpaceOrTab(p.peekKind(i)) {
		i++
	}
	return p.peekKind(i) == cst.OPTION
}

func (p *parser) parseOptions() {
	p.b.StartNode(cst.OPTIONS)
	for isSpaceOrTab(p.currentKind()) || p.currentKind() == cst.OPTION {
		if p.currentKind() == cst.OPTION {
			p.b.StartNode(cst.OPTION_ITEM)
			p.consume()
			p.b.FinishNode()
		} else {
			p.consume()
		}
	}
	p.b.FinishNode()
}
