package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// dslToken is one word or quoted literal of the pattern DSL source text.
type dslToken struct {
	text    string
	literal bool // true if this came from a "quoted" segment
}

// tokenize splits src into words, treating "double-quoted runs" as single
// literal tokens so literal text can contain spaces and keywords.
func tokenize(src string) []dslToken {
	var toks []dslToken
	var buf strings.Builder
	inQuotes := false
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, dslToken{text: buf.String()})
			buf.Reset()
		}
	}
	for _, r := range src {
		switch {
		case r == '"':
			if inQuotes {
				toks = append(toks, dslToken{text: buf.String(), literal: true})
				buf.Reset()
				inQuotes = false
			} else {
				flush()
				inQuotes = true
			}
		case inQuotes:
			buf.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return toks
}

// dslParser is a small recursive-descent parser over the tokenized
// pattern DSL, independent of the main WFL lexer/parser (see package doc).
type dslParser struct {
	toks []dslToken
	pos  int
}

// Parse compiles pattern DSL source text into an Expr tree.
func Parse(src string) (Expr, error) {
	p := &dslParser{toks: tokenize(src)}
	if len(p.toks) == 0 {
		return nil, fmt.Errorf("pattern: empty pattern source")
	}
	expr, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("pattern: unexpected trailing text at %q", p.cur().text)
	}
	return expr, nil
}

func (p *dslParser) cur() dslToken {
	if p.pos >= len(p.toks) {
		return dslToken{}
	}
	return p.toks[p.pos]
}

func (p *dslParser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *dslParser) advance() dslToken {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *dslParser) word(w string) bool {
	return !p.cur().literal && strings.EqualFold(p.cur().text, w)
}

func (p *dslParser) wordsAt(offset int, w string) bool {
	i := p.pos + offset
	if i >= len(p.toks) {
		return false
	}
	t := p.toks[i]
	return !t.literal && strings.EqualFold(t.text, w)
}

// parseAlternative parses `X or Y or Z`.
func (p *dslParser) parseAlternative() (Expr, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	options := []Expr{first}
	for p.word("or") {
		p.advance()
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		options = append(options, next)
	}
	if len(options) == 1 {
		return options[0], nil
	}
	return Alternative{Options: options}, nil
}

// parseSequence parses atoms separated by "then" or plain juxtaposition,
// stopping at "or" (alternation binds looser) or end of input.
func (p *dslParser) parseSequence() (Expr, error) {
	var items []Expr
	for !p.atEnd() && !p.word("or") {
		if p.word("then") {
			p.advance()
			continue
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, atom)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("pattern: expected an expression")
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Sequence{Items: items}, nil
}

// parseAtom parses one quantified/capture/anchor/class/literal unit.
func (p *dslParser) parseAtom() (Expr, error) {
	switch {
	case p.word("one") && p.wordsAt(1, "or") && p.wordsAt(2, "more"):
		p.advance()
		p.advance()
		p.advance()
		inner, err := p.parseQuantifiable()
		if err != nil {
			return nil, err
		}
		return Quantified{Inner: inner, Kind: QuantOneOrMore}, nil
	case p.word("zero") && p.wordsAt(1, "or") && p.wordsAt(2, "more"):
		p.advance()
		p.advance()
		p.advance()
		inner, err := p.parseQuantifiable()
		if err != nil {
			return nil, err
		}
		return Quantified{Inner: inner, Kind: QuantZeroOrMore}, nil
	case p.word("optional"):
		p.advance()
		inner, err := p.parseQuantifiable()
		if err != nil {
			return nil, err
		}
		return Quantified{Inner: inner, Kind: QuantOptional}, nil
	case p.word("exactly"):
		p.advance()
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		inner, err := p.parseQuantifiable()
		if err != nil {
			return nil, err
		}
		return Quantified{Inner: inner, Kind: QuantExactly, Min: n, Max: n}, nil
	case p.word("between"):
		p.advance()
		min, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if !p.word("and") {
			return nil, fmt.Errorf("pattern: expected \"and\" in \"between N and M\"")
		}
		p.advance()
		max, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		inner, err := p.parseQuantifiable()
		if err != nil {
			return nil, err
		}
		return Quantified{Inner: inner, Kind: QuantBetween, Min: min, Max: max}, nil
	case p.word("capture"):
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if !p.word("as") {
			return nil, fmt.Errorf("pattern: expected \"as <name>\" after capture")
		}
		p.advance()
		name := p.advance().text
		return Capture{Name: name, Inner: inner}, nil
	case p.word("same") && p.wordsAt(1, "as"):
		p.advance()
		p.advance()
		name := p.advance().text
		return Backreference{Name: name}, nil
	case p.word("followed") && p.wordsAt(1, "by"):
		p.advance()
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Lookahead{Inner: inner}, nil
	case p.word("not") && p.wordsAt(1, "followed") && p.wordsAt(2, "by"):
		p.advance()
		p.advance()
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Lookahead{Inner: inner, Negative: true}, nil
	case p.word("preceded") && p.wordsAt(1, "by"):
		p.advance()
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Lookbehind{Inner: inner}, nil
	case p.word("not") && p.wordsAt(1, "preceded") && p.wordsAt(2, "by"):
		p.advance()
		p.advance()
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Lookbehind{Inner: inner, Negative: true}, nil
	default:
		return p.parseQuantifiable()
	}
}

// parseQuantifiable parses a single class/literal/anchor unit — the
// operand of a quantifier, capture, or lookaround.
func (p *dslParser) parseQuantifiable() (Expr, error) {
	tok := p.cur()
	switch {
	case tok.literal:
		p.advance()
		return Literal{Text: tok.text}, nil
	case p.word("digit"):
		p.advance()
		return CharClass{Name: ClassDigit}, nil
	case p.word("letter"):
		p.advance()
		return CharClass{Name: ClassLetter}, nil
	case p.word("whitespace"):
		p.advance()
		return CharClass{Name: ClassWhitespace}, nil
	case p.word("word") && p.wordsAt(1, "character"):
		p.advance()
		p.advance()
		return CharClass{Name: ClassWord}, nil
	case p.word("any") && p.wordsAt(1, "character"):
		p.advance()
		p.advance()
		return CharClass{Name: ClassAny}, nil
	case p.word("not") && p.wordsAt(1, "digit"):
		p.advance()
		p.advance()
		return CharClass{Name: ClassDigit, Negated: true}, nil
	case p.word("not") && p.wordsAt(1, "letter"):
		p.advance()
		p.advance()
		return CharClass{Name: ClassLetter, Negated: true}, nil
	case p.word("not") && p.wordsAt(1, "whitespace"):
		p.advance()
		p.advance()
		return CharClass{Name: ClassWhitespace, Negated: true}, nil
	case p.word("start") && p.wordsAt(1, "of") && p.wordsAt(2, "text"):
		p.advance()
		p.advance()
		p.advance()
		return Anchor{Kind: AnchorStartOfText}, nil
	case p.word("end") && p.wordsAt(1, "of") && p.wordsAt(2, "text"):
		p.advance()
		p.advance()
		p.advance()
		return Anchor{Kind: AnchorEndOfText}, nil
	case p.word("word") && p.wordsAt(1, "boundary"):
		p.advance()
		p.advance()
		return Anchor{Kind: AnchorWordBoundary}, nil
	default:
		return nil, fmt.Errorf("pattern: unexpected token %q", tok.text)
	}
}

func (p *dslParser) parseInt() (int, error) {
	tok := p.advance()
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, fmt.Errorf("pattern: expected a number, got %q", tok.text)
	}
	return n, nil
}
