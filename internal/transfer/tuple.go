package transfer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpenParen
	tokCloseParen
	tokOpenBracket
	tokCloseBracket
	tokComma
	tokString
	tokInt
	tokFloat
	tokNone
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokOpenParen:
		return "'('"
	case tokCloseParen:
		return "')'"
	case tokOpenBracket:
		return "'['"
	case tokCloseBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokFloat:
		return "float"
	case tokNone:
		return "None"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string // decoded value for strings, literal text for numbers
	line int
}

// lexer splits a tuple-literal payload into tokens. It understands the subset of
// literal syntax an export can contain; anything else is a format error.
type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", l.line, fmt.Sprintf(format, args...))
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	switch c {
	case '(':
		l.pos++
		return token{kind: tokOpenParen, line: l.line}, nil
	case ')':
		l.pos++
		return token{kind: tokCloseParen, line: l.line}, nil
	case '[':
		l.pos++
		return token{kind: tokOpenBracket, line: l.line}, nil
	case ']':
		l.pos++
		return token{kind: tokCloseBracket, line: l.line}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, line: l.line}, nil
	case '\'', '"':
		return l.lexString(c)
	}

	if c == '+' || c == '-' || c == '.' || isDigit(c) {
		return l.lexNumber()
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if unicode.IsLetter(r) || r == '_' {
		word := l.lexWord()
		if word == "None" {
			return token{kind: tokNone, line: l.line}, nil
		}
		return token{}, l.errorf("unsupported name %q", word)
	}

	return token{}, l.errorf("unexpected character %q", r)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == 0xEF && strings.HasPrefix(l.src[l.pos:], bom):
			l.pos += len(bom)
		default:
			return
		}
	}
}

func (l *lexer) lexWord() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if c := l.src[l.pos]; c == '+' || c == '-' {
		l.pos++
	}

	isFloat := false
	digits := 0
scan:
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isDigit(c):
			digits++
			l.pos++
		case c == '_':
			l.pos++
		case c == '.':
			isFloat = true
			l.pos++
		case (c == 'e' || c == 'E') && digits > 0:
			isFloat = true
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
		default:
			break scan
		}
	}

	text := l.src[start:l.pos]
	if digits == 0 {
		return token{}, l.errorf("invalid number %q", text)
	}

	clean := strings.ReplaceAll(text, "_", "")
	if isFloat {
		if _, err := strconv.ParseFloat(clean, 64); err != nil {
			return token{}, l.errorf("invalid number %q", text)
		}
		return token{kind: tokFloat, text: clean, line: l.line}, nil
	}
	// Integer literals are unbounded; range is checked per field.
	return token{kind: tokInt, text: clean, line: l.line}, nil
}

func (l *lexer) lexString(quote byte) (token, error) {
	line := l.line
	l.pos++ // opening quote

	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("line %d: unterminated string", line)
		}
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return token{kind: tokString, text: b.String(), line: line}, nil
		case c == '\n':
			return token{}, fmt.Errorf("line %d: unterminated string", line)
		case c == '\\':
			if err := l.lexEscape(&b); err != nil {
				return token{}, err
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *lexer) lexEscape(b *strings.Builder) error {
	l.pos++ // backslash
	if l.pos >= len(l.src) {
		return l.errorf("unterminated escape")
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case '\n':
		l.line++ // line continuation
	case 'u':
		if l.pos+4 > len(l.src) {
			return l.errorf("truncated \\u escape")
		}
		v, err := strconv.ParseUint(l.src[l.pos:l.pos+4], 16, 32)
		if err != nil {
			return l.errorf("invalid \\u escape %q", l.src[l.pos:l.pos+4])
		}
		b.WriteRune(rune(v))
		l.pos += 4
	default:
		return l.errorf("unsupported escape \\%c", c)
	}
	return nil
}

const bom = "\uFEFF"

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// tupleParser reads records from the token stream with one token of lookahead.
type tupleParser struct {
	lex    lexer
	tok    token
	record int
}

func (p *tupleParser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *tupleParser) fail(err error) error {
	return &apperrors.FormatError{Record: p.record, Reason: "invalid literal", Err: err}
}

func parseTuples(payload string) ([]model.PriceRecord, error) {
	p := &tupleParser{lex: lexer{src: payload, line: 1}}
	if err := p.advance(); err != nil {
		return nil, p.fail(err)
	}

	// An outer container is recognised by a nested record (or nothing) right after it opens;
	// otherwise the payload is a bare comma-separated sequence of records.
	closing := tokEOF
	if p.tok.kind == tokOpenBracket || p.tok.kind == tokOpenParen {
		peek := p.lex
		next, err := peek.next()
		if err != nil {
			return nil, p.fail(err)
		}
		want := matching(p.tok.kind)
		if next.kind == tokOpenParen || next.kind == tokOpenBracket || next.kind == want {
			closing = want
			if err := p.advance(); err != nil {
				return nil, p.fail(err)
			}
		}
	}

	records := []model.PriceRecord{}
	for p.tok.kind != closing {
		p.record++
		r, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, r)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, p.fail(err)
			}
			continue
		}
		if p.tok.kind != closing {
			return nil, p.fail(fmt.Errorf("line %d: expected ',' or %s, got %s", p.tok.line, closing, p.tok.kind))
		}
	}
	p.record = 0

	if closing != tokEOF {
		if err := p.advance(); err != nil {
			return nil, p.fail(err)
		}
		if p.tok.kind != tokEOF {
			return nil, p.fail(fmt.Errorf("line %d: unexpected %s after closing %s", p.tok.line, p.tok.kind, closing))
		}
	}
	return records, nil
}

func (p *tupleParser) parseRecord() (model.PriceRecord, error) {
	open := p.tok
	if open.kind != tokOpenParen && open.kind != tokOpenBracket {
		return model.PriceRecord{}, p.fail(fmt.Errorf("line %d: expected '(' to start a record, got %s", open.line, open.kind))
	}
	closing := matching(open.kind)
	if err := p.advance(); err != nil {
		return model.PriceRecord{}, p.fail(err)
	}

	var fields []token
	for p.tok.kind != closing {
		switch p.tok.kind {
		case tokString, tokInt, tokFloat, tokNone:
			fields = append(fields, p.tok)
		default:
			return model.PriceRecord{}, p.fail(fmt.Errorf("line %d: unexpected %s inside record", p.tok.line, p.tok.kind))
		}
		if err := p.advance(); err != nil {
			return model.PriceRecord{}, p.fail(err)
		}
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return model.PriceRecord{}, p.fail(err)
			}
		} else if p.tok.kind != closing {
			return model.PriceRecord{}, p.fail(fmt.Errorf("line %d: expected ',' or %s, got %s", p.tok.line, closing, p.tok.kind))
		}
	}
	if err := p.advance(); err != nil {
		return model.PriceRecord{}, p.fail(err)
	}

	if len(fields) != fieldCount {
		return model.PriceRecord{}, &apperrors.FormatError{
			Record: p.record,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	r, err := recordFromTokens(fields)
	if err != nil {
		return model.PriceRecord{}, &apperrors.FormatError{Record: p.record, Reason: err.Error()}
	}
	return r, nil
}

func recordFromTokens(fields []token) (model.PriceRecord, error) {
	var r model.PriceRecord

	if fields[0].kind != tokString {
		return r, fmt.Errorf("city must be a string, got %s", fields[0].kind)
	}
	r.City = fields[0].text

	if fields[1].kind != tokInt {
		return r, fmt.Errorf("year must be an integer, got %s", fields[1].kind)
	}
	year, err := strconv.Atoi(fields[1].text)
	if err != nil {
		return r, fmt.Errorf("year out of range: %s", fields[1].text)
	}
	r.Year = year

	if fields[2].kind != tokInt && fields[2].kind != tokFloat {
		return r, fmt.Errorf("price must be a number, got %s", fields[2].kind)
	}
	if r.AveragePrice, err = strconv.ParseFloat(fields[2].text, 64); err != nil {
		return r, fmt.Errorf("price is not a valid number: %s", fields[2].text)
	}

	if r.Description, err = optionalTokenString(fields[3], "description"); err != nil {
		return r, err
	}
	if r.WikiLink, err = optionalTokenString(fields[4], "wiki_link"); err != nil {
		return r, err
	}
	return r, nil
}

func optionalTokenString(t token, name string) (string, error) {
	switch t.kind {
	case tokNone:
		return "", nil
	case tokString:
		return t.text, nil
	default:
		return "", fmt.Errorf("%s must be a string or None, got %s", name, t.kind)
	}
}

func matching(open tokenKind) tokenKind {
	if open == tokOpenBracket {
		return tokCloseBracket
	}
	return tokCloseParen
}

// serializeTuples writes one tuple per line inside a list literal.
func serializeTuples(records []model.PriceRecord) string {
	if len(records) == 0 {
		return "[]\n"
	}

	var b strings.Builder
	b.WriteString("[\n")
	for _, r := range records {
		fmt.Fprintf(&b, "    (%s, %d, %s, %s, %s),\n",
			quote(r.City),
			r.Year,
			strconv.FormatFloat(r.AveragePrice, 'f', -1, 64),
			quote(r.Description),
			quote(r.WikiLink),
		)
	}
	b.WriteString("]\n")
	return b.String()
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}
