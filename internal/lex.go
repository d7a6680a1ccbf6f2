package internal

import (
	"fmt"
	"unicode/utf8"
)

// A Token is a single lexical element. Only space, tab, and linefeed are
// tokens; every other character is a comment.
type Token int

// Token kinds. The zero Token is not produced by the lexer.
const (
	NoToken Token = iota
	Space
	Tab
	LineFeed
)

// String returns the name of the token.
func (t Token) String() string {
	switch t {
	case Space:
		return "Space"
	case Tab:
		return "Tab"
	case LineFeed:
		return "LineFeed"
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Char returns the character that encodes the token.
func (t Token) Char() byte {
	switch t {
	case Space:
		return ' '
	case Tab:
		return '\t'
	case LineFeed:
		return '\n'
	}
	panic(fmt.Sprintf("whitespace: invalid token %v", t))
}

// tokenOf maps a character to its token, or NoToken if the character is a
// comment.
func tokenOf(r rune) Token {
	switch r {
	case ' ':
		return Space
	case '\t':
		return Tab
	case '\n':
		return LineFeed
	}
	return NoToken
}

// Pos is a position in source text. Lines and columns count from 1; columns
// count characters, not bytes.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// A Lexer produces the tokens of a source text one at a time. It never fails:
// characters other than space, tab, and linefeed are skipped.
type Lexer struct {
	src []byte
	off int
	pos Pos
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	l := Lexer{}
	l.Reset(src)
	return &l
}

// Reset restarts the lexer over src. Passing the same source restarts the
// token sequence from the beginning.
func (l *Lexer) Reset(src []byte) {
	l.src = src
	l.off = 0
	l.pos = Pos{Line: 1, Col: 1}
}

// Next returns the next token and its position. If the source is exhausted,
// the token is NoToken and the position is just past the end of input.
func (l *Lexer) Next() (Token, Pos) {
	for l.off < len(l.src) {
		r, n := utf8.DecodeRune(l.src[l.off:])
		p := l.pos
		l.off += n
		if r == '\n' {
			l.pos.Line++
			l.pos.Col = 1
		} else {
			l.pos.Col++
		}
		if t := tokenOf(r); t != NoToken {
			return t, p
		}
	}
	return NoToken, l.pos
}

// Lex returns all tokens of src in order.
func Lex(src []byte) []Token {
	var toks []Token
	l := NewLexer(src)
	for t, _ := l.Next(); t != NoToken; t, _ = l.Next() {
		toks = append(toks, t)
	}
	return toks
}
