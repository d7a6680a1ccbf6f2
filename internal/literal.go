package internal

import (
	"math"
	"strings"
)

// number parses a number literal: a sign token (Space for non-negative, Tab
// for negative), then binary digits most significant first (Space 0, Tab 1),
// then LineFeed. No digits means zero. A magnitude that does not fit in an
// int64 is an error rather than wrapping.
func (p *Parser) number() (int64, error) {
	sign, pos := p.lex.Next()
	var neg bool
	switch sign {
	case Space:
	case Tab:
		neg = true
	default:
		return 0, &SyntaxError{Kind: MalformedNumber, Pos: pos}
	}
	var n int64
	for {
		t, pos := p.lex.Next()
		switch t {
		case NoToken:
			return 0, &SyntaxError{Kind: MalformedNumber, Pos: pos}
		case LineFeed:
			if neg {
				n = -n
			}
			return n, nil
		}
		if n > math.MaxInt64/2 {
			return 0, &SyntaxError{Kind: MalformedNumber, Pos: pos}
		}
		// n*2 is even and at most MaxInt64-1, so adding the digit is safe.
		n *= 2
		if t == Tab {
			n++
		}
	}
}

// label parses a label literal: bits (Space false, Tab true) terminated by
// LineFeed. The empty label is valid.
func (p *Parser) label() (Label, error) {
	var b strings.Builder
	for {
		t, pos := p.lex.Next()
		switch t {
		case NoToken:
			return "", &SyntaxError{Kind: MalformedLabel, Pos: pos}
		case LineFeed:
			return Label(b.String()), nil
		case Space:
			b.WriteByte('0')
		case Tab:
			b.WriteByte('1')
		}
	}
}
