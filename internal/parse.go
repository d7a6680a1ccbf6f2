package internal

// A Parser converts source text into commands. Each command is chosen by its
// first token, then by one or two more tokens within its family:
//
//	Space           stack
//	Tab Space       arithmetic
//	Tab Tab         heap
//	Tab LineFeed    i/o
//	LineFeed        flow control
type Parser struct {
	lex *Lexer
}

// NewParser creates a parser over src.
func NewParser(src []byte) *Parser {
	return &Parser{lex: NewLexer(src)}
}

// Parse parses an entire source text. If any command fails to parse, the
// result is nil and the error is a *SyntaxError.
func Parse(src []byte) (Program, error) {
	return NewParser(src).Parse()
}

// Parse parses all remaining commands.
func (p *Parser) Parse() (Program, error) {
	var prog Program
	for {
		t, pos := p.lex.Next()
		if t == NoToken {
			return prog, nil
		}
		c, err := p.command(t, pos)
		if err != nil {
			return nil, err
		}
		prog = append(prog, c)
	}
}

// pair is a two-token lookahead key.
type pair struct {
	a, b Token
}

// want returns the next token, or an UnexpectedEOF error if there is none.
func (p *Parser) want() (Token, Pos, error) {
	t, pos := p.lex.Next()
	if t == NoToken {
		return t, pos, &SyntaxError{Kind: UnexpectedEOF, Pos: pos}
	}
	return t, pos, nil
}

// want2 returns the next two tokens.
func (p *Parser) want2() (pair, Pos, error) {
	a, pos, err := p.want()
	if err != nil {
		return pair{}, pos, err
	}
	b, _, err := p.want()
	if err != nil {
		return pair{}, pos, err
	}
	return pair{a, b}, pos, nil
}

func unrecognized(pos Pos) error {
	return &SyntaxError{Kind: UnrecognizedCommand, Pos: pos}
}

// command parses a command whose first token, already consumed, is t at pos.
func (p *Parser) command(t Token, pos Pos) (Command, error) {
	c := Command{Pos: pos}
	var err error
	switch t {
	case Space:
		err = p.stack(&c)
	case Tab:
		var u Token
		u, _, err = p.want()
		if err != nil {
			break
		}
		switch u {
		case Space:
			err = p.arith(&c)
		case Tab:
			err = p.heap(&c)
		case LineFeed:
			err = p.io(&c)
		}
	case LineFeed:
		err = p.flow(&c)
	}
	return c, err
}

func (p *Parser) stack(c *Command) error {
	t, pos, err := p.want()
	if err != nil {
		return err
	}
	switch t {
	case Space:
		c.Op = Push
		c.Arg, err = p.number()
		return err
	case LineFeed:
		u, _, err := p.want()
		if err != nil {
			return err
		}
		switch u {
		case Space:
			c.Op = Dup
		case Tab:
			c.Op = Swap
		case LineFeed:
			c.Op = Discard
		}
		return nil
	case Tab:
		u, upos, err := p.want()
		if err != nil {
			return err
		}
		switch u {
		case Space:
			c.Op = Copy
		case LineFeed:
			c.Op = Slide
		default:
			return unrecognized(upos)
		}
		c.Arg, err = p.number()
		return err
	}
	return unrecognized(pos)
}

func (p *Parser) arith(c *Command) error {
	k, pos, err := p.want2()
	if err != nil {
		return err
	}
	switch k {
	case pair{Space, Space}:
		c.Op = Add
	case pair{Space, Tab}:
		c.Op = Sub
	case pair{Space, LineFeed}:
		c.Op = Mul
	case pair{Tab, Space}:
		c.Op = Div
	case pair{Tab, Tab}:
		c.Op = Mod
	default:
		return unrecognized(pos)
	}
	return nil
}

func (p *Parser) heap(c *Command) error {
	t, pos, err := p.want()
	if err != nil {
		return err
	}
	switch t {
	case Space:
		c.Op = Store
	case Tab:
		c.Op = Retrieve
	default:
		return unrecognized(pos)
	}
	return nil
}

func (p *Parser) io(c *Command) error {
	k, pos, err := p.want2()
	if err != nil {
		return err
	}
	switch k {
	case pair{Space, Space}:
		c.Op = OutChar
	case pair{Space, Tab}:
		c.Op = OutNum
	case pair{Tab, Space}:
		c.Op = ReadChar
	case pair{Tab, Tab}:
		c.Op = ReadNum
	default:
		return unrecognized(pos)
	}
	return nil
}

func (p *Parser) flow(c *Command) error {
	k, pos, err := p.want2()
	if err != nil {
		return err
	}
	switch k {
	case pair{Space, Space}:
		c.Op = Mark
	case pair{Space, Tab}:
		c.Op = Call
	case pair{Space, LineFeed}:
		c.Op = Jump
	case pair{Tab, Space}:
		c.Op = JumpZero
	case pair{Tab, Tab}:
		c.Op = JumpNeg
	case pair{Tab, LineFeed}:
		c.Op = Return
		return nil
	case pair{LineFeed, LineFeed}:
		c.Op = Exit
		return nil
	default:
		return unrecognized(pos)
	}
	c.Label, err = p.label()
	return err
}
