package surface

import (
	"fmt"

	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/names"
)

// Parser turns a token stream into a BExprBody: the grammar's only entry
// point, since a whole program is syntactically just a body (a sequence
// of defines terminated by an expression), the same shape a lambda body
// has.
type Parser struct {
	tokens []Token
	pos    int
	source string
}

func NewParser(tokens []Token, source string) *Parser {
	return &Parser{tokens: tokens, source: source}
}

// Parse lexes and parses source into the top-level program body.
func Parse(source string) (BExprBody, error) {
	lexer := NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, source)
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, parseErrorf(p.peek(0).Span, p.source, "unexpected trailing input %q", p.peek(0).Lexeme)
	}
	return body, nil
}

func (p *Parser) atEOF() bool {
	return p.peek(0).Kind == TokenEOF
}

func (p *Parser) peek(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advanceTok() Token {
	tok := p.peek(0)
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	tok := p.peek(0)
	if tok.Kind != kind {
		return Token{}, parseErrorf(tok.Span, p.source, "expected %s, got %q", what, tok.Lexeme)
	}
	return p.advanceTok(), nil
}

func (p *Parser) expectSymbol(name string) error {
	tok := p.peek(0)
	if tok.Kind != TokenSymbol || tok.Lexeme != name {
		return parseErrorf(tok.Span, p.source, "expected %q, got %q", name, tok.Lexeme)
	}
	p.advanceTok()
	return nil
}

func (p *Parser) parseBody() (BExprBody, error) {
	startSpan := p.peek(0).Span
	var items []BodyItem
	for !p.atEOF() && p.peek(0).Kind != TokenRightParen {
		item, err := p.parseBodyItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return newBody(items, startSpan)
}

func newBody(items []BodyItem, span diag.Span) (BExprBody, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w (near %s)", ErrEmptyBody, span)
	}
	if _, ok := items[len(items)-1].(*Def); ok {
		return nil, fmt.Errorf("%w (near %s)", ErrTrailingDefine, span)
	}
	return BExprBody(items), nil
}

func (p *Parser) parseBodyItem() (BodyItem, error) {
	if p.peek(0).Kind == TokenLeftParen && p.peek(1).Kind == TokenSymbol && p.peek(1).Lexeme == "define" {
		p.advanceTok() // (
		p.advanceTok() // define
		nameTok, err := p.expect(TokenSymbol, "identifier")
		if err != nil {
			return nil, err
		}
		value, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
			return nil, err
		}
		return &Def{Name: nameTok.Lexeme, Value: value}, nil
	}

	value, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return &ExprItem{Value: value}, nil
}

func (p *Parser) parseForm() (BExpr, error) {
	tok := p.peek(0)
	switch tok.Kind {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol:
		p.advanceTok()
		if tok.Lexeme == "void" {
			return &Lit{Value: names.VoidLit{}}, nil
		}
		return &Var{Name: tok.Lexeme}, nil
	case TokenInt:
		p.advanceTok()
		return p.parseIntLit(tok)
	case TokenFloat:
		p.advanceTok()
		return p.parseFloatLit(tok)
	case TokenString:
		p.advanceTok()
		return &Lit{Value: names.StringLit(tok.Lexeme)}, nil
	default:
		return nil, parseErrorf(tok.Span, p.source, "unexpected token %q", tok.Lexeme)
	}
}

func (p *Parser) parseIntLit(tok Token) (BExpr, error) {
	var v int64
	if _, err := fmt.Sscanf(tok.Lexeme, "%d", &v); err != nil {
		return nil, parseErrorf(tok.Span, p.source, "malformed integer literal %q", tok.Lexeme)
	}
	return &Lit{Value: names.IntLit(v)}, nil
}

func (p *Parser) parseFloatLit(tok Token) (BExpr, error) {
	var v float64
	if _, err := fmt.Sscanf(tok.Lexeme, "%g", &v); err != nil {
		return nil, parseErrorf(tok.Span, p.source, "malformed float literal %q", tok.Lexeme)
	}
	return &Lit{Value: names.FloatLit(v)}, nil
}

func (p *Parser) parseList() (BExpr, error) {
	open := p.advanceTok() // '('
	if p.peek(0).Kind == TokenRightParen {
		return nil, parseErrorf(open.Span, p.source, "empty list is not a valid expression")
	}

	if p.peek(0).Kind == TokenSymbol {
		switch p.peek(0).Lexeme {
		case "if":
			return p.parseIf()
		case "set!":
			return p.parseSet()
		case "let":
			return p.parseLet()
		case "lambda":
			return p.parseLambda()
		case "define":
			return nil, parseErrorf(p.peek(0).Span, p.source, "define is only allowed inside a body, not as an expression")
		}
	}

	return p.parseApplication()
}

func (p *Parser) parseIf() (BExpr, error) {
	p.advanceTok() // if
	cond, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	then, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	var els BExpr = &Lit{Value: names.VoidLit{}}
	if p.peek(0).Kind != TokenRightParen {
		els, err = p.parseForm()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
		return nil, err
	}
	return &If{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseSet() (BExpr, error) {
	p.advanceTok() // set!
	nameTok, err := p.expect(TokenSymbol, "identifier")
	if err != nil {
		return nil, err
	}
	value, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
		return nil, err
	}
	return &Set{Name: nameTok.Lexeme, Value: value}, nil
}

func (p *Parser) parseLet() (BExpr, error) {
	p.advanceTok() // let
	if _, err := p.expect(TokenLeftParen, "\"(\""); err != nil {
		return nil, err
	}
	var bindings []LetBinding
	for p.peek(0).Kind != TokenRightParen {
		if _, err := p.expect(TokenLeftParen, "\"(\""); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(TokenSymbol, "identifier")
		if err != nil {
			return nil, err
		}
		value, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
			return nil, err
		}
		bindings = append(bindings, LetBinding{Name: nameTok.Lexeme, Value: value})
	}
	p.advanceTok() // ')' closing bindings list

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
		return nil, err
	}
	return &Let{Bindings: bindings, Body: body}, nil
}

func (p *Parser) parseLambda() (BExpr, error) {
	p.advanceTok() // lambda
	if _, err := p.expect(TokenLeftParen, "\"(\""); err != nil {
		return nil, err
	}
	var params []string
	for p.peek(0).Kind != TokenRightParen {
		tok, err := p.expect(TokenSymbol, "identifier")
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Lexeme)
	}
	p.advanceTok() // ')' closing params list

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "\")\""); err != nil {
		return nil, err
	}
	return &Lam{Params: params, Body: body}, nil
}

func (p *Parser) parseApplication() (BExpr, error) {
	fn, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	var args []BExpr
	for p.peek(0).Kind != TokenRightParen {
		if p.atEOF() {
			return nil, parseErrorf(p.peek(0).Span, p.source, "unterminated application")
		}
		arg, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.advanceTok() // ')'
	return &App{Func: fn, Args: args}, nil
}
