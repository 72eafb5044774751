// Package parser turns a token stream from internal/lexer into an
// internal/ast tree.
//
// funvibe-funxy's internal/parser/expressions_core.go builds a generic
// Pratt parser keyed by a precedence table and prefix/infix function maps.
// That table-driven shape doesn't transfer cleanly here: this grammar's
// trickiest rule is that unary minus binds *looser* than `^` (so `-2^2`
// parses as `-(2^2)`, not `(-2)^2`) while implicit multiplication binds
// tighter than `+ -` but looser than `^`/unary. Those two facts don't fit a
// single token-keyed precedence table, so this parser instead lays out one
// function per precedence level, in the teacher's recursive-descent style
// for exactly this situation (see expressions_literals.go's dedicated
// parseUnary/parsePower split).
package parser

import (
	"strconv"

	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/lexer"
)

// Parser is a one-shot recursive-descent parser over a single expression.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	// insideEq is true while parsing the direct arguments of an eq(...)
	// call, the only place `=` is legal.
	insideEq bool

	// lastTokenWasNumberOrClose tracks whether the atom just parsed ended
	// in a NUMBER or a closing bracket, the left-hand condition for
	// implicit multiplication.
	lastTokenWasNumberOrClose bool
}

// New creates a Parser over input.
func New(input string) *Parser {
	p := &Parser{lex: lexer.New(input)}
	p.next()
	p.next()
	return p
}

// Parse parses a single expression and requires it to consume the entire
// input.
func Parse(input string) (ast.Node, error) {
	p := New(input)
	n, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, p.errorf(diagnostics.UnexpectedToken, p.cur.Offset, "unexpected %s %q after end of expression", p.cur.Type, p.cur.Literal)
	}
	return n, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(code diagnostics.Code, offset int, format string, args ...any) error {
	return diagnostics.NewParseError(code, offset, format, args...)
}

// parseTopLevel parses the `&`-level, the loosest binary operator, in a
// position where `=` may not follow (everywhere except parseArgument).
func (p *Parser) parseTopLevel() (ast.Node, error) {
	n, err := p.parseAmp()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.ASSIGN {
		return nil, p.errorf(diagnostics.MisplacedEquals, p.cur.Offset, "\"=\" is only allowed as a top-level argument of eq(...)")
	}
	return n, nil
}

func (p *Parser) parseAmp() (ast.Node, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.AMP {
		pos := p.cur.Offset
		p.next()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, "&", left, right)
	}
	if p.cur.Type == lexer.ILLEGAL {
		return nil, p.errorf(diagnostics.UnknownOperator, p.cur.Offset, "unrecognized character %q", p.cur.Literal)
	}
	return left, nil
}

func (p *Parser) parseAddSub() (ast.Node, error) {
	left, err := p.parseMulDivCross()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := p.cur.Literal
		pos := p.cur.Offset
		p.next()
		right, err := p.parseMulDivCross()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMulDivCross() (ast.Node, error) {
	left, err := p.parseImplicit()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.ASTERISK || p.cur.Type == lexer.SLASH || p.cur.Type == lexer.HASH {
		op := p.cur.Literal
		pos := p.cur.Offset
		p.next()
		right, err := p.parseImplicit()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, op, left, right)
	}
	return left, nil
}

// parseImplicit handles juxtaposition multiplication: a NUMBER or a closing
// bracket immediately followed by an identifier or an opening bracket is
// parsed as `*` at this precedence level (above + - */# , below ^).
func (p *Parser) parseImplicit() (ast.Node, error) {
	left, err := p.parseUnaryOrPower()
	if err != nil {
		return nil, err
	}
	for p.isImplicitMulPoint() {
		pos := p.cur.Offset
		right, err := p.parseUnaryOrPower()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, "*", left, right)
	}
	return left, nil
}

// isImplicitMulPoint reports whether the parser sits at a juxtaposition
// point: the previously parsed atom ended in a NUMBER or a closing bracket,
// and the current token can open a new atom (identifier or open bracket).
func (p *Parser) isImplicitMulPoint() bool {
	return p.lastTokenWasNumberOrClose && lexer.IsOpenBracketOrIdentStart(p.cur.Type)
}

func (p *Parser) parseUnaryOrPower() (ast.Node, error) {
	if p.cur.Type == lexer.MINUS {
		pos := p.cur.Offset
		p.next()
		operand, err := p.parseUnaryOrPower()
		if err != nil {
			return nil, err
		}
		// Leave lastTokenWasNumberOrClose exactly as the operand parse
		// left it: "-6x" must still implicitly multiply by x, since the
		// unary expression's last token was the NUMBER 6.
		return ast.NewUnaryOp(pos, "-", operand), nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (ast.Node, error) {
	left, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.CARET {
		pos := p.cur.Offset
		p.next()
		right, err := p.parseUnaryOrPower() // right-assoc, and allows `2^-2`
		if err != nil {
			return nil, err
		}
		// Leave lastTokenWasNumberOrClose as the exponent's own ending
		// state, same reasoning as parseUnaryOrPower above.
		return ast.NewBinOp(pos, "^", left, right), nil
	}
	return left, nil
}

func (p *Parser) parseIndex() (ast.Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.QUESTION {
		pos := p.cur.Offset
		p.next()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, "?", left, right)
		// Leave lastTokenWasNumberOrClose as the index operand's own
		// ending state, same reasoning as parseUnaryOrPower above.
	}
	return left, nil
}

func (p *Parser) parseAtom() (ast.Node, error) {
	switch p.cur.Type {
	case lexer.NUMBER:
		return p.parseNumber()
	case lexer.MINUS:
		return p.parseUnaryOrPower()
	case lexer.IDENT:
		return p.parseIdentOrCall()
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.LBRACKET:
		return p.parseBracketLiteral()
	case lexer.LBRACE:
		return p.parseListLiteral()
	case lexer.ILLEGAL:
		return nil, p.errorf(diagnostics.UnknownOperator, p.cur.Offset, "unrecognized character %q", p.cur.Literal)
	default:
		return nil, p.errorf(diagnostics.UnexpectedToken, p.cur.Offset, "unexpected %s %q", p.cur.Type, p.cur.Literal)
	}
}

func (p *Parser) parseNumber() (ast.Node, error) {
	lit := p.cur
	f, err := parseFloat(lit.Literal)
	if err != nil {
		return nil, p.errorf(diagnostics.UnexpectedToken, lit.Offset, "invalid number %q", lit.Literal)
	}
	p.next()
	p.lastTokenWasNumberOrClose = true
	return ast.NewNumberLit(lit.Offset, f), nil
}

func (p *Parser) parseIdentOrCall() (ast.Node, error) {
	lit := p.cur
	p.next()
	if p.cur.Type != lexer.LPAREN {
		p.lastTokenWasNumberOrClose = false
		return ast.NewVar(lit.Offset, lit.Literal), nil
	}
	p.next() // consume (
	args, err := p.parseCallArgs(lit.Literal)
	if err != nil {
		return nil, err
	}
	p.lastTokenWasNumberOrClose = true
	return ast.NewCall(lit.Offset, lit.Literal, args), nil
}

func (p *Parser) parseCallArgs(name string) ([]ast.Node, error) {
	var args []ast.Node
	if p.cur.Type == lexer.RPAREN {
		p.next()
		return args, nil
	}

	// "=" is legal only as the top-level form of a direct argument of
	// eq(...); entering any call resets the flag so a nested call's own
	// arguments (eq or not) don't inherit an enclosing eq's permission.
	wasInsideEq := p.insideEq
	p.insideEq = name == "eq"

	for {
		arg, err := p.parseArgument()
		if err != nil {
			p.insideEq = wasInsideEq
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	p.insideEq = wasInsideEq

	if p.cur.Type != lexer.RPAREN {
		return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q to close call to %q, got %s", ")", name, p.cur.Type)
	}
	p.next()
	return args, nil
}

// parseArgument parses one call argument: inside eq(...) a top-level `=`
// turns the argument into an Equation; everywhere else `=` is illegal.
func (p *Parser) parseArgument() (ast.Node, error) {
	lhs, err := p.parseAmp()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.ASSIGN {
		return lhs, nil
	}
	pos := p.cur.Offset
	if !p.insideEq {
		return nil, p.errorf(diagnostics.MisplacedEquals, pos, "\"=\" is only allowed as a top-level argument of eq(...)")
	}
	p.next()
	rhs, err := p.parseAmp()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.ASSIGN {
		return nil, p.errorf(diagnostics.MisplacedEquals, p.cur.Offset, "an equation may only contain a single \"=\"")
	}
	return ast.NewEquation(pos, lhs, rhs), nil
}

func (p *Parser) parseParenExpr() (ast.Node, error) {
	p.next() // consume (
	n, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.RPAREN {
		return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q, got %s", ")", p.cur.Type)
	}
	p.next()
	p.lastTokenWasNumberOrClose = true
	return n, nil
}

// parseBracketLiteral parses `[...]`, disambiguating a vector literal
// [e,e,...] from a matrix literal [[e,...],[e,...],...].
func (p *Parser) parseBracketLiteral() (ast.Node, error) {
	pos := p.cur.Offset
	p.next() // consume [
	if p.cur.Type == lexer.RBRACKET {
		return nil, p.errorf(diagnostics.EmptyContainer, pos, "vector/matrix literal must not be empty")
	}

	if p.cur.Type == lexer.LBRACKET {
		return p.parseMatrixLiteral(pos)
	}

	var elems []ast.Node
	for {
		e, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBRACKET {
		return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q, got %s", "]", p.cur.Type)
	}
	p.next()
	p.lastTokenWasNumberOrClose = true
	return ast.NewVectorExpr(pos, elems), nil
}

func (p *Parser) parseMatrixLiteral(pos int) (ast.Node, error) {
	var rows [][]ast.Node
	rowLen := -1
	for {
		if p.cur.Type != lexer.LBRACKET {
			return nil, p.errorf(diagnostics.UnexpectedToken, p.cur.Offset, "expected %q to start a matrix row, got %s", "[", p.cur.Type)
		}
		rowPos := p.cur.Offset
		p.next()
		if p.cur.Type == lexer.RBRACKET {
			return nil, p.errorf(diagnostics.EmptyContainer, rowPos, "matrix row must not be empty")
		}
		var row []ast.Node
		for {
			e, err := p.parseTopLevel()
			if err != nil {
				return nil, err
			}
			row = append(row, e)
			if p.cur.Type == lexer.COMMA {
				p.next()
				continue
			}
			break
		}
		if p.cur.Type != lexer.RBRACKET {
			return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q to close matrix row, got %s", "]", p.cur.Type)
		}
		p.next()
		if rowLen == -1 {
			rowLen = len(row)
		} else if len(row) != rowLen {
			return nil, p.errorf(diagnostics.RaggedMatrix, rowPos, "matrix rows have inconsistent length (%d vs %d)", len(row), rowLen)
		}
		rows = append(rows, row)
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBRACKET {
		return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q to close matrix literal, got %s", "]", p.cur.Type)
	}
	p.next()
	p.lastTokenWasNumberOrClose = true
	// Rows are stored exactly as written; the evaluator builds the matrix
	// with internal/value.NewMatrix, which reads the outer sequence as rows
	// or columns per config.RowMajor.
	return ast.NewMatrixExpr(pos, rows), nil
}

func (p *Parser) parseListLiteral() (ast.Node, error) {
	pos := p.cur.Offset
	p.next() // consume {
	if p.cur.Type == lexer.RBRACE {
		return nil, p.errorf(diagnostics.EmptyContainer, pos, "list literal must not be empty")
	}
	var elems []ast.Node
	for {
		e, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBRACE {
		return nil, p.errorf(diagnostics.UnbalancedBracket, p.cur.Offset, "expected %q, got %s", "}", p.cur.Type)
	}
	p.next()
	p.lastTokenWasNumberOrClose = true
	return ast.NewListExpr(pos, elems), nil
}

func parseFloat(s string) (float64, error) {
	// A bare "." (no digits) slips past the lexer's readNumber; reject it
	// explicitly since strconv.ParseFloat would otherwise error anyway but
	// with a less useful message.
	if s == "." {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
