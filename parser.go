// parser.go — recursive-descent parser with precedence climbing.
//
// The parser consumes the flat token stream front to back; internally the
// token list is reversed once so "consume next" is a cheap pop off the end.
// Statements dispatch on keyword text (the lexer emits one KEYWORD class);
// expressions climb the precedence chain
//
//	expression   : logical '&' '|'
//	comparison   : '<' '<=' '>' '>=' '==' '!='
//	power        : '%' '^'
//	arithmetic   : '+' '-'
//	term         : '*' '/'
//	primary      : literals, identifiers, parens, lists, unary prefix, '..'
//
// each level left-associating by looping while the current token matches its
// operator set. Call, index and postfix increment/decrement are resolved by a
// dedicated suffix rule once a primary identifier path is parsed.
package mar

import (
	"fmt"
	"strconv"
)

// Parser consumes a token stream and produces the program's statement list.
type Parser struct {
	toks []Token // pending tokens, reversed: next token is the last element
	cur  Token
}

// NewParser creates a parser over the given token stream.
func NewParser(tokens []Token) *Parser {
	rev := make([]Token, len(tokens))
	for i, t := range tokens {
		rev[len(tokens)-1-i] = t
	}
	return &Parser{
		toks: rev,
		cur:  Token{Type: SOC, Text: "SOC"},
	}
}

// Parse tokenizes nothing itself; it parses the token stream given to
// NewParser and returns the ordered top-level statements.
func (p *Parser) Parse() ([]Node, error) {
	p.advance()
	var prog []Node
	for p.cur.Type != EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog = append(prog, stmt)
	}
	return prog, nil
}

// ParseSource lexes and parses a complete source string.
func ParseSource(src string) ([]Node, error) {
	tokens, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

func (p *Parser) advance() {
	if len(p.toks) == 0 {
		return // EOF stays current
	}
	p.cur = p.toks[len(p.toks)-1]
	p.toks = p.toks[:len(p.toks)-1]
}

// eat consumes the current token if it has the expected type, otherwise it
// reports expected vs. found.
func (p *Parser) eat(tt TokenType) (Token, error) {
	if p.cur.Type != tt {
		return Token{}, &ParseError{
			Line: p.cur.Line,
			Col:  p.cur.Col,
			Msg:  fmt.Sprintf("expected %s, found %s (%q)", tt, p.cur.Type, p.cur.Text),
		}
	}
	t := p.cur
	p.advance()
	return t, nil
}

func (p *Parser) parseErrorf(format string, args ...any) error {
	return &ParseError{Line: p.cur.Line, Col: p.cur.Col, Msg: fmt.Sprintf(format, args...)}
}

// ─────────────────────────────── statements ───────────────────────────────

func (p *Parser) statement() (Node, error) {
	if p.cur.Type == KEYWORD {
		switch p.cur.Text {
		case "class":
			return p.classDeclaration()
		case "fn":
			return p.functionDeclaration()
		case "while":
			return p.whileLoop()
		case "for":
			return p.forLoop()
		case "if":
			return p.ifStatement()
		case "match":
			return p.matchStatement()
		case "let":
			return p.variableDeclaration()
		case "rn":
			return p.returnStatement()
		case "parent":
			return p.parentInitialisation()
		case "use":
			return p.useStatement()
		}
	}
	return p.expressionStatement()
}

// expressionStatement parses a bare expression used as a statement. A
// trailing ';' is consumed when present (postfix ++/-- eat theirs inside the
// suffix rule).
func (p *Parser) expressionStatement() (Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == SEMI {
		p.advance()
	}
	return expr, nil
}

// variableDeclaration parses "let name ;" or "let name = expr ;".
func (p *Parser) variableDeclaration() (Node, error) {
	p.advance() // "let"
	name, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == SEMI {
		p.advance()
		return &LetStmt{Name: name}, nil
	}
	if _, err := p.eat(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(SEMI); err != nil {
		return nil, err
	}
	return &LetStmt{Name: name, Init: value}, nil
}

// functionDeclaration parses "fn name parameters block".
func (p *Parser) functionDeclaration() (Node, error) {
	p.advance() // "fn"
	name, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	params, outs, err := p.parameters()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FnDecl{Name: name, Params: params, Outs: outs, Body: body}, nil
}

// parameters parses "( in1, in2 [: out1, out2] )". Only the input half is
// consulted during execution; the output half is kept on the declaration.
func (p *Parser) parameters() (ins []Node, outs []Node, err error) {
	if _, err = p.eat(LPAREN); err != nil {
		return nil, nil, err
	}
	if p.cur.Type == RPAREN {
		p.advance()
		return nil, nil, nil
	}
	if p.cur.Type != COLON {
		in, ierr := p.idStatement()
		if ierr != nil {
			return nil, nil, ierr
		}
		ins = append(ins, in)
		for p.cur.Type == COMMA {
			p.advance()
			in, ierr = p.idStatement()
			if ierr != nil {
				return nil, nil, ierr
			}
			ins = append(ins, in)
		}
	}
	if p.cur.Type == COLON {
		p.advance()
		if p.cur.Type == RPAREN {
			p.advance()
			return ins, nil, nil
		}
		out, oerr := p.expression()
		if oerr != nil {
			return nil, nil, oerr
		}
		outs = append(outs, out)
		for p.cur.Type == COMMA {
			p.advance()
			out, oerr = p.expression()
			if oerr != nil {
				return nil, nil, oerr
			}
			outs = append(outs, out)
		}
	}
	if _, err = p.eat(RPAREN); err != nil {
		return nil, nil, err
	}
	return ins, outs, nil
}

// returnStatement parses "rn [expr (, expr)*] ;".
func (p *Parser) returnStatement() (Node, error) {
	p.advance() // "rn"
	if p.cur.Type == SEMI {
		p.advance()
		return &ReturnStmt{}, nil
	}
	var list []Node
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	list = append(list, expr)
	for p.cur.Type == COMMA {
		p.advance()
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
	}
	if _, err := p.eat(SEMI); err != nil {
		return nil, err
	}
	return &ReturnStmt{Exprs: list}, nil
}

// ifStatement parses "if ( expr ) { block } [else { block }]".
func (p *Parser) ifStatement() (Node, error) {
	p.advance() // "if"
	if _, err := p.eat(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBlock []Node
	if p.cur.Type == KEYWORD && p.cur.Text == "else" {
		p.advance()
		elseBlock, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: elseBlock}, nil
}

// whileLoop parses "while ( expr ) { block }".
func (p *Parser) whileLoop() (Node, error) {
	p.advance() // "while"
	if _, err := p.eat(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// forLoop parses "for ( object : v1, v2, ... ) { block }".
func (p *Parser) forLoop() (Node, error) {
	p.advance() // "for"
	if _, err := p.eat(LPAREN); err != nil {
		return nil, err
	}
	obj, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(COLON); err != nil {
		return nil, err
	}
	var vars []Node
	v, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	vars = append(vars, v)
	for p.cur.Type == COMMA {
		p.advance()
		v, err = p.idStatement()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	if _, err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Object: obj, Vars: vars, Body: body}, nil
}

// matchStatement parses "match name { expr => block , ... , .. => block }".
func (p *Parser) matchStatement() (Node, error) {
	p.advance() // "match"
	subject, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(LBRACE); err != nil {
		return nil, err
	}
	cases, err := p.cases()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RBRACE); err != nil {
		return nil, err
	}
	return &MatchStmt{Subject: subject, Cases: cases}, nil
}

// cases parses "expr => block (, expr => block)* [, .. => block]".
func (p *Parser) cases() ([]*CaseClause, error) {
	var cases []*CaseClause
	first, err := p.caseClause()
	if err != nil {
		return nil, err
	}
	cases = append(cases, first)
	for p.cur.Type == COMMA {
		p.advance()
		if p.cur.Type == DEFAULT {
			// the ".." default arm parses through the expression grammar
			expr, derr := p.expression()
			if derr != nil {
				return nil, derr
			}
			def, ok := expr.(*CaseClause)
			if !ok {
				return nil, p.parseErrorf("expected default match case")
			}
			cases = append(cases, def)
			break
		}
		c, cerr := p.caseClause()
		if cerr != nil {
			return nil, cerr
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (p *Parser) caseClause() (*CaseClause, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(ARROW); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &CaseClause{Cond: cond, Body: body}, nil
}

// classDeclaration parses "class Name [( parents )] { block }".
func (p *Parser) classDeclaration() (Node, error) {
	p.advance() // "class"
	name, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	var parents []Node
	if p.cur.Type == LPAREN {
		parents, err = p.parentClasses()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ClassDecl{Name: name, Parents: parents, Body: body}, nil
}

func (p *Parser) parentClasses() ([]Node, error) {
	p.advance() // "("
	if p.cur.Type == RPAREN {
		p.advance()
		return nil, nil
	}
	var list []Node
	n, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	list = append(list, n)
	for p.cur.Type == COMMA {
		p.advance()
		n, err = p.idStatement()
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	if _, err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	return list, nil
}

// parentInitialisation parses "parent Name ( args )".
func (p *Parser) parentInitialisation() (Node, error) {
	p.advance() // "parent"
	name, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(LPAREN); err != nil {
		return nil, err
	}
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	return &ParentInit{Name: name, Args: args}, nil
}

// useStatement parses "use name (, name)* ;".
func (p *Parser) useStatement() (Node, error) {
	p.advance() // "use"
	var modules []Node
	m, err := p.idStatement()
	if err != nil {
		return nil, err
	}
	modules = append(modules, m)
	for p.cur.Type == COMMA {
		p.advance()
		m, err = p.idStatement()
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	if _, err := p.eat(SEMI); err != nil {
		return nil, err
	}
	return &UseStmt{Modules: modules}, nil
}

// block parses "{ statement* }".
func (p *Parser) block() ([]Node, error) {
	if _, err := p.eat(LBRACE); err != nil {
		return nil, err
	}
	var stmts []Node
	for p.cur.Type != RBRACE {
		if p.cur.Type == EOF {
			return nil, p.parseErrorf("unterminated block: expected '}'")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // "}"
	return stmts, nil
}

// idStatement parses an identifier with chained ".property" access folded
// left-associatively into PropertyAccess nodes.
func (p *Parser) idStatement() (Node, error) {
	name, err := p.eat(ID)
	if err != nil {
		return nil, err
	}
	var n Node = &Ident{Name: name.Text}
	for p.cur.Type == DOT {
		p.advance()
		prop, perr := p.eat(ID)
		if perr != nil {
			return nil, perr
		}
		n = &PropertyAccess{Object: n, Property: &Ident{Name: prop.Text}}
	}
	return n, nil
}

// ─────────────────────────────── expressions ──────────────────────────────

// expression is the lowest tier: logical '&' and '|'.
func (p *Parser) expression() (Node, error) {
	left, err := p.comparisonExpression()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == AND || p.cur.Type == OR {
		op := p.cur.Text
		p.advance()
		right, rerr := p.comparisonExpression()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) comparisonExpression() (Node, error) {
	left, err := p.powerExpression()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case LT, LTE, GT, GTE, EQ, NE:
			op := p.cur.Text
			p.advance()
			right, rerr := p.powerExpression()
			if rerr != nil {
				return nil, rerr
			}
			left = &BinaryExpr{Left: left, Op: op, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) powerExpression() (Node, error) {
	left, err := p.arithmeticExpression()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == MODULUS || p.cur.Type == CARET {
		op := p.cur.Text
		p.advance()
		right, rerr := p.arithmeticExpression()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) arithmeticExpression() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == PLUS || p.cur.Type == MINUS {
		op := p.cur.Text
		p.advance()
		right, rerr := p.term()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) term() (Node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == ASTERISK || p.cur.Type == DIVISION {
		op := p.cur.Text
		p.advance()
		right, rerr := p.primary()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) primary() (Node, error) {
	switch p.cur.Type {
	case ID:
		path, err := p.idStatement()
		if err != nil {
			return nil, err
		}
		switch p.cur.Type {
		case LPAREN, LBRACKET, INCREMENT, DECREMENT:
			return p.factorSuffix(path)
		}
		return path, nil

	case INTEGER:
		v, err := strconv.ParseInt(p.cur.Text, 10, 32)
		if err != nil {
			return nil, p.parseErrorf("invalid integer literal %q", p.cur.Text)
		}
		p.advance()
		return &IntLit{Value: int32(v)}, nil

	case FLOAT:
		v, err := strconv.ParseFloat(p.cur.Text, 64)
		if err != nil {
			return nil, p.parseErrorf("invalid float literal %q", p.cur.Text)
		}
		p.advance()
		return &FloatLit{Value: v}, nil

	case STRING:
		s := p.cur.Text
		p.advance()
		return &StrLit{Value: s}, nil

	case KEYWORD:
		kw := p.cur.Text
		p.advance()
		switch kw {
		case "None":
			return &NoneLit{}, nil
		case "True":
			return &BoolLit{Value: true}, nil
		case "False":
			return &BoolLit{Value: false}, nil
		}
		return &FlowExpr{Keyword: kw}, nil

	case LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case LBRACKET:
		p.advance()
		if p.cur.Type == RBRACKET {
			p.advance()
			return &ListExpr{}, nil
		}
		var elems []Node
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		for p.cur.Type == COMMA {
			p.advance()
			e, err = p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.eat(RBRACKET); err != nil {
			return nil, err
		}
		return &ListExpr{Elems: elems}, nil

	case DEFAULT:
		// ".. => { block }" — the default arm of a match
		p.advance()
		if _, err := p.eat(ARROW); err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return &CaseClause{Body: body}, nil

	case PLUS, MINUS, NEGATE:
		op := p.cur.Text
		p.advance()
		operand, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}

	return nil, p.parseErrorf("unexpected token %s (%q)", p.cur.Type, p.cur.Text)
}

// factorSuffix resolves the postfix forms that may follow an identifier path:
// call "(...)", index "[...]", and "++"/"--" (which require an immediately
// following statement terminator).
func (p *Parser) factorSuffix(path Node) (Node, error) {
	switch p.cur.Type {
	case LPAREN:
		p.advance()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(RPAREN); err != nil {
			return nil, err
		}
		return &CallExpr{Callee: path, Args: args}, nil

	case LBRACKET:
		p.advance()
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(RBRACKET); err != nil {
			return nil, err
		}
		return &IndexExpr{Object: path, Index: index}, nil

	case INCREMENT:
		p.advance()
		if _, err := p.eat(SEMI); err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "++", Operand: path}, nil

	default:
		if _, err := p.eat(DECREMENT); err != nil {
			return nil, err
		}
		if _, err := p.eat(SEMI); err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "--", Operand: path}, nil
	}
}

// arguments parses a comma-separated call argument list (caller eats parens).
func (p *Parser) arguments() ([]Node, error) {
	if p.cur.Type == RPAREN {
		return nil, nil
	}
	var args []Node
	a, err := p.expression()
	if err != nil {
		return nil, err
	}
	args = append(args, a)
	for p.cur.Type == COMMA {
		p.advance()
		a, err = p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}
