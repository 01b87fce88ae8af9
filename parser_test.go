// parser_test.go
package mar

import (
	"testing"
)

func parse(t *testing.T, src string) []Node {
	t.Helper()
	prog, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", src, err)
	}
	return prog
}

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	prog := parse(t, src)
	if len(prog) != 1 {
		t.Fatalf("ParseSource(%q): want 1 statement, got %d", src, len(prog))
	}
	return prog[0]
}

func wantParseError(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("ParseSource(%q): expected ParseError, got nil", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("ParseSource(%q): expected *ParseError, got %T: %v", src, err, err)
	}
	return pe
}

func Test_Parser_LetWithLiteral(t *testing.T) {
	s, ok := parseOne(t, `let x = 5;`).(*LetStmt)
	if !ok {
		t.Fatalf("want *LetStmt, got %T", parseOne(t, `let x = 5;`))
	}
	if s.Name.(*Ident).Name != "x" {
		t.Fatalf("name: got %v", s.Name)
	}
	if lit, ok := s.Init.(*IntLit); !ok || lit.Value != 5 {
		t.Fatalf("init: want IntLit 5, got %#v", s.Init)
	}
}

func Test_Parser_LetWithoutInitialiser(t *testing.T) {
	s := parseOne(t, `let x;`).(*LetStmt)
	if s.Init != nil {
		t.Fatalf("init: want nil, got %#v", s.Init)
	}
}

func Test_Parser_LetRequiresSemicolon(t *testing.T) {
	wantParseError(t, `let x = 5`)
}

func Test_Parser_ExpressionStatementOptionalSemicolon(t *testing.T) {
	// both forms are a single call statement
	for _, src := range []string{`println(x)`, `println(x);`} {
		call, ok := parseOne(t, src).(*CallExpr)
		if !ok {
			t.Fatalf("%q: want *CallExpr, got %T", src, parseOne(t, src))
		}
		if call.Callee.(*Ident).Name != "println" {
			t.Fatalf("%q: callee %v", src, call.Callee)
		}
	}
}

func Test_Parser_Precedence_TermBindsTighter(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	e := parseOne(t, `1 + 2 * 3`).(*BinaryExpr)
	if e.Op != "+" {
		t.Fatalf("root op: want +, got %s", e.Op)
	}
	r := e.Right.(*BinaryExpr)
	if r.Op != "*" {
		t.Fatalf("right op: want *, got %s", r.Op)
	}
}

func Test_Parser_Precedence_ComparisonAboveArithmetic(t *testing.T) {
	// a + 1 < b * 2 parses as (a + 1) < (b * 2)
	e := parseOne(t, `a + 1 < b * 2`).(*BinaryExpr)
	if e.Op != "<" {
		t.Fatalf("root op: want <, got %s", e.Op)
	}
	if e.Left.(*BinaryExpr).Op != "+" || e.Right.(*BinaryExpr).Op != "*" {
		t.Fatalf("children: got %s and %s", e.Left.(*BinaryExpr).Op, e.Right.(*BinaryExpr).Op)
	}
}

func Test_Parser_Precedence_LogicalIsLowest(t *testing.T) {
	e := parseOne(t, `a == 1 & b == 2`).(*BinaryExpr)
	if e.Op != "&" {
		t.Fatalf("root op: want &, got %s", e.Op)
	}
}

func Test_Parser_LeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 parses as (10 - 3) - 2
	e := parseOne(t, `10 - 3 - 2`).(*BinaryExpr)
	if e.Op != "-" {
		t.Fatalf("root op: got %s", e.Op)
	}
	if _, ok := e.Left.(*BinaryExpr); !ok {
		t.Fatalf("want left-nested subtraction, got %#v", e.Left)
	}
}

func Test_Parser_Grouping(t *testing.T) {
	// (1 + 2) * 3 parses with * at the root
	e := parseOne(t, `(1 + 2) * 3`).(*BinaryExpr)
	if e.Op != "*" {
		t.Fatalf("root op: want *, got %s", e.Op)
	}
}

func Test_Parser_UnaryPrefix(t *testing.T) {
	e := parseOne(t, `-5`).(*UnaryExpr)
	if e.Op != "-" {
		t.Fatalf("op: got %s", e.Op)
	}
	if lit, ok := e.Operand.(*IntLit); !ok || lit.Value != 5 {
		t.Fatalf("operand: got %#v", e.Operand)
	}
	if parseOne(t, `!True`).(*UnaryExpr).Op != "!" {
		t.Fatal("negate prefix not parsed")
	}
}

func Test_Parser_ListLiteral(t *testing.T) {
	e := parseOne(t, `[1, "a", [2]]`).(*ListExpr)
	if len(e.Elems) != 3 {
		t.Fatalf("elems: want 3, got %d", len(e.Elems))
	}
	if _, ok := e.Elems[2].(*ListExpr); !ok {
		t.Fatalf("nested list: got %#v", e.Elems[2])
	}
	if len(parseOne(t, `[]`).(*ListExpr).Elems) != 0 {
		t.Fatal("empty list literal not empty")
	}
}

func Test_Parser_FunctionDeclaration(t *testing.T) {
	f := parseOne(t, `fn add(a, b) { rn a + b; }`).(*FnDecl)
	if f.Name.(*Ident).Name != "add" {
		t.Fatalf("name: got %v", f.Name)
	}
	if len(f.Params) != 2 || len(f.Outs) != 0 {
		t.Fatalf("params/outs: got %d/%d", len(f.Params), len(f.Outs))
	}
	if len(f.Body) != 1 {
		t.Fatalf("body: got %d statements", len(f.Body))
	}
	if _, ok := f.Body[0].(*ReturnStmt); !ok {
		t.Fatalf("body[0]: got %T", f.Body[0])
	}
}

func Test_Parser_FunctionOutputsHalf(t *testing.T) {
	f := parseOne(t, `fn div(a, b: q, r) { rn a, b; }`).(*FnDecl)
	if len(f.Params) != 2 || len(f.Outs) != 2 {
		t.Fatalf("params/outs: got %d/%d", len(f.Params), len(f.Outs))
	}
}

func Test_Parser_FunctionNoParams(t *testing.T) {
	f := parseOne(t, `fn ping() { rn; }`).(*FnDecl)
	if len(f.Params) != 0 {
		t.Fatalf("params: got %d", len(f.Params))
	}
}

func Test_Parser_ReturnForms(t *testing.T) {
	if n := len(parseOne(t, `fn f() { rn; }`).(*FnDecl).Body[0].(*ReturnStmt).Exprs); n != 0 {
		t.Fatalf("bare rn: got %d exprs", n)
	}
	if n := len(parseOne(t, `fn f() { rn 1; }`).(*FnDecl).Body[0].(*ReturnStmt).Exprs); n != 1 {
		t.Fatalf("rn 1: got %d exprs", n)
	}
	if n := len(parseOne(t, `fn f() { rn 1, 2, 3; }`).(*FnDecl).Body[0].(*ReturnStmt).Exprs); n != 3 {
		t.Fatalf("rn 1,2,3: got %d exprs", n)
	}
}

func Test_Parser_CallAndIndexSuffix(t *testing.T) {
	c := parseOne(t, `add(2, 3)`).(*CallExpr)
	if len(c.Args) != 2 {
		t.Fatalf("args: got %d", len(c.Args))
	}
	ix := parseOne(t, `xs[0]`).(*IndexExpr)
	if ix.Object.(*Ident).Name != "xs" {
		t.Fatalf("index object: got %v", ix.Object)
	}
}

func Test_Parser_PostfixStep(t *testing.T) {
	u := parseOne(t, `i++;`).(*UnaryExpr)
	if u.Op != "++" {
		t.Fatalf("op: got %s", u.Op)
	}
	if u.Operand.(*Ident).Name != "i" {
		t.Fatalf("operand: got %v", u.Operand)
	}
	if parseOne(t, `i--;`).(*UnaryExpr).Op != "--" {
		t.Fatal("decrement not parsed")
	}
}

func Test_Parser_PostfixStepRequiresSemicolon(t *testing.T) {
	wantParseError(t, `i++`)
}

func Test_Parser_PropertyPath(t *testing.T) {
	pa := parseOne(t, `a.b.c`).(*PropertyAccess)
	if pa.Property.(*Ident).Name != "c" {
		t.Fatalf("outer property: got %v", pa.Property)
	}
	inner := pa.Object.(*PropertyAccess)
	if inner.Object.(*Ident).Name != "a" || inner.Property.(*Ident).Name != "b" {
		t.Fatalf("inner path: got %#v", inner)
	}
}

func Test_Parser_IfElse(t *testing.T) {
	s := parseOne(t, `if (x > 0) { println(x); } else { println(0); }`).(*IfStmt)
	if s.Cond.(*BinaryExpr).Op != ">" {
		t.Fatalf("cond: got %#v", s.Cond)
	}
	if len(s.Then) != 1 || len(s.Else) != 1 {
		t.Fatalf("branches: got %d/%d", len(s.Then), len(s.Else))
	}
}

func Test_Parser_WhileLoop(t *testing.T) {
	s := parseOne(t, `while (i < 10) { i++; }`).(*WhileStmt)
	if len(s.Body) != 1 {
		t.Fatalf("body: got %d", len(s.Body))
	}
}

func Test_Parser_ForLoop(t *testing.T) {
	s := parseOne(t, `for (xs : i, v) { println(v); }`).(*ForStmt)
	if len(s.Vars) != 2 {
		t.Fatalf("vars: got %d", len(s.Vars))
	}
}

func Test_Parser_MatchWithDefault(t *testing.T) {
	s := parseOne(t, `match x { 1 => { println("one"); }, .. => { println("other"); } }`).(*MatchStmt)
	if len(s.Cases) != 2 {
		t.Fatalf("cases: got %d", len(s.Cases))
	}
	if s.Cases[0].Cond == nil {
		t.Fatal("first case lost its condition")
	}
	if s.Cases[1].Cond != nil {
		t.Fatal("default case kept a condition")
	}
}

func Test_Parser_ClassWithParents(t *testing.T) {
	s := parseOne(t, `class Dog(Animal) { fn bark() { rn; } }`).(*ClassDecl)
	if len(s.Parents) != 1 {
		t.Fatalf("parents: got %d", len(s.Parents))
	}
	s2 := parseOne(t, `class Animal { let age = 0; }`).(*ClassDecl)
	if len(s2.Parents) != 0 {
		t.Fatalf("parents: got %d", len(s2.Parents))
	}
}

func Test_Parser_ParentInit(t *testing.T) {
	s := parseOne(t, `parent Animal(4)`).(*ParentInit)
	if len(s.Args) != 1 {
		t.Fatalf("args: got %d", len(s.Args))
	}
}

func Test_Parser_UseStatement(t *testing.T) {
	s := parseOne(t, `use math, strings;`).(*UseStmt)
	if len(s.Modules) != 2 {
		t.Fatalf("modules: got %d", len(s.Modules))
	}
}

func Test_Parser_KeywordLiterals(t *testing.T) {
	if _, ok := parseOne(t, `None`).(*NoneLit); !ok {
		t.Fatal("None did not parse as a literal")
	}
	if b, ok := parseOne(t, `True`).(*BoolLit); !ok || !b.Value {
		t.Fatal("True did not parse as a literal")
	}
	if b, ok := parseOne(t, `False`).(*BoolLit); !ok || b.Value {
		t.Fatal("False did not parse as a literal")
	}
}

func Test_Parser_FlowKeywordsAsExpressions(t *testing.T) {
	if parseOne(t, `break`).(*FlowExpr).Keyword != "break" {
		t.Fatal("break not parsed as flow expression")
	}
	if parseOne(t, `continue`).(*FlowExpr).Keyword != "continue" {
		t.Fatal("continue not parsed as flow expression")
	}
}

func Test_Parser_UnexpectedToken(t *testing.T) {
	pe := wantParseError(t, `let = 5;`)
	if pe.Line != 1 {
		t.Fatalf("error line: got %d", pe.Line)
	}
	wantParseError(t, `fn f( { }`)
	wantParseError(t, `match x { }`)
	wantParseError(t, `1 + ;`)
}

func Test_Parser_UnterminatedBlock(t *testing.T) {
	wantParseError(t, `fn f() { rn 1;`)
}

func Test_Parser_IntegerOverflow(t *testing.T) {
	wantParseError(t, `let x = 99999999999;`)
}

func Test_Parser_MultipleStatements(t *testing.T) {
	prog := parse(t, "let x = 5;\nlet y = x + 2;\nprintln(y);")
	if len(prog) != 3 {
		t.Fatalf("statements: got %d", len(prog))
	}
}
