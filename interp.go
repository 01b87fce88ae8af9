// interp.go — the tree-walking executor.
//
// The executor keeps a stack of variable scopes plus a distinguished current
// scope, and a parallel stack of function tables (only the top table is
// consulted). Variable lookups search the current scope first, then the
// stack from the most recent frame down.
//
// Bindings come in two flavours. A "let" whose initialiser is a plain
// literal stores the value eagerly; anything else is stored deferred — the
// unevaluated expression itself — and is re-evaluated in whatever scope is
// current each time the name is read. Deferred bindings are never memoised.
package mar

import (
	"io"
	"os"
	"strings"
)

type bindKind int

const (
	bindEmpty bindKind = iota // declared without an initialiser
	bindValue                 // eager: literal initialiser, evaluated once
	bindExpr                  // deferred: re-evaluated on every read
)

type binding struct {
	kind bindKind
	val  Value
	expr Node
}

type scope map[string]binding

type funcEntry struct {
	params []Node
	outs   []Node
	body   []Node
}

// Interp executes a parsed program. The zero value is not usable; construct
// with NewInterp.
type Interp struct {
	current scope
	scopes  []scope
	funcs   []map[string]funcEntry

	// ret holds a pending return value; execBlock halts when it is set.
	ret *Value

	// Out receives print/println output. Defaults to os.Stdout.
	Out io.Writer
}

// NewInterp creates an executor with one global scope and function table.
func NewInterp() *Interp {
	return &Interp{
		current: scope{},
		scopes:  []scope{{}},
		funcs:   []map[string]funcEntry{{}},
		Out:     os.Stdout,
	}
}

// Run executes the statements in order, stopping at the first error.
func (ip *Interp) Run(program []Node) error {
	for _, stmt := range program {
		if err := ip.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RunSource lexes, parses and executes a complete source string.
func (ip *Interp) RunSource(src string) error {
	program, err := ParseSource(src)
	if err != nil {
		return err
	}
	return ip.Run(program)
}

func (ip *Interp) execStatement(stmt Node) error {
	switch s := stmt.(type) {
	case *LetStmt:
		return ip.execLet(s)

	case *FnDecl:
		return ip.execFnDecl(s)

	case *ReturnStmt:
		return ip.execReturn(s)

	case *IfStmt:
		return unsupportedf("`if` statements are not executable")
	case *WhileStmt:
		return unsupportedf("`while` loops are not executable")
	case *ForStmt:
		return unsupportedf("`for` loops are not executable")
	case *MatchStmt:
		return unsupportedf("`match` statements are not executable")
	case *ClassDecl:
		return unsupportedf("`class` declarations are not executable")
	case *ParentInit:
		return unsupportedf("`parent` initialisation is not executable")
	case *UseStmt:
		return unsupportedf("`use` imports are not executable")

	default:
		// expression statement, evaluated for its side effects
		_, err := ip.eval(stmt)
		return err
	}
}

func (ip *Interp) execLet(s *LetStmt) error {
	name, ok := s.Name.(*Ident)
	if !ok {
		return nameErrorf("invalid variable name")
	}
	if s.Init == nil {
		ip.current[name.Name] = binding{kind: bindEmpty}
		return nil
	}
	if isLiteral(s.Init) {
		v, err := ip.eval(s.Init)
		if err != nil {
			return err
		}
		ip.current[name.Name] = binding{kind: bindValue, val: v}
		return nil
	}
	ip.current[name.Name] = binding{kind: bindExpr, expr: s.Init}
	return nil
}

// isLiteral reports whether the node stores eagerly under "let". Everything
// else — identifiers, calls, operators, lists — defers.
func isLiteral(n Node) bool {
	switch n.(type) {
	case *IntLit, *FloatLit, *StrLit, *BoolLit, *NoneLit:
		return true
	}
	return false
}

func (ip *Interp) execFnDecl(s *FnDecl) error {
	name, ok := s.Name.(*Ident)
	if !ok {
		return nameErrorf("invalid function name")
	}
	// redeclaration silently replaces the previous entry
	top := ip.funcs[len(ip.funcs)-1]
	top[name.Name] = funcEntry{params: s.Params, outs: s.Outs, body: s.Body}
	return nil
}

// execReturn evaluates the return expressions and bundles them: zero → None,
// one → the value itself, several → a List.
func (ip *Interp) execReturn(s *ReturnStmt) error {
	switch len(s.Exprs) {
	case 0:
		v := None
		ip.ret = &v
	case 1:
		v, err := ip.eval(s.Exprs[0])
		if err != nil {
			return err
		}
		ip.ret = &v
	default:
		vals := make([]Value, 0, len(s.Exprs))
		for _, e := range s.Exprs {
			v, err := ip.eval(e)
			if err != nil {
				return err
			}
			vals = append(vals, v)
		}
		v := ListV(vals)
		ip.ret = &v
	}
	return nil
}

// execBlock runs a function body, halting as soon as a return is pending.
func (ip *Interp) execBlock(body []Node) error {
	for _, stmt := range body {
		if err := ip.execStatement(stmt); err != nil {
			return err
		}
		if ip.ret != nil {
			return nil
		}
	}
	return nil
}

// ───────────────────────────────── eval ───────────────────────────────────

func (ip *Interp) eval(n Node) (Value, error) {
	switch e := n.(type) {
	case *IntLit:
		return IntV(e.Value), nil
	case *FloatLit:
		return FloatV(e.Value), nil
	case *StrLit:
		return StrV(e.Value), nil
	case *BoolLit:
		return BoolV(e.Value), nil
	case *NoneLit:
		return None, nil

	case *ListExpr:
		vals := make([]Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			v, err := ip.eval(el)
			if err != nil {
				return None, err
			}
			vals = append(vals, v)
		}
		return ListV(vals), nil

	case *Ident:
		return ip.evalIdent(e)

	case *CallExpr:
		return ip.callFunction(e)

	case *BinaryExpr:
		return ip.evalBinary(e)

	case *UnaryExpr:
		return ip.evalUnary(e)
	}

	return None, unsupportedf("cannot evaluate %s", nodeName(n))
}

// evalIdent resolves a variable: current scope first, then the scope stack
// from the most recent frame down. Deferred bindings re-evaluate their
// stored expression in the current scope on every read.
func (ip *Interp) evalIdent(id *Ident) (Value, error) {
	b, ok := ip.current[id.Name]
	if !ok {
		for i := len(ip.scopes) - 1; i >= 0; i-- {
			if b, ok = ip.scopes[i][id.Name]; ok {
				break
			}
		}
	}
	if !ok {
		return None, nameErrorf("variable `%s` not defined", id.Name)
	}
	switch b.kind {
	case bindValue:
		return b.val, nil
	case bindExpr:
		return ip.eval(b.expr)
	}
	return None, nameErrorf("variable `%s` declared but never assigned", id.Name)
}

// lookupBinding finds a variable's binding, searching the same order as
// evalIdent.
func (ip *Interp) lookupBinding(name string) (binding, bool) {
	if b, ok := ip.current[name]; ok {
		return b, true
	}
	for i := len(ip.scopes) - 1; i >= 0; i-- {
		if b, ok := ip.scopes[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// callFunction dispatches a call expression. Builtins shadow user functions
// of the same name.
func (ip *Interp) callFunction(call *CallExpr) (Value, error) {
	name, ok := call.Callee.(*Ident)
	if !ok {
		return None, nameErrorf("invalid function name")
	}
	switch name.Name {
	case "print":
		return ip.builtinPrint(call.Args, "")
	case "println":
		return ip.builtinPrint(call.Args, "\n")
	}
	return ip.executeFunc(name.Name, call.Args)
}

// builtinPrint stringifies each argument and writes the concatenation with
// no separator, plus the given terminator.
func (ip *Interp) builtinPrint(args []Node, end string) (Value, error) {
	var sb strings.Builder
	for _, a := range args {
		v, err := ip.eval(a)
		if err != nil {
			return None, err
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(end)
	if _, err := io.WriteString(ip.Out, sb.String()); err != nil {
		return None, err
	}
	return None, nil
}

// executeFunc runs a user-declared function: arguments evaluate in the
// caller's scope, the body runs in a fresh scope with the caller's pushed
// onto the stack, and any pending return left over from an earlier frame is
// cleared before the body starts.
func (ip *Interp) executeFunc(name string, args []Node) (Value, error) {
	top := ip.funcs[len(ip.funcs)-1]
	fn, ok := top[name]
	if !ok {
		return None, nameErrorf("function `%s` not found", name)
	}
	if len(args) != len(fn.params) {
		return None, arityErrorf("function '%s' expects %d arguments, but %d %s provided",
			signature(name, fn.params), len(fn.params), len(args), wasWere(len(args)))
	}

	// bind arguments in the caller's scope before switching frames
	frame := scope{}
	for i, p := range fn.params {
		pname, pok := p.(*Ident)
		if !pok {
			return None, nameErrorf("invalid parameter name in function `%s`", name)
		}
		v, err := ip.eval(args[i])
		if err != nil {
			return None, err
		}
		frame[pname.Name] = binding{kind: bindValue, val: v}
	}

	ip.scopes = append(ip.scopes, ip.current)
	caller := ip.current
	ip.current = frame
	ip.ret = nil

	err := ip.execBlock(fn.body)

	ip.current = caller
	ip.scopes = ip.scopes[:len(ip.scopes)-1]
	if err != nil {
		return None, err
	}
	if ip.ret != nil {
		v := *ip.ret
		ip.ret = nil
		return v, nil
	}
	return None, nil
}

func signature(name string, params []Node) string {
	if len(params) == 0 {
		return name + "()"
	}
	return name + "(..)"
}

func wasWere(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}
