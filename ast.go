// ast.go — syntax-tree node shapes shared by the parser and the interpreter.
//
// The tree is a closed tagged union: each variant is a struct implementing
// the Node marker. Children are exclusively owned by their parent; the parser
// builds each node once and nothing rewrites it afterwards. The interpreter
// holds references to subtrees for deferred bindings but never mutates them.
package mar

// Node is the closed set of syntax-tree shapes produced by the parser.
type Node interface {
	node()
}

// ----- literal forms -----

// IntLit is an integer literal (32-bit signed).
type IntLit struct {
	Value int32
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

// StrLit is a string literal with escapes already decoded.
type StrLit struct {
	Value string
}

// BoolLit is True or False.
type BoolLit struct {
	Value bool
}

// NoneLit is the None literal.
type NoneLit struct{}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

// FlowExpr is a bare keyword in expression position (break, continue, ...).
// It is parsed but carries no evaluation semantics.
type FlowExpr struct {
	Keyword string
}

// ----- compound expressions -----

// PropertyAccess is "object.property", folded left-associatively.
type PropertyAccess struct {
	Object   Node
	Property Node
}

// IndexExpr is "object[index]".
type IndexExpr struct {
	Object Node
	Index  Node
}

// UnaryExpr is a prefix "+", "-", "!" or postfix "++", "--" operation. The
// interpreter dispatches on the unevaluated operand node.
type UnaryExpr struct {
	Op      string
	Operand Node
}

// BinaryExpr is "left op right" for every infix operator.
type BinaryExpr struct {
	Left  Node
	Op    string
	Right Node
}

// ListExpr is a bracketed expression list "[e, e, ...]".
type ListExpr struct {
	Elems []Node
}

// CallExpr is "callee(arg, ...)".
type CallExpr struct {
	Callee Node
	Args   []Node
}

// CaseClause is one "expr => { block }" arm of a match statement. A nil Cond
// marks the ".." default arm.
type CaseClause struct {
	Cond Node
	Body []Node
}

// ----- statement forms -----

// LetStmt is "let name;" or "let name = expr;". Init is nil when the binding
// has no initializer.
type LetStmt struct {
	Name Node
	Init Node
}

// FnDecl is "fn name (in1, in2 : out1, out2) { block }". Outs is the optional
// output-parameter half, recorded but not consulted during execution.
type FnDecl struct {
	Name   Node
	Params []Node
	Outs   []Node
	Body   []Node
}

// ReturnStmt is "rn expr, expr, ... ;".
type ReturnStmt struct {
	Exprs []Node
}

// IfStmt is "if ( cond ) { block } [else { block }]". Else is nil when no
// else block is present.
type IfStmt struct {
	Cond Node
	Then []Node
	Else []Node
}

// WhileStmt is "while ( cond ) { block }".
type WhileStmt struct {
	Cond Node
	Body []Node
}

// ForStmt is "for ( object : v1, v2, ... ) { block }".
type ForStmt struct {
	Object Node
	Vars   []Node
	Body   []Node
}

// MatchStmt is "match name { expr => block , ... , .. => block }".
type MatchStmt struct {
	Subject Node
	Cases   []*CaseClause
}

// ClassDecl is "class Name [(parent, ...)] { block }".
type ClassDecl struct {
	Name    Node
	Parents []Node
	Body    []Node
}

// ParentInit is "parent Name ( args )".
type ParentInit struct {
	Name Node
	Args []Node
}

// UseStmt is "use name, name, ... ;".
type UseStmt struct {
	Modules []Node
}

func (*IntLit) node()         {}
func (*FloatLit) node()       {}
func (*StrLit) node()         {}
func (*BoolLit) node()        {}
func (*NoneLit) node()        {}
func (*Ident) node()          {}
func (*FlowExpr) node()       {}
func (*PropertyAccess) node() {}
func (*IndexExpr) node()      {}
func (*UnaryExpr) node()      {}
func (*BinaryExpr) node()     {}
func (*ListExpr) node()       {}
func (*CallExpr) node()       {}
func (*CaseClause) node()     {}
func (*LetStmt) node()        {}
func (*FnDecl) node()         {}
func (*ReturnStmt) node()     {}
func (*IfStmt) node()         {}
func (*WhileStmt) node()      {}
func (*ForStmt) node()        {}
func (*MatchStmt) node()      {}
func (*ClassDecl) node()      {}
func (*ParentInit) node()     {}
func (*UseStmt) node()        {}

// nodeName returns a short human-readable name for diagnostics.
func nodeName(n Node) string {
	switch n.(type) {
	case *IntLit:
		return "integer literal"
	case *FloatLit:
		return "float literal"
	case *StrLit:
		return "string literal"
	case *BoolLit:
		return "boolean literal"
	case *NoneLit:
		return "None"
	case *Ident:
		return "identifier"
	case *FlowExpr:
		return "flow keyword"
	case *PropertyAccess:
		return "property access"
	case *IndexExpr:
		return "index expression"
	case *UnaryExpr:
		return "unary expression"
	case *BinaryExpr:
		return "binary expression"
	case *ListExpr:
		return "expression list"
	case *CallExpr:
		return "function call"
	case *CaseClause:
		return "match case"
	case *LetStmt:
		return "variable declaration"
	case *FnDecl:
		return "function declaration"
	case *ReturnStmt:
		return "return statement"
	case *IfStmt:
		return "if statement"
	case *WhileStmt:
		return "while loop"
	case *ForStmt:
		return "for loop"
	case *MatchStmt:
		return "match statement"
	case *ClassDecl:
		return "class declaration"
	case *ParentInit:
		return "parent initialisation"
	case *UseStmt:
		return "use statement"
	default:
		return "unknown node"
	}
}
