// Package ast defines the tree shapes the parser builds. Every node is a
// struct carrying a private span, a Span accessor and a SetSpan mutator,
// plus a marker method tying it to the Expr/Stmt/Decl/TypeExpr interface it
// belongs to — nodes that serve double duty (e.g. a Template member can be
// either a Decl or, inside a block, a Stmt) implement both marker sets.
package ast

import "github.com/veltra-lang/veltra/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a node that can appear directly in a block's statement
// sequence: expressions, local definitions, and imports.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level or template-level definition.
type Decl interface {
	Node
	declNode()
}

// TypeTree represents a type-level tree.
type TypeTree interface {
	Node
	typeNode()
}

// Pattern represents a pattern-match tree.
type Pattern interface {
	Node
	patternNode()
}

type baseNode struct{ span lexer.Span }

func (b *baseNode) Span() lexer.Span     { return b.span }
func (b *baseNode) SetSpan(s lexer.Span) { b.span = s }

// StmtTag is an embeddable marker that lets other packages construct
// ad-hoc types satisfying Stmt (the stmtNode marker method is otherwise
// only reachable from within this package).
type StmtTag struct{}

func (StmtTag) stmtNode() {}

// EmptyTree is the canonical "nothing here" placeholder: an absent type
// ascription, an absent initializer, an absent self-declaration. It
// satisfies Expr, TypeTree, and Pattern so callers can use it wherever the
// grammar allows an optional tree to be omitted.
type EmptyTree struct{ baseNode }

func NewEmptyTree(span lexer.Span) *EmptyTree { return &EmptyTree{baseNode{span}} }
func (*EmptyTree) exprNode()                  {}
func (*EmptyTree) typeNode()                  {}
func (*EmptyTree) patternNode()               {}
func (*EmptyTree) stmtNode()                  {}
func (*EmptyTree) declNode()                  {}

// IsEmpty reports whether n is nil or the EmptyTree sentinel.
func IsEmpty(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*EmptyTree)
	return ok
}

// PackageDef is the root of a compilation unit: an optional package
// qualifier plus its top-level statements (imports, classes, objects,
// traits, or a lone package-object definition).
type PackageDef struct {
	baseNode
	Pid   Expr // possibly-empty qualified id; EmptyTree for the default package
	Stats []Stmt
}

func NewPackageDef(pid Expr, stats []Stmt, span lexer.Span) *PackageDef {
	return &PackageDef{baseNode{span}, pid, stats}
}
func (*PackageDef) declNode() {}
func (*PackageDef) stmtNode() {}

// Ident is a bare name reference, term or type depending on context.
type Ident struct {
	baseNode
	Name string
}

func NewIdent(name string, span lexer.Span) *Ident { return &Ident{baseNode{span}, name} }
func (*Ident) exprNode()                           {}
func (*Ident) stmtNode()                           {}
func (*Ident) typeNode()                           {}
func (*Ident) patternNode()                        {}

// This references the enclosing instance, optionally qualified by an
// outer class name (`Outer.this`).
type This struct {
	baseNode
	Qual string // "" for a bare `this`
}

func NewThis(qual string, span lexer.Span) *This { return &This{baseNode{span}, qual} }
func (*This) exprNode()                          {}
func (*This) stmtNode()                          {}

// Super references the enclosing instance's superclass.
type Super struct {
	baseNode
	Qual string
	Mix  string // trait qualifier in `super[Trait]`, "" if absent
}

func NewSuper(qual, mix string, span lexer.Span) *Super { return &Super{baseNode{span}, qual, mix} }
func (*Super) exprNode()                                {}
func (*Super) stmtNode()                                {}

// Select is a `.`-qualified member reference.
type Select struct {
	baseNode
	Qualifier Expr
	Name      string
}

func NewSelect(qual Expr, name string, span lexer.Span) *Select {
	return &Select{baseNode{span}, qual, name}
}
func (*Select) exprNode()    {}
func (*Select) stmtNode()    {}
func (*Select) patternNode() {}

// Apply is a function/constructor/operator application.
type Apply struct {
	baseNode
	Fn   Expr
	Args []Expr
}

func NewApply(fn Expr, args []Expr, span lexer.Span) *Apply {
	return &Apply{baseNode{span}, fn, args}
}
func (*Apply) exprNode()    {}
func (*Apply) stmtNode()    {}
func (*Apply) patternNode() {}

// NamedArg is an `id = expr` argument, legal only in argument position.
type NamedArg struct {
	baseNode
	Name  string
	Value Expr
}

func NewNamedArg(name string, value Expr, span lexer.Span) *NamedArg {
	return &NamedArg{baseNode{span}, name, value}
}
func (*NamedArg) exprNode() {}
func (*NamedArg) stmtNode() {}

// TypeApply is a type application `f[T1, T2,...]`.
type TypeApply struct {
	baseNode
	Fn       Expr
	TypeArgs []TypeTree
}

func NewTypeApply(fn Expr, targs []TypeTree, span lexer.Span) *TypeApply {
	return &TypeApply{baseNode{span}, fn, targs}
}
func (*TypeApply) exprNode() {}
func (*TypeApply) stmtNode() {}

// LiteralKind classifies a Literal node's payload.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitSymbol
	LitBoolean
	LitNull
	LitUnit
)

// Literal is a constant value.
type Literal struct {
	baseNode
	Kind  LiteralKind
	Value string
}

func NewLiteral(kind LiteralKind, value string, span lexer.Span) *Literal {
	return &Literal{baseNode{span}, kind, value}
}
func (*Literal) exprNode()    {}
func (*Literal) stmtNode()    {}
func (*Literal) patternNode() {}

// Typed is an ascribed expression `e: T`.
type Typed struct {
	baseNode
	Expr Expr
	Type TypeTree
}

func NewTyped(e Expr, t TypeTree, span lexer.Span) *Typed { return &Typed{baseNode{span}, e, t} }
func (*Typed) exprNode()                                  {}
func (*Typed) stmtNode()                                  {}
func (*Typed) patternNode()                               {}

// Annotated is an annotated expression `e: @annot`.
type Annotated struct {
	baseNode
	Expr       Expr
	Annotation Expr
}

func NewAnnotated(e, annot Expr, span lexer.Span) *Annotated {
	return &Annotated{baseNode{span}, e, annot}
}
func (*Annotated) exprNode() {}
func (*Annotated) stmtNode() {}

// Function is an anonymous function: parameters (ValDefs, possibly with
// empty type trees to be inferred) plus a body.
type Function struct {
	baseNode
	Params []*ValDef
	Body   Expr
}

func NewFunction(params []*ValDef, body Expr, span lexer.Span) *Function {
	return &Function{baseNode{span}, params, body}
}
func (*Function) exprNode() {}
func (*Function) stmtNode() {}

// Block is a brace-delimited sequence of statements ending in a result
// expression (synthesised as a Literal unit when absent).
type Block struct {
	baseNode
	Stats  []Stmt
	Result Expr
}

func NewBlock(stats []Stmt, result Expr, span lexer.Span) *Block {
	return &Block{baseNode{span}, stats, result}
}
func (*Block) exprNode() {}
func (*Block) stmtNode() {}

// If is a conditional expression, with Else possibly EmptyTree.
type If struct {
	baseNode
	Cond Expr
	Then Expr
	Else Expr
}

func NewIf(cond, then, els Expr, span lexer.Span) *If { return &If{baseNode{span}, cond, then, els} }
func (*If) exprNode()                                 {}
func (*If) stmtNode()                                 {}

// CaseClause is one arm of a Match.
type CaseClause struct {
	baseNode
	Pat   Pattern
	Guard Expr // EmptyTree if absent
	Body  Expr
}

func NewCaseClause(pat Pattern, guard, body Expr, span lexer.Span) *CaseClause {
	return &CaseClause{baseNode{span}, pat, guard, body}
}
func (*CaseClause) exprNode() {}

// Match is a pattern-match expression.
type Match struct {
	baseNode
	Scrutinee Expr
	Cases     []*CaseClause
}

func NewMatch(scrutinee Expr, cases []*CaseClause, span lexer.Span) *Match {
	return &Match{baseNode{span}, scrutinee, cases}
}
func (*Match) exprNode() {}
func (*Match) stmtNode() {}

// Try is a try/catch/finally expression. Catch is expressed as a list of
// case clauses so `catch { cases }` and `catch expr` (wrapped via
// makeCatchFromExpr into a single clause) share one shape.
type Try struct {
	baseNode
	Body    Expr
	Catches []*CaseClause
	Finally Expr // EmptyTree if absent
}

func NewTry(body Expr, catches []*CaseClause, finally Expr, span lexer.Span) *Try {
	return &Try{baseNode{span}, body, catches, finally}
}
func (*Try) exprNode() {}
func (*Try) stmtNode() {}

// Throw raises a value as an exception.
type Throw struct {
	baseNode
	Expr Expr
}

func NewThrow(e Expr, span lexer.Span) *Throw { return &Throw{baseNode{span}, e} }
func (*Throw) exprNode()                      {}
func (*Throw) stmtNode()                      {}

// Return exits the enclosing method, optionally with a value.
type Return struct {
	baseNode
	Expr Expr // EmptyTree for a bare `return`
}

func NewReturn(e Expr, span lexer.Span) *Return { return &Return{baseNode{span}, e} }
func (*Return) exprNode()                       {}
func (*Return) stmtNode()                       {}

// New instantiates a template (anonymous class body or a straightforward
// constructor application of Template.Parents[0]).
type New struct {
	baseNode
	Template *Template
}

func NewNew(tmpl *Template, span lexer.Span) *New { return &New{baseNode{span}, tmpl} }
func (*New) exprNode()                            {}
func (*New) stmtNode()                            {}

// Assign is a mutation `lhs = rhs`; legal only when lhs is an Ident,
// Select, or Apply (array/updater sugar), enforced by the parser rather
// than this constructor.
type Assign struct {
	baseNode
	Lhs, Rhs Expr
}

func NewAssign(lhs, rhs Expr, span lexer.Span) *Assign { return &Assign{baseNode{span}, lhs, rhs} }
func (*Assign) exprNode()                              {}
func (*Assign) stmtNode()                              {}

// Parens wraps a parenthesised, possibly multi-element, expression list;
// a singleton collapses to the bare inner expression by convention at the
// call site, but the node itself always records what was written.
type Parens struct {
	baseNode
	Exprs []Expr
}

func NewParens(exprs []Expr, span lexer.Span) *Parens { return &Parens{baseNode{span}, exprs} }
func (*Parens) exprNode()                             {}
func (*Parens) stmtNode()                             {}

// Star is a repeated-pattern marker `_*`.
type Star struct {
	baseNode
	Elem Pattern
}

func NewStar(elem Pattern, span lexer.Span) *Star { return &Star{baseNode{span}, elem} }
func (*Star) patternNode()                        {}
func (*Star) exprNode()                           {}
func (*Star) stmtNode()                           {}

// Bind associates a pattern with a name (`x @ pat`, or a bare variable
// pattern when Pat is nil).
type Bind struct {
	baseNode
	Name string
	Pat  Pattern
}

func NewBind(name string, pat Pattern, span lexer.Span) *Bind {
	return &Bind{baseNode{span}, name, pat}
}
func (*Bind) patternNode() {}
func (*Bind) exprNode()    {}
func (*Bind) stmtNode()    {}

// Alternative is a `p1 | p2 |...` pattern.
type Alternative struct {
	baseNode
	Alts []Pattern
}

func NewAlternative(alts []Pattern, span lexer.Span) *Alternative {
	return &Alternative{baseNode{span}, alts}
}
func (*Alternative) patternNode() {}
func (*Alternative) exprNode()    {}
func (*Alternative) stmtNode()    {}
