package ast

import "github.com/veltra-lang/veltra/internal/lexer"

// TypeBoundsTree is a type parameter or abstract type's `>: Lo <: Hi`
// bounds, each half defaulting to the bottom/top type when omitted.
type TypeBoundsTree struct {
	baseNode
	Lo TypeTree
	Hi TypeTree
}

func NewTypeBoundsTree(lo, hi TypeTree, span lexer.Span) *TypeBoundsTree {
	return &TypeBoundsTree{baseNode{span}, lo, hi}
}
func (*TypeBoundsTree) typeNode() {}

// CompoundTypeTree is `T1 with T2 with... { refinement }`.
type CompoundTypeTree struct {
	baseNode
	Parents    []TypeTree
	Refinement []Stmt
}

func NewCompoundTypeTree(parents []TypeTree, refinement []Stmt, span lexer.Span) *CompoundTypeTree {
	return &CompoundTypeTree{baseNode{span}, parents, refinement}
}
func (*CompoundTypeTree) typeNode() {}

// AppliedTypeTree is `T[A, B,...]`.
type AppliedTypeTree struct {
	baseNode
	Fn   TypeTree
	Args []TypeTree
}

func NewAppliedTypeTree(fn TypeTree, args []TypeTree, span lexer.Span) *AppliedTypeTree {
	return &AppliedTypeTree{baseNode{span}, fn, args}
}
func (*AppliedTypeTree) typeNode() {}

// SingletonTypeTree is `expr.type`.
type SingletonTypeTree struct {
	baseNode
	Ref Expr
}

func NewSingletonTypeTree(ref Expr, span lexer.Span) *SingletonTypeTree {
	return &SingletonTypeTree{baseNode{span}, ref}
}
func (*SingletonTypeTree) typeNode() {}

// SelectFromTypeTree is `Qualifier#name`.
type SelectFromTypeTree struct {
	baseNode
	Qualifier TypeTree
	Name      string
}

func NewSelectFromTypeTree(qual TypeTree, name string, span lexer.Span) *SelectFromTypeTree {
	return &SelectFromTypeTree{baseNode{span}, qual, name}
}
func (*SelectFromTypeTree) typeNode() {}

// ExistentialTypeTree is `T forSome { type A;... }`, also used to wrap a
// boundary's collected placeholder type parameters.
type ExistentialTypeTree struct {
	baseNode
	Underlying   TypeTree
	WhereClauses []Decl
}

func NewExistentialTypeTree(underlying TypeTree, whereClauses []Decl, span lexer.Span) *ExistentialTypeTree {
	return &ExistentialTypeTree{baseNode{span}, underlying, whereClauses}
}
func (*ExistentialTypeTree) typeNode() {}

// FunctionTypeTree is `(A, B) => C`, including the nullary ` => C` and
// by-name `=> C` forms (ByName=true implies no Params).
type FunctionTypeTree struct {
	baseNode
	ByName   bool
	Repeated bool // `T*`, only legal as a parameter type
	Params   []TypeTree
	Result   TypeTree
}

func NewFunctionTypeTree(byName, repeated bool, params []TypeTree, result TypeTree, span lexer.Span) *FunctionTypeTree {
	return &FunctionTypeTree{baseNode{span}, byName, repeated, params, result}
}
func (*FunctionTypeTree) typeNode() {}

// TupleTypeTree is a parenthesised, comma-separated type list that was not
// followed by `=>` (so it is not a FunctionTypeTree). A singleton collapses
// to its element at the call site.
type TupleTypeTree struct {
	baseNode
	Elems []TypeTree
}

func NewTupleTypeTree(elems []TypeTree, span lexer.Span) *TupleTypeTree {
	return &TupleTypeTree{baseNode{span}, elems}
}
func (*TupleTypeTree) typeNode() {}

// AnnotatedTypeTree is `T @annot`.
type AnnotatedTypeTree struct {
	baseNode
	Underlying TypeTree
	Annotation Expr
}

func NewAnnotatedTypeTree(underlying TypeTree, annot Expr, span lexer.Span) *AnnotatedTypeTree {
	return &AnnotatedTypeTree{baseNode{span}, underlying, annot}
}
func (*AnnotatedTypeTree) typeNode() {}
