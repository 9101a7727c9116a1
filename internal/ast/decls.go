package ast

import "github.com/veltra-lang/veltra/internal/lexer"

// Mods is a bitset of definition modifiers, set by the parser while
// building ValDef/DefDef/ClassDef and friends.
type Mods uint32

const (
	ModPrivate Mods = 1 << iota
	ModProtected
	ModOverride
	ModAbstract
	ModFinal
	ModSealed
	ModImplicit
	ModLazy
	ModCase
	ModTrait
	ModMacro
	ModVar // as opposed to `val`
	// Synthetic flags set by the desugaring routines, never written by the
	// scanner/modifier parser directly.
	ModPreSuper
	ModParam
	ModParamAccessor
	ModCaseAccessor
	ModAbstractOverride
	ModSynthetic
)

func (m Mods) Has(flag Mods) bool  { return m&flag != 0 }
func (m Mods) With(flag Mods) Mods { return m | flag }

// TypeParam is one entry of a type-parameter clause, e.g. the `T: Ord`
// in `class C[T: Ord]`.
type TypeParam struct {
	baseNode
	Name          string
	Variance      int // -1 contravariant, 0 invariant, 1 covariant
	Bounds        *TypeBoundsTree
	ViewBounds    []TypeTree
	ContextBounds []TypeTree
	Params        []*TypeParam // higher-kinded nested parameters
}

func NewTypeParam(name string, span lexer.Span) *TypeParam {
	return &TypeParam{baseNode: baseNode{span}, Name: name}
}
func (*TypeParam) declNode() {}

// ValDef is `val`/`var` pattern-free definitions, parameter declarations,
// and self-type declarations share this shape.
type ValDef struct {
	baseNode
	Mods Mods
	Name string
	Type TypeTree // EmptyTree if to be inferred/omitted
	Rhs  Expr     // EmptyTree ≡ abstract/deferred
}

func NewValDef(mods Mods, name string, typ TypeTree, rhs Expr, span lexer.Span) *ValDef {
	return &ValDef{baseNode{span}, mods, name, typ, rhs}
}
func (*ValDef) declNode() {}
func (*ValDef) stmtNode() {}

// ParamClause is one parenthesised parameter list of a DefDef or class
// primary constructor.
type ParamClause struct {
	Implicit bool
	Params   []*ValDef
}

// DefDef is a method or auxiliary-constructor definition.
type DefDef struct {
	baseNode
	Mods       Mods
	Name       string // "this" for auxiliary constructors
	TypeParams []*TypeParam
	ParamLists []ParamClause
	ReturnType TypeTree // EmptyTree if omitted/inferred
	Rhs        Expr     // EmptyTree ≡ abstract/deferred
}

func NewDefDef(mods Mods, name string, tparams []*TypeParam, params []ParamClause, ret TypeTree, rhs Expr, span lexer.Span) *DefDef {
	return &DefDef{baseNode{span}, mods, name, tparams, params, ret, rhs}
}
func (*DefDef) declNode() {}
func (*DefDef) stmtNode() {}

// TypeDef is `type T =...` (alias) or `type T <:...` / `type T >:... <:...`
// (abstract, with bounds) depending on whether Rhs is EmptyTree.
type TypeDef struct {
	baseNode
	Mods       Mods
	Name       string
	TypeParams []*TypeParam
	Bounds     *TypeBoundsTree // used when Rhs is EmptyTree
	Rhs        TypeTree        // EmptyTree for an abstract type member
}

func NewTypeDef(mods Mods, name string, tparams []*TypeParam, bounds *TypeBoundsTree, rhs TypeTree, span lexer.Span) *TypeDef {
	return &TypeDef{baseNode{span}, mods, name, tparams, bounds, rhs}
}
func (*TypeDef) declNode() {}
func (*TypeDef) stmtNode() {}

// Template is the body of a class/trait/object/new: parents, an optional
// self-declaration, early definitions, and the member body.
type Template struct {
	baseNode
	Parents   []Expr  // each possibly an Apply for constructor arguments
	Self      *ValDef // nil ≡ no self-type declaration
	EarlyDefs []*ValDef
	Body      []Stmt
}

func NewTemplate(parents []Expr, self *ValDef, earlyDefs []*ValDef, body []Stmt, span lexer.Span) *Template {
	return &Template{baseNode{span}, parents, self, earlyDefs, body}
}

// ClassDef covers `class`, `trait`, and `case class` (ModCase/ModTrait in Mods).
type ClassDef struct {
	baseNode
	Mods       Mods
	Name       string
	TypeParams []*TypeParam
	Ctor       DefDef // the primary constructor: ParamLists + Mods for `private class C private (...)`
	Template   *Template
}

func NewClassDef(mods Mods, name string, tparams []*TypeParam, ctor DefDef, tmpl *Template, span lexer.Span) *ClassDef {
	return &ClassDef{baseNode{span}, mods, name, tparams, ctor, tmpl}
}
func (*ClassDef) declNode() {}
func (*ClassDef) stmtNode() {}

// ModuleDef covers `object` and `case object`.
type ModuleDef struct {
	baseNode
	Mods     Mods
	Name     string
	Template *Template
}

func NewModuleDef(mods Mods, name string, tmpl *Template, span lexer.Span) *ModuleDef {
	return &ModuleDef{baseNode{span}, mods, name, tmpl}
}
func (*ModuleDef) declNode() {}
func (*ModuleDef) stmtNode() {}

// ImportSelector is one entry of an import clause's selector list.
type ImportSelector struct {
	baseNode
	Name   string // the wildcard token "_" marks a wildcard selector
	Rename string // "" unless renamed; "_" marks a hiding selector
}

func NewImportSelector(name, rename string, span lexer.Span) *ImportSelector {
	return &ImportSelector{baseNode{span}, name, rename}
}

// Import is one `import prefix.{selectors}` clause.
type Import struct {
	baseNode
	Expr      Expr
	Selectors []*ImportSelector
}

func NewImport(expr Expr, selectors []*ImportSelector, span lexer.Span) *Import {
	return &Import{baseNode{span}, expr, selectors}
}
func (*Import) declNode() {}
func (*Import) stmtNode() {}
