package ast

import "github.com/veltra-lang/veltra/internal/lexer"

// Enumerator is one entry of a for-comprehension: a generator, a filter
// guard, or a value definition (`pat = rhs`).
type Enumerator struct {
	baseNode
	Pat      Pattern
	Rhs      Expr // generator/assignment source, or the filter condition
	IsFilter bool
	IsAssign bool
}

func NewGenerator(pat Pattern, rhs Expr, span lexer.Span) *Enumerator {
	return &Enumerator{baseNode: baseNode{span}, Pat: pat, Rhs: rhs}
}
func NewFilter(cond Expr, span lexer.Span) *Enumerator {
	return &Enumerator{baseNode: baseNode{span}, Rhs: cond, IsFilter: true}
}
func NewValAssign(pat Pattern, rhs Expr, span lexer.Span) *Enumerator {
	return &Enumerator{baseNode: baseNode{span}, Pat: pat, Rhs: rhs, IsAssign: true}
}

// MkFor desugars a for-comprehension's enumerator list plus body into
// nested map/flatMap/withFilter/foreach calls. yields selects map/flatMap
// (a value-producing comprehension) over foreach. fresh is the caller's
// fresh-name source, used when a non-trivial generator pattern needs a
// synthetic scrutinee parameter.
func MkFor(enums []*Enumerator, body Expr, yields bool, fresh func(prefix string) string, span lexer.Span) Expr {
	if len(enums) == 0 {
		return body
	}
	return mkForRec(enums, body, yields, fresh, span)
}

func mkForRec(enums []*Enumerator, body Expr, yields bool, fresh func(string) string, span lexer.Span) Expr {
	head := enums[0]
	rest := enums[1:]

	// Consecutive filters immediately following a generator fold into
	// withFilter before the next combinator is chosen.
	filters := []*Enumerator{}
	for len(rest) > 0 && rest[0].IsFilter {
		filters = append(filters, rest[0])
		rest = rest[1:]
	}

	source := head.Rhs
	for _, f := range filters {
		closure := mkSyntheticClosure(head.Pat, f.Rhs, fresh, f.Span())
		source = NewApply(NewSelect(source, "withFilter", f.Span()), []Expr{closure}, f.Span())
	}

	if len(rest) == 0 {
		method := "foreach"
		if yields {
			method = "map"
		}
		closure := mkSyntheticClosure(head.Pat, body, fresh, span)
		return NewApply(NewSelect(source, method, span), []Expr{closure}, span)
	}

	// Further enumerators: recurse to build the continuation, then combine
	// with flatMap (value-producing) or foreach (effectful).
	method := "foreach"
	if yields {
		method = "flatMap"
	}
	continuation := mkForRec(rest, body, yields, fresh, span)
	closure := mkSyntheticClosure(head.Pat, continuation, fresh, span)
	return NewApply(NewSelect(source, method, span), []Expr{closure}, span)
}

// mkSyntheticClosure builds a one-parameter Function binding pat, or — when
// pat is a bare identifier bind — a plain single-identifier-parameter
// Function so trivial generators don't get an extra pattern-match layer.
func mkSyntheticClosure(pat Pattern, body Expr, fresh func(string) string, span lexer.Span) Expr {
	if bind, ok := pat.(*Bind); ok && bind.Pat == nil && bind.Name != "_" {
		param := NewValDef(ModParam, bind.Name, NewEmptyTree(span), NewEmptyTree(span), span)
		return NewFunction([]*ValDef{param}, body, span)
	}
	name := fresh("x")
	param := NewValDef(ModParam|ModSynthetic, name, NewEmptyTree(span), NewEmptyTree(span), span)
	caseBody := NewCaseClause(pat, NewEmptyTree(span), body, span)
	match := NewMatch(NewIdent(name, span), []*CaseClause{caseBody}, span)
	return NewFunction([]*ValDef{param}, match, span)
}

// MkNew wraps a Template into a New expression. It only performs the wrap:
// a template with a single no-argument parent and no body is still a New,
// not collapsed into a direct constructor Apply.
func MkNew(tmpl *Template, span lexer.Span) Expr {
	return NewNew(tmpl, span)
}

// MkAssign builds an Assign node, or desugars `f(args) = rhs` into
// `f.update(args, rhs)` when lhs is itself an Apply (the "updater" sugar).
func MkAssign(lhs, rhs Expr, span lexer.Span) Expr {
	if apply, ok := lhs.(*Apply); ok {
		newArgs := append(append([]Expr{}, apply.Args...), rhs)
		return NewApply(NewSelect(apply.Fn, "update", span), newArgs, span)
	}
	return NewAssign(lhs, rhs, span)
}

// MkParents normalizes a parsed parent-type list into the Expr form a
// Template stores (each parent optionally applied to constructor args).
func MkParents(parents []TypeTree, ctorArgs [][]Expr, span lexer.Span) []Expr {
	out := make([]Expr, 0, len(parents))
	for i, p := range parents {
		var base Expr
		switch t := p.(type) {
		case *AppliedTypeTree:
			base = typeTreeToExpr(t)
		default:
			base = typeTreeToExpr(p)
		}
		if i < len(ctorArgs) && ctorArgs[i] != nil {
			base = NewApply(base, ctorArgs[i], span)
		}
		out = append(out, base)
	}
	return out
}

// typeTreeToExpr converts a type path into its expression-level spelling,
// used only for Template.Parents which are stored as Expr (constructor
// call targets), never as TypeTree.
func typeTreeToExpr(t TypeTree) Expr {
	switch n := t.(type) {
	case *Ident:
		return n
	case *SelectFromTypeTree:
		return NewSelect(typeTreeToExpr(n.Qualifier), n.Name, n.Span())
	case *AppliedTypeTree:
		return typeTreeToExpr(n.Fn)
	default:
		return NewIdent("<error>", t.Span())
	}
}

// MkTemplate assembles a Template, normalizing a nil self-declaration into
// "no self" rather than leaving callers to do it inline.
func MkTemplate(parents []Expr, self *ValDef, earlyDefs []*ValDef, body []Stmt, span lexer.Span) *Template {
	return NewTemplate(parents, self, earlyDefs, body, span)
}

// MkClassDef assembles a ClassDef, threading context-bound and view-bound
// synthesized implicit parameters (already folded into ctor.ParamLists by
// the parser) straight through.
func MkClassDef(mods Mods, name string, tparams []*TypeParam, ctor DefDef, tmpl *Template, span lexer.Span) *ClassDef {
	return NewClassDef(mods, name, tparams, ctor, tmpl, span)
}

// MkPackageObject desugars `package object name { body }` into a
// PackageDef wrapping a single ModuleDef, per real-language sugar.
func MkPackageObject(name string, tmpl *Template, span lexer.Span) *PackageDef {
	mod := NewModuleDef(0, name, tmpl, span)
	return NewPackageDef(NewIdent(name, span), []Stmt{mod}, span)
}

// MkSyntheticParam builds a compiler-introduced parameter, e.g. a
// placeholder-lambda parameter or a context-bound's trailing implicit
// parameter.
func MkSyntheticParam(name string, typ TypeTree, span lexer.Span) *ValDef {
	return NewValDef(ModParam|ModSynthetic, name, typ, NewEmptyTree(span), span)
}

// MkGenerator builds a for-comprehension generator enumerator.
func MkGenerator(pat Pattern, rhs Expr, span lexer.Span) *Enumerator {
	return NewGenerator(pat, rhs, span)
}

// PatternBinders collects the variable names a pattern binds, in
// left-to-right occurrence order with duplicates removed, for desugaring
// a destructuring `val pat = rhs` into its per-binder accessor ValDefs.
func PatternBinders(pat Pattern) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Bind:
			if v.Name != "_" && !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
			if v.Pat != nil {
				walk(v.Pat)
			}
		case *Alternative:
			for _, a := range v.Alts {
				walk(a)
			}
		case *Star:
			walk(v.Elem)
		case *Typed:
			if inner, ok := v.Expr.(Pattern); ok {
				walk(inner)
			}
		case *Apply:
			for _, a := range v.Args {
				if inner, ok := a.(Pattern); ok {
					walk(inner)
				}
			}
		}
	}
	walk(pat)
	return out
}
