package ast

// Walk traverses the AST starting from node, calling fn for each node in
// source order. If fn returns false, Walk does not descend into that
// node's children.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *PackageDef:
		if n.Pid != nil {
			Walk(n.Pid, fn)
		}
		for _, s := range n.Stats {
			Walk(s, fn)
		}

	case *Select:
		Walk(n.Qualifier, fn)
	case *Apply:
		Walk(n.Fn, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *NamedArg:
		Walk(n.Value, fn)
	case *TypeApply:
		Walk(n.Fn, fn)
		for _, t := range n.TypeArgs {
			Walk(t, fn)
		}
	case *Typed:
		Walk(n.Expr, fn)
		Walk(n.Type, fn)
	case *Annotated:
		Walk(n.Expr, fn)
		Walk(n.Annotation, fn)
	case *Function:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		Walk(n.Body, fn)
	case *Block:
		for _, s := range n.Stats {
			Walk(s, fn)
		}
		Walk(n.Result, fn)
	case *If:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *CaseClause:
		Walk(n.Pat, fn)
		Walk(n.Guard, fn)
		Walk(n.Body, fn)
	case *Match:
		Walk(n.Scrutinee, fn)
		for _, c := range n.Cases {
			Walk(c, fn)
		}
	case *Try:
		Walk(n.Body, fn)
		for _, c := range n.Catches {
			Walk(c, fn)
		}
		Walk(n.Finally, fn)
	case *Throw:
		Walk(n.Expr, fn)
	case *Return:
		Walk(n.Expr, fn)
	case *New:
		Walk(n.Template, fn)
	case *Assign:
		Walk(n.Lhs, fn)
		Walk(n.Rhs, fn)
	case *Parens:
		for _, e := range n.Exprs {
			Walk(e, fn)
		}
	case *Star:
		Walk(n.Elem, fn)
	case *Bind:
		if n.Pat != nil {
			Walk(n.Pat, fn)
		}
	case *Alternative:
		for _, a := range n.Alts {
			Walk(a, fn)
		}

	case *ValDef:
		Walk(n.Type, fn)
		Walk(n.Rhs, fn)
	case *DefDef:
		for _, tp := range n.TypeParams {
			Walk(tp, fn)
		}
		for _, cl := range n.ParamLists {
			for _, p := range cl.Params {
				Walk(p, fn)
			}
		}
		Walk(n.ReturnType, fn)
		Walk(n.Rhs, fn)
	case *TypeDef:
		for _, tp := range n.TypeParams {
			Walk(tp, fn)
		}
		if n.Bounds != nil {
			Walk(n.Bounds, fn)
		}
		if n.Rhs != nil {
			Walk(n.Rhs, fn)
		}
	case *TypeParam:
		if n.Bounds != nil {
			Walk(n.Bounds, fn)
		}
		for _, p := range n.Params {
			Walk(p, fn)
		}
	case *Template:
		for _, p := range n.Parents {
			Walk(p, fn)
		}
		if n.Self != nil {
			Walk(n.Self, fn)
		}
		for _, e := range n.EarlyDefs {
			Walk(e, fn)
		}
		for _, s := range n.Body {
			Walk(s, fn)
		}
	case *ClassDef:
		for _, tp := range n.TypeParams {
			Walk(tp, fn)
		}
		for _, cl := range n.Ctor.ParamLists {
			for _, p := range cl.Params {
				Walk(p, fn)
			}
		}
		Walk(n.Template, fn)
	case *ModuleDef:
		Walk(n.Template, fn)
	case *Import:
		Walk(n.Expr, fn)
		for _, sel := range n.Selectors {
			Walk(sel, fn)
		}

	case *TypeBoundsTree:
		Walk(n.Lo, fn)
		Walk(n.Hi, fn)
	case *CompoundTypeTree:
		for _, p := range n.Parents {
			Walk(p, fn)
		}
		for _, s := range n.Refinement {
			Walk(s, fn)
		}
	case *AppliedTypeTree:
		Walk(n.Fn, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *SingletonTypeTree:
		Walk(n.Ref, fn)
	case *SelectFromTypeTree:
		Walk(n.Qualifier, fn)
	case *ExistentialTypeTree:
		Walk(n.Underlying, fn)
		for _, d := range n.WhereClauses {
			Walk(d, fn)
		}
	case *FunctionTypeTree:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		Walk(n.Result, fn)
	case *TupleTypeTree:
		for _, e := range n.Elems {
			Walk(e, fn)
		}
	case *AnnotatedTypeTree:
		Walk(n.Underlying, fn)
		Walk(n.Annotation, fn)

	case *Enumerator:
		if n.Pat != nil {
			Walk(n.Pat, fn)
		}
		Walk(n.Rhs, fn)

	case *Ident, *This, *Super, *Literal, *EmptyTree, *ImportSelector:
		// leaves

	default:
		// Unhandled node kinds contribute no children; callers relying on
		// exhaustive traversal should extend this switch when adding nodes.
	}
}
