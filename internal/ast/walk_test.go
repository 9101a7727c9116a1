package ast

import "testing"

func TestWalkVisitsInSourceOrder(t *testing.T) {
	// f(x).g applied to a literal: Apply(Select(Apply(Ident f, [Ident x]), g), [Literal 1])
	inner := NewApply(NewIdent("f", span()), []Expr{NewIdent("x", span())}, span())
	sel := NewSelect(inner, "g", span())
	root := NewApply(sel, []Expr{NewLiteral(LitInt, "1", span())}, span())

	var order []string
	Walk(root, func(n Node) bool {
		switch v := n.(type) {
		case *Ident:
			order = append(order, v.Name)
		case *Select:
			order = append(order, "."+v.Name)
		case *Literal:
			order = append(order, v.Value)
		}
		return true
	})

	want := []string{".g", "f", "x", "1"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestWalkPruneSubtree(t *testing.T) {
	block := NewBlock(
		[]Stmt{NewValDef(0, "x", NewEmptyTree(span()), NewLiteral(LitInt, "1", span()), span())},
		NewIdent("x", span()),
		span(),
	)

	var idents int
	Walk(block, func(n Node) bool {
		if _, ok := n.(*ValDef); ok {
			return false // do not descend into the definition
		}
		if _, ok := n.(*Ident); ok {
			idents++
		}
		return true
	})

	if idents != 1 {
		t.Fatalf("expected only the result ident, got %d", idents)
	}
}

func TestWalkCoversDefinitions(t *testing.T) {
	def := NewDefDef(0, "f", nil,
		[]ParamClause{{Params: []*ValDef{NewValDef(ModParam, "x", NewIdent("Int", span()), NewEmptyTree(span()), span())}}},
		NewIdent("Int", span()),
		NewIdent("x", span()),
		span(),
	)
	tmpl := NewTemplate([]Expr{NewIdent("Base", span())}, nil, nil, []Stmt{def}, span())
	cls := NewClassDef(0, "C", nil, *NewDefDef(0, "this", nil, nil, NewEmptyTree(span()), NewEmptyTree(span()), span()), tmpl, span())

	var names []string
	Walk(cls, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})

	// Base parent, Int param type, Int return type, x body.
	if len(names) != 4 {
		t.Fatalf("expected 4 idents, got %v", names)
	}
}
