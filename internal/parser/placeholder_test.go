package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veltra-lang/veltra/internal/ast"
)

func TestPlaceholderClosesOverArgument(t *testing.T) {
	e := firstExpr(t, "xs.map(_ + 1)")

	apply := e.(*ast.Apply)
	fn, ok := apply.Args[0].(*ast.Function)
	require.True(t, ok, "expected Function argument, got %T", apply.Args[0])
	require.Len(t, fn.Params, 1)

	body := fn.Body.(*ast.Apply)
	sel := body.Fn.(*ast.Select)
	require.Equal(t, "+", sel.Name)
	require.Equal(t, fn.Params[0].Name, sel.Qualifier.(*ast.Ident).Name)
}

func TestTwoPlaceholdersInSourceOrder(t *testing.T) {
	e := firstExpr(t, "xs.reduce(_ + _)")

	fn := e.(*ast.Apply).Args[0].(*ast.Function)
	require.Len(t, fn.Params, 2)

	body := fn.Body.(*ast.Apply)
	sel := body.Fn.(*ast.Select)
	require.Equal(t, fn.Params[0].Name, sel.Qualifier.(*ast.Ident).Name)
	require.Equal(t, fn.Params[1].Name, body.Args[0].(*ast.Ident).Name)
}

func TestBarePlaceholderArgumentWrapsAtOuterBoundary(t *testing.T) {
	e := firstExpr(t, "f(_)")

	fn, ok := e.(*ast.Function)
	require.True(t, ok, "expected Function, got %T", e)
	require.Len(t, fn.Params, 1)
	body := fn.Body.(*ast.Apply)
	require.Equal(t, "f", body.Fn.(*ast.Ident).Name)
	require.Equal(t, fn.Params[0].Name, body.Args[0].(*ast.Ident).Name)
}

func TestTypedPlaceholderPartialApplication(t *testing.T) {
	e := firstExpr(t, "f(_: Int)")

	fn := e.(*ast.Function)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "Int", fn.Params[0].Type.(*ast.Ident).Name)
}

func TestUnderscoreArrowLambdaDoesNotDoubleWrap(t *testing.T) {
	e := firstExpr(t, "_ => 1")

	fn, ok := e.(*ast.Function)
	require.True(t, ok, "expected Function, got %T", e)
	require.Len(t, fn.Params, 1)
	inner, isFn := fn.Body.(*ast.Function)
	require.False(t, isFn, "placeholder lambda wrapped twice: %#v", inner)
}

func TestUnboundPlaceholderIsReported(t *testing.T) {
	_, collector := parseStats(t, "val x = _")

	require.Contains(t, errorMessages(collector)[0], "unbound placeholder parameter")
}

func TestPlaceholderInsideInterpolationIsTypedAsAny(t *testing.T) {
	e := firstExpr(t, `s"v: ${_}"`)

	apply := e.(*ast.Apply)
	fn, ok := apply.Args[1].(*ast.Function)
	require.True(t, ok, "expected Function splice, got %T", apply.Args[1])
	require.Equal(t, "Any", fn.Params[0].Type.(*ast.Ident).Name)
}

func TestTypeUnderscoreBecomesExistential(t *testing.T) {
	vd := firstStat(t, "val c: Box[_] = mk").(*ast.ValDef)

	ex, ok := vd.Type.(*ast.ExistentialTypeTree)
	require.True(t, ok, "expected ExistentialTypeTree, got %T", vd.Type)
	applied := ex.Underlying.(*ast.AppliedTypeTree)
	require.Equal(t, "Box", applied.Fn.(*ast.Ident).Name)
	require.Len(t, ex.WhereClauses, 1)
}

func TestBoundedTypeUnderscore(t *testing.T) {
	vd := firstStat(t, "val c: Box[_ <: Top] = mk").(*ast.ValDef)

	ex := vd.Type.(*ast.ExistentialTypeTree)
	decl := ex.WhereClauses[0].(*ast.TypeDef)
	require.NotNil(t, decl.Bounds)
	require.Equal(t, "Top", decl.Bounds.Hi.(*ast.Ident).Name)
}

func TestPlaceholderBoundAtBlockStatement(t *testing.T) {
	e := firstExpr(t, "{ xs.foreach(println(_)) }")

	block := e.(*ast.Block)
	outer := block.Result.(*ast.Apply)
	fn, ok := outer.Args[0].(*ast.Function)
	require.True(t, ok, "expected Function, got %T", outer.Args[0])
	require.Len(t, fn.Params, 1)
}
