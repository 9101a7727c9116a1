package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/parser"
)

func firstStat(t *testing.T, src string) ast.Stmt {
	t.Helper()

	stats, collector := parseStats(t, src)
	assertNoErrors(t, collector)
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stats))
	}
	return stats[0]
}

func TestSimpleValDef(t *testing.T) {
	vd := firstStat(t, "val x = 1").(*ast.ValDef)

	require.Equal(t, "x", vd.Name)
	require.False(t, vd.Mods.Has(ast.ModVar))
	require.Equal(t, "1", vd.Rhs.(*ast.Literal).Value)
}

func TestVarDefWithTypeAscription(t *testing.T) {
	vd := firstStat(t, "var count: Int = 0").(*ast.ValDef)

	require.True(t, vd.Mods.Has(ast.ModVar))
	require.Equal(t, "Int", vd.Type.(*ast.Ident).Name)
}

func TestVarDefaultInitialisation(t *testing.T) {
	vd := firstStat(t, "var buf: Str = _").(*ast.ValDef)

	require.True(t, vd.Mods.Has(ast.ModVar))
	require.True(t, ast.IsEmpty(vd.Rhs))
}

func TestUpperCaseValDefStaysPlain(t *testing.T) {
	vd := firstStat(t, "val MaxValue = 99").(*ast.ValDef)

	require.Equal(t, "MaxValue", vd.Name)
}

func TestMultiIdentValDef(t *testing.T) {
	stats, collector := parseStats(t, "val x, y = 1")
	assertNoErrors(t, collector)

	require.Len(t, stats, 2)
	require.Equal(t, "x", stats[0].(*ast.ValDef).Name)
	require.Equal(t, "y", stats[1].(*ast.ValDef).Name)
}

func TestDestructuringValDefDesugarsToMatchPlusAccessors(t *testing.T) {
	stats, collector := parseStats(t, "val (x, y) = e")
	assertNoErrors(t, collector)

	require.Len(t, stats, 3)

	synth := stats[0].(*ast.ValDef)
	require.True(t, synth.Mods.Has(ast.ModSynthetic))
	match, ok := synth.Rhs.(*ast.Match)
	require.True(t, ok, "expected Match rhs, got %T", synth.Rhs)
	require.Len(t, match.Cases, 1)

	xAcc := stats[1].(*ast.ValDef)
	require.Equal(t, "x", xAcc.Name)
	require.Equal(t, "_1", xAcc.Rhs.(*ast.Select).Name)

	yAcc := stats[2].(*ast.ValDef)
	require.Equal(t, "y", yAcc.Name)
	require.Equal(t, "_2", yAcc.Rhs.(*ast.Select).Name)
}

func TestBinderlessPatternDefDesugarsToBareMatch(t *testing.T) {
	stats, collector := parseStats(t, "val _ = e")
	assertNoErrors(t, collector)

	require.Len(t, stats, 1)
	_, ok := stats[0].(*ast.Match)
	require.True(t, ok, "expected bare Match statement, got %T", stats[0])
}

func TestLazyValWithPatternBindersIsRejected(t *testing.T) {
	_, collector := parseStats(t, "lazy val x, y = 1")
	require.Contains(t, errorMessages(collector)[0], "lazy values may not be combined with pattern binders")
}

func TestLazyAbstractValIsRejected(t *testing.T) {
	_, collector := parseStats(t, "lazy val x: Int")
	require.Contains(t, errorMessages(collector)[0], "lazy values may not be abstract")
}

func TestDefDefWithImplicitClause(t *testing.T) {
	def := firstStat(t, "def f(x: Int)(implicit ev: E): Int = x").(*ast.DefDef)

	require.Equal(t, "f", def.Name)
	require.Len(t, def.ParamLists, 2)
	require.False(t, def.ParamLists[0].Implicit)
	require.True(t, def.ParamLists[1].Implicit)
	require.True(t, def.ParamLists[1].Params[0].Mods.Has(ast.ModImplicit))
	require.Equal(t, "Int", def.ReturnType.(*ast.Ident).Name)
}

func TestAbstractDefHasEmptyBody(t *testing.T) {
	def := firstStat(t, "def f(x: Int): Int").(*ast.DefDef)
	require.True(t, ast.IsEmpty(def.Rhs))
}

func TestProcedureSyntaxSynthesisesUnitReturnType(t *testing.T) {
	def := firstStat(t, "def run() { step() }").(*ast.DefDef)

	require.Equal(t, "Unit", def.ReturnType.(*ast.Ident).Name)
	require.False(t, ast.IsEmpty(def.Rhs))
}

func TestProcedureSyntaxWarnsUnderFutureFlag(t *testing.T) {
	collector := &diag.Collector{}
	p := parser.New("def run() { step() }", collector, parser.WithFutureFlag())
	p.ParseStatsOrPackages()

	var deprecations int
	for _, d := range collector.Diagnostics {
		if d.Severity == diag.SeverityDeprecated {
			deprecations++
		}
	}
	require.Equal(t, 1, deprecations)
}

func TestMacroDef(t *testing.T) {
	def := firstStat(t, "def f: Int = macro impl").(*ast.DefDef)

	require.True(t, def.Mods.Has(ast.ModMacro))
	require.Equal(t, "impl", def.Rhs.(*ast.Ident).Name)
}

func TestTypeAlias(t *testing.T) {
	td := firstStat(t, "type Pairs = List[Pair]").(*ast.TypeDef)

	require.Equal(t, "Pairs", td.Name)
	_, ok := td.Rhs.(*ast.AppliedTypeTree)
	require.True(t, ok, "expected AppliedTypeTree, got %T", td.Rhs)
}

func TestAbstractTypeWithBounds(t *testing.T) {
	td := firstStat(t, "type T >: Lo <: Hi").(*ast.TypeDef)

	require.Nil(t, td.Rhs)
	require.Equal(t, "Lo", td.Bounds.Lo.(*ast.Ident).Name)
	require.Equal(t, "Hi", td.Bounds.Hi.(*ast.Ident).Name)
}

func TestClassWithContextBoundSynthesisesEvidenceClause(t *testing.T) {
	cls := firstStat(t, "class C[T: Ord](x: T)").(*ast.ClassDef)

	require.Len(t, cls.Ctor.ParamLists, 2)
	evClause := cls.Ctor.ParamLists[1]
	require.True(t, evClause.Implicit)
	require.Len(t, evClause.Params, 1)
	applied, ok := evClause.Params[0].Type.(*ast.AppliedTypeTree)
	require.True(t, ok, "expected Ord[T] evidence type, got %T", evClause.Params[0].Type)
	require.Equal(t, "Ord", applied.Fn.(*ast.Ident).Name)
	require.Equal(t, "T", applied.Args[0].(*ast.Ident).Name)
}

func TestViewBoundSynthesisesFunctionEvidence(t *testing.T) {
	def := firstStat(t, "def f[T <% Ord](x: T): T = x").(*ast.DefDef)

	require.Len(t, def.ParamLists, 2)
	ev := def.ParamLists[1].Params[0]
	_, ok := ev.Type.(*ast.FunctionTypeTree)
	require.True(t, ok, "expected T => Ord evidence, got %T", ev.Type)
}

func TestAuxiliaryConstructorPicksUpClassContextBounds(t *testing.T) {
	cls := firstStat(t, "class C[T: Ord](x: T) { def this() = this(zero) }").(*ast.ClassDef)

	ctor := cls.Template.Body[0].(*ast.DefDef)
	require.Equal(t, "this", ctor.Name)
	last := ctor.ParamLists[len(ctor.ParamLists)-1]
	require.True(t, last.Implicit)
	require.Len(t, last.Params, 1)
}

func TestCaseClassRequiresParameterList(t *testing.T) {
	_, collector := parseStats(t, "case class C")
	require.Contains(t, errorMessages(collector)[0], "case classes must have a non-implicit parameter list")
}

func TestCaseClassMods(t *testing.T) {
	cls := firstStat(t, "case class P(x: Int, y: Int)").(*ast.ClassDef)

	require.True(t, cls.Mods.Has(ast.ModCase))
	require.Len(t, cls.Ctor.ParamLists, 1)
	require.Len(t, cls.Ctor.ParamLists[0].Params, 2)
}

func TestTraitWithContextBoundIsRejected(t *testing.T) {
	_, collector := parseStats(t, "trait T[A: Ord]")
	require.Contains(t, errorMessages(collector)[0], "traits cannot have context bounds")
}

func TestClassExtendsWithParents(t *testing.T) {
	cls := firstStat(t, "class C extends A with B { def f = 1 }").(*ast.ClassDef)

	tmpl := cls.Template
	require.Len(t, tmpl.Parents, 2)
	require.Equal(t, "A", tmpl.Parents[0].(*ast.Ident).Name)
	require.Equal(t, "B", tmpl.Parents[1].(*ast.Ident).Name)
	require.Len(t, tmpl.Body, 1)
}

func TestClassExtendsEarlyDefinitions(t *testing.T) {
	cls := firstStat(t, "class C extends { val x = 1 } with A").(*ast.ClassDef)

	tmpl := cls.Template
	require.Len(t, tmpl.EarlyDefs, 1)
	require.True(t, tmpl.EarlyDefs[0].Mods.Has(ast.ModPreSuper))
	require.Len(t, tmpl.Parents, 1)
}

func TestEarlyDefinitionMustBeConcrete(t *testing.T) {
	_, collector := parseStats(t, "class C extends { val x: Int } with A")
	require.NotEmpty(t, errorMessages(collector))
}

func TestSelfTypeDeclaration(t *testing.T) {
	cls := firstStat(t, "class C { self: Ctx => def f = 1 }").(*ast.ClassDef)

	require.NotNil(t, cls.Template.Self)
	require.Equal(t, "self", cls.Template.Self.Name)
	require.Equal(t, "Ctx", cls.Template.Self.Type.(*ast.Ident).Name)
	require.Len(t, cls.Template.Body, 1)
}

func TestObjectDef(t *testing.T) {
	mod := firstStat(t, "object Main { def run = 1 }").(*ast.ModuleDef)

	require.Equal(t, "Main", mod.Name)
	require.Len(t, mod.Template.Body, 1)
}

func TestCaseObjectDef(t *testing.T) {
	mod := firstStat(t, "case object Empty").(*ast.ModuleDef)
	require.True(t, mod.Mods.Has(ast.ModCase))
}

func TestTemplateBodyAllowsExpressionStatements(t *testing.T) {
	mod := firstStat(t, "object Main { greet()\nval x = 1 }").(*ast.ModuleDef)

	require.Len(t, mod.Template.Body, 2)
	_, ok := mod.Template.Body[0].(*ast.Apply)
	require.True(t, ok, "expected expression statement, got %T", mod.Template.Body[0])
}

func TestModifierParsing(t *testing.T) {
	cls := firstStat(t, "final sealed abstract class C").(*ast.ClassDef)

	require.True(t, cls.Mods.Has(ast.ModFinal))
	require.True(t, cls.Mods.Has(ast.ModSealed))
	require.True(t, cls.Mods.Has(ast.ModAbstract))
}

func TestPrivateAccessQualifier(t *testing.T) {
	def := firstStat(t, "private[this] val x = 1").(*ast.ValDef)
	require.True(t, def.Mods.Has(ast.ModPrivate))
}

func TestAnnotatedDefinitionParses(t *testing.T) {
	cls := firstStat(t, "@deprecated class C").(*ast.ClassDef)
	require.Equal(t, "C", cls.Name)
}

func TestValAndVarParamsBecomeParamAccessors(t *testing.T) {
	cls := firstStat(t, "class C(val x: Int, var y: Int)").(*ast.ClassDef)

	params := cls.Ctor.ParamLists[0].Params
	require.True(t, params[0].Mods.Has(ast.ModParamAccessor))
	require.True(t, params[1].Mods.Has(ast.ModParamAccessor))
	require.True(t, params[1].Mods.Has(ast.ModVar))
}

func TestDefaultParameterValue(t *testing.T) {
	def := firstStat(t, "def f(x: Int = 3): Int = x").(*ast.DefDef)

	param := def.ParamLists[0].Params[0]
	require.Equal(t, "3", param.Rhs.(*ast.Literal).Value)
}

func TestTypeParamVarianceAndBounds(t *testing.T) {
	cls := firstStat(t, "class C[+A <: Hi, -B]").(*ast.ClassDef)

	require.Len(t, cls.TypeParams, 2)
	require.Equal(t, 1, cls.TypeParams[0].Variance)
	require.Equal(t, "Hi", cls.TypeParams[0].Bounds.Hi.(*ast.Ident).Name)
	require.Equal(t, -1, cls.TypeParams[1].Variance)
}

func TestHigherKindedTypeParam(t *testing.T) {
	cls := firstStat(t, "class Functor[F[_]]").(*ast.ClassDef)

	require.Len(t, cls.TypeParams, 1)
	require.Equal(t, "F", cls.TypeParams[0].Name)
	require.Len(t, cls.TypeParams[0].Params, 1)
}

func TestVirtualClassesAllowsTraitSubtypeBound(t *testing.T) {
	collector := &diag.Collector{}
	p := parser.New("trait T <: Base", collector, parser.WithVirtualClasses())
	stats := p.ParseStatsOrPackages()
	assertNoErrors(t, collector)

	cls := stats[0].(*ast.ClassDef)
	require.True(t, cls.Mods.Has(ast.ModTrait))
	require.True(t, cls.Mods.Has(ast.ModAbstract))
	require.Len(t, cls.Template.Parents, 1)
}

func TestMethodInferAllowsUntypedParams(t *testing.T) {
	collector := &diag.Collector{}
	p := parser.New("def f(x) = x", collector, parser.WithMethodInfer())
	p.ParseStatsOrPackages()
	assertNoErrors(t, collector)
}

func TestMissingParamTypeIsRejectedByDefault(t *testing.T) {
	_, collector := parseStats(t, "def f(x) = x")
	require.Contains(t, errorMessages(collector)[0], "missing parameter type")
}
