package parser_test

import (
	"testing"

	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/parser"
)

func parseUnit(t *testing.T, src string) (*ast.PackageDef, *diag.Collector) {
	t.Helper()

	collector := &diag.Collector{}
	p := parser.New(src, collector, parser.WithFilename("test.vl"))
	unit := p.Parse()
	if unit == nil {
		t.Fatalf("Parse returned nil unit")
	}
	return unit, collector
}

func parseStats(t *testing.T, src string) ([]ast.Stmt, *diag.Collector) {
	t.Helper()

	collector := &diag.Collector{}
	p := parser.New(src, collector, parser.WithFilename("test.vl"))
	return p.ParseStatsOrPackages(), collector
}

// firstExpr parses src as a single script-mode statement and returns it as
// an expression.
func firstExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	stats, collector := parseStats(t, src)
	assertNoErrors(t, collector)
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stats))
	}
	e, ok := stats[0].(ast.Expr)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", stats[0])
	}
	return e
}

func assertNoErrors(t *testing.T, collector *diag.Collector) {
	t.Helper()

	for _, d := range collector.Diagnostics {
		if d.Severity == diag.SeverityError {
			t.Errorf("unexpected error at offset %d: %s", d.Span.Start, d.Message)
		}
	}
	if t.Failed() {
		t.FailNow()
	}
}

func errorMessages(collector *diag.Collector) []string {
	var out []string
	for _, d := range collector.Diagnostics {
		if d.Severity == diag.SeverityError {
			out = append(out, d.Message)
		}
	}
	return out
}

func TestParseEmptyUnit(t *testing.T) {
	unit, collector := parseUnit(t, "")
	assertNoErrors(t, collector)
	if len(unit.Stats) != 0 {
		t.Fatalf("expected no top-level statements, got %d", len(unit.Stats))
	}
}

func TestParsePackageClause(t *testing.T) {
	unit, collector := parseUnit(t, "package foo.bar\nclass C\n")
	assertNoErrors(t, collector)

	sel, ok := unit.Pid.(*ast.Select)
	if !ok {
		t.Fatalf("expected package id to be a Select, got %T", unit.Pid)
	}
	if sel.Name != "bar" {
		t.Fatalf("expected package id to end in %q, got %q", "bar", sel.Name)
	}
	qual, ok := sel.Qualifier.(*ast.Ident)
	if !ok || qual.Name != "foo" {
		t.Fatalf("expected package qualifier foo, got %#v", sel.Qualifier)
	}

	if len(unit.Stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(unit.Stats))
	}
	cls, ok := unit.Stats[0].(*ast.ClassDef)
	if !ok || cls.Name != "C" {
		t.Fatalf("expected class C, got %#v", unit.Stats[0])
	}
}

func TestParsePackageWithBraces(t *testing.T) {
	unit, collector := parseUnit(t, "package a {\n  class C\n}\npackage b {\n  class D\n}\n")
	assertNoErrors(t, collector)

	if len(unit.Stats) != 2 {
		t.Fatalf("expected 2 package clauses, got %d", len(unit.Stats))
	}
	for i, want := range []string{"C", "D"} {
		pkg, ok := unit.Stats[i].(*ast.PackageDef)
		if !ok {
			t.Fatalf("statement %d: expected PackageDef, got %T", i, unit.Stats[i])
		}
		cls, ok := pkg.Stats[0].(*ast.ClassDef)
		if !ok || cls.Name != want {
			t.Fatalf("package %d: expected class %s, got %#v", i, want, pkg.Stats[0])
		}
	}
}

func TestParsePackageObject(t *testing.T) {
	unit, collector := parseUnit(t, "package object utils { def id = 1 }\n")
	assertNoErrors(t, collector)

	if len(unit.Stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(unit.Stats))
	}
	mod, ok := unit.Stats[0].(*ast.ModuleDef)
	if !ok || mod.Name != "utils" {
		t.Fatalf("expected module utils inside the package def, got %#v", unit.Stats[0])
	}
}

func TestPrimitiveClassInRootPackageGetsSyntheticCtor(t *testing.T) {
	unit, collector := parseUnit(t, "package lang\nclass Int\n")
	assertNoErrors(t, collector)

	cls := unit.Stats[0].(*ast.ClassDef)
	if len(cls.Template.Body) != 1 {
		t.Fatalf("expected synthetic constructor in body, got %d statements", len(cls.Template.Body))
	}
	ctor, ok := cls.Template.Body[0].(*ast.DefDef)
	if !ok || ctor.Name != "this" {
		t.Fatalf("expected synthetic `this` constructor, got %#v", cls.Template.Body[0])
	}
}

func TestSameClassOutsideRootPackageGetsNoCtor(t *testing.T) {
	unit, collector := parseUnit(t, "package other\nclass Int\n")
	assertNoErrors(t, collector)

	cls := unit.Stats[0].(*ast.ClassDef)
	if len(cls.Template.Body) != 0 {
		t.Fatalf("expected empty body, got %d statements", len(cls.Template.Body))
	}
}

func TestParseStatsEntryPoint(t *testing.T) {
	collector := &diag.Collector{}
	p := parser.New("def f = 1\nval x = 2\n", collector)
	stats := p.ParseStats()
	assertNoErrors(t, collector)

	if len(stats) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stats))
	}
	if _, ok := stats[0].(*ast.DefDef); !ok {
		t.Fatalf("expected DefDef, got %T", stats[0])
	}
	if _, ok := stats[1].(*ast.ValDef); !ok {
		t.Fatalf("expected ValDef, got %T", stats[1])
	}
}

func TestTopLevelRejectsBareExpression(t *testing.T) {
	_, collector := parseUnit(t, "1 + 2\n")
	if !collector.HasErrors() {
		t.Fatalf("expected an error for a bare top-level expression")
	}
}
