package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/parser"
)

func TestMixedAssociativityReportsSingleError(t *testing.T) {
	_, collector := parseStats(t, "1 +: 2 + 3")

	msgs := errorMessages(collector)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "left- and right-associative operators with same precedence may not be mixed")
}

func TestPostfixTypeApplicationIsRejected(t *testing.T) {
	_, collector := parseStats(t, "x op[Int]")

	msgs := errorMessages(collector)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "postfix")
}

func TestPatternOperatorTypeApplicationIsRejected(t *testing.T) {
	_, collector := parseStats(t, "e match { case a op[Int] b => a }")

	require.Contains(t, errorMessages(collector)[0], "pattern operators")
}

func TestIncompleteInputAtEOF(t *testing.T) {
	_, collector := parseStats(t, "def f(")

	var incomplete bool
	for _, d := range collector.Diagnostics {
		if d.Code == diag.CodeIncompleteInput {
			incomplete = true
		}
	}
	require.True(t, incomplete, "expected an incomplete-input diagnostic")
}

func TestErrorOffsetsAreMonotonic(t *testing.T) {
	_, collector := parseStats(t, "val = 1\nval = 2\nval = 3")

	var last int = -1
	var count int
	for _, d := range collector.Diagnostics {
		if d.Severity != diag.SeverityError {
			continue
		}
		require.GreaterOrEqual(t, d.Span.Start, last, "error offsets must be non-decreasing")
		last = d.Span.Start
		count++
	}
	require.GreaterOrEqual(t, count, 2)
}

func TestCascadeErrorsAtSameOffsetAreDeduplicated(t *testing.T) {
	_, collector := parseStats(t, "def f(")

	seen := map[int]int{}
	for _, d := range collector.Diagnostics {
		if d.Severity == diag.SeverityError {
			seen[d.Span.Start]++
		}
	}
	for offset, n := range seen {
		require.Equal(t, 1, n, "offset %d reported %d times", offset, n)
	}
}

func TestMissingCloserIsAssumedAndParsingContinues(t *testing.T) {
	stats, collector := parseStats(t, "def f(x: Int = { 1 }\nval y = 2")

	require.True(t, collector.HasErrors())
	require.Len(t, stats, 2)
	require.Equal(t, "f", stats[0].(*ast.DefDef).Name)
	require.Equal(t, "y", stats[1].(*ast.ValDef).Name)
}

func TestMissingIfConditionParenYieldsErrorTree(t *testing.T) {
	stats, collector := parseStats(t, "if c) 1 else 2")

	require.True(t, collector.HasErrors())
	require.NotEmpty(t, stats)
	ifNode, ok := stats[0].(*ast.If)
	require.True(t, ok, "expected If, got %T", stats[0])
	require.True(t, ast.IsEmpty(ifNode.Cond), "condition should be a synthesized error tree, not `true`")
}

func TestWarningsAreNotCascadeSuppressed(t *testing.T) {
	collector := &diag.Collector{}
	p := parser.New("def f[A <% Ord, B <% Eq](x: A): A = x", collector, parser.WithFutureFlag())
	p.ParseStatsOrPackages()

	var deprecations int
	for _, d := range collector.Diagnostics {
		if d.Severity == diag.SeverityDeprecated {
			deprecations++
		}
	}
	require.Equal(t, 2, deprecations)
}

func TestRecoverySkipsToStatementSeparator(t *testing.T) {
	stats, collector := parseStats(t, "class C extends ] broken\nval ok = 1")

	require.True(t, collector.HasErrors())
	var found bool
	for _, s := range stats {
		if vd, ok := s.(*ast.ValDef); ok && vd.Name == "ok" {
			found = true
		}
	}
	require.True(t, found, "parser should recover and parse the following statement")
}
