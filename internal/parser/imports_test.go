package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veltra-lang/veltra/internal/ast"
)

func TestSimpleImport(t *testing.T) {
	imp := firstStat(t, "import a.b.c").(*ast.Import)

	sel := imp.Expr.(*ast.Select)
	require.Equal(t, "b", sel.Name)
	require.Equal(t, "a", sel.Qualifier.(*ast.Ident).Name)
	require.Len(t, imp.Selectors, 1)
	require.Equal(t, "c", imp.Selectors[0].Name)
}

func TestWildcardImport(t *testing.T) {
	imp := firstStat(t, "import a.b._").(*ast.Import)

	require.Len(t, imp.Selectors, 1)
	require.Equal(t, "_", imp.Selectors[0].Name)
}

func TestSelectorImportWithRenameAndHide(t *testing.T) {
	imp := firstStat(t, "import a.{b => c, d => _, _}").(*ast.Import)

	require.Len(t, imp.Selectors, 3)
	require.Equal(t, "b", imp.Selectors[0].Name)
	require.Equal(t, "c", imp.Selectors[0].Rename)
	require.Equal(t, "d", imp.Selectors[1].Name)
	require.Equal(t, "_", imp.Selectors[1].Rename)
	require.Equal(t, "_", imp.Selectors[2].Name)
}

func TestWildcardSelectorMustBeLast(t *testing.T) {
	_, collector := parseStats(t, "import a.{_, b}")

	require.Contains(t, errorMessages(collector)[0], "wildcard import must be in last position")
}

func TestCommaSeparatedImportClauses(t *testing.T) {
	stats, collector := parseStats(t, "import a.b, c.d")
	assertNoErrors(t, collector)

	require.Len(t, stats, 2)
	for _, s := range stats {
		_, ok := s.(*ast.Import)
		require.True(t, ok, "expected Import, got %T", s)
	}
}

func TestImportInBlock(t *testing.T) {
	e := firstExpr(t, "{ import a.b; b }")

	block := e.(*ast.Block)
	require.Len(t, block.Stats, 1)
	_, ok := block.Stats[0].(*ast.Import)
	require.True(t, ok)
}
