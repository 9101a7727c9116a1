package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
)

// parseImport parses `import` followed by a comma-separated list of import
// expressions, flattening multiple clauses into a
// stmtGroup since a single Stmt-returning call site can only carry one
// value per iteration.
func (p *Parser) parseImport() ast.Stmt {
	start := p.offset()
	p.accept(lexer.IMPORT)
	imports := []ast.Stmt{p.importExpr()}
	for p.kind() == lexer.COMMA {
		p.next()
		imports = append(imports, p.importExpr())
	}
	if len(imports) == 1 {
		return imports[0]
	}
	return &stmtGroup{span: p.span(start), stmts: imports}
}

// importExpr walks a dotted prefix (`a.b.c`) until it hits one of the
// three terminators the grammar allows: a wildcard (`a.b._`), a selector
// group (`a.b.{c, d => e}`), or running out of dots, in which case the
// last-parsed segment is itself the imported name and everything before
// it is the qualifier.
func (p *Parser) importExpr() *ast.Import {
	start := p.offset()
	name := p.expectIdentName()
	var qualifier ast.Expr = ast.NewIdent(name, p.span(start))
	for p.kind() == lexer.DOT {
		switch p.peek().Kind {
		case lexer.USCORE:
			p.next() // .
			p.next() // _
			return ast.NewImport(qualifier, []*ast.ImportSelector{ast.NewImportSelector("_", "", p.span(start))}, p.span(start))
		case lexer.LBRACE:
			p.next() // .
			p.next() // {
			sels := p.parseImportSelectors()
			p.accept(lexer.RBRACE)
			return ast.NewImport(qualifier, sels, p.span(start))
		default:
			p.next() // .
			seg := p.expectIdentName()
			if p.kind() != lexer.DOT {
				return ast.NewImport(qualifier, []*ast.ImportSelector{ast.NewImportSelector(seg, "", p.span(start))}, p.span(start))
			}
			qualifier = ast.NewSelect(qualifier, seg, p.span(start))
		}
	}
	return ast.NewImport(ast.NewEmptyTree(p.span(start)), []*ast.ImportSelector{ast.NewImportSelector(name, "", p.span(start))}, p.span(start))
}

func (p *Parser) parseImportSelectors() []*ast.ImportSelector {
	sels := parseCommaList(p, lexer.RBRACE, func() *ast.ImportSelector { return p.parseImportSelector() })
	for i, sel := range sels {
		if sel.Name == "_" && i != len(sels)-1 {
			p.syntaxError(sel.Span().Start, "wildcard import must be in last position")
		}
	}
	return sels
}

func (p *Parser) parseImportSelector() *ast.ImportSelector {
	start := p.offset()
	if p.kind() == lexer.USCORE {
		p.next()
		return ast.NewImportSelector("_", "", p.span(start))
	}
	name := p.expectIdentName()
	rename := ""
	if p.kind() == lexer.ARROW {
		p.next()
		if p.kind() == lexer.USCORE {
			rename = "_"
			p.next()
		} else {
			rename = p.expectIdentName()
		}
	}
	return ast.NewImportSelector(name, rename, p.span(start))
}
