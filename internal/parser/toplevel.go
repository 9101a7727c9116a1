package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
	"github.com/veltra-lang/veltra/internal/names"
	"go.uber.org/zap"
)

// Parse is the primary entry point: parses a full compilation unit and
// returns its PackageDef root. The scanner sits at EOF when this returns.
func (p *Parser) Parse() *ast.PackageDef {
	p.tracef("parse: begin", zap.String("filename", p.filename))
	start := p.offset()
	p.skipStatSeps()
	stats := p.parseTopStatSeq(lexer.EOF)
	p.accept(lexer.EOF)
	p.checkNoEscapedPlaceholders(p.span(start))
	p.pullLexerErrors()

	if len(stats) == 1 {
		if pd, ok := stats[0].(*ast.PackageDef); ok {
			return pd
		}
	}
	return ast.NewPackageDef(ast.NewEmptyTree(p.span(start)), stats, p.span(start))
}

// ParseStats parses a bare template-statement sequence — the grammar a
// class/trait/object body uses — without any enclosing braces, for
// callers that already know they are looking at member definitions (e.g.
// a REPL fed one class body at a time). Ensures the scanner reaches EOF.
func (p *Parser) ParseStats() []ast.Stmt {
	start := p.offset()
	p.skipStatSeps()
	var stats []ast.Stmt
	for p.kind() != lexer.EOF {
		stats = append(stats, flattenStmt(p.parseTemplateStat(0))...)
		p.ensureStatSep(lexer.EOF)
		p.skipStatSeps()
	}
	p.accept(lexer.EOF)
	p.checkNoEscapedPlaceholders(p.span(start))
	p.pullLexerErrors()
	return stats
}

// ParseStatsOrPackages parses a sequence that may freely mix top-level
// package/import/template statements with script-style member definitions
// and bare expressions. Ensures the scanner reaches EOF.
func (p *Parser) ParseStatsOrPackages() []ast.Stmt {
	start := p.offset()
	p.skipStatSeps()
	var stats []ast.Stmt
	for p.kind() != lexer.EOF {
		stats = append(stats, flattenStmt(p.parseStatOrPackage())...)
		p.ensureStatSep(lexer.EOF)
		p.skipStatSeps()
	}
	p.accept(lexer.EOF)
	p.checkNoEscapedPlaceholders(p.span(start))
	p.pullLexerErrors()
	return stats
}

// parseTopStatSeq parses top-level statements until closeKind or EOF,
// skipping over the statement separators between them.
func (p *Parser) parseTopStatSeq(closeKind lexer.TokenKind) []ast.Stmt {
	var stats []ast.Stmt
	for p.kind() != closeKind && p.kind() != lexer.EOF {
		stats = append(stats, flattenStmt(p.parseTopStat())...)
		p.ensureStatSep(closeKind)
		p.skipStatSeps()
	}
	return stats
}

// ensureStatSep checks that the statement just parsed is followed by a
// statement separator (or the sequence's terminator); anything else is
// reported once and skipped, so one broken statement does not abandon the
// rest of the sequence.
func (p *Parser) ensureStatSep(closeKind lexer.TokenKind) {
	if p.tok().IsStatSep() || p.kind() == closeKind || p.kind() == lexer.EOF {
		return
	}
	p.reportExpected(lexer.SEMI)
	for p.kind() != lexer.EOF && p.kind() != closeKind && !p.tok().IsStatSep() {
		p.next()
	}
}

// parseTopStat parses one top-level statement: a package clause, an
// import, or an annotated/modifier-prefixed class/trait/object definition.
func (p *Parser) parseTopStat() ast.Stmt {
	switch p.kind() {
	case lexer.PACKAGE:
		return p.parsePackageClause()
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.RBRACE, lexer.EOF:
		return ast.NewEmptyTree(p.spanAt(p.offset()))
	default:
		start := p.offset()
		p.parseAnnotations()
		mods := p.parseModifiers()
		switch p.kind() {
		case lexer.CLASS, lexer.TRAIT, lexer.OBJECT, lexer.CASE:
			return p.parseTmplDef(mods, start)
		default:
			return p.errorDeclStmt("expected class, trait, or object definition")
		}
	}
}

// parseStatOrPackage is parseTopStat generalized with the script-mode
// fallbacks ParseStatsOrPackages needs: local val/def/type definitions and
// bare expression statements, in addition to the top-level-only forms.
func (p *Parser) parseStatOrPackage() ast.Stmt {
	switch p.kind() {
	case lexer.PACKAGE:
		return p.parsePackageClause()
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.RBRACE, lexer.EOF:
		return ast.NewEmptyTree(p.spanAt(p.offset()))
	case lexer.VAL, lexer.VAR, lexer.DEF:
		return p.parsePatDefOrDefDefAsStmt()
	case lexer.TYPE:
		return p.parseTypeDefStmt()
	case lexer.CLASS, lexer.TRAIT, lexer.OBJECT, lexer.CASE,
		lexer.PRIVATE, lexer.PROTECTED, lexer.OVERRIDE, lexer.ABSTRACT,
		lexer.FINAL, lexer.SEALED, lexer.IMPLICIT, lexer.LAZY, lexer.AT:
		p.parseAnnotations()
		mods := p.parseModifiers()
		return p.parseDefOrDcl(mods)
	default:
		return exprAsStmt(p.parseExpr(InTemplate))
	}
}

// parsePackageClause parses `package QualId` (brace-body or file-body) or
// `package object ObjectDef`. The current/root-package
// tracking state is restored once the clause's body has been parsed, so a
// sibling package clause later in the same file starts from a clean slate.
func (p *Parser) parsePackageClause() ast.Stmt {
	start := p.offset()
	p.next() // package
	if p.kind() == lexer.OBJECT {
		p.next()
		name := p.expectIdentName()
		tmpl := p.parseTemplateOpt()
		return ast.MkPackageObject(name, tmpl, p.span(start))
	}

	qualId, dotted := p.parseQualId()

	savedPackage, savedRoot := p.currentPackage, p.inRootPackage
	p.currentPackage = joinPackageName(p.currentPackage, dotted)
	p.inRootPackage = p.currentPackage == names.RootPackageName
	defer func() { p.currentPackage, p.inRootPackage = savedPackage, savedRoot }()

	if p.kind() == lexer.LBRACE {
		p.next()
		p.newLineOpt()
		stats := p.parseTopStatSeq(lexer.RBRACE)
		p.accept(lexer.RBRACE)
		return ast.NewPackageDef(qualId, stats, p.span(start))
	}

	p.skipStatSeps()
	stats := p.parseTopStatSeq(lexer.EOF)
	return ast.NewPackageDef(qualId, stats, p.span(start))
}

// parseQualId parses a dotted identifier chain (`a.b.c`), returning both
// its Select/Ident tree form and its plain dotted spelling (the latter
// feeds currentPackage tracking, which only ever compares plain strings).
func (p *Parser) parseQualId() (ast.Expr, string) {
	start := p.offset()
	name := p.expectIdentName()
	var id ast.Expr = ast.NewIdent(name, p.span(start))
	dotted := name
	for p.kind() == lexer.DOT && p.peek().Kind == lexer.IDENT {
		p.next()
		seg := p.expectIdentName()
		id = ast.NewSelect(id, seg, p.span(start))
		dotted = dotted + "." + seg
	}
	return id, dotted
}

func joinPackageName(outer, inner string) string {
	if outer == "" {
		return inner
	}
	return outer + "." + inner
}
