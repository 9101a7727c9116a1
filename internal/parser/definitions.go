package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
	"github.com/veltra-lang/veltra/internal/names"
)

// stmtGroup lets a single grammar production (a comma-separated import
// clause, a destructuring pattern definition) expand into several
// statements while the surrounding block/template/top-level loop still
// only has one Stmt to append per iteration; flattenStmt unwraps it back
// into its constituent statements at the call site.
type stmtGroup struct {
	ast.StmtTag
	span  lexer.Span
	stmts []ast.Stmt
}

func (g *stmtGroup) Span() lexer.Span { return g.span }

func flattenStmt(s ast.Stmt) []ast.Stmt {
	if g, ok := s.(*stmtGroup); ok {
		return g.stmts
	}
	return []ast.Stmt{s}
}

// --- modifiers & annotations ---

func (p *Parser) parseAccessQualifier() {
	p.next() // [
	if p.kind() == lexer.THIS {
		p.next()
	} else {
		p.expectIdentName()
	}
	p.accept(lexer.RBRACKET)
}

// parseModifiers consumes the leading run of modifier keywords a
// definition may carry, building the Mods bitset as it goes.
func (p *Parser) parseModifiers() ast.Mods {
	var mods ast.Mods
	for {
		switch p.kind() {
		case lexer.PRIVATE:
			mods = mods.With(ast.ModPrivate)
			p.next()
			if p.kind() == lexer.LBRACKET {
				p.parseAccessQualifier()
			}
		case lexer.PROTECTED:
			mods = mods.With(ast.ModProtected)
			p.next()
			if p.kind() == lexer.LBRACKET {
				p.parseAccessQualifier()
			}
		case lexer.OVERRIDE:
			mods = mods.With(ast.ModOverride)
			p.next()
		case lexer.ABSTRACT:
			p.next()
			if p.kind() == lexer.OVERRIDE {
				p.next()
				mods = mods.With(ast.ModAbstractOverride)
			} else {
				mods = mods.With(ast.ModAbstract)
			}
		case lexer.FINAL:
			mods = mods.With(ast.ModFinal)
			p.next()
		case lexer.SEALED:
			mods = mods.With(ast.ModSealed)
			p.next()
		case lexer.IMPLICIT:
			mods = mods.With(ast.ModImplicit)
			p.next()
		case lexer.LAZY:
			mods = mods.With(ast.ModLazy)
			p.next()
		default:
			return mods
		}
	}
}

// parseAnnotations consumes any number of `@AnnotType(args)` prefixes.
// None of the definition node shapes carry an annotation list, so these
// are parsed for correct token consumption and otherwise discarded.
func (p *Parser) parseAnnotations() {
	for p.kind() == lexer.AT {
		p.next()
		p.parseSimpleType()
		for p.kind() == lexer.LPAREN {
			p.parseArgumentList()
		}
	}
}

// --- type parameter clauses ---

func (p *Parser) parseTypeParamClause() []*ast.TypeParam {
	p.accept(lexer.LBRACKET)
	params := parseCommaList(p, lexer.RBRACKET, func() *ast.TypeParam { return p.parseTypeParam() })
	p.accept(lexer.RBRACKET)
	return params
}

func (p *Parser) parseTypeParam() *ast.TypeParam {
	start := p.offset()
	variance := 0
	if p.kind() == lexer.IDENT && !p.tok().Backquoted && (p.tok().Name == "+" || p.tok().Name == "-") &&
		(p.peek().Kind == lexer.IDENT || p.peek().Kind == lexer.USCORE) {
		if p.tok().Name == "+" {
			variance = 1
		} else {
			variance = -1
		}
		p.next()
	}
	var name string
	if p.kind() == lexer.USCORE {
		name = "_"
		p.next()
	} else {
		name = p.expectIdentName()
	}
	tp := ast.NewTypeParam(name, p.span(start))
	tp.Variance = variance
	if p.kind() == lexer.LBRACKET {
		tp.Params = p.parseTypeParamClause()
	}
	tp.Bounds = p.parseOptTypeBounds(start)
	for p.kind() == lexer.VIEWBOUND {
		p.next()
		tp.ViewBounds = append(tp.ViewBounds, p.parseType())
	}
	for p.kind() == lexer.COLON {
		p.next()
		tp.ContextBounds = append(tp.ContextBounds, p.parseType())
	}
	return tp
}

// contextBoundTypes builds the evidence types (`Ord[T]`) a class's primary
// constructor's context bounds imply, stashed on Parser.classContextBounds
// so an auxiliary constructor (`def this(...)`) can pick up the same
// implicit evidence without restating the bounds.
func contextBoundTypes(tparams []*ast.TypeParam) []ast.TypeTree {
	var out []ast.TypeTree
	for _, tp := range tparams {
		for _, cb := range tp.ContextBounds {
			out = append(out, ast.NewAppliedTypeTree(cb, []ast.TypeTree{ast.NewIdent(tp.Name, tp.Span())}, tp.Span()))
		}
	}
	return out
}

// appendContextBoundParams synthesises the trailing implicit parameter
// clause a type parameter's view- and context-bounds desugar to, merging
// into an already-present trailing implicit clause when there is one.
func (p *Parser) appendContextBoundParams(tparams []*ast.TypeParam, clauses []ast.ParamClause, span lexer.Span) []ast.ParamClause {
	var synth []*ast.ValDef
	for _, tp := range tparams {
		for _, vb := range tp.ViewBounds {
			if p.opts.futureFlag {
				p.deprecationWarning(span.Start, "view bounds are deprecated; use a context bound or implicit parameter instead")
			}
			typ := ast.NewFunctionTypeTree(false, false, []ast.TypeTree{ast.NewIdent(tp.Name, span)}, vb, span)
			synth = append(synth, ast.MkSyntheticParam(p.fresh.TermName("evidence"), typ, span))
		}
		for _, cb := range tp.ContextBounds {
			typ := ast.NewAppliedTypeTree(cb, []ast.TypeTree{ast.NewIdent(tp.Name, span)}, span)
			synth = append(synth, ast.MkSyntheticParam(p.fresh.TermName("evidence"), typ, span))
		}
	}
	if len(synth) == 0 {
		return clauses
	}
	if n := len(clauses); n > 0 && clauses[n-1].Implicit {
		clauses[n-1].Params = append(clauses[n-1].Params, synth...)
		return clauses
	}
	return append(clauses, ast.ParamClause{Implicit: true, Params: synth})
}

// --- parameter clauses ---

func (p *Parser) parseParam(implicitClause bool) *ast.ValDef {
	start := p.offset()
	mods := ast.ModParam
	switch p.kind() {
	case lexer.VAL:
		p.next()
		mods = mods.With(ast.ModParamAccessor)
	case lexer.VAR:
		p.next()
		mods = mods.With(ast.ModParamAccessor).With(ast.ModVar)
	}
	if implicitClause {
		mods = mods.With(ast.ModImplicit)
	}
	name := p.expectIdentName()
	var typ ast.TypeTree = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.COLON {
		p.next()
		typ = p.parseFunctionArgType()
	} else if !p.opts.methodInfer {
		p.syntaxError(p.offset(), "missing parameter type")
	}
	var rhs ast.Expr = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.EQUALS {
		p.next()
		rhs = p.parseExpr(Local)
	}
	return ast.NewValDef(mods, name, typ, rhs, p.span(start))
}

// parseParamClauses parses zero or more parenthesised parameter clauses,
// with at most one trailing `implicit` clause.
func (p *Parser) parseParamClauses() []ast.ParamClause {
	var clauses []ast.ParamClause
	for p.kind() == lexer.LPAREN {
		p.next()
		implicit := false
		if p.kind() == lexer.IMPLICIT {
			implicit = true
			p.next()
		}
		params := parseCommaList(p, lexer.RPAREN, func() *ast.ValDef { return p.parseParam(implicit) })
		p.accept(lexer.RPAREN)
		clauses = append(clauses, ast.ParamClause{Implicit: implicit, Params: params})
		if implicit {
			break
		}
		p.newLineOptWhenFollowedBy(lexer.LPAREN)
		if p.kind() != lexer.LPAREN {
			break
		}
	}
	return clauses
}

// --- val/var pattern definitions ---

// parsePatDefOrDefDefAsStmt parses a block-statement-position val/var/def
// with no extra modifiers, e.g. the VAL/VAR/DEF cases of parseBlockStat.
func (p *Parser) parsePatDefOrDefDefAsStmt() ast.Stmt {
	start := p.offset()
	switch p.kind() {
	case lexer.VAL:
		p.next()
		return p.parsePatDefStmt(0, start)
	case lexer.VAR:
		p.next()
		return p.parsePatDefStmt(ast.ModVar, start)
	case lexer.DEF:
		return p.parseDefDef(0, start)
	default:
		return p.errorDeclStmt("illegal start of definition")
	}
}

// parsePatDefStmt parses the comma-separated pattern LHS, optional type
// ascription, and RHS of a `val`/`var` definition (the `val`/`var` keyword
// itself already consumed), then desugars: a single bare identifier LHS
// becomes a plain ValDef; anything else desugars through a synthetic
// pattern match plus per-binder accessor ValDefs.
func (p *Parser) parsePatDefStmt(mods ast.Mods, start int) ast.Stmt {
	pats := []ast.Pattern{p.pattern2(noSeq)}
	for p.kind() == lexer.COMMA {
		p.next()
		pats = append(pats, p.pattern2(noSeq))
	}
	var typ ast.TypeTree = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.COLON {
		p.next()
		typ = p.parseType()
	}
	if mods.Has(ast.ModLazy) && len(pats) > 1 {
		p.syntaxError(start, "lazy values may not be combined with pattern binders")
	}
	var rhs ast.Expr = ast.NewEmptyTree(p.span(start))
	hasRhs := false
	if p.kind() == lexer.EQUALS {
		p.next()
		hasRhs = true
		if p.kind() == lexer.USCORE && mods.Has(ast.ModVar) {
			p.next()
			rhs = ast.NewEmptyTree(p.span(start)) // `= _`: request default initialisation
		} else {
			rhs = p.parseExpr(Local)
		}
	}
	if !hasRhs && mods.Has(ast.ModLazy) {
		p.syntaxError(start, "lazy values may not be abstract")
	}
	stmts := p.desugarPatDef(mods, pats, typ, rhs, p.span(start))
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &stmtGroup{span: p.span(start), stmts: stmts}
}

// desugarPatDef handles the general `val pat = e` case: `val (x, y) = e`
// becomes one synthetic binding `e match { case (x, y) => (x, y) }` plus
// per-binder accessor vals `x = t._1`, `y = t._2`; a pattern with zero
// binders desugars to a bare `e match { case pat => () }` for its
// match-exhaustiveness side effect only.
func (p *Parser) desugarPatDef(mods ast.Mods, pats []ast.Pattern, typ ast.TypeTree, rhs ast.Expr, span lexer.Span) []ast.Stmt {
	var stmts []ast.Stmt
	for _, pat := range pats {
		switch v := pat.(type) {
		case *ast.Bind:
			if v.Pat == nil && v.Name != "_" {
				stmts = append(stmts, ast.NewValDef(mods, v.Name, typ, rhs, span))
				continue
			}
		case *ast.Ident:
			// A bare upper-case identifier on the LHS is still a plain
			// definition, not a stable-id match.
			stmts = append(stmts, ast.NewValDef(mods, v.Name, typ, rhs, span))
			continue
		}
		binders := ast.PatternBinders(pat)
		caseClause := ast.NewCaseClause(pat, ast.NewEmptyTree(span), tupleOfBinders(binders, span), span)
		match := ast.NewMatch(rhs, []*ast.CaseClause{caseClause}, span)
		if len(binders) == 0 {
			stmts = append(stmts, exprAsStmt(match))
			continue
		}
		tupleName := p.fresh.TermName("x")
		stmts = append(stmts, ast.NewValDef(mods.With(ast.ModSynthetic), tupleName, ast.NewEmptyTree(span), match, span))
		for i, name := range binders {
			acc := ast.NewSelect(ast.NewIdent(tupleName, span), tupleAccessor(i+1), span)
			stmts = append(stmts, ast.NewValDef(mods, name, ast.NewEmptyTree(span), acc, span))
		}
	}
	return stmts
}

func tupleOfBinders(names []string, span lexer.Span) ast.Expr {
	if len(names) == 0 {
		return ast.NewLiteral(ast.LitUnit, "", span)
	}
	elems := make([]ast.Expr, len(names))
	for i, n := range names {
		elems[i] = ast.NewIdent(n, span)
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return ast.NewParens(elems, span)
}

func tupleAccessor(i int) string {
	digits := "0123456789"
	if i < 10 {
		return "_" + string(digits[i])
	}
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return "_" + string(buf)
}

// --- def (method/auxiliary-constructor) definitions ---

func (p *Parser) parseDefDef(mods ast.Mods, start int) ast.Stmt {
	p.accept(lexer.DEF)
	if p.kind() == lexer.THIS {
		p.next()
		clauses := p.parseParamClauses()
		if len(clauses) == 0 || clauses[0].Implicit {
			p.syntaxError(start, "auxiliary constructor needs a non-implicit parameter list")
		}
		if len(p.classContextBounds) > 0 {
			synth := make([]*ast.ValDef, len(p.classContextBounds))
			for i, t := range p.classContextBounds {
				synth[i] = ast.MkSyntheticParam(p.fresh.TermName("evidence"), t, p.span(start))
			}
			if n := len(clauses); n > 0 && clauses[n-1].Implicit {
				clauses[n-1].Params = append(clauses[n-1].Params, synth...)
			} else {
				clauses = append(clauses, ast.ParamClause{Implicit: true, Params: synth})
			}
		}
		var rhs ast.Expr = ast.NewEmptyTree(p.span(start))
		switch p.kind() {
		case lexer.EQUALS:
			p.next()
			rhs = p.parseExpr(Local)
		case lexer.LBRACE:
			rhs = p.parseBlockExpr()
		default:
			p.syntaxErrorOrIncomplete("auxiliary constructor body expected")
		}
		return ast.NewDefDef(mods, "this", nil, clauses, ast.NewEmptyTree(p.span(start)), rhs, p.span(start))
	}

	name := p.expectIdentName()
	var tparams []*ast.TypeParam
	if p.kind() == lexer.LBRACKET {
		tparams = p.parseTypeParamClause()
	}
	clauses := p.parseParamClauses()
	clauses = p.appendContextBoundParams(tparams, clauses, p.span(start))

	var ret ast.TypeTree = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.COLON {
		p.next()
		saved := p.inFunReturnType
		p.inFunReturnType = true
		ret = p.parseType()
		p.inFunReturnType = saved
	}

	var rhs ast.Expr = ast.NewEmptyTree(p.span(start))
	switch p.kind() {
	case lexer.EQUALS:
		p.next()
		if p.kind() == lexer.MACRO {
			p.next()
			mods = mods.With(ast.ModMacro)
		}
		rhs = p.parseExpr(Local)
	case lexer.LBRACE:
		if p.opts.futureFlag {
			p.deprecationWarning(start, "procedure syntax is deprecated: instead, add `: Unit =`")
		}
		ret = ast.NewIdent("Unit", p.span(start))
		rhs = p.parseBlockExpr()
	default:
		if ast.IsEmpty(ret) {
			if p.opts.futureFlag {
				p.deprecationWarning(start, "procedure syntax is deprecated: instead, add `: Unit`")
			}
			ret = ast.NewIdent("Unit", p.span(start))
		}
	}
	return ast.NewDefDef(mods, name, tparams, clauses, ret, rhs, p.span(start))
}

// --- type definitions ---

func (p *Parser) parseTypeDefBody(mods ast.Mods) ast.Stmt {
	start := p.offset()
	p.accept(lexer.TYPE)
	p.newLineOptWhenFollowing(func(t lexer.Token) bool { return t.Kind == lexer.IDENT })
	name := p.expectIdentName()
	var tparams []*ast.TypeParam
	if p.kind() == lexer.LBRACKET {
		tparams = p.parseTypeParamClause()
	}
	switch p.kind() {
	case lexer.EQUALS:
		p.next()
		rhs := p.parseType()
		return ast.NewTypeDef(mods, name, tparams, nil, rhs, p.span(start))
	case lexer.SUPERTYPE, lexer.SUBTYPE:
		bounds := p.parseTypeBounds(start)
		return ast.NewTypeDef(mods, name, tparams, bounds, nil, p.span(start))
	default:
		bounds := ast.NewTypeBoundsTree(ast.NewEmptyTree(p.span(start)), ast.NewEmptyTree(p.span(start)), p.span(start))
		return ast.NewTypeDef(mods, name, tparams, bounds, nil, p.span(start))
	}
}

// --- class/trait/object definitions and their templates ---

func (p *Parser) parseDefOrDcl(mods ast.Mods) ast.Stmt {
	start := p.offset()
	switch p.kind() {
	case lexer.VAL:
		p.next()
		return p.parsePatDefStmt(mods, start)
	case lexer.VAR:
		p.next()
		return p.parsePatDefStmt(mods.With(ast.ModVar), start)
	case lexer.DEF:
		return p.parseDefDef(mods, start)
	case lexer.TYPE:
		return p.parseTypeDefBody(mods)
	case lexer.CLASS, lexer.TRAIT, lexer.OBJECT, lexer.CASE:
		return p.parseTmplDef(mods, start)
	default:
		return p.errorDeclStmt("illegal start of definition")
	}
}

func (p *Parser) parseTmplDef(mods ast.Mods, start int) ast.Stmt {
	if p.kind() == lexer.CASE {
		p.next()
		mods = mods.With(ast.ModCase)
	}
	switch p.kind() {
	case lexer.TRAIT:
		p.next()
		return p.parseClassDefRest(mods.With(ast.ModTrait), start)
	case lexer.CLASS:
		p.next()
		return p.parseClassDefRest(mods, start)
	case lexer.OBJECT:
		p.next()
		return p.parseObjectDefRest(mods, start)
	default:
		return p.errorDeclStmt("expected 'class', 'trait', or 'object'")
	}
}

func (p *Parser) parseClassDefRest(mods ast.Mods, start int) ast.Stmt {
	name := p.expectIdentName()
	var tparams []*ast.TypeParam
	if p.kind() == lexer.LBRACKET {
		tparams = p.parseTypeParamClause()
	}
	if mods.Has(ast.ModTrait) {
		for _, tp := range tparams {
			if len(tp.ViewBounds) > 0 || len(tp.ContextBounds) > 0 {
				p.syntaxError(start, "traits cannot have context bounds")
			}
		}
	}
	var ctorMods ast.Mods
	if !mods.Has(ast.ModTrait) && (p.kind() == lexer.PRIVATE || p.kind() == lexer.PROTECTED) {
		ctorMods = p.parseModifiers()
	}
	savedContextBounds := p.classContextBounds
	var clauses []ast.ParamClause
	if !mods.Has(ast.ModTrait) {
		clauses = p.parseParamClauses()
		if mods.Has(ast.ModCase) && (len(clauses) == 0 || clauses[0].Implicit) {
			p.syntaxError(start, "case classes must have a non-implicit parameter list")
			if len(clauses) == 0 {
				clauses = []ast.ParamClause{{}}
			}
		}
		clauses = p.appendContextBoundParams(tparams, clauses, p.span(start))
		p.classContextBounds = contextBoundTypes(tparams)
	}
	ctor := *ast.NewDefDef(ctorMods, "this", nil, clauses, ast.NewEmptyTree(p.span(start)), ast.NewEmptyTree(p.span(start)), p.span(start))
	// The template parse may recurse into a nested class definition of its
	// own, which saves/restores this same field; classContextBounds only
	// needs to be visible to *this* class's own `def this(...)` auxiliary
	// constructors, parsed while the body below is being walked.
	var tmpl *ast.Template
	if mods.Has(ast.ModTrait) && p.kind() == lexer.SUBTYPE && p.opts.virtualClasses {
		// `trait T <: Parents`: the bound marks the trait deferred.
		p.next()
		mods = mods.With(ast.ModAbstract)
		tmpl = p.parseTemplateAfterExtends(p.offset())
	} else {
		tmpl = p.parseTemplateOpt()
	}
	tmpl = p.maybeAddPrimitiveCtor(name, tmpl, p.span(start))
	p.classContextBounds = savedContextBounds
	return ast.MkClassDef(mods, name, tparams, ctor, tmpl, p.span(start))
}

func (p *Parser) parseObjectDefRest(mods ast.Mods, start int) ast.Stmt {
	name := p.expectIdentName()
	tmpl := p.parseTemplateOpt()
	return ast.NewModuleDef(mods, name, tmpl, p.span(start))
}

// maybeAddPrimitiveCtor prepends a synthetic unit-bodied constructor to a
// class template when the unit is inside the root language package and
// the class shares a name with one of the nine primitive value classes or
// the top value type.
func (p *Parser) maybeAddPrimitiveCtor(name string, tmpl *ast.Template, span lexer.Span) *ast.Template {
	if !p.inRootPackage || !names.PrimitiveValueClassNames[name] {
		return tmpl
	}
	ctor := ast.NewDefDef(0, "this", nil, nil, ast.NewIdent("Unit", span), ast.NewLiteral(ast.LitUnit, "", span), span)
	tmpl.Body = append([]ast.Stmt{ctor}, tmpl.Body...)
	return tmpl
}

// --- templates ---

// parseTemplateOpt parses the optional `extends` clause and body of a
// class, trait, or object definition.
func (p *Parser) parseTemplateOpt() *ast.Template {
	start := p.offset()
	if p.kind() == lexer.EXTENDS {
		p.next()
		return p.parseTemplateAfterExtends(start)
	}
	p.newLineOptWhenFollowedBy(lexer.LBRACE)
	var self *ast.ValDef
	var body []ast.Stmt
	if p.kind() == lexer.LBRACE {
		self, body = p.parseTemplateBodyRaw()
	}
	return ast.MkTemplate(nil, self, nil, body, p.span(start))
}

// parseTemplateAfterExtends parses what follows `extends` — and, since the
// grammar is identical, what follows `new`: either `{ early defs } with
// parents`, or a plain parent list, each optionally followed by a body.
// A leading brace-body is tentatively parsed as ordinary statements; only
// when `with` turns out to follow it are they re-labelled early
// definitions via ensureEarlyDefs.
func (p *Parser) parseTemplateAfterExtends(start int) *ast.Template {
	if p.kind() == lexer.LBRACE {
		self0, stats0 := p.parseTemplateBodyRaw()
		if p.kind() != lexer.WITH {
			// A plain brace body after all; no early definitions.
			return ast.MkTemplate(nil, self0, nil, stats0, p.span(start))
		}
		p.next() // with
		earlyDefs := p.ensureEarlyDefs(stats0)
		parentTypes, ctorArgs := p.parseParents()
		var self *ast.ValDef
		var body []ast.Stmt
		p.newLineOptWhenFollowedBy(lexer.LBRACE)
		if p.kind() == lexer.LBRACE {
			self, body = p.parseTemplateBodyRaw()
		}
		parents := ast.MkParents(parentTypes, ctorArgs, p.span(start))
		return ast.MkTemplate(parents, self, earlyDefs, body, p.span(start))
	}

	parentTypes, ctorArgs := p.parseParents()
	var self *ast.ValDef
	var body []ast.Stmt
	p.newLineOptWhenFollowedBy(lexer.LBRACE)
	if p.kind() == lexer.LBRACE {
		self, body = p.parseTemplateBodyRaw()
	}
	parents := ast.MkParents(parentTypes, ctorArgs, p.span(start))
	return ast.MkTemplate(parents, self, nil, body, p.span(start))
}

// parseParents parses `AnnotType ctorArgs? (with AnnotType ctorArgs?)*`.
func (p *Parser) parseParents() ([]ast.TypeTree, [][]ast.Expr) {
	parentTypes := []ast.TypeTree{p.parseAnnotType()}
	ctorArgs := [][]ast.Expr{p.maybeParseCtorArgs()}
	for p.kind() == lexer.WITH {
		p.next()
		parentTypes = append(parentTypes, p.parseAnnotType())
		ctorArgs = append(ctorArgs, p.maybeParseCtorArgs())
	}
	return parentTypes, ctorArgs
}

func (p *Parser) maybeParseCtorArgs() []ast.Expr {
	if p.kind() != lexer.LPAREN {
		return nil
	}
	return p.parseArgumentList()
}

// parseTemplateBodyRaw parses a `{... }` template body, detecting the
// optional leading self-type declaration (`id [: Type] =>`) by speculative
// lookahead, and flattening any multi-statement productions (imports,
// destructuring val defs) as it collects the body.
func (p *Parser) parseTemplateBodyRaw() (*ast.ValDef, []ast.Stmt) {
	p.accept(lexer.LBRACE)
	p.newLineOpt()
	self, _ := p.tryParseSelfType()
	var stats []ast.Stmt
	for p.kind() != lexer.RBRACE && p.kind() != lexer.EOF {
		stats = append(stats, flattenStmt(p.parseTemplateStat(0))...)
		if !p.tok().IsStatSep() {
			break
		}
		p.skipStatSeps()
	}
	p.accept(lexer.RBRACE)
	return self, stats
}

// tryParseSelfType speculatively recognizes `id [: Type] =>` / `this [: Type] =>`
// / `_ [: Type] =>` at the start of a template body. The sub-parse runs
// through peekingAhead: an empty result (no `=>` after all) rolls the
// scanner back so the statements parse normally.
func (p *Parser) tryParseSelfType() (*ast.ValDef, bool) {
	switch p.kind() {
	case lexer.IDENT, lexer.USCORE, lexer.THIS:
	default:
		return nil, false
	}
	res := p.peekingAhead(func() ast.Node {
		start := p.offset()
		name := "this"
		switch p.kind() {
		case lexer.IDENT:
			name = p.tok().Name
		case lexer.USCORE:
			name = "_"
		}
		p.next()
		var typ ast.TypeTree = ast.NewEmptyTree(p.span(start))
		if p.kind() == lexer.COLON {
			p.next()
			p.speculating++
			typ = p.parseInfixType()
			p.speculating--
		}
		if p.kind() != lexer.ARROW {
			return ast.NewEmptyTree(p.span(start))
		}
		p.next()
		p.newLineOpt()
		return ast.NewValDef(0, name, typ, ast.NewEmptyTree(p.span(start)), p.span(start))
	})
	if vd, ok := res.(*ast.ValDef); ok {
		return vd, true
	}
	return nil, false
}

// ensureEarlyDefs re-labels a tentatively-parsed brace body as early
// definitions once `with` is seen to follow it: only concrete `val`s are
// retained (marked PRESUPER); an early `type` is accepted with a
// deprecation warning but, since ast.Template.EarlyDefs is a []*ValDef,
// cannot be represented in that slice and is otherwise dropped; anything
// else is a syntax error.
func (p *Parser) ensureEarlyDefs(stats []ast.Stmt) []*ast.ValDef {
	var early []*ast.ValDef
	for _, s := range stats {
		switch v := s.(type) {
		case *ast.ValDef:
			if ast.IsEmpty(v.Rhs) {
				p.syntaxError(v.Span().Start, "value definition needs = (early initializers must be concrete)")
				continue
			}
			v.Mods = v.Mods.With(ast.ModPreSuper)
			early = append(early, v)
		case *ast.TypeDef:
			p.deprecationWarning(v.Span().Start, "early type definitions are deprecated")
		default:
			p.syntaxError(s.Span().Start, "only concrete value definitions are allowed in early object initializers")
		}
	}
	return early
}

// parseTemplateStat parses one template-body statement: an import, an
// annotated/modifier-prefixed definition, or a bare expression statement.
func (p *Parser) parseTemplateStat(extraMods ast.Mods) ast.Stmt {
	switch p.kind() {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.RBRACE, lexer.EOF:
		return ast.NewEmptyTree(p.spanAt(p.offset()))
	case lexer.AT, lexer.PRIVATE, lexer.PROTECTED, lexer.OVERRIDE, lexer.ABSTRACT,
		lexer.FINAL, lexer.SEALED, lexer.IMPLICIT, lexer.LAZY,
		lexer.VAL, lexer.VAR, lexer.DEF, lexer.TYPE,
		lexer.CLASS, lexer.TRAIT, lexer.OBJECT, lexer.CASE:
		p.parseAnnotations()
		mods := extraMods | p.parseModifiers()
		return p.parseDefOrDcl(mods)
	default:
		return exprAsStmt(p.parseExpr(InTemplate))
	}
}
