package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
)

// Location selects the expression parser's follow-set.
type Location int

const (
	Local Location = iota
	InBlock
	InTemplate
)

// parseExpr is the entry `expr(location)`.
func (p *Parser) parseExpr(loc Location) ast.Expr {
	p.pushExprBoundary()
	start := p.offset()
	e := p.parseExprInner(loc, start)
	return p.wrapExprBoundary(e, p.span(start))
}

func (p *Parser) parseExprInner(loc Location, start int) ast.Expr {
	switch p.kind() {
	case lexer.IF:
		return p.parseIf(start)
	case lexer.TRY:
		return p.parseTry(start)
	case lexer.WHILE:
		return p.parseWhile(start)
	case lexer.DO:
		return p.parseDoWhile(start)
	case lexer.FOR:
		return p.parseForExpr(start)
	case lexer.RETURN:
		return p.parseReturn(start)
	case lexer.THROW:
		return p.parseThrow(start)
	case lexer.IMPLICIT:
		if p.peek().Kind == lexer.IDENT {
			return p.parseImplicitClosure(start)
		}
	}
	e := p.parsePostfixExpr()
	return p.parseExprRest(e, loc, start)
}

func (p *Parser) parseExprRest(e ast.Expr, loc Location, start int) ast.Expr {
	switch p.kind() {
	case lexer.EQUALS:
		if isAssignable(e) {
			p.next()
			rhs := p.parseExpr(loc)
			return ast.MkAssign(e, rhs, p.span(start))
		}
		return e
	case lexer.COLON:
		p.next()
		if p.kind() == lexer.USCORE && p.peek().Kind == lexer.IDENT && p.peek().Name == "*" {
			p.next()
			p.next()
			return ast.NewTyped(e, ast.NewIdent("<repeated>", p.span(start)), p.span(start))
		}
		if p.kind() == lexer.AT {
			p.next()
			annot := p.parseSimpleExpr(false)
			return ast.NewAnnotated(e, annot, p.span(start))
		}
		// In statement positions only an infix type is ascribed, leaving a
		// following `=>` free to turn the ascription into a typed lambda
		// parameter; at Local positions the full Type grammar (including
		// function arrows) applies.
		var t ast.TypeTree
		if loc == Local {
			t = p.parseType()
		} else {
			t = p.parseInfixType()
		}
		if loc == InTemplate && p.kind() == lexer.ARROW {
			// A self-type declaration is only recognized as the first
			// statement of a template body; anywhere else a bare `id: T =>`
			// cannot be told apart from an anonymous function head.
			if _, ok := e.(*ast.Ident); ok {
				p.syntaxError(p.offset(), "unparenthesised typed identifier is ambiguous here; wrap the parameter in parentheses")
			}
		}
		return p.parseExprRest(ast.NewTyped(e, t, p.span(start)), loc, start)
	case lexer.MATCH:
		p.next()
		cases := p.parseCaseBlock()
		return ast.NewMatch(e, cases, p.span(start))
	case lexer.ARROW:
		if isLambdaLHS(e) {
			p.next()
			params := p.lambdaParams(e)
			body := p.parseFunctionBody(loc)
			return ast.NewFunction(params, body, p.span(start))
		}
		return e
	}
	return e
}

// lambdaParams recovers the parameter list for a `lhs => body` lambda. A
// lone identifier that is the most recently noted placeholder (`_ => body`,
// `_: T => body`) reclaims that pending synthetic parameter, type
// ascription included, so the boundary does not wrap a second time.
func (p *Parser) lambdaParams(e ast.Expr) []*ast.ValDef {
	if id, ok := e.(*ast.Ident); ok {
		if n := len(p.exprPlaceholders); n > 0 {
			frame := &p.exprPlaceholders[n-1]
			if m := len(frame.params); m > 0 && frame.params[m-1].Name == id.Name {
				param := frame.params[m-1]
				frame.params = frame.params[:m-1]
				return []*ast.ValDef{param}
			}
		}
	}
	return exprToParams(e)
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.Select, *ast.Apply:
		return true
	default:
		return false
	}
}

// isLambdaLHS reports whether e can be the parameter list of a `lhs =>
// body` anonymous function: a bare identifier, a typed identifier (a
// singleton parenthesised parameter collapses to one during the parse), or
// a parenthesised list of identifiers and typed identifiers.
func isLambdaLHS(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Ident:
		return true
	case *ast.Typed:
		_, ok := v.Expr.(*ast.Ident)
		return ok
	case *ast.Parens:
		for _, el := range v.Exprs {
			switch t := el.(type) {
			case *ast.Ident:
			case *ast.Typed:
				if _, ok := t.Expr.(*ast.Ident); !ok {
					return false
				}
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}

func exprToParams(e ast.Expr) []*ast.ValDef {
	switch v := e.(type) {
	case *ast.Ident:
		return []*ast.ValDef{ast.MkSyntheticParam(v.Name, ast.NewEmptyTree(v.Span()), v.Span())}
	case *ast.Typed:
		if id, ok := v.Expr.(*ast.Ident); ok {
			return []*ast.ValDef{ast.NewValDef(ast.ModParam, id.Name, v.Type, ast.NewEmptyTree(v.Span()), v.Span())}
		}
		return nil
	case *ast.Parens:
		out := make([]*ast.ValDef, 0, len(v.Exprs))
		for _, el := range v.Exprs {
			switch t := el.(type) {
			case *ast.Typed:
				if id, ok := t.Expr.(*ast.Ident); ok {
					out = append(out, ast.NewValDef(ast.ModParam, id.Name, t.Type, ast.NewEmptyTree(t.Span()), t.Span()))
					continue
				}
			case *ast.Ident:
				out = append(out, ast.MkSyntheticParam(t.Name, ast.NewEmptyTree(t.Span()), t.Span()))
				continue
			}
		}
		return out
	default:
		return nil
	}
}

func (p *Parser) parseFunctionBody(loc Location) ast.Expr {
	if p.kind() == lexer.LBRACE {
		return p.parseBlockExpr()
	}
	if loc == InBlock {
		// A block-statement lambda's body extends to the end of the
		// enclosing block: `{ x => val y = f(x); y }`.
		return p.parseBlockBody(p.offset())
	}
	return p.parseExpr(loc)
}

func (p *Parser) parseImplicitClosure(start int) ast.Expr {
	p.next() // implicit
	name := p.expectIdentName()
	var typ ast.TypeTree = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.COLON {
		p.next()
		typ = p.parseType()
	}
	p.accept(lexer.ARROW)
	body := p.parseFunctionBody(Local)
	param := ast.NewValDef(ast.ModParam|ast.ModImplicit, name, typ, ast.NewEmptyTree(p.span(start)), p.span(start))
	return ast.NewFunction([]*ast.ValDef{param}, body, p.span(start))
}

func (p *Parser) parseIf(start int) ast.Expr {
	p.next() // if
	cond := p.condExpr(start)
	p.newLineOpt()
	then := p.parseExpr(Local)
	var els ast.Expr = ast.NewEmptyTree(p.span(start))
	if p.lookingAhead(func() bool {
		p.skipStatSeps()
		return p.kind() == lexer.ELSE
	}) {
		p.skipStatSeps()
		p.next() // else
		els = p.parseExpr(Local)
	}
	return ast.NewIf(cond, then, els, p.span(start))
}

// condExpr parses a parenthesised condition. When the opening paren is
// missing, this reports the error and returns a synthesized error-tree
// rather than a bare `true`.
func (p *Parser) condExpr(start int) ast.Expr {
	if p.kind() != lexer.LPAREN {
		return p.errorTree("'(' expected")
	}
	p.next()
	cond := p.parseExpr(Local)
	p.accept(lexer.RPAREN)
	return cond
}

func (p *Parser) parseWhile(start int) ast.Expr {
	p.next() // while
	cond := p.condExpr(start)
	p.newLineOpt()
	body := p.parseExpr(Local)
	return makeWhile(start, cond, body, p.span(start))
}

// makeWhile desugars `while (cond) body` into a labelled loop:
// `{ def $while: Unit = if (cond) { body; $while } else (); $while }`.
func makeWhile(start int, cond, body ast.Expr, span lexer.Span) ast.Expr {
	label := "$while"
	call := ast.NewApply(ast.NewIdent(label, span), nil, span)
	loopBody := ast.NewBlock([]ast.Stmt{exprAsStmt(body)}, call, span)
	thenBranch := ast.NewIf(cond, loopBody, ast.NewLiteral(ast.LitUnit, "", span), span)
	def := ast.NewDefDef(0, label, nil, nil, ast.NewIdent("Unit", span), thenBranch, span)
	return ast.NewBlock([]ast.Stmt{def}, call, span)
}

// exprAsStmt narrows an expression into the Stmt slot of a block or
// template body; every expression node carries the statement marker.
func exprAsStmt(e ast.Expr) ast.Stmt {
	return e.(ast.Stmt)
}

func (p *Parser) parseDoWhile(start int) ast.Expr {
	p.next() // do
	body := p.parseExpr(Local)
	p.skipStatSeps()
	p.accept(lexer.WHILE)
	cond := p.condExpr(start)
	// do-while desugars to `{ body; while (cond) body }`.
	return ast.NewBlock([]ast.Stmt{exprAsStmt(body)}, makeWhile(start, cond, body, p.span(start)), p.span(start))
}

func (p *Parser) parseReturn(start int) ast.Expr {
	p.next() // return
	if p.tok().IsStatSep() || p.kind() == lexer.RBRACE || p.kind() == lexer.EOF {
		return ast.NewReturn(ast.NewEmptyTree(p.span(start)), p.span(start))
	}
	e := p.parseExpr(Local)
	return ast.NewReturn(e, p.span(start))
}

func (p *Parser) parseThrow(start int) ast.Expr {
	p.next() // throw
	e := p.parseExpr(Local)
	return ast.NewThrow(e, p.span(start))
}

func (p *Parser) parseTry(start int) ast.Expr {
	p.next() // try
	body := p.parseTryBody()
	var catches []*ast.CaseClause
	if p.kind() == lexer.CATCH {
		p.next()
		catches = p.parseCatchClause()
	}
	var fin ast.Expr = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.FINALLY {
		p.next()
		fin = p.parseExpr(Local)
	}
	return ast.NewTry(body, catches, fin, p.span(start))
}

func (p *Parser) parseTryBody() ast.Expr {
	switch p.kind() {
	case lexer.LBRACE:
		return p.parseBlockExpr()
	case lexer.LPAREN:
		p.next()
		e := p.parseExpr(Local)
		p.accept(lexer.RPAREN)
		return e
	default:
		return p.parseExpr(Local)
	}
}

func (p *Parser) parseCatchClause() []*ast.CaseClause {
	if p.kind() == lexer.LBRACE {
		p.next()
		p.newLineOpt()
		cases := p.parseCases()
		p.accept(lexer.RBRACE)
		return cases
	}
	// `catch expr` — wrapped into one synthetic case via makeCatchFromExpr.
	e := p.parseExpr(Local)
	return makeCatchFromExpr(e)
}

// makeCatchFromExpr wraps a bare catch-handler expression `catch f` into
// a single case `case x => f(x)` style clause, so both `catch { cases }`
// and `catch expr` share the Try.Catches shape.
func makeCatchFromExpr(handler ast.Expr) []*ast.CaseClause {
	span := handler.Span()
	name := "$exc"
	pat := ast.NewBind(name, nil, span)
	body := ast.NewApply(handler, []ast.Expr{ast.NewIdent(name, span)}, span)
	return []*ast.CaseClause{ast.NewCaseClause(pat, ast.NewEmptyTree(span), body, span)}
}

func (p *Parser) parseCaseBlock() []*ast.CaseClause {
	p.accept(lexer.LBRACE)
	p.newLineOpt()
	cases := p.parseCases()
	p.accept(lexer.RBRACE)
	return cases
}

func (p *Parser) parseCases() []*ast.CaseClause {
	var cases []*ast.CaseClause
	for p.kind() == lexer.CASE {
		cases = append(cases, p.parseCaseClause())
		p.skipStatSeps()
	}
	return cases
}

func (p *Parser) parseCaseClause() *ast.CaseClause {
	start := p.offset()
	p.next() // case
	pat := p.parsePattern()
	var guard ast.Expr = ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.IF {
		p.next()
		guard = p.parsePostfixExpr()
	}
	p.accept(lexer.ARROW)
	p.newLineOpt()
	body := p.parseCaseBody()
	return ast.NewCaseClause(pat, guard, body, p.span(start))
}

func (p *Parser) parseCaseBody() ast.Expr {
	start := p.offset()
	var stats []ast.Stmt
	for !p.atCaseClause() && p.kind() != lexer.RBRACE && p.kind() != lexer.EOF {
		stats = append(stats, flattenStmt(p.parseBlockStat())...)
		if !p.tok().IsStatSep() {
			break
		}
		p.skipStatSeps()
	}
	var result ast.Expr = ast.NewLiteral(ast.LitUnit, "", p.span(start))
	if n := len(stats); n > 0 {
		if e, ok := stats[n-1].(ast.Expr); ok {
			result = e
			stats = stats[:n-1]
		}
	}
	if len(stats) == 0 {
		return result
	}
	return ast.NewBlock(stats, result, p.span(start))
}

// parseForExpr parses `for (` enumerators `) [yield] body` or
// `for { enumerators } [yield] body`.
func (p *Parser) parseForExpr(start int) ast.Expr {
	p.next() // for
	closeKind := lexer.RPAREN
	if p.kind() == lexer.LBRACE {
		closeKind = lexer.RBRACE
	}
	p.next() // ( or {
	enums := p.parseEnumerators(closeKind)
	p.accept(closeKind)
	p.newLineOpt()
	yields := false
	if p.kind() == lexer.YIELD {
		p.next()
		yields = true
	}
	body := p.parseExpr(Local)
	return ast.MkFor(enums, body, yields, p.fresh.TermName, p.span(start))
}

func (p *Parser) parseEnumerators(closeKind lexer.TokenKind) []*ast.Enumerator {
	var enums []*ast.Enumerator
	enums = append(enums, p.parseGenerator())
	for {
		p.skipStatSeps()
		if p.kind() == closeKind {
			break
		}
		switch p.kind() {
		case lexer.IF:
			enums = append(enums, p.parseFilter())
		case lexer.VAL:
			start := p.offset()
			if p.opts.futureFlag {
				p.deprecationWarning(start, "`val` keyword in for comprehension is deprecated")
			}
			p.next()
			enums = append(enums, p.parseValAssign(start))
		default:
			if p.lookingAheadIsGenerator() {
				enums = append(enums, p.parseGenerator())
			} else {
				enums = append(enums, p.parseValAssign(p.offset()))
			}
		}
	}
	return enums
}

func (p *Parser) lookingAheadIsGenerator() bool {
	return p.lookingAhead(func() bool {
		p.parsePattern()
		return p.kind() == lexer.LARROW
	})
}

func (p *Parser) parseGenerator() *ast.Enumerator {
	start := p.offset()
	pat := p.parsePattern()
	p.accept(lexer.LARROW)
	rhs := p.parseExpr(Local)
	return ast.MkGenerator(pat, rhs, p.span(start))
}

func (p *Parser) parseValAssign(start int) *ast.Enumerator {
	pat := p.parsePattern()
	p.accept(lexer.EQUALS)
	rhs := p.parseExpr(Local)
	return ast.NewValAssign(pat, rhs, p.span(start))
}

func (p *Parser) parseFilter() *ast.Enumerator {
	start := p.offset()
	p.next() // if
	cond := p.parsePostfixExpr()
	return ast.NewFilter(cond, p.span(start))
}

// parsePostfixExpr drives the precedence engine.
func (p *Parser) parsePostfixExpr() ast.Expr {
	base := p.opMarkHere()
	var top ast.Expr = p.parsePrefixExpr()
	for p.kind() == lexer.IDENT {
		op := p.tok().Name
		opOffset := p.offset()
		var targs []ast.TypeTree
		top = p.reduceStack(base, top, op, mkBinopExpr).(ast.Expr)
		p.next()
		if p.kind() == lexer.LBRACKET {
			targs = p.parseTypeArgs()
		}
		p.newLineOptWhenFollowing(canStartExpr)
		if !canStartExpr(p.tok()) {
			// Postfix: no right operand. Reduce and build a Select.
			top = p.finishReduceAll(base, top, mkBinopExpr).(ast.Expr)
			if len(targs) > 0 {
				p.syntaxError(opOffset, "type application is not allowed on postfix operators")
			}
			p.warning(opOffset, "postfix operator "+op+" should be avoided")
			return ast.NewSelect(top, op, mergeSpan(top.Span(), p.span(opOffset)))
		}
		p.pushOp(top, op, targs, opOffset)
		top = p.parsePrefixExpr()
	}
	return p.finishReduceAll(base, top, mkBinopExpr).(ast.Expr)
}

func canStartExpr(t lexer.Token) bool {
	switch t.Kind {
	case lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET, lexer.COMMA, lexer.SEMI,
		lexer.EOF, lexer.NEWLINE, lexer.NEWLINES, lexer.EQUALS, lexer.ARROW,
		lexer.WITH, lexer.EXTENDS, lexer.CATCH, lexer.FINALLY, lexer.ELSE, lexer.YIELD, lexer.MATCH:
		return false
	default:
		return true
	}
}

var unaryOps = map[string]bool{"+": true, "-": true, "~": true, "!": true}

// parsePrefixExpr accepts +, -, ~, ! as unary identifiers.
func (p *Parser) parsePrefixExpr() ast.Expr {
	start := p.offset()
	if p.kind() == lexer.IDENT && unaryOps[p.tok().Name] {
		op := p.tok().Name
		if op == "-" && p.peek().Kind == lexer.INTLIT || op == "-" && p.peek().Kind == lexer.DOUBLELIT ||
			op == "-" && p.peek().Kind == lexer.LONGLIT || op == "-" && p.peek().Kind == lexer.FLOATLIT {
			p.next()
			lit := p.tok()
			p.next()
			return ast.NewLiteral(literalKindOf(lit.Kind), "-"+lit.Value, p.span(start))
		}
		p.next()
		operand := p.parsePrefixExpr()
		return ast.NewSelect(operand, "unary_"+op, p.span(start))
	}
	return p.parseSimpleExpr(true)
}

func literalKindOf(kind lexer.TokenKind) ast.LiteralKind {
	switch kind {
	case lexer.INTLIT:
		return ast.LitInt
	case lexer.LONGLIT:
		return ast.LitLong
	case lexer.FLOATLIT:
		return ast.LitFloat
	case lexer.DOUBLELIT:
		return ast.LitDouble
	case lexer.CHARLIT:
		return ast.LitChar
	case lexer.STRINGLIT:
		return ast.LitString
	case lexer.SYMBOLLIT:
		return ast.LitSymbol
	case lexer.TRUELIT, lexer.FALSELIT:
		return ast.LitBoolean
	default:
		return ast.LitNull
	}
}

// parseSimpleExpr handles literals, markup, paths, parenthesised
// expressions, blocks, new templates, and placeholders; canApply controls
// whether a trailing `(`/`{` is consumed as an argument list by
// simpleExprRest.
func (p *Parser) parseSimpleExpr(canApply bool) ast.Expr {
	start := p.offset()
	var e ast.Expr
	switch p.kind() {
	case lexer.INTLIT, lexer.LONGLIT, lexer.FLOATLIT, lexer.DOUBLELIT, lexer.CHARLIT,
		lexer.STRINGLIT, lexer.SYMBOLLIT, lexer.TRUELIT, lexer.FALSELIT, lexer.NULLLIT:
		lit := p.tok()
		p.next()
		e = ast.NewLiteral(literalKindOf(lit.Kind), lit.Value, p.span(start))
	case lexer.INTERPOLATIONID:
		e = p.parseInterpolatedString(start)
	case lexer.XMLSTART:
		e = p.parseMarkupLiteral(start)
	case lexer.THIS:
		p.next()
		e = ast.NewThis("", p.span(start))
	case lexer.SUPER:
		p.next()
		mix := ""
		if p.kind() == lexer.LBRACKET {
			p.next()
			mix = p.expectIdentName()
			p.accept(lexer.RBRACKET)
		}
		e = ast.NewSuper("", mix, p.span(start))
	case lexer.USCORE:
		p.next()
		var typ ast.TypeTree
		if p.kind() == lexer.COLON {
			p.next()
			typ = p.parseType()
		}
		e = p.noteExprPlaceholder(typ, p.span(start))
	case lexer.LPAREN:
		p.next()
		exprs := parseCommaList(p, lexer.RPAREN, func() ast.Expr { return p.parseExpr(Local) })
		p.accept(lexer.RPAREN)
		if len(exprs) == 1 {
			e = exprs[0]
		} else {
			e = ast.NewParens(exprs, p.span(start))
		}
	case lexer.LBRACE:
		e = p.parseBlockExpr()
	case lexer.NEW:
		p.next()
		tmpl := p.parseTemplateAfterExtends(start)
		e = ast.MkNew(tmpl, p.span(start))
	case lexer.IDENT:
		e = ast.NewIdent(p.tok().Name, p.span(start))
		p.next()
	default:
		e = p.errorTree("illegal start of simple expression")
	}
	return p.simpleExprRest(e, canApply, start)
}

// simpleExprRest loops over `.`-selections, `[`-type-applications
// (only on Ident/Select/Apply), argument lists, and a trailing `_`
// eta-expansion marker.
func (p *Parser) simpleExprRest(e ast.Expr, canApply bool, start int) ast.Expr {
	for {
		switch p.kind() {
		case lexer.DOT:
			p.next()
			name := p.expectIdentName()
			e = ast.NewSelect(e, name, p.span(start))
		case lexer.LBRACKET:
			if !isTypeApplicable(e) {
				return e
			}
			targs := p.parseTypeArgs()
			e = ast.NewTypeApply(e, targs, p.span(start))
		case lexer.LPAREN:
			if !canApply {
				return e
			}
			args := p.parseArgumentList()
			e = ast.NewApply(e, args, p.span(start))
		case lexer.LBRACE:
			if !canApply {
				return e
			}
			block := p.parseBlockExpr()
			e = ast.NewApply(e, []ast.Expr{block}, p.span(start))
		case lexer.USCORE:
			if canApply && p.peek().Kind != lexer.IDENT {
				p.next()
				e = ast.NewTyped(e, ast.NewFunctionTypeTree(false, false, nil, ast.NewEmptyTree(p.span(start)), p.span(start)), p.span(start))
				return e
			}
			return e
		default:
			return e
		}
	}
}

func isTypeApplicable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.Select, *ast.Apply:
		return true
	default:
		return false
	}
}

func (p *Parser) parseArgumentList() []ast.Expr {
	p.accept(lexer.LPAREN)
	args := parseCommaList(p, lexer.RPAREN, func() ast.Expr { return p.parseArgumentExpr() })
	p.accept(lexer.RPAREN)
	return args
}

func (p *Parser) parseArgumentExpr() ast.Expr {
	start := p.offset()
	if p.kind() == lexer.IDENT && !p.tok().Backquoted {
		name := p.tok().Name
		isNamed := p.lookingAhead(func() bool {
			p.next()
			return p.kind() == lexer.EQUALS
		})
		if isNamed {
			p.next() // name
			p.next() // =
			value := p.parseExpr(Local)
			return ast.NewNamedArg(name, value, p.span(start))
		}
	}
	return p.parseExpr(Local)
}

// parseBlockExpr parses `{... }`, handling case blocks specially.
func (p *Parser) parseBlockExpr() ast.Expr {
	start := p.offset()
	p.accept(lexer.LBRACE)
	p.newLineOpt()
	if p.kind() == lexer.CASE && p.peek().Kind != lexer.CLASS && p.peek().Kind != lexer.OBJECT {
		cases := p.parseCases()
		p.accept(lexer.RBRACE)
		scrutineeParam := ast.MkSyntheticParam(p.fresh.TermName("x"), ast.NewEmptyTree(p.span(start)), p.span(start))
		match := ast.NewMatch(ast.NewIdent(scrutineeParam.Name, p.span(start)), cases, p.span(start))
		return ast.NewFunction([]*ast.ValDef{scrutineeParam}, match, p.span(start))
	}
	block := p.parseBlockBody(start)
	p.accept(lexer.RBRACE)
	return block
}

// parseBlockBody parses the statement sequence inside a block: imports,
// local definitions, and expressions, separated by statement separators;
// the final non-separator tree is the result (synthesised as unit absent).
func (p *Parser) parseBlockBody(start int) ast.Expr {
	var stats []ast.Stmt
	for p.kind() != lexer.RBRACE && p.kind() != lexer.EOF && !p.atCaseClause() {
		stats = append(stats, flattenStmt(p.parseBlockStat())...)
		if !p.tok().IsStatSep() {
			break
		}
		p.skipStatSeps()
	}
	p.checkNoEscapedPlaceholders(p.span(start))
	var result ast.Expr = ast.NewLiteral(ast.LitUnit, "", p.span(start))
	if n := len(stats); n > 0 {
		if e, ok := stats[n-1].(ast.Expr); ok {
			result = e
			stats = stats[:n-1]
		}
	}
	return ast.NewBlock(stats, result, p.span(start))
}

// atCaseClause reports whether the current token begins a `case pat =>`
// clause, as opposed to a `case class`/`case object` definition.
func (p *Parser) atCaseClause() bool {
	return p.kind() == lexer.CASE && p.peek().Kind != lexer.CLASS && p.peek().Kind != lexer.OBJECT
}

// parseBlockStat parses one statement of a block body.
func (p *Parser) parseBlockStat() ast.Stmt {
	switch p.kind() {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.VAL, lexer.VAR:
		return p.parsePatDefOrDefDefAsStmt()
	case lexer.DEF:
		return p.parsePatDefOrDefDefAsStmt()
	case lexer.TYPE:
		return p.parseTypeDefStmt()
	case lexer.CLASS, lexer.TRAIT, lexer.OBJECT, lexer.CASE:
		return p.parseTemplateStat(0)
	case lexer.IMPLICIT:
		if p.peek().Kind == lexer.IDENT {
			return exprAsStmt(p.parseExpr(InBlock))
		}
		p.next()
		return p.parseDefOrDcl(ast.ModImplicit)
	case lexer.LAZY:
		p.next()
		return p.parseDefOrDcl(ast.ModLazy)
	default:
		return exprAsStmt(p.parseExpr(InBlock))
	}
}

// parseInterpolatedString parses `id"part${expr}part$name part"`. The
// scanner delivers alternating chunks and splices: non-final chunks as
// STRINGPART, the closing chunk as STRINGLIT, a braced splice as an
// ordinary LBRACE-delimited expression, and a bare `$name` splice as a
// single IDENT.
func (p *Parser) parseInterpolatedString(start int) ast.Expr {
	prefix := p.tok().Name
	p.next()
	var parts []ast.Expr
	for {
		part := p.tok()
		parts = append(parts, ast.NewLiteral(ast.LitString, part.Value, p.span(start)))
		p.next()
		if part.Kind != lexer.STRINGPART {
			break
		}
		switch p.kind() {
		case lexer.LBRACE:
			p.next()
			p.pushExprBoundary()
			inner := p.parseExpr(Local)
			inner = p.wrapInterpBoundary(inner, inner.Span())
			p.accept(lexer.RBRACE)
			parts = append(parts, inner)
		case lexer.IDENT, lexer.THIS:
			parts = append(parts, ast.NewIdent(p.tok().Name, p.span(start)))
			p.next()
		default:
			p.syntaxErrorOrIncomplete("error in interpolated string: identifier or block expected")
			return ast.NewEmptyTree(p.span(start))
		}
	}
	return ast.NewApply(ast.NewSelect(ast.NewIdent(prefix, p.span(start)), "interpolate", p.span(start)), parts, p.span(start))
}

// parseMarkupLiteral is the stub entry point for the XML-literal
// sub-parser: it records one diagnostic and
// returns EmptyTree rather than attempting a markup grammar.
func (p *Parser) parseMarkupLiteral(start int) ast.Expr {
	p.syntaxError(start, "XML literals are not supported")
	for p.kind() != lexer.EOF && !p.tok().IsStatSep() {
		p.next()
	}
	return ast.NewEmptyTree(p.span(start))
}

func (p *Parser) parseMarkupPattern(start int) ast.Pattern {
	p.syntaxError(start, "XML patterns are not supported")
	return ast.NewBind("_", nil, p.span(start))
}
