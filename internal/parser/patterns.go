package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
	"github.com/veltra-lang/veltra/internal/names"
)

// patternCtx carries the context-sensitive flags a pattern parse needs:
// isSequenceOK affects `_*` acceptance, isXML affects close-delimiter
// recognition. The two booleans travel as a small value parameter
// alongside the Parser receiver rather than as separate parser modes.
type patternCtx struct {
	isSequenceOK bool
	isXML        bool
}

var seqOK = patternCtx{isSequenceOK: true}
var noSeq = patternCtx{isSequenceOK: false}

// parsePattern is the top-level pattern entry, sequences allowed.
func (p *Parser) parsePattern() ast.Pattern {
	return p.pattern(seqOK)
}

// pattern parses `Pattern ::= Pattern1 ('|' Pattern1)*`.
func (p *Parser) pattern(ctx patternCtx) ast.Pattern {
	start := p.offset()
	first := p.pattern1(ctx)
	if p.kind() != lexer.IDENT || p.tok().Name != "|" {
		return first
	}
	alts := []ast.Pattern{first}
	for p.kind() == lexer.IDENT && p.tok().Name == "|" {
		p.next()
		p.newLineOptWhenFollowing(func(lexer.Token) bool { return true })
		alts = append(alts, p.pattern1(ctx))
	}
	return ast.NewAlternative(alts, p.span(start))
}

// pattern1 parses:
//
//	Pattern1 ::= varid ':' TypePat | '_' ':' TypePat | Pattern2
func (p *Parser) pattern1(ctx patternCtx) ast.Pattern {
	start := p.offset()
	if p.kind() == lexer.USCORE && p.peek().Kind == lexer.COLON {
		p.next() // _
		p.next() // :
		typ := p.parseInfixType()
		return ast.NewTyped(ast.NewBind("_", nil, p.span(start)), typ, p.span(start))
	}
	if p.kind() == lexer.IDENT && !p.tok().Backquoted && p.peek().Kind == lexer.COLON {
		name := p.tok().Name
		if !names.IsVarName(name) {
			p.syntaxError(start, "Pattern variables must start with a lower-case letter")
			p.next()
			p.next() // :
			p.parseInfixType()
			return ast.NewBind("_", nil, p.span(start))
		}
		p.next() // id
		p.next() // :
		typ := p.parseInfixType()
		return ast.NewTyped(ast.NewBind(name, nil, p.span(start)), typ, p.span(start))
	}
	return p.pattern2(ctx)
}

// pattern2 parses `Pattern2 ::= varid ['@' Pattern3] | Pattern3`.
func (p *Parser) pattern2(ctx patternCtx) ast.Pattern {
	start := p.offset()
	if p.kind() == lexer.USCORE && p.peek().Kind == lexer.AT {
		p.next() // _
		p.next() // @
		return p.pattern3(ctx)
	}
	if p.kind() == lexer.IDENT && !p.tok().Backquoted && names.IsVarName(p.tok().Name) &&
		p.peek().Kind == lexer.AT {
		name := p.tok().Name
		p.next() // id
		p.next() // @
		inner := p.pattern3(ctx)
		return ast.NewBind(name, inner, p.span(start))
	}
	return p.pattern3(ctx)
}

// pattern3 drives the precedence engine over pattern constructors, and
// handles the trailing `_*` sequence-wildcard special case.
func (p *Parser) pattern3(ctx patternCtx) ast.Pattern {
	base := p.opMarkHere()
	var top ast.Pattern = p.simplePattern(ctx)
	if star, ok := p.tryParseSeqWildcard(ctx, top); ok {
		return star
	}
	for p.kind() == lexer.IDENT && !p.tok().Backquoted && p.tok().Name != "|" {
		op := p.tok().Name
		opOffset := p.offset()
		top = p.reduceStack(base, top, op, p.mkBinopPattern).(ast.Pattern)
		p.next()
		var targs []ast.TypeTree
		if p.kind() == lexer.LBRACKET {
			targs = p.parseTypeArgs()
			p.syntaxError(opOffset, "type application is not allowed on pattern operators")
		}
		p.pushOp(top, op, targs, opOffset)
		top = p.simplePattern(ctx)
		if star, ok := p.tryParseSeqWildcard(ctx, top); ok {
			top = star
			break
		}
	}
	return p.finishReduceAll(base, top, p.mkBinopPattern).(ast.Pattern)
}

// tryParseSeqWildcard recognizes the `_*` repeated-pattern marker: legal
// only when ctx.isSequenceOK and the pattern just parsed was the bare
// wildcard, and only immediately before the appropriate close delimiter
// (`)` normally, `}` in XML context). badPattern3 covers the misuse cases.
func (p *Parser) tryParseSeqWildcard(ctx patternCtx, last ast.Pattern) (ast.Pattern, bool) {
	if p.kind() != lexer.IDENT || p.tok().Name != "*" {
		return nil, false
	}
	bind, isWildcard := last.(*ast.Bind)
	if !isWildcard || bind.Name != "_" || bind.Pat != nil {
		// `a * b` is an ordinary infix pattern, not a sequence wildcard.
		return nil, false
	}
	close := lexer.RPAREN
	if ctx.isXML {
		close = lexer.RBRACE
	}
	if !ctx.isSequenceOK || (p.peek().Kind != close && p.peek().Kind != lexer.COMMA) {
		return p.badPattern3(ctx, last)
	}
	start := last.Span().Start
	p.next() // *
	return ast.NewStar(last, p.span(start)), true
}

// badPattern3 emits a targeted diagnostic for `_*` appearing in the wrong
// place (not sequence-legal, or not immediately before the close
// delimiter) and returns the pattern parsed so far unchanged.
func (p *Parser) badPattern3(ctx patternCtx, last ast.Pattern) (ast.Pattern, bool) {
	if !ctx.isSequenceOK {
		p.syntaxError(p.offset(), "_* may only be used in an argument pattern")
	} else {
		p.syntaxError(p.offset(), "_* must be the last pattern of an argument list")
	}
	return last, false
}

// simplePattern parses:
//
//	SimplePattern ::= varid | '_' | literal | xmlPattern
//	 | stableId TypeArgs? ('(' argumentPatterns ')')?
//	 | '(' Patterns ')'
func (p *Parser) simplePattern(ctx patternCtx) ast.Pattern {
	start := p.offset()
	switch p.kind() {
	case lexer.USCORE:
		p.next()
		if p.kind() == lexer.COLON {
			p.next()
			typ := p.parseInfixType()
			return ast.NewTyped(ast.NewBind("_", nil, p.span(start)), typ, p.span(start))
		}
		return ast.NewBind("_", nil, p.span(start))
	case lexer.INTLIT, lexer.LONGLIT, lexer.FLOATLIT, lexer.DOUBLELIT, lexer.CHARLIT,
		lexer.STRINGLIT, lexer.SYMBOLLIT, lexer.TRUELIT, lexer.FALSELIT, lexer.NULLLIT:
		lit := p.tok()
		p.next()
		return ast.NewLiteral(literalKindOf(lit.Kind), lit.Value, p.span(start))
	case lexer.IDENT:
		if op := p.tok().Name; (op == "-") && !p.tok().Backquoted {
			if p.peek().Kind == lexer.INTLIT || p.peek().Kind == lexer.DOUBLELIT ||
				p.peek().Kind == lexer.LONGLIT || p.peek().Kind == lexer.FLOATLIT {
				p.next()
				lit := p.tok()
				p.next()
				return ast.NewLiteral(literalKindOf(lit.Kind), "-"+lit.Value, p.span(start))
			}
		}
		if !p.tok().Backquoted && names.IsVarName(p.tok().Name) && p.peek().Kind != lexer.DOT {
			name := p.tok().Name
			p.next()
			return ast.NewBind(name, nil, p.span(start))
		}
		return p.stableIdPattern(ctx, start)
	case lexer.THIS:
		p.next()
		return p.stableIdPatternRest(ctx, ast.NewThis("", p.span(start)), start)
	case lexer.XMLSTART:
		return p.parseMarkupPattern(start)
	case lexer.LPAREN:
		p.next()
		elems := parseCommaList(p, lexer.RPAREN, func() ast.Pattern { return p.pattern(seqOK) })
		p.accept(lexer.RPAREN)
		if len(elems) == 1 {
			return elems[0]
		}
		args := make([]ast.Expr, len(elems))
		for i, e := range elems {
			args[i] = patternAsExpr(e)
		}
		return ast.NewApply(ast.NewIdent("<tuple>", p.span(start)), args, p.span(start))
	default:
		return p.errorPattern("illegal start of simple pattern")
	}
}

// stableIdPattern parses a (possibly qualified) stable identifier pattern,
// optionally followed by type arguments and/or an argument-pattern list
// (an extractor call).
func (p *Parser) stableIdPattern(ctx patternCtx, start int) ast.Pattern {
	name := p.tok().Name
	p.next()
	var e ast.Expr = ast.NewIdent(name, p.span(start))
	return p.stableIdPatternRest(ctx, e, start)
}

func (p *Parser) stableIdPatternRest(ctx patternCtx, e ast.Expr, start int) ast.Pattern {
	for p.kind() == lexer.DOT {
		p.next()
		sel := p.expectIdentName()
		e = ast.NewSelect(e, sel, p.span(start))
	}
	if p.kind() == lexer.LBRACKET {
		p.parseTypeArgs() // type args on an extractor pattern are parsed, not retained
	}
	if p.kind() == lexer.LPAREN {
		p.next()
		argPats := parseCommaList(p, lexer.RPAREN, func() ast.Pattern { return p.pattern(seqOK) })
		p.accept(lexer.RPAREN)
		args := make([]ast.Expr, len(argPats))
		for i, ap := range argPats {
			args[i] = patternAsExpr(ap)
		}
		return ast.NewApply(e, args, p.span(start))
	}
	if id, ok := e.(*ast.Ident); ok {
		return id
	}
	return exprPatternMarker(e)
}

// exprPatternMarker wraps a non-Apply, non-Ident stable-id expression
// (e.g. `This.x`) so it still satisfies ast.Pattern: Select already
// implements patternNode, so this only matters for shapes that don't.
func exprPatternMarker(e ast.Expr) ast.Pattern {
	if pat, ok := e.(ast.Pattern); ok {
		return pat
	}
	return ast.NewBind("_", nil, e.Span())
}
