package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
)

// parseType parses `Type ::= InfixType (=> Type | forSome Refinement)?`.
func (p *Parser) parseType() ast.TypeTree {
	start := p.offset()
	var t ast.TypeTree
	if p.kind() == lexer.LPAREN {
		fn, isFunction, ok := p.tryParseFunctionOrTupleType(start)
		switch {
		case ok && isFunction:
			return fn
		case ok:
			// A tuple continues as the head of an ordinary infix type,
			// e.g. `(A, B) Pair C`.
			t = p.parseInfixTypeRest(fn)
		default:
			t = p.parseInfixType()
		}
	} else {
		t = p.parseInfixType()
	}
	switch p.kind() {
	case lexer.ARROW:
		p.next()
		result := p.parseType()
		return ast.NewFunctionTypeTree(false, false, []ast.TypeTree{t}, result, p.span(start))
	case lexer.FORSOME:
		p.next()
		refinement := p.parseRefinementBody()
		decls := make([]ast.Decl, 0, len(refinement))
		for _, stat := range refinement {
			if d, ok := stat.(ast.Decl); ok {
				decls = append(decls, d)
			}
		}
		return ast.NewExistentialTypeTree(t, decls, p.span(start))
	default:
		return t
	}
}

// tryParseFunctionOrTupleType disambiguates a leading `(` into a tuple
// type or a function type: parse the parenthesized list, then check for
// `=>`. The second result distinguishes the two; ok=false means the parse
// was rolled back entirely (only possible for a bare `()` with no arrow).
func (p *Parser) tryParseFunctionOrTupleType(start int) (t ast.TypeTree, isFunction, ok bool) {
	snap := p.sc.Snapshot()
	p.next() // (
	if p.kind() == lexer.RPAREN {
		p.next()
		if p.kind() == lexer.ARROW {
			p.next()
			result := p.parseType()
			return ast.NewFunctionTypeTree(false, false, nil, result, p.span(start)), true, true
		}
		p.sc.Restore(snap)
		return nil, false, false
	}
	savedInFunReturnType := p.inFunReturnType
	p.inFunReturnType = false
	elems := parseCommaList(p, lexer.RPAREN, func() ast.TypeTree { return p.parseFunctionArgType() })
	p.inFunReturnType = savedInFunReturnType
	p.accept(lexer.RPAREN)
	if p.kind() == lexer.ARROW {
		p.next()
		result := p.parseType()
		return ast.NewFunctionTypeTree(false, false, elems, result, p.span(start)), true, true
	}
	return ast.NewTupleTypeTree(elems, p.span(start)), false, true
}

// parseFunctionArgType parses one parameter-position type, permitting the
// by-name (`=> T`) and repeated (`T*`) forms that are rejected elsewhere.
func (p *Parser) parseFunctionArgType() ast.TypeTree {
	start := p.offset()
	if p.kind() == lexer.ARROW {
		p.next()
		t := p.parseType()
		return ast.NewFunctionTypeTree(true, false, nil, t, p.span(start))
	}
	t := p.parseType()
	if p.kind() == lexer.IDENT && p.tok().Name == "*" {
		p.next()
		return ast.NewFunctionTypeTree(false, true, nil, t, p.span(start))
	}
	return t
}

// parseInfixType parses `InfixType ::= CompoundType (id [nl] CompoundType)*`,
// sharing the precedence engine with expressions/patterns over type
// operator identifiers.
func (p *Parser) parseInfixType() ast.TypeTree {
	return p.parseInfixTypeRest(p.parseCompoundType())
}

// parseInfixTypeRest continues the infix-type loop with its head already
// parsed (either a compound type or a parenthesised tuple).
func (p *Parser) parseInfixTypeRest(head ast.TypeTree) ast.TypeTree {
	base := p.opMarkHere()
	top := head
	// `*` is not an infix type operator: it marks a repeated parameter type
	// and is left for parseFunctionArgType to consume.
	for p.kind() == lexer.IDENT && !p.tok().Backquoted && p.tok().Name != "*" {
		op := p.tok().Name
		opOffset := p.offset()
		top = p.reduceStack(base, top, op, mkBinopType).(ast.TypeTree)
		p.next()
		p.newLineOptWhenFollowing(func(t lexer.Token) bool { return true })
		rhs := p.parseCompoundType()
		p.pushOp(top, op, nil, opOffset)
		top = rhs
	}
	return p.finishReduceAll(base, top, mkBinopType).(ast.TypeTree)
}

func mkBinopType(lhs ast.Node, op string, rhs ast.Node, targs []ast.TypeTree, offset int) ast.Node {
	lhsT := lhs.(ast.TypeTree)
	rhsT := rhs.(ast.TypeTree)
	sp := mergeSpan(lhsT.Span(), rhsT.Span())
	applied := ast.NewIdent(op, sp)
	return ast.NewAppliedTypeTree(applied, []ast.TypeTree{lhsT, rhsT}, sp)
}

// parseCompoundType parses `AnnotType (with AnnotType)* Refinement?`. A
// `{` directly after a method's return type is that method's body, not a
// refinement, so refinements are suppressed while inFunReturnType is set
// (wrap the refined type in parentheses to get one there).
func (p *Parser) parseCompoundType() ast.TypeTree {
	start := p.offset()
	parents := []ast.TypeTree{p.parseAnnotType()}
	for p.kind() == lexer.WITH {
		p.next()
		parents = append(parents, p.parseAnnotType())
	}
	if p.kind() == lexer.LBRACE && !p.inFunReturnType {
		refinement := p.parseRefinementBody()
		return ast.NewCompoundTypeTree(parents, refinement, p.span(start))
	}
	if len(parents) == 1 {
		return parents[0]
	}
	return ast.NewCompoundTypeTree(parents, nil, p.span(start))
}

func (p *Parser) parseRefinementBody() []ast.Stmt {
	p.accept(lexer.LBRACE)
	p.newLineOpt()
	var stats []ast.Stmt
	for p.kind() != lexer.RBRACE && p.kind() != lexer.EOF {
		stats = append(stats, p.parseRefineStat())
		if !p.tok().IsStatSep() && p.kind() != lexer.RBRACE {
			break
		}
		p.skipStatSeps()
	}
	p.accept(lexer.RBRACE)
	return stats
}

func (p *Parser) parseRefineStat() ast.Stmt {
	switch p.kind() {
	case lexer.VAL, lexer.VAR:
		return p.parsePatDefOrDefDefAsStmt()
	case lexer.DEF:
		return p.parsePatDefOrDefDefAsStmt()
	case lexer.TYPE:
		return p.parseTypeDefStmt()
	default:
		return p.errorDeclStmt("illegal start of declaration")
	}
}

// parseAnnotType parses `SimpleType Annotation*`.
func (p *Parser) parseAnnotType() ast.TypeTree {
	start := p.offset()
	t := p.parseSimpleType()
	for p.kind() == lexer.AT {
		p.next()
		annot := p.parseSimpleExpr(false)
		t = ast.NewAnnotatedTypeTree(t, annot, p.span(start))
	}
	return t
}

// parseSimpleType parses:
// ( Types ) | _ TypeBounds | Path.type | StableId | SimpleType TypeArgs | SimpleType # id
func (p *Parser) parseSimpleType() ast.TypeTree {
	start := p.offset()
	p.pushTypeBoundary()
	var t ast.TypeTree

	switch p.kind() {
	case lexer.LPAREN:
		p.next()
		savedInFunReturnType := p.inFunReturnType
		p.inFunReturnType = false
		elems := parseCommaList(p, lexer.RPAREN, func() ast.TypeTree { return p.parseType() })
		p.inFunReturnType = savedInFunReturnType
		p.accept(lexer.RPAREN)
		if len(elems) == 1 {
			t = elems[0]
		} else {
			t = ast.NewTupleTypeTree(elems, p.span(start))
		}
	case lexer.USCORE:
		p.next()
		bounds := p.parseOptTypeBounds(start)
		t = p.noteTypePlaceholder(bounds, p.span(start))
	default:
		t = p.parseStableIdAsType(start)
	}

	for {
		switch p.kind() {
		case lexer.DOT:
			if p.peek().Kind == lexer.TYPE {
				p.next()
				p.next()
				t = ast.NewSingletonTypeTree(typeTreeRef(t), p.span(start))
				continue
			}
			p.next()
			name := p.expectIdentName()
			t = ast.NewSelectFromTypeTree(t, name, p.span(start))
			continue
		case lexer.HASH:
			p.next()
			name := p.expectIdentName()
			t = ast.NewSelectFromTypeTree(t, name, p.span(start))
			continue
		case lexer.LBRACKET:
			args := p.parseTypeArgs()
			t = ast.NewAppliedTypeTree(t, args, p.span(start))
			continue
		}
		break
	}
	return p.wrapTypeBoundary(t, p.span(start))
}

func typeTreeRef(t ast.TypeTree) ast.Expr {
	if id, ok := t.(*ast.Ident); ok {
		return id
	}
	return ast.NewIdent("<type>", t.Span())
}

func (p *Parser) parseStableIdAsType(start int) ast.TypeTree {
	if p.kind() != lexer.IDENT {
		return p.errorTypeTree("identifier expected")
	}
	name := p.expectIdentName()
	var t ast.TypeTree = ast.NewIdent(name, p.span(start))
	for p.kind() == lexer.DOT && p.peek().Kind != lexer.TYPE {
		p.next()
		sel := p.expectIdentName()
		t = ast.NewSelectFromTypeTree(t, sel, p.span(start))
	}
	return t
}

func (p *Parser) parseTypeArgs() []ast.TypeTree {
	p.accept(lexer.LBRACKET)
	args := parseCommaList(p, lexer.RBRACKET, func() ast.TypeTree { return p.parseType() })
	p.accept(lexer.RBRACKET)
	return args
}

func (p *Parser) parseOptTypeBounds(start int) *ast.TypeBoundsTree {
	if p.kind() != lexer.SUPERTYPE && p.kind() != lexer.SUBTYPE {
		return nil
	}
	return p.parseTypeBounds(start)
}

func (p *Parser) parseTypeBounds(start int) *ast.TypeBoundsTree {
	var lo, hi ast.TypeTree = ast.NewEmptyTree(p.span(start)), ast.NewEmptyTree(p.span(start))
	if p.kind() == lexer.SUPERTYPE {
		p.next()
		lo = p.parseType()
	}
	if p.kind() == lexer.SUBTYPE {
		p.next()
		hi = p.parseType()
	}
	return ast.NewTypeBoundsTree(lo, hi, p.span(start))
}

func (p *Parser) expectIdentName() string {
	if p.kind() != lexer.IDENT {
		p.reportExpected(lexer.IDENT)
		return "<error>"
	}
	name := p.tok().Name
	p.next()
	return name
}

func (p *Parser) errorDeclStmt(msg string) ast.Stmt {
	p.syntaxErrorOrIncomplete(msg)
	return ast.NewEmptyTree(p.spanAt(p.offset()))
}

func (p *Parser) parseTypeDefStmt() ast.Stmt {
	return p.parseTypeDefBody(0)
}
