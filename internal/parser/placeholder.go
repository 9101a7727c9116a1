package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
)

// placeholderFrame is one boundary-scoped collection of synthetic
// parameters accumulated while scanning `_` inside an expression or type
// boundary. Parameters are appended in source order, which is the order
// the Function/ExistentialTypeTree constructor binds them in.
type placeholderFrame struct {
	params    []*ast.ValDef
	typeNames []*ast.TypeParam
}

// pushExprBoundary opens a new expression-placeholder scope. Every
// top-level Expr, each block statement, and each argument is a boundary.
func (p *Parser) pushExprBoundary() {
	p.exprPlaceholders = append(p.exprPlaceholders, placeholderFrame{})
}

func (p *Parser) popExprBoundary() placeholderFrame {
	n := len(p.exprPlaceholders) - 1
	f := p.exprPlaceholders[n]
	p.exprPlaceholders = p.exprPlaceholders[:n]
	return f
}

// noteExprPlaceholder records a fresh synthetic parameter for `_` seen at
// the current expression boundary, optionally typed by an ascription. It
// returns the Ident the parser should substitute at the placeholder's
// source position.
func (p *Parser) noteExprPlaceholder(typ ast.TypeTree, span lexer.Span) *ast.Ident {
	name := p.fresh.TermName("x")
	if typ == nil {
		typ = ast.NewEmptyTree(span)
	}
	param := ast.MkSyntheticParam(name, typ, span)
	n := len(p.exprPlaceholders)
	if n == 0 {
		p.pushExprBoundary()
		n = 1
	}
	p.exprPlaceholders[n-1].params = append(p.exprPlaceholders[n-1].params, param)
	return ast.NewIdent(name, span)
}

// wrapExprBoundary closes the current expression-placeholder boundary:
// if any parameters were collected and body is not exactly an Ident
// referring to the sole collected parameter, body is wrapped as
// Function(params, body). The sole-Ident case means the placeholder is
// still "bare" (e.g. the `_` of `f(_)`) and its parameter propagates to
// the enclosing boundary, which will do the wrapping; with no enclosing
// boundary left the placeholder has escaped and is an error.
func (p *Parser) wrapExprBoundary(body ast.Expr, span lexer.Span) ast.Expr {
	frame := p.popExprBoundary()
	if len(frame.params) == 0 {
		return body
	}
	if id, ok := body.(*ast.Ident); ok && len(frame.params) == 1 && id.Name == frame.params[0].Name {
		if n := len(p.exprPlaceholders); n > 0 {
			p.exprPlaceholders[n-1].params = append(p.exprPlaceholders[n-1].params, frame.params...)
		} else {
			p.syntaxError(span.Start, "unbound placeholder parameter")
		}
		return body
	}
	return ast.NewFunction(frame.params, body, span)
}

// wrapInterpBoundary closes the distinguished boundary around a string
// interpolation splice: bare placeholder parameters are typed as the top
// type and always wrapped here, never propagated out of the string.
func (p *Parser) wrapInterpBoundary(body ast.Expr, span lexer.Span) ast.Expr {
	frame := p.popExprBoundary()
	if len(frame.params) == 0 {
		return body
	}
	for _, param := range frame.params {
		if ast.IsEmpty(param.Type) {
			param.Type = ast.NewIdent("Any", param.Span())
		}
	}
	return ast.NewFunction(frame.params, body, span)
}

// pushTypeBoundary opens a new type-placeholder scope.
func (p *Parser) pushTypeBoundary() {
	p.typePlaceholders = append(p.typePlaceholders, placeholderFrame{})
}

func (p *Parser) popTypeBoundary() placeholderFrame {
	n := len(p.typePlaceholders) - 1
	f := p.typePlaceholders[n]
	p.typePlaceholders = p.typePlaceholders[:n]
	return f
}

// noteTypePlaceholder records a synthetic existential type parameter for a
// `_` seen in type position, with optional bounds. Every parseSimpleType
// call pushes its own boundary before dispatching here, so the top frame
// always exists.
func (p *Parser) noteTypePlaceholder(bounds *ast.TypeBoundsTree, span lexer.Span) *ast.Ident {
	name := p.fresh.TypeName("_")
	tp := ast.NewTypeParam(name, span)
	tp.Bounds = bounds
	n := len(p.typePlaceholders)
	p.typePlaceholders[n-1].typeNames = append(p.typePlaceholders[n-1].typeNames, tp)
	return ast.NewIdent(name, span)
}

// wrapTypeBoundary closes the current type-placeholder boundary. The
// collected parameters are wrapped into an ExistentialTypeTree only if
// result is an AppliedTypeTree; otherwise they propagate to the enclosing
// boundary (pushed back onto the parent frame, if one exists).
func (p *Parser) wrapTypeBoundary(result ast.TypeTree, span lexer.Span) ast.TypeTree {
	frame := p.popTypeBoundary()
	if len(frame.typeNames) == 0 {
		return result
	}
	if _, ok := result.(*ast.AppliedTypeTree); ok {
		decls := make([]ast.Decl, len(frame.typeNames))
		for i, tp := range frame.typeNames {
			decls[i] = ast.NewTypeDef(0, tp.Name, nil, tp.Bounds, nil, tp.Span())
		}
		return ast.NewExistentialTypeTree(result, decls, span)
	}
	if n := len(p.typePlaceholders); n > 0 {
		p.typePlaceholders[n-1].typeNames = append(p.typePlaceholders[n-1].typeNames, frame.typeNames...)
	}
	return result
}

// checkNoEscapedPlaceholders reports a syntax error for any placeholder
// parameter still pending at a true top-level boundary (compilation unit,
// template body, refinement body, block) and clears it.
func (p *Parser) checkNoEscapedPlaceholders(span lexer.Span) {
	if n := len(p.exprPlaceholders); n > 0 && len(p.exprPlaceholders[n-1].params) > 0 {
		p.syntaxError(span.Start, "unbound placeholder parameter")
		p.exprPlaceholders[n-1].params = nil
	}
	if n := len(p.typePlaceholders); n > 0 && len(p.typePlaceholders[n-1].typeNames) > 0 {
		p.syntaxError(span.Start, "unbound placeholder parameter")
		p.typePlaceholders[n-1].typeNames = nil
	}
}
