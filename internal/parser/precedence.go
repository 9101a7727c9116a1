package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/lexer"
	"github.com/veltra-lang/veltra/internal/names"
)

// opInfo is one entry of the operator-info stack shared between expression
// and pattern parsing.
type opInfo struct {
	lhs      ast.Node // Expr or Pattern depending on the parse in progress
	operator string
	typeArgs []ast.TypeTree
	offset   int
}

// opMark is a stack-depth snapshot marking where a sub-parse began, used
// as the `base` parameter of the reduction loop.
type opMark int

func (p *Parser) opMarkHere() opMark { return opMark(len(p.opStack)) }

func (p *Parser) pushOp(lhs ast.Node, operator string, typeArgs []ast.TypeTree, offset int) {
	p.opStack = append(p.opStack, opInfo{lhs, operator, typeArgs, offset})
}

func (p *Parser) popOp() opInfo {
	n := len(p.opStack) - 1
	top := p.opStack[n]
	p.opStack = p.opStack[:n]
	return top
}

// reduceStack implements the reduction loop: while the stack is
// deeper than base and the incoming operator binds no tighter than the
// top-of-stack entry (by precedence, or by left-associativity at equal
// precedence), pop and combine. mkBinop builds the combined tree for one
// reduction step (an Apply(Select(...)) for expressions, an infix-pattern
// Apply for patterns — selected by the caller, not by this function, which
// stays shape-agnostic).
func (p *Parser) reduceStack(base opMark, top ast.Node, nextOp string, mkBinop func(lhs ast.Node, op string, rhs ast.Node, targs []ast.TypeTree, offset int) ast.Node) ast.Node {
	nextPrec := names.Precedence(nextOp)
	nextRight := names.IsRightAssociative(nextOp)

	for opMark(len(p.opStack)) > base {
		topEntry := p.opStack[len(p.opStack)-1]
		topPrec := names.Precedence(topEntry.operator)
		topRight := names.IsRightAssociative(topEntry.operator)

		if topPrec == nextPrec && topRight != nextRight {
			p.syntaxError(topEntry.offset, "left- and right-associative operators with same precedence may not be mixed")
			p.popOp()
			top = mkBinop(topEntry.lhs, topEntry.operator, top, topEntry.typeArgs, topEntry.offset)
			continue
		}

		shouldReduce := nextPrec < topPrec || (!nextRight && nextPrec == topPrec)
		if !shouldReduce {
			break
		}
		p.popOp()
		top = mkBinop(topEntry.lhs, topEntry.operator, top, topEntry.typeArgs, topEntry.offset)
	}
	return top
}

// finishReduceAll fully reduces the stack down to base, for use when no
// further operator follows (end of postfix/pattern parsing).
func (p *Parser) finishReduceAll(base opMark, top ast.Node, mkBinop func(lhs ast.Node, op string, rhs ast.Node, targs []ast.TypeTree, offset int) ast.Node) ast.Node {
	for opMark(len(p.opStack)) > base {
		e := p.popOp()
		top = mkBinop(e.lhs, e.operator, top, e.typeArgs, e.offset)
	}
	return top
}

// mkBinopExpr builds `Apply(Select(lhs, op), [rhs])`, the expression-context
// reduction shape; type arguments on the operator wrap the selection in a
// TypeApply.
func mkBinopExpr(lhs ast.Node, op string, rhs ast.Node, targs []ast.TypeTree, offset int) ast.Node {
	lhsExpr := lhs.(ast.Expr)
	rhsExpr := rhs.(ast.Expr)
	sp := mergeSpan(lhsExpr.Span(), rhsExpr.Span())
	var fn ast.Expr = ast.NewSelect(lhsExpr, op, sp)
	if len(targs) > 0 {
		fn = ast.NewTypeApply(fn, targs, sp)
	}
	return ast.NewApply(fn, []ast.Expr{rhsExpr}, sp)
}

// mkBinopPattern builds the pattern-context reduction shape: an infix
// extractor application `op(lhs, rhs)` represented as `Apply(Ident(op), [lhs, rhs])`.
// Type-arguments on a pattern operator are a hard error.
func (p *Parser) mkBinopPattern(lhs ast.Node, op string, rhs ast.Node, targs []ast.TypeTree, offset int) ast.Node {
	if len(targs) > 0 {
		p.syntaxError(offset, "type application is not allowed on pattern operators")
	}
	lhsPat := lhs.(ast.Pattern)
	rhsPat := rhs.(ast.Pattern)
	sp := mergeSpan(lhsPat.Span(), rhsPat.Span())
	return ast.NewApply(ast.NewIdent(op, sp), []ast.Expr{patternAsExpr(lhsPat), patternAsExpr(rhsPat)}, sp)
}

// patternAsExpr is a narrow shim: the infix-pattern reduction shape stores
// its operands inside an Apply's Expr-typed Args slot since patterns are
// themselves already expression-shaped constructor calls in this AST
// (Apply/Select/Ident are shared between the two marker sets where the
// grammar allows it); non-shared pattern shapes fall back to a synthetic
// Ident naming the pattern kind so the tree stays well-formed.
func patternAsExpr(pat ast.Pattern) ast.Expr {
	if e, ok := pat.(ast.Expr); ok {
		return e
	}
	return ast.NewIdent("<pattern>", pat.Span())
}

// mergeSpan assumes monotonic growth: b starts no earlier than a ends,
// matching how the scanner and recursive-descent parser produce spans.
func mergeSpan(a, b lexer.Span) lexer.Span {
	return lexer.Span{Filename: a.Filename, Line: a.Line, Column: a.Column, Start: a.Start, End: b.End}
}
