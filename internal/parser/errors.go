package parser

import (
	"fmt"

	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/lexer"
	"go.uber.org/zap"
)

// report forwards a diagnostic to the sink, applying the parser's own
// cascade-deduplication obligation: further errors at
// offsets no greater than lastErrorOffset are dropped, except warnings and
// notes, which are never cascade-suppressed.
func (p *Parser) report(d diag.Diagnostic) {
	if p.speculating > 0 {
		return
	}
	if d.Severity == diag.SeverityError {
		if d.Span.Start <= p.lastErrorOffset {
			return
		}
		p.lastErrorOffset = d.Span.Start
	}
	if p.sink != nil {
		p.sink.Report(d)
	}
}

func (p *Parser) spanAt(offset int) lexer.Span {
	return lexer.Span{Filename: p.filename, Line: p.tok().Span.Line, Column: p.tok().Span.Column, Start: offset, End: offset}
}

// syntaxError reports a syntax error at the given offset.
func (p *Parser) syntaxError(offset int, msg string) {
	p.report(diag.Diagnostic{
		Stage: diag.StageParser, Severity: diag.SeverityError, Code: diag.CodeSyntaxError,
		Message: msg, Span: diag.Span{Filename: p.filename, Line: p.tok().Span.Line, Column: p.tok().Span.Column, Start: offset, End: offset},
	})
}

// warning reports a non-fatal diagnostic that never affects the tree.
func (p *Parser) warning(offset int, msg string) {
	p.report(diag.Diagnostic{
		Stage: diag.StageParser, Severity: diag.SeverityWarning, Code: diag.CodeSyntaxError,
		Message: msg, Span: diag.Span{Filename: p.filename, Start: offset, End: offset},
	})
}

// deprecationWarning reports deprecated-syntax usage (procedure syntax,
// view bounds, `val` generators in for-comprehensions).
func (p *Parser) deprecationWarning(offset int, msg string) {
	p.report(diag.Diagnostic{
		Stage: diag.StageParser, Severity: diag.SeverityDeprecated, Code: diag.CodeDeprecatedSyntax,
		Message: msg, Span: diag.Span{Filename: p.filename, Start: offset, End: offset},
	})
}

// incompleteInputError reports a syntax error found at EOF, so interactive
// drivers can distinguish truncated input from broken input.
func (p *Parser) incompleteInputError(msg string) {
	p.report(diag.Diagnostic{
		Stage: diag.StageParser, Severity: diag.SeverityError, Code: diag.CodeIncompleteInput,
		Message: msg, Span: diag.Span{Filename: p.filename, Start: p.offset(), End: p.offset()},
	})
}

// syntaxErrorOrIncomplete reports an "incomplete input" diagnostic when the
// current token is EOF, a plain syntax error otherwise.
func (p *Parser) syntaxErrorOrIncomplete(msg string) {
	if p.kind() == lexer.EOF {
		p.incompleteInputError(msg)
	} else {
		p.syntaxError(p.offset(), msg)
	}
}

// errorPattern reports a syntax error and returns a placeholder wildcard
// pattern so pattern parsing can continue.
func (p *Parser) errorPattern(msg string) ast.Pattern {
	p.syntaxErrorOrIncomplete(msg)
	return ast.NewBind("_", nil, p.spanAt(p.offset()))
}

func (p *Parser) errorTree(msg string) ast.Expr {
	p.syntaxErrorOrIncomplete(msg)
	return ast.NewEmptyTree(p.spanAt(p.offset()))
}

func (p *Parser) errorTypeTree(msg string) ast.TypeTree {
	p.syntaxErrorOrIncomplete(msg)
	return ast.NewEmptyTree(p.spanAt(p.offset()))
}

// accept consumes the expected token kind, or reports a syntax error and
// performs limited recovery: while the closer-minus-opener balance (plus
// already-assumed closers) for a missing close delimiter is negative, the
// delimiter is "assumed" — the counter is bumped and no token is skipped;
// otherwise the scanner is advanced to the next occurrence of kind or to a
// statement separator at bracket depth zero.
func (p *Parser) accept(kind lexer.TokenKind) int {
	offset := p.offset()
	if p.kind() == kind {
		p.next()
		return offset
	}
	p.reportExpected(kind)
	if isCloser(kind) && p.sc.ParenBalance(kind)+p.assumedClosingParens[kind] < 0 {
		p.assumedClosingParens[kind]++
		return offset
	}
	p.skipToRecovery(kind)
	return offset
}

func isCloser(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
		return true
	default:
		return false
	}
}

func (p *Parser) reportExpected(kind lexer.TokenKind) {
	p.syntaxErrorOrIncomplete(fmt.Sprintf("%s expected but %s found", kind.String(), p.kind().String()))
}

// skipToRecovery advances the scanner until it finds kind, a statement
// separator at bracket/paren depth zero, or EOF.
func (p *Parser) skipToRecovery(kind lexer.TokenKind) {
	p.tracef("recovery: skip", zap.Int("offset", p.offset()), zap.String("expected", kind.String()))
	baseParen := p.sc.ParenBalance(lexer.RPAREN)
	baseBracket := p.sc.ParenBalance(lexer.RBRACKET)
	baseBrace := p.sc.ParenBalance(lexer.RBRACE)
	for {
		if p.kind() == lexer.EOF {
			return
		}
		if p.kind() == kind {
			p.next()
			return
		}
		if p.tok().IsStatSep() &&
			p.sc.ParenBalance(lexer.RPAREN) == baseParen &&
			p.sc.ParenBalance(lexer.RBRACKET) == baseBracket &&
			p.sc.ParenBalance(lexer.RBRACE) == baseBrace {
			return
		}
		p.next()
	}
}
