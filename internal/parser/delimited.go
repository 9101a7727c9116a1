package parser

import "github.com/veltra-lang/veltra/internal/lexer"

// delimitedConfig parameterizes parseDelimited over its separator/closing
// tokens and the callbacks invoked when an element or separator is missing.
type delimitedConfig struct {
	sep              lexer.TokenKind
	close            lexer.TokenKind
	allowTrailingSep bool
}

// parseDelimited drives every comma-separated list in the grammar: type
// parameter clauses, argument lists, pattern lists, import selectors,
// parameter clauses. parseOne parses a single element; cfg controls the
// separator/closing token. The closing token is NOT consumed.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseOne func() T) []T {
	var out []T
	if p.kind() == cfg.close {
		return out
	}
	for {
		out = append(out, parseOne())
		p.newLineOptWhenFollowedBy(cfg.sep)
		if p.kind() != cfg.sep {
			break
		}
		p.next()
		p.newLineOpt()
		if cfg.allowTrailingSep && p.kind() == cfg.close {
			break
		}
	}
	return out
}

// parseCommaList is parseDelimited specialized for the overwhelmingly
// common comma/paren-or-bracket case.
func parseCommaList[T any](p *Parser, close lexer.TokenKind, parseOne func() T) []T {
	return parseDelimited(p, delimitedConfig{sep: lexer.COMMA, close: close}, parseOne)
}
