package lexer

import "github.com/veltra-lang/veltra/internal/diag"

// ErrKind classifies a lexical error.
type ErrKind int

const (
	ErrUnterminatedString ErrKind = iota
	ErrUnterminatedChar
	ErrUnterminatedBlockComment
	ErrIllegalCharacter
	ErrMalformedNumber
)

// LexerError is a single lexical error produced while scanning. It carries
// enough to be turned into a diag.Diagnostic without the lexer importing
// the diag package's formatting concerns.
type LexerError struct {
	Kind    ErrKind
	Message string
	Span    Span
}

func (e LexerError) Error() string { return e.Message }

var lexerErrCodes = map[ErrKind]diag.Code{
	ErrUnterminatedString:       diag.CodeLexerUnterminatedString,
	ErrUnterminatedChar:         diag.CodeLexerUnterminatedString,
	ErrUnterminatedBlockComment: diag.CodeLexerUnterminatedBlock,
	ErrIllegalCharacter:         diag.CodeLexerIllegalChar,
	ErrMalformedNumber:          diag.CodeLexerIllegalChar,
}

// ToDiagnostic converts the lexer-local error into the shared diagnostic
// model consumed by the formatter and the parser's diagnostic sink.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     lexerErrCodes[e.Kind],
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}
