// Package diag defines the shared diagnostic model used by the lexer and
// parser to surface errors, warnings, and deprecation notices without
// aborting the parse in progress. Offset deduplication of error cascades is
// the parser's own obligation; this package only carries
// and formats whatever it is given.
package diag

import "fmt"

// Stage identifies which phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityNote       Severity = "note"
	SeverityDeprecated Severity = "deprecation"
)

// LabeledSpan pairs a span with an optional label, in the style of
// rustc-flavoured diagnostics: a primary span marks the offending token,
// secondary spans point at related context (e.g. the opening delimiter a
// close-delimiter error is complaining about).
type LabeledSpan struct {
	Span  Span
	Label string
	Style string // "primary" or "secondary"
}

// Code is a stable identifier for a diagnostic, independent of its message text.
type Code string

const (
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlock  Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalChar        Code = "LEXER_ILLEGAL_CHARACTER"

	CodeSyntaxError        Code = "PARSER_SYNTAX_ERROR"
	CodeIncompleteInput    Code = "PARSER_INCOMPLETE_INPUT"
	CodeDeprecatedSyntax   Code = "PARSER_DEPRECATED_SYNTAX"
	CodeMixedAssociativity Code = "PARSER_MIXED_ASSOCIATIVITY"
	CodeBadPattern         Code = "PARSER_BAD_PATTERN"
	CodePlaceholderLeak    Code = "PARSER_UNBOUND_PLACEHOLDER"
)

// Span represents a location in source code: an offset pair plus the
// line/column derived for its start.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable "file:line:col" representation.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid reports whether the span carries usable position information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a single compiler message surfaced to the caller.
type Diagnostic struct {
	Stage        Stage
	Severity     Severity
	Code         Code
	Message      string
	Span         Span
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{Span: span, Label: label, Style: style})
	return d
}

// WithNote returns a copy of the diagnostic with an additional note attached.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp attaches help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(Diagnostic)
}

// Collector is the default in-memory Sink: it appends, preserving call
// order so callers can assert on diagnostic ordering.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d to the collector.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic has error severity.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
