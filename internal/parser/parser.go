// Package parser implements the hand-written recursive-descent core: a
// single Parser struct threading a scanner cursor, the shared operator-
// precedence stack, placeholder-tracking frames, and error-recovery state,
// built up across single-purpose files (types.go, patterns.go,
// expressions.go, definitions.go, ...).
package parser

import (
	"github.com/veltra-lang/veltra/internal/ast"
	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/lexer"
	"github.com/veltra-lang/veltra/internal/names"
	"go.uber.org/zap"
)

// Parser holds all mutable state for one compilation-unit parse. A parse
// is synchronous and single-threaded; no field here is ever shared across
// goroutines.
type Parser struct {
	sc       *lexer.Scanner
	sink     diag.Sink
	filename string

	fresh names.FreshNames

	opStack []opInfo

	exprPlaceholders []placeholderFrame
	typePlaceholders []placeholderFrame

	inFunReturnType    bool
	classContextBounds []ast.TypeTree
	lastErrorOffset    int
	inRootPackage      bool
	currentPackage     string

	assumedClosingParens map[lexer.TokenKind]int

	speculating int

	lexerErrsPulled int

	trace *zap.Logger

	opts options
}

type options struct {
	filename       string
	futureFlag     bool
	trace          *zap.Logger
	methodInfer    bool
	virtualClasses bool
}

// Option configures a Parser at construction time.
type Option func(*options)

// WithFilename sets the filename attached to every span and diagnostic.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithFutureFlag enables deprecation warnings for view bounds, procedure
// syntax, and `val` in for-comprehensions.
func WithFutureFlag() Option {
	return func(o *options) { o.futureFlag = true }
}

// WithMethodInfer allows omitting parameter type annotations (legacy
// permissive mode, `YmethodInfer`).
func WithMethodInfer() Option {
	return func(o *options) { o.methodInfer = true }
}

// WithVirtualClasses permits `trait T <:...` to mark a trait deferred.
func WithVirtualClasses() Option {
	return func(o *options) { o.virtualClasses = true }
}

// WithTraceLogger attaches an optional structured logger the parser emits
// debug-level trace records to at a handful of well-known points (entry
// points, recovery skips). It never influences the returned tree or the
// diagnostic stream; omitting it (the default) costs nothing.
func WithTraceLogger(logger *zap.Logger) Option {
	return func(o *options) { o.trace = logger }
}

// New constructs a Parser over src, ready to call Parse/ParseStats/
// ParseStatsOrPackages.
func New(src string, sink diag.Sink, opts ...Option) *Parser {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := &Parser{
		sc:                   lexer.NewScanner(o.filename, src),
		sink:                 sink,
		filename:             o.filename,
		lastErrorOffset:      -1,
		assumedClosingParens: make(map[lexer.TokenKind]int),
		trace:                o.trace,
		opts:                 o,
	}
	return p
}

// tracef emits a debug-level trace record when a trace logger was
// configured via WithTraceLogger; a no-op otherwise.
func (p *Parser) tracef(msg string, fields ...zap.Field) {
	if p.trace != nil {
		p.trace.Debug(msg, fields...)
	}
}

// --- token-level helpers ---

func (p *Parser) tok() lexer.Token      { return p.sc.Tok }
func (p *Parser) kind() lexer.TokenKind { return p.sc.Tok.Kind }
func (p *Parser) offset() int           { return p.sc.Tok.Span.Start }

func (p *Parser) next() lexer.Token { return p.sc.Next() }

func (p *Parser) peek() lexer.Token { return p.sc.Peek() }

func (p *Parser) span(start int) lexer.Span {
	return lexer.Span{
		Filename: p.filename,
		Line:     p.sc.Prev.Span.Line,
		Column:   p.sc.Prev.Span.Column,
		Start:    start,
		End:      p.sc.Prev.Span.End,
	}
}

// skipStatSeps consumes any run of NEWLINE/NEWLINES/SEMI tokens.
func (p *Parser) skipStatSeps() {
	for p.tok().IsStatSep() {
		p.next()
	}
}

// newLineOpt consumes a single NEWLINE/NEWLINES token, if present.
func (p *Parser) newLineOpt() {
	if p.kind() == lexer.NEWLINE || p.kind() == lexer.NEWLINES {
		p.next()
	}
}

// newLineOptWhenFollowedBy consumes a pending newline only if the token
// after it matches kind — used where a newline before `{` continues a
// statement but a newline before anything else ends it.
func (p *Parser) newLineOptWhenFollowedBy(kind lexer.TokenKind) {
	if (p.kind() == lexer.NEWLINE || p.kind() == lexer.NEWLINES) && p.peek().Kind == kind {
		p.next()
	}
}

// newLineOptWhenFollowing consumes a pending newline only if the following
// token satisfies predicate p2.
func (p *Parser) newLineOptWhenFollowing(pred func(lexer.Token) bool) {
	if (p.kind() == lexer.NEWLINE || p.kind() == lexer.NEWLINES) && pred(p.peek()) {
		p.next()
	}
}

// --- lookahead/speculation ---

// lookingAhead runs f speculatively and unconditionally restores the
// scanner afterward, returning f's result. Diagnostics are suppressed for
// the duration: a speculative sub-parse that fails is not an error, the
// real parse of the same tokens will report it.
func (p *Parser) lookingAhead(f func() bool) bool {
	snap := p.sc.Snapshot()
	p.speculating++
	result := f()
	p.speculating--
	p.sc.Restore(snap)
	return result
}

// peekingAhead runs f speculatively; the scanner is restored if f panics
// (the panic is then rethrown) or if f returns a nil/empty result. Unlike
// lookingAhead, a successful speculative parse keeps its tokens consumed
// and its result, so diagnostics stay live.
func (p *Parser) peekingAhead(f func() ast.Node) (result ast.Node) {
	snap := p.sc.Snapshot()
	defer func() {
		if r := recover(); r != nil {
			p.sc.Restore(snap)
			panic(r)
		}
	}()
	result = f()
	if ast.IsEmpty(result) {
		p.sc.Restore(snap)
	}
	return result
}

// pullLexerErrors forwards any scanner errors recorded since the last pull
// to the diagnostic sink, so lexical and syntax errors share one ordered
// stream.
func (p *Parser) pullLexerErrors() {
	all := p.sc.Errors()
	for _, e := range all[p.lexerErrsPulled:] {
		p.report(e.ToDiagnostic())
	}
	p.lexerErrsPulled = len(all)
}
