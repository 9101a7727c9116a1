// Package lexer implements the token model and scanner cursor the parser
// core pulls from: a single-lookahead cursor with peek-and-restore
// support.
package lexer

// TokenKind identifies the lexical category of a Token. Operators are not
// given individual kinds: any run of operator characters (`+`, `::`, `|>`,
// ...) is lexed as a plain IDENT whose Name carries the spelling, exactly as
// real identifiers are — this is what lets the parser derive precedence and
// associativity from spelling instead of from the token
// kind. A handful of operator-character spellings are reserved punctuation
// (`=`, `=>`, `<-`, `<:`, `>:`, `<%`, `#`, `@`, `:`) and get their own kind
// because the grammar, not the operator-precedence engine, gives them
// meaning.
type TokenKind int

const (
	ILLEGAL TokenKind = iota
	EOF

	IDENT // regular or backquoted identifier, incl. operator identifiers

	// Literals
	INTLIT
	LONGLIT
	FLOATLIT
	DOUBLELIT
	CHARLIT
	STRINGLIT
	SYMBOLLIT
	TRUELIT
	FALSELIT
	NULLLIT
	INTERPOLATIONID // prefix of a string interpolation, e.g. `s` in s"..."
	STRINGPART      // a non-final literal chunk of an interpolated string; the final chunk is a STRINGLIT

	// Keywords
	IF
	ELSE
	WHILE
	DO
	FOR
	YIELD
	TRY
	CATCH
	FINALLY
	THROW
	RETURN
	NEW
	MATCH
	CASE
	THIS
	SUPER
	IMPORT
	PACKAGE
	OBJECT
	CLASS
	TRAIT
	VAL
	VAR
	DEF
	TYPE
	EXTENDS
	IMPLICIT
	LAZY
	ABSTRACT
	FINAL
	SEALED
	PRIVATE
	PROTECTED
	OVERRIDE
	WITH
	FORSOME
	MACRO

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	DOT
	COLON
	EQUALS
	ARROW     // =>
	LARROW    // <-
	SUBTYPE   // <:
	SUPERTYPE // >:
	VIEWBOUND // <%
	HASH      // #
	AT        // @
	USCORE    // _

	// Statement separators
	NEWLINE
	NEWLINES

	// Embedded markup
	XMLSTART
)

var tokenKindNames = map[TokenKind]string{
	ILLEGAL: "illegal token", EOF: "end of input", IDENT: "identifier",
	INTLIT: "integer literal", LONGLIT: "long literal", FLOATLIT: "float literal",
	DOUBLELIT: "double literal", CHARLIT: "character literal", STRINGLIT: "string literal",
	SYMBOLLIT: "symbol literal", TRUELIT: "'true'", FALSELIT: "'false'", NULLLIT: "'null'",
	INTERPOLATIONID: "interpolation id", STRINGPART: "string part",
	IF: "'if'", ELSE: "'else'", WHILE: "'while'", DO: "'do'", FOR: "'for'", YIELD: "'yield'",
	TRY: "'try'", CATCH: "'catch'", FINALLY: "'finally'", THROW: "'throw'", RETURN: "'return'",
	NEW: "'new'", MATCH: "'match'", CASE: "'case'", THIS: "'this'", SUPER: "'super'",
	IMPORT: "'import'", PACKAGE: "'package'", OBJECT: "'object'", CLASS: "'class'",
	TRAIT: "'trait'", VAL: "'val'", VAR: "'var'", DEF: "'def'", TYPE: "'type'",
	EXTENDS: "'extends'", IMPLICIT: "'implicit'", LAZY: "'lazy'", ABSTRACT: "'abstract'",
	FINAL: "'final'", SEALED: "'sealed'", PRIVATE: "'private'", PROTECTED: "'protected'",
	OVERRIDE: "'override'", WITH: "'with'", FORSOME: "'forSome'", MACRO: "'macro'",
	LPAREN: "'('", RPAREN: "')'", LBRACE: "'{'", RBRACE: "'}'", LBRACKET: "'['", RBRACKET: "']'",
	COMMA: "','", SEMI: "';'", DOT: "'.'", COLON: "':'", EQUALS: "'='", ARROW: "'=>'",
	LARROW: "'<-'", SUBTYPE: "'<:'", SUPERTYPE: "'>:'", VIEWBOUND: "'<%'", HASH: "'#'",
	AT: "'@'", USCORE: "'_'", NEWLINE: "newline", NEWLINES: "blank line", XMLSTART: "'<'",
}

// String returns a human-readable description of the kind, suitable for
// "expected X but found Y"-style diagnostics.
func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "token"
}

var keywords = map[string]TokenKind{
	"if": IF, "else": ELSE, "while": WHILE, "do": DO, "for": FOR, "yield": YIELD,
	"try": TRY, "catch": CATCH, "finally": FINALLY, "throw": THROW, "return": RETURN,
	"new": NEW, "match": MATCH, "case": CASE, "this": THIS, "super": SUPER,
	"import": IMPORT, "package": PACKAGE, "object": OBJECT, "class": CLASS,
	"trait": TRAIT, "val": VAL, "var": VAR, "def": DEF, "type": TYPE,
	"extends": EXTENDS, "implicit": IMPLICIT, "lazy": LAZY, "abstract": ABSTRACT,
	"final": FINAL, "sealed": SEALED, "private": PRIVATE, "protected": PROTECTED,
	"override": OVERRIDE, "with": WITH, "forSome": FORSOME, "macro": MACRO,
	"true": TRUELIT, "false": FALSELIT, "null": NULLLIT,
}

// reservedOps maps the exact spelling of a maximal operator-character run
// to a dedicated punctuation kind. Any other run of operator characters is
// a plain user-definable operator identifier.
var reservedOps = map[string]TokenKind{
	"=": EQUALS, "=>": ARROW, "<-": LARROW, "<:": SUBTYPE, ">:": SUPERTYPE,
	"<%": VIEWBOUND, "#": HASH, "@": AT, ":": COLON,
}

// LookupIdent classifies name as a keyword kind or plain IDENT.
func LookupIdent(name string) TokenKind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return IDENT
}

// Span is a half-open source offset range plus the line/column the scanner
// derived for its start.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// Token is a single lexical token. Payload fields are only meaningful for
// the kinds that use them: Name for IDENT/keywords, Value for literals and
// string parts.
type Token struct {
	Kind  TokenKind
	Name  string // interned spelling: identifier/operator name or keyword text
	Value string // decoded literal value (string/char contents, numeral text)
	Span  Span

	Backquoted bool // identifier was written in `backquotes`
}

// CanEndStat reports whether a token may be the last token of a statement,
// used by the scanner's newline-insertion heuristic.
func (t Token) CanEndStat() bool {
	switch t.Kind {
	case IDENT, INTLIT, LONGLIT, FLOATLIT, DOUBLELIT, CHARLIT, STRINGLIT, SYMBOLLIT,
		TRUELIT, FALSELIT, NULLLIT, THIS, RETURN, TYPE,
		RPAREN, RBRACKET, RBRACE, USCORE, STRINGPART:
		return true
	default:
		return false
	}
}

// CanStartStat reports whether a token may begin a new statement; used
// alongside CanEndStat to decide whether a physical newline should be
// promoted to a NEWLINE/NEWLINES separator token.
func (t Token) CanStartStat() bool {
	switch t.Kind {
	case RBRACE, EOF, COMMA, SEMI, DOT, COLON, EQUALS, ARROW, LARROW,
		SUBTYPE, SUPERTYPE, VIEWBOUND, HASH,
		EXTENDS, WITH, YIELD, CATCH, FINALLY, MATCH, FORSOME, ELSE:
		return false
	default:
		return true
	}
}

// IsStatSep reports whether t is one of NEWLINE, NEWLINES, SEMI — any of
// which terminates a statement in a block or template body.
func (t Token) IsStatSep() bool {
	return t.Kind == NEWLINE || t.Kind == NEWLINES || t.Kind == SEMI
}
