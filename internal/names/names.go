// Package names implements the term- vs type-name distinction, reserved
// keyword-names, and precedence/associativity derivation from an
// operator's spelling. It has no dependency on the parser or scanner so
// both the expression and pattern precedence engines can share it.
package names

import "unicode"

// Precedence levels, lowest to highest: assignment family, then the
// ASCII operator-character classes roughly in the order real
// infix-operator-heavy languages in this tradition assign them, then
// alphanumeric operator names at the top.
const (
	PrecAssign         = iota
	PrecOr             // |
	PrecXor            // ^
	PrecAnd            // &
	PrecEquality       // == !=
	PrecRelational     // < > <= >=
	PrecColon          // ops starting with ':'; a trailing ':' affects associativity only
	PrecAdditive       // + -
	PrecMultiplicative // * / %
	PrecOther          // any other leading operator character
	PrecAlphanumeric   // operator identifiers starting with a letter, e.g. `eq`
)

// IsLower reports whether s begins with a lower-case letter, the rule
// deciding whether a pattern identifier is a variable binder.
func IsLower(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsLower(r) || r == '_'
}

// IsVarName reports whether name denotes a pattern variable binder rather
// than a stable-id reference: lower-case initial, or a wildcard.
func IsVarName(name string) bool {
	return name == "_" || IsLower(name)
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"<<=": true, ">>=": true, "&=": true, "^=": true, "|=": true,
}

// Precedence derives an operator's binding strength purely from its
// spelling. Total over non-empty names.
func Precedence(op string) int {
	if op == "" {
		return PrecOther
	}
	if assignOps[op] {
		return PrecAssign
	}
	first := rune(op[0])
	if unicode.IsLetter(first) || first == '_' || first == '$' {
		return PrecAlphanumeric
	}
	switch first {
	case '|':
		return PrecOr
	case '^':
		return PrecXor
	case '&':
		return PrecAnd
	case '=', '!':
		return PrecEquality
	case '<', '>':
		return PrecRelational
	case ':':
		return PrecColon
	case '+', '-':
		return PrecAdditive
	case '*', '/', '%':
		return PrecMultiplicative
	default:
		return PrecOther
	}
}

// IsRightAssociative reports whether op associates right-to-left: exactly
// the operators whose spelling ends in ':'.
func IsRightAssociative(op string) bool {
	return len(op) > 0 && op[len(op)-1] == ':'
}

// RootPackageName is the single-segment package name the Language's own
// standard library lives under; templates declared directly inside it get
// the primitive value-class constructor treatment.
const RootPackageName = "lang"

// PrimitiveValueClassNames lists the Language's nine primitive value-class
// names plus the top value type, used when deciding whether a template
// inside the root package needs a synthesized constructor.
var PrimitiveValueClassNames = map[string]bool{
	"Boolean": true, "Byte": true, "Short": true, "Char": true, "Int": true,
	"Long": true, "Float": true, "Double": true, "Unit": true,
	"AnyVal": true,
}

// ReservedNames are keyword-names never usable as a plain identifier.
var ReservedNames = map[string]bool{
	"if": true, "else": true, "while": true, "do": true, "for": true,
	"yield": true, "try": true, "catch": true, "finally": true, "throw": true,
	"return": true, "new": true, "match": true, "case": true, "this": true,
	"super": true, "import": true, "package": true, "object": true,
	"class": true, "trait": true, "val": true, "var": true, "def": true,
	"type": true, "extends": true, "implicit": true, "lazy": true,
	"abstract": true, "final": true, "sealed": true, "private": true,
	"protected": true, "override": true, "with": true, "forSome": true,
	"macro": true,
}

// FreshNames is a per-parse counter backing TermName/TypeName: generated
// names are deterministic and collision-free within one compilation unit.
type FreshNames struct {
	counter int
}

// TermName produces a fresh, compiler-introduced term name with prefix.
func (f *FreshNames) TermName(prefix string) string {
	f.counter++
	return prefix + "$" + itoa(f.counter)
}

// TypeName produces a fresh, compiler-introduced type name with prefix.
func (f *FreshNames) TypeName(prefix string) string {
	f.counter++
	return prefix + "$T" + itoa(f.counter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
