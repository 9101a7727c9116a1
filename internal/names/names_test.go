package names

import "testing"

func TestPrecedenceLevels(t *testing.T) {
	tests := []struct {
		op   string
		want int
	}{
		{"+=", PrecAssign},
		{"|", PrecOr},
		{"||", PrecOr},
		{"^", PrecXor},
		{"&&", PrecAnd},
		{"==", PrecEquality},
		{"!=", PrecEquality},
		{"<", PrecRelational},
		{">=", PrecRelational},
		{"::", PrecColon},
		{"+", PrecAdditive},
		{"-", PrecAdditive},
		{"+:", PrecAdditive},
		{"*", PrecMultiplicative},
		{"/", PrecMultiplicative},
		{"%", PrecMultiplicative},
		{"~", PrecOther},
		{"?", PrecOther},
		{"max", PrecAlphanumeric},
		{"eq", PrecAlphanumeric},
	}
	for _, tt := range tests {
		if got := Precedence(tt.op); got != tt.want {
			t.Errorf("Precedence(%q) = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	if Precedence("+") >= Precedence("*") {
		t.Fatalf("multiplicative must bind tighter than additive")
	}
	if Precedence("==") >= Precedence("+") {
		t.Fatalf("additive must bind tighter than equality")
	}
	if Precedence("*") >= Precedence("max") {
		t.Fatalf("alphanumeric operators bind tightest")
	}
}

func TestAssociativity(t *testing.T) {
	rightAssoc := []string{"::", "+:", "::+:", "cons:"}
	leftAssoc := []string{"+", "*", "::+", "max", "|"}

	for _, op := range rightAssoc {
		if !IsRightAssociative(op) {
			t.Errorf("IsRightAssociative(%q) = false, want true", op)
		}
	}
	for _, op := range leftAssoc {
		if IsRightAssociative(op) {
			t.Errorf("IsRightAssociative(%q) = true, want false", op)
		}
	}
}

func TestIsVarName(t *testing.T) {
	for _, name := range []string{"x", "rest", "_", "aB"} {
		if !IsVarName(name) {
			t.Errorf("IsVarName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"X", "Some", ""} {
		if IsVarName(name) {
			t.Errorf("IsVarName(%q) = true, want false", name)
		}
	}
}

func TestFreshNamesAreUniqueAndDeterministic(t *testing.T) {
	var f FreshNames
	a := f.TermName("x")
	b := f.TermName("x")
	c := f.TypeName("_")
	if a == b || b == c || a == c {
		t.Fatalf("fresh names must be unique: %q %q %q", a, b, c)
	}

	var g FreshNames
	if g.TermName("x") != a {
		t.Fatalf("fresh names must be deterministic per counter")
	}
}

func TestPrimitiveValueClassNames(t *testing.T) {
	for _, name := range []string{"Boolean", "Byte", "Short", "Char", "Int", "Long", "Float", "Double", "Unit", "AnyVal"} {
		if !PrimitiveValueClassNames[name] {
			t.Errorf("expected %q to be a primitive value-class name", name)
		}
	}
	if PrimitiveValueClassNames["Str"] {
		t.Errorf("Str must not be a primitive value-class name")
	}
}
