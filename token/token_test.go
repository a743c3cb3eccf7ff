package token_test

import (
	"strings"
	"testing"

	"grol.io/gorth/token"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"   ", nil},
		{"1 2 +", []string{"1", "2", "+"}},
		{"\t: F \tDUP * ;  ", []string{":", "F", "DUP", "*", ";"}},
	}
	for i, tt := range tests {
		got := token.Tokenize(tt.input)
		if strings.Join(got, "\x00") != strings.Join(tt.expected, "\x00") {
			t.Errorf("test %d input %q: got %v want %v", i, tt.input, got, tt.expected)
		}
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"0", true},
		{"42", true},
		{"-7", true},
		{"+3", true},
		{"3.14", false},
		{"DUP", false},
		{"12a", false},
		{"", false},
	}
	for i, tt := range tests {
		if got := token.IsInteger(tt.input); got != tt.expected {
			t.Errorf("test %d IsInteger(%q) got %v want %v", i, tt.input, got, tt.expected)
		}
	}
}

func TestLookupAlias(t *testing.T) {
	tests := []struct {
		alias   string
		keyword string
	}{
		{"+", token.ADD},
		{"-", token.SUB},
		{"*", token.MUL},
		{"/", token.DIV},
		{"%", token.MOD},
		{".", token.PRINT},
		{"!", token.STORE},
		{"@", token.FETCH},
		{".\"", token.PRINTSTR},
		{"(", token.COMMENT},
		{":", token.DEFINE},
		{"=", token.EQ},
		{"<", token.LT},
		{">", token.GT},
	}
	for i, tt := range tests {
		kw, ok := token.LookupAlias(tt.alias)
		if !ok || kw != tt.keyword {
			t.Errorf("test %d LookupAlias(%q) got %q,%v want %q", i, tt.alias, kw, ok, tt.keyword)
		}
		if !token.IsKeyword(kw) {
			t.Errorf("test %d alias %q maps to non keyword %q", i, tt.alias, kw)
		}
	}
	if _, ok := token.LookupAlias("DUP"); ok {
		t.Errorf("DUP should not be an alias")
	}
}

func TestIsStructured(t *testing.T) {
	structured := []string{
		token.PRINTSTR, token.COMMENT, token.DEFINE, token.VARIABLE,
		token.CONSTANT, token.ALLOT, token.IF, token.DO, token.BEGIN, token.LOAD,
	}
	for _, kw := range structured {
		if !token.IsStructured(kw) {
			t.Errorf("%s should be structured", kw)
		}
	}
	for _, kw := range []string{token.DUP, token.ADD, token.PRINT, token.CR, token.DUMP} {
		if token.IsStructured(kw) {
			t.Errorf("%s should not be structured", kw)
		}
	}
}

func TestInfo(t *testing.T) {
	info := token.Info()
	for _, kw := range []string{token.DUP, token.IF, token.VARIABLE, token.EMIT} {
		if !info.Keywords.Has(kw) {
			t.Errorf("Info().Keywords missing %s", kw)
		}
	}
	for _, a := range []string{"+", ".", "@", ".\""} {
		if !info.Aliases.Has(a) {
			t.Errorf("Info().Aliases missing %q", a)
		}
	}
	for _, term := range []string{";", "\"", ")", token.THEN, token.LOOP, token.UNTIL, token.ELSE} {
		if !info.Terminators.Has(term) {
			t.Errorf("Info().Terminators missing %q", term)
		}
	}
	// Info returns copies: growing them must not pollute the tables.
	info.Keywords.Add("BOGUS")
	if token.IsKeyword("BOGUS") {
		t.Errorf("Info().Keywords is not a copy")
	}
}
