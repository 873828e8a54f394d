package token

import "testing"

func TestKindString(t *testing.T) {
	if Plus.String() != "+" {
		t.Errorf("Plus.String() = %q, want %q", Plus.String(), "+")
	}
	if Kind(9999).String() != "unknown" {
		t.Errorf("unknown kind should stringify to 'unknown'")
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []Kind{Integer, Float, Character, String, Identifier} {
		if !k.IsLiteral() {
			t.Errorf("%v should be a literal kind", k)
		}
	}
	if Plus.IsLiteral() {
		t.Errorf("Plus should not be a literal kind")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Identifier, Value: "foo"}
	if got := tok.String(); got != "identifier(foo)" {
		t.Errorf("Token.String() = %q", got)
	}
}
