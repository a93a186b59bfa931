package session

import "testing"

func TestTokenShape(t *testing.T) {
	tok := Token(42)
	if len(tok) != 12 {
		t.Fatalf("token length: got %d, want 12", len(tok))
	}
	for _, c := range tok {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("token %q contains non-hex rune %q", tok, c)
		}
	}
}

func TestTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := Token(7)
		if seen[tok] {
			t.Fatalf("duplicate token %q after %d mints", tok, i)
		}
		seen[tok] = true
	}
}
