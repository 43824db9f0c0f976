package util

import (
	"strings"
	"testing"

	"sixc/pkg/token"
)

func TestFormatWithSourceIncludesCaretAtColumn(t *testing.T) {
	src := "var x = 999;"
	tok := token.Token{Line: 1, Column: 9, Len: 3}
	out := FormatWithSource(src, tok, SeverityError, "literal %s out of range", "999")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (message, source, caret), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "1:9: error: literal 999 out of range") {
		t.Errorf("unexpected message line: %q", lines[0])
	}
	if lines[1] != "  "+src {
		t.Errorf("expected the source line to be echoed verbatim, got %q", lines[1])
	}
	caretCol := strings.IndexByte(lines[2], '^')
	if caretCol != tok.Column+1 {
		t.Errorf("expected caret at column %d, got %d in %q", tok.Column+1, caretCol, lines[2])
	}
}

func TestFormatWithSourceOmitsSourceLineWhenOutOfRange(t *testing.T) {
	out := FormatWithSource("var x = 1;", token.Token{Line: 5, Column: 1}, SeverityWarning, "unreachable line")
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected only the message line when the source line doesn't exist, got:\n%q", out)
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	a := Fingerprint("identical assembly text")
	b := Fingerprint("identical assembly text")
	if a != b {
		t.Errorf("expected equal fingerprints for identical input, got %x and %x", a, b)
	}
}

func TestFingerprintDistinguishesDifferentInput(t *testing.T) {
	a := Fingerprint("program A")
	b := Fingerprint("program B")
	if a == b {
		t.Error("expected different fingerprints for different input")
	}
}
