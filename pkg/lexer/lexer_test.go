package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sixc/pkg/config"
	"sixc/pkg/token"
	"sixc/pkg/util"
)

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func tokenize(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()
	toks, _, err := Tokenize(src, config.NewConfig())
	return toks, err
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	toks, err := tokenize(t, "var x = input(); output(x);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.Var, token.Ident, token.Eq, token.Input, token.LParen, token.RParen, token.Semi,
		token.Output, token.LParen, token.Ident, token.RParen, token.Semi,
		token.EOF,
	}
	if diff := cmp.Diff(want, typesOf(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeGreedyLongestOperators(t *testing.T) {
	toks, err := tokenize(t, "a++ - b-- & c && d ^^ e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.Ident, token.Inc, token.Minus, token.Ident, token.Dec,
		token.And, token.Ident, token.AndAnd, token.Ident, token.XorXor, token.Ident,
		token.EOF,
	}
	if diff := cmp.Diff(want, typesOf(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := tokenize(t, "var x = 1; // trailing comment\nvar y = 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 11 {
		t.Fatalf("expected 11 tokens (2 decls + EOF), got %d: %v", len(toks), typesOf(toks))
	}
}

func TestTokenizeBlockComment(t *testing.T) {
	toks, err := tokenize(t, "var x = 1; /* spans\nmultiple\nlines */ var y = 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 11 {
		t.Fatalf("expected 11 tokens (2 decls + EOF), got %d: %v", len(toks), typesOf(toks))
	}
}

func TestTokenizeUnterminatedBlockCommentIsAnError(t *testing.T) {
	_, err := tokenize(t, "var x = 1; /* never closed")
	if err == nil {
		t.Fatal("expected an error for an unterminated block comment")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Line != 1 {
		t.Errorf("expected the error to point at the comment's opening line, got line %d", lexErr.Line)
	}
}

func TestDisablingCCommentsTurnsSlashIntoAnError(t *testing.T) {
	cfg := config.NewConfig()
	if err := cfg.SetFeature(config.FeatCComments, false); err != nil {
		t.Fatalf("unexpected error disabling c-comments: %v", err)
	}
	if _, _, err := Tokenize("var x = 1; // not a comment anymore", cfg); err == nil {
		t.Fatal("expected an error once comment recognition is disabled")
	}
}

func TestNearLimitIntegerLiteralWarns(t *testing.T) {
	_, warnings, err := Tokenize("var x = 250;", config.NewConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning for a near-limit literal, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].Severity != util.SeverityWarning {
		t.Errorf("expected a warning-severity diagnostic, got %v", warnings[0].Severity)
	}
}

func TestComfortablyInRangeLiteralDoesNotWarn(t *testing.T) {
	_, warnings, err := Tokenize("var x = 100;", config.NewConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for a comfortably in-range literal, got %v", warnings)
	}
}

func TestDisablingOverflowWarningSuppressesIt(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetWarning(config.WarnOverflow, false)
	_, warnings, err := Tokenize("var x = 250;", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings once WarnOverflow is disabled, got %v", warnings)
	}
}

func TestNumberLiteralOverflow(t *testing.T) {
	_, err := tokenize(t, "var x = 256;")
	if err == nil {
		t.Fatal("expected an error for literal 256, got none")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Line != 1 {
		t.Errorf("expected error on line 1, got %d", lexErr.Line)
	}
}

func TestNumberLiteralAtBoundary(t *testing.T) {
	toks, err := tokenize(t, "255")
	if err != nil {
		t.Fatalf("unexpected error for literal 255: %v", err)
	}
	if toks[0].Value != "255" {
		t.Errorf("expected literal text \"255\", got %q", toks[0].Value)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := tokenize(t, "var x = 1 @ 2;")
	if err == nil {
		t.Fatal("expected an error for '@'")
	}
}
