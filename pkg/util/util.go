// Package util holds small cross-cutting helpers shared by every pipeline
// stage: source-line-and-caret diagnostic formatting and a deterministic
// fingerprint over generated assembly.
package util

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"sixc/pkg/config"
	"sixc/pkg/token"
)

// Severity distinguishes a hard error from an advisory warning in
// formatted output.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single formatted error or warning, positioned against
// the original source text. It is always returned to the caller rather
// than printed directly, so the library stays embeddable; only the CLI
// drivers decide to print and exit.
type Diagnostic struct {
	Severity Severity
	Line     int
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// Warn builds a warning Diagnostic for wt if it is enabled in cfg. The
// second return value is false when the warning is disabled, in which
// case the caller should not record or print the Diagnostic.
func Warn(cfg *config.Config, wt config.Warning, tok token.Token, format string, args ...interface{}) (Diagnostic, bool) {
	if !cfg.IsWarningEnabled(wt) {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Severity: SeverityWarning,
		Line:     tok.Line,
		Column:   tok.Column,
		Message:  fmt.Sprintf(format, args...),
	}, true
}

// FormatWithSource renders a diagnostic the way a terminal compiler
// would: the message line, the offending source line, and a caret (or
// caret-tilde span) under the token's position.
func FormatWithSource(source string, tok token.Token, severity Severity, format string, args ...interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s: ", tok.Line, tok.Column, severity)
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')

	line := sourceLine(source, tok.Line)
	if line != "" {
		fmt.Fprintf(&b, "  %s\n", line)
		fmt.Fprintf(&b, "  %s^", strings.Repeat(" ", max0(tok.Column-1)))
		if tok.Len > 1 {
			b.WriteString(strings.Repeat("~", tok.Len-1))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sourceLine(source string, lineNum int) string {
	line := 1
	start := 0
	for i, r := range source {
		if line == lineNum {
			break
		}
		if r == '\n' {
			line++
			start = i + 1
		}
	}
	if line != lineNum {
		return ""
	}
	end := len(source)
	if idx := strings.IndexByte(source[start:], '\n'); idx >= 0 {
		end = start + idx
	}
	return source[start:end]
}

// Fingerprint returns a deterministic hash of generated assembly,
// letting callers verify the determinism property: compiling the same
// source twice must produce byte-identical output.
func Fingerprint(assembly string) uint64 {
	return xxhash.Sum64String(assembly)
}
