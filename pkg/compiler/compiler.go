// Package compiler wires the lexer, parser, semantic analyzer and code
// generator into the single public entry point the rest of this module
// (and any embedder) calls.
package compiler

import (
	"fmt"

	"sixc/pkg/ast"
	"sixc/pkg/codegen"
	"sixc/pkg/config"
	"sixc/pkg/lexer"
	"sixc/pkg/parser"
	"sixc/pkg/sema"
	"sixc/pkg/token"
	"sixc/pkg/util"
)

// Result carries the generated assembly alongside the artifacts a
// caller might want for diagnostics: the resolved symbol table, any
// warnings raised along the way, and a deterministic fingerprint of
// the output.
type Result struct {
	Assembly    string
	Tokens      []token.Token
	Program     *ast.Program
	Symbols     []sema.Symbol
	Warnings    []util.Diagnostic
	Fingerprint uint64
}

// Compile runs the full pipeline over source and returns the generated
// DASM assembly for the named target ("generic" or "py65mon"). It never
// calls os.Exit; every failure is returned as an error so this package
// stays usable as a library.
func Compile(source string, cfg *config.Config, targetName string) (*Result, error) {
	target, err := codegen.ParseTarget(targetName)
	if err != nil {
		return nil, err
	}

	tokens, lexWarnings, err := lexer.Tokenize(source, cfg)
	if err != nil {
		return nil, formatStageError(source, err)
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, formatStageError(source, err)
	}

	analyzed, err := sema.Analyze(prog, cfg)
	if err != nil {
		return nil, formatStageError(source, err)
	}

	assembly := codegen.Generate(analyzed.Program, cfg, target)

	warnings := append(lexWarnings, analyzed.Warnings...)

	return &Result{
		Assembly:    assembly,
		Tokens:      tokens,
		Program:     analyzed.Program,
		Symbols:     analyzed.Symbols(),
		Warnings:    warnings,
		Fingerprint: util.Fingerprint(assembly),
	}, nil
}

// formatStageError turns a stage's *Error into a source-anchored
// diagnostic. Every stage's *Error exposes Line/Column/Message without a
// shared interface in their own packages, so position is recovered via a
// narrow type switch instead of forcing every stage to import util.
func formatStageError(source string, err error) error {
	var line, col int
	var message string
	switch e := err.(type) {
	case *lexer.Error:
		line, col, message = e.Line, e.Column, e.Message
	case *parser.Error:
		line, col, message = e.Line, e.Column, e.Message
	case *sema.Error:
		line, col, message = e.Line, e.Column, e.Message
	default:
		return err
	}

	tok := token.Token{Line: line, Column: col, Len: 1}
	formatted := util.FormatWithSource(source, tok, util.SeverityError, "%s", message)
	return fmt.Errorf("%s", formatted)
}
