// Package sema walks a parsed program, building the symbol table and
// resolving every variable reference to a zero-page slot address.
package sema

import (
	"fmt"

	"sixc/pkg/ast"
	"sixc/pkg/config"
	"sixc/pkg/token"
	"sixc/pkg/util"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	UndeclaredName ErrorKind = iota
	Redeclaration
	OutOfSlots
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredName:
		return "undeclared name"
	case Redeclaration:
		return "redeclaration"
	case OutOfSlots:
		return "out of slots"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind         ErrorKind
	Line, Column int
	Message      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// firstSlot is the lowest zero-page address available to user variables.
// addrLimit is the highest: $FA-$FE are reserved runtime scratch, so the
// last usable user address is $F9, giving 234 usable slots.
const (
	firstSlot = 0x10
	addrLimit = 0xFA
)

// Symbol is one resolved variable: its name and assigned zero-page slot.
type Symbol struct {
	Name string
	Addr uint8
}

// Table is the flat, declaration-ordered symbol table: no lexical
// scoping, so a single map suffices for the whole program.
type Table struct {
	byName   map[string]uint8
	next     uint8
	cfg      *config.Config
	warnings []util.Diagnostic
}

func newTable(cfg *config.Config) *Table {
	return &Table{byName: make(map[string]uint8), next: firstSlot, cfg: cfg}
}

// warnUnreachable records an unreachable-code warning at tok if
// WarnUnreachableCode is enabled.
func (t *Table) warnUnreachable(tok token.Token, reason string) {
	if d, ok := util.Warn(t.cfg, config.WarnUnreachableCode, tok, "unreachable statement: %s", reason); ok {
		t.warnings = append(t.warnings, d)
	}
}

// isConstLiteral reports whether n is a bare integer literal and, if so,
// returns its value. Only a literal condition can be proven
// unreachable at compile time; anything involving a variable might take
// either branch at runtime.
func isConstLiteral(n *ast.Node) (value uint8, ok bool) {
	lit, isLit := n.Data.(ast.IntLiteralNode)
	if n.Kind != ast.IntLiteral || !isLit {
		return 0, false
	}
	return lit.Value, true
}

func (t *Table) declare(tok token.Token, name string) (uint8, *Error) {
	if _, exists := t.byName[name]; exists {
		return 0, &Error{Redeclaration, tok.Line, tok.Column,
			fmt.Sprintf("variable %q already declared", name)}
	}
	if int(t.next) >= addrLimit {
		return 0, &Error{OutOfSlots, tok.Line, tok.Column,
			fmt.Sprintf("too many variables: %q exceeds the zero-page slot budget", name)}
	}
	addr := t.next
	t.byName[name] = addr
	t.next++
	return addr, nil
}

func (t *Table) resolve(tok token.Token, name string) (uint8, *Error) {
	addr, ok := t.byName[name]
	if !ok {
		return 0, &Error{UndeclaredName, tok.Line, tok.Column,
			fmt.Sprintf("undeclared name %q", name)}
	}
	return addr, nil
}

// Result is the outcome of a successful analysis: the annotated program
// (addresses filled into every VarNode/VarDeclNode/AssignNode/etc.) plus
// the final symbol table, useful for verbose slot-usage reporting, and
// any warnings raised while walking the tree.
type Result struct {
	Program  *ast.Program
	Table    *Table
	Warnings []util.Diagnostic
}

// SlotsUsed reports how many of the 234 available zero-page slots the
// program consumed.
func (r *Result) SlotsUsed() int { return len(r.Table.byName) }

// Symbols returns the declared variables in slot order, for diagnostics.
func (r *Result) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(r.Table.byName))
	for name, addr := range r.Table.byName {
		syms = append(syms, Symbol{Name: name, Addr: addr})
	}
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1].Addr > syms[j].Addr; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
	return syms
}

// Analyze resolves every variable reference in prog, allocating zero-page
// slots in declaration order starting at $10. It returns the first error
// encountered; like the earlier pipeline stages, analysis halts rather
// than trying to recover and report more than one problem at a time.
// Warnings, by contrast, never halt analysis; they accumulate in the
// returned Result.
func Analyze(prog *ast.Program, cfg *config.Config) (*Result, error) {
	t := newTable(cfg)
	for _, stmt := range prog.Stmts {
		if err := analyzeStmt(t, stmt); err != nil {
			return nil, err
		}
	}
	return &Result{Program: prog, Table: t, Warnings: t.warnings}, nil
}

func analyzeStmt(t *Table, n *ast.Node) *Error {
	switch n.Kind {
	case ast.VarDecl:
		d := n.Data.(ast.VarDeclNode)
		if err := analyzeExpr(t, d.Init); err != nil {
			return err
		}
		addr, err := t.declare(n.Tok, d.Name)
		if err != nil {
			return err
		}
		d.Addr = addr
		n.Data = d
		return nil

	case ast.Assign:
		a := n.Data.(ast.AssignNode)
		if err := analyzeExpr(t, a.Expr); err != nil {
			return err
		}
		addr, err := t.resolve(n.Tok, a.Name)
		if err != nil {
			return err
		}
		a.Addr = addr
		n.Data = a
		return nil

	case ast.PostInc:
		p := n.Data.(ast.PostIncNode)
		addr, err := t.resolve(n.Tok, p.Name)
		if err != nil {
			return err
		}
		p.Addr = addr
		n.Data = p
		return nil

	case ast.PostDec:
		p := n.Data.(ast.PostDecNode)
		addr, err := t.resolve(n.Tok, p.Name)
		if err != nil {
			return err
		}
		p.Addr = addr
		n.Data = p
		return nil

	case ast.If:
		f := n.Data.(ast.IfNode)
		if err := analyzeExpr(t, f.Cond); err != nil {
			return err
		}
		if value, ok := isConstLiteral(f.Cond); ok {
			if value == 0 {
				t.warnUnreachable(f.Then.Tok, "the condition is the constant 0, so the 'then' branch never runs")
			} else if f.Else != nil {
				t.warnUnreachable(f.Else.Tok, "the condition is a nonzero constant, so the 'else' branch never runs")
			}
		}
		if err := analyzeStmt(t, f.Then); err != nil {
			return err
		}
		if f.Else != nil {
			if err := analyzeStmt(t, f.Else); err != nil {
				return err
			}
		}
		return nil

	case ast.While:
		w := n.Data.(ast.WhileNode)
		if err := analyzeExpr(t, w.Cond); err != nil {
			return err
		}
		if value, ok := isConstLiteral(w.Cond); ok && value == 0 {
			t.warnUnreachable(w.Body.Tok, "the loop condition is the constant 0, so the body never runs")
		}
		return analyzeStmt(t, w.Body)

	case ast.DoWhile:
		d := n.Data.(ast.DoWhileNode)
		if err := analyzeStmt(t, d.Body); err != nil {
			return err
		}
		return analyzeExpr(t, d.Cond)

	case ast.OutputStmt:
		o := n.Data.(ast.OutputStmtNode)
		return analyzeExpr(t, o.Expr)

	case ast.ExprStmt:
		e := n.Data.(ast.ExprStmtNode)
		return analyzeExpr(t, e.Expr)

	case ast.Block:
		b := n.Data.(ast.BlockNode)
		for _, stmt := range b.Stmts {
			if err := analyzeStmt(t, stmt); err != nil {
				return err
			}
		}
		return nil

	default:
		return analyzeExpr(t, n)
	}
}

func analyzeExpr(t *Table, n *ast.Node) *Error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.IntLiteral:
		return nil

	case ast.Var:
		v := n.Data.(ast.VarNode)
		addr, err := t.resolve(n.Tok, v.Name)
		if err != nil {
			return err
		}
		v.Addr = addr
		n.Data = v
		return nil

	case ast.Unary:
		u := n.Data.(ast.UnaryNode)
		return analyzeExpr(t, u.Operand)

	case ast.Binary:
		b := n.Data.(ast.BinaryNode)
		if err := analyzeExpr(t, b.Left); err != nil {
			return err
		}
		return analyzeExpr(t, b.Right)

	case ast.Call:
		c := n.Data.(ast.CallNode)
		for _, arg := range c.Args {
			if err := analyzeExpr(t, arg); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}
