// Package ast defines the expression and statement tree produced by the
// parser and annotated by the semantic analyzer.
package ast

import "sixc/pkg/token"

// Kind identifies the concrete shape stored in a Node's Data field.
type Kind int

const (
	// Expressions
	IntLiteral Kind = iota
	Var
	Unary
	Binary
	Call

	// Statements
	VarDecl
	Assign
	PostInc
	PostDec
	If
	While
	DoWhile
	OutputStmt
	ExprStmt
	Block
)

// Node is a single element of the expression/statement tree. Data holds
// one of the *Node structs below, chosen by Kind.
type Node struct {
	Kind Kind
	Tok  token.Token
	Data interface{}
}

// --- Expression node payloads ---

// IntLiteralNode is an 8-bit unsigned constant, already range-checked by
// the lexer.
type IntLiteralNode struct {
	Value uint8
}

// VarNode references a declared variable. Addr is zero until the
// semantic analyzer resolves it; valid zero-page slots start at 0x10,
// so zero unambiguously means "unresolved".
type VarNode struct {
	Name string
	Addr uint8
}

// UnaryNode covers prefix '-', '~' and '!'. The parser never produces a
// Binary node with a missing operand for these operators; Unary is the
// only shape a prefix operator can take.
type UnaryNode struct {
	Op      token.Type
	Operand *Node
}

// BinaryNode is a two-operand arithmetic/bitwise/logical/relational/shift
// expression.
type BinaryNode struct {
	Op          token.Type
	Left, Right *Node
}

// Builtin names the two built-in calls the language supports.
type Builtin int

const (
	BuiltinInput Builtin = iota
	BuiltinOutput
)

// CallNode is a call to a built-in function. input() takes no
// arguments; output(e) takes exactly one.
type CallNode struct {
	Builtin Builtin
	Args    []*Node
}

// --- Statement node payloads ---

// VarDeclNode declares a new variable and initializes it. Addr is filled
// in by the semantic analyzer, same convention as VarNode.
type VarDeclNode struct {
	Name string
	Init *Node
	Addr uint8
}

// AssignNode stores the result of Expr into the variable named Name.
type AssignNode struct {
	Name string
	Expr *Node
	Addr uint8
}

// PostIncNode / PostDecNode implement x++ / x--. The result value is
// discarded at statement level, so no prior load is needed.
type PostIncNode struct {
	Name string
	Addr uint8
}

type PostDecNode struct {
	Name string
	Addr uint8
}

// IfNode is an if/else. Else is nil when there is no else-clause.
type IfNode struct {
	Cond *Node
	Then *Node
	Else *Node
}

// WhileNode tests Cond before every iteration of Body.
type WhileNode struct {
	Cond *Node
	Body *Node
}

// DoWhileNode runs Body once, then tests Cond before each further
// iteration.
type DoWhileNode struct {
	Body *Node
	Cond *Node
}

// OutputStmtNode is the statement form of output(e);.
type OutputStmtNode struct {
	Expr *Node
}

// ExprStmtNode is a bare expression statement, used for calls like
// input(); whose result is discarded.
type ExprStmtNode struct {
	Expr *Node
}

// BlockNode is an ordered list of statements making up a { ... } body.
type BlockNode struct {
	Stmts []*Node
}

// --- Constructors ---

func NewIntLiteral(tok token.Token, value uint8) *Node {
	return &Node{Kind: IntLiteral, Tok: tok, Data: IntLiteralNode{Value: value}}
}

func NewVar(tok token.Token, name string) *Node {
	return &Node{Kind: Var, Tok: tok, Data: VarNode{Name: name}}
}

func NewUnary(tok token.Token, op token.Type, operand *Node) *Node {
	return &Node{Kind: Unary, Tok: tok, Data: UnaryNode{Op: op, Operand: operand}}
}

func NewBinary(tok token.Token, op token.Type, left, right *Node) *Node {
	return &Node{Kind: Binary, Tok: tok, Data: BinaryNode{Op: op, Left: left, Right: right}}
}

func NewCall(tok token.Token, builtin Builtin, args []*Node) *Node {
	return &Node{Kind: Call, Tok: tok, Data: CallNode{Builtin: builtin, Args: args}}
}

func NewVarDecl(tok token.Token, name string, init *Node) *Node {
	return &Node{Kind: VarDecl, Tok: tok, Data: VarDeclNode{Name: name, Init: init}}
}

func NewAssign(tok token.Token, name string, expr *Node) *Node {
	return &Node{Kind: Assign, Tok: tok, Data: AssignNode{Name: name, Expr: expr}}
}

func NewPostInc(tok token.Token, name string) *Node {
	return &Node{Kind: PostInc, Tok: tok, Data: PostIncNode{Name: name}}
}

func NewPostDec(tok token.Token, name string) *Node {
	return &Node{Kind: PostDec, Tok: tok, Data: PostDecNode{Name: name}}
}

func NewIf(tok token.Token, cond, then, els *Node) *Node {
	return &Node{Kind: If, Tok: tok, Data: IfNode{Cond: cond, Then: then, Else: els}}
}

func NewWhile(tok token.Token, cond, body *Node) *Node {
	return &Node{Kind: While, Tok: tok, Data: WhileNode{Cond: cond, Body: body}}
}

func NewDoWhile(tok token.Token, body, cond *Node) *Node {
	return &Node{Kind: DoWhile, Tok: tok, Data: DoWhileNode{Body: body, Cond: cond}}
}

func NewOutputStmt(tok token.Token, expr *Node) *Node {
	return &Node{Kind: OutputStmt, Tok: tok, Data: OutputStmtNode{Expr: expr}}
}

func NewExprStmt(tok token.Token, expr *Node) *Node {
	return &Node{Kind: ExprStmt, Tok: tok, Data: ExprStmtNode{Expr: expr}}
}

func NewBlock(tok token.Token, stmts []*Node) *Node {
	return &Node{Kind: Block, Tok: tok, Data: BlockNode{Stmts: stmts}}
}

// Program is the top-level result of parsing: an ordered statement list
// with no enclosing braces.
type Program struct {
	Stmts []*Node
}
