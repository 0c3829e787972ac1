package domain

// Block is a function body
type Block struct {
	Stmts []Stmt
	Span  Span
}

// Clone returns a copy of b; statements are shared except nested items
func (b *Block) Clone() *Block {
	out := &Block{Span: b.Span, Stmts: make([]Stmt, len(b.Stmts))}
	for i, s := range b.Stmts {
		if item, ok := s.(*ItemStmt); ok {
			s = &ItemStmt{Func: item.Func.Clone()}
		}
		out.Stmts[i] = s
	}
	return out
}

// Stmt is a body statement
type Stmt interface{ stmt() }

// RawStmt is source text as written. Verbatim is set when the text holds
// a multi-line literal, so its lines must not be re-indented.
type RawStmt struct {
	Text     string
	Verbatim bool
}

// ItemStmt declares a nested function
type ItemStmt struct {
	Func *Func
}

// LetStmt binds Value to Name
type LetStmt struct {
	Name  string
	Value Expr
}

// ExprStmt evaluates X. A Tail expression is the block's value.
type ExprStmt struct {
	X    Expr
	Tail bool
}

func (*RawStmt) stmt()  {}
func (*ItemStmt) stmt() {}
func (*LetStmt) stmt()  {}
func (*ExprStmt) stmt() {}

// Expr is an expression in a synthesized body
type Expr interface{ expr() }

// Ident names a binding or item
type Ident struct {
	Name string
}

// CallExpr calls Fun with Args
type CallExpr struct {
	Fun  Expr
	Args []Expr
}

// AwaitExpr suspends on X
type AwaitExpr struct {
	X Expr
}

func (*Ident) expr()     {}
func (*CallExpr) expr()  {}
func (*AwaitExpr) expr() {}

// Call is shorthand for a call of the named function
func Call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Fun: &Ident{Name: name}, Args: args}
}
