package basic

//
// Parsed program lines are trees of the node types below.  The set is
// closed: Expr and Stmt can only be implemented inside this package,
// and the evaluator and executor each handle every node type in a
// single type switch
//

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

type (
	NumberLit struct {
		Value float64
	}

	StringLit struct {
		Value string
	}

	// VarRef reads a scalar variable.
	VarRef struct {
		Name string
	}

	// ArrayRef reads one array element; indexes are 1-based.
	ArrayRef struct {
		Name  string
		Index []Expr
	}

	// Call invokes a registered builtin function.
	Call struct {
		Name string
		Args []Expr
	}

	// Neg is unary minus.
	Neg struct {
		X Expr
	}

	// Binary is one of + - * /.
	Binary struct {
		Op   string
		L, R Expr
	}

	// Compare is one of = <> < <= > >=, yielding 1 or 0.
	Compare struct {
		Op   string
		L, R Expr
	}
)

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*VarRef) exprNode()    {}
func (*ArrayRef) exprNode()  {}
func (*Call) exprNode()      {}
func (*Neg) exprNode()       {}
func (*Binary) exprNode()    {}
func (*Compare) exprNode()   {}

// LValue is an assignable location: a scalar when Index is empty,
// otherwise one array cell.
type LValue struct {
	Name  string
	Index []Expr
}

// DimSpec is one array declaration inside a DIM statement.
type DimSpec struct {
	Name string
	Dims []Expr
}

type (
	// Seq is several statements on one line, separated by ':'.
	Seq struct {
		Stmts []Stmt
	}

	Rem struct {
		Text string
	}

	// Print items are separated by ';' or ','; Seps[i] follows Items[i].
	Print struct {
		Items []Expr
		Seps  []byte
	}

	Assign struct {
		Target LValue
		Expr   Expr
	}

	Input struct {
		Name string
	}

	// If jumps to Line when it is nonzero, otherwise runs Then.
	If struct {
		Cond Expr
		Line int
		Then Stmt
	}

	Goto struct {
		Line int
	}

	Gosub struct {
		Line int
	}

	Return struct{}

	For struct {
		Var   string
		Start Expr
		End   Expr
		Step  Expr // nil means 1
	}

	Next struct {
		Var string
	}

	Dim struct {
		Arrays []DimSpec
	}

	Randomize struct {
		Seed Expr // nil reseeds from the clock
	}

	// End covers both END and STOP.
	End struct {
		Keyword string
	}

	// CallStmt calls a builtin for its side effects.
	CallStmt struct {
		Call *Call
	}
)

func (*Seq) stmtNode()       {}
func (*Rem) stmtNode()       {}
func (*Print) stmtNode()     {}
func (*Assign) stmtNode()    {}
func (*Input) stmtNode()     {}
func (*If) stmtNode()        {}
func (*Goto) stmtNode()      {}
func (*Gosub) stmtNode()     {}
func (*Return) stmtNode()    {}
func (*For) stmtNode()       {}
func (*Next) stmtNode()      {}
func (*Dim) stmtNode()       {}
func (*Randomize) stmtNode() {}
func (*End) stmtNode()       {}
func (*CallStmt) stmtNode()  {}
