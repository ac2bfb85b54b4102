// Package patterns classifies single lines of source text into statement
// categories and extracts their operands. One Provider instance exists per
// declared language; all expose the same capability set, so the tracer is
// language-agnostic. Classification is lexical pattern recognition, not
// parsing: exactly one category is expected to match per line, tried in a
// fixed priority order by the tracer, with a generic-expression fallback
// for anything unrecognized.
package patterns

// ForLoopStyle distinguishes the two recognized loop shapes.
type ForLoopStyle string

const (
	// ForCStyle is `for (init; condition; update)`.
	ForCStyle ForLoopStyle = "c-style"
	// ForIterator is `for x in xs` / `for (x of xs)`. The condition is
	// synthesized ("has next") and the update is "next item".
	ForIterator ForLoopStyle = "iterator"
)

// ForLoop holds the operands extracted from a for-loop header.
type ForLoop struct {
	Style ForLoopStyle

	// C-style fields.
	Init      string
	Condition string
	Update    string

	// Iterator-style fields.
	Var      string
	Iterable string
}

// Declaration holds the operands of a variable declaration.
type Declaration struct {
	Name     string
	Value    string
	HasValue bool
}

// Assignment holds the operands of a plain assignment statement,
// including increment/decrement and compound operators.
type Assignment struct {
	Name     string
	Operator string // =, ++, --, +=, -=, *=, /=, %=
	Expr     string
}

// MethodCall holds the operands of a method or function call statement.
type MethodCall struct {
	Target string // empty for a bare function call
	Method string
	Args   string
}

// ArrayAccess holds the operands of an array index expression.
type ArrayAccess struct {
	Name  string
	Index string
}

// Provider is the per-language capability set: a predicate and an
// extractor per statement category. Extractors are only defined for lines
// their predicate accepts; on other input they return zero values.
type Provider interface {
	Language() string

	IsComment(line string) bool

	IsImport(line string) bool
	ExtractImport(line string) string

	IsClass(line string) bool
	ExtractClassName(line string) string
	IsConstructor(line string) bool

	IsFunction(line string) bool
	ExtractFunctionName(line string) string

	IsVariableDeclaration(line string) bool
	ExtractVariable(line string) (Declaration, bool)

	IsForLoop(line string) bool
	ExtractForLoop(line string) (ForLoop, bool)

	IsWhileLoop(line string) bool
	ExtractWhileCondition(line string) string

	IsIf(line string) bool
	IsElseIf(line string) bool
	IsElse(line string) bool
	ExtractIfCondition(line string) string

	IsPrint(line string) bool
	ExtractPrint(line string) string

	IsInput(line string) bool

	IsReturn(line string) bool
	ExtractReturn(line string) string

	IsThrow(line string) bool
	ExtractThrow(line string) string

	IsAssignment(line string) bool
	ExtractAssignment(line string) (Assignment, bool)

	IsMethodCall(line string) bool
	ExtractMethodCall(line string) (MethodCall, bool)

	IsTry(line string) bool
	IsCatch(line string) bool
	ExtractCatch(line string) string

	IsSwitch(line string) bool
	IsCase(line string) bool

	IsBreak(line string) bool
	IsContinue(line string) bool

	IsArrayAccess(line string) bool
	ExtractArrayAccess(line string) (ArrayAccess, bool)

	// IsBlockDelimiter reports lines that are only braces/punctuation.
	// Those produce no step at all.
	IsBlockDelimiter(line string) bool
}
