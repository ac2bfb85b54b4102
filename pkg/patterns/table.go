package patterns

import (
	"regexp"
	"strings"
)

// Table implements Provider from a fixed set of compiled patterns.
// A nil pattern means the language has no such construct; the matching
// predicate then reports false.
type Table struct {
	language string

	commentPrefixes []string
	importPrefixes  []string

	classRe       *regexp.Regexp   // group 1: class name
	constructorRe *regexp.Regexp   //
	funcRes       []*regexp.Regexp // group 1: function name; first match wins
	declRe        *regexp.Regexp   // groups: name, optional initializer
	forRe         *regexp.Regexp   // groups: init, condition, update
	forInRe       *regexp.Regexp   // groups: var, iterable
	whileRe       *regexp.Regexp   // group 1: condition
	ifRe          *regexp.Regexp   // group 1: condition
	elseIfRe      *regexp.Regexp   // group 1: condition
	elseRe        *regexp.Regexp   //
	printRes      []*regexp.Regexp // group 1: argument
	inputRe       *regexp.Regexp   //
	returnRe      *regexp.Regexp   // group 1: operand
	throwRe       *regexp.Regexp   // group 1: operand
	assignRe      *regexp.Regexp   // groups: name, operator, expression
	incDecRe      *regexp.Regexp   // groups: name, operator
	preIncDecRe   *regexp.Regexp   // groups: operator, name
	methodRe      *regexp.Regexp   // groups: target, method, args
	callRe        *regexp.Regexp   // groups: function, args
	tryRe         *regexp.Regexp   //
	catchRes      []*regexp.Regexp // group 1: caught name (optional)
	switchRe      *regexp.Regexp   //
	caseRe        *regexp.Regexp   //
	breakRe       *regexp.Regexp   //
	continueRe    *regexp.Regexp   //
	arrayRe       *regexp.Regexp   // groups: name, index
}

var blockDelimiterRe = regexp.MustCompile(`^[{}()\[\];:]+$`)

// Language returns the tag this table was built for.
func (t *Table) Language() string { return t.language }

func (t *Table) IsComment(line string) bool {
	for _, p := range t.commentPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func (t *Table) IsImport(line string) bool {
	for _, p := range t.importPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

var quotedPathRe = regexp.MustCompile(`["'<]([\w./@-]+)[">']`)

// ExtractImport pulls the imported module name: a quoted/bracketed path if
// present, otherwise the first bare token after the keyword.
func (t *Table) ExtractImport(line string) string {
	if m := quotedPathRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	fields := strings.Fields(strings.TrimRight(line, ";"))
	for i, f := range fields {
		switch f {
		case "import", "from", "using", "#include", "use", "require":
			if i+1 < len(fields) {
				return strings.TrimRight(fields[i+1], ";,")
			}
		}
	}
	if len(fields) > 1 {
		return fields[1]
	}
	return line
}

func (t *Table) IsClass(line string) bool {
	return t.classRe != nil && t.classRe.MatchString(line)
}

func (t *Table) ExtractClassName(line string) string {
	return group(t.classRe, line, 1)
}

func (t *Table) IsConstructor(line string) bool {
	return t.constructorRe != nil && t.constructorRe.MatchString(line)
}

func (t *Table) IsFunction(line string) bool {
	for _, re := range t.funcRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func (t *Table) ExtractFunctionName(line string) string {
	for _, re := range t.funcRes {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func (t *Table) IsVariableDeclaration(line string) bool {
	return t.declRe != nil && t.declRe.MatchString(line)
}

func (t *Table) ExtractVariable(line string) (Declaration, bool) {
	m := match(t.declRe, line)
	if m == nil {
		return Declaration{}, false
	}
	d := Declaration{Name: m[1]}
	if len(m) > 2 && m[2] != "" {
		d.Value = strings.TrimSpace(m[2])
		d.HasValue = true
	}
	return d, true
}

func (t *Table) IsForLoop(line string) bool {
	return (t.forRe != nil && t.forRe.MatchString(line)) ||
		(t.forInRe != nil && t.forInRe.MatchString(line))
}

func (t *Table) ExtractForLoop(line string) (ForLoop, bool) {
	if m := match(t.forRe, line); m != nil {
		return ForLoop{
			Style:     ForCStyle,
			Init:      strings.TrimSpace(m[1]),
			Condition: strings.TrimSpace(m[2]),
			Update:    strings.TrimSpace(m[3]),
		}, true
	}
	if m := match(t.forInRe, line); m != nil {
		// The iterator pattern may carry several alternatives; the first
		// two non-empty groups are the variable and the iterable.
		groups := nonEmptyGroups(m)
		if len(groups) >= 2 {
			return ForLoop{
				Style:     ForIterator,
				Var:       groups[0],
				Iterable:  groups[1],
				Condition: "has next",
				Update:    "next item",
			}, true
		}
	}
	return ForLoop{}, false
}

func (t *Table) IsWhileLoop(line string) bool {
	return t.whileRe != nil && t.whileRe.MatchString(line)
}

func (t *Table) ExtractWhileCondition(line string) string {
	if m := match(t.whileRe, line); m != nil {
		if g := nonEmptyGroups(m); g != nil {
			return g[0]
		}
	}
	return ""
}

func (t *Table) IsIf(line string) bool {
	return t.ifRe != nil && t.ifRe.MatchString(line)
}

func (t *Table) IsElseIf(line string) bool {
	return t.elseIfRe != nil && t.elseIfRe.MatchString(line)
}

func (t *Table) IsElse(line string) bool {
	return t.elseRe != nil && t.elseRe.MatchString(line)
}

// ExtractIfCondition works for both if and else-if lines.
func (t *Table) ExtractIfCondition(line string) string {
	if m := match(t.elseIfRe, line); m != nil {
		if g := nonEmptyGroups(m); len(g) > 0 {
			return g[0]
		}
	}
	if m := match(t.ifRe, line); m != nil {
		if g := nonEmptyGroups(m); len(g) > 0 {
			return g[0]
		}
	}
	return ""
}

func (t *Table) IsPrint(line string) bool {
	for _, re := range t.printRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func (t *Table) ExtractPrint(line string) string {
	for _, re := range t.printRes {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func (t *Table) IsInput(line string) bool {
	return t.inputRe != nil && t.inputRe.MatchString(line)
}

func (t *Table) IsReturn(line string) bool {
	return t.returnRe != nil && t.returnRe.MatchString(line)
}

func (t *Table) ExtractReturn(line string) string {
	return strings.TrimSpace(group(t.returnRe, line, 1))
}

func (t *Table) IsThrow(line string) bool {
	return t.throwRe != nil && t.throwRe.MatchString(line)
}

func (t *Table) ExtractThrow(line string) string {
	return strings.TrimSpace(group(t.throwRe, line, 1))
}

func (t *Table) IsAssignment(line string) bool {
	_, ok := t.ExtractAssignment(line)
	return ok
}

func (t *Table) ExtractAssignment(line string) (Assignment, bool) {
	if m := match(t.incDecRe, line); m != nil {
		return Assignment{Name: m[1], Operator: m[2]}, true
	}
	if m := match(t.preIncDecRe, line); m != nil {
		return Assignment{Name: m[2], Operator: m[1]}, true
	}
	m := match(t.assignRe, line)
	if m == nil {
		return Assignment{}, false
	}
	expr := strings.TrimSpace(m[3])
	// `x == y` is a comparison, not an assignment.
	if m[2] == "=" && strings.HasPrefix(expr, "=") {
		return Assignment{}, false
	}
	return Assignment{Name: m[1], Operator: m[2], Expr: expr}, true
}

func (t *Table) IsMethodCall(line string) bool {
	return (t.methodRe != nil && t.methodRe.MatchString(line)) ||
		(t.callRe != nil && t.callRe.MatchString(line))
}

func (t *Table) ExtractMethodCall(line string) (MethodCall, bool) {
	if m := match(t.methodRe, line); m != nil {
		return MethodCall{Target: m[1], Method: m[2], Args: strings.TrimSpace(m[3])}, true
	}
	if m := match(t.callRe, line); m != nil {
		return MethodCall{Method: m[1], Args: strings.TrimSpace(m[2])}, true
	}
	return MethodCall{}, false
}

func (t *Table) IsTry(line string) bool {
	return t.tryRe != nil && t.tryRe.MatchString(line)
}

func (t *Table) IsCatch(line string) bool {
	for _, re := range t.catchRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func (t *Table) ExtractCatch(line string) string {
	for _, re := range t.catchRes {
		if m := re.FindStringSubmatch(line); m != nil {
			for _, g := range m[1:] {
				if g != "" {
					return g
				}
			}
			return ""
		}
	}
	return ""
}

func (t *Table) IsSwitch(line string) bool {
	return t.switchRe != nil && t.switchRe.MatchString(line)
}

func (t *Table) IsCase(line string) bool {
	return t.caseRe != nil && t.caseRe.MatchString(line)
}

func (t *Table) IsBreak(line string) bool {
	return t.breakRe != nil && t.breakRe.MatchString(line)
}

func (t *Table) IsContinue(line string) bool {
	return t.continueRe != nil && t.continueRe.MatchString(line)
}

func (t *Table) IsArrayAccess(line string) bool {
	return t.arrayRe != nil && t.arrayRe.MatchString(line)
}

func (t *Table) ExtractArrayAccess(line string) (ArrayAccess, bool) {
	m := match(t.arrayRe, line)
	if m == nil {
		return ArrayAccess{}, false
	}
	return ArrayAccess{Name: m[1], Index: strings.TrimSpace(m[2])}, true
}

func (t *Table) IsBlockDelimiter(line string) bool {
	return blockDelimiterRe.MatchString(line)
}

func match(re *regexp.Regexp, line string) []string {
	if re == nil {
		return nil
	}
	return re.FindStringSubmatch(line)
}

// nonEmptyGroups returns the trimmed non-empty capture groups of a match.
func nonEmptyGroups(m []string) []string {
	var out []string
	for _, g := range m[1:] {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

func group(re *regexp.Regexp, line string, n int) string {
	m := match(re, line)
	if m == nil || n >= len(m) {
		return ""
	}
	return m[n]
}
