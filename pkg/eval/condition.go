package eval

import "strings"

// comparison operators tried in precedence order. Equality operators
// absorb a trailing '=' so strict JS forms (===, !==) compare the same way.
var comparisonOps = []string{"<=", ">=", "==", "!=", "<", ">"}

// EvaluateCondition computes a best-effort boolean for a condition string.
// It scans for one comparison operator, evaluates both sides and applies
// the comparison. A condition with no recognizable comparison is treated
// as true, biasing loops and branches toward entering; the one exception
// is a condition that itself evaluates to a boolean literal or variable.
func EvaluateCondition(cond string, vars Snapshot) bool {
	cond = stripOuterParens(strings.TrimSpace(cond))
	if cond == "" {
		return true
	}

	for _, op := range comparisonOps {
		idx := findOperator(cond, op)
		if idx <= 0 {
			continue
		}
		lhs := cond[:idx]
		rhs := cond[idx+len(op):]
		// Absorb the strict-equality third '='.
		if (op == "==" || op == "!=") && strings.HasPrefix(rhs, "=") {
			rhs = rhs[1:]
		}
		return compare(op, Evaluate(lhs, vars), Evaluate(rhs, vars))
	}

	// No comparison operator. A bare boolean still decides; anything else
	// defaults to true.
	if b, ok := Evaluate(cond, vars).(bool); ok {
		return b
	}
	return true
}

// findOperator locates op outside quotes, brackets and parentheses.
// Returns -1 when absent or only present in an unusable position.
func findOperator(s, op string) int {
	depth := 0
	var quote byte
	for i := 0; i+len(op) <= len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			continue
		case c == '"' || c == '\'' || c == '`':
			quote = c
			continue
		case c == '(' || c == '[':
			depth++
			continue
		case c == ')' || c == ']':
			depth--
			continue
		}
		if depth != 0 || s[i:i+len(op)] != op {
			continue
		}
		// "<" must not match inside "<=", and "==" must not be the tail
		// of "<=", ">=", "!=".
		if (op == "<" || op == ">") && i+1 < len(s) && s[i+1] == '=' {
			continue
		}
		if op == "==" && i > 0 && (s[i-1] == '<' || s[i-1] == '>' || s[i-1] == '!' || s[i-1] == '=') {
			continue
		}
		return i
	}
	return -1
}

// compare applies a comparison operator over two evaluated values.
// Numbers compare numerically, everything else by formatted text.
func compare(op string, left, right any) bool {
	lf, lok := Numeric(left)
	rf, rok := Numeric(right)
	if lok && rok {
		switch op {
		case "<":
			return lf < rf
		case ">":
			return lf > rf
		case "<=":
			return lf <= rf
		case ">=":
			return lf >= rf
		case "==":
			return lf == rf
		case "!=":
			return lf != rf
		}
	}

	ls, rs := FormatValue(left), FormatValue(right)
	switch op {
	case "<":
		return ls < rs
	case ">":
		return ls > rs
	case "<=":
		return ls <= rs
	case ">=":
		return ls >= rs
	case "==":
		return ls == rs
	case "!=":
		return ls != rs
	}
	return true
}

// stripOuterParens removes one or more balanced outer parenthesis pairs.
func stripOuterParens(s string) string {
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		depth := 0
		balanced := true
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i != len(s)-1 {
					balanced = false
				}
			}
		}
		if !balanced || depth != 0 {
			return s
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
