// Package eval is the best-effort expression and condition evaluator used
// to compute displayed values for the trace. It recognizes literals,
// variable references and a single top-level binary operation; anything it
// cannot make sense of degrades to its own verbatim text. It never returns
// an error.
package eval

import (
	"math"
	"strconv"
	"strings"
)

// Snapshot is a point-in-time view of variable values.
type Snapshot map[string]any

// arithmetic operators tried at the top level, in order.
var arithmeticOps = []string{"+", "-", "*", "/", "%"}

// Evaluate computes a best-effort value for expr against the snapshot.
// The result is for display only; unrecognized expressions come back as
// their own trimmed text.
func Evaluate(expr string, vars Snapshot) any {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}

	// String literal: whole expression wrapped in matching quotes.
	if inner, ok := stringLiteral(expr); ok {
		return inner
	}

	// Numeric literals. Integers stay integers so "5" displays as 5.
	if n, err := strconv.ParseInt(expr, 10, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f
	}

	// Boolean and null-like literals across the supported languages.
	switch expr {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	case "null", "None", "nil", "NULL", "undefined":
		return nil
	}

	// Known variable.
	if v, ok := vars[expr]; ok {
		return v
	}

	// Array literal: kept as display text, never materialized.
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		return expr
	}

	// Single top-level binary arithmetic operation.
	if op, idx := splitBinary(expr); idx > 0 {
		left := Evaluate(expr[:idx], vars)
		right := Evaluate(expr[idx+len(op):], vars)
		if v, ok := Apply(op, left, right); ok {
			return v
		}
	}

	// Best-effort contract: degrade to verbatim text.
	return expr
}

// stringLiteral reports whether expr is a quoted string and returns its body.
func stringLiteral(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}
	q := expr[0]
	if q != '"' && q != '\'' && q != '`' {
		return "", false
	}
	if expr[len(expr)-1] != q {
		return "", false
	}
	body := expr[1 : len(expr)-1]
	// Reject "a" + "b": the closing quote must be the literal's own.
	if strings.ContainsRune(body, rune(q)) {
		return "", false
	}
	return body, true
}

// splitBinary finds the first top-level arithmetic operator in expr,
// ignoring operators inside quotes, brackets or parentheses. A match at
// position 0 (unary sign) is never split.
func splitBinary(expr string) (op string, idx int) {
	depth := 0
	var quote byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case depth == 0 && i > 0:
			for _, candidate := range arithmeticOps {
				if strings.HasPrefix(expr[i:], candidate) {
					// Skip ++/--/+= style operators: those are
					// assignments, not arithmetic.
					if i+1 < len(expr) && (expr[i+1] == c || expr[i+1] == '=') {
						continue
					}
					if strings.TrimSpace(expr[:i]) == "" {
						continue
					}
					return candidate, i
				}
			}
		}
	}
	return "", -1
}

// Apply performs op on two evaluated operands. String "+" means
// concatenation, matching the display semantics of the source languages.
func Apply(op string, left, right any) (any, bool) {
	if op == "+" {
		ls, lok := left.(string)
		rs, rok := right.(string)
		if lok || rok {
			if !lok {
				ls = FormatValue(left)
			}
			if !rok {
				rs = FormatValue(right)
			}
			return ls + rs, true
		}
	}

	lf, lok := Numeric(left)
	rf, rok := Numeric(right)
	if !lok || !rok {
		return nil, false
	}

	li, lInt := left.(int)
	ri, rInt := right.(int)
	bothInt := lInt && rInt

	switch op {
	case "+":
		if bothInt {
			return li + ri, true
		}
		return lf + rf, true
	case "-":
		if bothInt {
			return li - ri, true
		}
		return lf - rf, true
	case "*":
		if bothInt {
			return li * ri, true
		}
		return lf * rf, true
	case "/":
		if rf == 0 {
			return nil, false
		}
		if bothInt && li%ri == 0 {
			return li / ri, true
		}
		return lf / rf, true
	case "%":
		if rf == 0 {
			return nil, false
		}
		if bothInt {
			return li % ri, true
		}
		return math.Mod(lf, rf), true
	}
	return nil, false
}

// Numeric coerces an evaluated value to float64 when it represents a number.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
