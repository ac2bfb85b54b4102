package eval_test

import (
	"testing"

	"github.com/edulab/stepwise/pkg/eval"
)

func TestEvaluate_Literals(t *testing.T) {
	cases := []struct {
		expr string
		want any
	}{
		{`"hello"`, "hello"},
		{`'world'`, "world"},
		{`42`, 42},
		{`-7`, -7},
		{`3.25`, 3.25},
		{`true`, true},
		{`True`, true},
		{`false`, false},
		{`None`, nil},
		{`null`, nil},
		{`nil`, nil},
		{`[1, 2, 3]`, "[1, 2, 3]"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got := eval.Evaluate(tc.expr, nil)
			if got != tc.want {
				t.Errorf("Evaluate(%q) = %v (%T), want %v (%T)", tc.expr, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestEvaluate_Variables(t *testing.T) {
	vars := eval.Snapshot{"x": 5, "name": "ada"}

	if got := eval.Evaluate("x", vars); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := eval.Evaluate("name", vars); got != "ada" {
		t.Errorf("expected ada, got %v", got)
	}
	// Unknown names degrade to verbatim text, never error.
	if got := eval.Evaluate("mystery", vars); got != "mystery" {
		t.Errorf("expected verbatim text, got %v", got)
	}
}

func TestEvaluate_Arithmetic(t *testing.T) {
	vars := eval.Snapshot{"x": 10, "y": 3, "greeting": "hi "}

	cases := []struct {
		expr string
		want any
	}{
		{"x + y", 13},
		{"x - y", 7},
		{"x * y", 30},
		{"x % y", 1},
		{"x / 2", 5},
		{"x / 4", 2.5},
		{"2 + 3.5", 5.5},
		{`greeting + "there"`, "hi there"},
		{`"n=" + x`, "n=10"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got := eval.Evaluate(tc.expr, vars)
			if got != tc.want {
				t.Errorf("Evaluate(%q) = %v (%T), want %v (%T)", tc.expr, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestEvaluate_DegradesToText(t *testing.T) {
	cases := []string{
		"x / 0",
		"fetch(url)",
		"a ** b",
	}
	for _, expr := range cases {
		got := eval.Evaluate(expr, eval.Snapshot{"x": 1})
		if got != expr {
			t.Errorf("Evaluate(%q) = %v, want verbatim text", expr, got)
		}
	}
}

func TestEvaluateCondition(t *testing.T) {
	vars := eval.Snapshot{"i": 2, "n": 10, "s": "abc", "flag": false}

	cases := []struct {
		cond string
		want bool
	}{
		{"i < n", true},
		{"i > n", false},
		{"i <= 2", true},
		{"i >= 3", false},
		{"i == 2", true},
		{"i != 2", false},
		{"i === 2", true},
		{"i !== 2", false},
		{"1 > 2", false},
		{`s == "abc"`, true},
		{"(i < n)", true},
		// Unmatched conditions default to entering.
		{"true", true},
		{"hasNext()", true},
		{"", true},
		// A bare boolean still decides.
		{"false", false},
		{"flag", false},
	}
	for _, tc := range cases {
		t.Run(tc.cond, func(t *testing.T) {
			got := eval.EvaluateCondition(tc.cond, vars)
			if got != tc.want {
				t.Errorf("EvaluateCondition(%q) = %v, want %v", tc.cond, got, tc.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{5, "5"},
		{2.5, "2.5"},
		{true, "true"},
		{"txt", "txt"},
	}
	for _, tc := range cases {
		if got := eval.FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInferType(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{5, "number"},
		{2.5, "number"},
		{true, "boolean"},
		{"txt", "string"},
		{"[1, 2]", "array"},
	}
	for _, tc := range cases {
		if got := eval.InferType(tc.in); got != tc.want {
			t.Errorf("InferType(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
