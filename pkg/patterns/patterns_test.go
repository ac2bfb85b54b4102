package patterns_test

import (
	"testing"

	"github.com/edulab/stepwise/pkg/patterns"
)

func TestCStyle_Classification(t *testing.T) {
	p := patterns.NewCStyle()

	t.Run("comments", func(t *testing.T) {
		for _, line := range []string{"// note", "/* block */", "* continued"} {
			if !p.IsComment(line) {
				t.Errorf("expected comment: %q", line)
			}
		}
		if p.IsComment("let x = 5") {
			t.Error("declaration misread as comment")
		}
	})

	t.Run("imports", func(t *testing.T) {
		cases := map[string]string{
			`import { useState } from "react"`: "react",
			`#include <stdio.h>`:               "stdio.h",
			`import java.util.List;`:           "java.util.List",
		}
		for line, want := range cases {
			if !p.IsImport(line) {
				t.Fatalf("expected import: %q", line)
			}
			if got := p.ExtractImport(line); got != want {
				t.Errorf("ExtractImport(%q) = %q, want %q", line, got, want)
			}
		}
	})

	t.Run("class and function", func(t *testing.T) {
		if !p.IsClass("public class Counter {") {
			t.Fatal("expected class")
		}
		if got := p.ExtractClassName("public class Counter {"); got != "Counter" {
			t.Errorf("class name = %q", got)
		}
		if !p.IsFunction("function greet(name) {") {
			t.Fatal("expected function")
		}
		if got := p.ExtractFunctionName("function greet(name) {"); got != "greet" {
			t.Errorf("function name = %q", got)
		}
		if got := p.ExtractFunctionName("const add = (a, b) => a + b"); got != "add" {
			t.Errorf("arrow function name = %q", got)
		}
	})

	t.Run("declarations", func(t *testing.T) {
		d, ok := p.ExtractVariable("let total = 10;")
		if !ok || d.Name != "total" || !d.HasValue || d.Value != "10" {
			t.Errorf("unexpected declaration: %+v ok=%v", d, ok)
		}
		d, ok = p.ExtractVariable("int count;")
		if !ok || d.Name != "count" || d.HasValue {
			t.Errorf("unexpected declaration: %+v ok=%v", d, ok)
		}
	})

	t.Run("for loops", func(t *testing.T) {
		f, ok := p.ExtractForLoop("for (i = 0; i < 3; i++) {")
		if !ok || f.Style != patterns.ForCStyle {
			t.Fatalf("unexpected loop: %+v ok=%v", f, ok)
		}
		if f.Init != "i = 0" || f.Condition != "i < 3" || f.Update != "i++" {
			t.Errorf("unexpected operands: %+v", f)
		}

		f, ok = p.ExtractForLoop("for (const item of items) {")
		if !ok || f.Style != patterns.ForIterator || f.Var != "item" || f.Iterable != "items" {
			t.Errorf("unexpected iterator loop: %+v ok=%v", f, ok)
		}
	})

	t.Run("while and branches", func(t *testing.T) {
		if got := p.ExtractWhileCondition("while (x < 10) {"); got != "x < 10" {
			t.Errorf("while condition = %q", got)
		}
		if !p.IsIf("if (a > b) {") || p.IsIf("ifdef(x)") {
			t.Error("if classification wrong")
		}
		if got := p.ExtractIfCondition("if (a > b) {"); got != "a > b" {
			t.Errorf("if condition = %q", got)
		}
		if !p.IsElseIf("} else if (a == b) {") {
			t.Error("expected else-if")
		}
		if got := p.ExtractIfCondition("} else if (a == b) {"); got != "a == b" {
			t.Errorf("else-if condition = %q", got)
		}
		if !p.IsElse("} else {") || p.IsElse("} else if (x) {") {
			t.Error("else classification wrong")
		}
	})

	t.Run("print", func(t *testing.T) {
		cases := map[string]string{
			"console.log(x);":           "x",
			`System.out.println("hi");`: `"hi"`,
			"print(i)":                  "i",
		}
		for line, want := range cases {
			if !p.IsPrint(line) {
				t.Fatalf("expected print: %q", line)
			}
			if got := p.ExtractPrint(line); got != want {
				t.Errorf("ExtractPrint(%q) = %q, want %q", line, got, want)
			}
		}
	})

	t.Run("assignments", func(t *testing.T) {
		a, ok := p.ExtractAssignment("x = 5;")
		if !ok || a.Name != "x" || a.Operator != "=" || a.Expr != "5" {
			t.Errorf("unexpected assignment: %+v ok=%v", a, ok)
		}
		a, ok = p.ExtractAssignment("x += 2")
		if !ok || a.Operator != "+=" || a.Expr != "2" {
			t.Errorf("unexpected compound assignment: %+v ok=%v", a, ok)
		}
		a, ok = p.ExtractAssignment("i++;")
		if !ok || a.Name != "i" || a.Operator != "++" {
			t.Errorf("unexpected increment: %+v ok=%v", a, ok)
		}
		if _, ok := p.ExtractAssignment("x == 5"); ok {
			t.Error("comparison misread as assignment")
		}
	})

	t.Run("calls", func(t *testing.T) {
		m, ok := p.ExtractMethodCall("list.append(x);")
		if !ok || m.Target != "list" || m.Method != "append" || m.Args != "x" {
			t.Errorf("unexpected method call: %+v ok=%v", m, ok)
		}
		m, ok = p.ExtractMethodCall("doWork(a, b)")
		if !ok || m.Target != "" || m.Method != "doWork" {
			t.Errorf("unexpected function call: %+v ok=%v", m, ok)
		}
	})

	t.Run("exceptions and flow", func(t *testing.T) {
		if !p.IsTry("try {") {
			t.Error("expected try")
		}
		if !p.IsCatch("} catch (err) {") {
			t.Error("expected catch")
		}
		if got := p.ExtractCatch("} catch (err) {"); got != "err" {
			t.Errorf("catch param = %q", got)
		}
		if !p.IsThrow(`throw new Error("boom");`) {
			t.Error("expected throw")
		}
		if !p.IsBreak("break;") || !p.IsContinue("continue") {
			t.Error("break/continue classification wrong")
		}
	})

	t.Run("array access", func(t *testing.T) {
		a, ok := p.ExtractArrayAccess("scores[i]")
		if !ok || a.Name != "scores" || a.Index != "i" {
			t.Errorf("unexpected array access: %+v ok=%v", a, ok)
		}
	})

	t.Run("block delimiters", func(t *testing.T) {
		for _, line := range []string{"}", "{", "});"} {
			if !p.IsBlockDelimiter(line) {
				t.Errorf("expected block delimiter: %q", line)
			}
		}
		if p.IsBlockDelimiter("x = 1") {
			t.Error("statement misread as delimiter")
		}
	})
}

func TestPython_Classification(t *testing.T) {
	p := patterns.NewPython()

	if !p.IsComment("# note") {
		t.Error("expected comment")
	}
	if !p.IsImport("from math import sqrt") {
		t.Error("expected import")
	}
	if got := p.ExtractFunctionName("def greet(name):"); got != "greet" {
		t.Errorf("function name = %q", got)
	}
	if !p.IsConstructor("def __init__(self):") {
		t.Error("expected constructor")
	}

	f, ok := p.ExtractForLoop("for i in range(3):")
	if !ok || f.Style != patterns.ForIterator || f.Var != "i" || f.Iterable != "range(3)" {
		t.Errorf("unexpected loop: %+v ok=%v", f, ok)
	}

	if got := p.ExtractWhileCondition("while count < 5:"); got != "count < 5" {
		t.Errorf("while condition = %q", got)
	}
	if got := p.ExtractIfCondition("elif x == 2:"); got != "x == 2" {
		t.Errorf("elif condition = %q", got)
	}
	if !p.IsElse("else:") {
		t.Error("expected else")
	}

	// Python has no declaration keyword; plain assignment covers it.
	if p.IsVariableDeclaration("x = 5") {
		t.Error("python should not classify declarations")
	}
	a, ok := p.ExtractAssignment("x = 5")
	if !ok || a.Name != "x" || a.Expr != "5" {
		t.Errorf("unexpected assignment: %+v ok=%v", a, ok)
	}

	if !p.IsCatch("except ValueError as e:") {
		t.Error("expected except")
	}
	if got := p.ExtractCatch("except ValueError as e:"); got != "e" {
		t.Errorf("except param = %q", got)
	}
	if !p.IsThrow("raise ValueError(msg)") {
		t.Error("expected raise")
	}
}

func TestGeneric_CoversBothFamilies(t *testing.T) {
	p := patterns.NewGeneric()

	if !p.IsPrint("console.log(x);") || !p.IsPrint("print(x)") {
		t.Error("generic provider should accept both print families")
	}
	if !p.IsComment("// a") || !p.IsComment("# b") {
		t.Error("generic provider should accept both comment families")
	}

	f, ok := p.ExtractForLoop("for i in range(3):")
	if !ok || f.Var != "i" || f.Iterable != "range(3)" {
		t.Errorf("python-style loop: %+v ok=%v", f, ok)
	}
	f, ok = p.ExtractForLoop("for (i = 0; i < 3; i++) {")
	if !ok || f.Style != patterns.ForCStyle {
		t.Errorf("c-style loop: %+v ok=%v", f, ok)
	}

	if got := p.ExtractIfCondition("if x > 1:"); got != "x > 1" {
		t.Errorf("python if condition = %q", got)
	}
	if got := p.ExtractIfCondition("if (x > 1) {"); got != "x > 1" {
		t.Errorf("c-style if condition = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	r := patterns.NewRegistry()

	if got := r.Provider("python").Language(); got != "python-style" {
		t.Errorf("python resolves to %q", got)
	}
	if got := r.Provider("PY").Language(); got != "python-style" {
		t.Errorf("tags should be case-insensitive, got %q", got)
	}
	if got := r.Provider("typescript").Language(); got != "c-style" {
		t.Errorf("typescript resolves to %q", got)
	}
	if got := r.Provider("cobol").Language(); got != "generic" {
		t.Errorf("unknown tags should fall back to generic, got %q", got)
	}
	if r.Known("cobol") {
		t.Error("cobol should not be a known tag")
	}

	tags := r.Tags()
	if len(tags) == 0 {
		t.Fatal("expected registered tags")
	}
}
