package tracer

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/edulab/stepwise/pkg/domain"
)

func buildSteps(t *testing.T, code, language string, opts ...Option) []domain.Step {
	t.Helper()
	opts = append(opts, WithClock(func() time.Time { return time.Time{} }))
	return New(opts...).Build(code, language)
}

func typesOf(steps []domain.Step) []domain.StepType {
	out := make([]domain.StepType, len(steps))
	for i, s := range steps {
		out[i] = s.Type
	}
	return out
}

func outputsOf(steps []domain.Step) []string {
	var out []string
	for _, s := range steps {
		if s.Type == domain.StepOutput && s.Details != nil {
			out = append(out, s.Details.Value)
		}
	}
	return out
}

func countType(steps []domain.Step, st domain.StepType) int {
	n := 0
	for _, s := range steps {
		if s.Type == st {
			n++
		}
	}
	return n
}

func TestBuildAssignmentThenPrint(t *testing.T) {
	steps := buildSteps(t, "x = 5\nprint(x)", "python")

	wantTypes := []domain.StepType{domain.StepAssignment, domain.StepOutput}
	if got := typesOf(steps); !reflect.DeepEqual(got, wantTypes) {
		t.Fatalf("step types = %v, want %v", got, wantTypes)
	}

	assign := steps[0]
	if assign.Details == nil || assign.Details.After["x"] != 5 {
		t.Errorf("assignment after-state = %+v, want x=5", assign.Details)
	}
	if assign.LineNumber != 1 {
		t.Errorf("assignment line = %d, want 1", assign.LineNumber)
	}

	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"5"}) {
		t.Errorf("outputs = %v, want [5]", got)
	}
}

func TestBuildBoundedForLoop(t *testing.T) {
	code := "for (let i = 0; i < 3; i++) {\n  console.log(i)\n}"
	steps := buildSteps(t, code, "javascript")

	wantTypes := []domain.StepType{
		domain.StepLoopInit,
		domain.StepConditionCheck, domain.StepIteration, domain.StepOutput, domain.StepLoopUpdate,
		domain.StepConditionCheck, domain.StepIteration, domain.StepOutput, domain.StepLoopUpdate,
		domain.StepConditionCheck, domain.StepIteration, domain.StepOutput, domain.StepLoopUpdate,
		domain.StepConditionCheck, domain.StepExpression,
	}
	if got := typesOf(steps); !reflect.DeepEqual(got, wantTypes) {
		t.Fatalf("step types = %v, want %v", got, wantTypes)
	}

	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Errorf("outputs = %v, want [0 1 2]", got)
	}

	last := steps[len(steps)-1]
	if last.Type != domain.StepExpression {
		t.Errorf("final step type = %s, want %s", last.Type, domain.StepExpression)
	}

	check := steps[len(steps)-2]
	if check.Details == nil || check.Details.Result != false {
		t.Errorf("final condition check = %+v, want Result=false", check.Details)
	}
}

func TestBuildSkippedBranch(t *testing.T) {
	code := "let x = 5\nif (x > 10) { console.log(\"a\") }"
	steps := buildSteps(t, code, "javascript")

	if got := countType(steps, domain.StepConditionCheck); got != 1 {
		t.Fatalf("condition checks = %d, want 1", got)
	}
	if got := countType(steps, domain.StepBranchSkipped); got != 1 {
		t.Fatalf("branch-skipped steps = %d, want 1", got)
	}
	if got := countType(steps, domain.StepBranchTaken); got != 0 {
		t.Errorf("branch-taken steps = %d, want 0", got)
	}
	if got := outputsOf(steps); len(got) != 0 {
		t.Errorf("outputs = %v, want none", got)
	}
}

func TestBuildInlineBranchBodies(t *testing.T) {
	code := "let x = 5\nif (x > 3) { console.log(\"big\") } else { console.log(\"small\") }"
	steps := buildSteps(t, code, "javascript")

	if got := countType(steps, domain.StepConditionCheck); got != 1 {
		t.Fatalf("condition checks = %d, want 1", got)
	}
	if got := countType(steps, domain.StepBranchTaken); got != 1 {
		t.Errorf("branch-taken steps = %d, want 1", got)
	}
	if got := countType(steps, domain.StepBranchSkipped); got != 1 {
		t.Errorf("branch-skipped steps = %d, want 1 for the else arm", got)
	}
	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"big"}) {
		t.Errorf("outputs = %v, want [big]", got)
	}
}

func TestBuildInlineElseArmRuns(t *testing.T) {
	code := "let x = 1\nif (x > 3) { console.log(\"big\") } else { console.log(\"small\") }"
	steps := buildSteps(t, code, "javascript")

	if got := countType(steps, domain.StepBranchTaken); got != 1 {
		t.Errorf("branch-taken steps = %d, want 1 for the else arm", got)
	}
	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"small"}) {
		t.Errorf("outputs = %v, want [small]", got)
	}
}

func TestBuildBranchChain(t *testing.T) {
	code := "y = 2\n" +
		"if y == 1:\n" +
		"    print(\"one\")\n" +
		"elif y == 2:\n" +
		"    print(\"two\")\n" +
		"else:\n" +
		"    print(\"many\")"
	steps := buildSteps(t, code, "python")

	if got := countType(steps, domain.StepConditionCheck); got != 2 {
		t.Errorf("condition checks = %d, want 2 (else has none)", got)
	}
	if got := countType(steps, domain.StepBranchTaken); got != 1 {
		t.Errorf("branch-taken steps = %d, want 1", got)
	}
	if got := countType(steps, domain.StepBranchSkipped); got != 2 {
		t.Errorf("branch-skipped steps = %d, want 2", got)
	}
	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"two"}) {
		t.Errorf("outputs = %v, want [two]", got)
	}
}

func TestBuildWhileLoopCapped(t *testing.T) {
	code := "i = 0\nwhile i < 100:\n    print(i)\n    i += 1"
	steps := buildSteps(t, code, "python")

	if got := countType(steps, domain.StepIteration); got != domain.DefaultWhileLoopCap {
		t.Fatalf("iterations = %d, want %d", got, domain.DefaultWhileLoopCap)
	}

	last := steps[len(steps)-1]
	if last.Type != domain.StepExpression {
		t.Fatalf("final step type = %s, want %s", last.Type, domain.StepExpression)
	}
	if want := "simulation limit"; !strings.Contains(last.Explanation, want) {
		t.Errorf("final explanation %q does not mention %q", last.Explanation, want)
	}
}

func TestBuildWhileLoopFalseCondition(t *testing.T) {
	code := "x = 5\nwhile x < 0:\n    print(x)"
	steps := buildSteps(t, code, "python")

	if got := countType(steps, domain.StepIteration); got != 0 {
		t.Errorf("iterations = %d, want 0", got)
	}
	if got := countType(steps, domain.StepConditionCheck); got != 1 {
		t.Errorf("condition checks = %d, want 1", got)
	}
	if got := outputsOf(steps); len(got) != 0 {
		t.Errorf("outputs = %v, want none", got)
	}
}

func TestBuildIteratorLoopOverRange(t *testing.T) {
	code := "for n in range(3):\n    print(n)"
	steps := buildSteps(t, code, "python")

	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Errorf("outputs = %v, want [0 1 2]", got)
	}
	if got := countType(steps, domain.StepIteration); got != 3 {
		t.Errorf("iterations = %d, want 3", got)
	}
	// 3 "has next" checks plus the final exhausted one.
	if got := countType(steps, domain.StepConditionCheck); got != 4 {
		t.Errorf("condition checks = %d, want 4", got)
	}
}

func TestBuildIteratorLoopOverArrayVariable(t *testing.T) {
	code := "items = [10, 20]\nfor v in items:\n    print(v)"
	steps := buildSteps(t, code, "python")

	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"10", "20"}) {
		t.Errorf("outputs = %v, want [10 20]", got)
	}
}

func TestBuildCapOverride(t *testing.T) {
	code := "for (let i = 0; i < 50; i++) {\n  console.log(i)\n}"
	steps := buildSteps(t, code, "javascript", WithIterationCaps(2, 1))

	if got := countType(steps, domain.StepIteration); got != 2 {
		t.Errorf("iterations = %d, want 2", got)
	}
	last := steps[len(steps)-1]
	if !strings.Contains(last.Explanation, "simulation limit") {
		t.Errorf("final explanation %q does not mention the cap", last.Explanation)
	}
}

func TestBuildTryRaiseExcept(t *testing.T) {
	code := "try:\n" +
		"    raise ValueError(\"boom\")\n" +
		"except ValueError as e:\n" +
		"    print(\"caught\")"
	steps := buildSteps(t, code, "python")

	wantTypes := []domain.StepType{
		domain.StepTry, domain.StepThrow, domain.StepCatch, domain.StepOutput,
	}
	if got := typesOf(steps); !reflect.DeepEqual(got, wantTypes) {
		t.Fatalf("step types = %v, want %v", got, wantTypes)
	}

	raise := steps[1]
	if raise.Details == nil || raise.Details.Error == nil {
		t.Fatalf("raise step carries no error details: %+v", raise)
	}
}

func TestBuildStructure(t *testing.T) {
	code := "import math\n" +
		"class Circle:\n" +
		"    def __init__(self):\n" +
		"        pass\n" +
		"    def area(self):\n" +
		"        return 0"
	steps := buildSteps(t, code, "python")

	for _, want := range []domain.StepType{
		domain.StepImport, domain.StepClass, domain.StepConstructor,
		domain.StepFunctionCall, domain.StepReturn,
	} {
		if countType(steps, want) == 0 {
			t.Errorf("no %s step in %v", want, typesOf(steps))
		}
	}
}

func TestBuildUnknownLineFallsThrough(t *testing.T) {
	steps := buildSteps(t, "@@@ not code @@@", "python")

	if len(steps) != 1 || steps[0].Type != domain.StepExpression {
		t.Fatalf("steps = %v, want a single %s", typesOf(steps), domain.StepExpression)
	}
}

func TestBuildUnknownLanguageUsesGenericProvider(t *testing.T) {
	steps := buildSteps(t, "x = 1\nprint(x)", "brainfuck")

	if got := outputsOf(steps); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("outputs = %v, want [1]", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	code := "total = 0\n" +
		"for (let i = 0; i < 4; i++) {\n" +
		"  console.log(i)\n" +
		"}\n" +
		"if (total == 0) {\n" +
		"  console.log(\"empty\")\n" +
		"}"

	a := buildSteps(t, code, "javascript")
	b := buildSteps(t, code, "javascript")

	if !reflect.DeepEqual(a, b) {
		t.Fatal("two builds of the same source differ")
	}
	for i, s := range a {
		if s.ID != i {
			t.Fatalf("step %d has id %d, want dense ids from 0", i, s.ID)
		}
	}
}

func TestBuildHooks(t *testing.T) {
	var event domain.TraceEvent
	b := New(WithLifecycleHooks(domain.LifecycleHooks{
		OnTraceBuilt: func(e domain.TraceEvent) { event = e },
	}))

	steps := b.Build("x = 1", "python")

	if event.Language != "python" {
		t.Errorf("hook language = %q, want python", event.Language)
	}
	if event.Steps != len(steps) {
		t.Errorf("hook step count = %d, want %d", event.Steps, len(steps))
	}
}
