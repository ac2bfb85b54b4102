package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edulab/stepwise/internal/tracer"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/timeline"
)

const sampleCode = "x = 5\nprint(x)"

func newTestPlayer(t *testing.T) Player {
	t.Helper()
	ctrl := timeline.NewController(tracer.New(), timeline.WithInterval(50*time.Millisecond))
	ctrl.Load(sampleCode, "python")
	p := NewPlayer(ctrl, sampleCode, "sample.py")

	m, _ := p.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(Player)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPlayerStepsForwardOnKey(t *testing.T) {
	p := newTestPlayer(t)

	m, _ := p.Update(keyMsg("right"))
	p = m.(Player)

	if p.snap.CurrentStepIndex != 0 {
		t.Fatalf("expected cursor at step 0, got %d", p.snap.CurrentStepIndex)
	}
	if p.snap.CurrentLine != 1 {
		t.Errorf("expected current line 1, got %d", p.snap.CurrentLine)
	}
}

func TestPlayerStepsBackward(t *testing.T) {
	p := newTestPlayer(t)

	m, _ := p.Update(keyMsg("right"))
	m, _ = m.(Player).Update(keyMsg("right"))
	m, _ = m.(Player).Update(keyMsg("left"))
	p = m.(Player)

	if p.snap.CurrentStepIndex != 0 {
		t.Fatalf("expected cursor back at step 0, got %d", p.snap.CurrentStepIndex)
	}
}

func TestPlayerViewShowsCodeAndState(t *testing.T) {
	p := newTestPlayer(t)

	m, _ := p.Update(keyMsg("right"))
	view := m.(Player).View()

	if !strings.Contains(view, "x = 5") {
		t.Errorf("view missing source line: %q", view)
	}
	if !strings.Contains(view, "Variables") {
		t.Errorf("view missing variables pane")
	}
	if !strings.Contains(view, "sample.py") {
		t.Errorf("view missing title")
	}
}

func TestPlayerAutoPlayAdvancesOnTick(t *testing.T) {
	p := newTestPlayer(t)

	m, cmd := p.Update(keyMsg("p"))
	p = m.(Player)
	if !p.playing {
		t.Fatal("expected player to enter playing mode")
	}
	if cmd == nil {
		t.Fatal("expected a tick command")
	}

	m, _ = p.Update(tickMsg(time.Now()))
	p = m.(Player)
	if p.snap.CurrentStepIndex != 0 {
		t.Fatalf("expected tick to advance to step 0, got %d", p.snap.CurrentStepIndex)
	}
}

func TestPlayerAutoPlayStopsAtEnd(t *testing.T) {
	p := newTestPlayer(t)

	m, _ := p.Update(keyMsg("p"))
	p = m.(Player)
	for i := 0; i < len(p.snap.Steps); i++ {
		m, _ = p.Update(tickMsg(time.Now()))
		p = m.(Player)
	}

	if p.playing {
		t.Error("expected playing to stop at the final step")
	}
	if !p.snap.IsComplete {
		t.Error("expected snapshot to report completion")
	}
}

func TestPlayerQuit(t *testing.T) {
	p := newTestPlayer(t)

	_, cmd := p.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
}

func TestStepMarkdown(t *testing.T) {
	step := domain.Step{
		LineNumber:  3,
		SourceText:  "x = 5",
		Explanation: "Assign 5 to 'x'",
		Details: &domain.StepDetails{
			After: map[string]any{"x": 5},
		},
	}

	md := StepMarkdown(step)
	if !strings.Contains(md, "Line 3") {
		t.Errorf("markdown missing line number: %q", md)
	}
	if !strings.Contains(md, "Assign 5 to 'x'") {
		t.Errorf("markdown missing explanation: %q", md)
	}
	if !strings.Contains(md, "`x` = **5**") {
		t.Errorf("markdown missing variable delta: %q", md)
	}
}

func TestStepMarkdownCondition(t *testing.T) {
	step := domain.Step{
		LineNumber:  1,
		SourceText:  "if x > 3:",
		Explanation: "Check whether x > 3",
		Details: &domain.StepDetails{
			Condition: "x > 3",
			Result:    true,
		},
	}

	md := StepMarkdown(step)
	if !strings.Contains(md, "condition `x > 3` is **true**") {
		t.Errorf("markdown missing condition result: %q", md)
	}
}
