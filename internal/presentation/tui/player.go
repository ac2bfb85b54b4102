package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/timeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("31")).
			Padding(0, 2)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	currentLineStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	visitedLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	varNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	sidePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1)
)

const sidePaneWidth = 34

type tickMsg time.Time

// Player is the Bubble Tea model that drives a timeline interactively.
// Auto-play is driven by the Bubble Tea tick loop rather than the
// controller's own goroutine, so every advance repaints the screen.
type Player struct {
	ctrl    *timeline.Controller
	code    []string
	title   string
	render  func(string) (string, error)
	snap    *domain.TimelineSnapshot
	playing bool
	explain viewport.Model
	width   int
	height  int
	ready   bool
}

// NewPlayer creates a player over an already loaded controller.
func NewPlayer(ctrl *timeline.Controller, code, title string) Player {
	return Player{
		ctrl:   ctrl,
		code:   strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n"),
		title:  title,
		render: NewRenderer(),
		snap:   ctrl.Snapshot(),
	}
}

func (p Player) Init() tea.Cmd { return nil }

func (p Player) tick() tea.Cmd {
	return tea.Tick(p.snap.AutoPlayInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case "right", "l", " ":
			p.playing = false
			p.ctrl.StepForward()
			p.refresh()
		case "left", "h":
			p.playing = false
			p.ctrl.StepBackward()
			p.refresh()
		case "g", "home":
			p.playing = false
			p.ctrl.JumpTo(0)
			p.refresh()
		case "G", "end":
			p.playing = false
			p.ctrl.JumpTo(len(p.snap.Steps) - 1)
			p.refresh()
		case "r":
			p.playing = false
			p.ctrl.Reset()
			p.refresh()
		case "p":
			if p.playing {
				p.playing = false
				return p, nil
			}
			if p.snap.IsComplete {
				p.ctrl.Reset()
				p.refresh()
			}
			p.playing = true
			return p, p.tick()
		case "+", "=":
			p.ctrl.SetSpeed(p.snap.AutoPlayInterval / 2)
			p.refresh()
		case "-":
			p.ctrl.SetSpeed(p.snap.AutoPlayInterval * 2)
			p.refresh()
		case "up", "k":
			var cmd tea.Cmd
			p.explain, cmd = p.explain.Update(msg)
			return p, cmd
		case "down", "j":
			var cmd tea.Cmd
			p.explain, cmd = p.explain.Update(msg)
			return p, cmd
		}
		return p, nil

	case tickMsg:
		if !p.playing {
			return p, nil
		}
		p.ctrl.StepForward()
		p.refresh()
		if p.snap.IsComplete {
			p.playing = false
			return p, nil
		}
		return p, p.tick()

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.ready = true
		p.explain = viewport.New(msg.Width, p.explainHeight())
		p.refresh()
		return p, nil
	}
	return p, nil
}

func (p *Player) refresh() {
	p.snap = p.ctrl.Snapshot()
	if p.ready {
		p.explain.Height = p.explainHeight()
		p.explain.SetContent(p.renderExplanation())
		p.explain.GotoTop()
	}
}

func (p *Player) explainHeight() int {
	// title(1) + status(1) + code pane share the rest
	h := p.height - 2 - p.codeHeight()
	if h < 3 {
		h = 3
	}
	return h
}

func (p *Player) codeHeight() int {
	h := len(p.code)
	max := (p.height - 2) / 2
	if max < 3 {
		max = 3
	}
	if h > max {
		h = max
	}
	return h
}

func (p Player) View() string {
	if !p.ready {
		return "Loading..."
	}

	pos := "not started"
	if p.snap.CurrentStepIndex >= 0 {
		pos = fmt.Sprintf("step %d/%d", p.snap.CurrentStepIndex+1, len(p.snap.Steps))
	}
	title := titleStyle.Width(p.width).Render(
		fmt.Sprintf("stepwise  %s  [%s]  %s", p.title, p.snap.Language, pos))

	codeW := p.width - sidePaneWidth
	if codeW < 20 {
		codeW = p.width
	}
	main := p.renderCode(codeW)
	if codeW < p.width {
		side := sidePaneStyle.Height(p.codeHeight()).Render(p.renderState())
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	}

	hint := "  ←/→ step  p play  r reset  g/G jump  +/- speed  q quit"
	state := string(p.snap.Status)
	if p.playing {
		state = fmt.Sprintf("playing @%s", p.snap.AutoPlayInterval)
	}
	pad := p.width - lipgloss.Width(hint) - len(state) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(p.width).Render(
		hint + strings.Repeat(" ", pad) + state)

	return lipgloss.JoinVertical(lipgloss.Left, title, main, p.explain.View(), statusBar)
}

func (p Player) renderCode(width int) string {
	visited := make(map[int]bool)
	for i := 0; i <= p.snap.CurrentStepIndex && i < len(p.snap.Steps); i++ {
		visited[p.snap.Steps[i].LineNumber] = true
	}

	var sb strings.Builder
	top := 0
	height := p.codeHeight()
	if cur := p.snap.CurrentLine; cur > 0 && len(p.code) > height {
		top = cur - height/2
		if top < 0 {
			top = 0
		}
		if top+height > len(p.code) {
			top = len(p.code) - height
		}
	}
	for i := top; i < top+height && i < len(p.code); i++ {
		lineNo := i + 1
		text := fmt.Sprintf("%3d  %s", lineNo, p.code[i])
		switch {
		case lineNo == p.snap.CurrentLine:
			text = currentLineStyle.Width(width).Render("▸" + text[1:])
		case visited[lineNo]:
			text = visitedLineStyle.Render(text)
		default:
			text = lineNumberStyle.Render(fmt.Sprintf("%3d  ", lineNo)) + p.code[i]
		}
		sb.WriteString(text + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (p Player) renderState() string {
	var sb strings.Builder
	sb.WriteString(paneTitleStyle.Render("Variables") + "\n")
	if len(p.snap.Variables) == 0 {
		sb.WriteString(lineNumberStyle.Render("(none)") + "\n")
	}
	for _, name := range sortedVariableNames(p.snap.Variables) {
		v := p.snap.Variables[name]
		sb.WriteString(varNameStyle.Render(name) +
			fmt.Sprintf(" = %v ", v.Value) +
			lineNumberStyle.Render("("+v.Type+")") + "\n")
	}

	sb.WriteString("\n" + paneTitleStyle.Render("Output") + "\n")
	if len(p.snap.Output) == 0 {
		sb.WriteString(lineNumberStyle.Render("(empty)") + "\n")
	}
	for _, line := range p.snap.Output {
		sb.WriteString(outputStyle.Render(line) + "\n")
	}

	if p.snap.HasError {
		sb.WriteString("\n" + errorStyle.Render("✗ error raised") + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (p Player) renderExplanation() string {
	if p.snap.CurrentStepIndex < 0 || p.snap.CurrentStepIndex >= len(p.snap.Steps) {
		return lineNumberStyle.Render("\n  Press → to take the first step.")
	}
	step := p.snap.Steps[p.snap.CurrentStepIndex]
	out, err := p.render(StepMarkdown(step))
	if err != nil {
		return StepMarkdown(step)
	}
	return out
}

func sortedVariableNames(vars map[string]*domain.Variable) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
