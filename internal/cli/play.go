package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/edulab/stepwise"
	"github.com/edulab/stepwise/internal/presentation/tui"
)

// PlayOptions configures the 'play' command.
type PlayOptions struct {
	Path     string
	Language string
	Headless bool
	Interval time.Duration
	Debug    bool
}

// RunPlay steps through a snippet interactively. Without a TTY (or with
// --headless) it falls back to printing the walkthrough sequentially.
func RunPlay(opts PlayOptions) error {
	logger := createLogger(opts.Debug)

	code, name, err := readSource(opts.Path)
	if err != nil {
		return err
	}

	language := resolveLanguage(opts.Language, opts.Path)
	if language == "" {
		return fmt.Errorf("cannot infer language for %s; pass --language", name)
	}

	engineOpts := []stepwise.Option{stepwise.WithLogger(logger)}
	if opts.Interval > 0 {
		engineOpts = append(engineOpts, stepwise.WithAutoPlayInterval(opts.Interval))
	}
	engine := stepwise.New(engineOpts...)

	if opts.Headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(engine, code, language, opts.Interval)
	}

	ctrl := engine.NewTimeline(code, language)
	player := tui.NewPlayer(ctrl, code, name)

	program := tea.NewProgram(player, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running player: %w", err)
	}
	return nil
}

func runHeadless(engine *stepwise.Engine, code, language string, interval time.Duration) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := stepwise.NewRunner()
	r.Output = os.Stdout
	r.Interval = interval

	err := r.Run(sigCtx, engine, code, language)
	if errors.Is(err, context.Canceled) && sigCtx.Signal() != nil {
		fmt.Printf("\nStopped by %v\n", sigCtx.Signal())
		return nil
	}
	return err
}
