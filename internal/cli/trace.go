package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edulab/stepwise"
	"github.com/edulab/stepwise/internal/presentation/graph"
)

// TraceOptions configures the 'trace' command.
type TraceOptions struct {
	Path     string
	Language string
	Format   string // "table", "json" or "mermaid"
	ForCap   int
	WhileCap int
	Debug    bool
}

// RunTrace builds a trace for a snippet and prints it in the requested
// format.
func RunTrace(opts TraceOptions) error {
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
	if opts.ForCap > 0 || opts.WhileCap > 0 {
		engineOpts = append(engineOpts, stepwise.WithIterationCaps(opts.ForCap, opts.WhileCap))
	}
	engine := stepwise.New(engineOpts...)

	steps := engine.Trace(code, language)

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		for _, step := range steps {
			if err := enc.Encode(step); err != nil {
				return fmt.Errorf("encoding step: %w", err)
			}
		}
	case "mermaid":
		fmt.Print(graph.GenerateMermaid(steps, nil))
	default:
		fmt.Printf("Trace of %s (%s), %d steps:\n\n", name, language, len(steps))
		for _, step := range steps {
			fmt.Printf("%3d  line %-3d %-18s %s\n",
				step.ID, step.LineNumber, step.Type, step.Explanation)
		}
	}

	return nil
}
