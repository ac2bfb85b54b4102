package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/edulab/stepwise/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses the terminal's detected background to pick a light or dark theme.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepMarkdown builds the markdown shown for one step: the source line,
// the explanation, and whatever the details carry.
func StepMarkdown(step domain.Step) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Line %d** `%s`\n\n", step.LineNumber, step.SourceText)
	sb.WriteString(step.Explanation)
	sb.WriteString("\n")

	if step.Details == nil {
		return sb.String()
	}

	if step.Details.Condition != "" {
		fmt.Fprintf(&sb, "\n- condition `%s` is **%v**\n", step.Details.Condition, step.Details.Result)
	}
	if len(step.Details.After) > 0 {
		names := make([]string, 0, len(step.Details.After))
		for name := range step.Details.After {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if before, ok := step.Details.Before[name]; ok {
				fmt.Fprintf(&sb, "\n- `%s`: %v → **%v**\n", name, before, step.Details.After[name])
			} else {
				fmt.Fprintf(&sb, "\n- `%s` = **%v**\n", name, step.Details.After[name])
			}
		}
	}
	if step.Details.Value != "" {
		fmt.Fprintf(&sb, "\n- prints `%s`\n", step.Details.Value)
	}
	if step.Details.Error != nil {
		fmt.Fprintf(&sb, "\n- error: **%s**\n", step.Details.Error.Message)
	}

	return sb.String()
}
