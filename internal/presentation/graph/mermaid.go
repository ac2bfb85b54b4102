package graph

import (
	"fmt"
	"strings"

	"github.com/edulab/stepwise/pkg/domain"
)

// TraceOverlay marks playback position on the rendered flowchart.
type TraceOverlay struct {
	CurrentStep int
}

// GenerateMermaid produces a Mermaid flowchart from a trace.
// It applies semantic styling:
// - Condition checks: {Diamond}
// - Output: [/Parallelogram/]
// - Loop init: ((Circle))
// - Errors and throws: [Rectangle] with an error class
// - Default: [Rectangle]
// Condition-check edges are labeled with the evaluated result.
// If an overlay is provided, completed steps are marked visited and the
// cursor step is highlighted.
func GenerateMermaid(steps []domain.Step, overlay *TraceOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var errorIDs []string
	for i, step := range steps {
		id := fmt.Sprintf("s%d", step.ID)

		opener, closer := "[", "]"
		switch step.Type {
		case domain.StepConditionCheck:
			opener, closer = "{", "}"
		case domain.StepOutput:
			opener, closer = "[/", "/]"
		case domain.StepLoopInit:
			opener, closer = "((", "))"
		case domain.StepError, domain.StepThrow:
			errorIDs = append(errorIDs, id)
		}

		label := fmt.Sprintf("L%d: %s", step.LineNumber, sanitizeMermaidLabel(step.SourceText))
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		if i+1 < len(steps) {
			next := fmt.Sprintf("s%d", steps[i+1].ID)
			arrow := "-->"
			if step.Type == domain.StepConditionCheck && step.Details != nil {
				arrow = fmt.Sprintf("-- \"%v\" -->", step.Details.Result)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, next))
		}
	}

	sb.WriteString("\n    %% Styles\n")
	sb.WriteString("    classDef error fill:#fee2e2,stroke:#dc2626,stroke-width:2px,color:#000;\n")
	for _, id := range errorIDs {
		sb.WriteString(fmt.Sprintf("    class %s error;\n", id))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for i, step := range steps {
			if i > overlay.CurrentStep {
				break
			}
			class := "visited"
			if i == overlay.CurrentStep {
				class = "current"
			}
			sb.WriteString(fmt.Sprintf("    class s%d %s;\n", step.ID, class))
		}
	}

	return sb.String()
}

func sanitizeMermaidLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
