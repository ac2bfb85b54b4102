package middleware_test

import (
	"context"
	"testing"

	"github.com/edulab/stepwise/pkg/adapters/memory"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/persistence/middleware"
)

func TestRedactionMiddleware_MasksMatchingVariables(t *testing.T) {
	store := memory.NewStore()
	mw := middleware.NewRedactionMiddleware([]string{"(?i)password", "(?i)secret"})
	redacting := mw(store)

	snap := &domain.TimelineSnapshot{
		Language: "python",
		Status:   domain.StatusPaused,
		Steps: []domain.Step{
			{ID: 0, Type: domain.StepAssignment, LineNumber: 1, SourceText: "password = 'hunter2'",
				Details: &domain.StepDetails{After: map[string]any{"password": "hunter2"}}},
		},
		Variables: map[string]*domain.Variable{
			"password": {Name: "password", Value: "hunter2", History: []domain.VariableChange{{Value: "hunter2"}}},
			"x":        {Name: "x", Value: "5"},
		},
	}

	ctx := context.Background()
	if err := redacting.Save(ctx, "s1", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Variables["password"].Value != "***" {
		t.Errorf("expected masked password, got %v", stored.Variables["password"].Value)
	}
	if stored.Variables["password"].History[0].Value != "***" {
		t.Error("expected masked history")
	}
	if stored.Steps[0].Details.After["password"] != "***" {
		t.Error("expected masked step details")
	}
	if stored.Variables["x"].Value != "5" {
		t.Errorf("expected non-matching variable untouched, got %v", stored.Variables["x"].Value)
	}

	// Source snapshot must be untouched.
	if snap.Variables["password"].Value != "hunter2" {
		t.Error("redaction mutated the caller's snapshot")
	}
}
