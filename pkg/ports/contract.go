package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/stepwise/pkg/domain"
)

// RunTimelineStoreContract runs a suite of tests to verify that a
// TimelineStore implementation adheres to the defined interface contract.
func RunTimelineStoreContract(t *testing.T, store TimelineStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	snapshot := func() *domain.TimelineSnapshot {
		return &domain.TimelineSnapshot{
			Language:         "python",
			Steps:            []domain.Step{{ID: 0, Type: domain.StepOutput, LineNumber: 1}},
			CurrentStepIndex: 0,
			CurrentLine:      1,
			Variables:        map[string]*domain.Variable{},
			Output:           []string{"5"},
			Status:           domain.StatusPaused,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := snapshot()

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Language, loaded.Language)
		assert.Equal(t, snap.CurrentStepIndex, loaded.CurrentStepIndex)
		assert.Equal(t, snap.Output, loaded.Output)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, domain.StepOutput, loaded.Steps[0].Type)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, snapshot())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, snapshot())
		_ = store.Save(ctx, id2, snapshot())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
