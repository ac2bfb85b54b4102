package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edulab/stepwise/internal/adapters/redis"
	"github.com/edulab/stepwise/internal/config"
	"github.com/edulab/stepwise/pkg/adapters/memory"
	"github.com/edulab/stepwise/pkg/ports"
)

// openStore builds the configured timeline store. Session inspection only
// makes sense against a shared backend; the memory store still works but
// is empty for a fresh process.
func openStore(configPath string) (ports.TimelineStore, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Store.Backend == "redis" {
		rs := redis.New(cfg.Store.Address, cfg.Store.Password, cfg.Store.DB,
			redis.WithTTL(cfg.Store.TTL))
		return wrapStore(cfg.Store, rs), rs.Close, nil
	}
	return wrapStore(cfg.Store, memory.NewStore()), func() error { return nil }, nil
}

// RunSessionsList prints the IDs of all persisted sessions.
func RunSessionsList(ctx context.Context, configPath string) error {
	store, closer, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer closer()

	sessions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No active sessions found.")
		return nil
	}

	fmt.Println("Active Sessions:")
	for _, s := range sessions {
		fmt.Println("- " + s)
	}
	return nil
}

// RunSessionsInspect pretty-prints the persisted snapshot of one session.
func RunSessionsInspect(ctx context.Context, configPath, sessionID string) error {
	store, closer, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer closer()

	snap, err := store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session %q: %w", sessionID, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// RunSessionsRemove deletes one or more persisted sessions. It keeps going
// on individual failures and reports the first error at the end.
func RunSessionsRemove(ctx context.Context, configPath string, sessionIDs []string) error {
	store, closer, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer closer()

	var firstErr error
	for _, sessionID := range sessionIDs {
		if err := store.Delete(ctx, sessionID); err != nil {
			fmt.Printf("Error removing '%s': %v\n", sessionID, err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			fmt.Printf("Removed session '%s'\n", sessionID)
		}
	}
	return firstErr
}
