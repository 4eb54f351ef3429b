// Package combat owns the authoritative combat state for one session.
// Every change goes through Dispatch as an Intent and is persisted as a snapshot.
package combat

//go:generate mockgen -destination=mock/mock_store.go -package=combatmock github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat Store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/turns"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots"
)

// Store defines the interface for the combat state container
type Store interface {
	// Hydrate loads the persisted snapshot. Only the first call does any work.
	Hydrate(ctx context.Context) (*HydrateOutput, error)

	// Dispatch applies an intent, persists the result and publishes events
	Dispatch(ctx context.Context, input *DispatchInput) (*DispatchOutput, error)

	// Current returns a copy of the state, nil when no combat is active
	Current() *combat.State

	// CurrentEntry returns a copy of the entry whose turn it is
	CurrentEntry() *combat.Entry
}

// StoreConfig holds the dependencies for the combat store
type StoreConfig struct {
	Repository snapshots.Repository
	SessionID  string

	// Optional; events are skipped when nil
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *StoreConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.SessionID == "" {
		vb.RequiredField("SessionID")
	}

	return vb.Build()
}

type store struct {
	repo      snapshots.Repository
	sessionID string
	bus       events.EventBus

	mu       sync.Mutex
	state    *combat.State
	hydrated bool
}

// NewStore creates a new combat store with the provided dependencies
func NewStore(cfg *StoreConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &store{
		repo:      cfg.Repository,
		sessionID: cfg.SessionID,
		bus:       cfg.EventBus,
	}, nil
}

func (s *store) Hydrate(ctx context.Context) (*HydrateOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "hydrate cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := s.hydrateLocked(ctx)
	return &HydrateOutput{
		State:    s.state.Clone(),
		Restored: restored,
	}, nil
}

// hydrateLocked reads the snapshot once. Callers must hold mu.
func (s *store) hydrateLocked(ctx context.Context) bool {
	if s.hydrated {
		return s.state != nil
	}
	s.hydrated = true

	out, err := s.repo.Load(ctx, snapshots.LoadInput{SessionID: s.sessionID})
	if err != nil {
		slog.WarnContext(ctx, "Failed to load combat snapshot, starting empty",
			"session_id", s.sessionID,
			"error", err,
		)
		return false
	}
	if !out.Found {
		return false
	}

	snapshot := combat.UnmarshalSnapshot(out.Snapshot)
	if snapshot == nil {
		slog.WarnContext(ctx, "Discarding malformed combat snapshot",
			"session_id", s.sessionID,
		)
		s.clear(ctx)
		return false
	}

	// Older snapshots lack the current entry's budget
	backfilled := turns.NeedsBackfill(snapshot)

	s.state = Reduce(nil, Restore{Snapshot: snapshot})
	if s.state == nil {
		return false
	}
	if backfilled {
		s.persist(ctx)
	}

	slog.InfoContext(ctx, "Restored combat",
		"session_id", s.sessionID,
		"encounter_id", s.state.EncounterID,
		"round", s.state.Round,
		"status", s.state.Status,
	)
	return true
}

func (s *store) Dispatch(ctx context.Context, input *DispatchInput) (*DispatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Intent == nil {
		return nil, errors.InvalidArgument("intent is required")
	}

	s.mu.Lock()
	s.hydrateLocked(ctx)

	prev := s.state
	next := Reduce(prev, input.Intent)
	if next == prev {
		out := &DispatchOutput{State: prev.Clone()}
		s.mu.Unlock()

		slog.DebugContext(ctx, "Intent had no effect",
			"session_id", s.sessionID,
			"intent", input.Intent.Name(),
		)
		return out, nil
	}

	s.state = next
	s.persist(ctx)

	var pending []events.Event
	if !isRestore(input.Intent) {
		pending = diffEvents(prev, next)
	}
	out := &DispatchOutput{State: next.Clone(), Changed: true}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Applied intent",
		"session_id", s.sessionID,
		"intent", input.Intent.Name(),
	)

	// Published outside the lock so handlers may call back into the store
	s.publish(ctx, pending)

	return out, nil
}

func (s *store) Current() *combat.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

func (s *store) CurrentEntry() *combat.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil || s.state.Status != combat.StatusInProgress {
		return nil
	}
	return s.state.Current().Clone()
}

// persist writes the current state through the repository. Failures are
// logged; the in-memory state stays authoritative. Callers must hold mu.
func (s *store) persist(ctx context.Context) {
	if s.state == nil {
		s.clear(ctx)
		return
	}

	raw, err := combat.MarshalSnapshot(s.state)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode combat snapshot",
			"session_id", s.sessionID,
			"error", err,
		)
		return
	}

	if _, err := s.repo.Save(ctx, snapshots.SaveInput{
		SessionID: s.sessionID,
		Snapshot:  raw,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to save combat snapshot",
			"session_id", s.sessionID,
			"error", err,
		)
	}
}

func (s *store) clear(ctx context.Context) {
	if _, err := s.repo.Clear(ctx, snapshots.ClearInput{SessionID: s.sessionID}); err != nil {
		slog.ErrorContext(ctx, "Failed to clear combat snapshot",
			"session_id", s.sessionID,
			"error", err,
		)
	}
}

func (s *store) publish(ctx context.Context, pending []events.Event) {
	if s.bus == nil {
		return
	}

	for _, event := range pending {
		if err := s.bus.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "Failed to publish combat event",
				"session_id", s.sessionID,
				"event_type", event.Type(),
				"error", err,
			)
		}
	}
}
