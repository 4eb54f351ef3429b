// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots"
	snapshotsmock "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots/mock"
)

// ExpectSnapshotLoad sets up a mock expectation for loading a session's snapshot.
// A nil state means nothing is stored.
func ExpectSnapshotLoad(
	ctx context.Context, mockRepo *snapshotsmock.MockRepository,
	sessionID string, state *combat.State,
) *gomock.Call {
	out := &snapshots.LoadOutput{}
	if state != nil {
		raw, err := combat.MarshalSnapshot(state)
		if err != nil {
			panic(err)
		}
		out = &snapshots.LoadOutput{Snapshot: raw, Found: true}
	}

	return mockRepo.EXPECT().
		Load(ctx, snapshots.LoadInput{SessionID: sessionID}).
		Return(out, nil)
}

// ExpectRawSnapshotLoad is like ExpectSnapshotLoad but returns the payload as-is
func ExpectRawSnapshotLoad(
	ctx context.Context, mockRepo *snapshotsmock.MockRepository,
	sessionID string, raw string,
) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, snapshots.LoadInput{SessionID: sessionID}).
		Return(&snapshots.LoadOutput{Snapshot: raw, Found: true}, nil)
}

// ExpectSnapshotSave sets up a mock expectation for saving a snapshot.
// The saved state is decoded and passed to check, when given.
func ExpectSnapshotSave(
	ctx context.Context, mockRepo *snapshotsmock.MockRepository,
	sessionID string, check func(*combat.State),
) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input snapshots.SaveInput) (*snapshots.SaveOutput, error) {
			if input.SessionID != sessionID {
				return nil, errors.InvalidArgumentf("unexpected session %s", input.SessionID)
			}
			if check != nil {
				check(combat.UnmarshalSnapshot(input.Snapshot))
			}
			return &snapshots.SaveOutput{}, nil
		})
}

// ExpectSnapshotClear sets up a mock expectation for clearing a snapshot
func ExpectSnapshotClear(
	ctx context.Context, mockRepo *snapshotsmock.MockRepository,
	sessionID string,
) *gomock.Call {
	return mockRepo.EXPECT().
		Clear(ctx, snapshots.ClearInput{SessionID: sessionID}).
		Return(&snapshots.ClearOutput{Existed: true}, nil)
}
