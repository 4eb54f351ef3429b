package combat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/testutils"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/testutils/builders"
)

type CombatEntitiesTestSuite struct {
	suite.Suite
}

func TestCombatEntitiesSuite(t *testing.T) {
	suite.Run(t, new(CombatEntitiesTestSuite))
}

func (s *CombatEntitiesTestSuite) TestKindPriority() {
	s.Less(combat.KindPlayer.Priority(), combat.KindNPC.Priority())
	s.Less(combat.KindNPC.Priority(), combat.KindEnemy.Priority())
	s.Less(combat.KindEnemy.Priority(), combat.Kind("lair").Priority())
	s.False(combat.Kind("lair").IsValid())
}

func (s *CombatEntitiesTestSuite) TestInitiativeJSON() {
	testCases := []struct {
		name string
		in   combat.Initiative
		want string
	}{
		{name: "unresolved is null", in: combat.Unresolved(), want: "null"},
		{name: "rolled", in: combat.Rolled(17), want: "17"},
		{name: "zero is a real roll", in: combat.Rolled(0), want: "0"},
		{name: "negative", in: combat.Rolled(-2), want: "-2"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			data, err := json.Marshal(tc.in)
			s.Require().NoError(err)
			s.Equal(tc.want, string(data))

			var out combat.Initiative
			s.Require().NoError(json.Unmarshal(data, &out))
			s.Equal(tc.in, out)
		})
	}

	s.Run("rejects strings", func() {
		var out combat.Initiative
		s.Error(json.Unmarshal([]byte(`"fast"`), &out))
	})

	s.Equal("-", combat.Unresolved().String())
	s.Equal("12", combat.Rolled(12).String())
}

func (s *CombatEntitiesTestSuite) TestEntryConditions() {
	entry := builders.NewEntryBuilder("goblin").Build()

	s.True(entry.AddCondition("prone"))
	s.False(entry.AddCondition("prone"))
	s.False(entry.AddCondition(""))
	s.True(entry.HasCondition("prone"))

	s.True(entry.RemoveCondition("prone"))
	s.False(entry.RemoveCondition("prone"))
	s.Empty(entry.Conditions)

	entry.SetConditions([]string{"stunned", "", "prone", "stunned"})
	s.Equal([]string{"stunned", "prone"}, entry.Conditions)

	s.True(combat.SameConditions([]string{"a", "b"}, []string{"b", "a", "a"}))
	s.False(combat.SameConditions([]string{"a"}, []string{"a", "b"}))
}

func (s *CombatEntitiesTestSuite) TestEntryClone() {
	original := builders.NewEntryBuilder("goblin").
		WithHealth(5, 7).
		WithConditions("prone", "prone").
		WithBudget(combat.ActionBudget{combat.ActionFree: 2}).
		Build()

	clone := original.Clone()
	*clone.CurrentHealth = 1
	clone.AvailableActions[combat.ActionFree] = 0
	clone.Enemy.ChallengeRating = "5"
	clone.AddCondition("stunned")

	s.Equal(5, *original.CurrentHealth)
	s.Equal(2, original.AvailableActions[combat.ActionFree])
	s.Empty(original.Enemy.ChallengeRating)
	s.Equal([]string{"prone", "prone"}, original.Conditions)
	s.Equal([]string{"prone", "stunned"}, clone.Conditions)

	s.Nil((*combat.Entry)(nil).Clone())
	s.Nil(builders.NewEntryBuilder("x").Build().Clone().AvailableActions)
}

func (s *CombatEntitiesTestSuite) TestStateQueries() {
	state := testutils.CreateTestSkirmish()

	s.Equal("combat-enemy-goblin", state.Current().ID)
	s.Equal(2, state.IndexOf("combat-npc-guard"))
	s.Equal(-1, state.IndexOf("ghost"))
	s.Nil(state.Entry("ghost"))
	s.Equal("Aria", state.Entry("combat-player-aria").DisplayName)

	var none *combat.State
	s.Nil(none.Current())
	s.Equal(-1, none.IndexOf("x"))
	s.Nil(none.Clone())
}

func (s *CombatEntitiesTestSuite) TestStateIsValid() {
	testCases := []struct {
		name   string
		mutate func(*combat.State)
		valid  bool
	}{
		{name: "fixture", mutate: func(*combat.State) {}, valid: true},
		{name: "unknown status", mutate: func(st *combat.State) { st.Status = "paused" }, valid: false},
		{name: "round zero", mutate: func(st *combat.State) { st.Round = 0 }, valid: false},
		{name: "index past end", mutate: func(st *combat.State) { st.CurrentTurnIndex = 3 }, valid: false},
		{name: "negative index", mutate: func(st *combat.State) { st.CurrentTurnIndex = -1 }, valid: false},
		{name: "duplicate id", mutate: func(st *combat.State) { st.InitiativeOrder[1].ID = "combat-enemy-goblin" }, valid: false},
		{name: "blank id", mutate: func(st *combat.State) { st.InitiativeOrder[2].ID = "" }, valid: false},
		{name: "nil entry", mutate: func(st *combat.State) { st.InitiativeOrder[0] = nil }, valid: false},
		{
			name: "empty order at zero",
			mutate: func(st *combat.State) {
				st.InitiativeOrder = nil
				st.CurrentTurnIndex = 0
			},
			valid: true,
		},
		{
			name: "empty order at one",
			mutate: func(st *combat.State) {
				st.InitiativeOrder = nil
				st.CurrentTurnIndex = 1
			},
			valid: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			state := testutils.CreateTestSkirmish()
			tc.mutate(state)
			s.Equal(tc.valid, state.IsValid())
		})
	}
}

func (s *CombatEntitiesTestSuite) TestSnapshotRoundTrip() {
	state := testutils.CreateTestSkirmish()
	state.Round = 4

	raw, err := combat.MarshalSnapshot(state)
	s.Require().NoError(err)
	s.Contains(raw, `"encounterId":"encounter-test-001"`)
	s.Contains(raw, `"status":"in_progress"`)
	s.Contains(raw, `"availableActions":{`)

	decoded := combat.UnmarshalSnapshot(raw)
	s.Require().NotNil(decoded)
	s.Equal(state, decoded)
}

func (s *CombatEntitiesTestSuite) TestSnapshotUnresolvedInitiative() {
	state := testutils.CreateTestRollingOrder()

	raw, err := combat.MarshalSnapshot(state)
	s.Require().NoError(err)
	s.Contains(raw, `"initiative":null`)

	decoded := combat.UnmarshalSnapshot(raw)
	s.Require().NotNil(decoded)
	s.False(decoded.Entry("combat-player-aria").Initiative.Resolved)
	s.Equal(combat.Rolled(18), decoded.Entry("combat-enemy-goblin").Initiative)
}

func (s *CombatEntitiesTestSuite) TestMarshalSnapshotNil() {
	_, err := combat.MarshalSnapshot(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CombatEntitiesTestSuite) TestUnmarshalSnapshotMalformed() {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "blank", raw: "   "},
		{name: "not json", raw: "combat!"},
		{name: "truncated", raw: `{"status":"in_progress","round":1`},
		{name: "wrong shape", raw: `[1,2,3]`},
		{name: "unknown status", raw: `{"status":"paused","round":1,"currentTurnIndex":0,"initiativeOrder":[]}`},
		{name: "missing status", raw: `{"round":3,"currentTurnIndex":0,"initiativeOrder":[]}`},
		{name: "initiative not a number", raw: `{"status":"in_progress","round":1,"currentTurnIndex":0,"initiativeOrder":[{"id":"a","initiative":"x"}]}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Nil(combat.UnmarshalSnapshot(tc.raw))
		})
	}
}

func (s *CombatEntitiesTestSuite) TestUnmarshalSnapshotNormalizes() {
	raw := `{"encounterId":"e","status":"in_progress","round":2,"currentTurnIndex":0,` +
		`"initiativeOrder":[{"id":"a","kind":"enemy","initiative":5,"conditions":["prone","prone",""]}]}`

	state := combat.UnmarshalSnapshot(raw)
	s.Require().NotNil(state)
	s.Equal([]string{"prone"}, state.InitiativeOrder[0].Conditions)
	s.Nil(state.InitiativeOrder[0].AvailableActions)
}

func (s *CombatEntitiesTestSuite) TestUnmarshalSnapshotRepairs() {
	testCases := []struct {
		name      string
		raw       string
		wantRound int
		wantIndex int
		wantIDs   []string
	}{
		{
			name:      "round zero becomes one",
			raw:       `{"status":"in_progress","round":0,"currentTurnIndex":0,"initiativeOrder":[{"id":"a","initiative":5}]}`,
			wantRound: 1,
			wantIndex: 0,
			wantIDs:   []string{"a"},
		},
		{
			name:      "index past the end is clamped",
			raw:       `{"status":"in_progress","round":3,"currentTurnIndex":4,"initiativeOrder":[{"id":"a","initiative":5}]}`,
			wantRound: 3,
			wantIndex: 0,
			wantIDs:   []string{"a"},
		},
		{
			name:      "negative index is clamped",
			raw:       `{"status":"in_progress","round":2,"currentTurnIndex":-2,"initiativeOrder":[{"id":"a"},{"id":"b"}]}`,
			wantRound: 2,
			wantIndex: 0,
			wantIDs:   []string{"a", "b"},
		},
		{
			name:      "later duplicates are dropped",
			raw:       `{"status":"in_progress","round":2,"currentTurnIndex":1,"initiativeOrder":[{"id":"a","displayName":"first"},{"id":"b"},{"id":"a","displayName":"second"}]}`,
			wantRound: 2,
			wantIndex: 1,
			wantIDs:   []string{"a", "b"},
		},
		{
			name:      "null and blank entries are dropped",
			raw:       `{"status":"rolling_initiative","round":1,"currentTurnIndex":2,"initiativeOrder":[null,{"id":""},{"id":"a"}]}`,
			wantRound: 1,
			wantIndex: 0,
			wantIDs:   []string{"a"},
		},
		{
			name:      "empty order at a stale index",
			raw:       `{"status":"in_progress","round":1,"currentTurnIndex":3,"initiativeOrder":[]}`,
			wantRound: 1,
			wantIndex: 0,
			wantIDs:   []string{},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			state := combat.UnmarshalSnapshot(tc.raw)
			s.Require().NotNil(state)
			s.True(state.IsValid())
			s.Equal(tc.wantRound, state.Round)
			s.Equal(tc.wantIndex, state.CurrentTurnIndex)

			ids := make([]string, 0, len(state.InitiativeOrder))
			for _, e := range state.InitiativeOrder {
				ids = append(ids, e.ID)
			}
			s.Equal(tc.wantIDs, ids)
		})
	}

	s.Run("first copy of a duplicate wins", func() {
		state := combat.UnmarshalSnapshot(`{"status":"in_progress","round":1,"currentTurnIndex":0,` +
			`"initiativeOrder":[{"id":"a","displayName":"first"},{"id":"a","displayName":"second"}]}`)
		s.Require().NotNil(state)
		s.Equal("first", state.Entry("a").DisplayName)
	})
}

func (s *CombatEntitiesTestSuite) TestNormalizeNil() {
	var state *combat.State
	s.NotPanics(func() { state.Normalize() })
}
