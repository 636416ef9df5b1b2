package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateActionPhaseGates(t *testing.T) {
	g := newTestGame(t)

	tests := []struct {
		name  string
		setup func(*GameState)
		a     Action
		want  RuleErrorKind
	}{
		{
			name: "unknown player",
			a:    Action{Type: ActionEndTurn, PlayerID: "mallory"},
			want: ErrKindPlayerNotFound,
		},
		{
			name: "inactive seat ends turn",
			a:    Action{Type: ActionEndTurn, PlayerID: "bob"},
			want: ErrKindNotActivePlayer,
		},
		{
			name: "mulligan during play",
			a:    Action{Type: ActionCompleteMulligan, PlayerID: "alice"},
			want: ErrKindWrongPhase,
		},
		{
			name:  "play card during mulligan",
			setup: func(s *GameState) { s.Phase = PhaseMulligan },
			a:     Action{Type: ActionPlayCard, PlayerID: "alice", CardID: "x"},
			want:  ErrKindWrongPhase,
		},
		{
			name:  "anything after the game ends",
			setup: func(s *GameState) { s.Phase = PhaseEnded },
			a:     Action{Type: ActionConcede, PlayerID: "alice"},
			want:  ErrKindGameEnded,
		},
		{
			name: "unknown action type",
			a:    Action{Type: "teleport", PlayerID: "alice"},
			want: ErrKindIllegalAction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := g.state.Clone()
			if tc.setup != nil {
				tc.setup(s)
			}
			err := g.engine.ValidateAction(s, tc.a)
			assert.Equal(t, tc.want, KindOf(err))
			assert.False(t, g.engine.IsActionLegal(s, tc.a))
		})
	}
}

func TestValidatePlayCardChecksResources(t *testing.T) {
	g := newTestGame(t)
	alice := g.state.PlayerByID("alice")
	alice.Bandwidth = 2

	cheap := g.addToHand("alice", vanillaUnit("cheap", 2, 1, 1))
	costly := g.addToHand("alice", vanillaUnit("costly", 3, 3, 3))

	err := g.engine.ValidateAction(g.state, Action{Type: ActionPlayCard, PlayerID: "alice", CardID: costly.InstanceID})
	assert.Equal(t, ErrKindInsufficientBandwidth, KindOf(err))

	err = g.engine.ValidateAction(g.state, Action{Type: ActionPlayCard, PlayerID: "alice", CardID: "no-such-card"})
	assert.Equal(t, ErrKindCardNotFound, KindOf(err))

	assert.NoError(t, g.engine.ValidateAction(g.state, Action{Type: ActionPlayCard, PlayerID: "alice", CardID: cheap.InstanceID}))

	for i := 0; i < BoardLimit; i++ {
		g.addUnit("alice", unitSpec{Name: "filler", Attack: 1, Health: 1})
	}
	err = g.engine.ValidateAction(g.state, Action{Type: ActionPlayCard, PlayerID: "alice", CardID: cheap.InstanceID})
	assert.Equal(t, ErrKindBoardFull, KindOf(err))
}

func TestValidateAttackMirrorsTargetRules(t *testing.T) {
	g := newTestGame(t)
	atk := g.addUnit("alice", unitSpec{Name: "raider", Attack: 2, Health: 2})
	enemy := g.addUnit("bob", unitSpec{Name: "idle", Attack: 1, Health: 1})
	own := g.addUnit("alice", unitSpec{Name: "own", Attack: 1, Health: 1})

	ok := Action{Type: ActionAttack, PlayerID: "alice", AttackerID: atk.InstanceID, TargetID: enemy.InstanceID}
	assert.NoError(t, g.engine.ValidateAction(g.state, ok))

	face := Action{Type: ActionAttack, PlayerID: "alice", AttackerID: atk.InstanceID, TargetID: TargetFace}
	assert.NoError(t, g.engine.ValidateAction(g.state, face))

	friendly := Action{Type: ActionAttack, PlayerID: "alice", AttackerID: atk.InstanceID, TargetID: own.InstanceID}
	assert.Equal(t, ErrKindIllegalTarget, KindOf(g.engine.ValidateAction(g.state, friendly)))

	ghost := Action{Type: ActionAttack, PlayerID: "alice", AttackerID: "no-such-unit", TargetID: TargetFace}
	assert.Equal(t, ErrKindUnitNotFound, KindOf(g.engine.ValidateAction(g.state, ghost)))
}
