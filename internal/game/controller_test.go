package game

import (
	"testing"

	"github.com/gridclash/gridclash-engine/internal/game/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, *testGame) {
	g := newTestGame(t)
	return NewController(g.engine, g.state), g
}

func TestControllerPlayCardCommits(t *testing.T) {
	c, g := newTestController(t)
	unit := g.addToHand("alice", vanillaUnit("grunt", 3, 2, 2))

	before := c.State()
	handBefore := len(before.PlayerByID("alice").Hand)
	bandwidthBefore := before.PlayerByID("alice").Bandwidth

	next, err := c.PlayCard("alice", unit.InstanceID, 0, "")
	require.NoError(t, err)

	alice := next.PlayerByID("alice")
	assert.Len(t, alice.Board, 1)
	assert.Len(t, alice.Hand, handBefore-1)
	assert.Equal(t, bandwidthBefore-3, alice.Bandwidth)
	assert.Equal(t, "play_card", next.LastAction)
	assert.Equal(t, "alice", next.LastActionPlayerID)
	assert.Same(t, next, c.State())
}

func TestControllerSnapshotsAreNeverAliased(t *testing.T) {
	c, g := newTestController(t)
	unit := g.addToHand("alice", vanillaUnit("grunt", 1, 2, 2))

	before := c.State()
	beforeSum := Checksum(before)

	next, err := c.PlayCard("alice", unit.InstanceID, 0, "")
	require.NoError(t, err)
	require.NotSame(t, before, next)

	assert.Equal(t, beforeSum, Checksum(before), "earlier snapshot must survive later mutations")
	assert.Len(t, before.PlayerByID("alice").Board, 0)
	assert.Len(t, next.PlayerByID("alice").Board, 1)

	nextSum := Checksum(next)
	_, err = c.EndTurn("alice")
	require.NoError(t, err)
	assert.Equal(t, nextSum, Checksum(next), "every commit clones, no snapshot is written twice")
}

func TestControllerRejectionLeavesStateUntouched(t *testing.T) {
	c, g := newTestController(t)
	expensive := g.addToHand("alice", vanillaUnit("titan", 20, 9, 9))

	before := c.State()
	beforeSum := Checksum(before)

	next, err := c.PlayCard("alice", expensive.InstanceID, 0, "")
	assert.Nil(t, next)
	assert.Equal(t, ErrKindInsufficientBandwidth, KindOf(err))
	assert.Same(t, before, c.State())
	assert.Equal(t, beforeSum, Checksum(c.State()))
}

func TestControllerEnforcesTurnOrder(t *testing.T) {
	c, g := newTestController(t)
	unit := g.addToHand("bob", vanillaUnit("grunt", 1, 2, 2))

	_, err := c.PlayCard("bob", unit.InstanceID, 0, "")
	assert.Equal(t, ErrKindNotActivePlayer, KindOf(err))

	_, err = c.EndTurn("bob")
	assert.Equal(t, ErrKindNotActivePlayer, KindOf(err))

	// Concede is exempt from the active-seat rule.
	next, err := c.Concede("bob")
	require.NoError(t, err)
	assert.Equal(t, PhaseEnded, next.Phase)
	assert.Equal(t, "alice", next.WinnerID)
}

func TestControllerRejectsActionsAfterGameEnd(t *testing.T) {
	c, _ := newTestController(t)
	_, err := c.Concede("alice")
	require.NoError(t, err)

	_, err = c.EndTurn("bob")
	assert.Equal(t, ErrKindGameEnded, KindOf(err))
	_, err = c.Concede("bob")
	assert.Equal(t, ErrKindGameEnded, KindOf(err))
}

func TestControllerNotifiesListeners(t *testing.T) {
	c, _ := newTestController(t)

	var got []*GameState
	unsub := c.Subscribe(func(s *GameState) { got = append(got, s) })

	next, err := c.EndTurn("alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, next, got[0])
	assert.Empty(t, got[0].EffectQueue, "listeners see settled states only")

	// Rejected actions notify nobody.
	_, err = c.EndTurn("alice") // bob is active now
	require.Error(t, err)
	assert.Len(t, got, 1)

	unsub()
	_, err = c.EndTurn("bob")
	require.NoError(t, err)
	assert.Len(t, got, 1, "unsubscribed listeners stay silent")
}

func TestControllerRecordsReplay(t *testing.T) {
	c, g := newTestController(t)
	unit := g.addToHand("alice", vanillaUnit("grunt", 1, 2, 2))

	r := NewReplay(c.State().ID)
	c.AttachReplay(r)
	require.Equal(t, 1, r.Len(), "attach records the current state")

	_, err := c.PlayCard("alice", unit.InstanceID, 0, "")
	require.NoError(t, err)
	_, err = c.EndTurn("alice")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	r.Start()
	first := r.Next()
	require.NotNil(t, first)
	assert.Empty(t, first.LastAction)
	second := r.Next()
	require.NotNil(t, second)
	assert.Equal(t, "play_card", second.LastAction)
	third := r.Next()
	require.NotNil(t, third)
	assert.Equal(t, "end_turn", third.LastAction)
	assert.Nil(t, r.Next(), "playback stops past the last state")

	back := r.Prev()
	require.NotNil(t, back)
	assert.Equal(t, "play_card", back.LastAction)
	assert.Same(t, second, r.Seek(1))
}

func TestChecksumDetectsRulesRelevantChanges(t *testing.T) {
	g1 := newTestGame(t)
	g2 := newTestGame(t)

	sum1 := Checksum(g1.state)
	assert.Equal(t, sum1, Checksum(g2.state), "identical states hash identically")

	// Timestamps are excluded.
	g2.state.UpdatedAt = g2.state.UpdatedAt.Add(1000)
	assert.Equal(t, sum1, Checksum(g2.state))

	g2.state.PlayerByID("bob").Health--
	assert.NotEqual(t, sum1, Checksum(g2.state))
}

func TestChecksumCoversBoardDetail(t *testing.T) {
	g := newTestGame(t)
	u := g.addUnit("alice", unitSpec{Name: "grunt", Attack: 2, Health: 2})

	base := Checksum(g.state)
	u.Stunned = true
	assert.NotEqual(t, base, Checksum(g.state))
	u.Stunned = false
	assert.Equal(t, base, Checksum(g.state))

	g.engine.boostUnit(u, 1, 0)
	assert.NotEqual(t, base, Checksum(g.state))
}

func TestControllerAttackThroughValidation(t *testing.T) {
	c, g := newTestController(t)
	atk := g.addUnit("alice", unitSpec{Name: "raider", Attack: 2, Health: 2})
	g.addUnit("bob", unitSpec{Name: "wall", Attack: 0, Health: 4, Keywords: []card.Keyword{card.KeywordFrontline}})

	_, err := c.Attack("alice", atk.InstanceID, TargetFace)
	assert.Equal(t, ErrKindIllegalTarget, KindOf(err))

	wallID := c.State().PlayerByID("bob").Board[0].InstanceID
	next, err := c.Attack("alice", atk.InstanceID, wallID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.PlayerByID("bob").Board[0].CurrentHealth)
}
