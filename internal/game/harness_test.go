package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap/zaptest"
)

// testGame wires up an engine and a playing-phase state with two seats
// (alice active, bob waiting) for direct manipulation in tests.
type testGame struct {
	t      *testing.T
	engine *Engine
	state  *GameState
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	return NewEngine(zaptest.NewLogger(t), rand.New(rand.NewSource(seed)))
}

func newTestGame(t *testing.T) *testGame {
	engine := newTestEngine(t, 1)
	now := time.Now()
	s := &GameState{
		ID:             "test-game",
		Phase:          PhasePlaying,
		TurnPhase:      TurnPhaseMain,
		CurrentTurn:    1,
		ActivePlayerID: "alice",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Players[0] = &PlayerGameState{
		ID: "alice", DisplayName: "Alice",
		Health: StartingHealth, MaxHealth: StartingHealth,
		Bandwidth: BandwidthCap, MaxBandwidth: BandwidthCap,
		Connected: true, KeptHand: true,
	}
	s.Players[1] = &PlayerGameState{
		ID: "bob", DisplayName: "Bob",
		Health: StartingHealth, MaxHealth: StartingHealth,
		Bandwidth: BandwidthCap, MaxBandwidth: BandwidthCap,
		Connected: true, KeptHand: true,
	}
	return &testGame{t: t, engine: engine, state: s}
}

// unitSpec describes a test unit to place on the board.
type unitSpec struct {
	Name     string
	Attack   int
	Health   int
	Keywords []card.Keyword
	Effects  []card.Effect
	Token    *card.TokenConfig
	Sick     bool
	Stunned  bool
	Silenced bool
}

// addUnit places an attack-ready unit directly on the owner's board.
func (g *testGame) addUnit(ownerID string, spec unitSpec) *UnitInPlay {
	g.t.Helper()
	owner := g.state.PlayerByID(ownerID)
	if owner == nil {
		g.t.Fatalf("unknown owner %s", ownerID)
	}
	d := card.Design{
		ID:       "design-" + spec.Name,
		Name:     spec.Name,
		Attack:   spec.Attack,
		Health:   spec.Health,
		Category: card.CategoryUnit,
		Rarity:   card.RarityCommon,
		Keywords: spec.Keywords,
		Effects:  spec.Effects,
		Token:    spec.Token,
	}
	u := &UnitInPlay{
		InstanceID:        uuid.NewString(),
		OwnedCardID:       uuid.NewString(),
		Design:            d,
		CurrentAttack:     spec.Attack,
		CurrentHealth:     spec.Health,
		MaxHealth:         spec.Health,
		CanAttack:         !spec.Sick && !spec.Stunned,
		SummoningSickness: spec.Sick,
		Stunned:           spec.Stunned,
		Silenced:          spec.Silenced,
		Position:          len(owner.Board),
	}
	owner.Board = append(owner.Board, u)
	return u
}

// addToHand puts a card instance of the design into the player's hand.
func (g *testGame) addToHand(ownerID string, d card.Design) CardInHand {
	g.t.Helper()
	owner := g.state.PlayerByID(ownerID)
	if owner == nil {
		g.t.Fatalf("unknown owner %s", ownerID)
	}
	c := CardInHand{InstanceID: uuid.NewString(), OwnedCardID: uuid.NewString(), Design: d}
	owner.Hand = append(owner.Hand, c)
	return c
}

// addToDeck pushes a card onto the top of the player's deck.
func (g *testGame) addToDeck(ownerID string, d card.Design) CardInHand {
	g.t.Helper()
	owner := g.state.PlayerByID(ownerID)
	if owner == nil {
		g.t.Fatalf("unknown owner %s", ownerID)
	}
	c := CardInHand{InstanceID: uuid.NewString(), OwnedCardID: uuid.NewString(), Design: d}
	owner.Deck = append(owner.Deck, c)
	return c
}

// drain processes the pending-effect queue and runs the win check, the
// way the controller settles a state after a mutation.
func (g *testGame) drain() {
	g.engine.ProcessEffectQueue(g.state)
	g.engine.CheckWinCondition(g.state)
}

func vanillaUnit(name string, cost, attack, health int, kws ...card.Keyword) card.Design {
	return card.Design{
		ID:       "design-" + name,
		Name:     name,
		Cost:     cost,
		Attack:   attack,
		Health:   health,
		Category: card.CategoryUnit,
		Rarity:   card.RarityCommon,
		Keywords: kws,
	}
}

func actionCard(name string, cost int, effects ...card.Effect) card.Design {
	return card.Design{
		ID:       "design-" + name,
		Name:     name,
		Cost:     cost,
		Category: card.CategoryAction,
		Rarity:   card.RarityCommon,
		Effects:  effects,
	}
}

func newDeck(n int, d card.Design) []CardInHand {
	deck := make([]CardInHand, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, CardInHand{
			InstanceID:  uuid.NewString(),
			OwnedCardID: uuid.NewString(),
			Design:      d,
		})
	}
	return deck
}
