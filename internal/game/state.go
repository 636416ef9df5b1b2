// Package game implements the Grid Clash rules engine: a deterministic,
// fully synchronous state machine over two opposing seats. The engine
// consumes immutable card designs and player identity, applies validated
// actions, and emits new GameState values; it fetches, stores, and
// renders nothing.
package game

import (
	"time"

	"github.com/gridclash/gridclash-engine/internal/game/card"
)

// GamePhase is the coarse lifecycle of a game.
type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhaseMulligan GamePhase = "mulligan"
	PhasePlaying  GamePhase = "playing"
	PhaseEnded    GamePhase = "ended"
)

// TurnPhase is the phase within a single turn while the game is playing.
type TurnPhase string

const (
	TurnPhaseStart  TurnPhase = "start"
	TurnPhaseMain   TurnPhase = "main"
	TurnPhaseCombat TurnPhase = "combat"
	TurnPhaseEnd    TurnPhase = "end"
)

// Board and resource limits. These are rules constants, not configuration.
const (
	StartingHealth    = 30
	BandwidthCap      = 10
	BoardLimit        = 7
	HandLimit         = 10
	OpeningHandFirst  = 3
	OpeningHandSecond = 4
)

// TargetFace is the sentinel target id for attacking the opposing player
// directly.
const TargetFace = "face"

// CardInHand is a card instance in a deck, hand, or graveyard. The design
// snapshot is embedded so the engine never reaches back into the catalog.
type CardInHand struct {
	InstanceID  string
	OwnedCardID string
	Design      card.Design
}

// UnitInPlay is a unit on the board with its mutable battle state.
type UnitInPlay struct {
	InstanceID  string
	OwnedCardID string
	Design      card.Design

	CurrentAttack int
	CurrentHealth int
	MaxHealth     int

	CanAttack         bool
	SummoningSickness bool
	Silenced          bool
	Stunned           bool

	// AttackBuff and HealthBuff are informational counters mirroring
	// applied buffs; silence zeroes them.
	AttackBuff int
	HealthBuff int

	// BoostAttack and BoostHealth accumulate the boost keyword's gains.
	// Silence reverts stats to design base plus these.
	BoostAttack int
	BoostHealth int

	// TokensSummoned counts tokens this unit has materialized, checked
	// against the design's max-summons limit.
	TokensSummoned int

	// Position is the unit's board slot, kept contiguous 0..n-1.
	Position int
}

// HasKeyword reports whether the unit currently carries the keyword.
// Silenced units carry no keywords.
func (u *UnitInPlay) HasKeyword(kw card.Keyword) bool {
	if u.Silenced {
		return false
	}
	return u.Design.HasKeyword(kw)
}

// Seat identifies a player joining a game. Supplied by the matchmaking
// collaborator.
type Seat struct {
	ID          string
	DisplayName string
	AvatarID    string
}

// PlayerGameState is one seat's complete in-game state.
type PlayerGameState struct {
	ID          string
	DisplayName string
	AvatarID    string

	Health    int
	MaxHealth int

	Bandwidth    int
	MaxBandwidth int

	// Deck is ordered with the top at the end of the slice.
	Deck      []CardInHand
	Hand      []CardInHand
	Board     []*UnitInPlay
	Graveyard []CardInHand

	FatigueCount int
	Connected    bool
	KeptHand     bool
}

// PendingEffect is one entry in the FIFO trigger queue: an effect that
// has been triggered but not yet resolved. SourceDesign is snapshotted at
// enqueue time so effects from units that have since left the board (an
// on_destroy token summon, for example) still resolve correctly.
type PendingEffect struct {
	SourceUnitID   string // empty for action cards
	SourcePlayerID string
	SourceDesign   card.Design
	Effect         card.Effect
	// TargetIDs are pre-resolved targets; empty means resolve lazily at
	// execution time.
	TargetIDs []string
	Trigger   card.Trigger
}

// GameState is the complete, plain-data state of one game. The engine
// only ever replaces whole GameState values; a state returned to a caller
// is never mutated afterwards.
type GameState struct {
	ID      string
	Players [2]*PlayerGameState

	CurrentTurn    int
	ActivePlayerID string
	TurnPhase      TurnPhase
	Phase          GamePhase
	WinnerID       string

	// Combat scratch fields, echoed for observers and cleared at turn
	// start.
	AttackerID     string
	AttackTargetID string

	// EffectQueue is the FIFO pending-effect worklist. It is always
	// empty by the time a controller call returns.
	EffectQueue []PendingEffect

	// Echo fields describing the last applied action, for observers.
	LastAction         string
	LastActionPlayerID string

	CreatedAt     time.Time
	UpdatedAt     time.Time
	TurnTimeLimit time.Duration
}

// PlayerByID returns the player with the given id, or nil.
func (s *GameState) PlayerByID(id string) *PlayerGameState {
	for _, p := range s.Players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayer returns the player whose turn it is.
func (s *GameState) ActivePlayer() *PlayerGameState {
	return s.PlayerByID(s.ActivePlayerID)
}

// InactivePlayer returns the player whose turn it is not.
func (s *GameState) InactivePlayer() *PlayerGameState {
	return s.Opponent(s.ActivePlayerID)
}

// Opponent returns the player opposing the given player id, or nil if the
// id matches neither seat.
func (s *GameState) Opponent(playerID string) *PlayerGameState {
	if s.PlayerByID(playerID) == nil {
		return nil
	}
	for _, p := range s.Players {
		if p != nil && p.ID != playerID {
			return p
		}
	}
	return nil
}

// FindUnit locates a unit by instance id on either board, returning the
// unit and its owner.
func (s *GameState) FindUnit(instanceID string) (*UnitInPlay, *PlayerGameState) {
	for _, p := range s.Players {
		for _, u := range p.Board {
			if u.InstanceID == instanceID {
				return u, p
			}
		}
	}
	return nil, nil
}

// Clone produces a deep copy of the state. Every mutating operation works
// on a clone, so previously returned snapshots are never aliased.
func (s *GameState) Clone() *GameState {
	out := *s
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}
	out.EffectQueue = make([]PendingEffect, len(s.EffectQueue))
	for i, pe := range s.EffectQueue {
		out.EffectQueue[i] = pe.clone()
	}
	return &out
}

func (p *PlayerGameState) clone() *PlayerGameState {
	if p == nil {
		return nil
	}
	out := *p
	out.Deck = append([]CardInHand(nil), p.Deck...)
	out.Hand = append([]CardInHand(nil), p.Hand...)
	out.Graveyard = append([]CardInHand(nil), p.Graveyard...)
	out.Board = make([]*UnitInPlay, len(p.Board))
	for i, u := range p.Board {
		cp := *u
		out.Board[i] = &cp
	}
	return &out
}

func (pe PendingEffect) clone() PendingEffect {
	out := pe
	out.TargetIDs = append([]string(nil), pe.TargetIDs...)
	return out
}

// renumberBoard restores contiguous 0..n-1 positions after a removal or
// insertion.
func renumberBoard(p *PlayerGameState) {
	for i, u := range p.Board {
		u.Position = i
	}
}
