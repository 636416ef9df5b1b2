package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap"
)

// CreateGame builds the initial GameState for two seats: decks are
// shuffled, a first player is chosen at random, the first player draws
// three cards and the second player draws four as compensation for going
// second, and the game enters the mulligan phase.
func (e *Engine) CreateGame(seatA, seatB Seat, deckA, deckB []CardInHand, timeLimit time.Duration) (*GameState, error) {
	if seatA.ID == "" || seatB.ID == "" {
		return nil, ruleErrorf(ErrKindPlayerNotFound, "both seats need a player id")
	}
	if seatA.ID == seatB.ID {
		return nil, ruleErrorf(ErrKindIllegalAction, "seats %s and %s are the same player", seatA.ID, seatB.ID)
	}

	now := time.Now()
	s := &GameState{
		ID:            uuid.NewString(),
		Phase:         PhaseMulligan,
		TurnPhase:     TurnPhaseStart,
		CreatedAt:     now,
		UpdatedAt:     now,
		TurnTimeLimit: timeLimit,
	}
	s.Players[0] = newPlayerState(seatA, deckA)
	s.Players[1] = newPlayerState(seatB, deckB)

	e.shuffle(s.Players[0].Deck)
	e.shuffle(s.Players[1].Deck)

	first := e.rng.Intn(2)
	s.ActivePlayerID = s.Players[first].ID

	e.DrawCards(s, s.Players[first], OpeningHandFirst)
	e.DrawCards(s, s.Players[1-first], OpeningHandSecond)

	e.log.Info("game created",
		zap.String("game_id", s.ID),
		zap.String("first_player", s.ActivePlayerID),
		zap.Int("deck_a", len(s.Players[0].Deck)),
		zap.Int("deck_b", len(s.Players[1].Deck)),
	)
	return s, nil
}

func newPlayerState(seat Seat, deck []CardInHand) *PlayerGameState {
	return &PlayerGameState{
		ID:          seat.ID,
		DisplayName: seat.DisplayName,
		AvatarID:    seat.AvatarID,
		Health:      StartingHealth,
		MaxHealth:   StartingHealth,
		Deck:        append([]CardInHand(nil), deck...),
		Connected:   true,
	}
}

// CompleteMulligan marks the seat's opening hand as kept. Once both seats
// have kept, the game enters the playing phase and the first turn starts.
func (e *Engine) CompleteMulligan(s *GameState, playerID string) error {
	if s.Phase != PhaseMulligan {
		return ruleErrorf(ErrKindWrongPhase, "mulligan completion in phase %s", s.Phase)
	}
	p := s.PlayerByID(playerID)
	if p == nil {
		return ruleErrorf(ErrKindPlayerNotFound, "player %s not in game", playerID)
	}
	if p.KeptHand {
		return ruleErrorf(ErrKindIllegalAction, "player %s already kept their hand", playerID)
	}
	p.KeptHand = true

	if s.Players[0].KeptHand && s.Players[1].KeptHand {
		s.Phase = PhasePlaying
		e.StartTurn(s)
		e.log.Info("mulligan complete, game playing",
			zap.String("game_id", s.ID),
			zap.String("active_player", s.ActivePlayerID),
		)
	}
	return nil
}

// StartTurn begins the active player's turn: the turn counter advances,
// bandwidth grows by one (capped) and refills, one card is drawn, every
// owned unit becomes attack-ready, boost units accrue their gain, and the
// unit's start-of-turn effects are enqueued. Combat scratch fields clear
// and the turn phase enters main.
func (e *Engine) StartTurn(s *GameState) {
	p := s.ActivePlayer()
	if p == nil {
		return
	}
	s.CurrentTurn++
	s.TurnPhase = TurnPhaseStart
	s.AttackerID = ""
	s.AttackTargetID = ""

	if p.MaxBandwidth < BandwidthCap {
		p.MaxBandwidth++
	}
	p.Bandwidth = p.MaxBandwidth

	e.DrawCards(s, p, 1)

	for _, u := range p.Board {
		u.CanAttack = true
		u.SummoningSickness = false
		u.Stunned = false
		if u.HasKeyword(card.KeywordBoost) {
			e.boostUnit(u, 1, 1)
		}
	}

	e.enqueueTurnTriggers(s, card.TriggerStartOfTurn)
	s.TurnPhase = TurnPhaseMain

	e.log.Debug("turn started",
		zap.String("game_id", s.ID),
		zap.Int("turn", s.CurrentTurn),
		zap.String("active_player", p.ID),
		zap.Int("bandwidth", p.Bandwidth),
	)
}

// EndTurn resolves the active player's end-of-turn triggers, flips the
// active seat, and immediately starts the next turn. End and start are
// not independently observable states: by the time EndTurn returns the
// next player's turn is underway (unless the triggers ended the game).
func (e *Engine) EndTurn(s *GameState) {
	s.TurnPhase = TurnPhaseEnd
	e.enqueueTurnTriggers(s, card.TriggerEndOfTurn)
	e.ProcessEffectQueue(s)
	e.CheckWinCondition(s)
	if s.Phase == PhaseEnded {
		return
	}

	next := s.InactivePlayer()
	if next == nil {
		return
	}
	s.ActivePlayerID = next.ID
	e.StartTurn(s)
}

// DrawCards pops n cards from the player's deck tail into their hand.
// Once the deck is empty every further draw escalates fatigue: the
// counter increments and the new counter value is subtracted from
// health. A card drawn while the hand is already full is burned — lost
// without touching hand or graveyard.
func (e *Engine) DrawCards(s *GameState, p *PlayerGameState, n int) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			p.FatigueCount++
			p.Health -= p.FatigueCount
			e.log.Debug("fatigue draw",
				zap.String("game_id", s.ID),
				zap.String("player", p.ID),
				zap.Int("fatigue", p.FatigueCount),
				zap.Int("health", p.Health),
			)
			continue
		}
		drawn := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		if len(p.Hand) >= HandLimit {
			e.log.Debug("card burned, hand full",
				zap.String("game_id", s.ID),
				zap.String("player", p.ID),
				zap.String("card", drawn.Design.Name),
			)
			continue
		}
		p.Hand = append(p.Hand, drawn)
	}
}

// CheckWinCondition inspects both players' health and ends the game when
// a seat has fallen to zero or below. When both fall in the same
// resolution the active player is ruled the loser.
func (e *Engine) CheckWinCondition(s *GameState) {
	if s.Phase == PhaseEnded {
		return
	}
	active := s.ActivePlayer()
	inactive := s.InactivePlayer()
	if active == nil || inactive == nil {
		return
	}

	switch {
	case active.Health <= 0 && inactive.Health <= 0:
		s.WinnerID = inactive.ID
	case active.Health <= 0:
		s.WinnerID = inactive.ID
	case inactive.Health <= 0:
		s.WinnerID = active.ID
	default:
		return
	}
	s.Phase = PhaseEnded
	e.log.Info("game ended",
		zap.String("game_id", s.ID),
		zap.String("winner", s.WinnerID),
		zap.Int("turn", s.CurrentTurn),
	)
}

// Concede ends the game immediately with the other seat as winner,
// regardless of health totals.
func (e *Engine) Concede(s *GameState, playerID string) error {
	if s.Phase == PhaseEnded {
		return ruleErrorf(ErrKindGameEnded, "game %s already ended", s.ID)
	}
	opp := s.Opponent(playerID)
	if opp == nil {
		return ruleErrorf(ErrKindPlayerNotFound, "player %s not in game", playerID)
	}
	s.WinnerID = opp.ID
	s.Phase = PhaseEnded
	e.log.Info("player conceded",
		zap.String("game_id", s.ID),
		zap.String("player", playerID),
		zap.String("winner", opp.ID),
	)
	return nil
}
