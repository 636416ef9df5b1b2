package game

import (
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap"
)

// PlayCard spends bandwidth and plays a card from the player's hand.
// Units are placed on the board at the requested position (clamped to
// the current board edge); action cards resolve their effects and move
// to the graveyard. Targeted on_play effects are validated against
// targetID before any state changes, so an illegal selection rejects the
// whole play. Triggered effects are enqueued for the controller to drain.
func (e *Engine) PlayCard(s *GameState, playerID, cardID string, position int, targetID string) error {
	p := s.PlayerByID(playerID)
	if p == nil {
		return ruleErrorf(ErrKindPlayerNotFound, "player %s not in game", playerID)
	}

	idx := -1
	for i, c := range p.Hand {
		if c.InstanceID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ruleErrorf(ErrKindCardNotFound, "card %s not in hand of %s", cardID, playerID)
	}
	c := p.Hand[idx]

	if c.Design.Cost > p.Bandwidth {
		return ruleErrorf(ErrKindInsufficientBandwidth, "card %s costs %d, player %s has %d bandwidth",
			c.Design.Name, c.Design.Cost, playerID, p.Bandwidth)
	}
	if c.Design.Category == card.CategoryUnit && len(p.Board) >= BoardLimit {
		return ruleErrorf(ErrKindBoardFull, "board of %s is full", playerID)
	}

	// Gate targeted effects before mutating anything.
	for _, eff := range c.Design.EffectsFor(card.TriggerOnPlay) {
		if !requiresSelection(eff.Target) {
			continue
		}
		if _, err := e.ResolveTargets(s, eff, playerID, "", targetID); err != nil {
			return err
		}
	}

	p.Bandwidth -= c.Design.Cost
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)

	switch c.Design.Category {
	case card.CategoryUnit:
		e.placeUnit(s, p, c, position, targetID)
	case card.CategoryAction:
		e.enqueueActionCard(s, p, c, targetID)
		p.Graveyard = append(p.Graveyard, c)
	default:
		return ruleErrorf(ErrKindIllegalAction, "card %s has unknown category %q", c.InstanceID, c.Design.Category)
	}

	e.log.Debug("card played",
		zap.String("game_id", s.ID),
		zap.String("player", playerID),
		zap.String("card", c.Design.Name),
		zap.Int("bandwidth_left", p.Bandwidth),
	)
	return nil
}

// placeUnit materializes a unit card on the board. Quick units are
// attack-ready immediately; everything else sits out a turn with
// summoning sickness.
func (e *Engine) placeUnit(s *GameState, p *PlayerGameState, c CardInHand, position int, targetID string) {
	quick := c.Design.HasKeyword(card.KeywordQuick)
	u := &UnitInPlay{
		InstanceID:        c.InstanceID,
		OwnedCardID:       c.OwnedCardID,
		Design:            c.Design,
		CurrentAttack:     c.Design.Attack,
		CurrentHealth:     c.Design.Health,
		MaxHealth:         c.Design.Health,
		CanAttack:         quick,
		SummoningSickness: !quick,
	}
	if position < 0 {
		position = 0
	}
	if position > len(p.Board) {
		position = len(p.Board)
	}
	p.Board = append(p.Board[:position], append([]*UnitInPlay{u}, p.Board[position:]...)...)
	renumberBoard(p)

	e.enqueueUnitTrigger(s, u, p.ID, card.TriggerOnPlay, targetID)
}

// enqueueActionCard pushes an action card's on_play effects onto the
// queue. Action cards have no board presence, so the source unit id is
// empty.
func (e *Engine) enqueueActionCard(s *GameState, p *PlayerGameState, c CardInHand, targetID string) {
	for _, eff := range c.Design.EffectsFor(card.TriggerOnPlay) {
		pe := PendingEffect{
			SourcePlayerID: p.ID,
			SourceDesign:   c.Design,
			Effect:         eff,
			Trigger:        card.TriggerOnPlay,
		}
		if requiresSelection(eff.Target) && targetID != "" {
			pe.TargetIDs = []string{targetID}
		}
		s.EffectQueue = append(s.EffectQueue, pe)
	}
}
