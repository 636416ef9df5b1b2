package game

import (
	"github.com/google/uuid"
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap"
)

// enqueueUnitTrigger pushes every effect on the unit's design matching
// the trigger onto the pending-effect queue, plus a synthetic summon
// entry when the design's token configuration fires on this trigger.
// Silenced units never enqueue anything.
func (e *Engine) enqueueUnitTrigger(s *GameState, u *UnitInPlay, ownerID string, trigger card.Trigger, selectedID string) {
	if u.Silenced {
		return
	}
	for _, eff := range u.Design.EffectsFor(trigger) {
		pe := PendingEffect{
			SourceUnitID:   u.InstanceID,
			SourcePlayerID: ownerID,
			SourceDesign:   u.Design,
			Effect:         eff,
			Trigger:        trigger,
		}
		if requiresSelection(eff.Target) && selectedID != "" {
			pe.TargetIDs = []string{selectedID}
		}
		s.EffectQueue = append(s.EffectQueue, pe)
	}
	if tok := u.Design.Token; tok != nil && tok.Trigger == trigger {
		s.EffectQueue = append(s.EffectQueue, PendingEffect{
			SourceUnitID:   u.InstanceID,
			SourcePlayerID: ownerID,
			SourceDesign:   u.Design,
			Effect:         card.Effect{Trigger: trigger, Target: card.TargetSelf, Action: card.ActionSummon},
			Trigger:        trigger,
		})
	}
}

// enqueueTurnTriggers enqueues start- or end-of-turn effects. Only the
// active player's board is scanned.
func (e *Engine) enqueueTurnTriggers(s *GameState, trigger card.Trigger) {
	p := s.ActivePlayer()
	if p == nil {
		return
	}
	for _, u := range p.Board {
		e.enqueueUnitTrigger(s, u, p.ID, trigger, "")
	}
}

// ProcessEffectQueue drains the pending-effect queue to exhaustion in
// strict FIFO order. Effects enqueued during execution (an on_destroy
// cascade, for example) join the back of the same queue and resolve
// before control returns. Pre-resolved target ids are used verbatim;
// targets that have since left play simply drop out — by then the effect
// legitimately has fewer eligible targets, which is not an error.
func (e *Engine) ProcessEffectQueue(s *GameState) {
	for len(s.EffectQueue) > 0 {
		pe := s.EffectQueue[0]
		s.EffectQueue = s.EffectQueue[1:]

		targets, err := e.queuedTargets(s, pe)
		if err != nil {
			// Bad card data or a selection that expired mid-cascade.
			// The action-time gate already rejected caller mistakes.
			e.log.Warn("pending effect skipped",
				zap.String("game_id", s.ID),
				zap.String("action", string(pe.Effect.Action)),
				zap.Error(err),
			)
			continue
		}
		if err := e.executeEffect(s, pe, targets); err != nil {
			e.log.Warn("effect execution failed",
				zap.String("game_id", s.ID),
				zap.String("action", string(pe.Effect.Action)),
				zap.Error(err),
			)
		}
		e.resolveDeaths(s)
	}
}

// queuedTargets resolves a pending effect's targets: pre-supplied ids
// verbatim, everything else via target resolution.
func (e *Engine) queuedTargets(s *GameState, pe PendingEffect) ([]TargetRef, error) {
	if len(pe.TargetIDs) == 0 {
		return e.ResolveTargets(s, pe.Effect, pe.SourcePlayerID, pe.SourceUnitID, "")
	}
	var refs []TargetRef
	for _, id := range pe.TargetIDs {
		if u, owner := s.FindUnit(id); u != nil {
			refs = append(refs, unitRef(u, owner))
			continue
		}
		if p := s.PlayerByID(id); p != nil {
			refs = append(refs, playerRef(p))
			continue
		}
		// Target left play while queued; it drops out.
		e.log.Debug("queued target gone",
			zap.String("game_id", s.ID),
			zap.String("target", id),
		)
	}
	return refs, nil
}

// executeEffect applies one resolved effect to the state. The switch is
// exhaustive over the closed action-kind enumeration; an unknown kind is
// an error, never a silent skip.
func (e *Engine) executeEffect(s *GameState, pe PendingEffect, targets []TargetRef) error {
	switch pe.Effect.Action {
	case card.ActionDamage:
		for _, t := range targets {
			if t.Kind == TargetKindPlayer {
				e.damagePlayer(s.PlayerByID(t.ID), pe.Effect.Value)
				continue
			}
			if u, owner := s.FindUnit(t.ID); u != nil {
				e.damageUnit(s, u, owner.ID, pe.Effect.Value)
			}
		}

	case card.ActionHeal:
		for _, t := range targets {
			if t.Kind == TargetKindPlayer {
				e.healPlayer(s.PlayerByID(t.ID), pe.Effect.Value)
				continue
			}
			if u, _ := s.FindUnit(t.ID); u != nil {
				e.healUnit(u, pe.Effect.Value)
			}
		}

	case card.ActionDraw:
		if p := s.PlayerByID(pe.SourcePlayerID); p != nil {
			e.DrawCards(s, p, pe.Effect.Value)
		}

	case card.ActionBuffAttack:
		for _, u := range targetUnits(s, targets) {
			e.buffAttack(u, pe.Effect.Value)
		}

	case card.ActionBuffHealth:
		for _, u := range targetUnits(s, targets) {
			e.buffHealth(u, pe.Effect.Value)
		}

	case card.ActionDestroy:
		for _, u := range targetUnits(s, targets) {
			e.destroyUnit(u)
		}

	case card.ActionSilence:
		for _, u := range targetUnits(s, targets) {
			e.silenceUnit(u)
		}

	case card.ActionReturnToHand:
		for _, t := range targets {
			if t.Kind == TargetKindUnit {
				e.returnUnitToHand(s, t.ID)
			}
		}

	case card.ActionSummon:
		e.summonTokens(s, pe)

	case card.ActionStun:
		for _, u := range targetUnits(s, targets) {
			e.stunUnit(u)
		}

	case card.ActionCopy:
		// Defined in card data but intentionally inert.
		e.log.Debug("copy effect is a no-op", zap.String("game_id", s.ID))

	default:
		return ruleErrorf(ErrKindIllegalAction, "unknown action kind %q", pe.Effect.Action)
	}
	return nil
}

// returnUnitToHand moves a unit off the board into its owner's hand. If
// the hand is full the card is lost: it joins neither hand nor graveyard.
func (e *Engine) returnUnitToHand(s *GameState, unitID string) {
	u, owner := s.FindUnit(unitID)
	if u == nil {
		return
	}
	for i, b := range owner.Board {
		if b.InstanceID == unitID {
			owner.Board = append(owner.Board[:i], owner.Board[i+1:]...)
			break
		}
	}
	renumberBoard(owner)
	if len(owner.Hand) >= HandLimit {
		e.log.Debug("returned card lost, hand full",
			zap.String("game_id", s.ID),
			zap.String("unit", u.Design.Name),
		)
		return
	}
	owner.Hand = append(owner.Hand, CardInHand{
		InstanceID:  u.InstanceID,
		OwnedCardID: u.OwnedCardID,
		Design:      u.Design,
	})
}

// summonTokens materializes the source design's token configuration as
// fresh units on the source player's board, honoring the board limit and
// the design's max-summons cap. The summon still happens when the source
// unit has left play (an on_destroy summon), since the design snapshot
// travels with the queued effect.
func (e *Engine) summonTokens(s *GameState, pe PendingEffect) {
	tok := pe.SourceDesign.Token
	if tok == nil {
		e.log.Warn("summon effect without token configuration",
			zap.String("game_id", s.ID),
			zap.String("design", pe.SourceDesign.ID),
		)
		return
	}
	owner := s.PlayerByID(pe.SourcePlayerID)
	if owner == nil {
		return
	}
	src, _ := s.FindUnit(pe.SourceUnitID)

	td, err := pe.SourceDesign.TokenDesign()
	if err != nil {
		e.log.Warn("token design invalid", zap.String("game_id", s.ID), zap.Error(err))
		return
	}

	for i := 0; i < tok.Count; i++ {
		if len(owner.Board) >= BoardLimit {
			return
		}
		if tok.MaxSummons > 0 && src != nil && src.TokensSummoned >= tok.MaxSummons {
			return
		}
		quick := td.HasKeyword(card.KeywordQuick)
		u := &UnitInPlay{
			InstanceID:        uuid.NewString(),
			Design:            td,
			CurrentAttack:     td.Attack,
			CurrentHealth:     td.Health,
			MaxHealth:         td.Health,
			CanAttack:         quick,
			SummoningSickness: !quick,
			Position:          len(owner.Board),
		}
		owner.Board = append(owner.Board, u)
		if src != nil {
			src.TokensSummoned++
		}
		// Tokens carry no effects, but the play trigger path is uniform.
		e.enqueueUnitTrigger(s, u, owner.ID, card.TriggerOnPlay, "")
		e.log.Debug("token summoned",
			zap.String("game_id", s.ID),
			zap.String("token", td.Name),
			zap.String("owner", owner.ID),
		)
	}
}

func targetUnits(s *GameState, targets []TargetRef) []*UnitInPlay {
	var units []*UnitInPlay
	for _, t := range targets {
		if t.Kind != TargetKindUnit {
			continue
		}
		if u, _ := s.FindUnit(t.ID); u != nil {
			units = append(units, u)
		}
	}
	return units
}
