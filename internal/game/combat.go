package game

import (
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap"
)

// checkUnitCanAttack returns the rule error preventing the unit from
// attacking, or nil if the unit may attack right now.
func (e *Engine) checkUnitCanAttack(s *GameState, unitID string) error {
	u, owner := s.FindUnit(unitID)
	if u == nil {
		return ruleErrorf(ErrKindUnitNotFound, "unit %s not on board", unitID)
	}
	if owner.ID != s.ActivePlayerID {
		return ruleErrorf(ErrKindNotActivePlayer, "unit %s belongs to the inactive player", unitID)
	}
	if !u.CanAttack {
		return ruleErrorf(ErrKindCannotAttack, "unit %s already attacked this turn", unitID)
	}
	if u.SummoningSickness {
		return ruleErrorf(ErrKindCannotAttack, "unit %s has summoning sickness", unitID)
	}
	if u.Stunned {
		return ruleErrorf(ErrKindCannotAttack, "unit %s is stunned", unitID)
	}
	if u.CurrentAttack <= 0 {
		return ruleErrorf(ErrKindCannotAttack, "unit %s has no attack", unitID)
	}
	return nil
}

// CanUnitAttack reports whether the unit may declare an attack: it must
// belong to the active player, be attack-ready, free of summoning
// sickness and stun, and have attack greater than zero.
func (e *Engine) CanUnitAttack(s *GameState, unitID string) bool {
	return e.checkUnitCanAttack(s, unitID) == nil
}

// GetValidAttackTargets computes the legal attack targets for the unit.
// If the defending player controls any non-silenced frontline unit,
// exactly those units are legal; otherwise every defending unit plus the
// face sentinel.
func (e *Engine) GetValidAttackTargets(s *GameState, attackerID string) ([]string, error) {
	_, owner := s.FindUnit(attackerID)
	if owner == nil {
		return nil, ruleErrorf(ErrKindUnitNotFound, "unit %s not on board", attackerID)
	}
	defender := s.Opponent(owner.ID)

	var frontline []string
	for _, u := range defender.Board {
		if u.HasKeyword(card.KeywordFrontline) {
			frontline = append(frontline, u.InstanceID)
		}
	}
	if len(frontline) > 0 {
		return frontline, nil
	}

	targets := make([]string, 0, len(defender.Board)+1)
	for _, u := range defender.Board {
		targets = append(targets, u.InstanceID)
	}
	return append(targets, TargetFace), nil
}

// ExecuteAttack resolves a declared attack. The attacker is spent, its
// on_attack effects are enqueued, and the attack dispatches to face or
// unit resolution. Triggered effects are enqueued, not drained; the
// controller drains the queue after the attack.
func (e *Engine) ExecuteAttack(s *GameState, attackerID, targetID string) error {
	if err := e.checkUnitCanAttack(s, attackerID); err != nil {
		return err
	}
	attacker, owner := s.FindUnit(attackerID)
	defender := s.Opponent(owner.ID)

	valid, err := e.GetValidAttackTargets(s, attackerID)
	if err != nil {
		return err
	}
	legal := false
	for _, id := range valid {
		if id == targetID {
			legal = true
			break
		}
	}
	if !legal {
		return ruleErrorf(ErrKindIllegalTarget, "unit %s cannot attack %s", attackerID, targetID)
	}

	s.TurnPhase = TurnPhaseCombat
	s.AttackerID = attackerID
	s.AttackTargetID = targetID
	attacker.CanAttack = false

	e.enqueueUnitTrigger(s, attacker, owner.ID, card.TriggerOnAttack, "")

	if targetID == TargetFace {
		defender.Health -= attacker.CurrentAttack
		e.log.Debug("face attack",
			zap.String("game_id", s.ID),
			zap.String("attacker", attacker.Design.Name),
			zap.Int("damage", attacker.CurrentAttack),
			zap.Int("defender_health", defender.Health),
		)
		s.TurnPhase = TurnPhaseMain
		return nil
	}

	target, targetOwner := s.FindUnit(targetID)

	// Damage is simultaneous: both amounts come from pre-combat stats.
	attackerDamage := attacker.CurrentAttack
	targetDamage := target.CurrentAttack
	e.damageUnit(s, target, targetOwner.ID, attackerDamage)
	e.damageUnit(s, attacker, owner.ID, targetDamage)

	e.log.Debug("unit attack",
		zap.String("game_id", s.ID),
		zap.String("attacker", attacker.Design.Name),
		zap.String("target", target.Design.Name),
		zap.Int("attacker_damage", attackerDamage),
		zap.Int("target_damage", targetDamage),
	)

	e.resolveDeaths(s)
	s.TurnPhase = TurnPhaseMain
	return nil
}

// damageUnit applies damage to a unit and enqueues its on_damaged
// effects when damage actually landed. Death is resolved separately so
// simultaneous trades read consistent state.
func (e *Engine) damageUnit(s *GameState, u *UnitInPlay, ownerID string, amount int) {
	if amount <= 0 {
		return
	}
	u.CurrentHealth -= amount
	e.enqueueUnitTrigger(s, u, ownerID, card.TriggerOnDamaged, "")
}

// damagePlayer applies direct damage to a player. Health may go negative;
// the win check rules on it.
func (e *Engine) damagePlayer(p *PlayerGameState, amount int) {
	if amount <= 0 {
		return
	}
	p.Health -= amount
}

// healUnit restores health, clamped to the unit's max.
func (e *Engine) healUnit(u *UnitInPlay, amount int) {
	if amount <= 0 {
		return
	}
	u.CurrentHealth += amount
	if u.CurrentHealth > u.MaxHealth {
		u.CurrentHealth = u.MaxHealth
	}
}

// healPlayer restores health, clamped to the player's max.
func (e *Engine) healPlayer(p *PlayerGameState, amount int) {
	if amount <= 0 {
		return
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// buffAttack raises the unit's current attack and its informational buff
// counter.
func (e *Engine) buffAttack(u *UnitInPlay, amount int) {
	u.CurrentAttack += amount
	u.AttackBuff += amount
}

// buffHealth raises current health, max health, and the buff counter.
func (e *Engine) buffHealth(u *UnitInPlay, amount int) {
	u.CurrentHealth += amount
	u.MaxHealth += amount
	u.HealthBuff += amount
}

// boostUnit applies the boost keyword's silence-immune gain: it survives
// a later silence because the stat floor includes accrued boost.
func (e *Engine) boostUnit(u *UnitInPlay, attack, health int) {
	u.BoostAttack += attack
	u.BoostHealth += health
	u.CurrentAttack += attack
	u.CurrentHealth += health
	u.MaxHealth += health
}

// silenceUnit strips a unit of keywords and effects: stats revert to the
// design base (plus accrued boost, which is silence-immune), current
// health clamps to the new max, buff counters zero, and the unit stops
// enqueueing triggers from here on.
func (e *Engine) silenceUnit(u *UnitInPlay) {
	u.CurrentAttack = u.Design.Attack + u.BoostAttack
	u.MaxHealth = u.Design.Health + u.BoostHealth
	if u.CurrentHealth > u.MaxHealth {
		u.CurrentHealth = u.MaxHealth
	}
	u.AttackBuff = 0
	u.HealthBuff = 0
	u.Silenced = true
}

// stunUnit blocks the unit from attacking until its owner's next turn
// start, without touching stats or keywords.
func (e *Engine) stunUnit(u *UnitInPlay) {
	u.Stunned = true
	u.CanAttack = false
}

// destroyUnit marks a unit for death regardless of its health.
func (e *Engine) destroyUnit(u *UnitInPlay) {
	if u.CurrentHealth > 0 {
		u.CurrentHealth = 0
	}
}

// resolveDeaths sweeps both boards for units at zero or less health:
// each dead unit's on_destroy effects are enqueued, the unit moves to
// its owner's graveyard, and the remaining positions are renumbered.
// The sweep repeats until stable so a death enqueued mid-sweep is not
// missed — though effects triggered by these deaths resolve later via
// the queue, never here.
func (e *Engine) resolveDeaths(s *GameState) {
	for {
		removed := false
		for _, p := range s.Players {
			for i := 0; i < len(p.Board); i++ {
				u := p.Board[i]
				if u.CurrentHealth > 0 {
					continue
				}
				e.enqueueUnitTrigger(s, u, p.ID, card.TriggerOnDestroy, "")
				p.Board = append(p.Board[:i], p.Board[i+1:]...)
				p.Graveyard = append(p.Graveyard, CardInHand{
					InstanceID:  u.InstanceID,
					OwnedCardID: u.OwnedCardID,
					Design:      u.Design,
				})
				renumberBoard(p)
				e.log.Debug("unit destroyed",
					zap.String("game_id", s.ID),
					zap.String("unit", u.Design.Name),
					zap.String("owner", p.ID),
				)
				removed = true
				i--
			}
		}
		if !removed {
			return
		}
	}
}
