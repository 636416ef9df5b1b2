package game

import "github.com/gridclash/gridclash-engine/internal/game/card"

// TargetKind distinguishes unit targets from player targets.
type TargetKind string

const (
	TargetKindUnit   TargetKind = "unit"
	TargetKindPlayer TargetKind = "player"
)

// TargetRef is one resolved effect target.
type TargetRef struct {
	ID      string
	Kind    TargetKind
	OwnerID string
}

// requiresSelection reports whether the target class needs an externally
// pre-selected target id.
func requiresSelection(tc card.TargetClass) bool {
	switch tc {
	case card.TargetFriendlyUnit, card.TargetEnemyUnit, card.TargetAnyUnit:
		return true
	default:
		return false
	}
}

// ResolveTargets computes the targets an effect applies to, as a pure
// function of the effect's target class, the source seat and unit, and an
// optional externally selected target. Random classes draw from the
// engine's injected random source. An empty list with a nil error means
// the effect legitimately has no eligible targets.
func (e *Engine) ResolveTargets(s *GameState, eff card.Effect, sourcePlayerID, sourceUnitID, selectedID string) ([]TargetRef, error) {
	src := s.PlayerByID(sourcePlayerID)
	if src == nil {
		return nil, ruleErrorf(ErrKindPlayerNotFound, "source player %s not in game", sourcePlayerID)
	}
	enemy := s.Opponent(sourcePlayerID)

	switch eff.Target {
	case card.TargetSelf:
		if u, owner := s.FindUnit(sourceUnitID); u != nil {
			return []TargetRef{unitRef(u, owner)}, nil
		}
		return nil, nil

	case card.TargetFriendlyUnit:
		return e.resolveSelected(s, selectedID, src.ID, src.ID)
	case card.TargetEnemyUnit:
		return e.resolveSelected(s, selectedID, enemy.ID, enemy.ID)
	case card.TargetAnyUnit:
		return e.resolveSelected(s, selectedID, src.ID, enemy.ID)

	case card.TargetFriendlyPlayer:
		return []TargetRef{playerRef(src)}, nil
	case card.TargetEnemyPlayer:
		return []TargetRef{playerRef(enemy)}, nil

	case card.TargetAllFriendly:
		return unitRefs(src.Board, src), nil
	case card.TargetAllEnemies:
		return unitRefs(withoutEvasion(enemy.Board), enemy), nil
	case card.TargetAllUnits:
		refs := unitRefs(src.Board, src)
		return append(refs, unitRefs(enemy.Board, enemy)...), nil

	case card.TargetRandomEnemy:
		return e.pickRandom(withoutEvasion(enemy.Board), enemy), nil
	case card.TargetRandomFriendly:
		return e.pickRandom(src.Board, src), nil

	default:
		return nil, ruleErrorf(ErrKindIllegalTarget, "unknown target class %q", eff.Target)
	}
}

// resolveSelected validates an externally selected single-unit target:
// it must exist, sit on an allowed side, and not carry evasion.
func (e *Engine) resolveSelected(s *GameState, selectedID string, allowedOwners ...string) ([]TargetRef, error) {
	if selectedID == "" {
		return nil, ruleErrorf(ErrKindIllegalTarget, "effect requires a selected target")
	}
	u, owner := s.FindUnit(selectedID)
	if u == nil {
		return nil, ruleErrorf(ErrKindUnitNotFound, "selected target %s not on board", selectedID)
	}
	allowed := false
	for _, id := range allowedOwners {
		if owner.ID == id {
			allowed = true
		}
	}
	if !allowed {
		return nil, ruleErrorf(ErrKindIllegalTarget, "unit %s is on the wrong side for this effect", selectedID)
	}
	if u.HasKeyword(card.KeywordEvasion) {
		return nil, ruleErrorf(ErrKindIllegalTarget, "unit %s has evasion and cannot be targeted", selectedID)
	}
	return []TargetRef{unitRef(u, owner)}, nil
}

func (e *Engine) pickRandom(pool []*UnitInPlay, owner *PlayerGameState) []TargetRef {
	if len(pool) == 0 {
		return nil
	}
	u := pool[e.rng.Intn(len(pool))]
	return []TargetRef{unitRef(u, owner)}
}

func withoutEvasion(board []*UnitInPlay) []*UnitInPlay {
	out := make([]*UnitInPlay, 0, len(board))
	for _, u := range board {
		if u.HasKeyword(card.KeywordEvasion) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func unitRef(u *UnitInPlay, owner *PlayerGameState) TargetRef {
	return TargetRef{ID: u.InstanceID, Kind: TargetKindUnit, OwnerID: owner.ID}
}

func playerRef(p *PlayerGameState) TargetRef {
	return TargetRef{ID: p.ID, Kind: TargetKindPlayer, OwnerID: p.ID}
}

func unitRefs(board []*UnitInPlay, owner *PlayerGameState) []TargetRef {
	refs := make([]TargetRef, 0, len(board))
	for _, u := range board {
		refs = append(refs, unitRef(u, owner))
	}
	return refs
}
