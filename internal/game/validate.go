package game

import "github.com/gridclash/gridclash-engine/internal/game/card"

// ActionType enumerates the player intents the engine accepts.
type ActionType string

const (
	ActionPlayCard         ActionType = "play_card"
	ActionAttack           ActionType = "attack"
	ActionEndTurn          ActionType = "end_turn"
	ActionConcede          ActionType = "concede"
	ActionCompleteMulligan ActionType = "complete_mulligan"
)

// Action is a proposed player intent, as delivered by the transport
// collaborator.
type Action struct {
	Type     ActionType
	PlayerID string

	// CardID and Position apply to play_card.
	CardID   string
	Position int

	// TargetID applies to play_card (effect target) and attack.
	TargetID string

	// AttackerID applies to attack.
	AttackerID string
}

// ValidateAction decides whether the proposed action may be applied to
// the current state. It mutates nothing; a nil return means legal, any
// other return is a RuleError explaining the rejection.
func (e *Engine) ValidateAction(s *GameState, a Action) error {
	if s.Phase == PhaseEnded {
		return ruleErrorf(ErrKindGameEnded, "game %s has ended", s.ID)
	}
	p := s.PlayerByID(a.PlayerID)
	if p == nil {
		return ruleErrorf(ErrKindPlayerNotFound, "player %s not in game", a.PlayerID)
	}

	if s.Phase != PhasePlaying {
		if a.Type != ActionCompleteMulligan {
			return ruleErrorf(ErrKindWrongPhase, "%s not legal in phase %s", a.Type, s.Phase)
		}
		if s.Phase != PhaseMulligan {
			return ruleErrorf(ErrKindWrongPhase, "mulligan completion in phase %s", s.Phase)
		}
		if p.KeptHand {
			return ruleErrorf(ErrKindIllegalAction, "player %s already kept their hand", a.PlayerID)
		}
		return nil
	}

	// Concede is the only action not bound to the active seat.
	if a.Type == ActionConcede {
		return nil
	}
	if a.PlayerID != s.ActivePlayerID {
		return ruleErrorf(ErrKindNotActivePlayer, "player %s acted out of turn", a.PlayerID)
	}

	switch a.Type {
	case ActionPlayCard:
		return e.validatePlayCard(s, p, a)
	case ActionAttack:
		return e.validateAttack(s, a)
	case ActionEndTurn:
		return nil
	case ActionCompleteMulligan:
		return ruleErrorf(ErrKindWrongPhase, "mulligan already complete")
	default:
		return ruleErrorf(ErrKindIllegalAction, "unknown action type %q", a.Type)
	}
}

// IsActionLegal is the boolean form of ValidateAction.
func (e *Engine) IsActionLegal(s *GameState, a Action) bool {
	return e.ValidateAction(s, a) == nil
}

func (e *Engine) validatePlayCard(s *GameState, p *PlayerGameState, a Action) error {
	c, ok := findInHand(p, a.CardID)
	if !ok {
		return ruleErrorf(ErrKindCardNotFound, "card %s not in hand of %s", a.CardID, p.ID)
	}
	if c.Design.Cost > p.Bandwidth {
		return ruleErrorf(ErrKindInsufficientBandwidth, "card %s costs %d, player %s has %d bandwidth",
			c.Design.Name, c.Design.Cost, p.ID, p.Bandwidth)
	}
	if c.Design.Category == card.CategoryUnit && len(p.Board) >= BoardLimit {
		return ruleErrorf(ErrKindBoardFull, "board of %s is full", p.ID)
	}
	return nil
}

func (e *Engine) validateAttack(s *GameState, a Action) error {
	if err := e.checkUnitCanAttack(s, a.AttackerID); err != nil {
		return err
	}
	targets, err := e.GetValidAttackTargets(s, a.AttackerID)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if t == a.TargetID {
			return nil
		}
	}
	return ruleErrorf(ErrKindIllegalTarget, "%s is not a legal attack target for %s", a.TargetID, a.AttackerID)
}

func findInHand(p *PlayerGameState, cardID string) (CardInHand, bool) {
	for _, c := range p.Hand {
		if c.InstanceID == cardID {
			return c, true
		}
	}
	return CardInHand{}, false
}
