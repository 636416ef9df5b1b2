package game

import (
	"errors"
	"fmt"
)

// RuleErrorKind classifies why the engine rejected an operation. Callers
// switch on the kind to decide whether to retry, log, or surface to the
// player.
type RuleErrorKind string

const (
	ErrKindGameEnded             RuleErrorKind = "GAME_ENDED"
	ErrKindWrongPhase            RuleErrorKind = "WRONG_PHASE"
	ErrKindNotActivePlayer       RuleErrorKind = "NOT_ACTIVE_PLAYER"
	ErrKindPlayerNotFound        RuleErrorKind = "PLAYER_NOT_FOUND"
	ErrKindCardNotFound          RuleErrorKind = "CARD_NOT_FOUND"
	ErrKindUnitNotFound          RuleErrorKind = "UNIT_NOT_FOUND"
	ErrKindInsufficientBandwidth RuleErrorKind = "INSUFFICIENT_BANDWIDTH"
	ErrKindBoardFull             RuleErrorKind = "BOARD_FULL"
	ErrKindIllegalTarget         RuleErrorKind = "ILLEGAL_TARGET"
	ErrKindCannotAttack          RuleErrorKind = "CANNOT_ATTACK"
	ErrKindIllegalAction         RuleErrorKind = "ILLEGAL_ACTION"
)

// RuleError is a rejected rules operation. Nothing in the engine is
// fatal; every failure surfaces as a RuleError before state is mutated.
type RuleError struct {
	Kind RuleErrorKind
	msg  string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func ruleErrorf(kind RuleErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the RuleErrorKind from an error chain, or "" if the
// error is not a rules rejection.
func KindOf(err error) RuleErrorKind {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
