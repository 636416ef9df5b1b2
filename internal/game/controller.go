package game

import (
	"time"

	"go.uber.org/zap"
)

// Listener receives every new GameState a controller produces. The state
// it receives is a settled snapshot: the effect queue is empty and the
// win check has run.
type Listener func(*GameState)

// Controller is the single entry point for one running game. It holds
// the current GameState, applies validated actions through the engine,
// and notifies observers of each new state before returning.
//
// Every mutating call works on a deep clone, so states previously
// returned by State or delivered to listeners are never altered. The
// controller is fully synchronous and does not serialize concurrent
// callers: the embedding host must guarantee at most one in-flight
// action per game.
type Controller struct {
	engine *Engine
	log    *zap.Logger
	state  *GameState

	listeners  map[int]Listener
	nextHandle int

	replay *Replay
}

// NewController wraps an initial GameState produced by Engine.CreateGame.
func NewController(engine *Engine, state *GameState) *Controller {
	c := &Controller{
		engine:    engine,
		log:       engine.log,
		state:     state,
		listeners: make(map[int]Listener),
	}
	return c
}

// State returns the current settled GameState. Callers must treat it as
// read-only; the controller never mutates it after returning.
func (c *Controller) State() *GameState {
	return c.state
}

// Engine exposes the underlying rules engine for pure queries
// (IsActionLegal, GetValidAttackTargets, CanUnitAttack).
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Subscribe registers a listener for new states and returns its
// unsubscribe function.
func (c *Controller) Subscribe(fn Listener) func() {
	handle := c.nextHandle
	c.nextHandle++
	c.listeners[handle] = fn
	return func() {
		delete(c.listeners, handle)
	}
}

// AttachReplay makes the controller record every settled state it
// produces into the given replay, starting with the current state.
func (c *Controller) AttachReplay(r *Replay) {
	c.replay = r
	if r != nil {
		r.Record(c.state)
	}
}

// CompleteMulligan marks the seat's opening hand as kept; when both
// seats have kept, play begins.
func (c *Controller) CompleteMulligan(playerID string) (*GameState, error) {
	return c.apply(
		Action{Type: ActionCompleteMulligan, PlayerID: playerID},
		"complete_mulligan",
		func(s *GameState) error {
			return c.engine.CompleteMulligan(s, playerID)
		},
	)
}

// PlayCard plays a card from the player's hand. Position places a unit
// on the board; targetID selects the target for targeted on_play
// effects.
func (c *Controller) PlayCard(playerID, cardID string, position int, targetID string) (*GameState, error) {
	return c.apply(
		Action{Type: ActionPlayCard, PlayerID: playerID, CardID: cardID, Position: position, TargetID: targetID},
		"play_card",
		func(s *GameState) error {
			return c.engine.PlayCard(s, playerID, cardID, position, targetID)
		},
	)
}

// Attack resolves an attack by the player's unit against an opposing
// unit or the face sentinel.
func (c *Controller) Attack(playerID, attackerID, targetID string) (*GameState, error) {
	return c.apply(
		Action{Type: ActionAttack, PlayerID: playerID, AttackerID: attackerID, TargetID: targetID},
		"attack",
		func(s *GameState) error {
			return c.engine.ExecuteAttack(s, attackerID, targetID)
		},
	)
}

// EndTurn ends the player's turn and immediately starts the opponent's.
func (c *Controller) EndTurn(playerID string) (*GameState, error) {
	return c.apply(
		Action{Type: ActionEndTurn, PlayerID: playerID},
		"end_turn",
		func(s *GameState) error {
			c.engine.EndTurn(s)
			return nil
		},
	)
}

// Concede forfeits the game for the player.
func (c *Controller) Concede(playerID string) (*GameState, error) {
	return c.apply(
		Action{Type: ActionConcede, PlayerID: playerID},
		"concede",
		func(s *GameState) error {
			return c.engine.Concede(s, playerID)
		},
	)
}

// apply is the shared mutation pipeline: validate against the current
// state, mutate a clone, drain the effect queue, run the win check,
// stamp echo fields, commit, record, and notify. The pre-mutation state
// survives untouched when the mutation fails.
func (c *Controller) apply(a Action, name string, mutate func(*GameState) error) (*GameState, error) {
	if err := c.engine.ValidateAction(c.state, a); err != nil {
		c.log.Debug("action rejected",
			zap.String("game_id", c.state.ID),
			zap.String("action", name),
			zap.String("player", a.PlayerID),
			zap.Error(err),
		)
		return nil, err
	}

	next := c.state.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}

	c.engine.ProcessEffectQueue(next)
	c.engine.CheckWinCondition(next)

	next.LastAction = name
	next.LastActionPlayerID = a.PlayerID
	next.UpdatedAt = time.Now()

	c.state = next
	if c.replay != nil {
		c.replay.Record(next)
	}
	for _, fn := range c.listeners {
		fn(next)
	}
	return next, nil
}
