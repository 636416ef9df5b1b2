// Package sim runs seeded self-play games through the public controller
// surface with a random-legal-action policy. It exists to exercise the
// validator/controller contract end to end and to let hosts sanity-check
// card catalogs for balance before shipping them.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gridclash/gridclash-engine/internal/game"
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"go.uber.org/zap"
)

// Result summarizes one finished self-play game.
type Result struct {
	GameID   string
	WinnerID string
	Turns    int
	Checksum string
}

// Runner drives self-play games from a catalog and a seeded random
// source. The same seed always produces the same sequence of games.
type Runner struct {
	log      *zap.Logger
	catalog  *card.Catalog
	rng      *rand.Rand
	deckSize int
	maxTurns int
}

// NewRunner creates a runner. maxTurns bounds runaway games: once the
// turn counter passes it the runner concedes on behalf of the active
// player.
func NewRunner(logger *zap.Logger, catalog *card.Catalog, seed int64, deckSize, maxTurns int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		log:      logger,
		catalog:  catalog,
		rng:      rand.New(rand.NewSource(seed)),
		deckSize: deckSize,
		maxTurns: maxTurns,
	}
}

// Run plays n games and returns their results.
func (r *Runner) Run(n int) ([]Result, error) {
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		res, err := r.RunGame()
		if err != nil {
			return results, fmt.Errorf("game %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunGame plays a single game to completion.
func (r *Runner) RunGame() (Result, error) {
	engine := game.NewEngine(r.log, r.rng)
	seatA := game.Seat{ID: "sim-a", DisplayName: "Sim A"}
	seatB := game.Seat{ID: "sim-b", DisplayName: "Sim B"}

	state, err := engine.CreateGame(seatA, seatB, r.buildDeck(), r.buildDeck(), 75*time.Second)
	if err != nil {
		return Result{}, err
	}
	ctrl := game.NewController(engine, state)

	if _, err := ctrl.CompleteMulligan(seatA.ID); err != nil {
		return Result{}, err
	}
	if _, err := ctrl.CompleteMulligan(seatB.ID); err != nil {
		return Result{}, err
	}

	for ctrl.State().Phase == game.PhasePlaying {
		s := ctrl.State()
		if s.CurrentTurn > r.maxTurns {
			if _, err := ctrl.Concede(s.ActivePlayerID); err != nil {
				return Result{}, err
			}
			break
		}
		if err := r.playTurn(ctrl); err != nil {
			return Result{}, err
		}
	}

	final := ctrl.State()
	return Result{
		GameID:   final.ID,
		WinnerID: final.WinnerID,
		Turns:    final.CurrentTurn,
		Checksum: game.Checksum(final),
	}, nil
}

// playTurn plays out one turn for the active player: cards while any are
// playable, then attacks with every ready unit, then end turn.
func (r *Runner) playTurn(ctrl *game.Controller) error {
	eng := ctrl.Engine()

	for {
		s := ctrl.State()
		if s.Phase != game.PhasePlaying {
			return nil
		}
		active := s.ActivePlayer()
		played := false
		for _, c := range active.Hand {
			a := game.Action{
				Type:     game.ActionPlayCard,
				PlayerID: active.ID,
				CardID:   c.InstanceID,
				Position: len(active.Board),
			}
			if !eng.IsActionLegal(s, a) {
				continue
			}
			targetID, ok := r.pickTarget(s, active.ID, c.Design)
			if !ok {
				continue
			}
			if _, err := ctrl.PlayCard(active.ID, c.InstanceID, len(active.Board), targetID); err != nil {
				// Target selection raced the card's own effects; skip it.
				r.log.Debug("sim play rejected", zap.Error(err))
				continue
			}
			played = true
			break
		}
		if !played {
			break
		}
	}

	for {
		s := ctrl.State()
		if s.Phase != game.PhasePlaying {
			return nil
		}
		active := s.ActivePlayer()
		attacked := false
		for _, u := range active.Board {
			if !eng.CanUnitAttack(s, u.InstanceID) {
				continue
			}
			targets, err := eng.GetValidAttackTargets(s, u.InstanceID)
			if err != nil || len(targets) == 0 {
				continue
			}
			target := targets[r.rng.Intn(len(targets))]
			if _, err := ctrl.Attack(active.ID, u.InstanceID, target); err != nil {
				return err
			}
			attacked = true
			break
		}
		if !attacked {
			break
		}
	}

	s := ctrl.State()
	if s.Phase != game.PhasePlaying {
		return nil
	}
	_, err := ctrl.EndTurn(s.ActivePlayerID)
	return err
}

// pickTarget chooses a selection for targeted on_play effects, or
// reports the card unplayable when no eligible target exists.
func (r *Runner) pickTarget(s *game.GameState, playerID string, d card.Design) (string, bool) {
	for _, eff := range d.EffectsFor(card.TriggerOnPlay) {
		var pool []*game.UnitInPlay
		switch eff.Target {
		case card.TargetEnemyUnit:
			pool = targetable(s.Opponent(playerID).Board)
		case card.TargetFriendlyUnit:
			pool = targetable(s.PlayerByID(playerID).Board)
		case card.TargetAnyUnit:
			pool = append(targetable(s.PlayerByID(playerID).Board), targetable(s.Opponent(playerID).Board)...)
		default:
			continue
		}
		if len(pool) == 0 {
			return "", false
		}
		return pool[r.rng.Intn(len(pool))].InstanceID, true
	}
	return "", true
}

func targetable(board []*game.UnitInPlay) []*game.UnitInPlay {
	var out []*game.UnitInPlay
	for _, u := range board {
		if u.HasKeyword(card.KeywordEvasion) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// buildDeck samples deckSize designs from the catalog with replacement.
func (r *Runner) buildDeck() []game.CardInHand {
	ids := r.catalog.IDs()
	deck := make([]game.CardInHand, 0, r.deckSize)
	for i := 0; i < r.deckSize; i++ {
		d, _ := r.catalog.Get(ids[r.rng.Intn(len(ids))])
		deck = append(deck, game.CardInHand{
			InstanceID:  uuid.NewString(),
			OwnedCardID: uuid.NewString(),
			Design:      d,
		})
	}
	return deck
}
