package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Engine holds the rules logic shared by every game: a structured logger
// and an injected random source. All randomness in the engine (deck
// shuffling, first-player choice, random-target resolution) flows through
// the injected source so games replay deterministically from a seed.
type Engine struct {
	log *zap.Logger
	rng *rand.Rand
}

// NewEngine creates an engine. A nil logger disables logging; a nil rng
// falls back to a time-seeded source (fine for live play, wrong for
// replays — inject a seeded source to get determinism).
func NewEngine(logger *zap.Logger, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{log: logger, rng: rng}
}

// shuffle performs a Fisher–Yates shuffle of the deck in place.
func (e *Engine) shuffle(deck []CardInHand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
