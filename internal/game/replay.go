package game

// Replay is a recorded game: the sequence of settled GameState values a
// controller produced, for playback or divergence checks. Snapshots are
// safe to hold because the controller never mutates a state it has
// already committed.
type Replay struct {
	GameID string
	states []*GameState
	index  int
}

// NewReplay creates an empty replay for the given game.
func NewReplay(gameID string) *Replay {
	return &Replay{GameID: gameID}
}

// Record appends a state snapshot.
func (r *Replay) Record(s *GameState) {
	r.states = append(r.states, s)
}

// Len returns the number of recorded states.
func (r *Replay) Len() int {
	return len(r.states)
}

// Start rewinds playback to the first recorded state.
func (r *Replay) Start() {
	r.index = 0
}

// Next returns the next state in playback order, or nil past the end.
func (r *Replay) Next() *GameState {
	if r.index >= len(r.states) {
		return nil
	}
	s := r.states[r.index]
	r.index++
	return s
}

// Prev steps playback one state backwards, or nil at the beginning.
func (r *Replay) Prev() *GameState {
	if r.index <= 1 {
		r.index = 0
		return nil
	}
	r.index--
	return r.states[r.index-1]
}

// Seek positions playback at the given state index.
func (r *Replay) Seek(i int) *GameState {
	if i < 0 || i >= len(r.states) {
		return nil
	}
	r.index = i + 1
	return r.states[i]
}
