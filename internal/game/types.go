// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Status: coarse game status after the most recent move.
//   - Game: state for a single in-progress or finished game.

package game

// Status reports the outcome of the most recent move.
// Won and Lost are terminal; every other value means the game
// is still playable.
type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
	StatusAlreadyUsed Status = "already_used"
	StatusGoodGuess   Status = "good_guess"
	StatusBadGuess    Status = "bad_guess"
)

// Terminal reports whether no further moves are permitted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Game holds the state of a single hangman session.
//
// Letters is the distinct-letter set of Word and never changes after
// construction. Guessed only grows. TurnsLeft counts remaining wrong
// guesses and never goes below zero.
type Game struct {
	ID        string            // Unique game identifier (random hex string).
	Word      string            // The secret word (always lowercase).
	Letters   map[rune]struct{} // Distinct letters of Word.
	Guessed   map[rune]struct{} // Letters guessed so far.
	TurnsLeft int               // Remaining allowed wrong guesses.
	Status    Status            // Result of the most recent move.
	HintUsed  bool              // True once the one free hint is spent.
}

// Playing reports whether the game accepts further guesses.
func (g Game) Playing() bool { return !g.Status.Terminal() }
