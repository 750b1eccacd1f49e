// internal/game/engine.go
//
// Session-facing API around the move evaluator.
// Responsibilities:
//   - Construct new games from a secret word and a turn budget.
//   - Apply guesses in place for callers that hold a session pointer.
//   - Render the masked display word and the guessed-letter list.
//   - Reveal a one-per-game hint letter.
//
// Notes:
//   - All state transitions go through Apply (rules.go); nothing in this
//     file inspects the six cases directly.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"sort"
	"strings"
)

const defaultTurns = 6

// New constructs a game around word with the given budget of wrong guesses.
// The word must be non-empty and alphabetic; turns must be positive
// (0 selects the default budget of 6).
func New(word string, turns int) (*Game, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, errors.New("empty word")
	}
	if !isAlpha(word) {
		return nil, errors.New("word must be letters a-z")
	}
	if turns == 0 {
		turns = defaultTurns
	}
	if turns < 0 {
		return nil, errors.New("turns must be positive")
	}
	letters := make(map[rune]struct{}, len(word))
	for _, r := range word {
		letters[r] = struct{}{}
	}
	return &Game{
		ID:        randomID(),
		Word:      word,
		Letters:   letters,
		Guessed:   map[rune]struct{}{},
		TurnsLeft: turns,
		Status:    StatusInProgress,
	}, nil
}

// Guess applies a single-letter guess and stores the resulting state back
// onto the receiver. Returns the new status.
func (g *Game) Guess(letter rune) Status {
	*g = Apply(*g, letter)
	return g.Status
}

// Masked returns the display word: guessed letters shown, the rest as
// underscores. A lost game reveals nothing extra; callers decide whether
// to expose Word once the game is over.
func (g *Game) Masked() string {
	var b strings.Builder
	for _, r := range g.Word {
		if _, ok := g.Guessed[r]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Revealed returns the guessed letters in sorted order.
func (g *Game) Revealed() []string {
	out := make([]string, 0, len(g.Guessed))
	for r := range g.Guessed {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// Hint reveals one random unguessed secret letter, applying it as a normal
// guess (it can win the game, it never costs a turn). Each game gets one
// hint; later calls fail.
func (g *Game) Hint() (rune, error) {
	if g.HintUsed {
		return 0, errors.New("hint already used")
	}
	if g.Status.Terminal() {
		return 0, errors.New("game finished")
	}
	var open []rune
	for l := range g.Letters {
		if _, ok := g.Guessed[l]; !ok {
			open = append(open, l)
		}
	}
	if len(open) == 0 {
		return 0, errors.New("no unguessed letters left")
	}
	sort.Slice(open, func(i, j int) bool { return open[i] < open[j] })
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(open))))
	pick := open[nBig.Int64()]
	g.Guess(pick)
	g.HintUsed = true
	return pick, nil
}

// isAlpha checks that a string consists only of lowercase a-z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
