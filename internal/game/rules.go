// internal/game/rules.go
//
// Move evaluation for a single hangman guess.
//
// Every possible (state, guess) combination resolves to exactly one of six
// cases. Each case is a (predicate, action) pair: a named function deciding
// whether the case applies and a named function producing the next state.
// Apply walks the pairs in a fixed order and applies the first match, so all
// branching for a move happens at this one dispatch point and each case can
// be read, tested, or moved independently of the others.
//
// The order is load-bearing: a guess that completes the word is also an
// ordinary correct guess, and a guess that spends the last turn is also an
// ordinary wrong guess, so the more specific cases come first.

package game

// rule pairs a case predicate with its transition.
type rule struct {
	name string
	when func(g Game, guess rune) bool
	then func(g Game, guess rune) Game
}

// rules lists the six cases in priority order:
// finished, repeat, winning, losing, good, bad.
var rules = []rule{
	{"game over", isFinished, unchanged},
	{"already guessed", isRepeat, markRepeat},
	{"winning guess", isWinning, win},
	{"losing guess", isLosing, lose},
	{"good guess", isGood, markGood},
	{"bad guess", otherwise, markBad},
}

// Apply evaluates one guess against g and returns the next state.
// It is total: every input maps to exactly one transition, no input is an
// error, and g itself is never modified.
func Apply(g Game, guess rune) Game {
	for _, r := range rules {
		if r.when(g, guess) {
			return r.then(g, guess)
		}
	}
	return g
}

// --------------------------------- predicates ------------------------------

// isFinished: terminal games ignore further guesses.
func isFinished(g Game, _ rune) bool {
	return g.Status.Terminal()
}

// isRepeat: the letter was guessed before.
func isRepeat(g Game, guess rune) bool {
	_, ok := g.Guessed[guess]
	return ok
}

// isWinning: the guess is a secret letter and completes the word.
func isWinning(g Game, guess rune) bool {
	if _, ok := g.Letters[guess]; !ok {
		return false
	}
	for l := range g.Letters {
		if l == guess {
			continue
		}
		if _, ok := g.Guessed[l]; !ok {
			return false
		}
	}
	return true
}

// isLosing: the guess is wrong and spends the last turn.
func isLosing(g Game, guess rune) bool {
	_, ok := g.Letters[guess]
	return !ok && g.TurnsLeft == 1
}

// isGood: the guess is a secret letter (but not the last one).
func isGood(g Game, guess rune) bool {
	_, ok := g.Letters[guess]
	return ok
}

// otherwise always matches; the final rule is the catch-all.
func otherwise(Game, rune) bool { return true }

// ---------------------------------- actions --------------------------------

func unchanged(g Game, _ rune) Game { return g }

func markRepeat(g Game, _ rune) Game {
	g.Status = StatusAlreadyUsed
	return g
}

func win(g Game, guess rune) Game {
	g.Guessed = withLetter(g.Guessed, guess)
	g.Status = StatusWon
	return g
}

func lose(g Game, guess rune) Game {
	g.Guessed = withLetter(g.Guessed, guess)
	g.TurnsLeft = 0
	g.Status = StatusLost
	return g
}

func markGood(g Game, guess rune) Game {
	g.Guessed = withLetter(g.Guessed, guess)
	g.Status = StatusGoodGuess
	return g
}

func markBad(g Game, guess rune) Game {
	g.Guessed = withLetter(g.Guessed, guess)
	g.TurnsLeft--
	g.Status = StatusBadGuess
	return g
}

// withLetter returns a copy of set with l added. The input set is shared
// with the previous state value and must not be mutated.
func withLetter(set map[rune]struct{}, l rune) map[rune]struct{} {
	out := make(map[rune]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	out[l] = struct{}{}
	return out
}
