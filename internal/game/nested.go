// internal/game/nested.go
//
// A second evaluator with the same behavior as Apply, written as cascading
// conditionals across three small functions instead of a rule table. Kept
// in-package so the test suite can cross-check the two against each other;
// production code goes through Apply.

package game

func applyNested(g Game, guess rune) Game {
	if g.Status.Terminal() {
		return g
	}
	return acceptGuess(g, guess)
}

func acceptGuess(g Game, guess rune) Game {
	if _, ok := g.Guessed[guess]; ok {
		g.Status = StatusAlreadyUsed
		return g
	}
	g.Guessed = withLetter(g.Guessed, guess)
	return scoreGuess(g, guess)
}

func scoreGuess(g Game, guess rune) Game {
	if _, ok := g.Letters[guess]; ok {
		return maybeWon(g)
	}
	if g.TurnsLeft == 1 {
		g.TurnsLeft = 0
		g.Status = StatusLost
		return g
	}
	g.TurnsLeft--
	g.Status = StatusBadGuess
	return g
}

func maybeWon(g Game) Game {
	for l := range g.Letters {
		if _, ok := g.Guessed[l]; !ok {
			g.Status = StatusGoodGuess
			return g
		}
	}
	g.Status = StatusWon
	return g
}
