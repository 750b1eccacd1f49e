// internal/words/words.go
//
// Word list management for the hangman engine.
//
// Responsibilities:
//   - Load the answer list from an environment-provided file or fall back
//     to the embedded default list.
//   - Maintain a set for quick membership lookups.
//   - Supply RandomAnswer, IsAnswer, Words, and Stats.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise use the embedded default_words.txt.
//
// Constraints:
//   - Words must be 4-12 alphabetic letters (a-z); other lines are dropped.
//   - Lists are normalized to lowercase.
//   - Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"
)

const (
	minLen = 4
	maxLen = 12
)

//go:embed default_words.txt
var embeddedWords string

var (
	initOnce   sync.Once
	answers    []string
	answersSet map[string]struct{}
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords)
		}

		answers = list
		answersSet = toSet(list)

		if len(answers) == 0 {
			initialErr = errors.New("words: answer list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file, lowercases, trims,
// and keeps only valid alphabetic words within the length bounds.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalizeWord(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a
// slice of valid lowercase words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalizeWord(line); ok {
			out = append(out, w)
		}
	}
	return out
}

// normalizeWord trims and lowercases a candidate line, reporting whether
// it is a usable word. Comment lines (leading '#') are dropped.
func normalizeWord(line string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	if len(w) < minLen || len(w) > maxLen || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random word from the list.
// If the list is not loaded yet or empty, falls back to "gopher".
func RandomAnswer() string {
	if len(answers) == 0 {
		return "gopher"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return answers[nBig.Int64()]
}

// IsAnswer reports whether w is in the answer list.
func IsAnswer(w string) bool {
	_, ok := answersSet[strings.ToLower(w)]
	return ok
}

// Words returns the loaded answer list. The slice is shared; callers
// must not modify it.
func Words() []string {
	return answers
}

// Stats returns the count of loaded words.
func Stats() int {
	return len(answers)
}
