package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	if got := DateKey(ts); got != "2024-03-02" {
		t.Fatalf("date key: got %q, want 2024-03-02", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	ts := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	a := WordIndex(ts, "salt", 100)
	b := WordIndex(ts.Add(3*time.Hour), "salt", 100)
	if a != b {
		t.Fatalf("same date produced different indexes: %d vs %d", a, b)
	}
	if a < 0 || a >= 100 {
		t.Fatalf("index out of range: %d", a)
	}
}

func TestWordIndexVariesWithSalt(t *testing.T) {
	ts := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for _, salt := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[WordIndex(ts, salt, 1000)] = true
	}
	if len(seen) < 2 {
		t.Fatalf("all salts mapped to the same index: %v", seen)
	}
}

func TestWordIndexEmptyList(t *testing.T) {
	if got := WordIndex(time.Now(), "salt", 0); got != 0 {
		t.Fatalf("empty list index: %d", got)
	}
}
