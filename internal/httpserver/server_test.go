package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomboyo/hangman/internal/game"
	"github.com/tomboyo/hangman/internal/store"
	"github.com/tomboyo/hangman/internal/words"
)

// newTestServer spins up the full router over an in-memory SQLite database
// with the real schema applied.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	if err := words.Init(); err != nil {
		t.Fatalf("init words: %v", err)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A second pool connection would see a fresh empty :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	srv := New(store.NewMemoryStore(), db)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, _ := cookiejar.New(nil)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any, out any) *http.Response {
	t.Helper()
	buf, _ := json.Marshal(body)
	res, err := c.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	if out != nil && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func TestHealth(t *testing.T) {
	ts, c := newTestServer(t)
	res, err := c.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status: %d", res.StatusCode)
	}
}

func TestGameFlowWin(t *testing.T) {
	ts, c := newTestServer(t)

	var created newGameRes
	postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "aba", Turns: 3}, &created)
	if created.GameID == "" {
		t.Fatal("missing game id")
	}
	if created.Masked != "___" {
		t.Fatalf("masked: %q", created.Masked)
	}
	if created.TurnsLeft != 3 {
		t.Fatalf("turns: %d", created.TurnsLeft)
	}

	var v gameView
	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "a"}, &v)
	if v.Status != game.StatusGoodGuess || v.Masked != "a_a" {
		t.Fatalf("after a: %+v", v)
	}
	if v.Word != "" {
		t.Fatalf("word leaked mid-game: %q", v.Word)
	}

	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "z"}, &v)
	if v.Status != game.StatusBadGuess || v.TurnsLeft != 2 {
		t.Fatalf("after z: %+v", v)
	}

	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "a"}, &v)
	if v.Status != game.StatusAlreadyUsed {
		t.Fatalf("repeat a: %+v", v)
	}

	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "b"}, &v)
	if v.Status != game.StatusWon || v.Masked != "aba" || v.Word != "aba" {
		t.Fatalf("after b: %+v", v)
	}

	// Terminal games ignore further guesses.
	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "c"}, &v)
	if v.Status != game.StatusWon {
		t.Fatalf("guess after win: %+v", v)
	}
}

func TestGameFlowLoss(t *testing.T) {
	ts, c := newTestServer(t)

	var created newGameRes
	postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "ab", Turns: 1}, &created)

	var v gameView
	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "z"}, &v)
	if v.Status != game.StatusLost || v.TurnsLeft != 0 {
		t.Fatalf("after z: %+v", v)
	}
	if v.Word != "ab" {
		t.Fatalf("lost game should reveal the word: %+v", v)
	}
}

func TestGuessValidation(t *testing.T) {
	ts, c := newTestServer(t)

	var created newGameRes
	postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "ab"}, &created)

	tests := []struct {
		name   string
		req    guessReq
		status int
	}{
		{name: "empty letter", req: guessReq{GameID: created.GameID, Letter: ""}, status: http.StatusBadRequest},
		{name: "two letters", req: guessReq{GameID: created.GameID, Letter: "ab"}, status: http.StatusBadRequest},
		{name: "unknown game", req: guessReq{GameID: "nope", Letter: "a"}, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postJSON(t, c, ts.URL+"/game/guess", tt.req, nil)
			if res.StatusCode != tt.status {
				t.Fatalf("status: got %d, want %d", res.StatusCode, tt.status)
			}
		})
	}
}

func TestNewGameRejectsBadWord(t *testing.T) {
	ts, c := newTestServer(t)
	res := postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "not a word!"}, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", res.StatusCode)
	}
}

func TestHint(t *testing.T) {
	ts, c := newTestServer(t)

	var created newGameRes
	postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "ab", Turns: 3}, &created)

	var hr hintRes
	postJSON(t, c, ts.URL+"/game/hint", hintReq{GameID: created.GameID}, &hr)
	if hr.Letter != "a" && hr.Letter != "b" {
		t.Fatalf("hint letter: %q", hr.Letter)
	}
	if hr.View.TurnsLeft != 3 {
		t.Fatalf("hint spent a turn: %+v", hr.View)
	}

	res := postJSON(t, c, ts.URL+"/game/hint", hintReq{GameID: created.GameID}, nil)
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("second hint status: %d", res.StatusCode)
	}
}

func TestAuthFlowAndStats(t *testing.T) {
	ts, c := newTestServer(t)

	res := postJSON(t, c, ts.URL+"/auth/signup",
		map[string]string{"username": "player_one", "password": "longenough"}, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("signup status: %d", res.StatusCode)
	}

	// Duplicate username is a conflict.
	res = postJSON(t, c, ts.URL+"/auth/signup",
		map[string]string{"username": "player_one", "password": "longenough"}, nil)
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup status: %d", res.StatusCode)
	}

	// Cookie from signup authenticates /auth/me.
	me, err := c.Get(ts.URL + "/auth/me")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	defer me.Body.Close()
	if me.StatusCode != http.StatusOK {
		t.Fatalf("me status: %d", me.StatusCode)
	}

	// Win a game while logged in; stats should move.
	var created newGameRes
	postJSON(t, c, ts.URL+"/game/new", newGameReq{Word: "ab", Turns: 3}, &created)
	var v gameView
	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "a"}, &v)
	postJSON(t, c, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Letter: "b"}, &v)
	if v.Status != game.StatusWon {
		t.Fatalf("setup win failed: %+v", v)
	}

	st, err := c.Get(ts.URL + "/stats/me")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	defer st.Body.Close()
	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
		Wins        int `json:"wins"`
		Streak      int `json:"streak"`
	}
	if err := json.NewDecoder(st.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 || stats.Streak != 1 {
		t.Fatalf("stats: %+v", stats)
	}

	hist, err := c.Get(ts.URL + "/games/mine")
	if err != nil {
		t.Fatalf("games mine: %v", err)
	}
	defer hist.Body.Close()
	var rows []map[string]any
	if err := json.NewDecoder(hist.Body).Decode(&rows); err != nil {
		t.Fatalf("decode games: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("history rows: %d", len(rows))
	}
}

func TestStatsRequiresAuth(t *testing.T) {
	ts, c := newTestServer(t)
	res, err := c.Get(ts.URL + "/stats/me")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: %d", res.StatusCode)
	}
}

func TestDailyFlow(t *testing.T) {
	ts, c := newTestServer(t)

	var created dailyNewRes
	postJSON(t, c, ts.URL+"/daily/new", struct{}{}, &created)
	if created.Played {
		t.Fatal("fresh user marked as played")
	}
	if created.GameID == "" || created.Masked == "" {
		t.Fatalf("daily new: %+v", created)
	}

	// A second /daily/new reuses the session.
	var again dailyNewRes
	postJSON(t, c, ts.URL+"/daily/new", struct{}{}, &again)
	if again.GameID != created.GameID {
		t.Fatalf("session not reused: %q vs %q", again.GameID, created.GameID)
	}

	// Exhaust the alphabet; the daily answer is a real word, so this always
	// finishes the game one way or the other.
	var last dailyGuessRes
	for l := 'a'; l <= 'z'; l++ {
		postJSON(t, c, ts.URL+"/daily/guess",
			dailyGuessReq{GameID: created.GameID, Letter: string(l)}, &last)
		if last.View.Status.Terminal() {
			break
		}
	}
	if !last.View.Status.Terminal() {
		t.Fatalf("daily game never finished: %+v", last.View)
	}

	// Finished result is persisted; new session is refused.
	var after dailyNewRes
	postJSON(t, c, ts.URL+"/daily/new", struct{}{}, &after)
	if !after.Played {
		t.Fatalf("expected played=true after finishing: %+v", after)
	}

	lb, err := c.Get(ts.URL + "/daily/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	defer lb.Body.Close()
	var board lbRes
	if err := json.NewDecoder(lb.Body).Decode(&board); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(board.Top) != 1 {
		t.Fatalf("leaderboard rows: %d", len(board.Top))
	}
}
