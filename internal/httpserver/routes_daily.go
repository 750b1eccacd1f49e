// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a letter for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user plays once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on finish.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomboyo/hangman/internal/daily"
	"github.com/tomboyo/hangman/internal/game"
	"github.com/tomboyo/hangman/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	Game      *game.Game
	UserID    string
	Date      string
	WordIndex int
	Turns     int // initial budget, for the wrong-guess count
	Start     time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and answer.
func (d *dailyServer) dateKeyNow() (date string, idx int, answer string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	list := words.Words()
	if len(list) == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, len(list))
	return date, idx, list[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	Masked    string `json:"masked"`
	TurnsLeft int    `json:"turnsLeft"`
	Played    bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	date, idx, answer := d.dateKeyNow()
	if answer == "" {
		http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			GameID: sess.Game.ID, Date: date,
			Masked: sess.Game.Masked(), TurnsLeft: sess.Game.TurnsLeft,
		})
		return
	}
	g, err := game.New(answer, 0)
	if err != nil {
		d.mu.Unlock()
		http.Error(w, `{"error":"bad_answer"}`, http.StatusInternalServerError)
		return
	}
	sess := &dailySession{
		Game:      g,
		UserID:    uid,
		Date:      date,
		WordIndex: idx,
		Turns:     g.TurnsLeft,
		Start:     time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: g.ID, Date: date, Masked: g.Masked(), TurnsLeft: g.TurnsLeft,
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	View   gameView `json:"game"`
	Locked bool     `json:"locked,omitempty"`
}

// handleGuess applies one letter to today's daily session.
// - Ensures valid GameID and letter.
// - Rejects if no session for today.
// - Runs the move through the game engine.
// - Persists the result to DB once the game finishes.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	letter, err := parseLetter(p.Letter)
	if err != nil || p.GameID == "" {
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Game.ID != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	d.mu.Lock()
	if !sess.Game.Playing() {
		view := viewOf(sess.Game)
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyGuessRes{View: view, Locked: true})
		return
	}
	status := sess.Game.Guess(letter)
	view := viewOf(sess.Game)
	wrong := sess.Turns - sess.Game.TurnsLeft
	d.mu.Unlock()

	// Persist and return.
	if status.Terminal() {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordIndex: sess.WordIndex,
			WrongGuesses: wrong, ElapsedMs: elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{View: view})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
