// Package web exposes the word bank and hangman matches over a JSON API,
// with a WebSocket stream of round updates for browser front-ends.
package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"hangman-duel-bot/internal/game"
	"hangman-duel-bot/internal/kv"
	"hangman-duel-bot/internal/wordbank"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server holds the matches created through the API. Sessions are not
// goroutine-safe, so every session call happens under mu.
type Server struct {
	bank      *wordbank.Bank
	store     kv.Store
	logger    *zap.Logger
	startTime time.Time

	mu      sync.Mutex
	matches map[string]*match
}

// match is a registered session. ended is closed when the match is deleted
// so open streams can hang up.
type match struct {
	session *game.Session
	ended   chan struct{}
}

func newMatch(session *game.Session) *match {
	return &match{session: session, ended: make(chan struct{})}
}

func NewServer(bank *wordbank.Bank, store kv.Store, logger *zap.Logger) *Server {
	return &Server{
		bank:      bank,
		store:     store,
		logger:    logger.Named("web"),
		startTime: time.Now(),
		matches:   make(map[string]*match),
	}
}

// Routes sets up the HTTP routes with their middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/words", s.handleListWords)
		r.Post("/words", s.handleAddWord)
		r.Put("/words/{index}", s.handleEditWord)
		r.Delete("/words/{index}", s.handleDeleteWord)

		r.Post("/matches", s.handleCreateMatch)
		r.Get("/matches/{id}", s.handleGetMatch)
		r.Delete("/matches/{id}", s.handleDeleteMatch)
		r.Post("/matches/{id}/rounds", s.handleNextRound)
		r.Post("/matches/{id}/guesses", s.handleGuess)
		r.Get("/matches/{id}/stream", s.handleStream)

		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handlePutTheme)
	})

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	matches := len(s.matches)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
		"words":   s.bank.Len(),
		"matches": matches,
	})
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

const maxBodyBytes = 1 << 16

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
