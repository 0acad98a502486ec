package web

import (
	"errors"
	"net/http"

	"hangman-duel-bot/internal/game"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type matchRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type guessRequest struct {
	Letter string `json:"letter"`
}

type guessResponse struct {
	game.Report
	Applied bool `json:"applied"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_json", "invalid JSON body", nil)
		return
	}

	session := game.NewSession(s.bank, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := session.StartMatch(req.Player1, req.Player2)
	if errors.Is(err, game.ErrEmptyName) || errors.Is(err, game.ErrDuplicateName) {
		s.writeCoreError(w, err, nil)
		return
	}

	// With an empty bank the match exists but its first round could not
	// start; the client can add words and start a round later.
	s.matches[session.ID()] = newMatch(session)
	s.logger.Info("match created", zap.String("match_id", session.ID()))

	if err != nil {
		s.writeCoreError(w, err, map[string]interface{}{"match_id": session.ID()})
		return
	}
	s.writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.lookupMatch(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, m.session.Report())
}

// handleDeleteMatch forgets a match and returns its final report. Open
// streams of the match are closed.
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.lookupMatch(w, r)
	if !ok {
		return
	}
	delete(s.matches, m.session.ID())
	close(m.ended)

	report := m.session.Report()
	s.logger.Info("match deleted",
		zap.String("match_id", report.MatchID),
		zap.Int("rounds", report.Round),
	)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.lookupMatch(w, r)
	if !ok {
		return
	}

	report, err := m.session.StartRound()
	if err != nil {
		s.writeCoreError(w, err, map[string]interface{}{"current_player": report.CurrentPlayer})
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_json", "invalid JSON body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.lookupMatch(w, r)
	if !ok {
		return
	}

	report, applied, err := m.session.Guess(req.Letter)
	if err != nil {
		s.writeCoreError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, guessResponse{Report: report, Applied: applied})
}

// lookupMatch must be called with mu held.
func (s *Server) lookupMatch(w http.ResponseWriter, r *http.Request) (*match, bool) {
	id := chi.URLParam(r, "id")
	m, ok := s.matches[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "match_not_found",
			"match not found", map[string]interface{}{"match_id": id})
		return nil, false
	}
	return m, true
}
