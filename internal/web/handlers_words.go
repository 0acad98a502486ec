package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type wordsResponse struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

type wordRequest struct {
	Word string `json:"word"`
}

type wordResponse struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	words := s.bank.List()
	s.writeJSON(w, http.StatusOK, wordsResponse{Words: words, Count: len(words)})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_json", "invalid JSON body", nil)
		return
	}

	word, index, err := s.bank.Add(req.Word)
	if err != nil {
		s.writeCoreError(w, err, nil)
		return
	}
	s.logger.Info("word added", zap.String("word", word), zap.Int("index", index))
	s.writeJSON(w, http.StatusCreated, wordResponse{Index: index, Word: word})
}

func (s *Server) handleEditWord(w http.ResponseWriter, r *http.Request) {
	index, ok := s.wordIndex(w, r)
	if !ok {
		return
	}

	var req wordRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_json", "invalid JSON body", nil)
		return
	}

	word, err := s.bank.Edit(index, req.Word)
	if err != nil {
		s.writeCoreError(w, err, map[string]interface{}{"index": index})
		return
	}
	s.logger.Info("word edited", zap.Int("index", index), zap.String("word", word))
	s.writeJSON(w, http.StatusOK, wordResponse{Index: index, Word: word})
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	index, ok := s.wordIndex(w, r)
	if !ok {
		return
	}

	word, err := s.bank.Delete(index)
	if err != nil {
		s.writeCoreError(w, err, map[string]interface{}{"index": index})
		return
	}
	s.logger.Info("word deleted", zap.Int("index", index), zap.String("word", word))
	s.writeJSON(w, http.StatusOK, wordResponse{Index: index, Word: word})
}

func (s *Server) wordIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_index",
			"word index must be an integer", map[string]interface{}{"index": raw})
		return 0, false
	}
	return index, true
}
