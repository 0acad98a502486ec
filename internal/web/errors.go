package web

import (
	"errors"
	"net/http"

	"hangman-duel-bot/internal/game"
	"hangman-duel-bot/internal/wordbank"

	"go.uber.org/zap"
)

// Error types reported in APIError.Type.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeConflict   = "conflict"
	ErrTypeNotFound   = "not_found"
	ErrTypeBadRequest = "bad_request"
	ErrTypeInternal   = "internal_error"
)

type APIError struct {
	Type    string                 `json:"type"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// classify maps a core error to an HTTP status, error type and stable code.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, wordbank.ErrEmptyWord):
		return http.StatusBadRequest, ErrTypeValidation, "empty_word"
	case errors.Is(err, wordbank.ErrInvalidCharacters):
		return http.StatusBadRequest, ErrTypeValidation, "invalid_characters"
	case errors.Is(err, wordbank.ErrDuplicateWord):
		return http.StatusConflict, ErrTypeConflict, "duplicate_word"
	case errors.Is(err, wordbank.ErrIndexOutOfRange):
		return http.StatusNotFound, ErrTypeNotFound, "index_out_of_range"
	case errors.Is(err, wordbank.ErrEmptyBank):
		return http.StatusConflict, ErrTypeConflict, "empty_bank"
	case errors.Is(err, game.ErrEmptyName):
		return http.StatusBadRequest, ErrTypeValidation, "empty_name"
	case errors.Is(err, game.ErrDuplicateName):
		return http.StatusBadRequest, ErrTypeValidation, "duplicate_name"
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusBadRequest, ErrTypeValidation, "invalid_letter"
	case errors.Is(err, game.ErrNoMatch):
		return http.StatusConflict, ErrTypeConflict, "no_match"
	default:
		return http.StatusInternalServerError, ErrTypeInternal, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, errType, code, message string, context map[string]interface{}) {
	s.writeJSON(w, status, APIError{
		Type:    errType,
		Code:    code,
		Message: message,
		Context: context,
	})
}

// writeCoreError reports an error returned by the word bank or a session.
func (s *Server) writeCoreError(w http.ResponseWriter, err error, context map[string]interface{}) {
	status, errType, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	}
	s.writeError(w, status, errType, code, message, context)
}
