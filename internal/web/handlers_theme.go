package web

import (
	"net/http"

	"hangman-duel-bot/internal/kv"

	"go.uber.org/zap"
)

const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeLight
)

type themeBody struct {
	Theme string `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, ok, err := s.store.Get(kv.KeyTheme)
	if err != nil {
		s.writeCoreError(w, err, nil)
		return
	}
	if !ok || (theme != ThemeLight && theme != ThemeDark) {
		theme = DefaultTheme
	}
	s.writeJSON(w, http.StatusOK, themeBody{Theme: theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeBadRequest, "invalid_json", "invalid JSON body", nil)
		return
	}
	if req.Theme != ThemeLight && req.Theme != ThemeDark {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid_theme",
			`theme must be "light" or "dark"`, map[string]interface{}{"theme": req.Theme})
		return
	}

	if err := s.store.Set(kv.KeyTheme, req.Theme); err != nil {
		s.writeCoreError(w, err, nil)
		return
	}
	s.logger.Debug("theme saved", zap.String("theme", req.Theme))
	s.writeJSON(w, http.StatusOK, req)
}
