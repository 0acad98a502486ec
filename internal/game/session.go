package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listener receives a Report after each state change of a session.
type Listener func(Report)

type subscription struct {
	id int
	fn Listener
}

type Session struct {
	id     string
	words  WordSource
	logger *zap.Logger

	players [2]Player
	started bool
	current int
	round   int

	word       string
	guessed    []rune
	wrongCount int
	status     Status

	listeners []subscription
	nextSubID int
}

func NewSession(words WordSource, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		words:   words,
		logger:  logger.With(zap.String("match_id", id)),
		current: 1,
		status:  StatusNotStarted,
	}
}

func (s *Session) ID() string { return s.id }

// StartMatch names the players, zeroes their scores and starts the first
// round, which always belongs to player 1. On a name error nothing changes.
// If the word source is empty the match is still set up and the error from
// StartRound is returned.
func (s *Session) StartMatch(name1, name2 string) (Report, error) {
	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)

	if name1 == "" || name2 == "" {
		return s.Report(), ErrEmptyName
	}
	if strings.EqualFold(name1, name2) {
		return s.Report(), ErrDuplicateName
	}

	s.players = [2]Player{{Name: name1}, {Name: name2}}
	s.started = true
	s.round = 0
	// StartRound toggles first, so round 1 lands on player 1.
	s.current = 2

	s.logger.Info("match started",
		zap.String("player1", name1),
		zap.String("player2", name2),
	)
	return s.StartRound()
}

// StartRound hands the turn to the other player and draws a new word. The
// turn passes even when no word can be drawn; the previous round is then
// left as it was.
func (s *Session) StartRound() (Report, error) {
	if !s.started {
		return s.Report(), ErrNoMatch
	}

	s.current = 3 - s.current

	word, err := s.words.PickRandom()
	if err != nil {
		s.logger.Warn("could not start round", zap.Int("current_player", s.current), zap.Error(err))
		return s.Report(), fmt.Errorf("start round: %w", err)
	}

	s.round++
	s.word = word
	s.guessed = s.guessed[:0]
	s.wrongCount = 0
	s.status = StatusInProgress

	s.logger.Debug("round started",
		zap.Int("round", s.round),
		zap.Int("current_player", s.current),
		zap.Int("word_length", len(word)),
	)
	return s.publish(), nil
}

// Guess applies one letter to the current round. applied is false when the
// round is not in progress or the letter was already tried; neither case is
// an error.
func (s *Session) Guess(input string) (report Report, applied bool, err error) {
	letter, err := NormalizeLetter(input)
	if err != nil {
		return s.Report(), false, err
	}
	if s.status != StatusInProgress || s.hasGuessed(letter) {
		return s.Report(), false, nil
	}

	s.guessed = append(s.guessed, letter)
	if !strings.ContainsRune(s.word, letter) {
		s.wrongCount++
	}

	switch {
	case s.wordComplete():
		s.status = StatusWon
		s.players[s.current-1].Score += WinPoints
		s.logger.Info("round won",
			zap.Int("round", s.round),
			zap.String("player", s.players[s.current-1].Name),
			zap.Int("score", s.players[s.current-1].Score),
		)
	case s.wrongCount >= MaxWrong:
		s.status = StatusLost
		s.logger.Info("round lost",
			zap.Int("round", s.round),
			zap.String("player", s.players[s.current-1].Name),
		)
	}

	return s.publish(), true, nil
}

func (s *Session) hasGuessed(letter rune) bool {
	for _, g := range s.guessed {
		if g == letter {
			return true
		}
	}
	return false
}

func (s *Session) wordComplete() bool {
	for _, r := range s.word {
		if !s.hasGuessed(r) {
			return false
		}
	}
	return true
}

// RemainingLives never goes below zero.
func (s *Session) RemainingLives() int {
	return max(0, MaxWrong-s.wrongCount)
}

// MaskedWord shows each letter of the word that has been guessed and a
// placeholder for the rest, separated by spaces.
func (s *Session) MaskedWord() string {
	parts := make([]string, 0, len(s.word))
	for _, r := range s.word {
		if s.hasGuessed(r) {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, Placeholder)
		}
	}
	return strings.Join(parts, " ")
}

// WrongLetters lists the misses in the order they were guessed.
func (s *Session) WrongLetters() []string {
	wrong := make([]string, 0, s.wrongCount)
	for _, g := range s.guessed {
		if !strings.ContainsRune(s.word, g) {
			wrong = append(wrong, string(g))
		}
	}
	return wrong
}

func (s *Session) GuessedLetters() []string {
	out := make([]string, len(s.guessed))
	for i, g := range s.guessed {
		out[i] = string(g)
	}
	return out
}

func (s *Session) WrongCount() int { return s.wrongCount }
func (s *Session) Status() Status { return s.status }
func (s *Session) Round() int { return s.round }
func (s *Session) CurrentPlayer() int { return s.current }
func (s *Session) Players() [2]Player { return s.players }
func (s *Session) MatchStarted() bool { return s.started }
func (s *Session) Scores() [2]int { return [2]int{s.players[0].Score, s.players[1].Score} }

func (s *Session) Report() Report {
	r := Report{
		MatchID:        s.id,
		Round:          s.round,
		Status:         s.status,
		CurrentPlayer:  s.current,
		Players:        s.players,
		MaskedWord:     s.MaskedWord(),
		GuessedLetters: s.GuessedLetters(),
		WrongLetters:   s.WrongLetters(),
		RemainingLives: s.RemainingLives(),
	}
	if s.status.Terminal() {
		r.Word = s.word
	}
	return r
}

// Subscribe registers fn for state changes and returns a function that
// removes it. Listeners run synchronously and must not call back into the
// session.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) publish() Report {
	r := s.Report()
	for _, sub := range s.listeners {
		sub.fn(r)
	}
	return r
}
