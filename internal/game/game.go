// Package game runs two-player hangman matches.
//
// A Session owns one match: two named players, their scores, and the
// current round. Rounds alternate between the players; the player whose turn
// it is earns WinPoints when the word is completed before MaxWrong misses.
// Sessions are not safe for concurrent use.
package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxWrong    = 6
	WinPoints   = 10
	Placeholder = "_"
)

var (
	ErrEmptyName     = errors.New("both players need a name")
	ErrDuplicateName = errors.New("player names must be different")
	ErrInvalidLetter = errors.New("guess must be a single letter A-Z")
	ErrNoMatch       = errors.New("no match has been started")
)

// Status is the state of the current round.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not_started":
		*s = StatusNotStarted
	case "in_progress":
		*s = StatusInProgress
	case "won":
		*s = StatusWon
	case "lost":
		*s = StatusLost
	default:
		return fmt.Errorf("unknown round status %q", text)
	}
	return nil
}

// WordSource supplies the secret word for each round. *wordbank.Bank
// satisfies it.
type WordSource interface {
	PickRandom() (string, error)
}

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Report is a snapshot of a session, handed to renderers after every
// operation. Word is only filled in once the round is over.
type Report struct {
	MatchID        string    `json:"match_id"`
	Round          int       `json:"round"`
	Status         Status    `json:"status"`
	CurrentPlayer  int       `json:"current_player"`
	Players        [2]Player `json:"players"`
	MaskedWord     string    `json:"masked_word"`
	GuessedLetters []string  `json:"guessed_letters"`
	WrongLetters   []string  `json:"wrong_letters"`
	RemainingLives int       `json:"remaining_lives"`
	Word           string    `json:"word,omitempty"`
}

// CurrentPlayerName is the name of the player whose turn it is.
func (r Report) CurrentPlayerName() string {
	if r.CurrentPlayer < 1 || r.CurrentPlayer > 2 {
		return ""
	}
	return r.Players[r.CurrentPlayer-1].Name
}

// NormalizeLetter turns a single-letter guess into its uppercase form.
func NormalizeLetter(input string) (rune, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return 0, ErrInvalidLetter
	}
	return rune(s[0]), nil
}
