package game

import (
	"strings"
	"testing"

	"hangman-duel-bot/internal/kv"
	"hangman-duel-bot/internal/wordbank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// sequenceSource hands out words in order, wrapping around.
type sequenceSource struct {
	words []string
	next  int
}

func (s *sequenceSource) PickRandom() (string, error) {
	if len(s.words) == 0 {
		return "", wordbank.ErrEmptyBank
	}
	w := s.words[s.next%len(s.words)]
	s.next++
	return w, nil
}

func newBankSession(t *testing.T, words ...string) (*Session, *wordbank.Bank) {
	t.Helper()
	store := kv.NewMemory()
	require.NoError(t, store.Set(kv.KeyWordBank, `[]`))
	bank := wordbank.New(store)
	require.NoError(t, bank.Load())
	for _, w := range words {
		_, _, err := bank.Add(w)
		require.NoError(t, err)
	}
	return NewSession(bank, zaptest.NewLogger(t)), bank
}

func guessAll(t *testing.T, s *Session, letters string) Report {
	t.Helper()
	var r Report
	for _, l := range letters {
		var err error
		r, _, err = s.Guess(string(l))
		require.NoError(t, err)
	}
	return r
}

// wrongCount must always equal the number of guessed letters missing from the word.
func assertWrongCountInvariant(t *testing.T, s *Session) {
	t.Helper()
	missing := 0
	for _, g := range s.GuessedLetters() {
		if !strings.Contains(s.word, g) {
			missing++
		}
	}
	assert.Equal(t, missing, s.WrongCount())
}

func TestStartMatch_FirstRoundBelongsToPlayer1(t *testing.T) {
	s, _ := newBankSession(t, "CAT")

	r, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	assert.Equal(t, 1, r.CurrentPlayer)
	assert.Equal(t, "Alice", r.CurrentPlayerName())
	assert.Equal(t, StatusInProgress, r.Status)
	assert.Equal(t, "_ _ _", r.MaskedWord)
	assert.Equal(t, MaxWrong, r.RemainingLives)
	assert.Empty(t, r.Word, "secret word must stay hidden during the round")
	assert.Equal(t, [2]int{0, 0}, s.Scores())
}

func TestGuess_WinAwardsCurrentPlayer(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	r := guessAll(t, s, "CAT")

	assert.Equal(t, StatusWon, r.Status)
	assert.Equal(t, "C A T", r.MaskedWord)
	assert.Equal(t, "CAT", r.Word)
	assert.Equal(t, 10, r.Players[0].Score)
	assert.Equal(t, 0, r.Players[1].Score)
	assertWrongCountInvariant(t, s)
}

func TestGuess_SixMissesLoses(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	for i, l := range []string{"X", "Y", "Z", "Q", "W"} {
		r, applied, err := s.Guess(l)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, StatusInProgress, r.Status)
		assert.Equal(t, MaxWrong-i-1, r.RemainingLives)
		assertWrongCountInvariant(t, s)
	}

	r, _, err := s.Guess("E")
	require.NoError(t, err)
	assert.Equal(t, StatusLost, r.Status)
	assert.Equal(t, 0, s.RemainingLives())
	assert.Equal(t, []string{"X", "Y", "Z", "Q", "W", "E"}, r.WrongLetters)
	assert.Equal(t, "CAT", r.Word)
	assert.Equal(t, [2]int{0, 0}, s.Scores())
}

func TestGuess_RepeatIsNoOp(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	_, applied, err := s.Guess("x")
	require.NoError(t, err)
	require.True(t, applied)

	before := s.Report()
	r, applied, err := s.Guess("X")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, r)
	assert.Equal(t, 1, s.WrongCount())
	assert.Len(t, s.GuessedLetters(), 1)
}

func TestGuess_IgnoredAfterRoundEnds(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "CAT")

	_, applied, err := s.Guess("Z")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, s.WrongCount())
	assert.Equal(t, StatusWon, s.Status())
}

func TestGuess_BeforeAnyRoundIsNoOp(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, applied, err := s.Guess("C")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, StatusNotStarted, s.Status())
}

func TestGuess_InvalidLetter(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	for _, in := range []string{"", "AB", "1", "é", " "} {
		_, applied, err := s.Guess(in)
		assert.ErrorIs(t, err, ErrInvalidLetter, "input %q", in)
		assert.False(t, applied)
	}
	assert.Empty(t, s.GuessedLetters())
}

func TestMaskedWord_RevealsByLetterValue(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"MERGE"}}, nil)
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	r, _, err := s.Guess("e")
	require.NoError(t, err)
	assert.Equal(t, "_ E _ _ E", r.MaskedWord)
	assert.Empty(t, r.WrongLetters)
}

func TestWrongLetters_KeepGuessOrder(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"DOCKER"}}, nil)
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	guessAll(t, s, "ZOAKB")
	assert.Equal(t, []string{"Z", "A", "B"}, s.WrongLetters())
	assert.Equal(t, []string{"Z", "O", "A", "K", "B"}, s.GuessedLetters())
	assertWrongCountInvariant(t, s)
}

func TestStartMatch_NameValidation(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "CAT")
	before := s.Report()

	_, err = s.StartMatch("Alice", "alice")
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, before, s.Report(), "failed start must not reset scores")

	_, err = s.StartMatch("  ", "Bob")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = s.StartMatch("Alice", "")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, before, s.Report())
}

func TestStartMatch_ResetsScores(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "CAT")
	require.Equal(t, 10, s.Scores()[0])

	r, err := s.StartMatch(" Carol ", "Dave")
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 0}, s.Scores())
	assert.Equal(t, "Carol", r.Players[0].Name)
	assert.Equal(t, 1, r.CurrentPlayer)
	assert.Equal(t, 1, r.Round)
}

func TestStartRound_AlternatesRegardlessOfOutcome(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"CAT"}}, nil)
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)

	want := 1
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, s.CurrentPlayer(), "round %d", s.Round())
		switch i % 3 {
		case 0:
			guessAll(t, s, "CAT")
		case 1:
			guessAll(t, s, "QWERYU")
		}
		_, err := s.StartRound()
		require.NoError(t, err)
		want = 3 - want
	}
}

func TestStartRound_ScoresFollowTurn(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"CAT"}}, nil)
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "CAT")

	_, err = s.StartRound()
	require.NoError(t, err)
	r := guessAll(t, s, "TAC")

	assert.Equal(t, 2, r.CurrentPlayer)
	assert.Equal(t, [2]int{10, 10}, s.Scores())
}

func TestStartRound_EmptyBankStillAlternates(t *testing.T) {
	s, bank := newBankSession(t, "CAT")
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "CAT")

	_, err = bank.Delete(0)
	require.NoError(t, err)

	r, err := s.StartRound()
	assert.ErrorIs(t, err, wordbank.ErrEmptyBank)
	assert.Equal(t, 2, r.CurrentPlayer)
	assert.Equal(t, StatusWon, r.Status, "failed start keeps the previous terminal state")

	_, err = s.StartRound()
	assert.ErrorIs(t, err, wordbank.ErrEmptyBank)
	assert.Equal(t, 1, s.CurrentPlayer())
}

func TestStartMatch_EmptyBank(t *testing.T) {
	s, _ := newBankSession(t)

	r, err := s.StartMatch("Alice", "Bob")
	assert.ErrorIs(t, err, wordbank.ErrEmptyBank)
	assert.Equal(t, StatusNotStarted, r.Status)
	assert.Equal(t, 1, r.CurrentPlayer)
	assert.True(t, s.MatchStarted())
}

func TestStartRound_RequiresMatch(t *testing.T) {
	s, _ := newBankSession(t, "CAT")
	_, err := s.StartRound()
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 1, s.CurrentPlayer())
}

func TestStartRound_ResetsRoundState(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"CAT", "DOG"}}, nil)
	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	guessAll(t, s, "XC")

	r, err := s.StartRound()
	require.NoError(t, err)
	assert.Equal(t, "_ _ _", r.MaskedWord)
	assert.Empty(t, r.GuessedLetters)
	assert.Empty(t, r.WrongLetters)
	assert.Equal(t, MaxWrong, r.RemainingLives)
	assert.Equal(t, 2, r.Round)
}

func TestSubscribe(t *testing.T) {
	s := NewSession(&sequenceSource{words: []string{"CAT"}}, nil)

	var got []Report
	unsubscribe := s.Subscribe(func(r Report) { got = append(got, r) })

	_, err := s.StartMatch("Alice", "Bob")
	require.NoError(t, err)
	_, _, err = s.Guess("C")
	require.NoError(t, err)
	_, _, err = s.Guess("C") // no-op, no notification
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "C _ _", got[1].MaskedWord)

	unsubscribe()
	_, _, err = s.Guess("A")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStatus_Text(t *testing.T) {
	for _, st := range []Status{StatusNotStarted, StatusInProgress, StatusWon, StatusLost} {
		text, err := st.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, st, back)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("paused")))
}
