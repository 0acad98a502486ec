// Package wordbank maintains the persisted list of candidate secret words.
//
// Every entry is a non-empty run of the letters A-Z, and no two entries are
// equal. Each mutation re-persists the whole list as a JSON array under
// kv.KeyWordBank. A failed write rolls the in-memory change back, so callers
// never observe a half-applied mutation.
package wordbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"hangman-duel-bot/internal/kv"

	"go.uber.org/zap"
)

var (
	ErrEmptyWord         = errors.New("word cannot be empty")
	ErrInvalidCharacters = errors.New("only letters A-Z are allowed")
	ErrDuplicateWord     = errors.New("duplicate words are not allowed")
	ErrIndexOutOfRange   = errors.New("word index out of range")
	ErrEmptyBank         = errors.New("no words in the word bank")
)

// NoIgnore disables the self-match exclusion in Validate.
const NoIgnore = -1

// Bank is safe for concurrent use.
type Bank struct {
	mu     sync.Mutex
	store  kv.Store
	words  []string
	rng    *rand.Rand
	logger *zap.Logger
}

type Option func(*Bank)

// WithRand replaces the random source used by PickRandom.
func WithRand(r *rand.Rand) Option {
	return func(b *Bank) { b.rng = r }
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Bank) { b.logger = logger }
}

// New returns an empty bank bound to store. Call Load before use.
func New(store kv.Store, opts ...Option) *Bank {
	b := &Bank{
		store:  store,
		words:  make([]string, 0),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load populates the bank from the store. A value under the legacy key is
// moved to the current key first. When neither key holds anything the
// default words are used and persisted.
func (b *Bank) Load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, ok, err := b.store.Get(kv.KeyWordBank)
	if err != nil {
		return fmt.Errorf("load word bank: %w", err)
	}

	if !ok || stored == "" {
		legacy, found, err := b.store.Get(kv.KeyLegacyWordBank)
		if err != nil {
			return fmt.Errorf("load legacy word bank: %w", err)
		}
		if found && legacy != "" {
			if err := b.store.Set(kv.KeyWordBank, legacy); err != nil {
				return fmt.Errorf("migrate legacy word bank: %w", err)
			}
			if err := b.store.Delete(kv.KeyLegacyWordBank); err != nil {
				return fmt.Errorf("remove legacy word bank: %w", err)
			}
			b.logger.Info("migrated legacy word bank",
				zap.String("from", kv.KeyLegacyWordBank),
				zap.String("to", kv.KeyWordBank),
			)
			stored, ok = legacy, true
		}
	}

	if ok && stored != "" {
		var raw []string
		if err := json.Unmarshal([]byte(stored), &raw); err != nil {
			return fmt.Errorf("decode word bank: %w", err)
		}
		b.words = b.sanitize(raw)
		b.logger.Info("word bank loaded", zap.Int("count", len(b.words)))
		if !slices.Equal(raw, b.words) {
			b.logger.Info("rewriting sanitized word bank",
				zap.Int("stored", len(raw)),
				zap.Int("kept", len(b.words)),
			)
			return b.persist()
		}
		return nil
	}

	b.words = append([]string(nil), DefaultWords...)
	b.logger.Info("word bank seeded with defaults", zap.Int("count", len(b.words)))
	return b.persist()
}

// sanitize drops stored entries that would break the bank's invariants.
func (b *Bank) sanitize(raw []string) []string {
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		n, err := validate(words, w, NoIgnore)
		if err != nil {
			b.logger.Warn("dropping stored word", zap.String("word", w), zap.Error(err))
			continue
		}
		words = append(words, n)
	}
	return words
}

// Normalize trims surrounding whitespace and uppercases word.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Validate returns the normalized form of word, or the reason it cannot be
// stored. The entry at ignoreIndex is skipped by the duplicate check so a
// word can be edited in place; pass NoIgnore to check against every entry.
func (b *Bank) Validate(word string, ignoreIndex int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return validate(b.words, word, ignoreIndex)
}

func validate(words []string, word string, ignoreIndex int) (string, error) {
	w := Normalize(word)
	if w == "" {
		return "", ErrEmptyWord
	}
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCharacters
		}
	}
	for i, existing := range words {
		if i != ignoreIndex && existing == w {
			return "", ErrDuplicateWord
		}
	}
	return w, nil
}

// Add appends word and returns its normalized form and the index it was
// stored at.
func (b *Bank) Add(word string) (string, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, err := validate(b.words, word, NoIgnore)
	if err != nil {
		return "", 0, err
	}

	index := len(b.words)
	b.words = append(b.words, w)
	if err := b.persist(); err != nil {
		b.words = b.words[:index]
		return "", 0, err
	}
	b.logger.Debug("word added", zap.String("word", w), zap.Int("index", index))
	return w, index, nil
}

// Edit replaces the entry at index and returns the normalized word.
func (b *Bank) Edit(index int, word string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.words) {
		return "", ErrIndexOutOfRange
	}
	w, err := validate(b.words, word, index)
	if err != nil {
		return "", err
	}

	prev := b.words[index]
	b.words[index] = w
	if err := b.persist(); err != nil {
		b.words[index] = prev
		return "", err
	}
	b.logger.Debug("word edited", zap.Int("index", index), zap.String("from", prev), zap.String("to", w))
	return w, nil
}

// Delete removes the entry at index and returns it.
func (b *Bank) Delete(index int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.words) {
		return "", ErrIndexOutOfRange
	}

	prev := b.words
	removed := prev[index]
	next := make([]string, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)

	b.words = next
	if err := b.persist(); err != nil {
		b.words = prev
		return "", err
	}
	b.logger.Debug("word deleted", zap.String("word", removed), zap.Int("count", len(b.words)))
	return removed, nil
}

// PickRandom returns an entry chosen uniformly at random. Consecutive calls
// may return the same word.
func (b *Bank) PickRandom() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.words) == 0 {
		return "", ErrEmptyBank
	}
	return b.words[b.rng.Intn(len(b.words))], nil
}

// List returns a copy of the words in order.
func (b *Bank) List() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.words...)
}

func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.words)
}

func (b *Bank) persist() error {
	data, err := json.Marshal(b.words)
	if err != nil {
		return fmt.Errorf("encode word bank: %w", err)
	}
	if err := b.store.Set(kv.KeyWordBank, string(data)); err != nil {
		return fmt.Errorf("save word bank: %w", err)
	}
	return nil
}
