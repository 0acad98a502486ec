// Package kv provides the string-keyed, string-valued stores the word bank
// and renderer preferences are persisted to.
package kv

// Store is a flat key-value store. Get reports ok=false when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Keys shared across the application.
const (
	KeyWordBank       = "wordBank"
	KeyLegacyWordBank = "devopsWords"
	KeyTheme          = "theme"
)
