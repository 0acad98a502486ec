package kv

import (
	"fmt"

	"github.com/nedpals/supabase-go"
	"go.uber.org/zap"
)

const supabaseTable = "kv_store"

// Entry is a row of the kv_store table.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Supabase keeps entries in a kv_store table of a Supabase project. The
// table needs a unique "key" column and a text "value" column.
type Supabase struct {
	*supabase.Client
	logger *zap.Logger
}

func NewSupabase(url, key string, logger *zap.Logger) *Supabase {
	sbClient := supabase.CreateClient(url, key)
	logger.Info("supabase store initialized", zap.String("url", url))
	return &Supabase{Client: sbClient, logger: logger}
}

func (s *Supabase) Get(key string) (string, bool, error) {
	var results []Entry
	err := s.DB.From(supabaseTable).Select("*").Eq("key", key).Execute(&results)
	if err != nil {
		s.logger.Error("error fetching key", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return results[0].Value, true, nil
}

func (s *Supabase) Set(key, value string) error {
	_, exists, err := s.Get(key)
	if err != nil {
		return err
	}

	if exists {
		err = s.DB.From(supabaseTable).Update(map[string]interface{}{"value": value}).Eq("key", key).Execute(nil)
	} else {
		var inserted []Entry
		err = s.DB.From(supabaseTable).Insert(Entry{Key: key, Value: value}).Execute(&inserted)
	}
	if err != nil {
		s.logger.Error("error writing key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *Supabase) Delete(key string) error {
	if err := s.DB.From(supabaseTable).Delete().Eq("key", key).Execute(nil); err != nil {
		s.logger.Error("error deleting key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
