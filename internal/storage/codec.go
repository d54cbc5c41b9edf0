package storage

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var ErrNotDumpable = errors.New("backend does not support dump/restore")

// GetJSON decodes the value under key into dst. It reports false when the key
// is absent. A value that does not decode is returned as an error, and callers
// must then discard dst.
func GetJSON(ctx context.Context, store Store, key string, dst interface{}) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, store Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(raw))
}
