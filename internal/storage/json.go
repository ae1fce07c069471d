package storage

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// GetJSON decodes the value stored under key into out. It reports false
// when the key is absent.
func GetJSON(ctx context.Context, r Reader, key string, out any) (bool, error) {
	data, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v into a Put mutation for key.
func PutJSON(key string, v any) (Mutation, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Mutation{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return Put(key, data), nil
}
