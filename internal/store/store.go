// Package store provides the key/value slots that hold per-client state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Slot names. They match the keys the web client used for local storage.
const (
	SlotFavorites        = "dishcovery-favorites"
	SlotRatings          = "dishcovery-ratings"
	SlotGeneratedRecipes = "dishcovery-generated-recipes"
	SlotLeftoverStats    = "dishcovery-leftover-stats"
	SlotLeftoverRatings  = "dishcovery-leftover-ratings"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Event reports that a key was written or deleted.
type Event struct {
	Key string `json:"key"`
}

// Store is a key/value store with change notifications. Writes are not
// transactional; concurrent writers to one key race and the last one wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Subscribe delivers events until ctx is cancelled, then closes the channel.
	Subscribe(ctx context.Context) (<-chan Event, error)
}

// ClientKey namespaces a slot to one client session.
func ClientKey(clientID, slot string) string {
	return fmt.Sprintf("client:%s:%s", clientID, slot)
}

// ClientPrefix is the key prefix shared by all slots of a client.
func ClientPrefix(clientID string) string {
	return fmt.Sprintf("client:%s:", clientID)
}

// SlotName returns the slot part of a client key.
func SlotName(key string) string {
	if i := strings.LastIndex(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// LoadJSON reads and decodes a slot. A missing slot yields def.
func LoadJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, nil
}

// SaveJSON encodes and writes a slot.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
