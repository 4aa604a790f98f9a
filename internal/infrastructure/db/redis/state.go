package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sinarjaya/maintenance-panel/internal/api/view"
)

// stateTTL bounds how long redirect state survives when the follow-up page
// load never arrives (closed tab, lost connection).
const stateTTL = 2 * time.Minute

// StateStore holds one-shot page state (flash, field errors, old input)
// across a redirect, keyed by an opaque token carried in a cookie.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Put stores st under token until Take or expiry.
func (s *StateStore) Put(ctx context.Context, token string, st view.PageState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal page state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, stateTTL).Err(); err != nil {
		return fmt.Errorf("store page state: %w", err)
	}
	return nil
}

// Take reads and deletes the state for token. It returns nil when the token
// is unknown, already taken, or expired: one read per redirect, ever.
func (s *StateStore) Take(ctx context.Context, token string) (*view.PageState, error) {
	payload, err := s.client.GetDel(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take page state: %w", err)
	}

	var st view.PageState
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("unmarshal page state: %w", err)
	}
	return &st, nil
}

func (s *StateStore) key(token string) string {
	return "pagestate:" + token
}
