package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRecord binds a session id to the profile that signed in, the token
// issued to it, and the signature that signed the token. Exactly one live
// signature exists per session; a re-login replaces the whole triple.
type SessionRecord struct {
	Profile   ProfileRecord `json:"profile"`
	Token     string        `json:"token"`
	Signature string        `json:"signature"`
}

// SessionStore is the sole read/write path for session records, keyed by a
// server-assigned session id. Put replaces the full record or nothing, so
// concurrent writers for the same id can never leave a mixed triple behind;
// different ids never contend.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)
	Put(ctx context.Context, sessionID string, rec SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps session records in Redis as single JSON values.
// One SET per Put keeps replacement atomic per key; the TTL bounds session
// lifetime, after which the held signature is discarded.
type RedisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) (*RedisSessionStore, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

// Get returns the record for sessionID, or (nil, nil) when none exists.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put writes the record for sessionID, overwriting any prior bound state.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, rec SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, data, s.ttl).Err()
}

// Delete destroys the record and every value it held. Deleting an absent
// session is a no-op.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
