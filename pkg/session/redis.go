package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// RedisStore persists the session in redis so a child application keeps its
// session across restarts. The key is derived from the configured namespace
// and the entry expires with the credential itself.
type RedisStore struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

type redisRecord struct {
	Raw  string                `json:"raw"`
	View token.VerifiedSession `json:"view"`
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("%s:session", s.namespace)
}

func (s *RedisStore) Save(ctx context.Context, sess token.VerifiedSession) error {
	payload, err := json.Marshal(redisRecord{Raw: sess.Raw, View: sess})
	if err != nil {
		return err
	}
	ttl := sess.TokenExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Clear(ctx)
	}
	return s.client.Set(ctx, s.key(), payload, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context) (token.VerifiedSession, error) {
	val, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return token.VerifiedSession{}, ErrNoSession
	}
	if err != nil {
		return token.VerifiedSession{}, err
	}
	rec := redisRecord{}
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return token.VerifiedSession{}, err
	}
	sess := rec.View
	sess.Raw = rec.Raw
	return sess, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}
