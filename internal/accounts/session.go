package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nobih83/bn-storefront/internal/redisx"
)

var ErrNoSession = errors.New("no such session")

// SessionStore is the "current user" pointer: one token per login, the
// whole user record serialized under it. No expiry.
type SessionStore struct{ Redis *redis.Client }

func (s *SessionStore) Put(ctx context.Context, u User) (string, error) {
	token := uuid.NewString()
	raw, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	if err := s.Redis.Set(ctx, fmt.Sprintf(redisx.KeySession, token), raw, redisx.TTLSession).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (User, error) {
	raw, err := s.Redis.Get(ctx, fmt.Sprintf(redisx.KeySession, token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, ErrNoSession
		}
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.Redis.Del(ctx, fmt.Sprintf(redisx.KeySession, token)).Err()
}
