package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nobih83/bn-storefront/internal/catalog"
	"github.com/nobih83/bn-storefront/internal/redisx"
)

type Store struct{ Redis *redis.Client }

func key(session string) string { return fmt.Sprintf(redisx.KeyCart, session) }

func (s *Store) Get(ctx context.Context, session string) ([]Line, error) {
	raw, err := s.Redis.Get(ctx, key(session)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Store) save(ctx context.Context, session string, lines []Line) error {
	if len(lines) == 0 {
		return s.Redis.Del(ctx, key(session)).Err()
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, key(session), raw, redisx.TTLCart).Err()
}

func (s *Store) Add(ctx context.Context, session string, p catalog.Product, qty int64) ([]Line, error) {
	lines, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	lines = Merge(lines, p, qty)
	return lines, s.save(ctx, session, lines)
}

func (s *Store) Adjust(ctx context.Context, session, productID string, delta int64) ([]Line, error) {
	lines, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	lines = Adjust(lines, productID, delta)
	return lines, s.save(ctx, session, lines)
}

func (s *Store) Remove(ctx context.Context, session, productID string) ([]Line, error) {
	lines, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	lines = Remove(lines, productID)
	return lines, s.save(ctx, session, lines)
}

func (s *Store) Clear(ctx context.Context, session string) error {
	return s.Redis.Del(ctx, key(session)).Err()
}
