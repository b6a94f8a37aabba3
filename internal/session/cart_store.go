package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 10

var (
	ErrEmptySessionID = errors.New("session id is empty")
	ErrCartContention = errors.New("cart update lost too many races")
)

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.CartStore = (*RedisCartStore)(nil)

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

// GetCart returns the session's cart, an empty one when nothing is stored.
func (s *RedisCartStore) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.NewCart(), nil
	}

	cart, err := load(ctx, s.client, cartKey(sessionID))
	if err != nil {
		return cart, fmt.Errorf("load: %w", err)
	}

	return cart, nil
}

// UpdateCart reads the cart, applies fn and writes the result inside WATCH/MULTI.
// A concurrent write to the same session aborts the transaction and fn is re-applied
// to the fresh state, so no mutation is lost. Each successful write refreshes the TTL.
func (s *RedisCartStore) UpdateCart(ctx context.Context, sessionID string, fn func(cart *domain.Cart)) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrEmptySessionID
	}

	key := cartKey(sessionID)

	var result domain.Cart

	txf := func(tx *redis.Tx) error {
		cart, err := load(ctx, tx, key)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}

		fn(&cart)
		cart.Normalize()

		var data []byte
		if !cart.IsEmpty() {
			if data, err = json.Marshal(cart); err != nil {
				return fmt.Errorf("json.Marshal: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if cart.IsEmpty() {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = cart
		return nil
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.Cart{}, fmt.Errorf("client.Watch: %w", err)
	}

	return domain.Cart{}, ErrCartContention
}

func (s *RedisCartStore) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, g getter, key string) (domain.Cart, error) {
	data, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// treated as empty, the next write replaces it
		slog.Warn("discarding undecodable cart", "key", key, "err", err)
		return domain.NewCart(), nil
	}

	cart.Normalize()

	return cart, nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
