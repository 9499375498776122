// Package session keeps per-customer carts in Redis, keyed by an opaque
// session ID carried in a cookie. The durable store never sees a cart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/cart"
)

const CookieName = "cartSession"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func NewClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewSessionID() string {
	return uuid.NewString()
}

func key(sid string) string {
	return "cart:" + sid
}

// Load returns the cart for a session. An unknown or expired session
// yields an empty cart, not an error.
func (s *Store) Load(ctx context.Context, sid string) (cart.Cart, error) {
	data, err := s.rdb.Get(ctx, key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("session load: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("session decode: %w", err)
	}
	return c, nil
}

// Save writes the cart back and refreshes the session TTL.
func (s *Store) Save(ctx context.Context, sid string, c cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.rdb.Set(ctx, key(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete drops the session's cart wholesale (successful checkout).
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// SessionID returns the request's session ID, minting a new one (and
// setting the cookie) when the client has none yet.
func SessionID(r *http.Request, w http.ResponseWriter, ttl time.Duration) string {
	if ck, err := r.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	sid := NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}
