package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/cart"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, time.Hour), mr
}

func TestLoadUnknownSessionIsEmptyCart(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	c, err := cart.Cart{}.Add(7, 2, cart.Snapshot{Price: 45, Name: "Bread", UnitType: "quantity", Available: 25})
	require.NoError(t, err)

	sid := NewSessionID()
	require.NoError(t, store.Save(ctx, sid, c))

	got, err := store.Load(ctx, sid)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Equal(t, uint(7), got.Lines[0].ProductID)
	require.Equal(t, float64(45), got.Lines[0].Price)
}

func TestDeleteClearsCart(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	c, _ := cart.Cart{}.Add(1, 1, cart.Snapshot{Price: 1, Available: 10})
	sid := NewSessionID()
	require.NoError(t, store.Save(ctx, sid, c))
	require.NoError(t, store.Delete(ctx, sid))

	got, err := store.Load(ctx, sid)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestSessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	c, _ := cart.Cart{}.Add(1, 1, cart.Snapshot{Price: 1, Available: 10})
	sid := NewSessionID()
	require.NoError(t, store.Save(ctx, sid, c))

	mr.FastForward(2 * time.Hour)

	got, err := store.Load(ctx, sid)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}
