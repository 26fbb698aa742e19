package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SessionStore {
	t.Helper()

	store, err := Open(context.Background(), MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func TestSessionStoreSaveGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	want := domain.WebSession{
		ID: "sess-1",
		Auth: domain.AuthSession{
			Token: "jwt",
			User:  &domain.User{ID: 7, FullName: "Grace Hopper", Email: "grace@example.com"},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionStoreSaveUpdatesExisting(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	now := time.Now().UTC()
	session := domain.WebSession{ID: "sess-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), session))

	session.Auth = domain.AuthSession{Token: "jwt"}
	require.NoError(t, store.Save(context.Background(), session))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, got.Auth.IsAuthenticated())
	assert.Nil(t, got.Auth.User)
}

func TestSessionStoreGetUnknownOrExpired(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	past := time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(context.Background(), domain.WebSession{ID: "old", CreatedAt: past.Add(-time.Hour), ExpiresAt: past}))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = store.Get(context.Background(), "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreGetJudgesExpiryByItsClock(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)}
	store, err := Open(context.Background(), MemoryPath, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.WebSession{
		ID:        "pinned",
		CreatedAt: clock.now,
		ExpiresAt: clock.now.Add(7 * 24 * time.Hour),
	}))

	_, err = store.Get(ctx, "pinned")
	require.NoError(t, err)

	clock.now = clock.now.Add(8 * 24 * time.Hour)
	_, err = store.Get(ctx, "pinned")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStorePurgeExpired(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	now := time.Now()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.WebSession{ID: "expired", CreatedAt: now, ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, store.Save(ctx, domain.WebSession{ID: "live", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.WebSession{ID: "forever", CreatedAt: now}))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, "live")
	require.NoError(t, err)
	_, err = store.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestSessionStoreDeleteAndFilePersistence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "sessions.db")
	ctx := context.Background()

	store, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, domain.WebSession{ID: "a", CreatedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	_, err = reopened.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, reopened.Delete(ctx, "a"))
	require.NoError(t, reopened.Delete(ctx, "a"))
	_, err = reopened.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreRejectsEmptyID(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	assert.EqualError(t, store.Save(context.Background(), domain.WebSession{}), "session id is required")
}
