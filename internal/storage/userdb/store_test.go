package userdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, store.Save(ctx, user))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.ModifiedAt.IsZero())
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetByUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}))
	require.NoError(t, store.Save(ctx, &models.User{ID: "user-2", Username: "bob", Email: "bob@example.com"}))

	got, err := store.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "user-2", got.ID)

	_, err = store.GetByUsername(ctx, "carol")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}))

	got, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestSave_PreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Username: "alice"}
	require.NoError(t, store.Save(ctx, user))
	created := user.CreatedAt

	time.Sleep(10 * time.Millisecond)

	user.Email = "alice@example.com"
	require.NoError(t, store.Save(ctx, user))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created), "CreatedAt must survive updates")
	assert.True(t, got.ModifiedAt.After(created), "ModifiedAt must advance on update")
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.User{ID: "user-1", Username: "alice"}))

	require.NoError(t, store.Delete(ctx, "user-1"))
	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	// Deleting an absent user is not an error.
	assert.NoError(t, store.Delete(ctx, "user-1"))
}
