package auth

import (
	"context"
	"testing"

	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid", "admin", "admin123", true},
		{"wrong password", "admin", "wrong", false},
		{"wrong username", "root", "admin123", false},
		{"case sensitive", "Admin", "admin123", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(kv.NewMemoryStore(), nil)

			ok, err := svc.Login(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			authed, err := svc.IsAuthenticated(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, authed)
		})
	}
}

func TestFailedLoginKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore(), nil)

	ok, err := svc.Login(ctx, AdminUsername, AdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Login(ctx, AdminUsername, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	authed, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authed)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)

	require.NoError(t, svc.Logout(ctx), "logout without session")

	_, err := svc.Login(ctx, AdminUsername, AdminPassword)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	authed, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)

	_, err = store.Get(ctx, models.KeyAdminAuth)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSessionSharedThroughStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	_, err := NewService(store, nil).Login(ctx, AdminUsername, AdminPassword)
	require.NoError(t, err)

	authed, err := NewService(store, nil).IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authed)
}

func TestIsAuthenticatedIgnoresOtherValues(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, models.KeyAdminAuth, []byte(`"yes"`)))

	authed, err := NewService(store, nil).IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)
}
