package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshSessionHoldsNobody(t *testing.T) {
	m := NewManager(NewMemoryKV())
	ctx := context.Background()

	assert.False(t, m.IsLoggedIn(ctx))
	_, ok := m.CurrentUserID(ctx)
	assert.False(t, ok)
}

func TestLoginPersistsAcrossManagers(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, NewManager(kv).Login(ctx, 42))

	// A new manager over the same storage sees the session, the way a
	// relaunched process would.
	m := NewManager(kv)
	assert.True(t, m.IsLoggedIn(ctx))
	id, ok := m.CurrentUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestLoginOverwritesPriorSession(t *testing.T) {
	m := NewManager(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, 1))
	require.NoError(t, m.Login(ctx, 2))

	id, ok := m.CurrentUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(2), id)
}

func TestLogoutClearsEverything(t *testing.T) {
	m := NewManager(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, 7))
	require.NoError(t, m.Logout(ctx))

	assert.False(t, m.IsLoggedIn(ctx))
	_, ok := m.CurrentUserID(ctx)
	assert.False(t, ok)
}
