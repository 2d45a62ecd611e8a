// Package session keeps the durable record of which user is currently
// authenticated, so a restart of the process preserves login state.
package session

import (
	"context"
	"fmt"
	"strconv"
)

// Keys of the session key-value region. Logout clears the region entirely.
const (
	keyUserID     = "user_id"
	keyIsLoggedIn = "is_logged_in"
)

// KV is the durable key-value storage the session is written to.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Manager reads and writes the session. It is constructed over its storage
// handle, so there is no separate initialization step to get wrong.
type Manager struct {
	kv KV
}

// NewManager creates a session manager over the given durable storage.
func NewManager(kv KV) *Manager {
	return &Manager{kv: kv}
}

// Login durably records userID as the authenticated user, overwriting any
// prior session.
func (m *Manager) Login(ctx context.Context, userID uint) error {
	if err := m.kv.Set(ctx, keyUserID, strconv.FormatUint(uint64(userID), 10)); err != nil {
		return fmt.Errorf("session: store user id: %w", err)
	}
	if err := m.kv.Set(ctx, keyIsLoggedIn, "true"); err != nil {
		return fmt.Errorf("session: store login flag: %w", err)
	}
	return nil
}

// Logout clears the whole session region. Afterwards IsLoggedIn reports
// false and CurrentUserID reports no user.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.kv.Del(ctx, keyUserID, keyIsLoggedIn); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a login has been recorded and not cleared.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	v, ok, err := m.kv.Get(ctx, keyIsLoggedIn)
	return err == nil && ok && v == "true"
}

// CurrentUserID returns the authenticated user's id, or ok=false when nobody
// is logged in.
func (m *Manager) CurrentUserID(ctx context.Context) (uint, bool) {
	v, ok, err := m.kv.Get(ctx, keyUserID)
	if err != nil || !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
