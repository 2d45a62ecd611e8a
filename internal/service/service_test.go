package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"ecocampus/internal/domain"
	"ecocampus/internal/service"
	"ecocampus/internal/session"
	"ecocampus/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	svc      *service.Service
	store    *store.Store
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	// A file-backed database per test: with :memory: every pooled connection
	// would see its own empty schema.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Wallet{}, &domain.Order{}))

	st := store.New(db)
	sessions := session.NewManager(session.NewMemoryKV())
	return &fixture{svc: service.New(st, sessions), store: st, sessions: sessions}
}

func mustRegister(t *testing.T, f *fixture, email string) uint {
	t.Helper()
	id, err := f.svc.Register(context.Background(), "Ana", "12345", email, "1234")
	require.NoError(t, err)
	return id
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegisterCreatesZeroBalanceWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := mustRegister(t, f, "ana@ipvc.pt")

	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, wallet, "registration must leave a reachable wallet")
	assert.True(t, wallet.Balance.IsZero())
}

func TestRegisterEstablishesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := mustRegister(t, f, "ana@ipvc.pt")

	assert.True(t, f.sessions.IsLoggedIn(ctx))
	current, ok := f.sessions.CurrentUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, id, current)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, userName, studentNumber, email, password, field string
	}{
		{"empty name", "", "12345", "ana@ipvc.pt", "1234", "name"},
		{"empty student number", "Ana", "", "ana@ipvc.pt", "1234", "studentNumber"},
		{"empty email", "Ana", "12345", "", "1234", "email"},
		{"malformed email", "Ana", "12345", "not-an-email", "1234", "email"},
		{"short password", "Ana", "12345", "ana@ipvc.pt", "123", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tc.userName, tc.studentNumber, tc.email, tc.password)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	// Nothing was stored for any of the rejected attempts.
	user, err := f.store.FindUserByEmail(ctx, "ana@ipvc.pt")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	mustRegister(t, f, "ana@ipvc.pt")

	_, err := f.svc.Register(context.Background(), "Outra Ana", "99999", "ana@ipvc.pt", "abcd")
	assert.ErrorIs(t, err, service.ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	require.NoError(t, f.svc.Logout(ctx))

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "rui@ipvc.pt", "1234")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.False(t, f.sessions.IsLoggedIn(ctx))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "ana@ipvc.pt", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.False(t, f.sessions.IsLoggedIn(ctx))
	})

	t.Run("exact match", func(t *testing.T) {
		got, err := f.svc.Authenticate(ctx, "ana@ipvc.pt", "1234")
		require.NoError(t, err)
		assert.Equal(t, id, got)
		assert.True(t, f.sessions.IsLoggedIn(ctx))
	})
}

func TestCreditWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")

	balance, err := f.svc.CreditWallet(ctx, id, dec("10.00"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("10.00")))

	// Repeated credits accumulate exactly, no drift.
	for i := 0; i < 100; i++ {
		balance, err = f.svc.CreditWallet(ctx, id, dec("0.10"))
		require.NoError(t, err)
	}
	assert.True(t, balance.Equal(dec("20.00")), "got %s", balance)

	for _, bad := range []string{"0", "-5.00"} {
		_, err := f.svc.CreditWallet(ctx, id, dec(bad))
		assert.ErrorIs(t, err, service.ErrInvalidAmount)
	}
}

func TestCreditWalletRepairsMissingWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A user row without its wallet: the recoverable-but-inconsistent state.
	id, err := f.store.InsertUser(ctx, &domain.User{Name: "Ana", Email: "ana@ipvc.pt", PasswordHash: "x"})
	require.NoError(t, err)

	balance, err := f.svc.CreditWallet(ctx, id, dec("5.00"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("5.00")))

	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, wallet)
}

func TestProcessPurchaseInsufficientBalanceIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("2.00"))
	require.NoError(t, err)

	err = f.svc.ProcessPurchase(ctx, id, "Sopa", dec("2.50"), domain.CategoryCantina)
	assert.ErrorIs(t, err, service.ErrInsufficientBalance)

	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec("2.00")), "balance must be unchanged")

	orders, err := f.svc.PurchaseHistory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, orders, "no order without a debit")
}

func TestProcessPurchaseDebitsAndLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("10.00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.ProcessPurchase(ctx, id, "Tosta mista", dec("2.20"), domain.CategoryBar))

	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec("7.80")))

	orders, err := f.svc.PurchaseHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Tosta mista", orders[0].ItemName)
	assert.True(t, orders[0].Price.Equal(dec("2.20")))
	assert.Equal(t, domain.CategoryBar, orders[0].Type)
}

func TestProcessPurchaseExactBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("2.50"))
	require.NoError(t, err)

	// balance == price is allowed; the floor is zero, never negative.
	require.NoError(t, f.svc.ProcessPurchase(ctx, id, "Sopa", dec("2.50"), domain.CategoryCantina))

	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}

func TestProcessPurchaseWalletNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.store.InsertUser(ctx, &domain.User{Name: "Ana", Email: "ana@ipvc.pt", PasswordHash: "x"})
	require.NoError(t, err)

	err = f.svc.ProcessPurchase(ctx, id, "Sopa", dec("2.50"), domain.CategoryCantina)
	assert.ErrorIs(t, err, service.ErrWalletNotFound)
}

func TestProcessPurchaseRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")

	err := f.svc.ProcessPurchase(ctx, id, "Sopa", dec("-1.00"), domain.CategoryCantina)
	assert.ErrorIs(t, err, service.ErrInvalidAmount)

	err = f.svc.ProcessPurchase(ctx, id, "Sopa", dec("1.00"), domain.Category("TAKEAWAY"))
	var ve *service.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPurchaseHistoryMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("50.00"))
	require.NoError(t, err)

	items := []string{"Sopa", "Café", "Bacalhau", "Sumo", "Tosta mista"}
	for _, item := range items {
		require.NoError(t, f.svc.ProcessPurchase(ctx, id, item, dec("1.00"), domain.CategoryBar))
	}

	orders, err := f.svc.PurchaseHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, orders, len(items))
	for i, order := range orders {
		assert.Equal(t, items[len(items)-1-i], order.ItemName)
	}
}

func TestConcurrentPurchasesNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("5.00"))
	require.NoError(t, err)

	// Ten racing purchases of 1.00 against a 5.00 balance: exactly five may
	// pass the balance check.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.svc.ProcessPurchase(ctx, id, "Café", dec("1.00"), domain.CategoryBar) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero(), "final balance must be exactly zero, got %s", wallet.Balance)

	orders, err := f.svc.PurchaseHistory(ctx, id)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")

	user, err := f.svc.UpdateProfile(ctx, id, "Ana Maria", "ana.maria@ipvc.pt", "54321")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)

	reloaded, err := f.svc.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ana.maria@ipvc.pt", reloaded.Email)
	assert.Equal(t, "54321", reloaded.StudentNumber)

	// Keeping your own email is not a duplicate.
	_, err = f.svc.UpdateProfile(ctx, id, "Ana Maria", "ana.maria@ipvc.pt", "54321")
	require.NoError(t, err)

	// Taking another user's email is.
	other, err := f.svc.Register(ctx, "Rui", "22222", "rui@ipvc.pt", "abcd")
	require.NoError(t, err)
	_, err = f.svc.UpdateProfile(ctx, other, "Rui", "ana.maria@ipvc.pt", "22222")
	assert.ErrorIs(t, err, service.ErrDuplicateEmail)
}

func TestUpdateProfileNeverTouchesCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")

	_, err := f.svc.UpdateProfile(ctx, id, "Ana Maria", "ana@ipvc.pt", "54321")
	require.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, "ana@ipvc.pt", "1234")
	assert.NoError(t, err, "original password must still authenticate")
}

func TestLogoutClearsSessionKeepsRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustRegister(t, f, "ana@ipvc.pt")
	_, err := f.svc.CreditWallet(ctx, id, dec("10.00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx))

	assert.False(t, f.sessions.IsLoggedIn(ctx))
	_, ok := f.sessions.CurrentUserID(ctx)
	assert.False(t, ok)

	// Rows survive the logout.
	user, err := f.store.FindUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	wallet, err := f.store.FindWalletByUserID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.True(t, wallet.Balance.Equal(dec("10.00")))
}

// TestFullScenario walks the canonical register → failed purchase → top-up →
// successful purchase flow end to end.
func TestFullScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.Register(ctx, "Ana", "12345", "ana@ipvc.pt", "1234")
	require.NoError(t, err)
	current, ok := f.sessions.CurrentUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, id, current)

	wallet, err := f.svc.Wallet(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())

	err = f.svc.ProcessPurchase(ctx, id, "Sopa", dec("2.50"), domain.CategoryCantina)
	assert.ErrorIs(t, err, service.ErrInsufficientBalance)
	wallet, err = f.svc.Wallet(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())

	balance, err := f.svc.CreditWallet(ctx, id, dec("10.00"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("10.00")))

	require.NoError(t, f.svc.ProcessPurchase(ctx, id, "Sopa", dec("2.50"), domain.CategoryCantina))
	wallet, err = f.svc.Wallet(ctx, id)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec("7.50")))

	orders, err := f.svc.PurchaseHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Sopa", orders[0].ItemName)
	assert.True(t, orders[0].Price.Equal(dec("2.50")))
	assert.Equal(t, domain.CategoryCantina, orders[0].Type)
}
