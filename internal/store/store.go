// Package store is the durable record store backing the application: users,
// their one-to-one wallets and the append-only purchase ledger, kept in a
// local sqlite file through GORM.
package store

import (
	"context"
	"errors"
	"fmt"

	"ecocampus/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store wraps the GORM handle with the query surface the rest of the
// application is allowed to use. Lookups that find nothing return (nil, nil);
// every non-nil error is a storage fault and is propagated without retry.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transact runs fn inside a single database transaction. A non-nil error
// from fn rolls the whole unit back. The Store passed to fn must not be
// retained after fn returns.
func (s *Store) Transact(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// FindUserByEmail returns the user with this exact email, or nil when absent.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: find user by email: %w", err)
	}
	return &user, nil
}

// FindUserByID returns the user with this id, or nil when absent.
func (s *Store) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: find user by id: %w", err)
	}
	return &user, nil
}

// InsertUser creates the user and returns its newly assigned id.
func (s *Store) InsertUser(ctx context.Context, user *domain.User) (uint, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, fmt.Errorf("storage: insert user: %w", err)
	}
	return user.ID, nil
}

// ErrNotFound is returned by UpdateUser when the record to replace is absent.
var ErrNotFound = errors.New("storage: record not found")

// UpdateUser replaces the stored record with the same id.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":           user.Name,
		"email":          user.Email,
		"student_number": user.StudentNumber,
		"password_hash":  user.PasswordHash,
	})
	if res.Error != nil {
		return fmt.Errorf("storage: update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindWalletByUserID returns the user's wallet, or nil when absent.
func (s *Store) FindWalletByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: find wallet: %w", err)
	}
	return &wallet, nil
}

// InsertWallet creates a wallet row. The caller supplies the owning user id
// as the primary key.
func (s *Store) InsertWallet(ctx context.Context, wallet *domain.Wallet) error {
	if err := s.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return fmt.Errorf("storage: insert wallet: %w", err)
	}
	return nil
}

// SetWalletBalance overwrites the wallet balance unconditionally. Callers are
// responsible for having computed the new balance from a prior read under
// whatever serialization they need.
func (s *Store) SetWalletBalance(ctx context.Context, userID uint, balance decimal.Decimal) error {
	err := s.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", balance).Error
	if err != nil {
		return fmt.Errorf("storage: set balance: %w", err)
	}
	return nil
}

// InsertOrder appends one immutable ledger row.
func (s *Store) InsertOrder(ctx context.Context, order *domain.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("storage: insert order: %w", err)
	}
	return nil
}

// ListOrdersByUserID returns the user's purchase ledger, most recent first.
// Orders sharing a millisecond timestamp keep reverse insertion order.
func (s *Store) ListOrdersByUserID(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("storage: list orders: %w", err)
	}
	return orders, nil
}
