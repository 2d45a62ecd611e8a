// Package service holds the transaction logic of the application: it owns
// the invariants around registration, authentication, wallet balances and
// the purchase ledger. It has no UI or HTTP dependency.
package service

import (
	"context"
	"sync"
	"time"

	"ecocampus/internal/domain"
	"ecocampus/internal/session"
	"ecocampus/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service orchestrates store and session access for every business
// operation.
type Service struct {
	store    *store.Store
	sessions *session.Manager
	validate *validator.Validate

	// Wallet mutations are serialized per user so two in-flight operations
	// can never both pass the balance check against the same stale read.
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// New creates the transaction service.
func New(st *store.Store, sessions *session.Manager) *Service {
	return &Service{
		store:    st,
		sessions: sessions,
		validate: validator.New(),
		locks:    make(map[uint]*sync.Mutex),
	}
}

// userLock returns the mutex serializing wallet mutations for one user.
func (s *Service) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Authenticate checks the credentials against the stored bcrypt hash and,
// on success, establishes the durable session and returns the user id.
func (s *Service) Authenticate(ctx context.Context, email, password string) (uint, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	if err := s.sessions.Login(ctx, user.ID); err != nil {
		return 0, err
	}
	logrus.WithField("user_id", user.ID).Info("User authenticated")
	return user.ID, nil
}

// validateProfileFields applies the shared field rules for registration and
// profile updates.
func (s *Service) validateProfileFields(name, studentNumber, email string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if studentNumber == "" {
		return &ValidationError{Field: "studentNumber", Reason: "must not be empty"}
	}
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	return nil
}

// Register creates a user and its zero-balance wallet in one transaction,
// establishes the session and returns the new id.
func (s *Service) Register(ctx context.Context, name, studentNumber, email, password string) (uint, error) {
	if err := s.validateProfileFields(name, studentNumber, email); err != nil {
		return 0, err
	}
	if len(password) < 4 {
		return 0, &ValidationError{Field: "password", Reason: "must be at least 4 characters"}
	}

	existing, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := domain.User{
		Name:          name,
		Email:         email,
		StudentNumber: studentNumber,
		PasswordHash:  string(hash),
	}
	// The user row and its wallet are one logical unit: a registration must
	// never leave a user without a reachable wallet.
	err = s.store.Transact(ctx, func(tx *store.Store) error {
		id, err := tx.InsertUser(ctx, &user)
		if err != nil {
			return err
		}
		return tx.InsertWallet(ctx, &domain.Wallet{UserID: id, Balance: decimal.Zero})
	})
	if err != nil {
		return 0, err
	}

	if err := s.sessions.Login(ctx, user.ID); err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	}).Info("User registered")
	return user.ID, nil
}

// CreditWallet adds amount to the user's balance and returns the new
// balance. A missing wallet is treated as a zero balance and repaired by
// inserting the row.
func (s *Service) CreditWallet(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	wallet, err := s.store.FindWalletByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if wallet == nil {
		wallet = &domain.Wallet{UserID: userID, Balance: amount}
		if err := s.store.InsertWallet(ctx, wallet); err != nil {
			return decimal.Zero, err
		}
	} else {
		wallet.Balance = wallet.Balance.Add(amount)
		if err := s.store.SetWalletBalance(ctx, userID, wallet.Balance); err != nil {
			return decimal.Zero, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"amount":    amount.String(),
		"balance":   wallet.Balance.String(),
		"type":      "topup",
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("Wallet credited")
	return wallet.Balance, nil
}

// ProcessPurchase debits the price from the wallet and appends the ledger
// row, as one transaction. The debit statement runs before the order insert:
// an interrupted purchase may lose the order record but never produces an
// order without its debit. Returns ErrInsufficientBalance with no side
// effect when the balance does not cover the price.
func (s *Service) ProcessPurchase(ctx context.Context, userID uint, itemName string, price decimal.Decimal, category domain.Category) error {
	if !price.IsPositive() {
		return ErrInvalidAmount
	}
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return &ValidationError{Field: "category", Reason: err.Error()}
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	wallet, err := s.store.FindWalletByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrWalletNotFound
	}
	if wallet.Balance.LessThan(price) {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"item":    itemName,
			"price":   price.String(),
			"balance": wallet.Balance.String(),
		}).Warn("Purchase rejected: insufficient balance")
		return ErrInsufficientBalance
	}

	newBalance := wallet.Balance.Sub(price)
	err = s.store.Transact(ctx, func(tx *store.Store) error {
		if err := tx.SetWalletBalance(ctx, userID, newBalance); err != nil {
			return err
		}
		return tx.InsertOrder(ctx, &domain.Order{
			UserID:   userID,
			ItemName: itemName,
			Price:    price,
			Type:     category,
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"item":    itemName,
			"error":   err.Error(),
		}).Error("Purchase failed")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"item":      itemName,
		"price":     price.String(),
		"balance":   newBalance.String(),
		"type":      string(category),
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("Purchase completed")
	return nil
}

// PurchaseHistory returns the user's orders, most recent first.
func (s *Service) PurchaseHistory(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.store.ListOrdersByUserID(ctx, userID)
}

// Wallet returns the current wallet for a user.
func (s *Service) Wallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	wallet, err := s.store.FindWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

// UserByID loads a user's profile.
func (s *Service) UserByID(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces the user's name, email and student number. The
// credential is never touched here.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, name, email, studentNumber string) (*domain.User, error) {
	if err := s.validateProfileFields(name, studentNumber, email); err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if other, err := s.store.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if other != nil && other.ID != userID {
		return nil, ErrDuplicateEmail
	}

	user.Name = name
	user.Email = email
	user.StudentNumber = studentNumber
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", userID).Info("Profile updated")
	return user, nil
}

// Logout clears the durable session. Stored users, wallets and orders are
// untouched.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Sessions exposes the session manager for read-side callers.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}
