package appstate

import (
	"context"
	"errors"

	"ecocampus/internal/domain"
	"ecocampus/internal/remote"
	"ecocampus/internal/service"

	"github.com/shopspring/decimal"
)

// MainState aggregates the observable holders the main screens bind to:
// profile, wallet, catalogue and purchase ledger for the session's user,
// plus a one-off toast message slot.
type MainState struct {
	svc     *service.Service
	catalog *remote.Client

	User     *Value[*domain.User]
	Wallet   *Value[*domain.Wallet]
	Menu     *Value[domain.Menu]
	Products *Value[[]domain.Product]
	Orders   *Value[[]domain.Order]
	Toast    *Value[string]
}

// NewMainState creates empty holders bound to the service and catalogue
// client.
func NewMainState(svc *service.Service, catalog *remote.Client) *MainState {
	return &MainState{
		svc:      svc,
		catalog:  catalog,
		User:     NewValue[*domain.User](nil),
		Wallet:   NewValue[*domain.Wallet](nil),
		Menu:     NewValue(domain.Menu{}),
		Products: NewValue([]domain.Product{}),
		Orders:   NewValue([]domain.Order{}),
		Toast:    NewValue(""),
	}
}

// ClearToast resets the toast slot after the message has been shown.
func (m *MainState) ClearToast() { m.Toast.Set("") }

// Refresh reloads the session user's profile, wallet and ledger. Without a
// session it is a no-op.
func (m *MainState) Refresh(ctx context.Context) {
	userID, ok := m.svc.Sessions().CurrentUserID(ctx)
	if !ok {
		return
	}
	if wallet, err := m.svc.Wallet(ctx, userID); err == nil {
		m.Wallet.Set(wallet)
	}
	if orders, err := m.svc.PurchaseHistory(ctx, userID); err == nil {
		m.Orders.Set(orders)
	}
	if user, err := m.svc.UserByID(ctx, userID); err == nil {
		m.User.Set(user)
	}
}

// LoadCatalogue fetches the daily menu and the bar products. Fetch failures
// surface only as the client's fallback values.
func (m *MainState) LoadCatalogue(ctx context.Context) {
	menu, _ := m.catalog.Menu(ctx)
	m.Menu.Set(menu)
	products, _ := m.catalog.Products(ctx)
	m.Products.Set(products)
}

// TopUp credits the wallet and refreshes the holders.
func (m *MainState) TopUp(ctx context.Context, amount decimal.Decimal) {
	userID, ok := m.svc.Sessions().CurrentUserID(ctx)
	if !ok {
		return
	}
	if _, err := m.svc.CreditWallet(ctx, userID, amount); err != nil {
		m.Toast.Set("Top-up failed: " + err.Error())
		return
	}
	m.Refresh(ctx)
	m.Toast.Set("Top-up of " + amount.StringFixed(2) + "€ completed!")
}

// Buy runs a purchase and refreshes the holders, reporting the outcome via
// the toast slot.
func (m *MainState) Buy(ctx context.Context, itemName string, price decimal.Decimal, category domain.Category) {
	userID, ok := m.svc.Sessions().CurrentUserID(ctx)
	if !ok {
		return
	}
	err := m.svc.ProcessPurchase(ctx, userID, itemName, price, category)
	switch {
	case err == nil:
		m.Refresh(ctx)
		m.Toast.Set("Purchase completed: " + itemName)
	case errors.Is(err, service.ErrInsufficientBalance):
		m.Toast.Set("Insufficient balance!")
	case service.IsBusinessError(err):
		m.Toast.Set("Purchase failed: " + err.Error())
	default:
		m.Toast.Set("Purchase failed, try again.")
	}
}

// UpdateProfile saves profile edits and refreshes the user holder.
func (m *MainState) UpdateProfile(ctx context.Context, name, email, studentNumber string) {
	userID, ok := m.svc.Sessions().CurrentUserID(ctx)
	if !ok {
		return
	}
	user, err := m.svc.UpdateProfile(ctx, userID, name, email, studentNumber)
	if err != nil {
		m.Toast.Set("Could not update the profile: " + err.Error())
		return
	}
	m.User.Set(user)
	m.Toast.Set("Profile updated!")
}

// Logout clears the session. Holders keep their last values until the next
// Refresh with a new session. A failed durable clear would leave the user
// logged in on the next launch, so it is reported like any other failure.
func (m *MainState) Logout(ctx context.Context) {
	if err := m.svc.Logout(ctx); err != nil {
		m.Toast.Set("Logout failed, try again.")
	}
}
