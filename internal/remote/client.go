// Package remote fetches the published catalogue documents: the daily
// canteen menu and the bar product list. Both are plain unauthenticated GETs
// of fixed JSON URLs. Fetch failures never escape this package: callers
// always receive a usable value, at worst the defined fallback.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ecocampus/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Client retrieves the two catalogue documents.
type Client struct {
	httpClient  *http.Client
	menuURL     string
	productsURL string
}

// NewClient creates a catalogue client. timeout bounds each request; zero
// falls back to 10 seconds.
func NewClient(menuURL, productsURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		menuURL:     menuURL,
		productsURL: productsURL,
	}
}

// fallbackMenu is what callers see when the menu cannot be fetched: every
// slot reads as a network-error placeholder at price zero.
func fallbackMenu() domain.Menu {
	dish := domain.Dish{Name: "Network error", Ingredients: "No data", Price: decimal.Zero}
	return domain.Menu{Soup: dish, Meat: dish, Fish: dish, Diet: dish}
}

// Menu returns the daily canteen menu, or the placeholder menu when the
// fetch or decode fails. ok reports whether the live document was fetched,
// so callers can tell the fallback apart without ever seeing the raw fault.
func (c *Client) Menu(ctx context.Context) (menu domain.Menu, ok bool) {
	if err := c.getJSON(ctx, c.menuURL, &menu); err != nil {
		logrus.WithError(err).Error("Failed to fetch daily menu")
		return fallbackMenu(), false
	}
	return menu, true
}

// Products returns the bar catalogue, or an empty list when the fetch or
// decode fails. ok reports whether the live document was fetched.
func (c *Client) Products(ctx context.Context) (products []domain.Product, ok bool) {
	if err := c.getJSON(ctx, c.productsURL, &products); err != nil {
		logrus.WithError(err).Error("Failed to fetch bar products")
		return []domain.Product{}, false
	}
	return products, true
}

// getJSON performs one GET and decodes the body into dest.
func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
