// Package ovh wraps the signed OVH API calls the sniper depends on:
// datacenter availabilities, the order-cart pipeline and the public eco
// catalog.
package ovh

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"ovh-sniper-api/internal/config"

	govh "github.com/ovh/go-ovh/ovh"
)

// ErrNotConfigured is returned when OVH credentials are absent. Callers
// must treat it as "service unreachable", never as a retryable remote
// failure.
var ErrNotConfigured = errors.New("ovh: missing API credentials")

// API is the surface the probe, executor and catalog services consume.
// Implemented by *Client; tests substitute mocks.
type API interface {
	Availabilities(ctx context.Context, planCode string) ([]PlanAvailability, error)
	CreateCart(ctx context.Context, subsidiary string) (string, error)
	AssignCart(ctx context.Context, cartID string) error
	AddEcoItem(ctx context.Context, cartID, planCode string) (int64, error)
	RequiredConfigurations(ctx context.Context, cartID string, itemID int64) ([]RequiredConfiguration, error)
	SetConfiguration(ctx context.Context, cartID string, itemID int64, label, value string) error
	AddOption(ctx context.Context, cartID string, itemID int64, optionCode string) error
	Checkout(ctx context.Context, cartID string) (*Order, error)
	Catalog(ctx context.Context, subsidiary string) (*Catalog, error)
	VerifyAuth(ctx context.Context) error
}

// caller is the subset of *govh.Client the wrapper uses.
type caller interface {
	GetWithContext(ctx context.Context, url string, result interface{}) error
	PostWithContext(ctx context.Context, url string, reqBody, result interface{}) error
}

// Client is a thin typed wrapper over the official OVH client.
type Client struct {
	api caller
}

// New creates an OVH client from configuration. Returns ErrNotConfigured
// when any of the three credentials is missing.
func New(cfg config.OVHConfig, sniper config.SniperConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	c, err := govh.NewClient(cfg.Endpoint, cfg.AppKey, cfg.AppSecret, cfg.ConsumerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OVH client: %w", err)
	}
	if sniper.CallTimeout > 0 {
		c.Timeout = sniper.CallTimeout
	}

	return &Client{api: c}, nil
}

// fixedTerms are the commercial terms applied to every cart item.
func fixedTerms(planCode string) itemPayload {
	return itemPayload{
		PlanCode:    planCode,
		PricingMode: "default",
		Duration:    "P1M",
		Quantity:    1,
	}
}

// Availabilities returns current datacenter availability for a plan.
func (c *Client) Availabilities(ctx context.Context, planCode string) ([]PlanAvailability, error) {
	var out []PlanAvailability
	path := "/dedicated/server/datacenter/availabilities?planCode=" + url.QueryEscape(planCode)
	if err := c.api.GetWithContext(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("failed to check availability for %s: %w", planCode, err)
	}
	return out, nil
}

// CreateCart creates an order cart scoped to the given subsidiary.
func (c *Client) CreateCart(ctx context.Context, subsidiary string) (string, error) {
	var cart Cart
	body := map[string]string{"ovhSubsidiary": subsidiary}
	if err := c.api.PostWithContext(ctx, "/order/cart", body, &cart); err != nil {
		return "", fmt.Errorf("failed to create cart: %w", err)
	}
	return cart.CartID, nil
}

// AssignCart binds the cart to the authenticated account. Required
// before any item mutation.
func (c *Client) AssignCart(ctx context.Context, cartID string) error {
	path := fmt.Sprintf("/order/cart/%s/assign", url.PathEscape(cartID))
	if err := c.api.PostWithContext(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to assign cart %s: %w", cartID, err)
	}
	return nil
}

// AddEcoItem adds the plan to the cart with the fixed commercial terms
// and returns the new item id.
func (c *Client) AddEcoItem(ctx context.Context, cartID, planCode string) (int64, error) {
	var item CartItem
	path := fmt.Sprintf("/order/cart/%s/eco", url.PathEscape(cartID))
	if err := c.api.PostWithContext(ctx, path, fixedTerms(planCode), &item); err != nil {
		return 0, fmt.Errorf("failed to add %s to cart: %w", planCode, err)
	}
	return item.ItemID, nil
}

// RequiredConfigurations returns the item's declared mandatory
// configuration fields.
func (c *Client) RequiredConfigurations(ctx context.Context, cartID string, itemID int64) ([]RequiredConfiguration, error) {
	var out []RequiredConfiguration
	path := fmt.Sprintf("/order/cart/%s/item/%d/requiredConfiguration", url.PathEscape(cartID), itemID)
	if err := c.api.GetWithContext(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch required configuration: %w", err)
	}
	return out, nil
}

// SetConfiguration sets one configuration label on a cart item.
func (c *Client) SetConfiguration(ctx context.Context, cartID string, itemID int64, label, value string) error {
	path := fmt.Sprintf("/order/cart/%s/item/%d/configuration", url.PathEscape(cartID), itemID)
	body := configurationPayload{Label: label, Value: value}
	if err := c.api.PostWithContext(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to set configuration %s=%s: %w", label, value, err)
	}
	return nil
}

// AddOption adds an add-on plan to a cart item with the fixed terms.
func (c *Client) AddOption(ctx context.Context, cartID string, itemID int64, optionCode string) error {
	path := fmt.Sprintf("/order/cart/%s/item/%d/option", url.PathEscape(cartID), itemID)
	if err := c.api.PostWithContext(ctx, path, fixedTerms(optionCode), nil); err != nil {
		return fmt.Errorf("failed to add option %s: %w", optionCode, err)
	}
	return nil
}

// Checkout finalizes the cart with auto-pay disabled and the
// retractation-period waiver set, and returns the resulting order.
func (c *Client) Checkout(ctx context.Context, cartID string) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/order/cart/%s/checkout", url.PathEscape(cartID))
	body := checkoutPayload{
		AutoPayWithPreferredPaymentMethod: false,
		WaiveRetractationPeriod:           true,
	}
	if err := c.api.PostWithContext(ctx, path, body, &order); err != nil {
		return nil, fmt.Errorf("failed to checkout cart %s: %w", cartID, err)
	}
	return &order, nil
}

// Catalog fetches the public eco catalog for a subsidiary.
func (c *Client) Catalog(ctx context.Context, subsidiary string) (*Catalog, error) {
	var catalog Catalog
	path := "/order/catalog/public/eco?ovhSubsidiary=" + url.QueryEscape(subsidiary)
	if err := c.api.GetWithContext(ctx, path, &catalog); err != nil {
		return nil, fmt.Errorf("failed to load eco catalog: %w", err)
	}
	return &catalog, nil
}

// VerifyAuth performs a cheap authenticated call to validate credentials.
func (c *Client) VerifyAuth(ctx context.Context) error {
	var me map[string]interface{}
	if err := c.api.GetWithContext(ctx, "/me", &me); err != nil {
		return fmt.Errorf("authentication verification failed: %w", err)
	}
	return nil
}

// Ensure Client implements API
var _ API = (*Client)(nil)
