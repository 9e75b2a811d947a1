package api

import (
	"context"
	"net/http"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// GetSubscriptionStatus fetches the current subscription record. It is
// never cached; the premium page re-fetches on every visit.
func (c *Client) GetSubscriptionStatus(ctx context.Context, access string) (*model.SubscriptionStatus, error) {
	var res struct {
		Status *model.SubscriptionStatus `json:"status"`
	}
	if err := c.do(ctx, "get_subscription_status", http.MethodGet, "/subscriptions/status", access, nil, &res); err != nil {
		return nil, err
	}
	return res.Status, nil
}

// CreateCheckoutSession returns the payment provider's checkout URL for
// the given plan. The provider returns the user to the premium page with
// success/canceled query flags.
func (c *Client) CreateCheckoutSession(ctx context.Context, access, plan string) (string, error) {
	req := map[string]string{"plan": plan}
	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, "create_checkout_session", http.MethodPost, "/subscriptions/checkout", access, req, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

// CreatePortalSession returns the billing portal URL for managing an
// existing subscription.
func (c *Client) CreatePortalSession(ctx context.Context, access string) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, "create_portal_session", http.MethodPost, "/subscriptions/portal", access, nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

// AdminGrantPremium grants premium to a user. Authorization is enforced
// entirely by the API via the shared secret; the front-end has no local
// permission check.
func (c *Client) AdminGrantPremium(ctx context.Context, access, userID, secret, note string) error {
	req := map[string]string{"userId": userID, "secret": secret}
	if note != "" {
		req["note"] = note
	}
	return c.do(ctx, "admin_grant_premium", http.MethodPost, "/subscriptions/admin/grant", access, req, nil)
}

// AdminRevokePremium revokes an admin-granted premium.
func (c *Client) AdminRevokePremium(ctx context.Context, access, userID, secret string) error {
	req := map[string]string{"userId": userID, "secret": secret}
	return c.do(ctx, "admin_revoke_premium", http.MethodPost, "/subscriptions/admin/revoke", access, req, nil)
}
