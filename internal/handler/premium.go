package handler

import (
	"net/http"
	"strings"

	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/premium"
	"github.com/samphillips38/bloom-web-sub001/internal/ws"
)

// PremiumPage renders the subscription screen. The status record is
// re-fetched on every visit; a checkout-success redirect additionally
// refreshes stats so a just-created trial shows up immediately.
func (h *PageHandler) PremiumPage(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	banner := premium.BannerFromQuery(r.URL.Query())
	if banner == premium.BannerSuccess {
		h.mgr.RefreshStats(r.Context(), sess)
	}

	status, err := h.client.GetSubscriptionStatus(r.Context(), sess.AccessToken)
	if err != nil {
		h.logger.Warn("subscription status fetch", "error", err)
		status = nil
	}

	statusText := ""
	if status != nil {
		statusText = status.Status
	}

	h.render(w, "premium.html", map[string]any{
		"Title":     "Premium — Bloom",
		"Header":    buildHeader(sess),
		"IsPremium": premium.ResolvePremium(sess.User, status),
		"Status":    status,
		"Label":     premium.StatusLabel(statusText),
		"Success":   banner == premium.BannerSuccess,
		"Canceled":  banner == premium.BannerCanceled,
	})
}

// Checkout obtains the provider's checkout URL from the API and performs
// a full navigation to it. The provider returns the user with the
// success/canceled query flags.
func (h *PageHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	plan := r.FormValue("plan")
	if !premium.ValidPlan(plan) {
		h.render(w, "premium-error", map[string]any{"Error": "Unknown plan"})
		return
	}

	url, err := h.client.CreateCheckoutSession(r.Context(), sess.AccessToken, plan)
	if err != nil {
		h.logger.Warn("create checkout session", "error", err)
		h.render(w, "premium-error", map[string]any{"Error": err.Error()})
		return
	}

	redirectTo(w, r, url)
}

// Portal opens the billing portal for an existing subscription.
func (h *PageHandler) Portal(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	url, err := h.client.CreatePortalSession(r.Context(), sess.AccessToken)
	if err != nil {
		h.logger.Warn("create portal session", "error", err)
		h.render(w, "premium-error", map[string]any{"Error": err.Error()})
		return
	}

	redirectTo(w, r, url)
}

// BannerDismiss clears the checkout-result banner and strips the query
// flags from the address bar without a page navigation.
func (h *PageHandler) BannerDismiss(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("HX-Replace-Url", "/premium")
	w.WriteHeader(http.StatusOK)
}

// AdminGrant forwards a premium grant request. The front-end has no
// permission model; the API validates the shared secret.
func (h *PageHandler) AdminGrant(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	userID := strings.TrimSpace(r.FormValue("user_id"))
	secret := r.FormValue("secret")
	note := strings.TrimSpace(r.FormValue("note"))
	if userID == "" || secret == "" {
		h.render(w, "admin-result", map[string]any{"Error": "User id and secret are required"})
		return
	}

	if err := h.client.AdminGrantPremium(r.Context(), sess.AccessToken, userID, secret, note); err != nil {
		h.render(w, "admin-result", map[string]any{"Error": err.Error()})
		return
	}

	h.hub.BroadcastSession(sess.LocalID, ws.Message{Type: ws.TypeSubscriptionUpdated})
	h.render(w, "admin-result", map[string]any{"Message": "Premium granted"})
}

// AdminRevoke forwards a premium revocation request.
func (h *PageHandler) AdminRevoke(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	userID := strings.TrimSpace(r.FormValue("user_id"))
	secret := r.FormValue("secret")
	if userID == "" || secret == "" {
		h.render(w, "admin-result", map[string]any{"Error": "User id and secret are required"})
		return
	}

	if err := h.client.AdminRevokePremium(r.Context(), sess.AccessToken, userID, secret); err != nil {
		h.render(w, "admin-result", map[string]any{"Error": err.Error()})
		return
	}

	h.hub.BroadcastSession(sess.LocalID, ws.Message{Type: ws.TypeSubscriptionUpdated})
	h.render(w, "admin-result", map[string]any{"Message": "Premium revoked"})
}

// redirectTo performs a full navigation, including from HTMX-initiated
// requests.
func redirectTo(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
