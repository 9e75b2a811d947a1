package model

import "time"

// Subscription status values reported by the Bloom API.
const (
	SubStatusActive       = "active"
	SubStatusTrialing     = "trialing"
	SubStatusPastDue      = "past_due"
	SubStatusCanceled     = "canceled"
	SubStatusAdminGranted = "admin_granted"
	SubStatusUnknown      = "unknown"
)

// Plan intervals accepted by the checkout flow.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// SubscriptionStatus is fetched independently of the session and never
// persisted locally; the premium page re-fetches it on every visit.
type SubscriptionStatus struct {
	Status            string     `json:"status"`
	Plan              string     `json:"plan,omitempty"`
	IsPremium         bool       `json:"isPremium"`
	TrialEnd          *time.Time `json:"trialEnd,omitempty"`
	CurrentPeriodEnd  *time.Time `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
	GrantedBy         string     `json:"grantedBy,omitempty"`
}
