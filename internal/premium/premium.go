package premium

import (
	"net/url"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// ResolvePremium merges the session user's premium flag with the
// independently fetched subscription record. The user record wins when
// present (it reflects the latest login or refresh snapshot); the fetched
// record is the fallback; absent both, not premium.
func ResolvePremium(user *model.User, status *model.SubscriptionStatus) bool {
	if user != nil {
		return user.IsPremium
	}
	if status != nil {
		return status.IsPremium
	}
	return false
}

// Banner is the state of the checkout-result banner on the premium page.
type Banner int

const (
	BannerNone Banner = iota
	BannerSuccess
	BannerCanceled
)

// BannerFromQuery derives the banner from the mutually exclusive
// success/canceled query flags the payment provider redirects back with.
func BannerFromQuery(q url.Values) Banner {
	if q.Get("success") != "" {
		return BannerSuccess
	}
	if q.Get("canceled") != "" {
		return BannerCanceled
	}
	return BannerNone
}

// Label is a display label/color pair for a subscription status.
type Label struct {
	Text  string
	Color string
}

// StatusLabel maps a subscription status to its display label. An
// unrecognized status shows the raw value; an empty one shows "Unknown".
func StatusLabel(status string) Label {
	switch status {
	case model.SubStatusActive:
		return Label{Text: "Active", Color: "green"}
	case model.SubStatusTrialing:
		return Label{Text: "Trial", Color: "blue"}
	case model.SubStatusPastDue:
		return Label{Text: "Past due", Color: "orange"}
	case model.SubStatusCanceled:
		return Label{Text: "Canceled", Color: "gray"}
	case model.SubStatusAdminGranted:
		return Label{Text: "Granted", Color: "purple"}
	case "", model.SubStatusUnknown:
		return Label{Text: "Unknown", Color: "gray"}
	default:
		return Label{Text: status, Color: "gray"}
	}
}

// ValidPlan reports whether the plan is one the checkout flow accepts.
func ValidPlan(plan string) bool {
	return plan == model.PlanMonthly || plan == model.PlanYearly
}
