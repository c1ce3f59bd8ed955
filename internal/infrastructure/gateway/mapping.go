package gateway

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"

	stripe "github.com/stripe/stripe-go/v79"
)

// TierForPrice resolves the membership tier a Stripe price grants. The
// price metadata wins when it names a valid tier; otherwise the amount
// decides, and unknown amounts fall back to the free tier.
func TierForPrice(price *stripe.Price) billing.Tier {
	if price == nil {
		return billing.TierFree
	}
	if tag, ok := price.Metadata[billing.PriceTierMetadataKey]; ok {
		tier := billing.Tier(tag)
		if billing.ValidTier(tier) {
			return tier
		}
	}
	return billing.TierForAmount(price.UnitAmount)
}

// SubscriptionFromStripe maps a Stripe subscription to the local mirror.
// The user ID is supplied by the caller since Stripe only knows the
// customer; resolve it from the subscription metadata or the customer
// mapping before calling.
func SubscriptionFromStripe(sub *stripe.Subscription, userID string) *billing.Subscription {
	mirror := &billing.Subscription{
		ID:                 sub.ID,
		UserID:             userID,
		Status:             billing.SubscriptionStatus(sub.Status),
		Quantity:           1,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		Created:            time.Unix(sub.Created, 0).UTC(),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		EndedAt:            unixTime(sub.EndedAt),
		CancelAt:           unixTime(sub.CancelAt),
		CanceledAt:         unixTime(sub.CanceledAt),
		TrialStart:         unixTime(sub.TrialStart),
		TrialEnd:           unixTime(sub.TrialEnd),
		Metadata:           sub.Metadata,
	}

	if sub.Customer != nil {
		mirror.CustomerID = sub.Customer.ID
	}

	// Single-plan subscriptions carry one item; the first one wins.
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			mirror.PriceID = item.Price.ID
		}
		if item.Quantity > 0 {
			mirror.Quantity = item.Quantity
		}
	}

	return mirror
}

// PriceFromStripe maps a Stripe price to the local mirror, resolving the
// tier it grants.
func PriceFromStripe(price *stripe.Price) *billing.Price {
	mirror := &billing.Price{
		ID:         price.ID,
		Active:     price.Active,
		Currency:   string(price.Currency),
		UnitAmount: price.UnitAmount,
		Type:       billing.PriceType(price.Type),
		Tier:       TierForPrice(price),
		Metadata:   price.Metadata,
	}

	if price.Product != nil {
		mirror.ProductID = price.Product.ID
	}

	if price.Recurring != nil {
		mirror.Interval = billing.PriceInterval(price.Recurring.Interval)
		mirror.IntervalCount = price.Recurring.IntervalCount
		mirror.TrialPeriodDays = price.Recurring.TrialPeriodDays
	}

	return mirror
}

// ProductFromStripe maps a Stripe product to the local mirror.
func ProductFromStripe(product *stripe.Product) *billing.Product {
	mirror := &billing.Product{
		ID:          product.ID,
		Active:      product.Active,
		Name:        product.Name,
		Description: product.Description,
		Metadata:    product.Metadata,
	}

	if len(product.Images) > 0 {
		mirror.Image = product.Images[0]
	}

	return mirror
}

// CustomerFromStripe maps a Stripe customer to the local user mapping.
func CustomerFromStripe(customer *stripe.Customer, userID string) *billing.Customer {
	return &billing.Customer{
		UserID:           userID,
		StripeCustomerID: customer.ID,
		Email:            customer.Email,
		CreatedAt:        time.Unix(customer.Created, 0).UTC(),
	}
}

// unixTime converts an optional Unix timestamp, treating zero as unset.
func unixTime(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
