package billing

import (
	"errors"
)

// Sentinel errors for billing lookups. Repositories wrap these so callers
// can branch on errors.Is without parsing messages.
var (
	ErrCustomerNotFound     = errors.New("customer mapping not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPriceNotFound        = errors.New("price not found")
	ErrProductNotFound      = errors.New("product not found")
)
