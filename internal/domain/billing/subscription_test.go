//go:build unit
// +build unit

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// SubscriptionValidationTests struct encapsulates the test data and methods for Subscription validation
type SubscriptionValidationTests struct {
	validSubscription    Subscription
	invalidSubscription  Subscription
	invalidSubscription2 Subscription
}

// NewSubscriptionValidationTests is a constructor to create a new instance of SubscriptionValidationTests
func NewSubscriptionValidationTests() *SubscriptionValidationTests {
	now := time.Now().UTC()

	validSubscription := Subscription{
		ID:                 "sub_1QxTestMirror001",
		UserID:             "2b0f9a42-31c8-4c47-9a17-5f2def2a6cbe",
		CustomerID:         "cus_TestMirror001",
		Status:             SubscriptionStatusActive,
		PriceID:            "price_premium_monthly",
		Quantity:           1,
		Created:            now,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}

	invalidSubscription := validSubscription
	invalidSubscription.UserID = "not-a-uuid" // Invalid user ID

	invalidSubscription2 := validSubscription
	invalidSubscription2.Status = "suspended" // Unknown lifecycle state

	return &SubscriptionValidationTests{
		validSubscription:    validSubscription,
		invalidSubscription:  invalidSubscription,
		invalidSubscription2: invalidSubscription2,
	}
}

// TestSubscriptionValidation tests the Validator method for Subscription
func (st *SubscriptionValidationTests) TestSubscriptionValidation(t *testing.T) {
	// Validate the valid Subscription
	err := st.validSubscription.Validate()
	assert.Nil(t, err, "Expected no validation errors for valid Subscription")

	// Validate the invalid Subscription (malformed user ID)
	err = st.invalidSubscription.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid Subscription")
	assert.Contains(t, err.Error(), "Field: UserID, Tag: uuid4")

	// Validate the invalid Subscription (unknown status)
	err = st.invalidSubscription2.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid Subscription")
	assert.Contains(t, err.Error(), "Field: Status, Tag: oneof")
}

// TestSubscriptionValidation is the entry point to run the Subscription validation tests
func TestSubscriptionValidation(t *testing.T) {
	st := NewSubscriptionValidationTests()

	t.Run("TestSubscriptionValidation", st.TestSubscriptionValidation)
}

func TestSubscriptionIsActive(t *testing.T) {
	subscription := NewSubscriptionValidationTests().validSubscription

	subscription.Status = SubscriptionStatusActive
	assert.True(t, subscription.IsActive())

	subscription.Status = SubscriptionStatusTrialing
	assert.True(t, subscription.IsActive(), "Trialing subscriptions grant their tier")

	subscription.Status = SubscriptionStatusCanceled
	assert.False(t, subscription.IsActive())

	subscription.Status = SubscriptionStatusPastDue
	assert.False(t, subscription.IsActive())

	subscription.Status = SubscriptionStatusUnpaid
	assert.False(t, subscription.IsActive())
}

func TestSubscriptionQueryValidation(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		query := NewSubscriptionQuery()

		assert.Nil(t, query.Validate())
		assert.Equal(t, 100, query.Limit)
		assert.Equal(t, "created", query.SortBy)
		assert.Equal(t, "desc", query.SortOrder)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		query := NewSubscriptionQuery()
		query.Status = "suspended"

		err := query.Validate()
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Field: Status, Tag: oneof")
	})

	t.Run("UnknownSortColumn", func(t *testing.T) {
		query := NewSubscriptionQuery()
		query.SortBy = "price_id"

		err := query.Validate()
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Field: SortBy, Tag: oneof")
	})

	t.Run("LimitOverMaximum", func(t *testing.T) {
		query := NewSubscriptionQuery()
		query.Limit = 5000

		err := query.Validate()
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Field: Limit, Tag: max")
	})
}
