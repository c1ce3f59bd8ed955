//go:build unit
// +build unit

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// CustomerValidationTests struct encapsulates the test data and methods for Customer validation
type CustomerValidationTests struct {
	validCustomer    Customer
	invalidCustomer  Customer
	invalidCustomer2 Customer
}

// NewCustomerValidationTests is a constructor to create a new instance of CustomerValidationTests
func NewCustomerValidationTests() *CustomerValidationTests {
	validCustomer := Customer{
		UserID:           "2b0f9a42-31c8-4c47-9a17-5f2def2a6cbe",
		StripeCustomerID: "cus_TestMapping001",
		Email:            "member@example.com",
		CreatedAt:        time.Now().UTC(),
	}

	invalidCustomer := validCustomer
	invalidCustomer.StripeCustomerID = "" // Invalid empty processor customer ID

	invalidCustomer2 := validCustomer
	invalidCustomer2.Email = "not-an-address" // Malformed email

	return &CustomerValidationTests{
		validCustomer:    validCustomer,
		invalidCustomer:  invalidCustomer,
		invalidCustomer2: invalidCustomer2,
	}
}

// TestCustomerValidation tests the Validator method for Customer
func (ct *CustomerValidationTests) TestCustomerValidation(t *testing.T) {
	// Validate the valid Customer
	err := ct.validCustomer.Validate()
	assert.Nil(t, err, "Expected no validation errors for valid Customer")

	// Validate the invalid Customer (empty processor customer ID)
	err = ct.invalidCustomer.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid Customer")
	assert.Contains(t, err.Error(), "Field: StripeCustomerID, Tag: required")

	// Validate the invalid Customer (malformed email)
	err = ct.invalidCustomer2.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid Customer")
	assert.Contains(t, err.Error(), "Field: Email, Tag: email")
}

// TestCustomerValidation is the entry point to run the Customer validation tests
func TestCustomerValidation(t *testing.T) {
	ct := NewCustomerValidationTests()

	t.Run("TestCustomerValidation", ct.TestCustomerValidation)
}
