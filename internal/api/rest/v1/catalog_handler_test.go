//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

func testTierOfferings() []*billing.TierOffering {
	return []*billing.TierOffering{
		{
			Tier: billing.TierPremium,
			Product: &billing.Product{
				ID:          "prod_premium",
				Active:      true,
				Name:        "Gallery Premium",
				Description: "More galleries and private exhibitions",
			},
			Price: &billing.Price{
				ID:         "price_premium_monthly",
				ProductID:  "prod_premium",
				Active:     true,
				Currency:   "usd",
				UnitAmount: 999,
				Type:       billing.PriceTypeRecurring,
				Interval:   billing.PriceIntervalMonth,
				Tier:       billing.TierPremium,
			},
		},
		{
			Tier: billing.TierCreator,
			Product: &billing.Product{
				ID:          "prod_creator",
				Active:      true,
				Name:        "Gallery Creator",
				Description: "Unlimited galleries and custom environments",
			},
			Price: &billing.Price{
				ID:         "price_creator_monthly",
				ProductID:  "prod_creator",
				Active:     true,
				Currency:   "usd",
				UnitAmount: 2999,
				Type:       billing.PriceTypeRecurring,
				Interval:   billing.PriceIntervalMonth,
				Tier:       billing.TierCreator,
			},
		},
	}
}

func TestCatalogHandler_ListTiers_Success(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("ListTiers", mock.Anything).
		Return(testTierOfferings(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/tiers", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTiers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "price_premium_monthly")
	assert.Contains(t, w.Body.String(), "price_creator_monthly")
	assert.Contains(t, w.Body.String(), `"unit_amount":999`)
	assert.Contains(t, w.Body.String(), `"unit_amount":2999`)
	assert.Contains(t, w.Body.String(), "Gallery Premium")
	mockCatalogService.AssertExpectations(t)
}

func TestCatalogHandler_ListTiers_IncludesEntitlements(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("ListTiers", mock.Anything).
		Return(testTierOfferings(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/tiers", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTiers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "entitlements")
	assert.Contains(t, w.Body.String(), "max_galleries")
	mockCatalogService.AssertExpectations(t)
}

func TestCatalogHandler_ListTiers_Empty(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("ListTiers", mock.Anything).
		Return([]*billing.TierOffering{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/tiers", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTiers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	mockCatalogService.AssertExpectations(t)
}

func TestCatalogHandler_ListTiers_ServiceError(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("ListTiers", mock.Anything).
		Return(nil, errors.New("database unavailable"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/tiers", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTiers(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCatalogService.AssertExpectations(t)
}

func TestCatalogHandler_Sync_Success(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("SyncCatalog", mock.Anything).
		Return(2, 4, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/catalog/sync", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Sync(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "synced 2 products and 4 prices")
	mockCatalogService.AssertExpectations(t)
}

func TestCatalogHandler_Sync_GatewayError(t *testing.T) {
	mockCatalogService := new(MockCatalogService)

	handler := NewCatalogHandler(mockCatalogService)

	mockCatalogService.
		On("SyncCatalog", mock.Anything).
		Return(0, 0, errors.New("gateway unreachable"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/catalog/sync", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Sync(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCatalogService.AssertExpectations(t)
}
