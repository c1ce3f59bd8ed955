package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// CatalogHandler defines the interface for handling catalog operations
type CatalogHandler interface {
	ListTiers(ctx *gin.Context)
	Sync(ctx *gin.Context)
}

// catalogHandler struct holds the services
type catalogHandler struct {
	catalogService billing.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService billing.CatalogService) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
	}
}

// ListTiers handles the GET request for the pricing page tier offerings
// @Summary List purchasable tier offerings
// @Description Fetch the purchasable subscription tiers with their prices and the feature limits each tier grants, ordered by amount.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {array} TierOfferingResponse
// @Failure 400 {object} ErrorResponse
// @Router /catalog/tiers [get]
func (handler *catalogHandler) ListTiers(ctx *gin.Context) {
	offerings, err := handler.catalogService.ListTiers(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error listing tiers: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var listResponse = []TierOfferingResponse{}
	for _, offering := range offerings {
		offeringResponse := TierOfferingResponse{
			Tier:         string(offering.Tier),
			PriceID:      offering.Price.ID,
			Currency:     offering.Price.Currency,
			UnitAmount:   offering.Price.UnitAmount,
			Interval:     string(offering.Price.Interval),
			Entitlements: billing.EntitlementsForTier(offering.Tier),
		}
		if offering.Product != nil {
			offeringResponse.ProductName = offering.Product.Name
			offeringResponse.Description = offering.Product.Description
		}
		listResponse = append(listResponse, offeringResponse)
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// Sync handles the POST request to refresh the catalog mirrors
// @Summary Re-sync the product and price catalog from the payment processor
// @Description Pull all active products and prices from the payment processor into the local mirrors. Requires the service role.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /catalog/sync [post]
func (handler *catalogHandler) Sync(ctx *gin.Context) {
	products, prices, err := handler.catalogService.SyncCatalog(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error syncing catalog: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("synced %d products and %d prices", products, prices)
	ctx.JSON(http.StatusOK, infoResponse)
}
