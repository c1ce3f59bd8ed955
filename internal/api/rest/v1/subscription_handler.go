package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// SubscriptionHandler defines the interface for handling subscription operations
type SubscriptionHandler interface {
	ListOwn(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Sync(ctx *gin.Context)
	GetOwnEntitlements(ctx *gin.Context)
}

// subscriptionHandler struct holds the services
type subscriptionHandler struct {
	subscriptionService billing.SubscriptionService
	entitlementService  billing.EntitlementService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService billing.SubscriptionService, entitlementService billing.EntitlementService) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
		entitlementService:  entitlementService,
	}
}

// ListOwn handles the GET request to list the caller's subscriptions
// @Summary List the authenticated user's subscriptions
// @Description Fetch the caller's subscription mirrors, optionally filtered by status, with pagination and sorting options.
// @Tags Subscription
// @Accept json
// @Produce json
// @Param status query string false "Subscription status"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /subscriptions [get]
func (handler *subscriptionHandler) ListOwn(ctx *gin.Context) {
	query := billing.NewSubscriptionQuery()
	query.UserID = CurrentUserID(ctx)

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		if parsed, err := strconv.Atoi(limit); err == nil {
			query.Limit = parsed
		}
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		if parsed, err := strconv.Atoi(offset); err == nil {
			query.Offset = parsed
		}
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	subscriptions, err := handler.subscriptionService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var listResponse = []SubscriptionResponse{}
	for _, subscription := range subscriptions {
		listResponse = append(listResponse, NewSubscriptionResponse(subscription))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve one subscription by ID
// @Summary Retrieve a subscription by ID
// @Description Fetch one of the caller's subscription mirrors by ID. Subscriptions owned by other users are reported as not found.
// @Tags Subscription
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} SubscriptionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /subscriptions/{id} [get]
func (handler *subscriptionHandler) GetByID(ctx *gin.Context) {
	subscriptionID := ctx.Param("id")

	subscription, err := handler.subscriptionService.GetForUser(ctx, CurrentUserID(ctx), subscriptionID)
	if err != nil {
		if errors.Is(err, billing.ErrSubscriptionNotFound) {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("subscription with id %s not found", subscriptionID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error retrieving subscription: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, NewSubscriptionResponse(subscription))
}

// Sync handles the POST request to re-pull the caller's subscriptions
// @Summary Re-sync the caller's subscriptions from the payment processor
// @Description Fetch the caller's subscriptions from the payment processor and refresh the local mirrors. Useful when a webhook was missed.
// @Tags Subscription
// @Accept json
// @Produce json
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /subscriptions/sync [post]
func (handler *subscriptionHandler) Sync(ctx *gin.Context) {
	synced, err := handler.subscriptionService.SyncFromGateway(ctx, CurrentUserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error syncing subscriptions: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("synced %d subscriptions", synced)
	ctx.JSON(http.StatusOK, infoResponse)
}

// GetOwnEntitlements handles the GET request for the caller's entitlements
// @Summary Retrieve the authenticated user's entitlements
// @Description Resolve the caller's tier from their active subscription and return the feature limits that tier grants.
// @Tags Subscription
// @Accept json
// @Produce json
// @Success 200 {object} EntitlementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /entitlements/me [get]
func (handler *subscriptionHandler) GetOwnEntitlements(ctx *gin.Context) {
	entitlements, err := handler.entitlementService.EntitlementsForUser(ctx, CurrentUserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error resolving entitlements: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, NewEntitlementsResponse(entitlements))
}
