package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// CheckoutHandler defines the interface for handling checkout operations
type CheckoutHandler interface {
	CreateSession(ctx *gin.Context)
	CreatePortalSession(ctx *gin.Context)
}

// checkoutHandler struct holds the services
type checkoutHandler struct {
	checkoutService billing.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService billing.CheckoutService) CheckoutHandler {
	return &checkoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateSession handles the POST request to open a hosted checkout session
// @Summary Create a subscription checkout session
// @Description Open a hosted checkout session for the authenticated user and the given price. The response URL is where the client redirects to complete payment.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param requestBody body CheckoutSessionRequest true "Checkout Session Data"
// @Success 201 {object} CheckoutSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /checkout/sessions [post]
func (handler *checkoutHandler) CreateSession(ctx *gin.Context) {

	var request CheckoutSessionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid checkout data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	userID := CurrentUserID(ctx)
	email := CurrentUserEmail(ctx)

	session, err := handler.checkoutService.CreateSession(ctx, userID, email, request.PriceID, request.SuccessURL, request.CancelURL)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error creating checkout session: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	sessionResponse := CheckoutSessionResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}

	ctx.JSON(http.StatusCreated, sessionResponse)
}

// CreatePortalSession handles the POST request to open a billing portal session
// @Summary Create a billing portal session
// @Description Open a self-service billing portal session for the authenticated user's customer record. The user manages payment methods and cancellation there.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param requestBody body PortalSessionRequest true "Portal Session Data"
// @Success 201 {object} PortalSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /portal/sessions [post]
func (handler *checkoutHandler) CreatePortalSession(ctx *gin.Context) {

	var request PortalSessionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid portal data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(400, errorResponse)
		return
	}

	userID := CurrentUserID(ctx)

	url, err := handler.checkoutService.CreatePortalSession(ctx, userID, request.ReturnURL)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error creating portal session: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	portalResponse := PortalSessionResponse{
		URL: url,
	}

	ctx.JSON(http.StatusCreated, portalResponse)
}
