package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
)

// maxWebhookBodyBytes caps webhook payload reads at 64 KiB, matching the
// limit Stripe documents for event payloads.
const maxWebhookBodyBytes = int64(65536)

// WebhookHandler defines the interface for handling payment processor webhooks
type WebhookHandler interface {
	HandleStripeEvent(ctx *gin.Context)
}

// webhookHandler struct holds the services
type webhookHandler struct {
	eventHandler  webhooks.Handler
	webhookSecret string
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(eventHandler webhooks.Handler, settings *config.StripeSettings) WebhookHandler {
	return &webhookHandler{
		eventHandler:  eventHandler,
		webhookSecret: settings.WebhookSecret,
	}
}

// HandleStripeEvent handles the POST request delivering a Stripe webhook event
// @Summary Receive a payment processor webhook event
// @Description Verify the Stripe-Signature header against the endpoint secret and dispatch the event. Unsigned or tampered deliveries are rejected. Redelivered event IDs are acknowledged without reprocessing.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe webhook signature"
// @Success 200 {object} WebhookAckResponse
// @Failure 400 {object} ErrorResponse
// @Router /webhooks/stripe [post]
func (handler *webhookHandler) HandleStripeEvent(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error reading webhook payload: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, ctx.GetHeader("Stripe-Signature"), handler.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("webhook signature verification failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	status, err := handler.eventHandler.HandleEvent(ctx, event.ID, string(event.Type), event.Data.Raw)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error handling webhook event: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ackResponse := WebhookAckResponse{
		Received: true,
		Status:   string(status),
	}

	ctx.JSON(http.StatusOK, ackResponse)
}
