package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/gateway"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	stripe "github.com/stripe/stripe-go/v79"
)

// Stripe event types this service acts on. Everything else is recorded
// and skipped.
const (
	eventCheckoutSessionCompleted = "checkout.session.completed"
	eventSubscriptionCreated      = "customer.subscription.created"
	eventSubscriptionUpdated      = "customer.subscription.updated"
	eventSubscriptionDeleted      = "customer.subscription.deleted"
	eventInvoicePaid              = "invoice.paid"
	eventInvoicePaymentFailed     = "invoice.payment_failed"
	eventCustomerCreated          = "customer.created"
	eventCustomerUpdated          = "customer.updated"
	eventPriceCreated             = "price.created"
	eventPriceUpdated             = "price.updated"
	eventProductCreated           = "product.created"
	eventProductUpdated           = "product.updated"
)

// webhookEventService implements the webhooks.Handler interface. It keeps
// the ledger and routes verified events to the billing services.
type webhookEventService struct {
	eventRepo           webhooks.EventRepository
	customerRepo        billing.CustomerRepository
	catalogRepo         billing.CatalogRepository
	subscriptionService billing.SubscriptionService
	catalogService      billing.CatalogService
	paymentGateway      billing.PaymentGateway
	logger              logger.Logger
}

// NewWebhookEventService creates a new webhookEventService instance
func NewWebhookEventService(
	eventRepo webhooks.EventRepository,
	customerRepo billing.CustomerRepository,
	catalogRepo billing.CatalogRepository,
	subscriptionService billing.SubscriptionService,
	catalogService billing.CatalogService,
	paymentGateway billing.PaymentGateway,
	logger logger.Logger,
) (webhooks.Handler, error) {
	return &webhookEventService{
		eventRepo:           eventRepo,
		customerRepo:        customerRepo,
		catalogRepo:         catalogRepo,
		subscriptionService: subscriptionService,
		catalogService:      catalogService,
		paymentGateway:      paymentGateway,
		logger:              logger,
	}, nil
}

// HandleEvent records and dispatches one verified event. The ledger row
// keyed by the event ID makes redelivery a no-op.
func (s *webhookEventService) HandleEvent(ctx context.Context, eventID, eventType string, payload []byte) (webhooks.EventStatus, error) {
	event := &webhooks.Event{
		ID:         eventID,
		Type:       eventType,
		Status:     webhooks.EventStatusReceived,
		ReceivedAt: time.Now().UTC(),
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}
	if !created {
		s.logger.Info("Skipping replayed webhook event with id ", eventID)
		return webhooks.EventStatusSkipped, nil
	}

	status, handleErr := s.dispatch(ctx, eventType, payload)

	errMessage := ""
	if handleErr != nil {
		status = webhooks.EventStatusFailed
		errMessage = handleErr.Error()
	}
	if err := s.eventRepo.UpdateStatus(ctx, eventID, status, errMessage); err != nil {
		s.logger.Error("Failed to finalize webhook event ", eventID, ": ", err)
	}

	return status, handleErr
}

func (s *webhookEventService) dispatch(ctx context.Context, eventType string, payload []byte) (webhooks.EventStatus, error) {
	switch eventType {
	case eventCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(ctx, payload)
	case eventSubscriptionCreated, eventSubscriptionUpdated, eventSubscriptionDeleted:
		return s.handleSubscriptionChange(ctx, payload)
	case eventInvoicePaid, eventInvoicePaymentFailed:
		return s.handleInvoiceChange(ctx, payload)
	case eventCustomerCreated, eventCustomerUpdated:
		return s.handleCustomerChange(ctx, payload)
	case eventPriceCreated, eventPriceUpdated:
		return s.handlePriceChange(ctx, payload)
	case eventProductCreated, eventProductUpdated:
		return s.handleProductChange(ctx, payload)
	default:
		s.logger.Info("Ignoring webhook event type ", eventType)
		return webhooks.EventStatusSkipped, nil
	}
}

// handleCheckoutCompleted links the auth user to the Stripe customer and
// mirrors the subscription the checkout started.
func (s *webhookEventService) handleCheckoutCompleted(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	userID := session.ClientReferenceID
	if userID == "" {
		return webhooks.EventStatusFailed, fmt.Errorf("checkout session %s carries no client reference", session.ID)
	}
	if session.Customer == nil {
		return webhooks.EventStatusFailed, fmt.Errorf("checkout session %s carries no customer", session.ID)
	}

	email := ""
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}

	customer := &billing.Customer{
		UserID:           userID,
		StripeCustomerID: session.Customer.ID,
		Email:            email,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	// The subscription arrives in the payload as a bare ID. Fetching the
	// full object here closes the race with the subscription.created
	// event, which may land before or after this one.
	if session.Subscription != nil {
		subscription, err := s.paymentGateway.GetSubscription(ctx, session.Subscription.ID)
		if err != nil {
			return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
		}
		if subscription.UserID == "" {
			subscription.UserID = userID
		}
		if err := s.mirrorSubscription(ctx, subscription); err != nil {
			return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
		}
	}

	s.logger.Info("Linked user ", userID, " to Stripe customer ", session.Customer.ID)
	return webhooks.EventStatusProcessed, nil
}

// handleSubscriptionChange mirrors a created, updated or deleted
// subscription.
func (s *webhookEventService) handleSubscriptionChange(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(payload, &sub); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode subscription: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		if sub.Customer == nil {
			return webhooks.EventStatusFailed, fmt.Errorf("subscription %s carries no customer", sub.ID)
		}
		customer, err := s.customerRepo.GetByStripeID(ctx, sub.Customer.ID)
		if err != nil {
			if errors.Is(err, billing.ErrCustomerNotFound) {
				// No mapping yet; checkout.session.completed creates it
				// and mirrors the subscription itself.
				s.logger.Warn("No customer mapping for Stripe customer ", sub.Customer.ID, ", deferring subscription ", sub.ID)
				return webhooks.EventStatusSkipped, nil
			}
			return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
		}
		userID = customer.UserID
	}

	if err := s.mirrorSubscription(ctx, gateway.SubscriptionFromStripe(&sub, userID)); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	return webhooks.EventStatusProcessed, nil
}

// handleInvoiceChange re-syncs the subscription an invoice belongs to.
// Payment failures flip the subscription to past_due on the Stripe side,
// so the fresh fetch carries the effective status.
func (s *webhookEventService) handleInvoiceChange(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(payload, &invoice); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode invoice: %w", err)
	}

	if invoice.Subscription == nil {
		// One-off invoices have no bearing on membership.
		return webhooks.EventStatusSkipped, nil
	}

	subscription, err := s.paymentGateway.GetSubscription(ctx, invoice.Subscription.ID)
	if err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	if subscription.UserID == "" {
		customer, err := s.customerRepo.GetByStripeID(ctx, subscription.CustomerID)
		if err != nil {
			if errors.Is(err, billing.ErrCustomerNotFound) {
				s.logger.Warn("No customer mapping for Stripe customer ", subscription.CustomerID, ", deferring invoice for subscription ", subscription.ID)
				return webhooks.EventStatusSkipped, nil
			}
			return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
		}
		subscription.UserID = customer.UserID
	}

	if err := s.mirrorSubscription(ctx, subscription); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	return webhooks.EventStatusProcessed, nil
}

// handleCustomerChange keeps the customer mapping's email current. Events
// for customers created outside checkout have no user to attach to and
// are skipped.
func (s *webhookEventService) handleCustomerChange(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var customer stripe.Customer
	if err := json.Unmarshal(payload, &customer); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode customer: %w", err)
	}

	userID := customer.Metadata["user_id"]
	if userID == "" {
		existing, err := s.customerRepo.GetByStripeID(ctx, customer.ID)
		if err != nil {
			if errors.Is(err, billing.ErrCustomerNotFound) {
				s.logger.Info("Ignoring unmapped Stripe customer ", customer.ID)
				return webhooks.EventStatusSkipped, nil
			}
			return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
		}
		userID = existing.UserID
	}

	mapping := gateway.CustomerFromStripe(&customer, userID)
	if err := s.customerRepo.Upsert(ctx, mapping); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	return webhooks.EventStatusProcessed, nil
}

// handlePriceChange mirrors a created or updated price.
func (s *webhookEventService) handlePriceChange(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var price stripe.Price
	if err := json.Unmarshal(payload, &price); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode price: %w", err)
	}

	if err := s.catalogRepo.UpsertPrice(ctx, gateway.PriceFromStripe(&price)); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	return webhooks.EventStatusProcessed, nil
}

// handleProductChange mirrors a created or updated product.
func (s *webhookEventService) handleProductChange(ctx context.Context, payload []byte) (webhooks.EventStatus, error) {
	var product stripe.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("failed to decode product: %w", err)
	}

	if err := s.catalogRepo.UpsertProduct(ctx, gateway.ProductFromStripe(&product)); err != nil {
		return webhooks.EventStatusFailed, fmt.Errorf("%w", err)
	}

	return webhooks.EventStatusProcessed, nil
}

// mirrorSubscription makes sure the price is mirrored before the
// subscription upsert so tier resolution never dangles.
func (s *webhookEventService) mirrorSubscription(ctx context.Context, subscription *billing.Subscription) error {
	if subscription.PriceID != "" {
		if _, err := s.catalogService.EnsurePrice(ctx, subscription.PriceID); err != nil {
			s.logger.Warn("Failed to mirror price ", subscription.PriceID, ": ", err)
		}
	}

	return s.subscriptionService.Upsert(ctx, subscription)
}
