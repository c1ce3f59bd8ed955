package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
)

// SetupRoutes sets up all the API routes for version 1. Public routes are
// rate limited per client IP, member routes require a bearer token and
// admin routes additionally require the service role. The webhook route is
// exempt from rate limiting so processor retries are never throttled.
// The returned rate limiter must be stopped on shutdown.
func SetupRoutes(r *gin.Engine,
	waitlistService waitlist.Service,
	checkoutService billing.CheckoutService,
	subscriptionService billing.SubscriptionService,
	catalogService billing.CatalogService,
	entitlementService billing.EntitlementService,
	profileService profiles.Service,
	webhookEventHandler webhooks.Handler,
	authSettings *config.AuthSettings,
	stripeSettings *config.StripeSettings,
	rateLimitSettings *config.RateLimitSettings) *RateLimitMiddleware {

	v1 := r.Group(BasePath) // lookup in version file

	rateLimiter := NewRateLimitMiddleware(rateLimitSettings)
	public := v1.Group("", rateLimiter.Handler())
	authed := v1.Group("", JWTAuthMiddleware(authSettings))
	admin := authed.Group("", RequireServiceRole())

	// Waitlist Routes
	waitlistHandler := NewWaitlistHandler(waitlistService)
	public.POST("/waitlist", waitlistHandler.Signup)
	public.GET("/waitlist/position", waitlistHandler.Position)
	admin.GET("/waitlist", waitlistHandler.List)
	admin.DELETE("/waitlist", waitlistHandler.Remove)

	// Catalog Routes
	catalogHandler := NewCatalogHandler(catalogService)
	public.GET("/catalog/tiers", catalogHandler.ListTiers)
	admin.POST("/catalog/sync", catalogHandler.Sync)

	// Checkout Routes
	checkoutHandler := NewCheckoutHandler(checkoutService)
	authed.POST("/checkout/sessions", checkoutHandler.CreateSession)
	authed.POST("/portal/sessions", checkoutHandler.CreatePortalSession)

	// Subscription Routes
	subscriptionHandler := NewSubscriptionHandler(subscriptionService, entitlementService)
	authed.GET("/subscriptions", subscriptionHandler.ListOwn)
	authed.GET("/subscriptions/:id", subscriptionHandler.GetByID)
	authed.POST("/subscriptions/sync", subscriptionHandler.Sync)
	authed.GET("/entitlements/me", subscriptionHandler.GetOwnEntitlements)

	// Profile Routes
	profileHandler := NewProfileHandler(profileService)
	authed.GET("/profiles/me", profileHandler.GetOwn)
	authed.PUT("/profiles/me", profileHandler.UpdateOwn)
	authed.GET("/profiles/:user_id", profileHandler.GetByUserID)

	// Webhook Routes
	webhookHandler := NewWebhookHandler(webhookEventHandler, stripeSettings)
	v1.POST("/webhooks/stripe", webhookHandler.HandleStripeEvent)

	return rateLimiter
}
