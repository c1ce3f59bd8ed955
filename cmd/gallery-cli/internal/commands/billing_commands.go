package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// BillingCommandHandler encapsulates logic for operating the billing mirrors via CLI.
type BillingCommandHandler struct {
	subscriptionService billing.SubscriptionService
	catalogService      billing.CatalogService
	entitlementService  billing.EntitlementService
	logger              logger.Logger
}

// NewBillingCommandHandler initializes and returns a BillingCommandHandler instance with
// configured logger and billing services.
func NewBillingCommandHandler() (*BillingCommandHandler, error) {
	deps, err := setupDependencies()
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &BillingCommandHandler{
		subscriptionService: deps.subscriptionService,
		catalogService:      deps.catalogService,
		entitlementService:  deps.entitlementService,
		logger:              deps.logger,
	}, nil
}

// SyncCatalogCmd pulls active products and prices from the payment processor into the mirrors
func (commandHandler *BillingCommandHandler) SyncCatalogCmd(cmd *cobra.Command, _ []string) {
	products, prices, err := commandHandler.catalogService.SyncCatalog(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Synced ", products, " products and ", prices, " prices from the payment processor")
}

// ListTiersCmd lists the purchasable tier offerings from the catalog mirrors
func (commandHandler *BillingCommandHandler) ListTiersCmd(cmd *cobra.Command, _ []string) {
	offerings, err := commandHandler.catalogService.ListTiers(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Listed ", len(offerings), " tier offerings")
	for _, offering := range offerings {
		amount := fmt.Sprintf("%.2f %s", float64(offering.Price.UnitAmount)/100, strings.ToUpper(offering.Price.Currency))
		commandHandler.logger.Info(offering.Tier, " | ", amount, " per ", offering.Price.Interval, " | price=", offering.Price.ID)
	}
}

// ListSubscriptionsCmd lists subscription mirrors matching the given filters
func (commandHandler *BillingCommandHandler) ListSubscriptionsCmd(cmd *cobra.Command, _ []string) {
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		commandHandler.logger.Error("invalid status flag ", err)
		return
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		commandHandler.logger.Error("invalid limit flag ", err)
		return
	}

	query := billing.NewSubscriptionQuery()
	query.UserID = userID
	query.Status = status
	query.Limit = limit

	subscriptions, err := commandHandler.subscriptionService.List(cmd.Context(), query)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Listed ", len(subscriptions), " subscriptions")
	for _, subscription := range subscriptions {
		commandHandler.logger.Info(subscription.ID, " | user=", subscription.UserID, " | status=", subscription.Status, " | price=", subscription.PriceID, " | period_end=", subscription.CurrentPeriodEnd.Format(time.RFC3339))
	}
}

// SyncSubscriptionsCmd re-fetches a user's subscriptions from the payment processor
func (commandHandler *BillingCommandHandler) SyncSubscriptionsCmd(cmd *cobra.Command, _ []string) {
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}

	synced, err := commandHandler.subscriptionService.SyncFromGateway(cmd.Context(), userID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Synced ", synced, " subscriptions for user ", userID)
}

// ShowEntitlementsCmd resolves a user's tier and prints the feature limits it grants
func (commandHandler *BillingCommandHandler) ShowEntitlementsCmd(cmd *cobra.Command, _ []string) {
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}

	entitlements, err := commandHandler.entitlementService.EntitlementsForUser(cmd.Context(), userID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("User ", userID, " is on the ", entitlements.Tier, " tier")
	commandHandler.logger.Info("Max galleries: ", entitlements.MaxGalleries)
	commandHandler.logger.Info("Max artworks per gallery: ", entitlements.MaxArtworksPerGallery)
	commandHandler.logger.Info("Upload limit (MB): ", entitlements.UploadLimitMB)
	commandHandler.logger.Info("Private galleries: ", entitlements.PrivateGalleries)
	commandHandler.logger.Info("Custom environments: ", entitlements.CustomEnvironments)
	commandHandler.logger.Info("Priority events: ", entitlements.PriorityEvents)
}

// InitBillingCommands registers billing-related commands
func InitBillingCommands(rootCmd *cobra.Command) error {
	handler, err := NewBillingCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create billing command handler %w", err)
	}

	var syncCatalogCmd = &cobra.Command{
		Use:   "sync-catalog",
		Short: "Sync product and price mirrors from the payment processor",
		Run:   handler.SyncCatalogCmd,
	}
	rootCmd.AddCommand(syncCatalogCmd)

	var listTiersCmd = &cobra.Command{
		Use:   "list-tiers",
		Short: "List the purchasable tier offerings",
		Run:   handler.ListTiersCmd,
	}
	rootCmd.AddCommand(listTiersCmd)

	var listSubscriptionsCmd = &cobra.Command{
		Use:   "list-subscriptions",
		Short: "List subscription mirrors",
		Run:   handler.ListSubscriptionsCmd,
	}
	listSubscriptionsCmd.Flags().StringP("user-id", "", "", "Filter by owning user ID")
	listSubscriptionsCmd.Flags().StringP("status", "", "", "Filter by subscription status")
	listSubscriptionsCmd.Flags().IntP("limit", "", 100, "Maximum number of subscriptions to list")
	rootCmd.AddCommand(listSubscriptionsCmd)

	var syncSubscriptionsCmd = &cobra.Command{
		Use:   "sync-subscriptions",
		Short: "Re-fetch a user's subscriptions from the payment processor",
		Run:   handler.SyncSubscriptionsCmd,
	}
	syncSubscriptionsCmd.Flags().StringP("user-id", "", "", "User whose subscriptions to sync")
	rootCmd.AddCommand(syncSubscriptionsCmd)

	var showEntitlementsCmd = &cobra.Command{
		Use:   "show-entitlements",
		Short: "Show the tier and feature limits for a user",
		Run:   handler.ShowEntitlementsCmd,
	}
	showEntitlementsCmd.Flags().StringP("user-id", "", "", "User whose entitlements to resolve")
	rootCmd.AddCommand(showEntitlementsCmd)

	return nil
}
