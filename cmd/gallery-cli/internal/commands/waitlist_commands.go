package commands

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// WaitlistCommandHandler encapsulates logic for operating the launch waitlist via CLI.
type WaitlistCommandHandler struct {
	waitlistService waitlist.Service
	logger          logger.Logger
}

// NewWaitlistCommandHandler initializes and returns a WaitlistCommandHandler instance with
// configured logger and waitlist service.
func NewWaitlistCommandHandler() (*WaitlistCommandHandler, error) {
	deps, err := setupDependencies()
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &WaitlistCommandHandler{
		waitlistService: deps.waitlistService,
		logger:          deps.logger,
	}, nil
}

// ListWaitlistEntriesCmd lists waitlist entries matching the given filters
func (commandHandler *WaitlistCommandHandler) ListWaitlistEntriesCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	source, err := cmd.Flags().GetString("source")
	if err != nil {
		commandHandler.logger.Error("invalid source flag ", err)
		return
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		commandHandler.logger.Error("invalid limit flag ", err)
		return
	}
	sortOrder, err := cmd.Flags().GetString("sort-order")
	if err != nil {
		commandHandler.logger.Error("invalid sort-order flag ", err)
		return
	}

	query := waitlist.NewEntryQuery()
	query.Email = email
	query.Source = source
	query.Limit = limit
	query.SortOrder = sortOrder

	entries, err := commandHandler.waitlistService.List(cmd.Context(), query)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Listed ", len(entries), " waitlist entries")
	for _, entry := range entries {
		commandHandler.logger.Info(entry.Email, " | name=", entry.Name, " | source=", entry.Source, " | created=", entry.CreatedAt.Format(time.RFC3339))
	}
}

// ShowWaitlistPositionCmd looks up the place in line for an email address
func (commandHandler *WaitlistCommandHandler) ShowWaitlistPositionCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}

	entry, position, err := commandHandler.waitlistService.Position(cmd.Context(), email)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Waitlist position for ", entry.Email, " is ", position)
}

// RemoveWaitlistEntryCmd deletes the waitlist entry for an email address
func (commandHandler *WaitlistCommandHandler) RemoveWaitlistEntryCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}

	if err := commandHandler.waitlistService.Remove(cmd.Context(), email); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Removed waitlist entry for ", email)
}

// CountWaitlistEntriesCmd reports the total number of waitlist entries
func (commandHandler *WaitlistCommandHandler) CountWaitlistEntriesCmd(cmd *cobra.Command, _ []string) {
	count, err := commandHandler.waitlistService.Count(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Waitlist has ", count, " entries")
}

// ExportWaitlistCmd writes all waitlist entries to a CSV file, oldest first
func (commandHandler *WaitlistCommandHandler) ExportWaitlistCmd(cmd *cobra.Command, _ []string) {
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}

	query := waitlist.NewEntryQuery()
	query.Limit = 1000

	var entries []*waitlist.Entry
	for {
		page, err := commandHandler.waitlistService.List(cmd.Context(), query)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		entries = append(entries, page...)
		if len(page) < query.Limit {
			break
		}
		query.Offset += query.Limit
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write([]string{"email", "name", "source", "created_at"}); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	for _, entry := range entries {
		record := []string{entry.Email, entry.Name, entry.Source, entry.CreatedAt.Format(time.RFC3339)}
		if err := writer.Write(record); err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	err = os.WriteFile(outputFilePath, buffer.Bytes(), 0600)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Exported ", len(entries), " waitlist entries to ", outputFilePath)
}

// InitWaitlistCommands registers waitlist-related commands
func InitWaitlistCommands(rootCmd *cobra.Command) error {
	handler, err := NewWaitlistCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create waitlist command handler %w", err)
	}

	var listWaitlistEntriesCmd = &cobra.Command{
		Use:   "list-waitlist-entries",
		Short: "List waitlist entries",
		Run:   handler.ListWaitlistEntriesCmd,
	}
	listWaitlistEntriesCmd.Flags().StringP("email", "", "", "Filter by email address")
	listWaitlistEntriesCmd.Flags().StringP("source", "", "", "Filter by signup source")
	listWaitlistEntriesCmd.Flags().IntP("limit", "", 100, "Maximum number of entries to list")
	listWaitlistEntriesCmd.Flags().StringP("sort-order", "", "asc", "Sort order by signup time (asc or desc)")
	rootCmd.AddCommand(listWaitlistEntriesCmd)

	var showWaitlistPositionCmd = &cobra.Command{
		Use:   "show-waitlist-position",
		Short: "Show the waitlist position for an email address",
		Run:   handler.ShowWaitlistPositionCmd,
	}
	showWaitlistPositionCmd.Flags().StringP("email", "", "", "Email address to look up")
	rootCmd.AddCommand(showWaitlistPositionCmd)

	var removeWaitlistEntryCmd = &cobra.Command{
		Use:   "remove-waitlist-entry",
		Short: "Remove the waitlist entry for an email address",
		Run:   handler.RemoveWaitlistEntryCmd,
	}
	removeWaitlistEntryCmd.Flags().StringP("email", "", "", "Email address to remove")
	rootCmd.AddCommand(removeWaitlistEntryCmd)

	var countWaitlistEntriesCmd = &cobra.Command{
		Use:   "count-waitlist-entries",
		Short: "Count the waitlist entries",
		Run:   handler.CountWaitlistEntriesCmd,
	}
	rootCmd.AddCommand(countWaitlistEntriesCmd)

	var exportWaitlistCmd = &cobra.Command{
		Use:   "export-waitlist",
		Short: "Export all waitlist entries to a CSV file",
		Run:   handler.ExportWaitlistCmd,
	}
	exportWaitlistCmd.Flags().StringP("output-file", "", "waitlist.csv", "Path to the CSV output file")
	rootCmd.AddCommand(exportWaitlistCmd)

	return nil
}
