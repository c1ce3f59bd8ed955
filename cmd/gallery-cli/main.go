// Package main is the entry point for the gallery-cli application.
// It initializes the root command and registers the waitlist and billing
// sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/Hempp/street-art-gallery/cmd/gallery-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "gallery-cli",
		Short: "Operations CLI for the gallery backend",
		Long: `gallery-cli is a command-line tool for operating the gallery backend.
It manages the launch waitlist and the subscription billing mirrors.

Configuration is read from the file named by the CONFIG_PATH environment
variable (defaults to configs/rest-app.yaml). Commands that talk to the
payment processor additionally need valid Stripe credentials configured.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register waitlist commands
	if err := commands.InitWaitlistCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize waitlist commands: %w", err)
	}

	// Register billing commands
	if err := commands.InitBillingCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize billing commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
