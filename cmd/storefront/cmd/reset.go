package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indian-sparrow/storefront/internal/config"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove persisted cart and session state",
	Long: `Reset the storefront by removing its state files.

This clears the persisted cart and the signed-in session. The catalog is
never stored locally, so nothing else is affected.

Examples:
  # Reset with interactive confirmation
  storefront reset

  # Reset without prompting
  storefront reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The file backend keeps a backup next to the state file.
	targets := []string{cfg.Storage.Path}
	if cfg.Storage.Backend == "file" {
		targets = append(targets, cfg.Storage.Path+".bak")
	}

	var existing []string
	for _, path := range targets {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}

	if len(existing) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to reset — no state files found.")
		return nil
	}

	fmt.Fprintln(os.Stderr, "The following will be removed:")
	for _, path := range existing {
		fmt.Fprintf(os.Stderr, "  - %s\n", path)
	}

	if !resetForce {
		fmt.Fprint(os.Stderr, "\nProceed? [y/N] ")
		var answer string
		fmt.Scanln(&answer) //nolint:errcheck // interactive prompt, error irrelevant
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	var failures int
	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR removing %s: %v\n", path, err)
			failures++
		} else {
			fmt.Fprintf(os.Stderr, "  Removed %s\n", path)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) could not be removed", failures)
	}

	fmt.Fprintln(os.Stderr, "\nReset complete. The storefront will start fresh on next launch.")
	return nil
}
