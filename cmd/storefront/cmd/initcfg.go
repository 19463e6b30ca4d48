package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/indian-sparrow/storefront/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a default configuration file",
	Long: `Print a storefront.yaml with every setting at its default value.

Examples:
  # Write a starter config to the current directory
  storefront init > storefront.yaml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	cfg.SetDefaults()

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Fprintln(os.Stdout, "# The Indian Sparrow storefront configuration.")
	fmt.Fprintln(os.Stdout, "# Set commerce.client_id before starting the server.")
	os.Stdout.Write(out)
	return nil
}
