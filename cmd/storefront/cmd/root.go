// Package cmd provides the CLI commands for the storefront server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indian-sparrow/storefront/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "The Indian Sparrow - storefront server",
	Long: `The Indian Sparrow storefront server.

It serves the shop pages, keeps the cart and session on disk, and hands
completed carts off to the commerce platform for payment.

Quick start:
  1. Create a config file: storefront init > storefront.yaml
  2. Set your commerce client ID in it
  3. Run: storefront start

Configuration:
  Config is loaded from storefront.yaml in the current directory,
  $HOME/.storefront/, or /etc/storefront/.

  Environment variables can override config values with the STOREFRONT_ prefix.
  Example: STOREFRONT_SERVER_HTTP_ADDR=:9090

Commands:
  start       Start the storefront server
  stop        Stop the running server
  reset       Remove persisted cart and session state
  init        Print a default configuration file
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./storefront.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
