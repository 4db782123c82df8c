// Package main запускает бота управления код-джемом.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version задаётся через ldflags при сборке.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "code-jam-service",
	Short: "Code Jam team lifecycle manager",
	Long: `code-jam-service creates Code Jam teams from a roster, keeps team membership
in sync between the chat server and the management API, and tears everything
down when the jam ends.

All settings come from the environment (or a .env file) and an optional TOML
file pointed to by CODEJAM_CONFIG.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, registerCmd, parseRosterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
