// portalctl is a CLI tool for operating the reclamation gateway.
//
// Installation:
//
//	go build -o portalctl ./cmd/portalctl
//	mv portalctl /usr/local/bin/
//
// Usage:
//
//	portalctl roster list
//	portalctl roster check "ACHEUK Achraf"
//	portalctl send --student "ACHEUK Achraf" --category "Technical Support" --message "..."
//	portalctl status --gateway http://localhost:8080
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	outputFmt  string
	gatewayURL string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portalctl",
		Short: "Operate the student reclamation gateway",
		Long: `portalctl is a CLI tool for operating the reclamation gateway.

It inspects the student roster, submits test reclamations against a running
gateway, and reports gateway health and guard occupancy.`,
		Version: version,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "http://localhost:8080", "Base URL of the gateway")

	// Add subcommands
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
