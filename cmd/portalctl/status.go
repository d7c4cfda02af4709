package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show gateway health and guard occupancy",
		Long: `Probe a running gateway's health endpoint and status surface.

Examples:
  portalctl status
  portalctl status --gateway https://reclamation.univ-annaba.dz -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(gatewayURL)
		},
	}
}

func runStatus(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	result := StatusResult{Gateway: baseURL}

	resp, err := client.Get(baseURL + "/healthz")
	if err != nil {
		result.Healthy = false
		result.Error = err.Error()
		return outputAndFail(result)
	}
	resp.Body.Close()
	result.Healthy = resp.StatusCode == http.StatusOK

	if resp, err = client.Get(baseURL + "/api/status"); err == nil {
		defer resp.Body.Close()
		if decodeErr := json.NewDecoder(resp.Body).Decode(&result.Stats); decodeErr != nil {
			result.Error = decodeErr.Error()
		}
	}

	if result.Healthy {
		return outputResult(result)
	}
	return outputAndFail(result)
}

func outputAndFail(result StatusResult) error {
	if err := outputResult(result); err != nil {
		return err
	}
	return fmt.Errorf("gateway at %s is not healthy", result.Gateway)
}
