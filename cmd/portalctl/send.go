package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

func sendCmd() *cobra.Command {
	var (
		student  string
		category string
		message  string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a test reclamation to a running gateway",
		Long: `Submit a reclamation through the gateway's public endpoint.

Useful for verifying the full pipeline (validation, rate limiting, Telegram
delivery) after deploying configuration changes.

Examples:
  portalctl send --student "ACHEUK Achraf" --category "Technical Support" \
    --message "Smoke test: please ignore this reclamation."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(gatewayURL, types.Submission{
				StudentName: student,
				Category:    category,
				Reclamation: message,
				Email:       email,
			})
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student name, exactly as on the roster")
	cmd.Flags().StringVar(&category, "category", "Other", "Complaint category")
	cmd.Flags().StringVar(&message, "message", "", "Reclamation body")
	cmd.Flags().StringVar(&email, "email", "", "Contact email (optional)")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runSend(baseURL string, submission types.Submission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(baseURL+"/api/submissions", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	var result SendResult
	result.Status = resp.StatusCode
	if err := json.NewDecoder(resp.Body).Decode(&result.Response); err != nil {
		return fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if err := outputResult(result); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway rejected the submission with HTTP %d", resp.StatusCode)
	}
	return nil
}
