package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/roster"
)

func rosterCmd() *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect the student roster",
	}
	cmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "Roster file (default: embedded roster)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every valid student name and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}
			return outputResult(RosterResult{
				Students:   r.Names(),
				Categories: roster.Categories,
				Total:      r.Size(),
			})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <name>",
		Short: "Check whether a name is accepted by the validator",
		Long: `Check whether a name would pass roster validation.

The match the gateway performs is exact; check suggests the exact spelling
when the name differs only in case or spacing.

Examples:
  portalctl roster check "ACHEUK Achraf"
  portalctl roster check "acheuk achraf"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}

			name := args[0]
			result := RosterCheckResult{Name: name, Valid: r.ContainsStudent(name)}
			if !result.Valid {
				if s, ok := r.FindStudent(name); ok {
					result.Suggestion = s.FullName()
				}
			}
			if err := outputResult(result); err != nil {
				return err
			}
			if !result.Valid && result.Suggestion == "" {
				return fmt.Errorf("%q is not on the roster", name)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(checkCmd)
	return cmd
}
