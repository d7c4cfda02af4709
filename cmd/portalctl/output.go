package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// RosterResult is the output of roster list.
type RosterResult struct {
	Students   []string `json:"students"`
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

// RosterCheckResult is the output of roster check.
type RosterCheckResult struct {
	Name       string `json:"name"`
	Valid      bool   `json:"valid"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SendResult is the output of send.
type SendResult struct {
	Status   int             `json:"status"`
	Response json.RawMessage `json:"response"`
}

// StatusResult is the output of status.
type StatusResult struct {
	Gateway string `json:"gateway"`
	Healthy bool   `json:"healthy"`
	Stats   struct {
		TrackedClients  int    `json:"trackedClients"`
		TrackedStudents int    `json:"trackedStudents"`
		Sender          string `json:"sender"`
	} `json:"stats"`
	Error string `json:"error,omitempty"`
}

// outputResult renders a result in the selected output format.
func outputResult(result any) error {
	switch outputFmt {
	case "json":
		return outputJSON(result)
	case "table":
		return outputTable(result)
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", outputFmt)
	}
}

func outputJSON(result any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func outputTable(result any) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case RosterResult:
		fmt.Fprintln(w, "STUDENT")
		for _, name := range r.Students {
			fmt.Fprintln(w, name)
		}
		fmt.Fprintf(w, "\nCATEGORY\n")
		for _, c := range r.Categories {
			fmt.Fprintln(w, c)
		}
		fmt.Fprintf(w, "\n%d students, %d categories\n", r.Total, len(r.Categories))

	case RosterCheckResult:
		fmt.Fprintf(w, "NAME\tVALID\tSUGGESTION\n")
		fmt.Fprintf(w, "%s\t%v\t%s\n", r.Name, r.Valid, r.Suggestion)

	case SendResult:
		fmt.Fprintf(w, "HTTP %d\n%s\n", r.Status, string(r.Response))

	case StatusResult:
		fmt.Fprintf(w, "GATEWAY\tHEALTHY\tCLIENTS\tSTUDENTS\tSENDER\n")
		fmt.Fprintf(w, "%s\t%v\t%d\t%d\t%s\n",
			r.Gateway, r.Healthy,
			r.Stats.TrackedClients, r.Stats.TrackedStudents, r.Stats.Sender)
		if r.Error != "" {
			fmt.Fprintf(w, "\nerror: %s\n", r.Error)
		}

	default:
		// Fall back to JSON for anything without a table layout.
		return outputJSON(result)
	}
	return nil
}
