package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type eventRow struct {
	Type     string `json:"type"`
	Handlers int    `json:"handlers"`
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List event types and their handler counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := container.Bus.HandlerCounts()
		rows := make([]eventRow, 0, len(counts))
		for _, t := range container.Bus.Types() {
			rows = append(rows, eventRow{Type: t.String(), Handlers: counts[t]})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tHANDLERS")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%d\n", r.Type, r.Handlers)
		}
		return w.Flush()
	},
}
