package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/stats"
	"github.com/abhisek/flashdeck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics, overall and per location",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var (
			recs []session.Record
			locs []store.Location
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			recs, err = e.store.Sessions().List(ctx, e.user)
			return err
		})
		g.Go(func() error {
			var err error
			locs, err = e.store.Locations().List(ctx, e.user)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		label, _ := cmd.Flags().GetString("location")
		results := stats.Filter(session.Results(recs), label)

		out := cmd.OutOrStdout()
		overall := stats.Aggregate(results)
		heading := "All locations"
		if label != "" {
			heading = label
		}
		fmt.Fprintln(out, heading)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "Sessions: %d   Correct: %d   Incorrect: %d   Score: %s%%\n\n",
			overall.Sessions, overall.Correct, overall.Incorrect, stats.FormatPercent(overall.Percentage))

		groups := stats.ByLocation(results)
		if label == "" {
			groups = withUnvisited(groups, locs)
		}

		fmt.Fprintf(out, "%-24s  %8s  %8s  %9s  %6s\n", "Location", "Sessions", "Correct", "Incorrect", "Score")
		for _, t := range groups {
			fmt.Fprintf(out, "%-24s  %8d  %8d  %9d  %5s%%\n",
				t.Label, t.Sessions, t.Correct, t.Incorrect, stats.FormatPercent(t.Percentage))
		}
		return nil
	},
}

// withUnvisited appends registered locations that have no sessions yet.
func withUnvisited(groups []stats.Totals, locs []store.Location) []stats.Totals {
	seen := make(map[string]bool, len(groups))
	for _, t := range groups {
		seen[t.Label] = true
	}
	for _, l := range locs {
		if !seen[l.Name] {
			groups = append(groups, stats.Totals{Label: l.Name})
		}
	}
	return groups
}

func init() {
	statsCmd.Flags().String("location", "", "Only count sessions at this location (General for untagged)")
}
