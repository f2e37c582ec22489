package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/store"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage study locations",
}

var locationAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a place you study at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		l := &store.Location{UserID: e.user, Name: args[0]}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("long") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("long")
			if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
				return fmt.Errorf("coordinates out of range: %v, %v", lat, lng)
			}
			l.Latitude, l.Longitude = &lat, &lng
		}
		if err := e.store.Locations().Create(cmd.Context(), l); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added location %q\n", l.Name)
		return nil
	},
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		locs, err := e.store.Locations().List(cmd.Context(), e.user)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(locs) == 0 {
			fmt.Fprintln(out, "No locations yet. Add one with: flashdeck location add <name>")
			return nil
		}
		fmt.Fprintf(out, "%-30s  %s\n", "Name", "Coordinates")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, l := range locs {
			fmt.Fprintf(out, "%-30s  %s\n", l.Name, formatCoords(l))
		}
		return nil
	},
}

var locationRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a study location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Locations().Delete(cmd.Context(), e.user, args[0]); err != nil {
			return fmt.Errorf("location %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed location %q\n", args[0])
		return nil
	},
}

func formatCoords(l store.Location) string {
	if l.Latitude == nil || l.Longitude == nil {
		return "-"
	}
	return fmt.Sprintf("%.5f, %.5f", *l.Latitude, *l.Longitude)
}

func init() {
	locationAddCmd.Flags().Float64("lat", 0, "Latitude")
	locationAddCmd.Flags().Float64("long", 0, "Longitude")

	locationCmd.AddCommand(locationAddCmd)
	locationCmd.AddCommand(locationListCmd)
	locationCmd.AddCommand(locationRmCmd)
}
