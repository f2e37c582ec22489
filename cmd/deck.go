package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/card"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks",
}

var deckAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("deck name is required")
		}
		desc, _ := cmd.Flags().GetString("description")
		d := &card.Deck{UserID: e.user, Name: name, Description: desc}
		if err := e.store.Decks().Create(cmd.Context(), d); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created deck %q (%s)\n", d.Name, d.ID)
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with the number of cards due",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		decks, err := e.store.Decks().List(cmd.Context(), e.user, time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks yet. Create one with: flashdeck deck add <name>")
			return nil
		}

		fmt.Fprintf(out, "%-30s  %5s  %s\n", "Name", "Due", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, d := range decks {
			fmt.Fprintf(out, "%-30s  %5d  %s\n", d.Name, d.DueCardsCount, d.Description)
		}
		fmt.Fprintf(out, "\n%d decks\n", len(decks))
		return nil
	},
}

var deckRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a deck and all of its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		d, err := e.deck(cmd, args[0])
		if err != nil {
			return err
		}
		if err := e.store.Decks().Delete(cmd.Context(), d.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %q\n", d.Name)
		return nil
	},
}

func init() {
	deckAddCmd.Flags().String("description", "", "Deck description")

	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckRmCmd)
}
