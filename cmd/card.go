package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/deckfile"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/store"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to a deck",
}

// addCard validates p and stores it as a new card in the --deck deck.
func addCard(cmd *cobra.Command, p card.Payload) error {
	if err := card.Validate(p); err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	deckName, _ := cmd.Flags().GetString("deck")
	d, err := e.deck(cmd, deckName)
	if err != nil {
		return err
	}

	c := card.New(p, time.Now())
	if err := e.store.Cards().Create(cmd.Context(), d.ID, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s card %s to %q\n", c.Variant().DisplayName(), c.ID, d.Name)
	return nil
}

var cardAddFrontBackCmd = &cobra.Command{
	Use:   "front-back",
	Short: "Add a card with a front and a back",
	RunE: func(cmd *cobra.Command, args []string) error {
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		image, _ := cmd.Flags().GetString("image")
		return addCard(cmd, card.FrontBack{
			Front:         strings.TrimSpace(front),
			Back:          strings.TrimSpace(back),
			FrontImageRef: strings.TrimSpace(image),
		})
	},
}

var cardAddMultipleChoiceCmd = &cobra.Command{
	Use:   "multiple-choice",
	Short: "Add a multiple-choice card",
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		distractors, _ := cmd.Flags().GetStringArray("distractor")
		return addCard(cmd, card.MultipleChoice{
			Question:      strings.TrimSpace(question),
			CorrectAnswer: strings.TrimSpace(answer),
			Distractors:   card.TrimDistractors(distractors),
		})
	},
}

var cardAddTypeAnswerCmd = &cobra.Command{
	Use:   "type-answer",
	Short: "Add a card answered by typing",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetString("prompt")
		answers, _ := cmd.Flags().GetString("answers")
		return addCard(cmd, card.TypeAnswer{
			Prompt:            strings.TrimSpace(prompt),
			AcceptableAnswers: card.SplitAnswers(answers),
		})
	},
}

var cardAddClozeCmd = &cobra.Command{
	Use:   "cloze",
	Short: "Add a fill-in-the-blank card",
	Long: `Add a cloze card. Wrap each hidden span in double brackets:

  flashdeck card add cloze --deck Capitals --text "The capital of France is [[Paris]]."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		return addCard(cmd, card.Cloze{TextWithCloze: strings.TrimSpace(text)})
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards in a deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		deckName, _ := cmd.Flags().GetString("deck")
		d, err := e.deck(cmd, deckName)
		if err != nil {
			return err
		}
		recs, err := e.store.Cards().List(cmd.Context(), d.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-16s  %5s  %-7s  %s\n", "ID", "Type", "Level", "Due", "Prompt")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		now := time.Now()
		for _, rec := range recs {
			c, err := card.Decode(rec)
			if err != nil {
				fmt.Fprintf(out, "%-36s  %-16s  %5d  %-7s  %s\n", rec.ID, rec.Variant, rec.SRSLevel, "-", "(unreadable)")
				continue
			}
			prompt := []rune(c.Prompt())
			if len(prompt) > 40 {
				prompt = append(prompt[:37], []rune("...")...)
			}
			fmt.Fprintf(out, "%-36s  %-16s  %5d  %-7s  %s\n",
				c.ID, c.Variant().DisplayName(), c.SRSLevel, spacedrep.DueIn(c, now), string(prompt))
		}
		fmt.Fprintf(out, "\n%d cards\n", len(recs))
		return nil
	},
}

var cardRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Cards().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("card %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %s\n", args[0])
		return nil
	},
}

var cardImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import cards from a JSON deck file",
	Long: `Import cards from a JSON deck file. The deck named in the file is created
if it does not exist; --deck imports into a different deck instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := deckfile.Load(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		name := f.Name
		if override, _ := cmd.Flags().GetString("deck"); override != "" {
			name = override
		}

		d, err := e.store.Decks().GetByName(ctx, e.user, name)
		if errors.Is(err, store.ErrNotFound) {
			d = &card.Deck{UserID: e.user, Name: name, Description: f.Description}
			err = e.store.Decks().Create(ctx, d)
		}
		if err != nil {
			return fmt.Errorf("deck %q: %w", name, err)
		}

		cards := f.NewCards(time.Now())
		for _, c := range cards {
			if err := e.store.Cards().Create(ctx, d.ID, c); err != nil {
				return fmt.Errorf("import card: %w", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards into %q\n", len(cards), d.Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cardAddFrontBackCmd, cardAddMultipleChoiceCmd, cardAddTypeAnswerCmd, cardAddClozeCmd, cardListCmd} {
		c.Flags().String("deck", "", "Deck name (required)")
		_ = c.MarkFlagRequired("deck")
	}

	cardAddFrontBackCmd.Flags().String("front", "", "Front text")
	cardAddFrontBackCmd.Flags().String("back", "", "Back text (required)")
	cardAddFrontBackCmd.Flags().String("image", "", "Reference to an image shown on the front")

	cardAddMultipleChoiceCmd.Flags().String("question", "", "Question text")
	cardAddMultipleChoiceCmd.Flags().String("answer", "", "Correct answer")
	cardAddMultipleChoiceCmd.Flags().StringArray("distractor", nil, "Wrong option (repeatable)")

	cardAddTypeAnswerCmd.Flags().String("prompt", "", "Prompt text")
	cardAddTypeAnswerCmd.Flags().String("answers", "", "Comma-separated acceptable answers")

	cardAddClozeCmd.Flags().String("text", "", "Text with [[hidden]] spans")

	cardImportCmd.Flags().String("deck", "", "Import into this deck instead of the one named in the file")

	cardAddCmd.AddCommand(cardAddFrontBackCmd)
	cardAddCmd.AddCommand(cardAddMultipleChoiceCmd)
	cardAddCmd.AddCommand(cardAddTypeAnswerCmd)
	cardAddCmd.AddCommand(cardAddClozeCmd)

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardRmCmd)
	cardCmd.AddCommand(cardImportCmd)
}
