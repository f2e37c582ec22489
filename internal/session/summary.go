package session

import "github.com/abhisek/flashdeck/internal/stats"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID    string
	DeckName     string
	LocationName string
	Correct      int
	Incorrect    int
	Percentage   float64

	// Skipped counts due records dropped because they could not be decoded.
	Skipped int
}

// Total returns the number of cards answered.
func (s Summary) Total() int {
	return s.Correct + s.Incorrect
}

// FormattedPercentage returns the percentage for display, e.g. "75" or "66.7".
func (s Summary) FormattedPercentage() string {
	return stats.FormatPercent(s.Percentage)
}

// Results converts session records to the stats package's input.
func Results(recs []Record) []stats.Result {
	out := make([]stats.Result, len(recs))
	for i, r := range recs {
		out[i] = stats.Result{
			Location:  r.LocationName,
			Correct:   r.CorrectCount,
			Incorrect: r.IncorrectCount,
		}
	}
	return out
}
