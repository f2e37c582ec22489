// Package stats computes study performance figures from answer counts.
package stats

import (
	"sort"
	"strconv"
	"strings"
)

// GeneralLocation labels sessions that were not tagged with a location.
const GeneralLocation = "General"

// Percentage returns 100*correct/(correct+incorrect), or 0 when nothing was
// answered.
func Percentage(correct, incorrect int) float64 {
	total := correct + incorrect
	if total <= 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// FormatPercent renders a percentage with one decimal place, dropping a
// trailing ".0": 75 -> "75", 66.666 -> "66.7".
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// Result is the outcome of one completed session.
type Result struct {
	Location  string
	Correct   int
	Incorrect int
}

// Totals is an aggregate over one or more sessions.
type Totals struct {
	Label      string
	Sessions   int
	Correct    int
	Incorrect  int
	Percentage float64
}

// Answered returns the number of answers counted.
func (t Totals) Answered() int {
	return t.Correct + t.Incorrect
}

// Aggregate sums counts across sessions and computes the overall percentage.
func Aggregate(results []Result) Totals {
	var t Totals
	for _, r := range results {
		t.Sessions++
		t.Correct += r.Correct
		t.Incorrect += r.Incorrect
	}
	t.Percentage = Percentage(t.Correct, t.Incorrect)
	return t
}

// ByLocation groups sessions by location name, with untagged sessions under
// GeneralLocation. Groups are ordered by session count, then label.
func ByLocation(results []Result) []Totals {
	groups := make(map[string]*Totals)
	for _, r := range results {
		label := LocationLabel(r.Location)
		g, ok := groups[label]
		if !ok {
			g = &Totals{Label: label}
			groups[label] = g
		}
		g.Sessions++
		g.Correct += r.Correct
		g.Incorrect += r.Incorrect
	}

	out := make([]Totals, 0, len(groups))
	for _, g := range groups {
		g.Percentage = Percentage(g.Correct, g.Incorrect)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions != out[j].Sessions {
			return out[i].Sessions > out[j].Sessions
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// LocationLabel returns the display label for a session's location.
func LocationLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return GeneralLocation
	}
	return name
}

// Filter returns the results whose location label equals label. An empty
// label keeps everything.
func Filter(results []Result, label string) []Result {
	if label == "" {
		return results
	}
	var out []Result
	for _, r := range results {
		if LocationLabel(r.Location) == label {
			out = append(out, r)
		}
	}
	return out
}
