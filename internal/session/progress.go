package session

import "fmt"

// Progress is the 1-based position of the current card within the session.
type Progress struct {
	Current int
	Total   int
}

func (p Progress) String() string {
	return fmt.Sprintf("%d / %d", p.Current, p.Total)
}

// Fraction returns Current/Total in [0,1], for progress bars.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total)
}
