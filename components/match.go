package components

import (
	"github.com/yohamta/donburi"
)

// Score holds one fighter's tallies for the current match.
type Score struct {
	Slot        int
	Name        string
	KOs         int // opponents knocked out
	Falls       int
	DamageDealt float64
	DamageTaken float64
	Hits        int
	BestCombo   int
	Serums      int
}

// MatchData is the singleton match clock and scoreboard.
type MatchData struct {
	Ticks  int
	Time   float64
	Scores []Score
}

var Match = donburi.NewComponentType[MatchData]()

// Score returns the score for a slot, growing the table if needed.
func (m *MatchData) Score(slot int) *Score {
	for len(m.Scores) <= slot {
		m.Scores = append(m.Scores, Score{Slot: len(m.Scores)})
	}
	return &m.Scores[slot]
}

// Leader returns the slot with the most KOs, falls breaking ties. It
// returns -1 on a tie and -2 when there are no scores.
func (m *MatchData) Leader() int {
	if len(m.Scores) == 0 {
		return -2
	}
	leader := -1
	tied := false
	for i, s := range m.Scores {
		if leader < 0 {
			leader = i
			continue
		}
		best := m.Scores[leader]
		switch {
		case s.KOs > best.KOs, s.KOs == best.KOs && s.Falls < best.Falls:
			leader, tied = i, false
		case s.KOs == best.KOs && s.Falls == best.Falls:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}
