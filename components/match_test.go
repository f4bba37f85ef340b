package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeader(t *testing.T) {
	tests := []struct {
		name   string
		scores []Score
		want   int
	}{
		{"empty", nil, -2},
		{"single", []Score{{KOs: 0}}, 0},
		{"most kos", []Score{{KOs: 1}, {KOs: 3}, {KOs: 2}}, 1},
		{"falls break ties", []Score{{KOs: 2, Falls: 3}, {KOs: 2, Falls: 1}}, 1},
		{"tie", []Score{{KOs: 2, Falls: 1}, {KOs: 2, Falls: 1}}, -1},
		{"tie broken later", []Score{{KOs: 1}, {KOs: 1}, {KOs: 4}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchData{Scores: tt.scores}
			assert.Equal(t, tt.want, m.Leader())
		})
	}
}

func TestScoreGrowsTable(t *testing.T) {
	var m MatchData
	m.Score(2).KOs++
	assert.Len(t, m.Scores, 3)
	assert.Equal(t, 2, m.Scores[2].Slot)
	assert.Equal(t, 1, m.Scores[2].KOs)
}
