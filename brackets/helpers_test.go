package brackets_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// resultRows builds one result row per participant. Participant ids run from
// 1 across poules; lower ids within a poule get more match-points, and every
// participant gets a distinct average.
func resultRows(sizes ...int) []models.PouleResult {
	var rows []models.PouleResult
	id := 0
	for p, size := range sizes {
		for place := 1; place <= size; place++ {
			id++
			rows = append(rows, models.PouleResult{
				PouleNumber:     p + 1,
				ParticipantID:   id,
				ParticipantName: fmt.Sprintf("Player %d", id),
				MatchPoints:     2 * (size - place),
				Points:          200 - id,
				Turns:           100,
				BestRun:         id % 7,
			})
		}
	}
	return rows
}

func buildPoules(t *testing.T, sizes ...int) []models.Poule {
	t.Helper()
	poules, err := brackets.AggregateStandings(resultRows(sizes...))
	require.NoError(t, err)
	return poules
}

func standing(id, matchPoints, points, turns, bestRun int) models.Standing {
	return models.Standing{
		ParticipantID: id,
		Name:          fmt.Sprintf("Player %d", id),
		MatchPoints:   matchPoints,
		Points:        points,
		Turns:         turns,
		BestRun:       bestRun,
		Average:       models.ComputeAverage(points, turns),
	}
}

func config(bracketSize int, round2 bool) models.ProgressionConfig {
	return models.ProgressionConfig{
		BracketSize:                bracketSize,
		SinglePouleThreshold:       5,
		EnableClassificationRound2: round2,
	}
}

// materialize turns blueprints into match rows with sequential ids, dropping
// bye entries.
func materialize(bms []*brackets.BracketMatch, firstID int) []*models.Match {
	var out []*models.Match
	id := firstID
	for _, bm := range bms {
		if bm.IsBye {
			continue
		}
		out = append(out, &models.Match{
			ID:        id,
			Phase:     bm.Phase,
			Order:     bm.Order,
			Player1ID: bm.Participant1ID,
			Player2ID: bm.Participant2ID,
			PlaceHigh: bm.PlaceHigh,
			PlaceLow:  bm.PlaceLow,
		})
		id++
	}
	return out
}

func findMatch(matches []*models.Match, phase models.Phase, order int) *models.Match {
	for _, m := range matches {
		if m.Phase == phase && m.Order == order {
			return m
		}
	}
	return nil
}

func decide(m *models.Match, winner int) {
	w := winner
	m.WinnerID = &w
}

// decideAll records a winner for every resolved, undecided match in phase.
// Odd orders go to player 1, even orders to player 2.
func decideAll(matches []*models.Match, phase models.Phase) {
	for _, m := range matches {
		if m.Phase != phase || m.Decided() || !m.Resolved() {
			continue
		}
		if m.Order%2 == 1 {
			decide(m, *m.Player1ID)
		} else {
			decide(m, *m.Player2ID)
		}
	}
}

func applyAssignments(matches []*models.Match, assignments []brackets.SlotAssignment) {
	for _, a := range assignments {
		m := findMatch(matches, a.Phase, a.Order)
		p1, p2 := a.Player1ID, a.Player2ID
		m.Player1ID, m.Player2ID = &p1, &p2
	}
}

func generate(t *testing.T, gen brackets.BracketGenerator, params brackets.GenerateBracketParams) []*brackets.BracketMatch {
	t.Helper()
	bms, err := gen.GenerateBracket(context.Background(), params)
	require.NoError(t, err)
	return bms
}

func ids(standings []models.Standing) []int {
	out := make([]int, len(standings))
	for i, s := range standings {
		out[i] = s.ParticipantID
	}
	return out
}
