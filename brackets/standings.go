package brackets

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// CompareStandings orders two standings best-first by match-points, then
// average, then best run. It returns 0 when the chain cannot separate them.
func CompareStandings(a, b models.Standing) int {
	if c := cmp.Compare(b.MatchPoints, a.MatchPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Average, a.Average); c != 0 {
		return c
	}
	return cmp.Compare(b.BestRun, a.BestRun)
}

// RankStandings returns a ranked copy of standings. Unbreakable ties keep
// their input order.
func RankStandings(standings []models.Standing) []models.Standing {
	ranked := slices.Clone(standings)
	slices.SortStableFunc(ranked, CompareStandings)
	return ranked
}

// AggregateStandings folds per-match result rows into ranked poules ordered by
// poule number. Participants keep the order in which they first appear, which
// is the tie-break of last resort.
func AggregateStandings(rows []models.PouleResult) ([]models.Poule, error) {
	if len(rows) == 0 {
		return nil, ErrNoResults
	}

	byParticipant := make(map[int]*models.Standing, len(rows))
	order := make([]int, 0, len(rows))

	for _, row := range rows {
		if row.ParticipantID <= 0 {
			return nil, fmt.Errorf("%w: participant id must be positive, got %d", ErrInvalidResultRow, row.ParticipantID)
		}
		if row.Turns < 0 || row.Points < 0 || row.BestRun < 0 || row.MatchPoints < 0 {
			return nil, fmt.Errorf("%w: negative value for participant %d", ErrInvalidResultRow, row.ParticipantID)
		}

		s, ok := byParticipant[row.ParticipantID]
		if !ok {
			s = &models.Standing{
				ParticipantID: row.ParticipantID,
				Name:          row.ParticipantName,
				PouleNumber:   row.PouleNumber,
			}
			byParticipant[row.ParticipantID] = s
			order = append(order, row.ParticipantID)
		} else if s.PouleNumber != row.PouleNumber {
			return nil, fmt.Errorf("%w: participant %d in poules %d and %d",
				ErrParticipantInMultiplePoules, row.ParticipantID, s.PouleNumber, row.PouleNumber)
		}

		s.MatchPoints += row.MatchPoints
		s.Points += row.Points
		s.Turns += row.Turns
		s.BestRun = max(s.BestRun, row.BestRun)
		s.MatchesPlayed++
	}

	grouped := make(map[int][]models.Standing)
	numbers := make([]int, 0)
	for _, id := range order {
		s := byParticipant[id]
		s.Average = models.ComputeAverage(s.Points, s.Turns)
		if _, seen := grouped[s.PouleNumber]; !seen {
			numbers = append(numbers, s.PouleNumber)
		}
		grouped[s.PouleNumber] = append(grouped[s.PouleNumber], *s)
	}
	slices.Sort(numbers)

	poules := make([]models.Poule, 0, len(numbers))
	for _, number := range numbers {
		ranked := RankStandings(grouped[number])
		for i := range ranked {
			ranked[i].Place = i + 1
		}
		poules = append(poules, models.Poule{Number: number, Standings: ranked})
	}
	return poules, nil
}

// OverallRanking flattens poules place by place (all 1st places, then all 2nd
// places, ...) and ranks the result. Within equal records, better poule place
// and lower poule number come first.
func OverallRanking(poules []models.Poule) []models.Standing {
	return RankStandings(flattenByPlace(poules))
}

func flattenByPlace(poules []models.Poule) []models.Standing {
	total := 0
	deepest := 0
	for _, p := range poules {
		total += len(p.Standings)
		deepest = max(deepest, len(p.Standings))
	}

	flat := make([]models.Standing, 0, total)
	for place := 0; place < deepest; place++ {
		for _, p := range poules {
			if place < len(p.Standings) {
				flat = append(flat, p.Standings[place])
			}
		}
	}
	return flat
}
