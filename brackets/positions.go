package brackets

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// Placement is a participant's computed finishing position.
type Placement struct {
	ParticipantID int    `json:"participant_id"`
	Name          string `json:"name"`
	Position      int    `json:"position"`
}

// ByeAssignment records the participant seated directly into a position.
type ByeAssignment struct {
	ParticipantID int `json:"participant_id"`
	Position      int `json:"position"`
}

type PositionInput struct {
	Mode    models.Mode
	Ranking []models.Standing // overall ranker order
	Matches []*models.Match
	Bye     *ByeAssignment
}

// UnfinishedMatches returns the ids of matches that must be decided before
// positions can be computed: every bracket match and every round-1
// classification match. Round 2 is optional.
func UnfinishedMatches(matches []*models.Match) []int {
	var ids []int
	for _, m := range phaseOrdered(matches) {
		if m.Phase == models.PhaseClassificationR2 {
			continue
		}
		if !m.Decided() {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// AssignPositions derives the total finishing order. Decided matches place
// their winner and loser on the match's band, the bye is seated, round 2
// swaps within the pair of candidate positions, and anyone still unplaced is
// appended in ranking order.
func AssignPositions(in PositionInput) ([]Placement, error) {
	names := make(map[int]string, len(in.Ranking))
	for _, s := range in.Ranking {
		names[s.ParticipantID] = s.Name
	}

	positions := make(map[int]int, len(in.Ranking))

	if in.Mode == models.ModeBracket {
		var round2 []*models.Match
		for _, m := range phaseOrdered(in.Matches) {
			if m.Phase == models.PhaseClassificationR2 {
				round2 = append(round2, m)
				continue
			}
			placeMatch(positions, m)
		}

		if in.Bye != nil {
			positions[in.Bye.ParticipantID] = in.Bye.Position
		}

		for _, m := range round2 {
			loser, ok := m.LoserID()
			if !ok {
				continue
			}
			a, okA := positions[*m.WinnerID]
			b, okB := positions[loser]
			if !okA || !okB {
				continue
			}
			positions[*m.WinnerID] = min(a, b)
			positions[loser] = max(a, b)
		}
	}

	last := 0
	for _, p := range positions {
		last = max(last, p)
	}
	for _, s := range in.Ranking {
		if _, ok := positions[s.ParticipantID]; !ok {
			last++
			positions[s.ParticipantID] = last
		}
	}

	placements := make([]Placement, 0, len(positions))
	for id, pos := range positions {
		placements = append(placements, Placement{ParticipantID: id, Name: names[id], Position: pos})
	}
	slices.SortFunc(placements, func(a, b Placement) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})

	if err := VerifyBijection(placements, len(in.Ranking)); err != nil {
		return nil, err
	}
	return placements, nil
}

// VerifyBijection checks that placements cover exactly 1..total once each.
func VerifyBijection(placements []Placement, total int) error {
	if len(placements) != total {
		return fmt.Errorf("%w: %d placements for %d participants", ErrPositionsNotBijective, len(placements), total)
	}
	seen := make([]bool, total+1)
	for _, p := range placements {
		if p.Position < 1 || p.Position > total {
			return fmt.Errorf("%w: position %d out of range for participant %d", ErrPositionsNotBijective, p.Position, p.ParticipantID)
		}
		if seen[p.Position] {
			return fmt.Errorf("%w: position %d assigned twice", ErrPositionsNotBijective, p.Position)
		}
		seen[p.Position] = true
	}
	return nil
}

// DefaultPoints is the fallback value when no points row covers a position.
func DefaultPoints(total, position int) int {
	return max(total-position+1, 0)
}

// PointsFor looks up the points for a position in the rows whose participant
// range contains total, falling back to DefaultPoints.
func PointsFor(rows []models.PointsRow, total, position int) int {
	for _, r := range rows {
		if r.Position == position && total >= r.MinParticipants && total <= r.MaxParticipants {
			return r.Points
		}
	}
	return DefaultPoints(total, position)
}

func placeMatch(positions map[int]int, m *models.Match) {
	if m.PlaceHigh == nil || m.PlaceLow == nil {
		return
	}
	loser, ok := m.LoserID()
	if !ok {
		return
	}
	positions[*m.WinnerID] = *m.PlaceHigh
	positions[loser] = *m.PlaceLow
}

var phaseRank = map[models.Phase]int{
	models.PhaseSemifinal:        0,
	models.PhaseFinal:            1,
	models.PhasePetiteFinale:     2,
	models.PhaseClassificationR1: 3,
	models.PhaseClassificationR2: 4,
}

// phaseOrdered returns matches sorted by phase progression, then order.
func phaseOrdered(matches []*models.Match) []*models.Match {
	out := slices.Clone(matches)
	slices.SortStableFunc(out, func(a, b *models.Match) int {
		if c := cmp.Compare(phaseRank[a.Phase], phaseRank[b.Phase]); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

func phaseMatches(matches []*models.Match, phase models.Phase) []*models.Match {
	var out []*models.Match
	for _, m := range phaseOrdered(matches) {
		if m.Phase == phase {
			out = append(out, m)
		}
	}
	return out
}
