// carambole/brackets/single_elimination.go
package brackets

import (
	"context"
	"fmt"
	"slices"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket seeds the elimination stage. A 4-slot bracket plays 1v4 and
// 2v3 semifinals feeding a final and a petite finale; a 2-slot bracket is a
// single final.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	size := params.Config.BracketSize
	if len(params.Qualifiers) != size {
		return nil, fmt.Errorf("%w: have %d qualifiers for a bracket of %d", ErrQualifierCount, len(params.Qualifiers), size)
	}

	seeded := slices.Clone(params.Qualifiers)
	slices.SortFunc(seeded, func(a, b models.Qualifier) int { return a.Seed - b.Seed })
	seed := func(n int) *int {
		return intPtr(seeded[n-1].ParticipantID)
	}

	switch size {
	case 2:
		return []*BracketMatch{{
			Phase:          models.PhaseFinal,
			Order:          1,
			Participant1ID: seed(1),
			Participant2ID: seed(2),
			PlaceHigh:      intPtr(1),
			PlaceLow:       intPtr(2),
		}}, nil
	case 4:
		sf1 := &BracketMatch{
			Phase:          models.PhaseSemifinal,
			Order:          1,
			Participant1ID: seed(1),
			Participant2ID: seed(4),
		}
		sf2 := &BracketMatch{
			Phase:          models.PhaseSemifinal,
			Order:          2,
			Participant1ID: seed(2),
			Participant2ID: seed(3),
		}
		final := &BracketMatch{
			Phase:           models.PhaseFinal,
			Order:           1,
			SourceMatch1Key: strPtr(sf1.Key()),
			SourceMatch2Key: strPtr(sf2.Key()),
			IsPlaceholder:   true,
			PlaceHigh:       intPtr(1),
			PlaceLow:        intPtr(2),
		}
		petite := &BracketMatch{
			Phase:           models.PhasePetiteFinale,
			Order:           1,
			SourceMatch1Key: strPtr(sf1.Key()),
			SourceMatch2Key: strPtr(sf2.Key()),
			IsPlaceholder:   true,
			PlaceHigh:       intPtr(3),
			PlaceLow:        intPtr(4),
		}
		return []*BracketMatch{sf1, sf2, final, petite}, nil
	default:
		return nil, fmt.Errorf("%w: bracket size %d", models.ErrInvalidProgressionConfig, size)
	}
}

// SlotAssignment is a resolved pairing for a match that waited on others.
type SlotAssignment struct {
	Phase     models.Phase
	Order     int
	Player1ID int
	Player2ID int
}

// Key returns the natural key of the match the assignment fills.
func (s SlotAssignment) Key() string {
	return models.MatchKey(s.Phase, s.Order)
}

// ResolveFinals pairs the final (SF winners) and petite finale (SF losers) once
// both semifinals are decided. ok is false while either semifinal is pending.
func ResolveFinals(matches []*models.Match) (assignments []SlotAssignment, ok bool) {
	var sf1, sf2 *models.Match
	for _, m := range matches {
		if m.Phase != models.PhaseSemifinal {
			continue
		}
		switch m.Order {
		case 1:
			sf1 = m
		case 2:
			sf2 = m
		}
	}
	if sf1 == nil || sf2 == nil || !sf1.Decided() || !sf2.Decided() {
		return nil, false
	}

	loser1, ok1 := sf1.LoserID()
	loser2, ok2 := sf2.LoserID()
	if !ok1 || !ok2 {
		return nil, false
	}

	return []SlotAssignment{
		{Phase: models.PhaseFinal, Order: 1, Player1ID: *sf1.WinnerID, Player2ID: *sf2.WinnerID},
		{Phase: models.PhasePetiteFinale, Order: 1, Player1ID: loser1, Player2ID: loser2},
	}, true
}
