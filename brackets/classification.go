package brackets

import (
	"context"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// ClassificationGenerator pairs non-qualified players into consolation matches
// that resolve every position below the bracket.
type ClassificationGenerator struct {
}

func NewClassificationGenerator() BracketGenerator {
	return &ClassificationGenerator{}
}

func (g *ClassificationGenerator) GetName() string {
	return "Classification"
}

// GenerateBracket builds round 1 from the ordered non-qualified pool. With an
// odd pool the best player gets a bye entry at position bracketSize+1 and the
// others are paired two by two; match order 1 is the pairing closest to the
// bracket. Match i settles positions start+2(i-1) and start+2(i-1)+1.
func (g *ClassificationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	pool := params.NonQualified
	next := params.Config.BracketSize + 1
	out := make([]*BracketMatch, 0, len(pool)/2+1)

	if len(pool)%2 == 1 {
		out = append(out, &BracketMatch{
			Phase:            models.PhaseClassificationR1,
			IsBye:            true,
			ByeParticipantID: intPtr(pool[0].ParticipantID),
			PlaceHigh:        intPtr(next),
		})
		pool = pool[1:]
		next++
	}

	for i := 0; i+1 < len(pool); i += 2 {
		out = append(out, &BracketMatch{
			Phase:          models.PhaseClassificationR1,
			Order:          i/2 + 1,
			Participant1ID: intPtr(pool[i].ParticipantID),
			Participant2ID: intPtr(pool[i+1].ParticipantID),
			PlaceHigh:      intPtr(next + i),
			PlaceLow:       intPtr(next + i + 1),
		})
	}
	return out, nil
}

// ShouldTriggerRound2 reports whether round 2 is due: the feature is enabled,
// round 1 has at least two matches all decided, and round 2 does not exist yet.
func ShouldTriggerRound2(enabled bool, matches []*models.Match) bool {
	if !enabled {
		return false
	}
	r1 := 0
	for _, m := range matches {
		switch m.Phase {
		case models.PhaseClassificationR2:
			return false
		case models.PhaseClassificationR1:
			if !m.Decided() {
				return false
			}
			r1++
		}
	}
	return r1 >= 2
}

// ResolveClassificationRound2 pairs the losers of adjacent round-1 matches
// (1 with 2, 3 with 4, ...). Each match swaps within the two loser positions,
// so its band is the pair of those positions. A leftover loser from an odd
// match count keeps its round-1 position and gets no match.
func ResolveClassificationRound2(matches []*models.Match) []*BracketMatch {
	r1 := phaseMatches(matches, models.PhaseClassificationR1)

	out := make([]*BracketMatch, 0, len(r1)/2)
	for i := 0; i+1 < len(r1); i += 2 {
		upper, lower := r1[i], r1[i+1]
		loserUpper, ok1 := upper.LoserID()
		loserLower, ok2 := lower.LoserID()
		if !ok1 || !ok2 || upper.PlaceLow == nil || lower.PlaceLow == nil {
			continue
		}

		high, low := *upper.PlaceLow, *lower.PlaceLow
		if high > low {
			high, low = low, high
		}
		out = append(out, &BracketMatch{
			Phase:           models.PhaseClassificationR2,
			Order:           i/2 + 1,
			Participant1ID:  intPtr(loserUpper),
			Participant2ID:  intPtr(loserLower),
			SourceMatch1Key: strPtr(upper.Key()),
			SourceMatch2Key: strPtr(lower.Key()),
			PlaceHigh:       intPtr(high),
			PlaceLow:        intPtr(low),
		})
	}
	return out
}
