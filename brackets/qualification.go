package brackets

import (
	"fmt"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// RuleForPouleCount derives the qualification rule from the number of poules.
func RuleForPouleCount(pouleCount int) models.QualificationRule {
	switch {
	case pouleCount <= 1:
		return models.RuleSinglePoule
	case pouleCount == 2:
		return models.RuleTop2Each
	case pouleCount == 3:
		return models.RuleAllFirstBest2nd
	case pouleCount == 4:
		return models.RuleAllFirst
	default:
		return models.RuleBest4Overall
	}
}

// Qualification is the split of all participants into seeded qualifiers and
// the ordered non-qualified pool.
type Qualification struct {
	Rule         models.QualificationRule
	Qualifiers   []models.Qualifier
	NonQualified []models.Standing
}

// SelectQualifiers picks bracketSize seeded qualifiers from ranked poules.
// When the rule yields too few candidates the best remaining participants
// fill the gap.
func SelectQualifiers(poules []models.Poule, bracketSize int) (*Qualification, error) {
	rule := RuleForPouleCount(len(poules))
	if rule == models.RuleSinglePoule {
		return nil, ErrNoBracketForSinglePoule
	}

	all := flattenByPlace(poules)
	if len(all) < bracketSize {
		return nil, fmt.Errorf("%w: %d participants for a bracket of %d", ErrNotEnoughParticipants, len(all), bracketSize)
	}

	candidates := gatherCandidates(rule, poules)
	ranked := RankStandings(candidates)
	if len(ranked) > bracketSize {
		ranked = ranked[:bracketSize]
	}

	selected := make(map[int]bool, bracketSize)
	for _, s := range ranked {
		selected[s.ParticipantID] = true
	}

	if len(ranked) < bracketSize {
		for _, s := range RankStandings(all) {
			if len(ranked) == bracketSize {
				break
			}
			if !selected[s.ParticipantID] {
				ranked = append(ranked, s)
				selected[s.ParticipantID] = true
			}
		}
	}

	qualifiers := make([]models.Qualifier, len(ranked))
	for i, s := range ranked {
		qualifiers[i] = models.Qualifier{Standing: s, Seed: i + 1}
	}

	rest := make([]models.Standing, 0, len(all)-len(ranked))
	for _, s := range all {
		if !selected[s.ParticipantID] {
			rest = append(rest, s)
		}
	}

	return &Qualification{
		Rule:         rule,
		Qualifiers:   qualifiers,
		NonQualified: RankStandings(rest),
	}, nil
}

func gatherCandidates(rule models.QualificationRule, poules []models.Poule) []models.Standing {
	var candidates []models.Standing
	switch rule {
	case models.RuleTop2Each, models.RuleBest4Overall:
		candidates = append(atPlace(poules, 1), atPlace(poules, 2)...)
	case models.RuleAllFirstBest2nd:
		candidates = atPlace(poules, 1)
		if seconds := RankStandings(atPlace(poules, 2)); len(seconds) > 0 {
			candidates = append(candidates, seconds[0])
		}
	case models.RuleAllFirst:
		candidates = atPlace(poules, 1)
	}
	return candidates
}

// atPlace returns the standing at the given 1-based place of every poule that
// is deep enough, in poule order.
func atPlace(poules []models.Poule, place int) []models.Standing {
	out := make([]models.Standing, 0, len(poules))
	for _, p := range poules {
		if len(p.Standings) >= place {
			out = append(out, p.Standings[place-1])
		}
	}
	return out
}
