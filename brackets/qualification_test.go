package brackets_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

func TestRuleForPouleCount(t *testing.T) {
	tests := []struct {
		poules   int
		expected models.QualificationRule
	}{
		{1, models.RuleSinglePoule},
		{2, models.RuleTop2Each},
		{3, models.RuleAllFirstBest2nd},
		{4, models.RuleAllFirst},
		{5, models.RuleBest4Overall},
		{9, models.RuleBest4Overall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, brackets.RuleForPouleCount(tt.poules), "poules=%d", tt.poules)
	}
}

func TestSelectQualifiers_PartitionsEveryRule(t *testing.T) {
	layouts := [][]int{
		{3, 3},
		{3, 4},
		{3, 2, 2},
		{3, 3, 3},
		{3, 3, 3, 4},
		{3, 3, 3, 3, 3},
		{3, 3, 3, 3, 5},
		{3, 3, 3, 3, 3, 3, 2},
	}

	for _, sizes := range layouts {
		for _, bracketSize := range []int{2, 4} {
			t.Run(fmt.Sprintf("%v/bracket%d", sizes, bracketSize), func(t *testing.T) {
				poules := buildPoules(t, sizes...)
				q, err := brackets.SelectQualifiers(poules, bracketSize)
				require.NoError(t, err)

				assert.Equal(t, brackets.RuleForPouleCount(len(sizes)), q.Rule)
				require.Len(t, q.Qualifiers, bracketSize)

				total := 0
				for _, size := range sizes {
					total += size
				}
				seen := make(map[int]bool, total)
				for i, qual := range q.Qualifiers {
					assert.Equal(t, i+1, qual.Seed)
					assert.False(t, seen[qual.ParticipantID], "duplicate qualifier %d", qual.ParticipantID)
					seen[qual.ParticipantID] = true
				}
				for _, s := range q.NonQualified {
					assert.False(t, seen[s.ParticipantID], "participant %d both qualified and not", s.ParticipantID)
					seen[s.ParticipantID] = true
				}
				assert.Len(t, seen, total)

				for i := 1; i < len(q.NonQualified); i++ {
					assert.LessOrEqual(t, brackets.CompareStandings(q.NonQualified[i-1], q.NonQualified[i]), 0)
				}
			})
		}
	}
}

func TestSelectQualifiers_ThreePoulesTakeFirstsAndBestSecond(t *testing.T) {
	poules := buildPoules(t, 3, 2, 2)

	q, err := brackets.SelectQualifiers(poules, 4)
	require.NoError(t, err)

	assert.Equal(t, models.RuleAllFirstBest2nd, q.Rule)
	seeds := make([]int, len(q.Qualifiers))
	for i, qual := range q.Qualifiers {
		seeds[i] = qual.ParticipantID
	}
	assert.Equal(t, []int{1, 2, 4, 6}, seeds)
	assert.Equal(t, []int{3, 5, 7}, ids(q.NonQualified))
}

func TestSelectQualifiers_FourPoulesTakeFirstsOnly(t *testing.T) {
	poules := buildPoules(t, 3, 3, 3, 3)

	q, err := brackets.SelectQualifiers(poules, 4)
	require.NoError(t, err)

	for _, qual := range q.Qualifiers {
		assert.Equal(t, 1, qual.Place)
	}
}

func TestSelectQualifiers_FillsFromBestRemaining(t *testing.T) {
	poules := buildPoules(t, 1, 3)

	q, err := brackets.SelectQualifiers(poules, 4)
	require.NoError(t, err)

	seeds := make([]int, len(q.Qualifiers))
	for i, qual := range q.Qualifiers {
		seeds[i] = qual.ParticipantID
	}
	assert.Equal(t, []int{2, 3, 1, 4}, seeds)
	assert.Empty(t, q.NonQualified)
}

func TestSelectQualifiers_Errors(t *testing.T) {
	_, err := brackets.SelectQualifiers(buildPoules(t, 5), 4)
	assert.ErrorIs(t, err, brackets.ErrNoBracketForSinglePoule)

	_, err = brackets.SelectQualifiers(buildPoules(t, 1, 2), 4)
	assert.ErrorIs(t, err, brackets.ErrNotEnoughParticipants)
}

func TestSelectQualifiers_Idempotent(t *testing.T) {
	first, err := brackets.SelectQualifiers(buildPoules(t, 3, 3, 3, 3, 3), 4)
	require.NoError(t, err)
	second, err := brackets.SelectQualifiers(buildPoules(t, 3, 3, 3, 3, 3), 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
