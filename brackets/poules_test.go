package brackets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
)

func TestDistributePoules_SizesSumToParticipants(t *testing.T) {
	for _, allowTwo := range []bool{true, false} {
		minimum := 3
		if allowTwo {
			minimum = 2
		}
		for n := 0; n <= 60; n++ {
			layout := brackets.DistributePoules(n, allowTwo)
			if n < minimum {
				assert.Empty(t, layout.Sizes, "n=%d allowTwo=%v", n, allowTwo)
				assert.Zero(t, layout.TablesNeeded)
				continue
			}

			sum := 0
			for _, size := range layout.Sizes {
				sum += size
				assert.GreaterOrEqual(t, size, 2, "n=%d allowTwo=%v", n, allowTwo)
				assert.LessOrEqual(t, size, 5, "n=%d allowTwo=%v", n, allowTwo)
				if !allowTwo {
					assert.NotEqual(t, 2, size, "n=%d produced a poule of two", n)
				}
			}
			assert.Equal(t, n, sum, "n=%d allowTwo=%v", n, allowTwo)
			assert.Equal(t, brackets.TablesNeeded(layout.Sizes), layout.TablesNeeded)
		}
	}
}

func TestDistributePoules_KnownLayouts(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		allowTwo bool
		expected []int
		tables   int
	}{
		{"eight without poules of two", 8, false, []int{3, 5}, 4},
		{"eight with poules of two", 8, true, []int{3, 3, 2}, 3},
		{"seven without poules of two", 7, false, []int{3, 4}, 3},
		{"seven with poules of two", 7, true, []int{3, 4}, 3},
		{"two with poules of two", 2, true, []int{2}, 1},
		{"five without poules of two", 5, false, []int{5}, 3},
		{"five with poules of two", 5, true, []int{3, 2}, 2},
		{"nine", 9, false, []int{3, 3, 3}, 3},
		{"four", 4, false, []int{4}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := brackets.DistributePoules(tt.n, tt.allowTwo)
			assert.Equal(t, tt.expected, layout.Sizes)
			assert.Equal(t, tt.tables, layout.TablesNeeded)
		})
	}
}

func TestTablesForPoule(t *testing.T) {
	assert.Equal(t, 0, brackets.TablesForPoule(0))
	assert.Equal(t, 1, brackets.TablesForPoule(2))
	assert.Equal(t, 1, brackets.TablesForPoule(3))
	assert.Equal(t, 2, brackets.TablesForPoule(4))
	assert.Equal(t, 3, brackets.TablesForPoule(5))
}
