package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilings(t *testing.T) {
	tests := []struct {
		name         string
		budgetRange  string
		timeline     string
		expectCost   string
		expectCostOK bool
		expectTime   string
		expectTimeOK bool
	}{
		{"smallest budget, shortest timeline", "0-50k", "0-6m", "medium", true, "medium", true},
		{"mid budget, mid timeline", "50k-200k", "6m-1y", "high", true, "long", true},
		{"large budget, long timeline", "500k+", "1y+", "very_high", true, "very_long", true},
		{"unset", "", "", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, ok := CostCeiling(tt.budgetRange)
			assert.Equal(t, tt.expectCostOK, ok)
			assert.Equal(t, tt.expectCost, cost)

			tf, ok := TimeframeCeiling(tt.timeline)
			assert.Equal(t, tt.expectTimeOK, ok)
			assert.Equal(t, tt.expectTime, tf)
		})
	}
}

func TestEveryCeilingIsOnItsScale(t *testing.T) {
	for _, r := range BudgetRanges {
		c, ok := CostCeiling(r.Value)
		assert.True(t, ok, r.Value)
		assert.GreaterOrEqual(t, CostRank(c), 0, r.Value)
	}
	for _, tl := range Timelines {
		tf, ok := TimeframeCeiling(tl.Value)
		assert.True(t, ok, tl.Value)
		assert.GreaterOrEqual(t, TimeframeRank(tf), 0, tl.Value)
	}
}

func TestGoalLookup(t *testing.T) {
	g, ok := GoalByID("automate_operations")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, g.Priority)

	_, ok = GoalByID("unknown")
	assert.False(t, ok)

	assert.Len(t, GoalIDs(), len(Goals))
	assert.True(t, Contains(Industries, "finance"))
	assert.False(t, Contains(Industries, "mining"))
	assert.Equal(t, []string{"0-6m", "6m-1y", "1y+"}, Values(Timelines))
	assert.Equal(t, -1, CostRank("priceless"))
}
