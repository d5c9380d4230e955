package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankingScore_ZeroSignals(t *testing.T) {
	assert.Equal(t, 0.0, RankingScore(0, 0, 0, 0))
}

func TestRankingScore_ConversionsAlone(t *testing.T) {
	// 10 conversions saturate the conversion term.
	assert.InDelta(t, 30.0, RankingScore(0, 10, 0, 0), 0.001)
	// More conversions do not push past the ceiling.
	assert.InDelta(t, 30.0, RankingScore(0, 500, 0, 0), 0.001)
}

func TestRankingScore_PartialTerms(t *testing.T) {
	// 5 conversions = half the conversion ceiling.
	assert.InDelta(t, 15.0, RankingScore(0, 5, 0, 0), 0.001)
	// 50 clicks = half the click ceiling.
	assert.InDelta(t, 10.0, RankingScore(0, 0, 50, 0), 0.001)
	// 10 favorites = half the favorite ceiling.
	assert.InDelta(t, 5.0, RankingScore(0, 0, 0, 10), 0.001)
}

func TestRankingScore_PerfectPlan(t *testing.T) {
	assert.InDelta(t, 100.0, RankingScore(5, 10, 100, 20), 0.001)
}

func TestRankingScore_Idempotent(t *testing.T) {
	first := RankingScore(3.7, 4, 62, 11)
	second := RankingScore(3.7, 4, 62, 11)
	assert.Equal(t, first, second)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]int{}))
	assert.InDelta(t, 4.0, AverageRating([]int{3, 4, 5}), 0.001)
	assert.InDelta(t, 4.5, AverageRating([]int{4, 5}), 0.001)
}
