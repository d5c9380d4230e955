package algorithms

// Ranking weights. Each engagement term is clamped to 1 before weighting,
// so the score lives on a 0-100 scale.
const (
	ratingWeight     = 40.0
	conversionWeight = 30.0
	clickWeight      = 20.0
	favoriteWeight   = 10.0

	conversionCeiling = 10.0
	clickCeiling      = 100.0
	favoriteCeiling   = 20.0
)

// RankingScore computes a plan's composite popularity score from its
// engagement signals. avgRating is the 0-5 mean review rating (0 when the
// plan has no reviews). Deterministic: recomputing with unchanged inputs
// yields the same score.
func RankingScore(avgRating float64, conversions, clicks, favorites int64) float64 {
	return (avgRating/5)*ratingWeight +
		clamp(float64(conversions)/conversionCeiling)*conversionWeight +
		clamp(float64(clicks)/clickCeiling)*clickWeight +
		clamp(float64(favorites)/favoriteCeiling)*favoriteWeight
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// AverageRating returns the arithmetic mean of review notas, 0 for none.
func AverageRating(notas []int) float64 {
	if len(notas) == 0 {
		return 0
	}
	sum := 0
	for _, n := range notas {
		sum += n
	}
	return float64(sum) / float64(len(notas))
}
