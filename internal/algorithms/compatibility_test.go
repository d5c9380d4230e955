package algorithms

import (
	"testing"

	"conectacg_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func gamerPlan() *models.Plan {
	return &models.Plan{
		DownloadSpeed: 300,
		Price:         50,
		Categorias:    models.StringList([]string{"Gaming"}),
	}
}

func TestCompatibilityScore_Golden(t *testing.T) {
	// Gaming activity met (+20), Gaming category (+15), 300 Mbps for one
	// person (+20), 6 Mbps per real (+15).
	score := CompatibilityScore(gamerPlan(), []string{"Gaming"}, 1)
	assert.InDelta(t, 70.0, score, 0.001)
}

func TestCompatibilityScore_SlowPlanGetsConsolationPoints(t *testing.T) {
	plan := &models.Plan{
		DownloadSpeed: 100,
		Price:         80,
		Categorias:    models.StringList([]string{"Trabalho"}),
	}
	// Gaming minimum not met (+8), no Gaming category, 100 Mbps per person
	// (+20), 1.25 Mbps per real (+8).
	score := CompatibilityScore(plan, []string{"Gaming"}, 1)
	assert.InDelta(t, 36.0, score, 0.001)
}

func TestCompatibilityScore_UnknownActivityIgnored(t *testing.T) {
	withUnknown := CompatibilityScore(gamerPlan(), []string{"Gaming", "Mineração"}, 1)
	without := CompatibilityScore(gamerPlan(), []string{"Gaming"}, 1)
	assert.Equal(t, without, withUnknown)
}

func TestCompatibilityScore_ZeroHouseholdTreatedAsOne(t *testing.T) {
	zero := CompatibilityScore(gamerPlan(), nil, 0)
	one := CompatibilityScore(gamerPlan(), nil, 1)
	assert.Equal(t, one, zero)
}

func TestCompatibilityScore_HouseholdDilutesBandwidth(t *testing.T) {
	// 300 Mbps across 6 people = 50 per person (+10 instead of +20).
	big := CompatibilityScore(gamerPlan(), nil, 6)
	alone := CompatibilityScore(gamerPlan(), nil, 1)
	assert.InDelta(t, alone-10, big, 0.001)

	// Across 10 people = 30 per person (+3).
	crowd := CompatibilityScore(gamerPlan(), nil, 10)
	assert.InDelta(t, alone-17, crowd, 0.001)
}

func TestCompatibilityScore_MultipleActivities(t *testing.T) {
	plan := &models.Plan{
		DownloadSpeed: 600,
		Price:         100,
		Categorias:    models.StringList([]string{"Gaming", "Streaming", "Trabalho"}),
	}
	// Four activities, all speed minimums met, all categories present:
	// 4*(20+15) + household 600/2=300 (+20) + value 6 (+15).
	score := CompatibilityScore(plan, []string{"Gaming", "Streaming", "Home Office", "Estudos"}, 2)
	assert.InDelta(t, 175.0, score, 0.001)
}
