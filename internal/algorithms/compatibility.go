package algorithms

import "conectacg_backend/internal/models"

// activityRequirement maps a declared activity to the download speed it
// needs and the plan category that serves it.
type activityRequirement struct {
	MinSpeed  int
	Categoria string
}

var activityRequirements = map[string]activityRequirement{
	"Gaming":      {MinSpeed: 300, Categoria: "Gaming"},
	"Streaming":   {MinSpeed: 200, Categoria: "Streaming"},
	"Home Office": {MinSpeed: 150, Categoria: "Trabalho"},
	"Estudos":     {MinSpeed: 100, Categoria: "Trabalho"},
}

// CompatibilityScore rates how well a plan fits a household's declared
// activities. Pure function with no side effects; the result is unbounded
// above and used only for descending in-memory sorts.
//
// Unknown activities are ignored. A pessoas of zero or less is treated
// as a single-person household.
func CompatibilityScore(plan *models.Plan, atividades []string, pessoas int) float64 {
	if pessoas <= 0 {
		pessoas = 1
	}

	score := 0.0
	for _, atividade := range atividades {
		req, ok := activityRequirements[atividade]
		if !ok {
			continue
		}
		if plan.DownloadSpeed >= req.MinSpeed {
			score += 20
		} else {
			score += 8
		}
		if plan.HasCategoria(req.Categoria) {
			score += 15
		}
	}

	// Household adequacy: bandwidth per person.
	perPerson := float64(plan.DownloadSpeed) / float64(pessoas)
	switch {
	case perPerson >= 100:
		score += 20
	case perPerson >= 50:
		score += 10
	default:
		score += 3
	}

	// Value for money: Mbps per currency unit.
	if float64(plan.DownloadSpeed)/plan.Price >= 4 {
		score += 15
	} else {
		score += 8
	}

	return score
}
