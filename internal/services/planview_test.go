package services

import (
	"testing"
	"time"

	"conectacg_backend/internal/models"
	"conectacg_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *models.Plan {
	capacidade := "Fibra óptica"
	return &models.Plan{
		BaseModel:        models.BaseModel{ID: "plan-1"},
		ProviderID:       "provider-1",
		Name:             "Fibra 300",
		DownloadSpeed:    300,
		UploadSpeed:      150,
		Price:            99.90,
		Fidelidade:       12,
		Capacidade:       &capacidade,
		ServicosInclusos: models.StringList([]string{"Wi-Fi 6", "Instalação grátis"}),
		IndicadoPara:     models.StringList([]string{"Gaming", "Streaming"}),
		Categorias:       models.StringList([]string{"Fibra"}),
		IsActive:         true,
		Provider: models.Provider{
			BaseModel: models.BaseModel{ID: "provider-1"},
			Name:      "NetSul",
			Slug:      "netsul",
		},
	}
}

func testReviews(n int) []models.Review {
	reviews := make([]models.Review, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, models.Review{
			BaseModel:  models.BaseModel{ID: nextID("review", i+1)},
			Nota:       5,
			Comentario: "Ótimo plano",
			User:       models.User{Name: "Ana"},
		})
	}
	return reviews
}

func TestBuildPlanViewVisitorMasksTechnicalFields(t *testing.T) {
	view := BuildPlanView(PlanViewInput{
		Plan:    testPlan(),
		Reviews: testReviews(3),
	}, false, time.Now())

	assert.True(t, view.Masked)
	assert.Nil(t, view.DownloadSpeed)
	assert.Nil(t, view.UploadSpeed)
	assert.Empty(t, view.ServicosInclusos)
	assert.Empty(t, view.IndicadoPara)
	assert.Nil(t, view.Capacidade)
	assert.Len(t, view.Reviews, 1, "visitors see a single review")

	// Commercial fields stay visible.
	assert.Equal(t, "Fibra 300", view.Name)
	assert.Equal(t, 99.90, view.Price)
	assert.Equal(t, "NetSul", view.Provider.Name)
}

func TestBuildPlanViewLoggedInIsComplete(t *testing.T) {
	view := BuildPlanView(PlanViewInput{
		Plan:        testPlan(),
		Reviews:     testReviews(3),
		AvgRating:   4.5,
		ReviewCount: 3,
		IsFavorited: true,
	}, true, time.Now())

	assert.False(t, view.Masked)
	require.NotNil(t, view.DownloadSpeed)
	assert.Equal(t, 300, *view.DownloadSpeed)
	require.NotNil(t, view.UploadSpeed)
	assert.Equal(t, 150, *view.UploadSpeed)
	assert.Equal(t, []string{"Wi-Fi 6", "Instalação grátis"}, view.ServicosInclusos)
	assert.Len(t, view.Reviews, 3)
	assert.Equal(t, 4.5, view.AvgRating)
	assert.True(t, view.IsFavorited)
}

func TestBuildPlanViewRoundsAverageRating(t *testing.T) {
	view := BuildPlanView(PlanViewInput{
		Plan:      testPlan(),
		AvgRating: 13.0 / 3.0,
	}, true, time.Now())

	assert.Equal(t, 4.3, view.AvgRating)
}

func TestBuildPlanViewExpiredPromotionHiddenForEveryone(t *testing.T) {
	now := time.Now()
	price := 79.90
	expired := now.Add(-time.Hour)

	plan := testPlan()
	plan.PromotionPrice = &price
	plan.PromotionExpiresAt = &expired

	for _, loggedIn := range []bool{true, false} {
		view := BuildPlanView(PlanViewInput{Plan: plan}, loggedIn, now)
		assert.Nil(t, view.PromotionPrice)
		assert.Nil(t, view.PromotionExpiresAt)
	}

	active := now.Add(time.Hour)
	plan.PromotionExpiresAt = &active
	view := BuildPlanView(PlanViewInput{Plan: plan}, false, now)
	require.NotNil(t, view.PromotionPrice)
	assert.Equal(t, 79.90, *view.PromotionPrice)
}

func TestMaskCatalog(t *testing.T) {
	views := make([]dto.PlanView, 5)

	visible, hidden := MaskCatalog(views, true)
	assert.Len(t, visible, 5)
	assert.Zero(t, hidden)

	visible, hidden = MaskCatalog(views, false)
	assert.Len(t, visible, VisitorPlanLimit)
	assert.Equal(t, 3, hidden)

	visible, hidden = MaskCatalog(views[:2], false)
	assert.Len(t, visible, 2)
	assert.Zero(t, hidden)
}
