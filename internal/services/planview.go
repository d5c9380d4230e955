package services

import (
	"math"
	"time"

	"conectacg_backend/internal/models"
	"conectacg_backend/internal/services/dto"
)

// VisitorPlanLimit is the hard cutoff of plans shown to unauthenticated
// visitors on the catalog.
const VisitorPlanLimit = 2

// VisitorReviewLimit is how many reviews a visitor sees on a plan.
const VisitorReviewLimit = 1

// PlanViewInput bundles everything the view builder needs so it stays a pure
// function over already-loaded data.
type PlanViewInput struct {
	Plan          *models.Plan
	Reviews       []models.Review
	AvgRating     float64
	ReviewCount   int64
	FavoriteCount int64
	IsFavorited   bool
}

// BuildPlanView is the single place a Plan becomes a response. List and
// detail paths both go through it, so a masked plan looks the same
// everywhere: technical fields nulled, reviews cut to one, Masked set.
// Expired promotions are nulled for every viewer.
func BuildPlanView(in PlanViewInput, isLoggedIn bool, now time.Time) dto.PlanView {
	plan := in.Plan

	view := dto.PlanView{
		ID:   plan.ID,
		Name: plan.Name,
		Provider: dto.ProviderRef{
			ID:    plan.Provider.ID,
			Name:  plan.Provider.Name,
			Slug:  plan.Provider.Slug,
			Color: plan.Provider.Color,
			Logo:  plan.Provider.Logo,
		},
		Price:       plan.Price,
		Fidelidade:  plan.Fidelidade,
		Categorias:  plan.GetCategorias(),
		IsSponsored: plan.IsSponsored,

		RankingScore:  plan.RankingScore,
		ClickCount:    plan.ClickCount,
		AvgRating:     math.Round(in.AvgRating*10) / 10,
		ReviewCount:   in.ReviewCount,
		FavoriteCount: in.FavoriteCount,
		IsFavorited:   in.IsFavorited,
	}

	if plan.PromotionActive(now) {
		view.PromotionPrice = plan.PromotionPrice
		view.PromotionExpiresAt = plan.PromotionExpiresAt
		view.PromotionLabel = plan.PromotionLabel
	}

	reviews := in.Reviews
	if !isLoggedIn && len(reviews) > VisitorReviewLimit {
		reviews = reviews[:VisitorReviewLimit]
	}
	view.Reviews = make([]dto.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		rv := dto.ReviewView{
			ID:         r.ID,
			Nota:       r.Nota,
			Comentario: r.Comentario,
			UserName:   r.User.Name,
		}
		if !r.CreatedAt.IsZero() {
			createdAt := r.CreatedAt
			rv.CreatedAt = &createdAt
		}
		view.Reviews = append(view.Reviews, rv)
	}

	if !isLoggedIn {
		view.Masked = true
		return view
	}

	download := plan.DownloadSpeed
	upload := plan.UploadSpeed
	view.DownloadSpeed = &download
	view.UploadSpeed = &upload
	view.ServicosInclusos = plan.GetServicosInclusos()
	view.IndicadoPara = plan.GetIndicadoPara()
	view.Capacidade = plan.Capacidade
	return view
}

// MaskCatalog applies the visitor cutoff to an already-built catalog. Logged
// in users see everything; visitors see at most VisitorPlanLimit plans plus
// the count of what was hidden.
func MaskCatalog(views []dto.PlanView, isLoggedIn bool) ([]dto.PlanView, int) {
	if isLoggedIn || len(views) <= VisitorPlanLimit {
		return views, 0
	}
	return views[:VisitorPlanLimit], len(views) - VisitorPlanLimit
}
