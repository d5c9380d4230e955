package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"conectacg_backend/internal/algorithms"
	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"

	"gorm.io/gorm"
)

const detailReviewLimit = 50

type PlanService interface {
	QueryPlans(ctx context.Context, q dto.PlanQuery) (*dto.PlanListResponse, error)
	GetPlanByID(ctx context.Context, planID, userID string, isLoggedIn bool) (*dto.PlanView, error)
	RegisterClick(ctx context.Context, planID string, userID *string, ip string) error
	CreateReview(ctx context.Context, userID, planID string, req *dto.CreateReviewRequest) (*models.Review, error)
	Recommend(ctx context.Context, userID string, req *dto.RecommendRequest) ([]dto.PlanView, error)
	RecalculateRankings(ctx context.Context) (int, error)
}

type planService struct {
	plans     repositories.PlanRepository
	cities    repositories.CityRepository
	reviews   repositories.ReviewRepository
	favorites repositories.FavoriteRepository
	users     repositories.UserRepository
	analytics repositories.AnalyticsRepository

	defaultCitySlug string
}

func NewPlanService(
	plans repositories.PlanRepository,
	cities repositories.CityRepository,
	reviews repositories.ReviewRepository,
	favorites repositories.FavoriteRepository,
	users repositories.UserRepository,
	analytics repositories.AnalyticsRepository,
	defaultCitySlug string,
) PlanService {
	return &planService{
		plans:           plans,
		cities:          cities,
		reviews:         reviews,
		favorites:       favorites,
		users:           users,
		analytics:       analytics,
		defaultCitySlug: defaultCitySlug,
	}
}

// QueryPlans returns the catalog for one city, filtered by CEP coverage and
// category, in presentation order, masked for the viewer. An unresolvable
// city slug is a 404; there is no fallback city.
func (s *planService) QueryPlans(ctx context.Context, q dto.PlanQuery) (*dto.PlanListResponse, error) {
	slug := q.CitySlug
	if slug == "" {
		slug = s.defaultCitySlug
	}

	city, err := s.cities.FindActiveBySlug(slug)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrCityNotFound)
	}

	plans, err := s.plans.FindActiveByCity(city.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	prefix := ""
	if q.Cep != "" {
		prefix = cepPrefix(q.Cep)
	}

	filtered := make([]models.Plan, 0, len(plans))
	for _, plan := range plans {
		if prefix != "" && !plan.ServesCep(prefix) {
			continue
		}
		if q.Category != "" && q.Category != "Todos" && !plan.HasCategoria(q.Category) {
			continue
		}
		filtered = append(filtered, plan)
	}

	now := time.Now()
	views := make([]dto.PlanView, 0, len(filtered))
	for i := range filtered {
		plan := &filtered[i]

		in, err := s.catalogInput(plan)
		if err != nil {
			return nil, err
		}
		if q.IsLoggedIn && q.UserID != "" {
			favorited, err := s.favorites.IsFavorited(q.UserID, plan.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			in.IsFavorited = favorited
		}
		views = append(views, BuildPlanView(in, q.IsLoggedIn, now))
	}

	total := len(views)
	visible, hidden := MaskCatalog(views, q.IsLoggedIn)

	if q.IsLoggedIn && q.UserID != "" && q.Cep != "" {
		bestEffort(ctx, "search history", func() error {
			return s.analytics.CreateSearchHistory(&models.SearchHistory{
				UserID:       q.UserID,
				Cep:          normalizeCep(q.Cep),
				ResultsCount: total,
				CityID:       &city.ID,
				SearchedAt:   now,
			})
		})
		recordEvent(ctx, s.analytics, models.EventCepSearched, &q.UserID)
	}

	return &dto.PlanListResponse{
		Plans:       visible,
		Total:       total,
		HiddenCount: hidden,
		IsLoggedIn:  q.IsLoggedIn,
	}, nil
}

// GetPlanByID returns one plan's detail view, masked for the viewer, and
// bumps the view counters best-effort.
func (s *planService) GetPlanByID(ctx context.Context, planID, userID string, isLoggedIn bool) (*dto.PlanView, error) {
	plan, err := s.plans.FindActiveByID(planID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrPlanNotFound)
	}

	eng, err := s.plans.EngagementFor(plan.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	reviews, err := s.reviews.FindRecentByPlan(plan.ID, detailReviewLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	in := PlanViewInput{
		Plan:          plan,
		Reviews:       reviews,
		AvgRating:     algorithms.AverageRating(eng.Notas),
		ReviewCount:   int64(len(eng.Notas)),
		FavoriteCount: eng.Favorites,
	}
	if userID != "" {
		favorited, err := s.favorites.IsFavorited(userID, plan.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		in.IsFavorited = favorited
	}

	bestEffort(ctx, "plan view counter", func() error {
		return s.plans.IncrementCounter(plan.ID, "view_count")
	})
	bestEffort(ctx, "plan daily views", func() error {
		return s.plans.IncrementDailyMetric(plan.ID, "views", time.Now())
	})
	var eventUser *string
	if userID != "" {
		eventUser = &userID
	}
	recordEvent(ctx, s.analytics, models.EventPlanDetailOpened, eventUser)

	view := BuildPlanView(in, isLoggedIn, time.Now())
	return &view, nil
}

// RegisterClick records a plan click. The endpoint always succeeds: a click
// on a plan that has since gone inactive is simply dropped.
func (s *planService) RegisterClick(ctx context.Context, planID string, userID *string, ip string) error {
	plan, err := s.plans.FindActiveByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	click := &models.PlanClick{PlanID: plan.ID, UserID: userID}
	if ip != "" {
		click.IP = &ip
	}
	bestEffort(ctx, "plan click row", func() error {
		return s.plans.CreateClick(click)
	})
	bestEffort(ctx, "plan click counter", func() error {
		return s.plans.IncrementCounter(plan.ID, "click_count")
	})
	bestEffort(ctx, "plan daily clicks", func() error {
		return s.plans.IncrementDailyMetric(plan.ID, "clicks", time.Now())
	})
	return nil
}

// CreateReview publishes a review. One review per user per plan; the unique
// index backs the conflict under concurrency.
func (s *planService) CreateReview(ctx context.Context, userID, planID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	plan, err := s.plans.FindActiveByID(planID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrPlanNotFound)
	}

	exists, err := s.reviews.Exists(userID, plan.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:     userID,
		PlanID:     plan.ID,
		Nota:       req.Nota,
		Comentario: req.Comentario,
	}
	if err := s.reviews.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, apperrors.InternalError(err)
	}

	recordEvent(ctx, s.analytics, models.EventReviewPublished, &userID)
	bestEffort(ctx, "ranking refresh after review", func() error {
		return s.recalculatePlan(plan.ID)
	})
	return review, nil
}

// Recommend scores every active plan against the questionnaire answers and
// returns all of them, best match first. The answers are persisted as the
// user's profile for later sessions.
func (s *planService) Recommend(ctx context.Context, userID string, req *dto.RecommendRequest) ([]dto.PlanView, error) {
	bestEffort(ctx, "questionnaire profile upsert", func() error {
		return s.users.UpsertProfile(&models.UserProfile{
			UserID:          userID,
			Pessoas:         req.Pessoas,
			Dispositivos:    req.Dispositivos,
			Atividades:      models.StringList(req.Atividades),
			VelocidadeAtual: req.VelocidadeAtual,
		})
	})

	plans, err := s.plans.FindActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	prefix := ""
	if req.Cep != "" {
		prefix = cepPrefix(req.Cep)
	}

	type scored struct {
		plan  *models.Plan
		score float64
	}
	candidates := make([]scored, 0, len(plans))
	for i := range plans {
		plan := &plans[i]
		if prefix != "" && !plan.ServesCep(prefix) {
			continue
		}
		candidates = append(candidates, scored{
			plan:  plan,
			score: algorithms.CompatibilityScore(plan, req.Atividades, req.Pessoas),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].plan.RankingScore > candidates[j].plan.RankingScore
	})

	now := time.Now()
	views := make([]dto.PlanView, 0, len(candidates))
	for _, c := range candidates {
		in, err := s.catalogInput(c.plan)
		if err != nil {
			return nil, err
		}
		view := BuildPlanView(in, true, now)
		view.CompatibilityScore = c.score
		views = append(views, view)
	}

	recordEvent(ctx, s.analytics, models.EventQuestionnaireCompleted, &userID)
	return views, nil
}

// RecalculateRankings recomputes every plan's ranking score, inactive plans
// included, so a reactivated plan comes back with a current score. A plan
// that fails is logged and skipped; the batch keeps going.
func (s *planService) RecalculateRankings(ctx context.Context) (int, error) {
	plans, err := s.plans.FindAll()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	updated := 0
	for i := range plans {
		if err := s.recalculatePlan(plans[i].ID); err != nil {
			logger.WithError(err).Warn("ranking recalculation failed", "planId", plans[i].ID)
			continue
		}
		updated++
	}
	return updated, nil
}

// catalogInput assembles the view input for a catalog entry: aggregate
// engagement plus nota-only review stubs, mirroring the slim includes the
// list responses carry.
func (s *planService) catalogInput(plan *models.Plan) (PlanViewInput, error) {
	eng, err := s.plans.EngagementFor(plan.ID)
	if err != nil {
		return PlanViewInput{}, apperrors.InternalError(err)
	}
	return PlanViewInput{
		Plan:          plan,
		Reviews:       notaOnlyReviews(eng.Notas),
		AvgRating:     algorithms.AverageRating(eng.Notas),
		ReviewCount:   int64(len(eng.Notas)),
		FavoriteCount: eng.Favorites,
	}, nil
}

func notaOnlyReviews(notas []int) []models.Review {
	reviews := make([]models.Review, len(notas))
	for i, nota := range notas {
		reviews[i].Nota = nota
	}
	return reviews
}

func (s *planService) recalculatePlan(planID string) error {
	eng, err := s.plans.EngagementFor(planID)
	if err != nil {
		return err
	}
	score := algorithms.RankingScore(
		algorithms.AverageRating(eng.Notas),
		eng.Conversions,
		eng.Clicks,
		eng.Favorites,
	)
	return s.plans.UpdateRankingScore(planID, score)
}
