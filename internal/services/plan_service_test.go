package services

import (
	"context"
	"testing"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planServiceFixture struct {
	plans     *stubPlanRepo
	cities    *stubCityRepo
	reviews   *stubReviewRepo
	favorites *stubFavoriteRepo
	users     *stubUserRepo
	analytics *stubAnalyticsRepo
	service   PlanService
}

func newPlanServiceFixture() *planServiceFixture {
	f := &planServiceFixture{
		plans:     newStubPlanRepo(),
		cities:    newStubCityRepo("campo-grande"),
		reviews:   &stubReviewRepo{},
		favorites: newStubFavoriteRepo(),
		users:     newStubUserRepo(),
		analytics: &stubAnalyticsRepo{},
	}
	f.service = NewPlanService(f.plans, f.cities, f.reviews, f.favorites, f.users, f.analytics, "campo-grande")
	return f
}

func (f *planServiceFixture) addPlan(id string, mutate func(*models.Plan)) *models.Plan {
	plan := testPlan()
	plan.ID = id
	plan.CityID = "city-1"
	if mutate != nil {
		mutate(plan)
	}
	return f.plans.add(plan)
}

func TestQueryPlansUnknownCityIs404(t *testing.T) {
	f := newPlanServiceFixture()

	_, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{CitySlug: "dourados"})

	assert.ErrorIs(t, err, apperrors.ErrCityNotFound)
}

func TestQueryPlansVisitorCutoff(t *testing.T) {
	f := newPlanServiceFixture()
	for _, id := range []string{"a", "b", "c", "d"} {
		f.addPlan(id, nil)
	}

	resp, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.HiddenCount)
	assert.Len(t, resp.Plans, VisitorPlanLimit)
	assert.False(t, resp.IsLoggedIn)
	for _, view := range resp.Plans {
		assert.True(t, view.Masked)
		assert.Nil(t, view.DownloadSpeed)
	}
}

func TestQueryPlansLoggedInSeesEverything(t *testing.T) {
	f := newPlanServiceFixture()
	for _, id := range []string{"a", "b", "c", "d"} {
		f.addPlan(id, nil)
	}

	resp, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{
		UserID:     "user-1",
		IsLoggedIn: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Zero(t, resp.HiddenCount)
	assert.Len(t, resp.Plans, 4)
	for _, view := range resp.Plans {
		assert.False(t, view.Masked)
		assert.NotNil(t, view.DownloadSpeed)
	}
}

func TestQueryPlansPresentationOrder(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("cheap", func(p *models.Plan) { p.Price = 49.90 })
	f.addPlan("ranked", func(p *models.Plan) { p.RankingScore = 80 })
	f.addPlan("sponsored-low", func(p *models.Plan) { p.IsSponsored = true; p.SponsorPriority = 1 })
	f.addPlan("sponsored-high", func(p *models.Plan) { p.IsSponsored = true; p.SponsorPriority = 9 })

	resp, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{IsLoggedIn: true, UserID: "user-1"})

	require.NoError(t, err)
	ids := make([]string, 0, len(resp.Plans))
	for _, v := range resp.Plans {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"sponsored-high", "sponsored-low", "ranked", "cheap"}, ids)
}

func TestQueryPlansCepAndCategoryFilters(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("covered", func(p *models.Plan) {
		p.CepsAtendidos = models.StringList([]string{"79000", "79002"})
	})
	f.addPlan("elsewhere", func(p *models.Plan) {
		p.CepsAtendidos = models.StringList([]string{"79100"})
	})
	f.addPlan("no-coverage", nil)

	resp, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{
		Cep:        "79000-123",
		IsLoggedIn: true,
		UserID:     "user-1",
	})

	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "covered", resp.Plans[0].ID)

	// "Todos" is a sentinel, not a category.
	resp, err = f.service.QueryPlans(context.Background(), dto.PlanQuery{
		Category:   "Todos",
		IsLoggedIn: true,
		UserID:     "user-1",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Plans, 3)

	resp, err = f.service.QueryPlans(context.Background(), dto.PlanQuery{
		Category:   "Empresarial",
		IsLoggedIn: true,
		UserID:     "user-1",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Plans)
}

func TestQueryPlansRecordsSearchHistoryForAuthedCepSearch(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", nil)

	_, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{
		Cep:        "79000-000",
		UserID:     "user-1",
		IsLoggedIn: true,
	})

	require.NoError(t, err)
	require.Len(t, f.analytics.searches, 1)
	assert.Equal(t, "79000000", f.analytics.searches[0].Cep)
	assert.Contains(t, f.analytics.eventTypes(), models.EventCepSearched)
}

func TestGetPlanByIDBumpsViewCounters(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", nil)

	view, err := f.service.GetPlanByID(context.Background(), "a", "user-1", true)

	require.NoError(t, err)
	assert.Equal(t, "a", view.ID)
	assert.Equal(t, 1, f.plans.counters["a:view_count"])
	assert.Equal(t, 1, f.plans.metrics["a:views"])
}

func TestGetPlanByIDInactiveIs404(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", func(p *models.Plan) { p.IsActive = false })

	_, err := f.service.GetPlanByID(context.Background(), "a", "", false)

	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestRegisterClickAlwaysSucceeds(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", nil)

	require.NoError(t, f.service.RegisterClick(context.Background(), "a", nil, "10.0.0.1"))
	assert.Len(t, f.plans.clicks, 1)
	assert.Equal(t, 1, f.plans.counters["a:click_count"])

	// Unknown plan: the click is dropped, not an error.
	require.NoError(t, f.service.RegisterClick(context.Background(), "ghost", nil, ""))

	// Failing click insert is swallowed too.
	f.plans.failCreateClick = true
	require.NoError(t, f.service.RegisterClick(context.Background(), "a", nil, ""))
}

func TestCreateReviewOncePerUserAndPlan(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", nil)

	review, err := f.service.CreateReview(context.Background(), "user-1", "a", &dto.CreateReviewRequest{
		Nota:       5,
		Comentario: "Excelente velocidade",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Nota)

	_, err = f.service.CreateReview(context.Background(), "user-1", "a", &dto.CreateReviewRequest{
		Nota:       1,
		Comentario: "Mudei de ideia",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestRecommendOrdersByCompatibility(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("gamer", func(p *models.Plan) {
		p.DownloadSpeed = 500
		p.Price = 120
		p.Categorias = models.StringList([]string{"Gaming"})
		p.IndicadoPara = models.StringList([]string{"Gaming"})
	})
	f.addPlan("basic", func(p *models.Plan) {
		p.DownloadSpeed = 100
		p.Price = 60
		p.Categorias = models.StringList([]string{"Residencial"})
		p.IndicadoPara = models.StringList([]string{})
	})

	views, err := f.service.Recommend(context.Background(), "user-1", &dto.RecommendRequest{
		Pessoas:    2,
		Atividades: []string{"Gaming"},
	})

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "gamer", views[0].ID)
	assert.Greater(t, views[0].CompatibilityScore, views[1].CompatibilityScore)

	// The questionnaire answers become the user's stored profile.
	profile, ok := f.users.profiles["user-1"]
	require.True(t, ok)
	assert.Equal(t, 2, profile.Pessoas)
	assert.Contains(t, f.analytics.eventTypes(), models.EventQuestionnaireCompleted)
}

func TestRecommendScoresWholeActiveCatalog(t *testing.T) {
	f := newPlanServiceFixture()
	for i := 0; i < 6; i++ {
		f.addPlan(nextID("p", i+1), nil)
	}
	f.addPlan("elsewhere", func(p *models.Plan) { p.CityID = "city-9" })
	f.addPlan("off", func(p *models.Plan) { p.IsActive = false })

	views, err := f.service.Recommend(context.Background(), "user-1", &dto.RecommendRequest{
		Pessoas:    2,
		Atividades: []string{"Streaming"},
	})

	require.NoError(t, err)
	// Every active plan is scored and returned, regardless of city.
	require.Len(t, views, 7)
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.Contains(t, ids, "elsewhere")
	assert.NotContains(t, ids, "off")
}

func TestQueryPlansCarriesCatalogEngagement(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("a", nil)
	f.plans.engagement["a"] = &repositories.PlanEngagement{
		Notas:     []int{5, 4, 4},
		Favorites: 7,
	}

	resp, err := f.service.QueryPlans(context.Background(), dto.PlanQuery{
		UserID:     "user-1",
		IsLoggedIn: true,
	})

	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	view := resp.Plans[0]
	assert.Equal(t, 4.3, view.AvgRating, "average rating rounds to one decimal")
	assert.Equal(t, int64(3), view.ReviewCount)
	assert.Equal(t, int64(7), view.FavoriteCount)

	// Catalog reviews are nota-only stubs.
	require.Len(t, view.Reviews, 3)
	for _, r := range view.Reviews {
		assert.NotZero(t, r.Nota)
		assert.Empty(t, r.ID)
		assert.Nil(t, r.CreatedAt)
	}
}

func TestRecalculateRankingsWritesScores(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("perfect", nil)
	f.addPlan("idle", nil)
	f.plans.engagement["perfect"] = &repositories.PlanEngagement{
		Notas:       []int{5, 5},
		Conversions: 10,
		Clicks:      100,
		Favorites:   20,
	}

	updated, err := f.service.RecalculateRankings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.InDelta(t, 100.0, f.plans.rankings["perfect"], 1e-9)
	assert.Zero(t, f.plans.rankings["idle"])
}

func TestRecalculateRankingsIncludesInactivePlans(t *testing.T) {
	f := newPlanServiceFixture()
	f.addPlan("live", nil)
	f.addPlan("paused", func(p *models.Plan) { p.IsActive = false })
	f.plans.engagement["paused"] = &repositories.PlanEngagement{
		Notas:  []int{5, 5},
		Clicks: 100,
	}

	updated, err := f.service.RecalculateRankings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	// A paused plan keeps a current score so it doesn't come back stale.
	assert.InDelta(t, 60.0, f.plans.rankings["paused"], 1e-9)
}
