package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"

	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests.

func nextID(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

type stubPlanRepo struct {
	plans       map[string]*models.Plan
	engagement  map[string]*repositories.PlanEngagement
	clicks      []*models.PlanClick
	conversions []*models.PlanConversion
	counters    map[string]int
	metrics     map[string]int
	snapshots   []*models.PriceSnapshot
	rankings    map[string]float64

	failCreateClick bool
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{
		plans:      map[string]*models.Plan{},
		engagement: map[string]*repositories.PlanEngagement{},
		counters:   map[string]int{},
		metrics:    map[string]int{},
		rankings:   map[string]float64{},
	}
}

func (r *stubPlanRepo) add(plan *models.Plan) *models.Plan {
	if plan.ID == "" {
		plan.ID = nextID("plan", len(r.plans)+1)
	}
	r.plans[plan.ID] = plan
	return plan
}

func (r *stubPlanRepo) Create(plan *models.Plan) error {
	r.add(plan)
	return nil
}

func (r *stubPlanRepo) Save(plan *models.Plan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *stubPlanRepo) FindByID(id string) (*models.Plan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (r *stubPlanRepo) FindActiveByID(id string) (*models.Plan, error) {
	plan, ok := r.plans[id]
	if !ok || !plan.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (r *stubPlanRepo) FindActiveByCity(cityID string) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range r.plans {
		if p.CityID == cityID && p.IsActive {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsSponsored != b.IsSponsored {
			return a.IsSponsored
		}
		if a.SponsorPriority != b.SponsorPriority {
			return a.SponsorPriority > b.SponsorPriority
		}
		if a.RankingScore != b.RankingScore {
			return a.RankingScore > b.RankingScore
		}
		return a.Price < b.Price
	})
	return out, nil
}

func (r *stubPlanRepo) FindActive() ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range r.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPlanRepo) FindAll() ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPlanRepo) FindByProvider(providerID string) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range r.plans {
		if p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) FindTopByConversions(providerID string, limit int) ([]models.Plan, error) {
	out, _ := r.FindByProvider(providerID)
	sort.Slice(out, func(i, j int) bool { return out[i].ConversionCount > out[j].ConversionCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPlanRepo) IncrementCounter(planID, column string) error {
	r.counters[planID+":"+column]++
	return nil
}

func (r *stubPlanRepo) UpdateRankingScore(planID string, score float64) error {
	r.rankings[planID] = score
	return nil
}

func (r *stubPlanRepo) EngagementFor(planID string) (*repositories.PlanEngagement, error) {
	if eng, ok := r.engagement[planID]; ok {
		return eng, nil
	}
	return &repositories.PlanEngagement{}, nil
}

func (r *stubPlanRepo) CreateClick(click *models.PlanClick) error {
	if r.failCreateClick {
		return fmt.Errorf("click insert failed")
	}
	r.clicks = append(r.clicks, click)
	return nil
}

func (r *stubPlanRepo) CreateConversion(conversion *models.PlanConversion) error {
	r.conversions = append(r.conversions, conversion)
	return nil
}

func (r *stubPlanRepo) IncrementDailyMetric(planID, field string, day time.Time) error {
	r.metrics[planID+":"+field]++
	return nil
}

func (r *stubPlanRepo) CreateSnapshot(snapshot *models.PriceSnapshot) error {
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

type stubCityRepo struct {
	cities map[string]*models.City
}

func newStubCityRepo(slugs ...string) *stubCityRepo {
	r := &stubCityRepo{cities: map[string]*models.City{}}
	for i, slug := range slugs {
		r.cities[slug] = &models.City{
			BaseModel: models.BaseModel{ID: nextID("city", i+1)},
			Name:      slug,
			Slug:      slug,
			IsActive:  true,
		}
	}
	return r
}

func (r *stubCityRepo) FindActiveBySlug(slug string) (*models.City, error) {
	city, ok := r.cities[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return city, nil
}

func (r *stubCityRepo) FindActive() ([]models.City, error) {
	var out []models.City
	for _, c := range r.cities {
		out = append(out, *c)
	}
	return out, nil
}

type stubReviewRepo struct {
	reviews []models.Review
}

func (r *stubReviewRepo) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = nextID("review", len(r.reviews)+1)
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *stubReviewRepo) Exists(userID, planID string) (bool, error) {
	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.PlanID == planID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubReviewRepo) FindRecentByPlan(planID string, limit int) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.PlanID == planID {
			out = append(out, rev)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubFavoriteRepo struct {
	favorites map[string]*models.Favorite
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{favorites: map[string]*models.Favorite{}}
}

func (r *stubFavoriteRepo) Find(userID, planID string) (*models.Favorite, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.PlanID == planID {
			return f, nil
		}
	}
	return nil, nil
}

func (r *stubFavoriteRepo) Create(favorite *models.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = nextID("fav", len(r.favorites)+1)
	}
	r.favorites[favorite.ID] = favorite
	return nil
}

func (r *stubFavoriteRepo) Delete(id string) error {
	delete(r.favorites, id)
	return nil
}

func (r *stubFavoriteRepo) CountByUser(userID string) (int64, error) {
	var count int64
	for _, f := range r.favorites {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *stubFavoriteRepo) IsFavorited(userID, planID string) (bool, error) {
	f, _ := r.Find(userID, planID)
	return f != nil, nil
}

func (r *stubFavoriteRepo) FindByUser(userID string) ([]models.Favorite, error) {
	var out []models.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	users       map[string]*models.User
	badges      map[string]bool
	profiles    map[string]*models.UserProfile
	referrals   []*models.Referral
	memberships map[string]*models.ProviderUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:       map[string]*models.User{},
		badges:      map[string]bool{},
		profiles:    map[string]*models.UserProfile{},
		memberships: map[string]*models.ProviderUser{},
	}
}

func (r *stubUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = nextID("user", len(r.users)+1)
	}
	r.users[user.ID] = user
	return user
}

func (r *stubUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.add(user)
	return nil
}

func (r *stubUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) SetRefreshToken(userID string, token *string) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = token
	return nil
}

func (r *stubUserRepo) FindProviderMembership(userID string) (*models.ProviderUser, error) {
	return r.memberships[userID], nil
}

func (r *stubUserRepo) CreateReferral(referral *models.Referral) error {
	r.referrals = append(r.referrals, referral)
	return nil
}

func (r *stubUserRepo) AwardBadge(userID, slug string) error {
	r.badges[userID+":"+slug] = true
	return nil
}

func (r *stubUserRepo) UpsertProfile(profile *models.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *stubUserRepo) FindProfile(userID string) (*models.UserProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

type stubLeadRepo struct {
	leads map[string]*models.Lead
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{leads: map[string]*models.Lead{}}
}

func (r *stubLeadRepo) Create(lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = nextID("lead", len(r.leads)+1)
	}
	r.leads[lead.ID] = lead
	return nil
}

func (r *stubLeadRepo) FindByID(id string) (*models.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lead, nil
}

func (r *stubLeadRepo) UpdateStatus(id string, status models.LeadStatus) error {
	lead, ok := r.leads[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lead.Status = status
	return nil
}

func (r *stubLeadRepo) MarkNotified(id string, at time.Time) error {
	lead, ok := r.leads[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lead.NotificationSent = true
	lead.ProviderNotifiedAt = &at
	return nil
}

func (r *stubLeadRepo) FindByProvider(providerID string, status models.LeadStatus, page, limit int) ([]models.Lead, int64, error) {
	var out []models.Lead
	for _, l := range r.leads {
		if l.ProviderID != providerID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		out = append(out, *l)
	}
	total := int64(len(out))
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *stubLeadRepo) CountByProviderSince(providerID string, since time.Time) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if l.ProviderID == providerID && !l.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *stubLeadRepo) CountByProvider(providerID string) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if l.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (r *stubLeadRepo) CountByStatus(providerID string) (map[models.LeadStatus]int64, error) {
	counts := map[models.LeadStatus]int64{}
	for _, l := range r.leads {
		if l.ProviderID == providerID {
			counts[l.Status]++
		}
	}
	return counts, nil
}

func (r *stubLeadRepo) CountSince(since time.Time) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if !l.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type stubAlertRepo struct {
	alerts map[string]*models.PriceAlert
}

func newStubAlertRepo() *stubAlertRepo {
	return &stubAlertRepo{alerts: map[string]*models.PriceAlert{}}
}

func (r *stubAlertRepo) Create(alert *models.PriceAlert) error {
	if alert.ID == "" {
		alert.ID = nextID("alert", len(r.alerts)+1)
	}
	r.alerts[alert.ID] = alert
	return nil
}

func (r *stubAlertRepo) FindByID(id string) (*models.PriceAlert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return alert, nil
}

func (r *stubAlertRepo) FindByUser(userID string) ([]models.PriceAlert, error) {
	var out []models.PriceAlert
	for _, a := range r.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAlertRepo) FindActive() ([]models.PriceAlert, error) {
	var out []models.PriceAlert
	for _, a := range r.alerts {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAlertRepo) CountActiveByUser(userID string) (int64, error) {
	var count int64
	for _, a := range r.alerts {
		if a.UserID == userID && a.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *stubAlertRepo) Delete(id string) error {
	delete(r.alerts, id)
	return nil
}

func (r *stubAlertRepo) StampTriggered(id string, at time.Time) error {
	alert, ok := r.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	alert.LastTriggeredAt = &at
	return nil
}

type stubProviderRepo struct {
	providers    map[string]*models.Provider
	accounts     map[string]*models.ProviderAccount
	transactions []*models.PaymentTransaction
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{
		providers: map[string]*models.Provider{},
		accounts:  map[string]*models.ProviderAccount{},
	}
}

func (r *stubProviderRepo) add(provider *models.Provider, account *models.ProviderAccount) {
	if provider.ID == "" {
		provider.ID = nextID("provider", len(r.providers)+1)
	}
	r.providers[provider.ID] = provider
	if account != nil {
		account.ProviderID = provider.ID
		r.accounts[provider.ID] = account
	}
}

func (r *stubProviderRepo) FindByID(id string) (*models.Provider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return provider, nil
}

func (r *stubProviderRepo) FindByIDWithAccount(id string) (*models.Provider, error) {
	provider, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	provider.Account = r.accounts[id]
	return provider, nil
}

func (r *stubProviderRepo) SlugExists(slug string) (bool, error) {
	for _, p := range r.providers {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProviderRepo) FindAccountByProvider(providerID string) (*models.ProviderAccount, error) {
	account, ok := r.accounts[providerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return account, nil
}

func (r *stubProviderRepo) FindAccountByBillingSub(subID string) (*models.ProviderAccount, error) {
	for _, a := range r.accounts {
		if a.BillingSubID != nil && *a.BillingSubID == subID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProviderRepo) UpdateAccount(account *models.ProviderAccount) error {
	r.accounts[account.ProviderID] = account
	return nil
}

func (r *stubProviderRepo) CountActivePlans(providerID string) (int64, error) {
	return 0, nil
}

func (r *stubProviderRepo) Count() (int64, error) {
	return int64(len(r.providers)), nil
}

func (r *stubProviderRepo) CreatePaymentTransaction(tx *models.PaymentTransaction) error {
	for _, existing := range r.transactions {
		if existing.ExternalID == tx.ExternalID {
			return nil
		}
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

type stubAnalyticsRepo struct {
	events   []*models.Event
	searches []*models.SearchHistory
}

func (r *stubAnalyticsRepo) CreateEvent(event *models.Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *stubAnalyticsRepo) CreateSearchHistory(history *models.SearchHistory) error {
	r.searches = append(r.searches, history)
	return nil
}

func (r *stubAnalyticsRepo) EventBreakdownSince(since time.Time) ([]repositories.EventCount, error) {
	counts := map[string]int64{}
	for _, e := range r.events {
		counts[e.Type]++
	}
	var out []repositories.EventCount
	for t, c := range counts {
		out = append(out, repositories.EventCount{Type: t, Count: c})
	}
	return out, nil
}

func (r *stubAnalyticsRepo) CountUsers() (int64, error)       { return 0, nil }
func (r *stubAnalyticsRepo) CountActivePlans() (int64, error) { return 0, nil }

func (r *stubAnalyticsRepo) eventTypes() []string {
	var types []string
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

type stubWebhook struct {
	calls []string
	fail  bool
}

func (w *stubWebhook) Post(ctx context.Context, url string, payload interface{}) error {
	w.calls = append(w.calls, url)
	if w.fail {
		return fmt.Errorf("webhook endpoint returned status 500")
	}
	return nil
}

type stubMailer struct {
	leadMails  []string
	alertMails []string
	fail       bool
}

func (m *stubMailer) SendLeadNotification(to string, lead *models.Lead, planName, providerName string) error {
	m.leadMails = append(m.leadMails, to)
	if m.fail {
		return fmt.Errorf("smtp send failed")
	}
	return nil
}

func (m *stubMailer) SendPriceAlert(to string, plans []models.Plan, alert *models.PriceAlert) error {
	m.alertMails = append(m.alertMails, to)
	if m.fail {
		return fmt.Errorf("smtp send failed")
	}
	return nil
}
