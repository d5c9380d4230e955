package repositories

import (
	"time"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanEngagement bundles the signals feeding a plan's ranking score.
type PlanEngagement struct {
	Notas       []int
	Conversions int64
	Clicks      int64
	Favorites   int64
}

type PlanRepository interface {
	Create(plan *models.Plan) error
	Save(plan *models.Plan) error
	FindByID(id string) (*models.Plan, error)
	FindActiveByID(id string) (*models.Plan, error)
	FindActiveByCity(cityID string) ([]models.Plan, error)
	FindActive() ([]models.Plan, error)
	FindAll() ([]models.Plan, error)
	FindByProvider(providerID string) ([]models.Plan, error)
	FindTopByConversions(providerID string, limit int) ([]models.Plan, error)

	IncrementCounter(planID, column string) error
	UpdateRankingScore(planID string, score float64) error
	EngagementFor(planID string) (*PlanEngagement, error)

	CreateClick(click *models.PlanClick) error
	CreateConversion(conversion *models.PlanConversion) error
	IncrementDailyMetric(planID, field string, day time.Time) error
	CreateSnapshot(snapshot *models.PriceSnapshot) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *planRepository) Save(plan *models.Plan) error {
	return r.db.Save(plan).Error
}

func (r *planRepository) FindByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Preload("Provider").First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindActiveByID(id string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.
		Preload("Provider").
		Preload("Provider.Account").
		First(&plan, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindActiveByCity returns the catalog candidates in presentation order:
// sponsored first, then sponsor priority, ranking score, cheapest.
func (r *planRepository) FindActiveByCity(cityID string) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.
		Preload("Provider").
		Where("city_id = ? AND is_active = ?", cityID, true).
		Order("is_sponsored DESC").
		Order("sponsor_priority DESC").
		Order("ranking_score DESC").
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Preload("Provider").Where("is_active = ?", true).Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindAll() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindByProvider(providerID string) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("provider_id = ?", providerID).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindTopByConversions(providerID string, limit int) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Order("conversion_count DESC").
		Limit(limit).
		Find(&plans).Error
	return plans, err
}

// IncrementCounter atomically bumps one of the plan's counter columns.
func (r *planRepository) IncrementCounter(planID, column string) error {
	return r.db.Model(&models.Plan{}).
		Where("id = ?", planID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *planRepository) UpdateRankingScore(planID string, score float64) error {
	return r.db.Model(&models.Plan{}).
		Where("id = ?", planID).
		UpdateColumn("ranking_score", score).Error
}

func (r *planRepository) EngagementFor(planID string) (*PlanEngagement, error) {
	eng := &PlanEngagement{}

	if err := r.db.Model(&models.Review{}).Where("plan_id = ?", planID).Pluck("nota", &eng.Notas).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.PlanConversion{}).Where("plan_id = ?", planID).Count(&eng.Conversions).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.PlanClick{}).Where("plan_id = ?", planID).Count(&eng.Clicks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Favorite{}).Where("plan_id = ?", planID).Count(&eng.Favorites).Error; err != nil {
		return nil, err
	}
	return eng, nil
}

func (r *planRepository) CreateClick(click *models.PlanClick) error {
	return r.db.Create(click).Error
}

func (r *planRepository) CreateConversion(conversion *models.PlanConversion) error {
	return r.db.Create(conversion).Error
}

// IncrementDailyMetric upserts the per-day metric row, leaning on the
// (plan, date) unique index for the conflict target.
func (r *planRepository) IncrementDailyMetric(planID, field string, day time.Time) error {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	metric := models.PlanDailyMetric{PlanID: planID, Date: day}
	switch field {
	case "views":
		metric.Views = 1
	case "clicks":
		metric.Clicks = 1
	case "leads":
		metric.Leads = 1
	case "conversions":
		metric.Conversions = 1
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{field: gorm.Expr(field + " + 1")}),
	}).Create(&metric).Error
}

func (r *planRepository) CreateSnapshot(snapshot *models.PriceSnapshot) error {
	return r.db.Create(snapshot).Error
}
