package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is a sellable internet offering from one provider in one city.
// Counters are maintained by atomic increments; RankingScore is overwritten
// by the periodic ranking batch. Plans are never hard-deleted, only
// deactivated.
type Plan struct {
	BaseModel
	ProviderID string `gorm:"not null;index" json:"providerId"`
	CityID     string `gorm:"not null;index" json:"cityId"`

	Name          string  `gorm:"not null" json:"name"`
	DownloadSpeed int     `gorm:"not null" json:"downloadSpeed"`
	UploadSpeed   int     `gorm:"not null" json:"uploadSpeed"`
	Price         float64 `gorm:"not null" json:"price"`
	Fidelidade    int     `gorm:"default:12" json:"fidelidade"`
	Capacidade    *string `json:"capacidade,omitempty"`

	ServicosInclusos datatypes.JSON `gorm:"type:jsonb" json:"-"`
	IndicadoPara     datatypes.JSON `gorm:"type:jsonb" json:"-"`
	Categorias       datatypes.JSON `gorm:"type:jsonb" json:"-"`
	// CepsAtendidos holds 5-digit CEP prefixes, not full postal codes.
	CepsAtendidos datatypes.JSON `gorm:"type:jsonb" json:"-"`

	IsSponsored     bool `gorm:"default:false;index" json:"isSponsored"`
	SponsorPriority int  `gorm:"default:0" json:"sponsorPriority"`

	PromotionPrice     *float64   `json:"promotionPrice,omitempty"`
	PromotionExpiresAt *time.Time `json:"promotionExpiresAt,omitempty"`
	PromotionLabel     *string    `json:"promotionLabel,omitempty"`

	ViewCount       int     `gorm:"default:0" json:"viewCount"`
	ClickCount      int     `gorm:"default:0" json:"clickCount"`
	ConversionCount int     `gorm:"default:0" json:"conversionCount"`
	RankingScore    float64 `gorm:"default:0" json:"rankingScore"`

	IsActive bool `gorm:"default:true;index" json:"isActive"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"provider"`
	City     City     `gorm:"foreignKey:CityID" json:"-"`
	Reviews  []Review `gorm:"foreignKey:PlanID" json:"-"`
}

func (p *Plan) GetServicosInclusos() []string { return ParseStringList(p.ServicosInclusos) }
func (p *Plan) GetIndicadoPara() []string     { return ParseStringList(p.IndicadoPara) }
func (p *Plan) GetCategorias() []string       { return ParseStringList(p.Categorias) }
func (p *Plan) GetCepsAtendidos() []string    { return ParseStringList(p.CepsAtendidos) }

// ServesCep reports whether the plan serves the given 5-digit CEP prefix.
func (p *Plan) ServesCep(prefix string) bool {
	for _, cep := range p.GetCepsAtendidos() {
		if cep == prefix {
			return true
		}
	}
	return false
}

// HasCategoria reports whether the plan is tagged with the category.
func (p *Plan) HasCategoria(categoria string) bool {
	for _, c := range p.GetCategorias() {
		if c == categoria {
			return true
		}
	}
	return false
}

// PromotionActive reports whether the promotional price is still valid at
// the given instant.
func (p *Plan) PromotionActive(now time.Time) bool {
	return p.PromotionPrice != nil && p.PromotionExpiresAt != nil && now.Before(*p.PromotionExpiresAt)
}

// PlanClick is the per-click event row backing the click counter.
type PlanClick struct {
	BaseModel
	PlanID string  `gorm:"not null;index" json:"planId"`
	UserID *string `gorm:"index" json:"userId,omitempty"`
	IP     *string `json:"-"`
}

// PlanConversion is the per-lead conversion event row.
type PlanConversion struct {
	BaseModel
	PlanID string  `gorm:"not null;index" json:"planId"`
	UserID *string `gorm:"index" json:"userId,omitempty"`
}

// PlanDailyMetric aggregates per-plan engagement per calendar day. The
// (plan, date) unique index backs the upsert-increment path.
type PlanDailyMetric struct {
	BaseModel
	PlanID      string    `gorm:"not null;uniqueIndex:idx_plan_metric_day" json:"planId"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_plan_metric_day" json:"date"`
	Views       int       `gorm:"default:0" json:"views"`
	Clicks      int       `gorm:"default:0" json:"clicks"`
	Leads       int       `gorm:"default:0" json:"leads"`
	Conversions int       `gorm:"default:0" json:"conversions"`
}

// PriceSnapshot is an append-only capture of a plan's price at a point in
// time. Never updated, never deleted.
type PriceSnapshot struct {
	BaseModel
	PlanID string  `gorm:"not null;index" json:"planId"`
	Price  float64 `gorm:"not null" json:"price"`
}
