package models

import "time"

// PriceAlert is a user's standing watch for matching plans. A user may hold
// at most 5 active alerts. Matching triggers an email and stamps
// LastTriggeredAt; alerts are only removed by their owner.
type PriceAlert struct {
	BaseModel
	UserID   string  `gorm:"not null;index" json:"userId"`
	Cep      string  `gorm:"not null" json:"cep"`
	MaxPrice float64 `gorm:"not null" json:"maxPrice"`
	MinSpeed *int    `json:"minSpeed,omitempty"`
	PlanID   *string `json:"planId,omitempty"`

	IsActive        bool       `gorm:"default:true" json:"isActive"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt,omitempty"`

	User User  `gorm:"foreignKey:UserID" json:"-"`
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
