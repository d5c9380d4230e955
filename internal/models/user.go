package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Password     string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(32);default:'USER'" json:"role"`
	Address      *string  `json:"address,omitempty"`
	IsActive     bool     `gorm:"default:true" json:"isActive"`
	RefreshToken *string  `json:"-"`
}

// UserBadge is an award-once record; the (user, badge) unique index is
// what makes duplicate awards impossible under concurrency.
type UserBadge struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	Slug   string `gorm:"not null;uniqueIndex:idx_user_badge" json:"slug"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// UserProfile stores the questionnaire answers that feed plan
// recommendations.
type UserProfile struct {
	BaseModel
	UserID          string         `gorm:"uniqueIndex;not null" json:"userId"`
	Pessoas         int            `gorm:"default:1" json:"pessoas"`
	Dispositivos    int            `gorm:"default:0" json:"dispositivos"`
	Atividades      datatypes.JSON `gorm:"type:jsonb" json:"-"`
	VelocidadeAtual *int           `json:"velocidadeAtual,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *UserProfile) GetAtividades() []string {
	return ParseStringList(p.Atividades)
}

// Referral links a referred signup back to the referring user.
type Referral struct {
	BaseModel
	ReferrerID string `gorm:"not null;index" json:"referrerId"`
	ReferredID string `gorm:"not null;uniqueIndex" json:"referredId"`
	Status     string `gorm:"default:'COMPLETED'" json:"status"`
}

// SearchHistory records a CEP search by a logged-in user.
type SearchHistory struct {
	BaseModel
	UserID       string    `gorm:"not null;index" json:"userId"`
	Cep          string    `gorm:"not null" json:"cep"`
	ResultsCount int       `json:"resultsCount"`
	CityID       *string   `json:"cityId,omitempty"`
	SearchedAt   time.Time `gorm:"default:now()" json:"searchedAt"`
}
