package models

// Favorite marks a plan saved by a user. The (user, plan) unique index is
// what keeps concurrent toggles from creating duplicates.
type Favorite struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_user_plan_favorite" json:"userId"`
	PlanID string `gorm:"not null;uniqueIndex:idx_user_plan_favorite" json:"planId"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan"`
}
