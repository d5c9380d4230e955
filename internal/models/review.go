package models

// Review is one user's rating of one plan. The (user, plan) unique index
// enforces at most one review per pair; reviews are immutable once created.
type Review struct {
	BaseModel
	UserID     string `gorm:"not null;uniqueIndex:idx_user_plan_review" json:"userId"`
	PlanID     string `gorm:"not null;uniqueIndex:idx_user_plan_review" json:"planId"`
	Nota       int    `gorm:"not null;check:nota >= 1 AND nota <= 5" json:"nota"`
	Comentario string `gorm:"not null" json:"comentario"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Plan Plan `gorm:"foreignKey:PlanID" json:"-"`
}
