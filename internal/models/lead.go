package models

import "time"

// Lead is a user's expressed purchase interest in a plan, routed to the
// plan's provider at creation time. The provider binding is immutable.
//
// NotificationSent records that a notification attempt was made, not that
// it was delivered; failed webhook sends are not retried.
type Lead struct {
	BaseModel
	PlanID     string  `gorm:"not null;index" json:"planId"`
	ProviderID string  `gorm:"not null;index" json:"providerId"`
	UserID     *string `gorm:"index" json:"userId,omitempty"`

	Name   string     `gorm:"not null" json:"name"`
	Phone  string     `gorm:"not null" json:"phone"`
	Cep    string     `gorm:"not null" json:"cep"`
	Status LeadStatus `gorm:"type:varchar(16);default:'NEW';index" json:"status"`

	NotificationSent   bool       `gorm:"default:false" json:"notificationSent"`
	ProviderNotifiedAt *time.Time `json:"providerNotifiedAt,omitempty"`

	Plan     Plan     `gorm:"foreignKey:PlanID" json:"-"`
	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}
