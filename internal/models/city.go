package models

import "time"

type City struct {
	BaseModel
	Name       string     `gorm:"not null" json:"name"`
	State      string     `gorm:"not null" json:"state"`
	Slug       string     `gorm:"uniqueIndex;not null" json:"slug"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Population int        `json:"population"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
	LaunchedAt *time.Time `json:"launchedAt,omitempty"`
}
