package models

import "gorm.io/datatypes"

// Event is a fire-and-forget analytics record. Writes to this table are
// always best-effort and never block a user-facing response.
type Event struct {
	BaseModel
	Type      string         `gorm:"not null;index" json:"type"`
	UserID    *string        `gorm:"index" json:"userId,omitempty"`
	SessionID *string        `json:"sessionId,omitempty"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	IP        *string        `json:"-"`
	UserAgent *string        `json:"-"`
}
