package models

type Provider struct {
	BaseModel
	Name       string  `gorm:"not null" json:"name"`
	Slug       string  `gorm:"uniqueIndex;not null" json:"slug"`
	Color      *string `json:"color,omitempty"`
	Logo       *string `json:"logo,omitempty"`
	Cnpj       *string `json:"cnpj,omitempty"`
	Website    *string `json:"website,omitempty"`
	IsVerified bool    `gorm:"default:false" json:"isVerified"`

	Account *ProviderAccount `gorm:"foreignKey:ProviderID" json:"account,omitempty"`
}

// ProviderAccount holds the billing state of a provider. Tier changes are
// applied only by billing-gateway callbacks, never by client mutation.
type ProviderAccount struct {
	BaseModel
	ProviderID        string      `gorm:"uniqueIndex;not null" json:"providerId"`
	Tier              BillingTier `gorm:"type:varchar(16);default:'FREE'" json:"tier"`
	BillingCustomerID *string     `gorm:"index" json:"-"`
	BillingSubID      *string     `gorm:"index" json:"-"`
	IsActive          bool        `gorm:"default:true" json:"isActive"`
	MonthlyFee        float64     `gorm:"default:0" json:"monthlyFee"`
	WebhookURL        *string     `json:"webhookUrl,omitempty"`
	ContactName       *string     `json:"contactName,omitempty"`
	ContactEmail      *string     `json:"contactEmail,omitempty"`
	ContactPhone      *string     `json:"contactPhone,omitempty"`
}

// ProviderUser is the membership row linking a user to the provider it
// administers.
type ProviderUser struct {
	BaseModel
	ProviderID string   `gorm:"not null;uniqueIndex:idx_provider_user" json:"providerId"`
	UserID     string   `gorm:"not null;uniqueIndex:idx_provider_user" json:"userId"`
	Role       UserRole `gorm:"type:varchar(32);default:'PROVIDER_ADMIN'" json:"role"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

// PaymentTransaction records a settled billing invoice.
type PaymentTransaction struct {
	BaseModel
	ExternalID  string        `gorm:"uniqueIndex;not null" json:"externalId"`
	ProviderID  *string       `gorm:"index" json:"providerId,omitempty"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Status      PaymentStatus `gorm:"type:varchar(16);not null" json:"status"`
	Description string        `json:"description"`
}
