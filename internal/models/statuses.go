package models

// User roles.
type UserRole string

const (
	UserRoleUser          UserRole = "USER"
	UserRoleProviderAdmin UserRole = "PROVIDER_ADMIN"
	UserRoleSuperAdmin    UserRole = "SUPER_ADMIN"
)

// Lead statuses. The provider moves a lead through NEW -> CONTACTED ->
// CONVERTED or LOST; no transition graph is enforced.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusLost      LeadStatus = "LOST"
)

func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Provider billing tiers.
type BillingTier string

const (
	TierFree       BillingTier = "FREE"
	TierStarter    BillingTier = "STARTER"
	TierGrowth     BillingTier = "GROWTH"
	TierEnterprise BillingTier = "ENTERPRISE"
)

func ValidBillingTier(t BillingTier) bool {
	switch t {
	case TierFree, TierStarter, TierGrowth, TierEnterprise:
		return true
	}
	return false
}

// TierMonthlyFee maps a paid tier to its monthly fee in BRL.
var TierMonthlyFee = map[BillingTier]float64{
	TierFree:       0,
	TierStarter:    99.90,
	TierGrowth:     249.90,
	TierEnterprise: 599.90,
}

// Badge slugs.
const (
	BadgeSpecialist   = "SPECIALIST"
	BadgeEarlyAdopter = "EARLY_ADOPTER"
	BadgeExplorer     = "EXPLORER"
)

// Analytics event types.
const (
	EventPageView               = "PAGE_VIEW"
	EventPlanViewed             = "PLAN_VIEWED"
	EventPlanDetailOpened       = "PLAN_DETAIL_OPENED"
	EventComparisonStarted      = "COMPARISON_STARTED"
	EventCTALoginShown          = "CTA_LOGIN_SHOWN"
	EventHireClicked            = "HIRE_CLICKED"
	EventSignupStarted          = "SIGNUP_STARTED"
	EventSignupCompleted        = "SIGNUP_COMPLETED"
	EventLogin                  = "LOGIN"
	EventCepSearched            = "CEP_SEARCHED"
	EventLeadCaptured           = "LEAD_CAPTURED"
	EventReviewPublished        = "REVIEW_PUBLISHED"
	EventFavoriteAdded          = "FAVORITE_ADDED"
	EventFavoriteRemoved        = "FAVORITE_REMOVED"
	EventAlertCreated           = "ALERT_CREATED"
	EventQuestionnaireCompleted = "QUESTIONNAIRE_COMPLETED"
)

// TrackableEvents is the allowlist for the public tracking endpoint.
// Server-side events (lead captured, CEP searched, ...) are emitted by
// services and are deliberately not accepted from clients.
var TrackableEvents = map[string]bool{
	EventPageView:          true,
	EventPlanViewed:        true,
	EventComparisonStarted: true,
	EventCTALoginShown:     true,
	EventHireClicked:       true,
	EventSignupStarted:     true,
}

// Payment statuses for billing transactions.
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)
