package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodePlanNotFound    ErrorCode = "PLAN_NOT_FOUND"
	CodeCityNotFound    ErrorCode = "CITY_NOT_FOUND"
	CodeLeadNotFound    ErrorCode = "LEAD_NOT_FOUND"
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeAlertNotFound   ErrorCode = "ALERT_NOT_FOUND"
	CodeAccountNotFound ErrorCode = "ACCOUNT_NOT_FOUND"

	// Business rules
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeSlugAlreadyExists   ErrorCode = "SLUG_ALREADY_EXISTS"
	CodeAlreadyReviewed     ErrorCode = "ALREADY_REVIEWED"
	CodeAlertLimitReached   ErrorCode = "ALERT_LIMIT_REACHED"
	CodeEventTypeNotAllowed ErrorCode = "EVENT_TYPE_NOT_ALLOWED"

	// External integrations
	CodeBillingUnavailable ErrorCode = "BILLING_UNAVAILABLE"
	CodeInvalidSignature   ErrorCode = "INVALID_SIGNATURE"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
