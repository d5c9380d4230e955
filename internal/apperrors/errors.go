package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the class of failure for clients.
type ErrorCode string

// AppError is the application error carried from services to the HTTP
// boundary. HTTPCode decides the response status; Err keeps the wrapped
// cause for server-side logs only.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// MarshalJSON hides the wrapped cause and HTTP code from responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "E-mail ou senha inválidos", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Autenticação necessária", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Sem permissão", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Token inválido ou expirado", http.StatusUnauthorized)

	ErrPlanNotFound    = New(CodePlanNotFound, "Plano não encontrado", http.StatusNotFound)
	ErrCityNotFound    = New(CodeCityNotFound, "Cidade não encontrada", http.StatusNotFound)
	ErrLeadNotFound    = New(CodeLeadNotFound, "Lead não encontrado", http.StatusNotFound)
	ErrUserNotFound    = New(CodeUserNotFound, "Usuário não encontrado", http.StatusNotFound)
	ErrAlertNotFound   = New(CodeAlertNotFound, "Alerta não encontrado", http.StatusNotFound)
	ErrAccountNotFound = New(CodeAccountNotFound, "Conta de operadora não encontrada", http.StatusNotFound)

	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "E-mail já cadastrado", http.StatusConflict)
	ErrSlugAlreadyExists  = New(CodeSlugAlreadyExists, "Slug já em uso", http.StatusConflict)
	ErrAlreadyReviewed    = New(CodeAlreadyReviewed, "Você já avaliou este plano", http.StatusConflict)
	ErrAlertLimitReached  = New(CodeAlertLimitReached, "Limite de 5 alertas ativos atingido", http.StatusBadRequest)

	ErrBillingUnavailable = New(CodeBillingUnavailable, "Pagamentos não configurados", http.StatusServiceUnavailable)
	ErrInvalidSignature   = New(CodeInvalidSignature, "Assinatura de webhook inválida", http.StatusBadRequest)

	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helper constructors.

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewConflictError(code ErrorCode, message string) *AppError {
	return New(code, message, http.StatusConflict)
}
