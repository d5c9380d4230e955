package services

import (
	"context"
	"errors"
	"strings"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"

	"gorm.io/gorm"
)

// bestEffort runs a non-critical side write. Failures are logged at Warn and
// never propagated; a missing counter bump or analytics row must not fail the
// caller's primary operation.
func bestEffort(ctx context.Context, op string, fn func() error) {
	if err := fn(); err != nil {
		logger.CtxWarn(ctx, "best-effort write failed", "op", op, "error", err.Error())
	}
}

// notFoundOr maps a gorm record-not-found to the given application error and
// wraps anything else as internal.
func notFoundOr(err error, appErr *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErr
	}
	return apperrors.InternalError(err)
}

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeCep reduces a raw CEP to at most 8 digits for storage.
func normalizeCep(raw string) string {
	d := digitsOnly(raw)
	if len(d) > 8 {
		d = d[:8]
	}
	return d
}

// cepPrefix reduces a raw CEP to the 5-digit prefix used for coverage
// matching.
func cepPrefix(raw string) string {
	d := normalizeCep(raw)
	if len(d) >= 5 {
		return d[:5]
	}
	return d
}

// recordEvent inserts an analytics event row, best-effort.
func recordEvent(ctx context.Context, analytics repositories.AnalyticsRepository, eventType string, userID *string) {
	bestEffort(ctx, "analytics event "+eventType, func() error {
		return analytics.CreateEvent(&models.Event{
			Type:   eventType,
			UserID: userID,
		})
	})
}
