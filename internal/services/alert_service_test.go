package services

import (
	"context"
	"testing"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertServiceFixture struct {
	alerts    *stubAlertRepo
	plans     *stubPlanRepo
	analytics *stubAnalyticsRepo
	mailer    *stubMailer
	service   AlertService
}

func newAlertServiceFixture() *alertServiceFixture {
	f := &alertServiceFixture{
		alerts:    newStubAlertRepo(),
		plans:     newStubPlanRepo(),
		analytics: &stubAnalyticsRepo{},
		mailer:    &stubMailer{},
	}
	f.service = NewAlertService(f.alerts, f.plans, f.analytics, f.mailer)
	return f
}

func alertRequest() *dto.CreateAlertRequest {
	return &dto.CreateAlertRequest{Cep: "79000-123", MaxPrice: 100}
}

func TestCreateAlertNormalizesCep(t *testing.T) {
	f := newAlertServiceFixture()

	alert, err := f.service.Create(context.Background(), "user-1", alertRequest())

	require.NoError(t, err)
	assert.Equal(t, "79000123", alert.Cep)
	assert.True(t, alert.IsActive)
	assert.Contains(t, f.analytics.eventTypes(), models.EventAlertCreated)
}

func TestCreateAlertEnforcesActiveCap(t *testing.T) {
	f := newAlertServiceFixture()
	for i := 0; i < maxActiveAlerts; i++ {
		_, err := f.service.Create(context.Background(), "user-1", alertRequest())
		require.NoError(t, err)
	}

	_, err := f.service.Create(context.Background(), "user-1", alertRequest())
	assert.ErrorIs(t, err, apperrors.ErrAlertLimitReached)

	// The cap is per user.
	_, err = f.service.Create(context.Background(), "user-2", alertRequest())
	assert.NoError(t, err)
}

func TestDeleteAlertOwnership(t *testing.T) {
	f := newAlertServiceFixture()
	alert, err := f.service.Create(context.Background(), "user-1", alertRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.Delete("user-2", alert.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, f.service.Delete("user-1", "missing"), apperrors.ErrAlertNotFound)
	assert.NoError(t, f.service.Delete("user-1", alert.ID))
}

func TestProcessAlertsMatchesAndStamps(t *testing.T) {
	f := newAlertServiceFixture()

	plan := testPlan()
	plan.Price = 89.90
	plan.CepsAtendidos = models.StringList([]string{"79000"})
	f.plans.add(plan)

	tooExpensive := testPlan()
	tooExpensive.ID = "plan-2"
	tooExpensive.Price = 150
	tooExpensive.CepsAtendidos = models.StringList([]string{"79000"})
	f.plans.add(tooExpensive)

	f.alerts.Create(&models.PriceAlert{
		UserID:   "user-1",
		Cep:      "79000123",
		MaxPrice: 100,
		IsActive: true,
		User:     models.User{Email: "ana@example.com"},
	})

	fired, err := f.service.ProcessAlerts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	assert.Equal(t, []string{"ana@example.com"}, f.mailer.alertMails)
	require.NotNil(t, f.alerts.alerts["alert-1"].LastTriggeredAt)
}

func TestProcessAlertsHonorsCooldownAndMinSpeed(t *testing.T) {
	f := newAlertServiceFixture()

	plan := testPlan()
	plan.DownloadSpeed = 100
	plan.Price = 50
	plan.CepsAtendidos = models.StringList([]string{"79000"})
	f.plans.add(plan)

	recent := time.Now().Add(-time.Hour)
	minSpeed := 300
	f.alerts.Create(&models.PriceAlert{
		UserID:          "user-1",
		Cep:             "79000000",
		MaxPrice:        100,
		IsActive:        true,
		LastTriggeredAt: &recent,
		User:            models.User{Email: "ana@example.com"},
	})
	f.alerts.Create(&models.PriceAlert{
		UserID:   "user-2",
		Cep:      "79000000",
		MaxPrice: 100,
		MinSpeed: &minSpeed,
		IsActive: true,
		User:     models.User{Email: "bia@example.com"},
	})

	fired, err := f.service.ProcessAlerts(context.Background())

	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Empty(t, f.mailer.alertMails)
}

func TestProcessAlertsUsesPromotionalPrice(t *testing.T) {
	f := newAlertServiceFixture()

	promo := 79.90
	expires := time.Now().Add(24 * time.Hour)
	plan := testPlan()
	plan.Price = 150
	plan.PromotionPrice = &promo
	plan.PromotionExpiresAt = &expires
	plan.CepsAtendidos = models.StringList([]string{"79000"})
	f.plans.add(plan)

	f.alerts.Create(&models.PriceAlert{
		UserID:   "user-1",
		Cep:      "79000000",
		MaxPrice: 100,
		IsActive: true,
		User:     models.User{Email: "ana@example.com"},
	})

	fired, err := f.service.ProcessAlerts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}
