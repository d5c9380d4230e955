package workers

import (
	"context"
	"time"

	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services"
)

const rankingInterval = 6 * time.Hour

// Daily batch hours, local time.
const (
	alertHour    = 8
	snapshotHour = 0
)

// MarketplaceWorker runs the periodic batches: ranking recalculation every
// six hours, price-alert matching every morning, and a nightly price
// snapshot of the whole catalog. Every loop stops on context cancellation.
type MarketplaceWorker struct {
	plans    services.PlanService
	alerts   services.AlertService
	planRepo repositories.PlanRepository
}

func NewMarketplaceWorker(
	plans services.PlanService,
	alerts services.AlertService,
	planRepo repositories.PlanRepository,
) *MarketplaceWorker {
	return &MarketplaceWorker{
		plans:    plans,
		alerts:   alerts,
		planRepo: planRepo,
	}
}

func (w *MarketplaceWorker) Start(ctx context.Context) {
	go w.rankingLoop(ctx)
	go w.dailyLoop(ctx, alertHour, "price alerts", w.runAlerts)
	go w.dailyLoop(ctx, snapshotHour, "price snapshots", w.runSnapshots)
	logger.Info("marketplace worker started")
}

func (w *MarketplaceWorker) rankingLoop(ctx context.Context) {
	// One pass at boot so fresh deployments don't serve stale scores for
	// hours.
	w.runRankings(ctx)

	ticker := time.NewTicker(rankingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runRankings(ctx)
		}
	}
}

// dailyLoop fires fn once a day at the given local hour.
func (w *MarketplaceWorker) dailyLoop(ctx context.Context, hour int, name string, fn func(context.Context)) {
	for {
		timer := time.NewTimer(untilNext(time.Now(), hour))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			logger.Info("daily batch starting", "batch", name)
			fn(ctx)
		}
	}
}

func untilNext(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (w *MarketplaceWorker) runRankings(ctx context.Context) {
	updated, err := w.plans.RecalculateRankings(ctx)
	if err != nil {
		logger.WithError(err).Error("ranking batch failed")
		return
	}
	logger.Info("ranking batch finished", "plansUpdated", updated)
}

func (w *MarketplaceWorker) runAlerts(ctx context.Context) {
	fired, err := w.alerts.ProcessAlerts(ctx)
	if err != nil {
		logger.WithError(err).Error("alert batch failed")
		return
	}
	logger.Info("alert batch finished", "alertsFired", fired)
}

// runSnapshots appends one price point per active plan, feeding the price
// history behind the alert and analytics features.
func (w *MarketplaceWorker) runSnapshots(ctx context.Context) {
	plans, err := w.planRepo.FindActive()
	if err != nil {
		logger.WithError(err).Error("snapshot batch failed")
		return
	}

	stored := 0
	for i := range plans {
		snapshot := &models.PriceSnapshot{PlanID: plans[i].ID, Price: plans[i].Price}
		if err := w.planRepo.CreateSnapshot(snapshot); err != nil {
			logger.WithError(err).Warn("price snapshot failed", "planId", plans[i].ID)
			continue
		}
		stored++
	}
	logger.Info("snapshot batch finished", "snapshots", stored)
}
