package aggregation

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/metrics"
	"github.com/2beens/trainpulse/internal/profile"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=auditor_mocks_test.go -package=aggregation_test

type sourceRepo interface {
	ListAnalyticsInRange(ctx context.Context, userID string, from, to time.Time) ([]analytics.WorkoutAnalytics, error)
	LatestAnalyticsTime(ctx context.Context, userID string, from, to time.Time) (*time.Time, error)
	ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

type statsRepo interface {
	GetWeekly(ctx context.Context, userID, periodKey string) (*WeeklyStat, error)
	OverwriteWeekly(ctx context.Context, stat *WeeklyStat) error
}

type prefsPrefetcher interface {
	PrefetchPrefs(ctx context.Context, userIDs []string) (map[string]profile.Prefs, error)
}

type ReconcileOutcome string

const (
	OutcomeSkipped      ReconcileOutcome = "skipped"
	OutcomeRecalculated ReconcileOutcome = "recalculated"
)

type SweepResult struct {
	Processed int  `json:"processed"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	Skipped   int  `json:"skipped"`
	EarlyExit bool `json:"earlyExit"`
}

const (
	initialBatchSize = 8
	maxBatchSize     = 64

	// batch timings steering the adaptive batch size
	fastBatchThreshold = 2 * time.Second
	slowBatchThreshold = 10 * time.Second
)

// Auditor detects drifted aggregates and recomputes them from the
// source-of-truth workout analytics. Its overwrite is authoritative:
// racing incremental writers lose, which is the intended resolution.
type Auditor struct {
	source  sourceRepo
	stats   statsRepo
	prefs   prefsPrefetcher
	metrics *metrics.Manager

	lookback time.Duration
	budget   time.Duration
	now      func() time.Time
}

type NewAuditorParams struct {
	Source   sourceRepo
	Stats    statsRepo
	Prefs    prefsPrefetcher
	Metrics  *metrics.Manager
	Lookback time.Duration
	Budget   time.Duration
}

func NewAuditor(params NewAuditorParams) *Auditor {
	return &Auditor{
		source:   params.Source,
		stats:    params.Stats,
		prefs:    params.Prefs,
		metrics:  params.Metrics,
		lookback: params.Lookback,
		budget:   params.Budget,
		now:      time.Now,
	}
}

// Reconcile recomputes one week aggregate from scratch when it is
// stale. Fast path: an aggregate newer than the latest source event in
// its window, or a window without source events, is skipped untouched.
// Calling it twice with no new events in between is a no-op.
func (a *Auditor) Reconcile(ctx context.Context, userID, periodKey string, force bool) (_ ReconcileOutcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregation.auditor.reconcile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("period.key", periodKey))

	from, to, err := WeekWindow(periodKey)
	if err != nil {
		return "", err
	}

	latest, err := a.source.LatestAnalyticsTime(ctx, userID, from, to)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return OutcomeSkipped, nil
	}

	current, err := a.stats.GetWeekly(ctx, userID, periodKey)
	if err != nil && !errors.Is(err, ErrStatNotFound) {
		return "", err
	}
	if !force && current != nil && current.UpdatedAt.After(*latest) {
		return OutcomeSkipped, nil
	}

	sourceAnalytics, err := a.source.ListAnalyticsInRange(ctx, userID, from, to)
	if err != nil {
		return "", err
	}

	fresh := NewWeeklyStat(userID, periodKey)
	for i := range sourceAnalytics {
		fresh.Merge(&sourceAnalytics[i], 1)
	}

	now := a.now().UTC()
	fresh.UpdatedAt = now
	fresh.RecalculatedAt = &now

	if err := a.stats.OverwriteWeekly(ctx, fresh); err != nil {
		return "", err
	}

	log.Debugf("reconciled weekly stat %s for user %s from %d workouts", periodKey, userID, len(sourceAnalytics))
	return OutcomeRecalculated, nil
}

// Sweep reconciles all users with source events in the lookback window.
// Users are processed in batches whose size adapts to how fast recent
// batches completed. The sweep stops accepting new batches once the
// wall-clock budget is exhausted and reports the partial completion.
func (a *Auditor) Sweep(ctx context.Context) (_ *SweepResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregation.auditor.sweep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := a.now()
	deadline := start.Add(a.budget)
	defer func() {
		if a.metrics != nil {
			a.metrics.HistReconcileSweepDuration.Observe(a.now().Sub(start).Seconds())
		}
	}()

	since := start.Add(-a.lookback)
	users, err := a.source.ActiveUserIDs(ctx, since)
	if err != nil {
		return nil, err
	}

	// prefetched once, passed down: no shared prefs state between
	// concurrent sweep invocations
	prefsByUser, err := a.prefs.PrefetchPrefs(ctx, users)
	if err != nil {
		log.Errorf("reconcile sweep: prefetch prefs: %s", err)
		prefsByUser = map[string]profile.Prefs{}
	}

	result := &SweepResult{}
	batchSize := initialBatchSize

	for i := 0; i < len(users); {
		if a.now().After(deadline) {
			result.EarlyExit = true
			break
		}

		end := i + batchSize
		if end > len(users) {
			end = len(users)
		}

		batchStart := a.now()
		for _, userID := range users[i:end] {
			prefs := prefsByUser[userID]
			weekStart := WeekStartFor(prefs.WeekStartsOnMonday)

			for _, weekKey := range WeekKeysInRange(since, start, weekStart) {
				result.Processed++
				outcome, err := a.Reconcile(ctx, userID, weekKey, false)
				switch {
				case err != nil:
					result.Failed++
					log.Errorf("reconcile %s for user %s: %s", weekKey, userID, err)
				case outcome == OutcomeSkipped:
					result.Skipped++
				default:
					result.Succeeded++
				}
			}
		}

		batchDuration := a.now().Sub(batchStart)
		switch {
		case batchDuration < fastBatchThreshold && batchSize < maxBatchSize:
			batchSize *= 2
		case batchDuration > slowBatchThreshold && batchSize > 1:
			batchSize /= 2
		}

		i = end
	}

	log.Infof(
		"reconcile sweep done: processed %d, succeeded %d, failed %d, skipped %d, early exit: %t",
		result.Processed, result.Succeeded, result.Failed, result.Skipped, result.EarlyExit,
	)
	return result, nil
}
