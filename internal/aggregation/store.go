package aggregation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/metrics"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrInvalidSign         = errors.New("sign must be +1 or -1")
	ErrIncompleteAnalytics = errors.New("analytics payload incomplete")
	ErrEventAlreadyApplied = errors.New("event already applied")
	ErrRetriesExhausted    = errors.New("aggregation retries exhausted")
)

const (
	// 1 initial attempt + applyMaxRetries retries
	applyMaxRetries     = 2
	applyInitialBackoff = 100 * time.Millisecond
)

// Snapshot holds every aggregate record one workout touches, loaded and
// written back inside a single transaction.
type Snapshot struct {
	Weekly    *WeeklyStat
	Muscles   map[string]*MuscleSeriesPoint
	Exercises map[string]*ExerciseSeriesPoint
	Rollups   map[string]*WeeklyStat
}

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=aggregation_test

type aggregatesRepo interface {
	// UpdateInTx loads the snapshot for the given keys, applies mutate,
	// and persists the result atomically. It records eventID in the event
	// ledger within the same transaction and returns ErrEventAlreadyApplied
	// without mutating anything when (eventID, sign) was already applied.
	UpdateInTx(
		ctx context.Context,
		userID string,
		keys PeriodKeys,
		muscles, exercises []string,
		eventID string,
		sign int,
		mutate func(*Snapshot),
	) error
}

type ApplyResult struct {
	Applied        bool       `json:"applied"`
	AlreadyApplied bool       `json:"alreadyApplied"`
	Attempts       int        `json:"attempts"`
	Keys           PeriodKeys `json:"keys"`
}

// Store is the incremental merge engine for weekly stats, series and
// rollups. All writes go through bounded-retry transactions, so
// concurrent writers to the same aggregate converge without corruption.
type Store struct {
	repo    aggregatesRepo
	metrics *metrics.Manager
}

func NewStore(repo aggregatesRepo, metricsManager *metrics.Manager) *Store {
	return &Store{
		repo:    repo,
		metrics: metricsManager,
	}
}

// Apply merges one workout's analytics into all its period buckets with
// the given sign (+1 add, -1 subtract). The write is atomic: it either
// lands in full or leaves every aggregate in its pre-attempt state.
func (s *Store) Apply(
	ctx context.Context,
	eventID string,
	a *analytics.WorkoutAnalytics,
	sign int,
	weekStart WeekStart,
) (_ *ApplyResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregation.store.apply")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sign", sign))

	if sign != 1 && sign != -1 {
		return nil, ErrInvalidSign
	}
	if err := validateAnalytics(a); err != nil {
		return nil, err
	}
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id empty", ErrIncompleteAnalytics)
	}

	keys := PeriodKeysFor(a.CompletedAt, weekStart)
	span.SetAttributes(attribute.String("period.week", keys.Week))

	muscles := unionKeys(a.SetsPerMuscle, a.WeightPerMuscle, a.Intensity.LoadPerMuscle, a.Intensity.HardSetsPerMuscle)
	exercises := unionKeys(a.VolumePerExercise, a.TopE1RMPerExercise)

	result := &ApplyResult{Keys: keys}

	operation := func() error {
		result.Attempts++
		now := time.Now().UTC()

		err := s.repo.UpdateInTx(ctx, a.UserID, keys, muscles, exercises, eventID, sign, func(snap *Snapshot) {
			snap.Weekly.Merge(a, sign)
			snap.Weekly.UpdatedAt = now
			for _, rollup := range snap.Rollups {
				rollup.Merge(a, sign)
				rollup.UpdatedAt = now
			}
			for _, point := range snap.Muscles {
				point.Merge(a, sign)
				point.UpdatedAt = now
			}
			for _, point := range snap.Exercises {
				point.Merge(a, sign)
				point.UpdatedAt = now
			}
		})
		if errors.Is(err, ErrEventAlreadyApplied) {
			return backoff.Permanent(err)
		}
		if err != nil {
			if s.metrics != nil {
				s.metrics.CounterAggregationRetries.Inc()
			}
			log.Warnf("aggregation apply attempt %d for event %s failed: %s", result.Attempts, eventID, err)
			return err
		}
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = applyInitialBackoff
	expBackoff.Multiplier = 2
	expBackoff.RandomizationFactor = 0

	err = backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(expBackoff, ctx), applyMaxRetries))
	if errors.Is(err, ErrEventAlreadyApplied) {
		log.Debugf("event %s already applied to aggregates, skipping", eventID)
		result.AlreadyApplied = true
		return result, nil
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.CounterAggregationFailures.Inc()
		}
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, result.Attempts, err)
	}

	result.Applied = true
	return result, nil
}

func validateAnalytics(a *analytics.WorkoutAnalytics) error {
	if a == nil {
		return fmt.Errorf("%w: nil", ErrIncompleteAnalytics)
	}
	if a.UserID == "" {
		return fmt.Errorf("%w: user id empty", ErrIncompleteAnalytics)
	}
	if a.CompletedAt.IsZero() {
		return fmt.Errorf("%w: completion time missing", ErrIncompleteAnalytics)
	}
	if a.TotalSets < 0 || a.TotalReps < 0 || a.TotalWeight < 0 {
		return fmt.Errorf("%w: negative totals", ErrIncompleteAnalytics)
	}
	return nil
}

func unionKeys(maps ...map[string]float64) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}
