package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/trainpulse/internal/aggregation"
	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/metrics"
	"github.com/2beens/trainpulse/internal/profile"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=processor_mocks_test.go -package=ingest_test

type normalizer interface {
	Normalize(ev analytics.WorkoutEvent) (*analytics.WorkoutAnalytics, error)
}

type analyticsRepo interface {
	Upsert(ctx context.Context, a *analytics.WorkoutAnalytics) error
	Get(ctx context.Context, workoutID string) (*analytics.WorkoutAnalytics, error)
	Delete(ctx context.Context, workoutID string) error
}

type aggregationStore interface {
	Apply(
		ctx context.Context,
		eventID string,
		a *analytics.WorkoutAnalytics,
		sign int,
		weekStart aggregation.WeekStart,
	) (*aggregation.ApplyResult, error)
}

type profilesRepo interface {
	Get(ctx context.Context, userID string) (*profile.Prefs, error)
}

type eventCursor interface {
	Set(ctx context.Context, userID, eventID string) error
}

type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeAlreadyApplied Outcome = "already_applied"
	OutcomeSkipped        Outcome = "skipped"
)

type Result struct {
	EventID string  `json:"eventId"`
	Outcome Outcome `json:"outcome"`
}

// Processor turns one inbound workout event into aggregate updates:
// create/update events add analytics with sign +1 (subtracting the
// previous version first on update), delete events subtract with -1.
type Processor struct {
	normalizer normalizer
	repo       analyticsRepo
	store      aggregationStore
	profiles   profilesRepo
	cursor     eventCursor
	metrics    *metrics.Manager
}

type NewProcessorParams struct {
	Normalizer normalizer
	Repo       analyticsRepo
	Store      aggregationStore
	Profiles   profilesRepo
	Cursor     eventCursor
	Metrics    *metrics.Manager
}

func NewProcessor(params NewProcessorParams) *Processor {
	return &Processor{
		normalizer: params.Normalizer,
		repo:       params.Repo,
		store:      params.Store,
		profiles:   params.Profiles,
		cursor:     params.Cursor,
		metrics:    params.Metrics,
	}
}

func (p *Processor) ProcessEvent(ctx context.Context, ev analytics.WorkoutEvent) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ingest.processEvent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("event.id", ev.ID))
	span.SetAttributes(attribute.String("event.type", ev.Type.String()))

	if ev.ID == "" {
		return nil, fmt.Errorf("%w: event id empty", analytics.ErrInvalidAnalytics)
	}

	weekStart := p.weekStartFor(ctx, ev.UserID)

	var result *Result
	switch ev.Type {
	case analytics.EventTypeWorkoutCreated:
		result, err = p.processCreate(ctx, ev, weekStart)
	case analytics.EventTypeWorkoutUpdated:
		result, err = p.processUpdate(ctx, ev, weekStart)
	case analytics.EventTypeWorkoutDeleted:
		result, err = p.processDelete(ctx, ev, weekStart)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", analytics.ErrInvalidAnalytics, ev.Type)
	}
	if err != nil {
		return nil, err
	}

	if p.metrics != nil {
		p.metrics.CounterEventsIngested.WithLabelValues(ev.Type.String()).Inc()
	}

	// best effort, never fails the event
	if p.cursor != nil {
		if cursorErr := p.cursor.Set(ctx, ev.UserID, ev.ID); cursorErr != nil {
			log.Errorf("update ingest cursor for user %s: %s", ev.UserID, cursorErr)
		}
	}

	return result, nil
}

func (p *Processor) processCreate(ctx context.Context, ev analytics.WorkoutEvent, weekStart aggregation.WeekStart) (*Result, error) {
	a, err := p.normalizer.Normalize(ev)
	if err != nil {
		return nil, err
	}

	if err := p.repo.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("store analytics for workout %s: %w", a.WorkoutID, err)
	}

	applyResult, err := p.store.Apply(ctx, ev.ID, a, 1, weekStart)
	if err != nil {
		return nil, fmt.Errorf("apply analytics for workout %s: %w", a.WorkoutID, err)
	}
	return resultFor(ev.ID, applyResult), nil
}

func (p *Processor) processUpdate(ctx context.Context, ev analytics.WorkoutEvent, weekStart aggregation.WeekStart) (*Result, error) {
	a, err := p.normalizer.Normalize(ev)
	if err != nil {
		return nil, err
	}

	previous, err := p.repo.Get(ctx, a.WorkoutID)
	if err != nil && !errors.Is(err, analytics.ErrAnalyticsNotFound) {
		return nil, fmt.Errorf("get previous analytics for workout %s: %w", a.WorkoutID, err)
	}

	if previous != nil {
		if _, err := p.store.Apply(ctx, ev.ID, previous, -1, weekStart); err != nil {
			return nil, fmt.Errorf("subtract previous analytics for workout %s: %w", a.WorkoutID, err)
		}
	}

	if err := p.repo.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("store analytics for workout %s: %w", a.WorkoutID, err)
	}

	applyResult, err := p.store.Apply(ctx, ev.ID, a, 1, weekStart)
	if err != nil {
		return nil, fmt.Errorf("apply analytics for workout %s: %w", a.WorkoutID, err)
	}
	return resultFor(ev.ID, applyResult), nil
}

func (p *Processor) processDelete(ctx context.Context, ev analytics.WorkoutEvent, weekStart aggregation.WeekStart) (*Result, error) {
	previous, err := p.repo.Get(ctx, ev.WorkoutID)
	if errors.Is(err, analytics.ErrAnalyticsNotFound) {
		log.Warnf("delete event %s for unknown workout %s, nothing to subtract", ev.ID, ev.WorkoutID)
		return &Result{EventID: ev.ID, Outcome: OutcomeSkipped}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analytics for workout %s: %w", ev.WorkoutID, err)
	}

	applyResult, err := p.store.Apply(ctx, ev.ID, previous, -1, weekStart)
	if err != nil {
		return nil, fmt.Errorf("subtract analytics for workout %s: %w", ev.WorkoutID, err)
	}

	if err := p.repo.Delete(ctx, ev.WorkoutID); err != nil && !errors.Is(err, analytics.ErrAnalyticsNotFound) {
		return nil, fmt.Errorf("delete analytics for workout %s: %w", ev.WorkoutID, err)
	}
	return resultFor(ev.ID, applyResult), nil
}

func (p *Processor) weekStartFor(ctx context.Context, userID string) aggregation.WeekStart {
	prefs, err := p.profiles.Get(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return aggregation.WeekStartsMonday
	}
	if err != nil {
		log.Errorf("get prefs for user %s, falling back to monday week start: %s", userID, err)
		return aggregation.WeekStartsMonday
	}
	return aggregation.WeekStartFor(prefs.WeekStartsOnMonday)
}

func resultFor(eventID string, applyResult *aggregation.ApplyResult) *Result {
	outcome := OutcomeApplied
	if applyResult.AlreadyApplied {
		outcome = OutcomeAlreadyApplied
	}
	return &Result{EventID: eventID, Outcome: outcome}
}
