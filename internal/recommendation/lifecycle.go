package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/metrics"
	"github.com/2beens/trainpulse/internal/profile"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrDuplicatePending = errors.New("pending recommendation for target already exists")
	ErrNotPending       = errors.New("recommendation is not pending review")
)

const (
	// maximum records one expiry batch write may touch
	maxExpireBatchSize = 500

	byEngine    = "engine"
	byAutoPilot = "auto_pilot"
	byTTLSweep  = "ttl_sweep"
)

//go:generate mockgen -source=$GOFILE -destination=lifecycle_mocks_test.go -package=recommendation_test

type recsRepo interface {
	Create(ctx context.Context, rec *AgentRecommendation) error
	Get(ctx context.Context, id string) (*AgentRecommendation, error)
	HasPendingForTarget(ctx context.Context, userID, targetIdentity string) (bool, error)
	UpdateState(ctx context.Context, rec *AgentRecommendation) error
	ExpirePendingBatch(ctx context.Context, olderThan time.Time, limit int) (int, error)
}

type targetResolver interface {
	Resolve(ctx context.Context, userID string, c Candidate, triggerWorkoutID string) (*Resolution, error)
}

// templateApplier is the external apply-changes collaborator. Only
// template scope supports it.
type templateApplier interface {
	ApplyTemplateChanges(ctx context.Context, templateID string, position int, changes []Change) error
}

type ProcessReport struct {
	Created           int  `json:"created"`
	AutoApplied       int  `json:"autoApplied"`
	ApplyFailed       int  `json:"applyFailed"`
	Deduped           int  `json:"deduped"`
	Unresolved        int  `json:"unresolved"`
	NoChange          int  `json:"noChange"`
	Failed            int  `json:"failed"`
	SkippedNonPremium bool `json:"skippedNonPremium"`
}

type ExpireResult struct {
	Expired int `json:"expired"`
}

// Manager owns the recommendation lifecycle: creation with
// deduplication, optional auto-apply, review decisions and TTL expiry.
type Manager struct {
	repo     recsRepo
	resolver targetResolver
	applier  templateApplier
	metrics  *metrics.Manager

	ttl time.Duration
	now func() time.Time
}

type NewManagerParams struct {
	Repo     recsRepo
	Resolver targetResolver
	Applier  templateApplier
	Metrics  *metrics.Manager
	TTL      time.Duration
}

func NewManager(params NewManagerParams) *Manager {
	return &Manager{
		repo:     params.Repo,
		resolver: params.Resolver,
		applier:  params.Applier,
		metrics:  params.Metrics,
		ttl:      params.TTL,
		now:      time.Now,
	}
}

// ProcessInsights converts one analyzer document into recommendation
// records. Candidates are processed sequentially so the in-run claimed
// set stays valid across iterations; one candidate's failure never
// aborts its siblings. Non-premium users are skipped before any other
// processing.
func (m *Manager) ProcessInsights(ctx context.Context, doc InsightDoc, prefs profile.Prefs) (_ *ProcessReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.lifecycle.processInsights")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", doc.UserID))
	span.SetAttributes(attribute.Int("candidates", len(doc.Candidates)))

	report := &ProcessReport{}
	if !prefs.Premium {
		report.SkippedNonPremium = true
		return report, nil
	}

	claimed := make(map[string]struct{})
	for _, candidate := range doc.Candidates {
		m.processCandidate(ctx, doc, prefs, candidate, claimed, report)
	}

	log.Debugf(
		"insights for user %s processed: created %d, auto applied %d, deduped %d, unresolved %d",
		doc.UserID, report.Created, report.AutoApplied, report.Deduped, report.Unresolved,
	)
	return report, nil
}

func (m *Manager) processCandidate(
	ctx context.Context,
	doc InsightDoc,
	prefs profile.Prefs,
	candidate Candidate,
	claimed map[string]struct{},
	report *ProcessReport,
) {
	if !candidate.Type.IsValid() {
		log.Errorf("candidate for user %s has unknown type %q, skipping", doc.UserID, candidate.Type)
		report.Failed++
		return
	}

	resolution, err := m.resolver.Resolve(ctx, doc.UserID, candidate, doc.TriggerWorkoutID)
	if errors.Is(err, ErrTargetNotFound) {
		report.Unresolved++
		return
	}
	if err != nil {
		log.Errorf("resolve candidate target %q for user %s: %s", candidate.Target, doc.UserID, err)
		report.Failed++
		return
	}

	if _, ok := claimed[resolution.TargetIdentity]; ok {
		report.Deduped++
		return
	}
	hasPending, err := m.repo.HasPendingForTarget(ctx, doc.UserID, resolution.TargetIdentity)
	if err != nil {
		log.Errorf("check pending recommendation for target %q: %s", resolution.TargetIdentity, err)
		report.Failed++
		return
	}
	if hasPending {
		claimed[resolution.TargetIdentity] = struct{}{}
		report.Deduped++
		return
	}

	rec, ok := m.buildRecommendation(doc.UserID, candidate, resolution)
	if !ok {
		report.NoChange++
		return
	}

	// swap recommendations always require a human decision
	autoApply := prefs.AutoPilotEnabled &&
		resolution.Scope == ScopeTemplate &&
		candidate.Type != TypeSwap &&
		len(rec.Changes) > 0

	rec.State = StatePendingReview
	rec.StateHistory = append(rec.StateHistory, Transition{To: StatePendingReview, At: m.now().UTC(), By: byEngine})

	// the record is persisted before any template mutation: a failed
	// insert must leave the template untouched
	err = m.repo.Create(ctx, rec)
	if errors.Is(err, ErrDuplicatePending) {
		// lost the cross-invocation race, the other record stands
		claimed[resolution.TargetIdentity] = struct{}{}
		report.Deduped++
		return
	}
	if err != nil {
		log.Errorf("create recommendation for target %q: %s", resolution.TargetIdentity, err)
		report.Failed++
		return
	}

	claimed[resolution.TargetIdentity] = struct{}{}
	report.Created++
	if m.metrics != nil {
		m.metrics.CounterRecommendations.WithLabelValues(string(rec.State)).Inc()
	}

	if autoApply {
		m.autoApply(ctx, rec, resolution, report)
	}
}

// autoApply invokes the external apply operation on an already
// persisted record and stores the outcome through the record's own
// state. Apply failures never propagate as pipeline failures.
func (m *Manager) autoApply(ctx context.Context, rec *AgentRecommendation, resolution *Resolution, report *ProcessReport) {
	now := m.now().UTC()

	if err := m.applier.ApplyTemplateChanges(ctx, resolution.Template.TemplateID, resolution.Template.Position, rec.Changes); err != nil {
		log.Errorf("auto apply recommendation for target %q: %s", rec.TargetIdentity, err)
		rec.ApplyError = err.Error()
		if transitionErr := rec.TransitionTo(StateFailed, byAutoPilot, err.Error(), now); transitionErr != nil {
			log.Errorf("transition recommendation %s to failed: %s", rec.ID, transitionErr)
		}
		if updateErr := m.repo.UpdateState(ctx, rec); updateErr != nil {
			log.Errorf("update recommendation %s state: %s", rec.ID, updateErr)
		}
		report.ApplyFailed++
		return
	}

	if err := rec.TransitionTo(StateApplied, byAutoPilot, "", now); err != nil {
		log.Errorf("transition recommendation %s to applied: %s", rec.ID, err)
		return
	}
	rec.AppliedBy = byAutoPilot
	rec.AppliedAt = &now
	if err := m.repo.UpdateState(ctx, rec); err != nil {
		log.Errorf("update recommendation %s state: %s", rec.ID, err)
	}
	report.AutoApplied++
}

func (m *Manager) buildRecommendation(userID string, candidate Candidate, resolution *Resolution) (*AgentRecommendation, bool) {
	rec := &AgentRecommendation{
		ID:             uuid.NewString(),
		UserID:         userID,
		Scope:          resolution.Scope,
		TargetIdentity: resolution.TargetIdentity,
		Type:           candidate.Type,
		Summary:        candidate.Rationale,
		Confidence:     candidate.Confidence,
		CreatedAt:      m.now().UTC(),
	}

	switch resolution.Scope {
	case ScopeTemplate:
		rec.TemplateID = resolution.Template.TemplateID
		rec.Position = resolution.Template.Position
		rec.Changes = BuildTemplateChanges(resolution.Template.Exercise, candidate)
		if len(rec.Changes) == 0 && candidate.Type != TypeSwap {
			// every working set already sits at the computed value
			return nil, false
		}
	case ScopeExercise:
		change, ok := baselineChange(candidate, resolution.Baseline)
		if !ok {
			return nil, false
		}
		rec.Changes = []Change{change}
	case ScopeMuscleGroup, ScopeRoutine:
		// informational, no concrete changes
	}

	return rec, true
}

func baselineChange(candidate Candidate, baseline *ExerciseBaseline) (Change, bool) {
	if candidate.Type == TypeRepProgression {
		if candidate.TargetReps == nil {
			return Change{}, false
		}
		return Change{
			Path:      "targetReps",
			To:        ComputeReps(0, *candidate.TargetReps),
			Rationale: candidate.Rationale,
		}, true
	}

	current := baseline.MaxWorkingWeight
	newWeight := ComputeWeight(current, candidate.Type, candidate.SuggestedValue)
	if newWeight == current {
		return Change{}, false
	}
	return Change{
		Path:      "workingWeight",
		From:      current,
		To:        newWeight,
		Rationale: candidate.Rationale,
	}, true
}

// Review applies a user's decision on a pending recommendation:
// accepted template recommendations invoke the apply operation,
// rejected ones expire with a note.
func (m *Manager) Review(ctx context.Context, recID string, accept bool, by string) (_ *AgentRecommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.lifecycle.review")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recommendation.id", recID))

	rec, err := m.repo.Get(ctx, recID)
	if err != nil {
		return nil, err
	}
	if rec.State != StatePendingReview {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, recID, rec.State)
	}

	now := m.now().UTC()
	if !accept {
		if err := rec.TransitionTo(StateExpired, by, "rejected by user", now); err != nil {
			return nil, err
		}
		if err := m.repo.UpdateState(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	if rec.Scope == ScopeTemplate {
		if applyErr := m.applier.ApplyTemplateChanges(ctx, rec.TemplateID, rec.Position, rec.Changes); applyErr != nil {
			rec.ApplyError = applyErr.Error()
			if err := rec.TransitionTo(StateFailed, by, applyErr.Error(), now); err != nil {
				return nil, err
			}
			if err := m.repo.UpdateState(ctx, rec); err != nil {
				return nil, err
			}
			return rec, nil
		}
	}

	if err := rec.TransitionTo(StateApplied, by, "", now); err != nil {
		return nil, err
	}
	rec.AppliedBy = by
	rec.AppliedAt = &now
	if err := m.repo.UpdateState(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ExpireStale expires all pending_review records older than the TTL,
// in size-bounded batches. Idempotent and safe to re-run.
func (m *Manager) ExpireStale(ctx context.Context) (_ *ExpireResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.lifecycle.expireStale")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cutoff := m.now().UTC().Add(-m.ttl)
	result := &ExpireResult{}

	for {
		expired, err := m.repo.ExpirePendingBatch(ctx, cutoff, maxExpireBatchSize)
		if err != nil {
			return nil, fmt.Errorf("expire pending batch: %w", err)
		}
		result.Expired += expired
		if expired < maxExpireBatchSize {
			break
		}
	}

	if m.metrics != nil {
		m.metrics.CounterRecsExpired.Add(float64(result.Expired))
	}
	log.Infof("recommendation expiry sweep done, expired %d records", result.Expired)
	return result, nil
}
