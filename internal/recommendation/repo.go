package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Create inserts a new recommendation record. A second pending record
// for the same (user, target) pair hits the partial unique index and
// surfaces as ErrDuplicatePending.
func (r *Repo) Create(ctx context.Context, rec *AgentRecommendation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recommendation.id", rec.ID))

	changesJSON, err := json.Marshal(rec.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	historyJSON, err := json.Marshal(rec.StateHistory)
	if err != nil {
		return fmt.Errorf("marshal state history: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO recommendation (
			id, user_id, scope, target_identity, template_id, position,
			rec_type, changes, summary, confidence, state, state_history,
			applied_by, applied_at, apply_error, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		rec.ID, rec.UserID, rec.Scope, rec.TargetIdentity, rec.TemplateID, rec.Position,
		rec.Type, changesJSON, rec.Summary, rec.Confidence, rec.State, historyJSON,
		rec.AppliedBy, rec.AppliedAt, rec.ApplyError, rec.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrDuplicatePending
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *AgentRecommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recommendation.id", id))

	rows, err := r.db.Query(ctx,
		`SELECT
			id, user_id, scope, target_identity, template_id, position,
			rec_type, changes, summary, confidence, state, state_history,
			applied_by, applied_at, apply_error, created_at
		FROM recommendation
		WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrRecommendationNotFound
	}
	return scanRecommendation(rows)
}

func (r *Repo) HasPendingForTarget(ctx context.Context, userID, targetIdentity string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.hasPendingForTarget")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM recommendation
			WHERE user_id = $1 AND target_identity = $2 AND state = 'pending_review'
		)`, userID, targetIdentity).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repo) ListForUser(ctx context.Context, userID string, states []State) (_ []AgentRecommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	stateFilter := make([]string, 0, len(states))
	for _, s := range states {
		stateFilter = append(stateFilter, string(s))
	}

	query := `SELECT
			id, user_id, scope, target_identity, template_id, position,
			rec_type, changes, summary, confidence, state, state_history,
			applied_by, applied_at, apply_error, created_at
		FROM recommendation
		WHERE user_id = $1`
	args := []any{userID}
	if len(stateFilter) > 0 {
		query += ` AND state = ANY($2)`
		args = append(args, stateFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []AgentRecommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// UpdateState persists a state change together with its history and
// apply bookkeeping. Only mutable columns are written.
func (r *Repo) UpdateState(ctx context.Context, rec *AgentRecommendation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.updateState")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recommendation.id", rec.ID))
	span.SetAttributes(attribute.String("recommendation.state", string(rec.State)))

	historyJSON, err := json.Marshal(rec.StateHistory)
	if err != nil {
		return fmt.Errorf("marshal state history: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE recommendation
		SET state = $1, state_history = $2, applied_by = $3, applied_at = $4, apply_error = $5
		WHERE id = $6`,
		rec.State, historyJSON, rec.AppliedBy, rec.AppliedAt, rec.ApplyError, rec.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecommendationNotFound
	}
	return nil
}

// ExpirePendingBatch moves at most limit stale pending_review records
// to expired, appending the sweep transition to each history. Returns
// the number of records touched.
func (r *Repo) ExpirePendingBatch(ctx context.Context, olderThan time.Time, limit int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.repo.expirePendingBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	transition := Transition{
		From: StatePendingReview,
		To:   StateExpired,
		At:   time.Now().UTC(),
		By:   byTTLSweep,
		Note: "time to live exceeded",
	}
	transitionJSON, err := json.Marshal(transition)
	if err != nil {
		return 0, fmt.Errorf("marshal transition: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE recommendation
		SET state = 'expired', state_history = state_history || $1::jsonb
		WHERE id IN (
			SELECT id FROM recommendation
			WHERE state = 'pending_review' AND created_at < $2
			ORDER BY created_at
			LIMIT $3
		)`, transitionJSON, olderThan, limit)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanRecommendation(rows pgx.Rows) (*AgentRecommendation, error) {
	var (
		rec         AgentRecommendation
		changesJSON []byte
		historyJSON []byte
	)
	if err := rows.Scan(
		&rec.ID, &rec.UserID, &rec.Scope, &rec.TargetIdentity, &rec.TemplateID, &rec.Position,
		&rec.Type, &changesJSON, &rec.Summary, &rec.Confidence, &rec.State, &historyJSON,
		&rec.AppliedBy, &rec.AppliedAt, &rec.ApplyError, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(changesJSON, &rec.Changes); err != nil {
		return nil, fmt.Errorf("unmarshal changes: %w", err)
	}
	if err := json.Unmarshal(historyJSON, &rec.StateHistory); err != nil {
		return nil, fmt.Errorf("unmarshal state history: %w", err)
	}
	return &rec, nil
}
