package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrAnalyticsNotFound = errors.New("workout analytics not found")

// Repo persists the per-workout analytics documents, the source of
// truth every aggregate can be recomputed from.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Upsert(ctx context.Context, a *WorkoutAnalytics) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", a.WorkoutID))

	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analytics for workout %s: %w", a.WorkoutID, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_analytics (workout_id, user_id, completed_at, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workout_id)
		DO UPDATE SET user_id = $2, completed_at = $3, doc = $4;
	`, a.WorkoutID, a.UserID, a.CompletedAt, doc)
	return err
}

func (r *Repo) Get(ctx context.Context, workoutID string) (_ *WorkoutAnalytics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	var doc []byte
	err = r.db.
		QueryRow(ctx, `
			SELECT doc FROM workout_analytics
			WHERE workout_id = $1
		`, workoutID).
		Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalyticsNotFound
	}
	if err != nil {
		return nil, err
	}

	var a WorkoutAnalytics
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("unmarshal analytics for workout %s: %w", workoutID, err)
	}
	return &a, nil
}

func (r *Repo) Delete(ctx context.Context, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM workout_analytics WHERE workout_id = $1;
	`, workoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAnalyticsNotFound
	}
	return nil
}

func (r *Repo) ListAnalyticsInRange(ctx context.Context, userID string, from, to time.Time) (_ []WorkoutAnalytics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.listInRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT doc FROM workout_analytics
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
		ORDER BY completed_at;
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	all := make([]WorkoutAnalytics, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var a WorkoutAnalytics
		if err := json.Unmarshal(doc, &a); err != nil {
			return nil, fmt.Errorf("unmarshal analytics: %w", err)
		}
		all = append(all, a)
	}

	return all, nil
}

// LatestAnalyticsTime returns the newest completion time of a source
// analytics document in the window, or nil when there are none.
func (r *Repo) LatestAnalyticsTime(ctx context.Context, userID string, from, to time.Time) (_ *time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.latestTime")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var latest *time.Time
	err = r.db.
		QueryRow(ctx, `
			SELECT MAX(completed_at) FROM workout_analytics
			WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3;
		`, userID, from, to).
		Scan(&latest)
	if err != nil {
		return nil, err
	}
	return latest, nil
}

func (r *Repo) ActiveUserIDs(ctx context.Context, since time.Time) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.activeUserIds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT user_id FROM workout_analytics
		WHERE completed_at >= $1
		ORDER BY user_id;
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	userIDs := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}

	return userIDs, nil
}
