package training

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

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNoActiveRoutine = errors.New("no active routine")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetWorkout(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	var w Workout
	var setsBytes []byte
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, completed_at, sets
			FROM workout
			WHERE id = $1
		`, id).
		Scan(&w.ID, &w.UserID, &w.CompletedAt, &setsBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(setsBytes, &w.Sets); err != nil {
		return nil, fmt.Errorf("unmarshal sets for workout %s: %w", id, err)
	}
	return &w, nil
}

// ListRecentWorkouts returns up to limit completed workouts for the user,
// newest first, not older than since.
func (r *Repo) ListRecentWorkouts(ctx context.Context, userID string, since time.Time, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listRecentWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, completed_at, sets
		FROM workout
		WHERE user_id = $1 AND completed_at >= $2
		ORDER BY completed_at DESC
		LIMIT $3;
	`, userID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		var setsBytes []byte
		if err := rows.Scan(&w.ID, &w.UserID, &w.CompletedAt, &setsBytes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(setsBytes, &w.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets for workout %s: %w", w.ID, err)
		}
		workouts = append(workouts, w)
	}

	return workouts, nil
}

// GetActiveRoutine returns the user's active routine together with all
// its templates and template exercises.
func (r *Repo) GetActiveRoutine(ctx context.Context, userID string) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getActiveRoutine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var routine Routine
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, active
			FROM routine
			WHERE user_id = $1 AND active = TRUE
			LIMIT 1
		`, userID).
		Scan(&routine.ID, &routine.UserID, &routine.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveRoutine
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, te.name, te.position, te.sets
		FROM template t
		JOIN template_exercise te ON te.template_id = t.id
		WHERE t.routine_id = $1
		ORDER BY t.id, te.position;
	`, routine.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templatesByID := make(map[string]*Template)
	var templateOrder []string
	for rows.Next() {
		var templateID, templateName string
		var te TemplateExercise
		var setsBytes []byte
		if err := rows.Scan(&templateID, &templateName, &te.Name, &te.Position, &setsBytes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(setsBytes, &te.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets for template exercise %s: %w", te.Name, err)
		}

		t, ok := templatesByID[templateID]
		if !ok {
			t = &Template{ID: templateID, Name: templateName}
			templatesByID[templateID] = t
			templateOrder = append(templateOrder, templateID)
		}
		t.Exercises = append(t.Exercises, te)
	}

	for _, id := range templateOrder {
		routine.Templates = append(routine.Templates, *templatesByID[id])
	}

	return &routine, nil
}
