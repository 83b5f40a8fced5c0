package profile

import (
	"context"
	"errors"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrProfileNotFound = errors.New("profile not found")

// Prefs are the per-user settings the engine recognizes.
type Prefs struct {
	WeekStartsOnMonday bool `json:"weekStartsOnMonday"`
	AutoPilotEnabled   bool `json:"autoPilotEnabled"`
	Premium            bool `json:"premium"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Prefs, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var p Prefs
	err = r.db.
		QueryRow(ctx, `
			SELECT week_starts_on_monday, auto_pilot_enabled, premium
			FROM user_profile
			WHERE user_id = $1
		`, userID).
		Scan(&p.WeekStartsOnMonday, &p.AutoPilotEnabled, &p.Premium)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PrefetchPrefs loads the prefs of all given users in one query. Sweeps
// build this map once before their batch loop and pass it down, instead
// of sharing a process-wide cache across invocations.
func (r *Repo) PrefetchPrefs(ctx context.Context, userIDs []string) (_ map[string]Prefs, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.prefetchPrefs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("users", len(userIDs)))

	rows, err := r.db.Query(ctx, `
		SELECT user_id, week_starts_on_monday, auto_pilot_enabled, premium
		FROM user_profile
		WHERE user_id = ANY($1);
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	prefs := make(map[string]Prefs, len(userIDs))
	for rows.Next() {
		var userID string
		var p Prefs
		if err := rows.Scan(&userID, &p.WeekStartsOnMonday, &p.AutoPilotEnabled, &p.Premium); err != nil {
			return nil, err
		}
		prefs[userID] = p
	}

	return prefs, nil
}
