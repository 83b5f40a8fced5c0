package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrStatNotFound = errors.New("aggregate stat not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) UpdateInTx(
	ctx context.Context,
	userID string,
	keys PeriodKeys,
	muscles, exercises []string,
	eventID string,
	sign int,
	mutate func(*Snapshot),
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.updateInTx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("event.id", eventID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// the ledger row makes the event effect exactly-once under
	// at-least-once redelivery: the check and the aggregate mutation
	// commit or roll back together
	tag, err := tx.Exec(ctx, `
		INSERT INTO aggregation_ledger (event_id, sign, applied_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, sign) DO NOTHING;
	`, eventID, sign)
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventAlreadyApplied
	}

	snap := &Snapshot{
		Muscles:   make(map[string]*MuscleSeriesPoint, len(muscles)),
		Exercises: make(map[string]*ExerciseSeriesPoint, len(exercises)),
		Rollups:   make(map[string]*WeeklyStat, len(keys.Rollups)),
	}

	if snap.Weekly, err = lockStat(ctx, tx, "weekly_stat", userID, keys.Week); err != nil {
		return err
	}
	for _, rollupKey := range keys.Rollups {
		if snap.Rollups[rollupKey], err = lockStat(ctx, tx, "rollup", userID, rollupKey); err != nil {
			return err
		}
	}

	if err = lockMusclePoints(ctx, tx, snap, userID, keys.Week, muscles); err != nil {
		return err
	}
	if err = lockExercisePoints(ctx, tx, snap, userID, keys.Day, exercises); err != nil {
		return err
	}

	mutate(snap)

	if err = writeStat(ctx, tx, "weekly_stat", snap.Weekly); err != nil {
		return err
	}
	for _, rollup := range snap.Rollups {
		if err = writeStat(ctx, tx, "rollup", rollup); err != nil {
			return err
		}
	}
	for _, point := range snap.Muscles {
		if err = writeMusclePoint(ctx, tx, point); err != nil {
			return err
		}
	}
	for _, point := range snap.Exercises {
		if err = writeExercisePoint(ctx, tx, point); err != nil {
			return err
		}
	}

	return nil
}

// table name is always one of the two compile time constants here,
// never user input
func lockStat(ctx context.Context, tx pgx.Tx, table, userID, periodKey string) (*WeeklyStat, error) {
	var statBytes []byte
	err := tx.
		QueryRow(ctx, fmt.Sprintf(`
			SELECT stat FROM %s
			WHERE user_id = $1 AND period_key = $2
			FOR UPDATE
		`, table), userID, periodKey).
		Scan(&statBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return NewWeeklyStat(userID, periodKey), nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s %s: %w", table, periodKey, err)
	}

	stat := NewWeeklyStat(userID, periodKey)
	if err := json.Unmarshal(statBytes, stat); err != nil {
		return nil, fmt.Errorf("unmarshal %s %s: %w", table, periodKey, err)
	}
	return stat, nil
}

func writeStat(ctx context.Context, tx pgx.Tx, table string, stat *WeeklyStat) error {
	statBytes, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", table, stat.PeriodKey, err)
	}
	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (user_id, period_key, stat, updated_at, recalculated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, period_key)
		DO UPDATE SET stat = $3, updated_at = $4, recalculated_at = $5;
	`, table), stat.UserID, stat.PeriodKey, statBytes, stat.UpdatedAt, stat.RecalculatedAt)
	if err != nil {
		return fmt.Errorf("write %s %s: %w", table, stat.PeriodKey, err)
	}
	return nil
}

func lockMusclePoints(ctx context.Context, tx pgx.Tx, snap *Snapshot, userID, periodKey string, muscles []string) error {
	if len(muscles) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `
		SELECT muscle, sets, volume, hard_sets, load
		FROM muscle_series
		WHERE user_id = $1 AND period_key = $2 AND muscle = ANY($3)
		FOR UPDATE;
	`, userID, periodKey, muscles)
	if err != nil {
		return fmt.Errorf("lock muscle series: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	for rows.Next() {
		point := &MuscleSeriesPoint{UserID: userID, PeriodKey: periodKey}
		if err := rows.Scan(&point.Muscle, &point.Sets, &point.Volume, &point.HardSets, &point.Load); err != nil {
			return err
		}
		snap.Muscles[point.Muscle] = point
	}

	for _, muscle := range muscles {
		if _, ok := snap.Muscles[muscle]; !ok {
			snap.Muscles[muscle] = &MuscleSeriesPoint{UserID: userID, PeriodKey: periodKey, Muscle: muscle}
		}
	}
	return nil
}

func writeMusclePoint(ctx context.Context, tx pgx.Tx, point *MuscleSeriesPoint) error {
	if point.IsZero() {
		_, err := tx.Exec(ctx, `
			DELETE FROM muscle_series
			WHERE user_id = $1 AND period_key = $2 AND muscle = $3;
		`, point.UserID, point.PeriodKey, point.Muscle)
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO muscle_series (user_id, period_key, muscle, sets, volume, hard_sets, load, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, period_key, muscle)
		DO UPDATE SET sets = $4, volume = $5, hard_sets = $6, load = $7, updated_at = $8;
	`, point.UserID, point.PeriodKey, point.Muscle, point.Sets, point.Volume, point.HardSets, point.Load, point.UpdatedAt)
	return err
}

func lockExercisePoints(ctx context.Context, tx pgx.Tx, snap *Snapshot, userID, dayKey string, exercises []string) error {
	if len(exercises) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `
		SELECT exercise_key, volume, top_e1rm
		FROM exercise_series
		WHERE user_id = $1 AND day_key = $2 AND exercise_key = ANY($3)
		FOR UPDATE;
	`, userID, dayKey, exercises)
	if err != nil {
		return fmt.Errorf("lock exercise series: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	for rows.Next() {
		point := &ExerciseSeriesPoint{UserID: userID, DayKey: dayKey}
		if err := rows.Scan(&point.ExerciseKey, &point.Volume, &point.TopE1RM); err != nil {
			return err
		}
		snap.Exercises[point.ExerciseKey] = point
	}

	for _, exercise := range exercises {
		if _, ok := snap.Exercises[exercise]; !ok {
			snap.Exercises[exercise] = &ExerciseSeriesPoint{UserID: userID, DayKey: dayKey, ExerciseKey: exercise}
		}
	}
	return nil
}

func writeExercisePoint(ctx context.Context, tx pgx.Tx, point *ExerciseSeriesPoint) error {
	if point.IsZero() {
		_, err := tx.Exec(ctx, `
			DELETE FROM exercise_series
			WHERE user_id = $1 AND day_key = $2 AND exercise_key = $3;
		`, point.UserID, point.DayKey, point.ExerciseKey)
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO exercise_series (user_id, day_key, exercise_key, volume, top_e1rm, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, day_key, exercise_key)
		DO UPDATE SET volume = $4, top_e1rm = $5, updated_at = $6;
	`, point.UserID, point.DayKey, point.ExerciseKey, point.Volume, point.TopE1RM, point.UpdatedAt)
	return err
}

func (r *Repo) GetWeekly(ctx context.Context, userID, periodKey string) (_ *WeeklyStat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.getWeekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period.key", periodKey))

	var statBytes []byte
	err = r.db.
		QueryRow(ctx, `
			SELECT stat FROM weekly_stat
			WHERE user_id = $1 AND period_key = $2
		`, userID, periodKey).
		Scan(&statBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatNotFound
	}
	if err != nil {
		return nil, err
	}

	stat := NewWeeklyStat(userID, periodKey)
	if err := json.Unmarshal(statBytes, stat); err != nil {
		return nil, fmt.Errorf("unmarshal weekly stat %s: %w", periodKey, err)
	}
	return stat, nil
}

func (r *Repo) GetRollup(ctx context.Context, userID, periodKey string) (_ *WeeklyStat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.getRollup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period.key", periodKey))

	var statBytes []byte
	err = r.db.
		QueryRow(ctx, `
			SELECT stat FROM rollup
			WHERE user_id = $1 AND period_key = $2
		`, userID, periodKey).
		Scan(&statBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatNotFound
	}
	if err != nil {
		return nil, err
	}

	stat := NewWeeklyStat(userID, periodKey)
	if err := json.Unmarshal(statBytes, stat); err != nil {
		return nil, fmt.Errorf("unmarshal rollup %s: %w", periodKey, err)
	}
	return stat, nil
}

// OverwriteWeekly replaces the whole aggregate record. Used by the
// reconciliation path, which is authoritative regardless of concurrent
// incremental writes.
func (r *Repo) OverwriteWeekly(ctx context.Context, stat *WeeklyStat) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.overwriteWeekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period.key", stat.PeriodKey))

	statBytes, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("marshal weekly stat %s: %w", stat.PeriodKey, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO weekly_stat (user_id, period_key, stat, updated_at, recalculated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, period_key)
		DO UPDATE SET stat = $3, updated_at = $4, recalculated_at = $5;
	`, stat.UserID, stat.PeriodKey, statBytes, stat.UpdatedAt, stat.RecalculatedAt)
	return err
}

func (r *Repo) ListMuscleSeries(ctx context.Context, userID, periodKey string) (_ []MuscleSeriesPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.listMuscleSeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT muscle, sets, volume, hard_sets, load, updated_at
		FROM muscle_series
		WHERE user_id = $1 AND period_key = $2
		ORDER BY muscle;
	`, userID, periodKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := make([]MuscleSeriesPoint, 0)
	for rows.Next() {
		point := MuscleSeriesPoint{UserID: userID, PeriodKey: periodKey}
		if err := rows.Scan(&point.Muscle, &point.Sets, &point.Volume, &point.HardSets, &point.Load, &point.UpdatedAt); err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

func (r *Repo) ListExerciseSeries(ctx context.Context, userID, exerciseKey string, fromDay, toDay string) (_ []ExerciseSeriesPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aggregation.listExerciseSeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT day_key, volume, top_e1rm, updated_at
		FROM exercise_series
		WHERE user_id = $1 AND exercise_key = $2
		  AND day_key >= $3 AND day_key <= $4
		ORDER BY day_key;
	`, userID, exerciseKey, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := make([]ExerciseSeriesPoint, 0)
	for rows.Next() {
		point := ExerciseSeriesPoint{UserID: userID, ExerciseKey: exerciseKey}
		if err := rows.Scan(&point.DayKey, &point.Volume, &point.TopE1RM, &point.UpdatedAt); err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}
