package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/internal/training"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrTemplateSlotNotFound = errors.New("template slot not found")
	ErrInvalidChangePath    = errors.New("invalid change path")

	setPathRegex = regexp.MustCompile(`^sets\[(\d+)\]\.(kilos|reps)$`)
)

// Applier patches template exercise prescriptions in place. All
// changes of one recommendation land in a single transaction.
type Applier struct {
	db *pgxpool.Pool
}

func NewApplier(db *pgxpool.Pool) *Applier {
	return &Applier{db: db}
}

func (a *Applier) ApplyTemplateChanges(ctx context.Context, templateID string, position int, changes []Change) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.applier.applyTemplateChanges")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", templateID))
	span.SetAttributes(attribute.Int("template.position", position))

	if len(changes) == 0 {
		return nil
	}

	tx, err := a.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			err = tx.Commit(ctx)
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = fmt.Errorf("%w [rollback failed: %s]", err, rollbackErr)
		}
	}()

	var setsJSON []byte
	err = tx.QueryRow(ctx,
		`SELECT sets FROM template_exercise
		WHERE template_id = $1 AND position = $2
		FOR UPDATE`, templateID, position).Scan(&setsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: template %s position %d", ErrTemplateSlotNotFound, templateID, position)
	}
	if err != nil {
		return fmt.Errorf("lock template slot: %w", err)
	}

	var sets []training.SetPrescription
	if err = json.Unmarshal(setsJSON, &sets); err != nil {
		return fmt.Errorf("unmarshal prescription sets: %w", err)
	}

	for _, change := range changes {
		if err = patchSet(sets, change); err != nil {
			return err
		}
	}

	patched, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("marshal prescription sets: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE template_exercise
		SET sets = $1, updated_at = NOW()
		WHERE template_id = $2 AND position = $3`,
		patched, templateID, position)
	if err != nil {
		return fmt.Errorf("write prescription sets: %w", err)
	}
	return nil
}

func patchSet(sets []training.SetPrescription, change Change) error {
	match := setPathRegex.FindStringSubmatch(change.Path)
	if match == nil {
		return fmt.Errorf("%w: %q", ErrInvalidChangePath, change.Path)
	}

	index, err := strconv.Atoi(match[1])
	if err != nil || index >= len(sets) {
		return fmt.Errorf("%w: index out of range in %q", ErrInvalidChangePath, change.Path)
	}

	switch match[2] {
	case "kilos":
		kilos, ok := asFloat(change.To)
		if !ok {
			return fmt.Errorf("%w: non-numeric kilos in %q", ErrInvalidChangePath, change.Path)
		}
		sets[index].Kilos = kilos
	case "reps":
		reps, ok := asInt(change.To)
		if !ok {
			return fmt.Errorf("%w: non-numeric reps in %q", ErrInvalidChangePath, change.Path)
		}
		sets[index].Reps = reps
	}
	return nil
}

// asFloat tolerates the numeric types a Change may carry after a trip
// through JSON.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}
