package recommendation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/internal/training"

	"go.opentelemetry.io/otel/attribute"
)

var ErrTargetNotFound = errors.New("recommendation target not found")

const (
	// fallback baseline window
	baselineLookback    = 14 * 24 * time.Hour
	baselineMaxWorkouts = 20
)

// muscle group targets bypass exercise matching entirely
var muscleGroupNames = map[string]struct{}{
	"chest": {}, "back": {}, "shoulders": {}, "legs": {}, "arms": {},
	"biceps": {}, "triceps": {}, "forearms": {}, "core": {}, "abs": {},
	"glutes": {}, "quads": {}, "hamstrings": {}, "calves": {},
	"traps": {}, "lats": {}, "neck": {},
}

// candidates talking about the plan as a whole, not one exercise;
// "split" is deliberately absent, it collides with split squats
var routineLanguage = []string{
	"routine", "weekly", "training", "program", "schedule",
}

// TemplateLocation points at one exercise slot of an active routine's
// template, together with its current set prescriptions.
type TemplateLocation struct {
	RoutineID  string                    `json:"routineId"`
	TemplateID string                    `json:"templateId"`
	Position   int                       `json:"position"`
	Exercise   training.TemplateExercise `json:"exercise"`
}

// ExerciseBaseline is the fallback current value derived from workout
// history when no active routine exists.
type ExerciseBaseline struct {
	MaxWorkingWeight float64 `json:"maxWorkingWeight"`
}

type Resolution struct {
	Scope          Scope             `json:"scope"`
	TargetIdentity string            `json:"targetIdentity"`
	Template       *TemplateLocation `json:"template,omitempty"`
	Baseline       *ExerciseBaseline `json:"baseline,omitempty"`
}

//go:generate mockgen -source=$GOFILE -destination=resolver_mocks_test.go -package=recommendation_test

type routinesRepo interface {
	GetActiveRoutine(ctx context.Context, userID string) (*training.Routine, error)
}

type workoutsRepo interface {
	GetWorkout(ctx context.Context, id string) (*training.Workout, error)
	ListRecentWorkouts(ctx context.Context, userID string, since time.Time, limit int) ([]training.Workout, error)
}

// Resolver matches a candidate's named target against the user's
// active routine, or falls back to a baseline from recent workouts.
// Matching is an exact normalized-key lookup, deliberately not fuzzy.
type Resolver struct {
	routines routinesRepo
	workouts workoutsRepo
	now      func() time.Time
}

func NewResolver(routines routinesRepo, workouts workoutsRepo) *Resolver {
	return &Resolver{
		routines: routines,
		workouts: workouts,
		now:      time.Now,
	}
}

// Resolve classifies and locates the candidate's target. Muscle group
// and routine-language targets resolve directly to informational
// scopes; exercise names are looked up in the active routine's
// template index, then in the recent-workout baseline index.
func (r *Resolver) Resolve(ctx context.Context, userID string, c Candidate, triggerWorkoutID string) (_ *Resolution, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendation.resolver.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("target", c.Target))

	target := training.NormalizeExerciseName(c.Target)
	if target == "" {
		return nil, ErrTargetNotFound
	}

	if _, ok := muscleGroupNames[target]; ok {
		return &Resolution{Scope: ScopeMuscleGroup, TargetIdentity: target}, nil
	}
	if containsRoutineLanguage(target) {
		return &Resolution{Scope: ScopeRoutine, TargetIdentity: target}, nil
	}

	routine, err := r.routines.GetActiveRoutine(ctx, userID)
	if err != nil && !errors.Is(err, training.ErrNoActiveRoutine) {
		return nil, err
	}

	if routine != nil {
		if loc, ok := templateIndex(routine)[target]; ok {
			return &Resolution{
				Scope:          ScopeTemplate,
				TargetIdentity: target,
				Template:       &loc,
			}, nil
		}
		return nil, ErrTargetNotFound
	}

	baselines, err := r.baselineIndex(ctx, userID, triggerWorkoutID)
	if err != nil {
		return nil, err
	}
	if baseline, ok := baselines[target]; ok {
		return &Resolution{
			Scope:          ScopeExercise,
			TargetIdentity: target,
			Baseline:       &baseline,
		}, nil
	}

	return nil, ErrTargetNotFound
}

// templateIndex maps every normalized exercise name of the routine to
// its template location. The first occurrence of a name wins.
func templateIndex(routine *training.Routine) map[string]TemplateLocation {
	index := make(map[string]TemplateLocation)
	for _, template := range routine.Templates {
		for _, exercise := range template.Exercises {
			key := training.NormalizeExerciseName(exercise.Name)
			if key == "" {
				continue
			}
			if _, ok := index[key]; ok {
				continue
			}
			index[key] = TemplateLocation{
				RoutineID:  routine.ID,
				TemplateID: template.ID,
				Position:   exercise.Position,
				Exercise:   exercise,
			}
		}
	}
	return index
}

// baselineIndex keeps, per exercise name, the maximum completed
// working-set weight: from the triggering workout for post-workout
// documents, otherwise from the recent workout history.
func (r *Resolver) baselineIndex(ctx context.Context, userID, triggerWorkoutID string) (map[string]ExerciseBaseline, error) {
	var workouts []training.Workout
	if triggerWorkoutID != "" {
		workout, err := r.workouts.GetWorkout(ctx, triggerWorkoutID)
		if err != nil && !errors.Is(err, training.ErrWorkoutNotFound) {
			return nil, err
		}
		if workout != nil {
			workouts = []training.Workout{*workout}
		}
	}
	if len(workouts) == 0 {
		since := r.now().Add(-baselineLookback)
		recent, err := r.workouts.ListRecentWorkouts(ctx, userID, since, baselineMaxWorkouts)
		if err != nil {
			return nil, err
		}
		workouts = recent
	}

	index := make(map[string]ExerciseBaseline)
	for _, workout := range workouts {
		for _, set := range workout.Sets {
			if set.Warmup {
				continue
			}
			key := training.NormalizeExerciseName(set.Exercise)
			if key == "" {
				continue
			}
			if baseline, ok := index[key]; !ok || set.Kilos > baseline.MaxWorkingWeight {
				index[key] = ExerciseBaseline{MaxWorkingWeight: set.Kilos}
			}
		}
	}
	return index, nil
}

func containsRoutineLanguage(target string) bool {
	for _, word := range routineLanguage {
		if strings.Contains(target, word) {
			return true
		}
	}
	return false
}
