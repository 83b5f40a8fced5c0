package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/training"
)

var ErrInvalidAnalytics = errors.New("invalid analytics payload")

// EventType can be one of:
//   - workout_created
//   - workout_updated
//   - workout_deleted
type EventType string

const (
	EventTypeWorkoutCreated EventType = "workout_created"
	EventTypeWorkoutUpdated EventType = "workout_updated"
	EventTypeWorkoutDeleted EventType = "workout_deleted"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeWorkoutCreated,
		EventTypeWorkoutUpdated,
		EventTypeWorkoutDeleted:
		return true
	default:
		return false
	}
}

// WorkoutEvent is the inbound event envelope. Create and update events
// carry either a precomputed analytics payload or the full workout.
type WorkoutEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	UserID    string            `json:"userId"`
	WorkoutID string            `json:"workoutId"`
	Timestamp time.Time         `json:"timestamp"`
	Analytics json.RawMessage   `json:"analytics,omitempty"`
	Workout   *training.Workout `json:"workout,omitempty"`
}

// Normalizer resolves the legacy field aliases of an analytics payload
// once, at the ingestion boundary, into the canonical WorkoutAnalytics.
// Business logic downstream only ever sees canonical fields.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// field aliases, canonical name first
var (
	totalSetsAliases   = []string{"totalSets", "total_sets", "sets_count"}
	totalRepsAliases   = []string{"totalReps", "total_reps", "reps_count"}
	totalWeightAliases = []string{"totalWeight", "total_weight", "total_volume", "totalVolume"}

	weightPerGroupAliases     = []string{"weightPerMuscleGroup", "weight_per_muscle_group", "muscle_group_weight"}
	repsPerGroupAliases       = []string{"repsPerMuscleGroup", "reps_per_muscle_group", "muscle_group_reps"}
	setsPerGroupAliases       = []string{"setsPerMuscleGroup", "sets_per_muscle_group", "muscle_group_sets"}
	weightPerMuscleAliases    = []string{"weightPerMuscle", "weight_per_muscle"}
	repsPerMuscleAliases      = []string{"repsPerMuscle", "reps_per_muscle"}
	setsPerMuscleAliases      = []string{"setsPerMuscle", "sets_per_muscle"}
	volumePerExerciseAliases  = []string{"volumePerExercise", "volume_per_exercise"}
	topE1RMPerExerciseAliases = []string{"topE1RmPerExercise", "top_e1rm_per_exercise"}
)

// Normalize extracts the canonical analytics facts of a workout event.
// Events carrying a full workout get their analytics computed here;
// events carrying a raw analytics payload get aliases resolved and the
// three required totals validated. No partial result is ever returned.
func (n *Normalizer) Normalize(ev WorkoutEvent) (*WorkoutAnalytics, error) {
	if !ev.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidAnalytics, ev.Type)
	}
	if ev.UserID == "" {
		return nil, fmt.Errorf("%w: user id empty", ErrInvalidAnalytics)
	}
	if ev.WorkoutID == "" && (ev.Workout == nil || ev.Workout.ID == "") {
		return nil, fmt.Errorf("%w: workout id empty", ErrInvalidAnalytics)
	}

	if ev.Workout != nil {
		a := Compute(ev.Workout)
		a.UserID = ev.UserID
		if a.WorkoutID == "" {
			a.WorkoutID = ev.WorkoutID
		}
		if a.CompletedAt.IsZero() {
			a.CompletedAt = ev.Timestamp
		}
		return a, nil
	}

	if len(ev.Analytics) == 0 {
		return nil, fmt.Errorf("%w: no analytics and no workout attached", ErrInvalidAnalytics)
	}

	var raw map[string]any
	if err := json.Unmarshal(ev.Analytics, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAnalytics, err)
	}

	totalSets, ok := numericField(raw, totalSetsAliases)
	if !ok {
		return nil, fmt.Errorf("%w: missing required numeric field total_sets", ErrInvalidAnalytics)
	}
	totalReps, ok := numericField(raw, totalRepsAliases)
	if !ok {
		return nil, fmt.Errorf("%w: missing required numeric field total_reps", ErrInvalidAnalytics)
	}
	totalWeight, ok := numericField(raw, totalWeightAliases)
	if !ok {
		return nil, fmt.Errorf("%w: missing required numeric field total_weight", ErrInvalidAnalytics)
	}

	a := &WorkoutAnalytics{
		WorkoutID:   ev.WorkoutID,
		UserID:      ev.UserID,
		CompletedAt: ev.Timestamp,
		TotalSets:   totalSets,
		TotalReps:   totalReps,
		TotalWeight: totalWeight,

		WeightPerMuscleGroup: mapField(raw, weightPerGroupAliases),
		RepsPerMuscleGroup:   mapField(raw, repsPerGroupAliases),
		SetsPerMuscleGroup:   mapField(raw, setsPerGroupAliases),
		WeightPerMuscle:      mapField(raw, weightPerMuscleAliases),
		RepsPerMuscle:        mapField(raw, repsPerMuscleAliases),
		SetsPerMuscle:        mapField(raw, setsPerMuscleAliases),
		VolumePerExercise:    mapField(raw, volumePerExerciseAliases),
		TopE1RMPerExercise:   mapField(raw, topE1RMPerExerciseAliases),
	}

	if intensityRaw, ok := raw["intensity"].(map[string]any); ok {
		a.Intensity.HardSets, _ = numericField(intensityRaw, []string{"hardSets", "hard_sets"})
		a.Intensity.LowRIRSets, _ = numericField(intensityRaw, []string{"lowRirSets", "low_rir_sets"})
		a.Intensity.LoadPerMuscle = mapField(intensityRaw, []string{"loadPerMuscle", "load_per_muscle"})
		a.Intensity.HardSetsPerMuscle = mapField(intensityRaw, []string{"hardSetsPerMuscle", "hard_sets_per_muscle"})
		a.Intensity.TopSetE1RMPerMuscle = mapField(intensityRaw, []string{"topSetE1RmPerMuscle", "top_set_e1rm_per_muscle"})
	}

	return a, nil
}

func numericField(raw map[string]any, aliases []string) (float64, bool) {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func mapField(raw map[string]any, aliases []string) map[string]float64 {
	for _, key := range aliases {
		rawMap, ok := raw[key].(map[string]any)
		if !ok {
			continue
		}
		m := make(map[string]float64, len(rawMap))
		for k, v := range rawMap {
			if f, ok := v.(float64); ok {
				m[k] = f
			}
		}
		return m
	}
	return nil
}
