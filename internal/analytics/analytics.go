package analytics

import (
	"time"

	"github.com/2beens/trainpulse/internal/training"
)

// Intensity groups the effort related numbers of one workout.
type Intensity struct {
	HardSets            float64            `json:"hardSets"`
	LowRIRSets          float64            `json:"lowRirSets"`
	LoadPerMuscle       map[string]float64 `json:"loadPerMuscle,omitempty"`
	HardSetsPerMuscle   map[string]float64 `json:"hardSetsPerMuscle,omitempty"`
	TopSetE1RMPerMuscle map[string]float64 `json:"topSetE1RmPerMuscle,omitempty"`
}

// WorkoutAnalytics holds the canonical analytics facts of one completed
// workout. It is computed once at workout completion and stays immutable,
// unless the workout is edited (recompute) or deleted (subtraction).
type WorkoutAnalytics struct {
	WorkoutID   string    `json:"workoutId"`
	UserID      string    `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`

	TotalSets   float64 `json:"totalSets"`
	TotalReps   float64 `json:"totalReps"`
	TotalWeight float64 `json:"totalWeight"`

	WeightPerMuscleGroup map[string]float64 `json:"weightPerMuscleGroup,omitempty"`
	RepsPerMuscleGroup   map[string]float64 `json:"repsPerMuscleGroup,omitempty"`
	SetsPerMuscleGroup   map[string]float64 `json:"setsPerMuscleGroup,omitempty"`
	WeightPerMuscle      map[string]float64 `json:"weightPerMuscle,omitempty"`
	RepsPerMuscle        map[string]float64 `json:"repsPerMuscle,omitempty"`
	SetsPerMuscle        map[string]float64 `json:"setsPerMuscle,omitempty"`

	// VolumePerExercise holds the volume per normalized exercise name,
	// feeding the per-exercise daily series.
	VolumePerExercise map[string]float64 `json:"volumePerExercise,omitempty"`
	// TopE1RMPerExercise holds the best estimated 1RM of any working set
	// per normalized exercise name.
	TopE1RMPerExercise map[string]float64 `json:"topE1RmPerExercise,omitempty"`

	Intensity Intensity `json:"intensity"`
}

// a set counts as hard with 2 or fewer reps in reserve,
// and as low-RIR with 1 or fewer
const (
	hardSetRIR   = 2
	lowRIRSetRIR = 1
)

// EstimateOneRepMax returns the Epley estimate for a completed set.
func EstimateOneRepMax(kilos float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return kilos
	}
	return kilos * (1 + float64(reps)/30)
}

// Compute derives the WorkoutAnalytics of a completed workout.
// Warm-up sets never count toward volume or intensity.
func Compute(w *training.Workout) *WorkoutAnalytics {
	a := &WorkoutAnalytics{
		WorkoutID:            w.ID,
		UserID:               w.UserID,
		CompletedAt:          w.CompletedAt,
		WeightPerMuscleGroup: make(map[string]float64),
		RepsPerMuscleGroup:   make(map[string]float64),
		SetsPerMuscleGroup:   make(map[string]float64),
		WeightPerMuscle:      make(map[string]float64),
		RepsPerMuscle:        make(map[string]float64),
		SetsPerMuscle:        make(map[string]float64),
		VolumePerExercise:    make(map[string]float64),
		TopE1RMPerExercise:   make(map[string]float64),
		Intensity: Intensity{
			LoadPerMuscle:       make(map[string]float64),
			HardSetsPerMuscle:   make(map[string]float64),
			TopSetE1RMPerMuscle: make(map[string]float64),
		},
	}

	for _, set := range w.Sets {
		if set.Warmup {
			continue
		}

		volume := set.Kilos * float64(set.Reps)
		a.TotalSets++
		a.TotalReps += float64(set.Reps)
		a.TotalWeight += volume

		if set.MuscleGroup != "" {
			a.WeightPerMuscleGroup[set.MuscleGroup] += volume
			a.RepsPerMuscleGroup[set.MuscleGroup] += float64(set.Reps)
			a.SetsPerMuscleGroup[set.MuscleGroup]++
		}

		e1rm := EstimateOneRepMax(set.Kilos, set.Reps)
		for muscle, share := range set.Muscles {
			a.WeightPerMuscle[muscle] += volume * share
			a.RepsPerMuscle[muscle] += float64(set.Reps) * share
			a.SetsPerMuscle[muscle] += share
			a.Intensity.LoadPerMuscle[muscle] += volume * share
			if e1rm > a.Intensity.TopSetE1RMPerMuscle[muscle] {
				a.Intensity.TopSetE1RMPerMuscle[muscle] = e1rm
			}
		}

		exKey := training.NormalizeExerciseName(set.Exercise)
		if exKey != "" {
			a.VolumePerExercise[exKey] += volume
			if e1rm > a.TopE1RMPerExercise[exKey] {
				a.TopE1RMPerExercise[exKey] = e1rm
			}
		}

		if set.RIR != nil {
			if *set.RIR <= hardSetRIR {
				a.Intensity.HardSets++
				for muscle, share := range set.Muscles {
					a.Intensity.HardSetsPerMuscle[muscle] += share
				}
			}
			if *set.RIR <= lowRIRSetRIR {
				a.Intensity.LowRIRSets++
			}
		}
	}

	return a
}
