package aggregation

import (
	"time"

	"github.com/2beens/trainpulse/internal/analytics"
)

// epsilon bounds map growth: a key whose accumulated magnitude falls
// below it is removed instead of lingering at ~zero forever.
const epsilon = 1e-6

// Intensity is the accumulated effort part of a weekly stat.
type Intensity struct {
	HardSets            float64            `json:"hardSets"`
	LowRIRSets          float64            `json:"lowRirSets"`
	LoadPerMuscle       map[string]float64 `json:"loadPerMuscle"`
	HardSetsPerMuscle   map[string]float64 `json:"hardSetsPerMuscle"`
	TopSetE1RMPerMuscle map[string]float64 `json:"topSetE1RmPerMuscle"`
}

// WeeklyStat is the accumulated analytics of one (user, week bucket).
// Invariant: it equals the sum of the WorkoutAnalytics of all workouts
// completed in that week, under the user's week-start convention.
// The same shape doubles as a rollup for arbitrary period keys.
type WeeklyStat struct {
	UserID    string `json:"userId"`
	PeriodKey string `json:"periodKey"`

	Workouts    int     `json:"workouts"`
	TotalSets   float64 `json:"totalSets"`
	TotalReps   float64 `json:"totalReps"`
	TotalWeight float64 `json:"totalWeight"`

	WeightPerMuscleGroup map[string]float64 `json:"weightPerMuscleGroup"`
	RepsPerMuscleGroup   map[string]float64 `json:"repsPerMuscleGroup"`
	SetsPerMuscleGroup   map[string]float64 `json:"setsPerMuscleGroup"`
	WeightPerMuscle      map[string]float64 `json:"weightPerMuscle"`
	RepsPerMuscle        map[string]float64 `json:"repsPerMuscle"`
	SetsPerMuscle        map[string]float64 `json:"setsPerMuscle"`

	Intensity Intensity `json:"intensity"`

	UpdatedAt      time.Time  `json:"updatedAt"`
	RecalculatedAt *time.Time `json:"recalculatedAt,omitempty"`
}

// NewWeeklyStat returns the zeroed template an aggregate starts from
// on its first write.
func NewWeeklyStat(userID, periodKey string) *WeeklyStat {
	return &WeeklyStat{
		UserID:               userID,
		PeriodKey:            periodKey,
		WeightPerMuscleGroup: make(map[string]float64),
		RepsPerMuscleGroup:   make(map[string]float64),
		SetsPerMuscleGroup:   make(map[string]float64),
		WeightPerMuscle:      make(map[string]float64),
		RepsPerMuscle:        make(map[string]float64),
		SetsPerMuscle:        make(map[string]float64),
		Intensity: Intensity{
			LoadPerMuscle:       make(map[string]float64),
			HardSetsPerMuscle:   make(map[string]float64),
			TopSetE1RMPerMuscle: make(map[string]float64),
		},
	}
}

// Merge adds (sign=+1) or subtracts (sign=-1) one workout's analytics.
// Numeric fields and map values never go negative; the per-muscle top
// set e1RM only ever grows and is left untouched on subtraction.
func (s *WeeklyStat) Merge(a *analytics.WorkoutAnalytics, sign int) {
	s.Workouts = clampInt(s.Workouts + sign)
	s.TotalSets = clamp(s.TotalSets + float64(sign)*a.TotalSets)
	s.TotalReps = clamp(s.TotalReps + float64(sign)*a.TotalReps)
	s.TotalWeight = clamp(s.TotalWeight + float64(sign)*a.TotalWeight)

	mergeMap(s.WeightPerMuscleGroup, a.WeightPerMuscleGroup, sign)
	mergeMap(s.RepsPerMuscleGroup, a.RepsPerMuscleGroup, sign)
	mergeMap(s.SetsPerMuscleGroup, a.SetsPerMuscleGroup, sign)
	mergeMap(s.WeightPerMuscle, a.WeightPerMuscle, sign)
	mergeMap(s.RepsPerMuscle, a.RepsPerMuscle, sign)
	mergeMap(s.SetsPerMuscle, a.SetsPerMuscle, sign)

	s.Intensity.HardSets = clamp(s.Intensity.HardSets + float64(sign)*a.Intensity.HardSets)
	s.Intensity.LowRIRSets = clamp(s.Intensity.LowRIRSets + float64(sign)*a.Intensity.LowRIRSets)
	mergeMap(s.Intensity.LoadPerMuscle, a.Intensity.LoadPerMuscle, sign)
	mergeMap(s.Intensity.HardSetsPerMuscle, a.Intensity.HardSetsPerMuscle, sign)
	if sign > 0 {
		maxMap(s.Intensity.TopSetE1RMPerMuscle, a.Intensity.TopSetE1RMPerMuscle)
	}
}

// MuscleSeriesPoint is one (user, week bucket, muscle) point of the
// per-muscle series. All fields are incrementable.
type MuscleSeriesPoint struct {
	UserID    string `json:"userId"`
	PeriodKey string `json:"periodKey"`
	Muscle    string `json:"muscle"`

	Sets     float64 `json:"sets"`
	Volume   float64 `json:"volume"`
	HardSets float64 `json:"hardSets"`
	Load     float64 `json:"load"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *MuscleSeriesPoint) Merge(a *analytics.WorkoutAnalytics, sign int) {
	s := float64(sign)
	p.Sets = clamp(p.Sets + s*a.SetsPerMuscle[p.Muscle])
	p.Volume = clamp(p.Volume + s*a.WeightPerMuscle[p.Muscle])
	p.HardSets = clamp(p.HardSets + s*a.Intensity.HardSetsPerMuscle[p.Muscle])
	p.Load = clamp(p.Load + s*a.Intensity.LoadPerMuscle[p.Muscle])
}

// IsZero reports whether the point carries no accumulated value anymore
// and can be removed.
func (p *MuscleSeriesPoint) IsZero() bool {
	return p.Sets < epsilon && p.Volume < epsilon && p.HardSets < epsilon && p.Load < epsilon
}

// ExerciseSeriesPoint is one (user, day, exercise) point of the
// per-exercise series. Volume is incrementable; TopE1RM only grows on
// add and is never decremented on delete.
type ExerciseSeriesPoint struct {
	UserID      string `json:"userId"`
	DayKey      string `json:"dayKey"`
	ExerciseKey string `json:"exerciseKey"`

	Volume  float64 `json:"volume"`
	TopE1RM float64 `json:"topE1Rm"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *ExerciseSeriesPoint) Merge(a *analytics.WorkoutAnalytics, sign int) {
	p.Volume = clamp(p.Volume + float64(sign)*a.VolumePerExercise[p.ExerciseKey])
	if sign > 0 {
		if e1rm := a.TopE1RMPerExercise[p.ExerciseKey]; e1rm > p.TopE1RM {
			p.TopE1RM = e1rm
		}
	}
}

func (p *ExerciseSeriesPoint) IsZero() bool {
	return p.Volume < epsilon
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func mergeMap(dst, src map[string]float64, sign int) {
	for k, v := range src {
		newVal := dst[k] + float64(sign)*v
		if newVal < epsilon {
			delete(dst, k)
			continue
		}
		dst[k] = newVal
	}
}

func maxMap(dst, src map[string]float64) {
	for k, v := range src {
		if v > dst[k] {
			dst[k] = v
		}
	}
}
