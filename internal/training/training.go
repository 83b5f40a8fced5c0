package training

import (
	"strings"
	"time"
)

// SetEntry is one performed set inside a completed workout.
type SetEntry struct {
	Exercise    string `json:"exercise"`
	MuscleGroup string `json:"muscleGroup"`
	// Muscles maps individual muscles to their share of the set load.
	// The shares of one exercise are expected to sum to 1.
	Muscles map[string]float64 `json:"muscles,omitempty"`
	Kilos   float64            `json:"kilos"`
	Reps    int                `json:"reps"`
	// RIR (reps in reserve) is diagnostic only, never prescribed.
	RIR    *int `json:"rir,omitempty"`
	Warmup bool `json:"warmup"`
}

// Workout is a completed training session, the source of truth
// for all aggregate recalculations.
type Workout struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CompletedAt time.Time  `json:"completedAt"`
	Sets        []SetEntry `json:"sets"`
}

type SetPrescription struct {
	Kilos  float64 `json:"kilos"`
	Reps   int     `json:"reps"`
	Warmup bool    `json:"warmup"`
}

type TemplateExercise struct {
	Name     string            `json:"name"`
	Position int               `json:"position"`
	Sets     []SetPrescription `json:"sets"`
}

// Template is a reusable prescription of exercises and sets.
type Template struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Exercises []TemplateExercise `json:"exercises"`
}

// Routine schedules a list of templates. At most one routine
// per user is active at a time.
type Routine struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Active    bool       `json:"active"`
	Templates []Template `json:"templates"`
}

// NormalizeExerciseName produces the canonical lookup key for an
// exercise name: trimmed, case folded, inner whitespace collapsed.
func NormalizeExerciseName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, " ")
}
