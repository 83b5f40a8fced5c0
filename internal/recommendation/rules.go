package recommendation

import (
	"fmt"
	"math"

	"github.com/2beens/trainpulse/internal/training"
)

// Weight changes snap to plate-loadable steps: coarse above the
// threshold, fine at or below it.
const (
	stepCoarse    = 2.5
	stepFine      = 1.25
	stepThreshold = 60.0

	deloadFactor = 0.9

	// progression percent, smaller for heavier loads
	heavyLoad         = 100.0
	mediumLoad        = 60.0
	progressPctHeavy  = 0.025
	progressPctMedium = 0.05
	progressPctLight  = 0.075
	maxWeightIncrease = 5.0

	minReps = 1
	maxReps = 30
)

func stepFor(weight float64) float64 {
	if weight > stepThreshold {
		return stepCoarse
	}
	return stepFine
}

func roundToStep(value, step float64) float64 {
	return math.Round(value/step) * step
}

func progressionPercent(current float64) float64 {
	switch {
	case current >= heavyLoad:
		return progressPctHeavy
	case current >= mediumLoad:
		return progressPctMedium
	default:
		return progressPctLight
	}
}

// ComputeWeight returns the new target weight for a set currently at
// current kilos. An explicit analyzer suggestion wins, floored at
// zero like every other result. Deload takes 10% off; everything else
// progresses by a load-tiered percent, always at least one step up,
// never more than maxWeightIncrease total, never below zero.
func ComputeWeight(current float64, recType RecType, explicit *float64) float64 {
	if explicit != nil {
		if *explicit < 0 {
			return 0
		}
		return *explicit
	}

	step := stepFor(current)

	if recType == TypeDeload {
		newWeight := roundToStep(current*deloadFactor, step)
		if newWeight < 0 {
			return 0
		}
		return newWeight
	}

	pct := progressionPercent(current)
	newWeight := roundToStep(current*(1+pct), step)
	if newWeight == current {
		newWeight = current + step
	}
	if newWeight > current+maxWeightIncrease {
		newWeight = current + maxWeightIncrease
	}
	if newWeight < 0 {
		return 0
	}
	return newWeight
}

// ComputeReps replaces the rep target directly, clamped to [1, 30].
// Reps advance before weight (double progression); RIR is diagnostic
// input upstream and never a prescribed value here.
func ComputeReps(current, target int) int {
	if target < minReps {
		return minReps
	}
	if target > maxReps {
		return maxReps
	}
	return target
}

// BuildTemplateChanges walks every working set of a template exercise
// (warm-up sets are always skipped) and emits one change entry per set
// whose computed value differs from its current one.
func BuildTemplateChanges(exercise training.TemplateExercise, c Candidate) []Change {
	var changes []Change
	for i, set := range exercise.Sets {
		if set.Warmup {
			continue
		}

		if c.Type == TypeRepProgression {
			target := set.Reps + 1
			if c.TargetReps != nil {
				target = *c.TargetReps
			}
			newReps := ComputeReps(set.Reps, target)
			if newReps == set.Reps {
				continue
			}
			changes = append(changes, Change{
				Path:      fmt.Sprintf("sets[%d].reps", i),
				From:      set.Reps,
				To:        newReps,
				Rationale: c.Rationale,
			})
			continue
		}

		newWeight := ComputeWeight(set.Kilos, c.Type, c.SuggestedValue)
		if newWeight == set.Kilos {
			continue
		}
		changes = append(changes, Change{
			Path:      fmt.Sprintf("sets[%d].kilos", i),
			From:      set.Kilos,
			To:        newWeight,
			Rationale: c.Rationale,
		})
	}
	return changes
}
