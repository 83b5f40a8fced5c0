package recommendation

import (
	"fmt"
	"time"
)

// Scope names what a recommendation targets. Only template scope
// supports direct mutation via the apply operation.
type Scope string

const (
	ScopeTemplate    Scope = "template"
	ScopeExercise    Scope = "exercise"
	ScopeMuscleGroup Scope = "muscle_group"
	ScopeRoutine     Scope = "routine"
)

// RecType can be one of:
//   - progression
//   - deload
//   - rep_progression
//   - volume_adjust
//   - muscle_balance
//   - swap
type RecType string

const (
	TypeProgression    RecType = "progression"
	TypeDeload         RecType = "deload"
	TypeRepProgression RecType = "rep_progression"
	TypeVolumeAdjust   RecType = "volume_adjust"
	TypeMuscleBalance  RecType = "muscle_balance"
	TypeSwap           RecType = "swap"
)

func (rt RecType) IsValid() bool {
	switch rt {
	case TypeProgression, TypeDeload, TypeRepProgression,
		TypeVolumeAdjust, TypeMuscleBalance, TypeSwap:
		return true
	default:
		return false
	}
}

type State string

const (
	StatePendingReview State = "pending_review"
	StateApplied       State = "applied"
	StateFailed        State = "failed"
	StateExpired       State = "expired"
)

// allowed transitions; every record is created in pending_review,
// auto-pilot then transitions it right after the insert
var transitions = map[State][]State{
	StatePendingReview: {StateApplied, StateFailed, StateExpired},
	StateApplied:       {StateFailed},
}

func (s State) CanTransitionTo(to State) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Change is one concrete, bounded numeric change of the target.
type Change struct {
	Path      string `json:"path"`
	From      any    `json:"from"`
	To        any    `json:"to"`
	Rationale string `json:"rationale,omitempty"`
}

// Transition is one immutable entry of the append-only state history.
type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
	By   string    `json:"by"`
	Note string    `json:"note,omitempty"`
}

// AgentRecommendation is one confidence-scored recommendation record.
// It is created once, mutated only via state transitions, and never
// deleted - only expired.
type AgentRecommendation struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Scope Scope `json:"scope"`
	// TargetIdentity is the normalized identity the dedup guarantee
	// holds for: at most one pending_review record per (user, target).
	TargetIdentity string `json:"targetIdentity"`
	TemplateID     string `json:"templateId,omitempty"`
	Position       int    `json:"position,omitempty"`

	Type       RecType  `json:"type"`
	Changes    []Change `json:"changes,omitempty"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`

	State        State        `json:"state"`
	StateHistory []Transition `json:"stateHistory"`
	AppliedBy    string       `json:"appliedBy,omitempty"`
	AppliedAt    *time.Time   `json:"appliedAt,omitempty"`
	ApplyError   string       `json:"applyError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TransitionTo moves the recommendation to a new state, appending the
// history entry. Invalid transitions are rejected.
func (r *AgentRecommendation) TransitionTo(to State, by, note string, at time.Time) error {
	if !r.State.CanTransitionTo(to) {
		return fmt.Errorf("invalid state transition %s -> %s", r.State, to)
	}
	r.StateHistory = append(r.StateHistory, Transition{
		From: r.State,
		To:   to,
		At:   at,
		By:   by,
		Note: note,
	})
	r.State = to
	return nil
}

// Candidate is one analyzer-produced insight candidate.
type Candidate struct {
	Type           RecType           `json:"type"`
	Target         string            `json:"target"`
	SuggestedValue *float64          `json:"suggestedValue,omitempty"`
	TargetReps     *int              `json:"targetReps,omitempty"`
	Confidence     float64           `json:"confidence"`
	Rationale      string            `json:"rationale"`
	Signals        map[string]string `json:"signals,omitempty"`
}

// InsightDoc is the inbound analyzer or weekly review document
// carrying candidate recommendations.
type InsightDoc struct {
	UserID string `json:"userId"`
	// Kind is "post_workout" or "weekly_review".
	Kind string `json:"kind"`
	// TriggerWorkoutID is set for post-workout documents and steers
	// the resolver's fallback baseline to the triggering workout.
	TriggerWorkoutID string      `json:"triggerWorkoutId,omitempty"`
	Candidates       []Candidate `json:"candidates"`
}
