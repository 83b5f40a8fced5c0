package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/trainpulse/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=aggregation_test

type statsReader interface {
	GetWeekly(ctx context.Context, userID, periodKey string) (*WeeklyStat, error)
	GetRollup(ctx context.Context, userID, periodKey string) (*WeeklyStat, error)
	ListMuscleSeries(ctx context.Context, userID, periodKey string) ([]MuscleSeriesPoint, error)
	ListExerciseSeries(ctx context.Context, userID, exerciseKey, fromDay, toDay string) ([]ExerciseSeriesPoint, error)
}

type reconciler interface {
	Reconcile(ctx context.Context, userID, periodKey string, force bool) (ReconcileOutcome, error)
	Sweep(ctx context.Context) (*SweepResult, error)
}

// Handler serves the aggregate read endpoints consumed by charts and
// review surfaces, plus the manual reconcile triggers.
type Handler struct {
	repo    statsReader
	auditor reconciler
}

func NewHandler(repo statsReader, auditor reconciler) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
	}
}

func (h *Handler) HandleGetWeekly(w http.ResponseWriter, r *http.Request) {
	userID, periodKey, ok := h.statParams(w, r, weekKeyPrefix)
	if !ok {
		return
	}

	stat, err := h.repo.GetWeekly(r.Context(), userID, periodKey)
	if errors.Is(err, ErrStatNotFound) {
		http.Error(w, "stat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get weekly stat %s for %s: %s", periodKey, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, stat)
}

func (h *Handler) HandleGetRollup(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	periodKey := r.URL.Query().Get("period")
	if userID == "" || periodKey == "" {
		http.Error(w, "user id or period missing", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(periodKey, monthKeyPrefix) && !strings.HasPrefix(periodKey, yearKeyPrefix) {
		http.Error(w, "rollup period must be monthly or yearly", http.StatusBadRequest)
		return
	}

	stat, err := h.repo.GetRollup(r.Context(), userID, periodKey)
	if errors.Is(err, ErrStatNotFound) {
		http.Error(w, "stat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get rollup %s for %s: %s", periodKey, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, stat)
}

func (h *Handler) HandleListMuscleSeries(w http.ResponseWriter, r *http.Request) {
	userID, periodKey, ok := h.statParams(w, r, weekKeyPrefix)
	if !ok {
		return
	}

	points, err := h.repo.ListMuscleSeries(r.Context(), userID, periodKey)
	if err != nil {
		log.Errorf("list muscle series %s for %s: %s", periodKey, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, points)
}

func (h *Handler) HandleListExerciseSeries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	query := r.URL.Query()
	exercise := query.Get("exercise")
	fromDay := query.Get("from")
	toDay := query.Get("to")
	if userID == "" || exercise == "" || fromDay == "" || toDay == "" {
		http.Error(w, "user id, exercise, from and to are required", http.StatusBadRequest)
		return
	}

	points, err := h.repo.ListExerciseSeries(
		r.Context(), userID, exercise,
		dayKeyPrefix+fromDay, dayKeyPrefix+toDay,
	)
	if err != nil {
		log.Errorf("list exercise series %q for %s: %s", exercise, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, points)
}

func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	userID, periodKey, ok := h.statParams(w, r, weekKeyPrefix)
	if !ok {
		return
	}
	force := r.URL.Query().Get("force") == "true"

	outcome, err := h.auditor.Reconcile(r.Context(), userID, periodKey, force)
	if err != nil {
		log.Errorf("reconcile %s for %s: %s", periodKey, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]string{"outcome": string(outcome)})
}

func (h *Handler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.auditor.Sweep(r.Context())
	if err != nil {
		log.Errorf("reconciliation sweep: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, result)
}

func (h *Handler) statParams(w http.ResponseWriter, r *http.Request, wantPrefix string) (userID, periodKey string, ok bool) {
	userID = mux.Vars(r)["userID"]
	periodKey = r.URL.Query().Get("period")
	if userID == "" || periodKey == "" {
		http.Error(w, "user id or period missing", http.StatusBadRequest)
		return "", "", false
	}
	if !strings.HasPrefix(periodKey, wantPrefix) {
		http.Error(w, "invalid period key", http.StatusBadRequest)
		return "", "", false
	}
	return userID, periodKey, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal stats response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, payload)
}
