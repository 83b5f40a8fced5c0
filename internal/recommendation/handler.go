package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/trainpulse/internal/profile"
	"github.com/2beens/trainpulse/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recommendation_test

type prefsGetter interface {
	Get(ctx context.Context, userID string) (*profile.Prefs, error)
}

type recsLister interface {
	ListForUser(ctx context.Context, userID string, states []State) ([]AgentRecommendation, error)
}

type Handler struct {
	manager *Manager
	repo    recsLister
	prefs   prefsGetter
}

func NewHandler(manager *Manager, repo recsLister, prefs prefsGetter) *Handler {
	return &Handler{
		manager: manager,
		repo:    repo,
		prefs:   prefs,
	}
}

// HandleInsights accepts one analyzer insight document and runs it
// through the lifecycle manager.
func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if contentType := r.Header.Get("Content-Type"); contentType != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var doc InsightDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Errorf("handle insights, decode doc: %s", err)
		http.Error(w, "invalid insight document", http.StatusBadRequest)
		return
	}
	if doc.UserID == "" {
		http.Error(w, "user id missing", http.StatusBadRequest)
		return
	}

	prefs, err := h.prefs.Get(r.Context(), doc.UserID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("handle insights, get prefs for %s: %s", doc.UserID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	report, err := h.manager.ProcessInsights(r.Context(), doc, *prefs)
	if err != nil {
		log.Errorf("handle insights for %s: %s", doc.UserID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		log.Errorf("handle insights, marshal report: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, reportJSON, http.StatusCreated)
}

// HandleList returns a user's recommendations, optionally filtered by
// a comma separated state list.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "user id missing", http.StatusBadRequest)
		return
	}

	var states []State
	if stateParam := r.URL.Query().Get("state"); stateParam != "" {
		for _, s := range strings.Split(stateParam, ",") {
			state := State(strings.TrimSpace(s))
			switch state {
			case StatePendingReview, StateApplied, StateFailed, StateExpired:
				states = append(states, state)
			default:
				http.Error(w, "invalid state filter", http.StatusBadRequest)
				return
			}
		}
	}

	recs, err := h.repo.ListForUser(r.Context(), userID, states)
	if err != nil {
		log.Errorf("list recommendations for %s: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []AgentRecommendation{}
	}

	recsJSON, err := json.Marshal(recs)
	if err != nil {
		log.Errorf("list recommendations, marshal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recsJSON)
}

type reviewRequest struct {
	Decision string `json:"decision"`
	By       string `json:"by"`
}

// HandleReview applies an accept or reject decision to one pending
// recommendation.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recID := vars["id"]
	if recID == "" {
		http.Error(w, "recommendation id missing", http.StatusBadRequest)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid review request", http.StatusBadRequest)
		return
	}

	var accept bool
	switch req.Decision {
	case "accept":
		accept = true
	case "reject":
		accept = false
	default:
		http.Error(w, "decision must be accept or reject", http.StatusBadRequest)
		return
	}
	if req.By == "" {
		req.By = "user"
	}

	rec, err := h.manager.Review(r.Context(), recID, accept, req.By)
	switch {
	case errors.Is(err, ErrRecommendationNotFound):
		http.Error(w, "recommendation not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrNotPending):
		http.Error(w, "recommendation is not pending review", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("review recommendation %s: %s", recID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recJSON, err := json.Marshal(rec)
	if err != nil {
		log.Errorf("review recommendation, marshal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recJSON)
}
