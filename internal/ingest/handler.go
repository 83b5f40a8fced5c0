package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/trainpulse/internal/aggregation"
	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=ingest_test

type eventProcessor interface {
	ProcessEvent(ctx context.Context, ev analytics.WorkoutEvent) (*Result, error)
}

type Handler struct {
	processor eventProcessor
}

func NewHandler(processor eventProcessor) *Handler {
	return &Handler{
		processor: processor,
	}
}

func (handler *Handler) HandleWorkoutEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ingest.workoutEvent")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var ev analytics.WorkoutEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		log.Errorf("workout event, unmarshal json params: %s", err)
		http.Error(w, "ingest workout event failed", http.StatusBadRequest)
		return
	}

	result, err := handler.processor.ProcessEvent(ctx, ev)
	switch {
	case errors.Is(err, analytics.ErrInvalidAnalytics),
		errors.Is(err, aggregation.ErrIncompleteAnalytics):
		log.Errorf("workout event %s rejected: %s", ev.ID, err)
		http.Error(w, "invalid workout event", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to process workout event %s: %s", ev.ID, err)
		http.Error(w, "error, failed to process workout event", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout event processed: [%s] [%s]: %s", ev.Type, ev.ID, result.Outcome)

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal ingest result: %s", err)
		http.Error(w, "error, failed to process workout event", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusCreated)
}
