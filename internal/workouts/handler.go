package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mstanic/liftlog/internal/exercises"
	"github.com/mstanic/liftlog/internal/telemetry/metrics"
	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	NewWorkout(ctx context.Context, date time.Time, notes *string) (int, error)
	RecordSet(ctx context.Context, params RecordSetParams) (int, error)
}

type NewWorkoutRequest struct {
	Date  string  `json:"date"`
	Notes *string `json:"notes"`
}

type RecordSetRequest struct {
	WorkoutID int      `json:"workout_id"`
	Exercise  string   `json:"exercise"`
	Weight    float64  `json:"weight"`
	Reps      int      `json:"reps"`
	RPE       *float64 `json:"rpe"`
}

type CreatedResponse struct {
	ID int `json:"id"`
}

type Handler struct {
	service workoutsService
	metrics *metrics.Manager
}

func NewHandler(service workoutsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleNewWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req NewWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = parseWorkoutDate(req.Date)
		if err != nil {
			log.Tracef("new workout, parse date: %s", err)
			http.Error(w, "error, invalid date", http.StatusBadRequest)
			return
		}
	}

	id, err := handler.service.NewWorkout(ctx, date, req.Notes)
	if err != nil {
		log.Errorf("failed to add new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	writeCreatedResponse(w, id)
}

func (handler *Handler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.recordset")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RecordSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("record set, unmarshal json params: %s", err)
		http.Error(w, "record set failed", http.StatusBadRequest)
		return
	}

	id, err := handler.service.RecordSet(ctx, RecordSetParams{
		WorkoutID: req.WorkoutID,
		Exercise:  req.Exercise,
		Weight:    req.Weight,
		Reps:      req.Reps,
		RPE:       req.RPE,
	})
	switch {
	case err == nil:
		// continue below
	case errors.Is(err, ErrInvalidReps), errors.Is(err, ErrEmptyExerciseName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	case errors.Is(err, exercises.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	default:
		log.Errorf("failed to record set [workout %d] [%s]: %s", req.WorkoutID, req.Exercise, err)
		http.Error(w, "error, failed to record set", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSetsRecorded.Inc()

	log.Debugf("new set %d recorded: workout %d, %s, %v x %d", id, req.WorkoutID, req.Exercise, req.Weight, req.Reps)
	writeCreatedResponse(w, id)
}

// parseWorkoutDate accepts a full timestamp or a plain day.
func parseWorkoutDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

func writeCreatedResponse(w http.ResponseWriter, id int) {
	respJson, err := json.Marshal(CreatedResponse{ID: id})
	if err != nil {
		log.Errorf("failed to marshal created response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}
