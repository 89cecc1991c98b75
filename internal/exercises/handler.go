package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mstanic/liftlog/internal/telemetry/metrics"
	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	List(ctx context.Context) ([]Exercise, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
}

type AddExerciseRequest struct {
	Name     string  `json:"name"`
	BodyPart *string `json:"body_part"`
}

type Handler struct {
	repo    exercisesRepo
	metrics *metrics.Manager
}

func NewHandler(repo exercisesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	addedExercise, err := handler.repo.Add(ctx, Exercise{
		Name:     req.Name,
		BodyPart: req.BodyPart,
	})
	if err != nil {
		if errors.Is(err, ErrExerciseExists) {
			http.Error(w, "error, exercise name already taken", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new exercise [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisesCreated.Inc()

	addedExJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %s", addedExJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedExJson, http.StatusCreated)
}
