package dailylogs

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mstanic/liftlog/internal/telemetry/metrics"
	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dailylogs_test

type dailyLogsRepo interface {
	UpsertBodyWeight(ctx context.Context, log BodyWeightLog) error
	UpsertNutrition(ctx context.Context, log NutritionLog) error
}

type UpsertBodyWeightRequest struct {
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
}

type UpsertNutritionRequest struct {
	Date     string   `json:"date"`
	Calories *int     `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type Handler struct {
	repo    dailyLogsRepo
	metrics *metrics.Manager
}

func NewHandler(repo dailyLogsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleUpsertBodyWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.bodyweight")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpsertBodyWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("upsert body weight, unmarshal json params: %s", err)
		http.Error(w, "upsert body weight failed", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}
	if req.Weight == nil {
		http.Error(w, "error, weight missing", http.StatusBadRequest)
		return
	}

	err := handler.repo.UpsertBodyWeight(ctx, BodyWeightLog{
		Date:   req.Date,
		Weight: *req.Weight,
	})
	if err != nil {
		log.Errorf("failed to upsert body weight for %s: %s", req.Date, err)
		http.Error(w, "error, failed to upsert body weight", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDailyLogUpserts.WithLabelValues("bodyweight").Inc()

	pkg.WriteJSONResponseOK(w, `{"ok":true}`)
}

func (handler *Handler) HandleUpsertNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.nutrition")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpsertNutritionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("upsert nutrition, unmarshal json params: %s", err)
		http.Error(w, "upsert nutrition failed", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}

	// absent nutrient fields are stored as null, a later upsert with fewer
	// fields overwrites the previously stored ones
	err := handler.repo.UpsertNutrition(ctx, NutritionLog{
		Date:     req.Date,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
	if err != nil {
		log.Errorf("failed to upsert nutrition for %s: %s", req.Date, err)
		http.Error(w, "error, failed to upsert nutrition", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDailyLogUpserts.WithLabelValues("nutrition").Inc()

	pkg.WriteJSONResponseOK(w, `{"ok":true}`)
}
