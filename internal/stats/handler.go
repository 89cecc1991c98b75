package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsAnalyzer interface {
	WeeklySummary(ctx context.Context, ref time.Time) ([]SummaryRow, error)
	PersonalRecords(ctx context.Context) ([]PersonalRecord, error)
}

type Handler struct {
	analyzer statsAnalyzer
	now      func() time.Time
}

func NewHandler(analyzer statsAnalyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (handler *Handler) HandleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weeklysummary")
	defer span.End()

	summary, err := handler.analyzer.WeeklySummary(ctx, handler.now())
	if err != nil {
		log.Errorf("failed to get weekly summary: %s", err)
		http.Error(w, "error, failed to get weekly summary", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal weekly summary: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.personalrecords")
	defer span.End()

	records, err := handler.analyzer.PersonalRecords(ctx)
	if err != nil {
		log.Errorf("failed to get personal records: %s", err)
		http.Error(w, "error, failed to get personal records", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal personal records: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
