package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/de-tools/ga-relay/pkg/adapters"
	"github.com/de-tools/ga-relay/pkg/models/api"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/de-tools/ga-relay/pkg/services/compare"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/rs/zerolog"
)

const (
	reportErrorText     = "Error fetching Google Analytics data"
	comparisonErrorText = "Error fetching analytics data. Please try again later."

	indexFile = "index.html"
)

type Handler struct {
	gateway   report.Gateway
	comparer  compare.Comparer
	publicDir string
}

func NewHandler(gateway report.Gateway, comparer compare.Comparer, publicDir string) *Handler {
	return &Handler{
		gateway:   gateway,
		comparer:  comparer,
		publicDir: publicDir,
	}
}

// GetReport relays a single report. A report with rows is returned unchanged; an empty one
// becomes the no-data message.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	// The upstream call outlives a disconnecting client.
	ctx := context.WithoutCancel(r.Context())
	logger := zerolog.Ctx(ctx)
	q := r.URL.Query()

	query := domain.ReportQuery{
		DateRange: domain.DateRange{
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
		}.WithDefaults(),
		MatchType: domain.ParseMatchType(q.Get("matchType")),
		Keyword:   q.Get("keyword"),
	}

	resp, err := h.gateway.RunReport(ctx, query)
	if err != nil {
		logger.Error().
			Err(err).
			Str("start_date", query.StartDate).
			Str("end_date", query.EndDate).
			Msg("failed to fetch analytics report")
		http.Error(w, reportErrorText, http.StatusInternalServerError)
		return
	}

	if resp == nil || len(resp.Rows) == 0 {
		writeJSON(ctx, w, api.Message{Message: api.NoDataMessage})
		return
	}

	writeJSON(ctx, w, resp)
}

// GetComparison joins the primary range (startDate1/endDate1) with the comparison range
// (startDate2/endDate2) under a shared page path filter.
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	logger := zerolog.Ctx(ctx)
	q := r.URL.Query()

	query := domain.ComparisonQuery{
		Primary: domain.DateRange{
			StartDate: q.Get("startDate1"),
			EndDate:   q.Get("endDate1"),
		}.WithDefaults(),
		Comparison: domain.DateRange{
			StartDate: q.Get("startDate2"),
			EndDate:   q.Get("endDate2"),
		}.WithDefaults(),
		MatchType: domain.ParseMatchType(q.Get("matchType")),
		Keyword:   q.Get("keyword"),
	}

	result, err := h.comparer.Compare(ctx, query)
	if errors.Is(err, report.ErrNoData) {
		writeJSON(ctx, w, api.Message{Message: api.NoDataMessage})
		return
	}
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to compare analytics ranges")
		http.Error(w, comparisonErrorText, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, adapters.MapComparisonDomainToApi(result))
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, indexFile))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
