package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/ga-relay/pkg/models/api"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) RunReport(ctx context.Context, query domain.ReportQuery) (*analyticsdata.RunReportResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsdata.RunReportResponse), args.Error(1)
}

type mockComparer struct {
	mock.Mock
}

func (m *mockComparer) Compare(ctx context.Context, query domain.ComparisonQuery) (*domain.Comparison, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func singleRowResponse() *analyticsdata.RunReportResponse {
	return &analyticsdata.RunReportResponse{
		DimensionHeaders: []*analyticsdata.DimensionHeader{{Name: "browser"}},
		MetricHeaders:    []*analyticsdata.MetricHeader{{Name: "sessions", Type: "TYPE_INTEGER"}},
		Rows: []*analyticsdata.Row{{
			DimensionValues: []*analyticsdata.DimensionValue{{Value: "Chrome"}},
			MetricValues:    []*analyticsdata.MetricValue{{Value: "10"}},
		}},
		RowCount: 1,
	}
}

func TestGetReport(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*mockGateway)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name: "rows are relayed unchanged",
			url:  "/analytics?startDate=2024-01-01&endDate=2024-01-31&matchType=exact&keyword=%2Fa",
			setupMock: func(m *mockGateway) {
				m.On("RunReport", mock.Anything, domain.ReportQuery{
					DateRange: domain.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"},
					MatchType: domain.MatchTypeExact,
					Keyword:   "/a",
				}).Return(singleRowResponse(), nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp analyticsdata.RunReportResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Rows, 1)
				assert.Equal(t, "Chrome", resp.Rows[0].DimensionValues[0].Value)
				assert.Equal(t, "10", resp.Rows[0].MetricValues[0].Value)
				assert.EqualValues(t, 1, resp.RowCount)
			},
		},
		{
			name: "missing parameters use defaults",
			url:  "/analytics",
			setupMock: func(m *mockGateway) {
				m.On("RunReport", mock.Anything, domain.ReportQuery{
					DateRange: domain.DateRange{StartDate: "90daysAgo", EndDate: "today"},
					MatchType: domain.MatchTypeContains,
				}).Return(singleRowResponse(), nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(body, &payload))
				assert.Contains(t, payload, "rows")
			},
		},
		{
			name: "empty report returns message",
			url:  "/analytics",
			setupMock: func(m *mockGateway) {
				m.On("RunReport", mock.Anything, mock.Anything).
					Return(&analyticsdata.RunReportResponse{}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(body, &payload))
				assert.NotContains(t, payload, "rows")
				assert.Equal(t, api.NoDataMessage, payload["message"])
			},
		},
		{
			name: "upstream failure returns 500 plain text",
			url:  "/analytics",
			setupMock: func(m *mockGateway) {
				m.On("RunReport", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: permission denied", report.ErrUpstream))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Error fetching Google Analytics data\n", string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			tt.setupMock(gw)
			handler := NewHandler(gw, new(mockComparer), t.TempDir())

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.GetReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkBody(t, rec.Body.Bytes())
			gw.AssertExpectations(t)
		})
	}
}

func TestGetComparison(t *testing.T) {
	comparison := &domain.Comparison{
		Rows: []domain.JoinedRow{{
			Browser:           "Chrome",
			DeviceCategory:    "desktop",
			PagePath:          "/a",
			Primary:           map[domain.Metric]string{domain.MetricSessions: "10"},
			Comparison:        map[domain.Metric]string{domain.MetricSessions: "7"},
			ComparisonMatched: true,
		}},
		Table: domain.Table{Columns: []string{"Browser"}, Rows: [][]string{{"Chrome"}}},
		Chart: domain.Chart{Type: "bar", Labels: []string{"Chrome (desktop) - /a"}, BeginAtZero: true},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*mockComparer)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name: "joined rows",
			url:  "/compare?startDate1=2024-02-01&endDate1=2024-02-29&startDate2=2024-01-01&endDate2=2024-01-31&matchType=exact&keyword=%2Fa",
			setupMock: func(m *mockComparer) {
				m.On("Compare", mock.Anything, domain.ComparisonQuery{
					Primary:    domain.DateRange{StartDate: "2024-02-01", EndDate: "2024-02-29"},
					Comparison: domain.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"},
					MatchType:  domain.MatchTypeExact,
					Keyword:    "/a",
				}).Return(comparison, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp api.Comparison
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Rows, 1)
				assert.Equal(t, "10", resp.Rows[0].Primary["sessions"])
				assert.Equal(t, "7", resp.Rows[0].Comparison["sessions"])
				assert.Equal(t, [][]string{{"Chrome"}}, resp.Table.Rows)
				assert.True(t, resp.Chart.Options.Scales.Y.BeginAtZero)
			},
		},
		{
			name: "defaults for both ranges",
			url:  "/compare",
			setupMock: func(m *mockComparer) {
				m.On("Compare", mock.Anything, domain.ComparisonQuery{
					Primary:    domain.DateRange{StartDate: "90daysAgo", EndDate: "today"},
					Comparison: domain.DateRange{StartDate: "90daysAgo", EndDate: "today"},
					MatchType:  domain.MatchTypeContains,
				}).Return(comparison, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody:      func(t *testing.T, body []byte) {},
		},
		{
			name: "no data",
			url:  "/compare",
			setupMock: func(m *mockComparer) {
				m.On("Compare", mock.Anything, mock.Anything).Return(nil, report.ErrNoData)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(body, &payload))
				assert.NotContains(t, payload, "rows")
				assert.Equal(t, api.NoDataMessage, payload["message"])
			},
		},
		{
			name: "upstream failure",
			url:  "/compare",
			setupMock: func(m *mockComparer) {
				m.On("Compare", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("comparison range: %w", report.ErrUpstream))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Error fetching analytics data. Please try again later.\n", string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparer := new(mockComparer)
			tt.setupMock(comparer)
			handler := NewHandler(new(mockGateway), comparer, t.TempDir())

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.GetComparison(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkBody(t, rec.Body.Bytes())
			comparer.AssertExpectations(t)
		})
	}
}

func TestGetReport_SurvivesClientCancellation(t *testing.T) {
	gw := new(mockGateway)
	gw.On("RunReport", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(singleRowResponse(), nil)
	handler := NewHandler(gw, new(mockComparer), t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/analytics", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gw.AssertExpectations(t)
}

func TestGetComparison_SurvivesClientCancellation(t *testing.T) {
	comparer := new(mockComparer)
	comparer.On("Compare", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(&domain.Comparison{
		Rows: []domain.JoinedRow{{Browser: "Chrome"}},
	}, nil)
	handler := NewHandler(new(mockGateway), comparer, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/compare", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.GetComparison(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	comparer.AssertExpectations(t)
}

func TestHandler_LogsUpstreamFailureOnce(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	gw := new(mockGateway)
	gw.On("RunReport", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: permission denied", report.ErrUpstream))
	comparer := new(mockComparer)
	comparer.On("Compare", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("primary range: %w", report.ErrUpstream))
	handler := NewHandler(gw, comparer, t.TempDir())

	handler.GetReport(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/analytics", nil).WithContext(ctx))
	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"error"`))
	assert.Contains(t, logs.String(), "permission denied")

	logs.Reset()
	handler.GetComparison(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/compare", nil).WithContext(ctx))
	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"error"`))
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>relay</h1>"), 0o644))
	handler := NewHandler(new(mockGateway), new(mockComparer), dir)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.Index(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>relay</h1>", rec.Body.String())
}
