package adapters

import (
	"github.com/de-tools/ga-relay/pkg/models/api"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/samber/lo"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

// MapRunReportResponseToDomain resolves every positional value in the response to its
// dimension or metric name using the response headers. When the headers are missing the
// requested order is assumed.
func MapRunReportResponseToDomain(resp *analyticsdata.RunReportResponse) domain.ReportResult {
	if resp == nil || len(resp.Rows) == 0 {
		return domain.ReportResult{}
	}

	dimensions := domain.ReportDimensions
	if len(resp.DimensionHeaders) > 0 {
		dimensions = lo.Map(resp.DimensionHeaders, func(h *analyticsdata.DimensionHeader, _ int) domain.Dimension {
			return domain.Dimension(h.Name)
		})
	}

	metrics := domain.ReportMetrics
	if len(resp.MetricHeaders) > 0 {
		metrics = lo.Map(resp.MetricHeaders, func(h *analyticsdata.MetricHeader, _ int) domain.Metric {
			return domain.Metric(h.Name)
		})
	}

	rows := make([]domain.ReportRow, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if row == nil {
			continue
		}
		r := domain.ReportRow{
			Dimensions: make(map[domain.Dimension]string, len(dimensions)),
			Metrics:    make(map[domain.Metric]string, len(metrics)),
		}
		for i, v := range row.DimensionValues {
			if i >= len(dimensions) || v == nil {
				continue
			}
			r.Dimensions[dimensions[i]] = v.Value
		}
		for i, v := range row.MetricValues {
			if i >= len(metrics) || v == nil {
				continue
			}
			r.Metrics[metrics[i]] = v.Value
		}
		rows = append(rows, r)
	}

	return domain.ReportResult{Rows: rows}
}

func MapJoinedRowDomainToApi(row domain.JoinedRow) api.JoinedRow {
	return api.JoinedRow{
		Browser:           row.Browser,
		DeviceCategory:    row.DeviceCategory,
		Country:           row.Country,
		City:              row.City,
		PagePath:          row.PagePath,
		Primary:           metricsToApi(row.Primary),
		Comparison:        metricsToApi(row.Comparison),
		ComparisonMatched: row.ComparisonMatched,
	}
}

func metricsToApi(metrics map[domain.Metric]string) map[string]string {
	out := make(map[string]string, len(metrics))
	for k, v := range metrics {
		out[string(k)] = v
	}
	return out
}

func MapTableDomainToApi(t domain.Table) api.Table {
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return api.Table{
		Columns: t.Columns,
		Rows:    rows,
	}
}

func MapChartDomainToApi(c domain.Chart) api.ChartConfig {
	return api.ChartConfig{
		Type: c.Type,
		Data: api.ChartData{
			Labels: c.Labels,
			Datasets: lo.Map(c.Datasets, func(ds domain.ChartDataset, _ int) api.ChartDataset {
				return api.ChartDataset{
					Label:           ds.Label,
					Data:            ds.Data,
					BackgroundColor: ds.BackgroundColor,
					BorderColor:     ds.BorderColor,
					BorderWidth:     ds.BorderWidth,
				}
			}),
		},
		Options: api.ChartOptions{
			Scales: api.ChartScales{Y: api.ChartAxis{BeginAtZero: c.BeginAtZero}},
		},
	}
}

func MapComparisonDomainToApi(c *domain.Comparison) api.Comparison {
	return api.Comparison{
		Rows:  lo.Map(c.Rows, func(r domain.JoinedRow, _ int) api.JoinedRow { return MapJoinedRowDomainToApi(r) }),
		Table: MapTableDomainToApi(c.Table),
		Chart: MapChartDomainToApi(c.Chart),
	}
}
