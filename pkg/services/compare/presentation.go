package compare

import (
	"fmt"

	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/samber/lo"
)

const (
	chartTypeBar = "bar"

	primaryRangeLabel    = "First Date Range"
	comparisonRangeLabel = "Comparison Date Range"
)

var metricLabels = map[domain.Metric]string{
	domain.MetricActiveUsers:            "Active Users",
	domain.MetricSessions:               "Sessions",
	domain.MetricBounceRate:             "Bounce Rate",
	domain.MetricNewUsers:               "New Users",
	domain.MetricAverageSessionDuration: "Avg. Session Duration",
	domain.MetricEventCount:             "Event Count",
	domain.MetricEngagementRate:         "Engagement Rate",
	domain.MetricScreenPageViews:        "Views",
	domain.MetricSessionsPerUser:        "Views per Active User",
	domain.MetricTotalRevenue:           "Total Revenue",
}

var dimensionLabels = map[domain.Dimension]string{
	domain.DimensionBrowser:        "Browser",
	domain.DimensionDeviceCategory: "Device Category",
	domain.DimensionCountry:        "Country",
	domain.DimensionCity:           "City",
	domain.DimensionPagePath:       "Page Path",
}

func MetricLabel(m domain.Metric) string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// BuildTable lays out one row per joined row. Values are copied verbatim, no numeric formatting.
func BuildTable(rows []domain.JoinedRow) domain.Table {
	columns := lo.Map(domain.ReportDimensions, func(d domain.Dimension, _ int) string {
		return dimensionLabels[d]
	})
	for _, m := range domain.ReportMetrics {
		columns = append(columns,
			fmt.Sprintf("%s (%s)", MetricLabel(m), primaryRangeLabel),
			fmt.Sprintf("%s (%s)", MetricLabel(m), comparisonRangeLabel),
		)
	}

	table := domain.Table{
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		cells := []string{
			domain.DisplayValue(r.Browser),
			domain.DisplayValue(r.DeviceCategory),
			domain.DisplayValue(r.Country),
			domain.DisplayValue(r.City),
			domain.DisplayValue(r.PagePath),
		}
		for _, m := range domain.ReportMetrics {
			cells = append(cells, r.Primary[m], r.Comparison[m])
		}
		table.Rows = append(table.Rows, cells)
	}

	return table
}

// BuildChart produces a grouped bar chart of sessions, one series per date range.
func BuildChart(rows []domain.JoinedRow) domain.Chart {
	labels := make([]string, 0, len(rows))
	primary := make([]string, 0, len(rows))
	comparison := make([]string, 0, len(rows))

	for _, r := range rows {
		labels = append(labels, r.Label())
		primary = append(primary, r.Primary[domain.MetricSessions])
		comparison = append(comparison, r.Comparison[domain.MetricSessions])
	}

	return domain.Chart{
		Type:   chartTypeBar,
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{
				Label:           fmt.Sprintf("Sessions (%s)", primaryRangeLabel),
				Data:            primary,
				BackgroundColor: "rgba(75, 192, 192, 0.2)",
				BorderColor:     "rgba(75, 192, 192, 1)",
				BorderWidth:     1,
			},
			{
				Label:           fmt.Sprintf("Sessions (%s)", comparisonRangeLabel),
				Data:            comparison,
				BackgroundColor: "rgba(153, 102, 255, 0.2)",
				BorderColor:     "rgba(153, 102, 255, 1)",
				BorderWidth:     1,
			},
		},
		BeginAtZero: true,
	}
}

// BuildReportTable lays out a single range report, one column per dimension and metric.
func BuildReportTable(result domain.ReportResult) domain.Table {
	columns := lo.Map(domain.ReportDimensions, func(d domain.Dimension, _ int) string {
		return dimensionLabels[d]
	})
	columns = append(columns, lo.Map(domain.ReportMetrics, func(m domain.Metric, _ int) string {
		return MetricLabel(m)
	})...)

	table := domain.Table{
		Columns: columns,
		Rows:    make([][]string, 0, len(result.Rows)),
	}
	for _, r := range result.Rows {
		cells := make([]string, 0, len(columns))
		for _, d := range domain.ReportDimensions {
			cells = append(cells, domain.DisplayValue(r.Dimension(d)))
		}
		for _, m := range domain.ReportMetrics {
			cells = append(cells, r.Metric(m))
		}
		table.Rows = append(table.Rows, cells)
	}

	return table
}
