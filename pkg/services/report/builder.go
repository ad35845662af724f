package report

import (
	"strings"

	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/samber/lo"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

const (
	stringFilterExact    = "EXACT"
	stringFilterContains = "CONTAINS"
)

// BuildRequest shapes a query into a RunReport request. Dates are not validated; malformed
// values are left for the upstream API to reject.
func BuildRequest(query domain.ReportQuery) *analyticsdata.RunReportRequest {
	dates := query.DateRange.WithDefaults()

	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: dates.StartDate,
			EndDate:   dates.EndDate,
		}},
		Dimensions: lo.Map(domain.ReportDimensions, func(d domain.Dimension, _ int) *analyticsdata.Dimension {
			return &analyticsdata.Dimension{Name: string(d)}
		}),
		Metrics: lo.Map(domain.ReportMetrics, func(m domain.Metric, _ int) *analyticsdata.Metric {
			return &analyticsdata.Metric{Name: string(m)}
		}),
	}

	keyword := strings.TrimSpace(query.Keyword)
	if keyword == "" {
		return req
	}

	matchType := stringFilterContains
	if query.MatchType == domain.MatchTypeExact {
		matchType = stringFilterExact
	}

	req.DimensionFilter = &analyticsdata.FilterExpression{
		Filter: &analyticsdata.Filter{
			FieldName: string(domain.DimensionPagePath),
			StringFilter: &analyticsdata.StringFilter{
				Value:     keyword,
				MatchType: matchType,
			},
		},
	}

	return req
}
