package compare

import (
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/samber/lo"
)

// Join pairs every primary row with the first comparison row sharing its browser, device
// category and page path. Primary order and duplicate keys are kept. Rows without a
// counterpart get ZeroMetricValue for every comparison metric.
func Join(primary, comparison domain.ReportResult) []domain.JoinedRow {
	joined := make([]domain.JoinedRow, 0, len(primary.Rows))

	for _, p := range primary.Rows {
		match, found := lo.Find(comparison.Rows, func(c domain.ReportRow) bool {
			return sameCompositeKey(p, c)
		})

		row := domain.JoinedRow{
			Browser:           p.Dimension(domain.DimensionBrowser),
			DeviceCategory:    p.Dimension(domain.DimensionDeviceCategory),
			Country:           p.Dimension(domain.DimensionCountry),
			City:              p.Dimension(domain.DimensionCity),
			PagePath:          p.Dimension(domain.DimensionPagePath),
			Primary:           make(map[domain.Metric]string, len(domain.ReportMetrics)),
			Comparison:        make(map[domain.Metric]string, len(domain.ReportMetrics)),
			ComparisonMatched: found,
		}

		for _, m := range domain.ReportMetrics {
			row.Primary[m] = p.Metric(m)
			if found {
				row.Comparison[m] = match.Metric(m)
			} else {
				row.Comparison[m] = domain.ZeroMetricValue
			}
		}

		joined = append(joined, row)
	}

	return joined
}

func sameCompositeKey(a, b domain.ReportRow) bool {
	return a.Dimension(domain.DimensionBrowser) == b.Dimension(domain.DimensionBrowser) &&
		a.Dimension(domain.DimensionDeviceCategory) == b.Dimension(domain.DimensionDeviceCategory) &&
		a.Dimension(domain.DimensionPagePath) == b.Dimension(domain.DimensionPagePath)
}
