package domain

type MatchType string

const (
	MatchTypeExact    MatchType = "exact"
	MatchTypeContains MatchType = "contains"
)

// ParseMatchType treats anything other than the literal "exact" as a substring match.
func ParseMatchType(s string) MatchType {
	if s == string(MatchTypeExact) {
		return MatchTypeExact
	}
	return MatchTypeContains
}

const (
	DefaultStartDate = "90daysAgo"
	DefaultEndDate   = "today"
)

// DateRange holds either absolute dates (YYYY-MM-DD) or GA relative keywords such as "today".
type DateRange struct {
	StartDate string
	EndDate   string
}

// WithDefaults fills missing bounds with the 90 day lookback ending today.
func (r DateRange) WithDefaults() DateRange {
	if r.StartDate == "" {
		r.StartDate = DefaultStartDate
	}
	if r.EndDate == "" {
		r.EndDate = DefaultEndDate
	}
	return r
}

type ReportQuery struct {
	DateRange
	MatchType MatchType
	Keyword   string
}

type ComparisonQuery struct {
	Primary    DateRange
	Comparison DateRange
	MatchType  MatchType
	Keyword    string
}

func (q ComparisonQuery) PrimaryReport() ReportQuery {
	return ReportQuery{DateRange: q.Primary, MatchType: q.MatchType, Keyword: q.Keyword}
}

func (q ComparisonQuery) ComparisonReport() ReportQuery {
	return ReportQuery{DateRange: q.Comparison, MatchType: q.MatchType, Keyword: q.Keyword}
}

type Dimension string

const (
	DimensionBrowser        Dimension = "browser"
	DimensionDeviceCategory Dimension = "deviceCategory"
	DimensionCountry        Dimension = "country"
	DimensionCity           Dimension = "city"
	DimensionPagePath       Dimension = "pagePath"
)

type Metric string

const (
	MetricActiveUsers            Metric = "activeUsers"
	MetricSessions               Metric = "sessions"
	MetricBounceRate             Metric = "bounceRate"
	MetricNewUsers               Metric = "newUsers"
	MetricAverageSessionDuration Metric = "averageSessionDuration"
	MetricEventCount             Metric = "eventCount"
	MetricEngagementRate         Metric = "engagementRate"
	MetricScreenPageViews        Metric = "screenPageViews"
	MetricSessionsPerUser        Metric = "sessionsPerUser"
	MetricTotalRevenue           Metric = "totalRevenue"
)

// ReportDimensions and ReportMetrics are the order in which every report is requested.
var (
	ReportDimensions = []Dimension{
		DimensionBrowser,
		DimensionDeviceCategory,
		DimensionCountry,
		DimensionCity,
		DimensionPagePath,
	}
	ReportMetrics = []Metric{
		MetricActiveUsers,
		MetricSessions,
		MetricBounceRate,
		MetricNewUsers,
		MetricAverageSessionDuration,
		MetricEventCount,
		MetricEngagementRate,
		MetricScreenPageViews,
		MetricSessionsPerUser,
		MetricTotalRevenue,
	}
)

// ReportRow carries one row of a report keyed by dimension and metric name.
type ReportRow struct {
	Dimensions map[Dimension]string
	Metrics    map[Metric]string
}

func (r ReportRow) Dimension(d Dimension) string {
	return r.Dimensions[d]
}

func (r ReportRow) Metric(m Metric) string {
	return r.Metrics[m]
}

type ReportResult struct {
	Rows []ReportRow
}

func (r ReportResult) Empty() bool {
	return len(r.Rows) == 0
}
