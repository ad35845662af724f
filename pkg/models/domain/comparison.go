package domain

import "fmt"

const ZeroMetricValue = "0"

// JoinedRow is a primary report row together with the metrics of its comparison counterpart.
type JoinedRow struct {
	Browser        string
	DeviceCategory string
	Country        string
	City           string
	PagePath       string

	Primary    map[Metric]string
	Comparison map[Metric]string

	// ComparisonMatched is false when no comparison row shared the composite key and
	// Comparison was filled with ZeroMetricValue.
	ComparisonMatched bool
}

func (r JoinedRow) Label() string {
	return fmt.Sprintf("%s (%s) - %s",
		DisplayValue(r.Browser),
		DisplayValue(r.DeviceCategory),
		DisplayValue(r.PagePath))
}

// DisplayValue renders an empty dimension value the way the table and chart show it.
func DisplayValue(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

type Table struct {
	Columns []string
	Rows    [][]string
}

type ChartDataset struct {
	Label           string
	Data            []string
	BackgroundColor string
	BorderColor     string
	BorderWidth     int
}

type Chart struct {
	Type        string
	Labels      []string
	Datasets    []ChartDataset
	BeginAtZero bool
}

type Comparison struct {
	Rows  []JoinedRow
	Table Table
	Chart Chart
}
