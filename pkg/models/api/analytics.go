package api

const NoDataMessage = "No data available for the selected dimensions and metrics."

// Message is returned with 200 instead of a report when nothing matched the query.
// Clients tell it apart from a report by the absence of a rows field.
type Message struct {
	Message string `json:"message"`
}

type JoinedRow struct {
	Browser           string            `json:"browser"`
	DeviceCategory    string            `json:"deviceCategory"`
	Country           string            `json:"country"`
	City              string            `json:"city"`
	PagePath          string            `json:"pagePath"`
	Primary           map[string]string `json:"primary"`
	Comparison        map[string]string `json:"comparison"`
	ComparisonMatched bool              `json:"comparisonMatched"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ChartDataset struct {
	Label           string   `json:"label"`
	Data            []string `json:"data"`
	BackgroundColor string   `json:"backgroundColor"`
	BorderColor     string   `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartAxis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

type ChartScales struct {
	Y ChartAxis `json:"y"`
}

type ChartOptions struct {
	Scales ChartScales `json:"scales"`
}

// ChartConfig is passed unchanged to the browser charting library.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type Comparison struct {
	Rows  []JoinedRow `json:"rows"`
	Table Table       `json:"table"`
	Chart ChartConfig `json:"chart"`
}
