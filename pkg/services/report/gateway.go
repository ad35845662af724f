package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

var (
	// ErrUpstream wraps every failure of the reporting API: auth, quota, validation or network.
	ErrUpstream = errors.New("analytics report request failed")
	// ErrNoData marks a report that completed without rows.
	ErrNoData = errors.New("no data available")
)

// Gateway runs reports against a single GA4 property. Implementations are safe for concurrent use.
type Gateway interface {
	RunReport(ctx context.Context, query domain.ReportQuery) (*analyticsdata.RunReportResponse, error)
}

type gaGateway struct {
	service  *analyticsdata.Service
	property string
}

// NewGateway builds the reporting client once; it is reused for every request.
func NewGateway(ctx context.Context, propertyID string, opts ...option.ClientOption) (Gateway, error) {
	if propertyID == "" {
		return nil, errors.New("analytics property id is required")
	}

	svc, err := analyticsdata.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data client: %w", err)
	}

	return &gaGateway{
		service:  svc,
		property: "properties/" + propertyID,
	}, nil
}

func (g *gaGateway) RunReport(ctx context.Context, query domain.ReportQuery) (*analyticsdata.RunReportResponse, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := g.service.Properties.RunReport(g.property, BuildRequest(query)).Context(ctx).Do()
	if err != nil {
		logger.Debug().
			Err(err).
			Str("property", g.property).
			Str("start_date", query.StartDate).
			Str("end_date", query.EndDate).
			Msg("failed to run analytics report")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	logger.Debug().
		Str("property", g.property).
		Int("rows", len(resp.Rows)).
		Msg("analytics report completed")

	return resp, nil
}

// LoadCredentials reads a service account key file and scopes it to read-only analytics access.
func LoadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key %s: %w", path, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, analyticsdata.AnalyticsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key %s: %w", path, err)
	}

	return creds, nil
}

// Connect loads the service account key and builds a gateway for the property.
func Connect(ctx context.Context, propertyID, keyFile string) (Gateway, error) {
	creds, err := LoadCredentials(ctx, keyFile)
	if err != nil {
		return nil, err
	}
	return NewGateway(ctx, propertyID, option.WithCredentials(creds))
}
