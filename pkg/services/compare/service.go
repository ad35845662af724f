package compare

import (
	"context"
	"fmt"

	"github.com/de-tools/ga-relay/pkg/adapters"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Comparer interface {
	Compare(ctx context.Context, query domain.ComparisonQuery) (*domain.Comparison, error)
}

type Service struct {
	gateway report.Gateway
}

func NewService(gateway report.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Compare fetches both ranges, waits for both and joins them. Either range failing or
// coming back empty fails the whole comparison; partial results are never returned.
func (s *Service) Compare(ctx context.Context, query domain.ComparisonQuery) (*domain.Comparison, error) {
	logger := zerolog.Ctx(ctx)

	var primary, comparison domain.ReportResult
	eg := errgroup.Group{}

	eg.Go(func() error {
		resp, err := s.gateway.RunReport(ctx, query.PrimaryReport())
		if err != nil {
			return fmt.Errorf("primary range: %w", err)
		}
		primary = adapters.MapRunReportResponseToDomain(resp)
		return nil
	})
	eg.Go(func() error {
		resp, err := s.gateway.RunReport(ctx, query.ComparisonReport())
		if err != nil {
			return fmt.Errorf("comparison range: %w", err)
		}
		comparison = adapters.MapRunReportResponseToDomain(resp)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if primary.Empty() || comparison.Empty() {
		logger.Info().
			Int("primary_rows", len(primary.Rows)).
			Int("comparison_rows", len(comparison.Rows)).
			Msg("comparison skipped, a range returned no rows")
		return nil, report.ErrNoData
	}

	rows := Join(primary, comparison)

	return &domain.Comparison{
		Rows:  rows,
		Table: BuildTable(rows),
		Chart: BuildChart(rows),
	}, nil
}
