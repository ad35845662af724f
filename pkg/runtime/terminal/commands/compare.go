package commands

import (
	"errors"
	"fmt"

	"github.com/de-tools/ga-relay/pkg/adapters"
	"github.com/de-tools/ga-relay/pkg/models/api"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/de-tools/ga-relay/pkg/runtime/terminal/export"
	"github.com/de-tools/ga-relay/pkg/services/compare"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/spf13/cobra"
)

type CompareCmd struct {
	primary    domain.DateRange
	comparison domain.DateRange
	matchType  string
	keyword    string
	asJSON     bool
	connect    ConnectFunc
	reporter   *export.Reporter
}

func NewCompareCmd(connect ConnectFunc, reporter *export.Reporter) *cobra.Command {
	cc := &CompareCmd{connect: connect, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two date ranges row by row",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.primary.StartDate, "start-date1", domain.DefaultStartDate, "Primary range start date")
	cmd.Flags().StringVar(&cc.primary.EndDate, "end-date1", domain.DefaultEndDate, "Primary range end date")
	cmd.Flags().StringVar(&cc.comparison.StartDate, "start-date2", domain.DefaultStartDate, "Comparison range start date")
	cmd.Flags().StringVar(&cc.comparison.EndDate, "end-date2", domain.DefaultEndDate, "Comparison range end date")
	cmd.Flags().StringVar(&cc.matchType, "match-type", string(domain.MatchTypeContains), "Page path match type: exact or contains")
	cmd.Flags().StringVar(&cc.keyword, "keyword", "", "Page path filter value")
	cmd.Flags().BoolVar(&cc.asJSON, "json", false, "Print the joined rows and chart as JSON")

	return cmd
}

func (cc *CompareCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	gw, err := cc.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to analytics: %w", err)
	}

	query := domain.ComparisonQuery{
		Primary:    cc.primary.WithDefaults(),
		Comparison: cc.comparison.WithDefaults(),
		MatchType:  domain.ParseMatchType(cc.matchType),
		Keyword:    cc.keyword,
	}

	result, err := compare.NewService(gw).Compare(ctx, query)
	if errors.Is(err, report.ErrNoData) {
		return cc.reporter.Message(api.NoDataMessage)
	}
	if err != nil {
		return err
	}

	if cc.asJSON {
		return cc.reporter.JSON(adapters.MapComparisonDomainToApi(result))
	}

	title := fmt.Sprintf("%s to %s compared with %s to %s",
		query.Primary.StartDate, query.Primary.EndDate,
		query.Comparison.StartDate, query.Comparison.EndDate)
	return cc.reporter.Handle(title, result.Table)
}
