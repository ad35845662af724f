package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/ga-relay/pkg/adapters"
	"github.com/de-tools/ga-relay/pkg/models/api"
	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/de-tools/ga-relay/pkg/runtime/terminal/export"
	"github.com/de-tools/ga-relay/pkg/services/compare"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/spf13/cobra"
)

// ConnectFunc builds the gateway lazily so that flag errors surface before credentials load.
type ConnectFunc func(ctx context.Context) (report.Gateway, error)

type ReportCmd struct {
	startDate string
	endDate   string
	matchType string
	keyword   string
	asJSON    bool
	connect   ConnectFunc
	reporter  *export.Reporter
}

func NewReportCmd(connect ConnectFunc, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{connect: connect, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a single range analytics report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.startDate, "start-date", domain.DefaultStartDate, "Start date (YYYY-MM-DD, today, NdaysAgo)")
	cmd.Flags().StringVar(&rc.endDate, "end-date", domain.DefaultEndDate, "End date (YYYY-MM-DD, today, NdaysAgo)")
	cmd.Flags().StringVar(&rc.matchType, "match-type", string(domain.MatchTypeContains), "Page path match type: exact or contains")
	cmd.Flags().StringVar(&rc.keyword, "keyword", "", "Page path filter value")
	cmd.Flags().BoolVar(&rc.asJSON, "json", false, "Print the raw report as JSON")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	gw, err := rc.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to analytics: %w", err)
	}

	query := domain.ReportQuery{
		DateRange: domain.DateRange{StartDate: rc.startDate, EndDate: rc.endDate}.WithDefaults(),
		MatchType: domain.ParseMatchType(rc.matchType),
		Keyword:   rc.keyword,
	}

	resp, err := gw.RunReport(ctx, query)
	if err != nil {
		return err
	}

	result := adapters.MapRunReportResponseToDomain(resp)
	if result.Empty() {
		return rc.reporter.Message(api.NoDataMessage)
	}

	if rc.asJSON {
		return rc.reporter.JSON(resp)
	}

	title := fmt.Sprintf("Report %s to %s", query.StartDate, query.EndDate)
	return rc.reporter.Handle(title, compare.BuildReportTable(result))
}
