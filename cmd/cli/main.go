package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/ga-relay/pkg/runtime/terminal"
	"github.com/de-tools/ga-relay/pkg/services/config"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Connect: func(ctx context.Context) (report.Gateway, error) {
			settings, err := config.LoadSettings(os.Getenv("GA_RELAY_CONFIG"))
			if err != nil {
				return nil, err
			}
			return report.Connect(ctx, settings.PropertyID, settings.KeyFile)
		},
		Output: os.Stdout,
	})

	if err := cli.Execute(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
