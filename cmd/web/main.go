package main

import (
	"fmt"
	"os"

	"github.com/de-tools/ga-relay/pkg/server"
	"github.com/de-tools/ga-relay/pkg/services/compare"
	"github.com/de-tools/ga-relay/pkg/services/config"
	"github.com/de-tools/ga-relay/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the GA4 report relay",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Optional settings file; environment variables take precedence")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	gateway, err := report.Connect(ctx, settings.PropertyID, settings.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to create analytics gateway: %w", err)
	}

	logger.Info().
		Str("property", settings.PropertyID).
		Str("key_file", settings.KeyFile).
		Msg("analytics gateway ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:      settings.Addr(),
		PublicDir: settings.PublicDir,
		Dependencies: server.Dependencies{
			Gateway:  gateway,
			Comparer: compare.NewService(gateway),
		},
	})

	logger.Info().Msgf("Server running on http://localhost:%s", settings.Port)

	return api.Start()
}
