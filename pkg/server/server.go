package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/ga-relay/pkg/handlers/analytics"
	"github.com/de-tools/ga-relay/pkg/services/compare"
	"github.com/de-tools/ga-relay/pkg/services/report"

	relaymiddleware "github.com/de-tools/ga-relay/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Gateway  report.Gateway
	Comparer compare.Comparer
}

type Config struct {
	Addr            string
	PublicDir       string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter wires the relay routes. Anything not matched is served from the public root.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	h := handlers.NewHandler(config.Dependencies.Gateway, config.Dependencies.Comparer, config.PublicDir)

	router := chi.NewRouter()

	router.Use(relaymiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", h.Index)
	router.Get("/analytics", h.GetReport)
	router.Get("/compare", h.GetComparison)
	router.Handle("/*", staticFiles(config.PublicDir))

	return router
}

// staticFiles serves regular files from root and answers 404 for directories instead of
// listing them.
func staticFiles(root string) http.Handler {
	fs := http.Dir(root)
	fileServer := http.FileServer(fs)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := fs.Open(r.URL.Path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
