package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	participanthandlers "github.com/de-tools/ternak-atlas/pkg/handlers/participant"
	reporthandlers "github.com/de-tools/ternak-atlas/pkg/handlers/report"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	"github.com/de-tools/ternak-atlas/pkg/services/report"

	ternakmiddleware "github.com/de-tools/ternak-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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
	Participants participant.Service
	Reports      report.Service
	Logger       zerolog.Logger
	// Metrics receives the HTTP collectors and backs /metrics. A fresh
	// registry is used when nil.
	Metrics *prometheus.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	registry := deps.Metrics
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	participantHandler := participanthandlers.NewHandler(deps.Participants)
	reportHandler := reporthandlers.NewHandler(deps.Participants, deps.Reports)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(ternakmiddleware.Logger(&deps.Logger))
	router.Use(ternakmiddleware.Metrics(registry))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/participants", func(r chi.Router) {
			r.Get("/", participantHandler.List)
			r.Post("/", participantHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", participantHandler.Get)
				r.Patch("/", participantHandler.Update)
				r.Delete("/", participantHandler.Delete)
				r.Put("/performance-status", participantHandler.SetPerformanceStatus)
				r.Get("/next-quarter", reportHandler.NextQuarter)
				r.Get("/reports", reportHandler.ListByParticipant)
				r.Post("/reports", reportHandler.Create)
			})
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.List)
			r.Get("/summary", reportHandler.Summary)
			r.Get("/{reportID}", reportHandler.Get)
			r.Put("/{reportID}", reportHandler.Update)
			r.Delete("/{reportID}", reportHandler.Delete)
		})
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
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
