package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/api/handler"
	"github.com/vfg2006/lead-qualifier-api/internal/api/handler/router"
	"github.com/vfg2006/lead-qualifier-api/internal/config"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/lead"
	"github.com/vfg2006/lead-qualifier-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Database  handler.Pinger
	Leads     lead.LeadService
	Analytics analytics.AnalyticsService
	CronJobs  handler.CronJobServices
	Metrics   prometheus.Gatherer // nil desabilita /metrics
}

func New(config *config.Config, services Services) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler monta as rotas com a cadeia de middlewares
func NewHandler(config *config.Config, services Services) http.Handler {
	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Leads(services.Leads)...),
		router.WithRoutes(handler.Activities(services.Leads)...),
		router.WithRoutes(handler.Analytics(services.Analytics, config.StaleLeads.ThresholdDays)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	}

	if config.Metrics.Enabled && services.Metrics != nil {
		metricsHandler := promhttp.HandlerFor(services.Metrics, promhttp.HandlerOpts{})
		configs = append(configs, router.WithRoutes(handler.Metrics(config.Metrics.Path, metricsHandler)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.ActorMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
