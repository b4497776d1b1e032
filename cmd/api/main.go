package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/migration"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/api"
	"github.com/vfg2006/lead-qualifier-api/internal/api/handler"
	"github.com/vfg2006/lead-qualifier-api/internal/config"
	"github.com/vfg2006/lead-qualifier-api/internal/metrics"
	"github.com/vfg2006/lead-qualifier-api/internal/scheduler"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/lead"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-qualifier-api/pkg/validator"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := migration.Migrate(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrations")
		}
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	leadRepo := repository.NewLeadRepository(pgConn)
	activityStore := repository.NewActivityStore(pgConn)

	engine := scoring.NewEngine()

	if cfg.Database.Seed {
		if _, err := migration.Seed(ctx, leadRepo, engine); err != nil {
			logrus.WithError(err).Error("Erro ao inserir leads de exemplo")
		}
	}

	recorder := metrics.NewRecorder(leadRepo)

	ledger := tracking.NewLedger(activityStore, tracking.WithObserver(recorder.ActivityRecorded))

	leadService := lead.NewService(leadRepo, ledger, engine, validator.New(), lead.WithRecorder(recorder))
	analyticsService := analytics.NewService(leadRepo, ledger, analytics.WithStaleThreshold(cfg.StaleLeads.ThresholdDays))

	// Inicializa os agendadores
	leadRescoringService := scheduler.NewLeadRescoringService(leadRepo, engine, recorder, cfg)
	staleLeadSweepService := scheduler.NewStaleLeadSweepService(analyticsService, recorder, cfg)

	if err := leadRescoringService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de notas")
	} else {
		logrus.Info("Agendador de recálculo de notas iniciado com sucesso")
	}

	if err := staleLeadSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a varredura de leads parados")
	} else {
		logrus.Info("Varredura de leads parados iniciada com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Database:  pgConn,
		Leads:     leadService,
		Analytics: analyticsService,
		CronJobs: handler.CronJobServices{
			LeadRescoringService:  leadRescoringService,
			StaleLeadSweepService: staleLeadSweepService,
		},
		Metrics: recorder.Registry(),
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
