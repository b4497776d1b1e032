package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/config"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

var ErrSyncRunning = errors.New("sync already running")

type StaleLeadSweepConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	ThresholdDays int
}

// StaleFinder é a consulta de leads parados usada pela varredura
type StaleFinder interface {
	Stale(ctx context.Context, thresholdDays int) ([]*domain.Lead, error)
}

type StaleRecorder interface {
	StaleLeads(count int)
}

// StaleLeadSweepService registra periodicamente os leads sem contato recente
type StaleLeadSweepService struct {
	syncState
	scheduler *gocron.Scheduler
	finder    StaleFinder
	recorder  StaleRecorder
	config    StaleLeadSweepConfig
	lastCount int
}

func NewStaleLeadSweepService(finder StaleFinder, recorder StaleRecorder, cfg *config.Config) *StaleLeadSweepService {
	sweepConfig := StaleLeadSweepConfig{
		CronSchedule:  cfg.StaleLeadSweep.CronSchedule, // Default: 7h da manhã todos os dias
		SyncEnabled:   cfg.StaleLeadSweep.Enabled,
		ThresholdDays: cfg.StaleLeads.ThresholdDays,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  sweepConfig.CronSchedule,
		"threshold_days": sweepConfig.ThresholdDays,
	}).Info("Configuração da varredura de leads parados carregada")

	return &StaleLeadSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		finder:    finder,
		recorder:  recorder,
		config:    sweepConfig,
	}
}

func (s *StaleLeadSweepService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de varredura de leads parados desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de varredura de leads parados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Sweep(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura de leads parados")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de leads parados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de varredura de leads parados")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *StaleLeadSweepService) Sweep(ctx context.Context) ([]*domain.Lead, error) {
	if !s.begin() {
		logrus.Warn("Varredura de leads parados já está em execução")
		return nil, ErrSyncRunning
	}
	defer s.end()

	stale, err := s.finder.Stale(ctx, s.config.ThresholdDays)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar leads parados: %w", err)
	}

	for _, lead := range stale {
		logrus.WithFields(logrus.Fields{
			"lead_id":      lead.ID,
			"lead_status":  lead.Status,
			"company_name": lead.CompanyName,
		}).Debug("Lead sem contato recente")
	}

	if s.recorder != nil {
		s.recorder.StaleLeads(len(stale))
	}

	s.syncMutex.Lock()
	s.lastCount = len(stale)
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"stale_leads":    len(stale),
		"threshold_days": s.config.ThresholdDays,
	}).Info("Varredura de leads parados concluída")

	return stale, nil
}

func (s *StaleLeadSweepService) TriggerManualSync() bool {
	if s.running() {
		logrus.Info("Varredura de leads parados já em andamento, ignorando solicitação manual")
		return false
	}

	go func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na varredura manual de leads parados")
		}
	}()

	return true
}

func (s *StaleLeadSweepService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.snapshot()

	s.syncMutex.Lock()
	last := s.lastCount
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"threshold_days":         s.config.ThresholdDays,
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
		"last_stale_count":       last,
	}
}
