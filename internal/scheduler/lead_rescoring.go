package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/config"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
)

type LeadRescoringConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RescoreRecorder recebe as métricas de cada execução
type RescoreRecorder interface {
	LeadScored(rating float64)
	LeadsRescored(count int)
}

type RescoreResult struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// LeadRescoringService recalcula periodicamente a nota de todos os leads
type LeadRescoringService struct {
	syncState
	scheduler  *gocron.Scheduler
	leadRepo   repository.LeadRepository
	scorer     scoring.Scorer
	recorder   RescoreRecorder
	config     LeadRescoringConfig
	lastResult RescoreResult
}

func NewLeadRescoringService(
	leadRepo repository.LeadRepository,
	scorer scoring.Scorer,
	recorder RescoreRecorder,
	cfg *config.Config,
) *LeadRescoringService {
	rescoringConfig := LeadRescoringConfig{
		CronSchedule: cfg.LeadRescoringSync.CronSchedule, // Default: 2h da manhã todos os dias
		SyncEnabled:  cfg.LeadRescoringSync.Enabled,      // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rescoringConfig.CronSchedule,
	}).Info("Configuração do agendador de recálculo de notas carregada")

	return &LeadRescoringService{
		scheduler: gocron.NewScheduler(time.Local),
		leadRepo:  leadRepo,
		scorer:    scorer,
		recorder:  recorder,
		config:    rescoringConfig,
	}
}

func (s *LeadRescoringService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de recálculo de notas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recálculo de notas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RescoreLeads(ctx); err != nil {
			logrus.WithError(err).Error("Erro no recálculo de notas dos leads")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de notas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recálculo de notas")
		s.scheduler.Stop()
	}()

	return nil
}

// RescoreLeads persiste Rating e Score apenas dos leads cuja nota mudou
func (s *LeadRescoringService) RescoreLeads(ctx context.Context) (*RescoreResult, error) {
	if !s.begin() {
		logrus.Warn("Recálculo de notas já está em execução")
		return nil, ErrSyncRunning
	}
	defer s.end()

	logrus.Info("Iniciando recálculo de notas dos leads")

	leads, err := s.leadRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar leads para recálculo: %w", err)
	}

	result := RescoreResult{Total: len(leads)}
	scored := s.scorer.ScoreLeads(leads)

	for i, lead := range scored {
		previous := leads[i]
		if previous.Rating == lead.Rating && previous.Score == lead.Score {
			continue
		}

		ok, err := s.leadRepo.UpdateScore(ctx, lead.ID, lead.Rating, lead.Score)
		if err != nil || !ok {
			result.Failed++
			logrus.WithFields(logrus.Fields{
				"lead_id": lead.ID,
				"error":   err,
			}).Warn("Não foi possível atualizar a nota do lead")
			continue
		}

		result.Updated++
		if s.recorder != nil {
			s.recorder.LeadScored(lead.Rating)
		}
	}

	if s.recorder != nil {
		s.recorder.LeadsRescored(result.Updated)
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"total":   result.Total,
		"updated": result.Updated,
		"failed":  result.Failed,
	}).Info("Recálculo de notas concluído")

	return &result, nil
}

// TriggerManualSync inicia manualmente o recálculo; retorna false se já houver um em andamento
func (s *LeadRescoringService) TriggerManualSync() bool {
	if s.running() {
		logrus.Info("Recálculo de notas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando recálculo manual de notas")
	go func() {
		if _, err := s.RescoreLeads(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no recálculo manual de notas")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *LeadRescoringService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.snapshot()

	s.syncMutex.Lock()
	last := s.lastResult
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
		"last_result":            last,
	}
}
