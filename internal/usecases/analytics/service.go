package analytics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFetchLeads      = errors.New("error fetching leads")
	ErrFetchActivities = errors.New("error fetching activities")
)

// ActivityReader é a parte de leitura do ledger usada pelos indicadores
type ActivityReader interface {
	Since(ctx context.Context, from time.Time) ([]*domain.Activity, error)
	ForLeads(ctx context.Context, leadIDs []string) (map[string][]*domain.Activity, error)
}

type AnalyticsService interface {
	Funnel(ctx context.Context) (domain.ConversionFunnel, error)
	Activity(ctx context.Context, timeframe domain.Timeframe) (domain.ActivityStats, error)
	Stale(ctx context.Context, thresholdDays int) ([]*domain.Lead, error)
	Stats(ctx context.Context) (domain.LeadStats, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}

type Service struct {
	leadRepository repository.LeadRepository
	activities     ActivityReader
	now            func() time.Time
	staleThreshold int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithStaleThreshold define o limite padrão em dias usado pelo Overview
func WithStaleThreshold(days int) Option {
	return func(s *Service) {
		s.staleThreshold = days
	}
}

func NewService(leadRepository repository.LeadRepository, activities ActivityReader, opts ...Option) *Service {
	s := &Service{
		leadRepository: leadRepository,
		activities:     activities,
		now:            time.Now,
		staleThreshold: DefaultStaleThresholdDays,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) loadLeads(ctx context.Context) ([]*domain.Lead, error) {
	leads, err := s.leadRepository.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrFetchLeads, err.Error())
	}
	return leads, nil
}

func (s *Service) loadWindow(ctx context.Context, timeframe domain.Timeframe, now time.Time) ([]*domain.Activity, error) {
	activities, err := s.activities.Since(ctx, timeframe.Start(now))
	if err != nil {
		return nil, errors.Wrap(ErrFetchActivities, err.Error())
	}
	return activities, nil
}

func (s *Service) Funnel(ctx context.Context) (domain.ConversionFunnel, error) {
	leads, err := s.loadLeads(ctx)
	if err != nil {
		return domain.ConversionFunnel{}, err
	}

	return ConversionFunnel(leads), nil
}

func (s *Service) Activity(ctx context.Context, timeframe domain.Timeframe) (domain.ActivityStats, error) {
	now := s.now()

	activities, err := s.loadWindow(ctx, timeframe, now)
	if err != nil {
		return domain.ActivityStats{}, err
	}

	return ActivityStats(activities, timeframe, now), nil
}

func (s *Service) Stats(ctx context.Context) (domain.LeadStats, error) {
	leads, err := s.loadLeads(ctx)
	if err != nil {
		return domain.LeadStats{}, err
	}

	return Summarize(leads), nil
}

func (s *Service) Stale(ctx context.Context, thresholdDays int) ([]*domain.Lead, error) {
	leads, err := s.loadLeads(ctx)
	if err != nil {
		return nil, err
	}

	return s.stale(ctx, leads, thresholdDays, s.now())
}

func (s *Service) stale(ctx context.Context, leads []*domain.Lead, thresholdDays int, now time.Time) ([]*domain.Lead, error) {
	ids := make([]string, 0, len(leads))
	for _, lead := range leads {
		if lead.Status != domain.LeadStatusProspect {
			ids = append(ids, lead.ID)
		}
	}

	if len(ids) == 0 {
		return []*domain.Lead{}, nil
	}

	byLead, err := s.activities.ForLeads(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(ErrFetchActivities, err.Error())
	}

	return StaleLeads(leads, byLead, thresholdDays, now), nil
}

// Overview carrega leads e a janela semanal em paralelo
func (s *Service) Overview(ctx context.Context) (*domain.Overview, error) {
	now := s.now()

	var (
		leads  []*domain.Lead
		weekly []*domain.Activity
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		leads, err = s.loadLeads(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		weekly, err = s.loadWindow(gctx, domain.TimeframeWeek, now)
		return err
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Erro ao carregar dados do painel")
		return nil, err
	}

	stale, err := s.stale(ctx, leads, s.staleThreshold, now)
	if err != nil {
		return nil, err
	}

	funnel := ConversionFunnel(leads)
	funnel.ConversionRates = funnel.ConversionRates.Rounded()

	return &domain.Overview{
		Stats:          Summarize(leads),
		Funnel:         funnel,
		WeeklyActivity: ActivityStats(weekly, domain.TimeframeWeek, now),
		StaleLeads:     len(stale),
		GeneratedAt:    now,
	}, nil
}

var _ AnalyticsService = (*Service)(nil)
