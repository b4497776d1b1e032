// Package lead concentra a entrada de leads e o único caminho de mudança de status.
//
// A mudança de status grava primeiro no repositório e depois no ledger. As duas escritas
// não são atômicas entre si: uma falha no ledger após a atualização é reportada ao chamador.
package lead

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/searching"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/timeline"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
	"github.com/vfg2006/lead-qualifier-api/pkg/log"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
	"github.com/vfg2006/lead-qualifier-api/pkg/validator"
)

type LeadService interface {
	Create(ctx context.Context, request *domain.CreateLeadRequest) (*domain.Lead, error)
	ChangeStatus(ctx context.Context, id string, status domain.LeadStatus, actorID string) (*domain.Lead, error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	Search(ctx context.Context, filters domain.SearchFilters) ([]*domain.Lead, error)
	ScoreDetails(ctx context.Context, id string) (*domain.ScoreResult, error)
	Timeline(ctx context.Context, id string) (*domain.Timeline, error)
	Activities(ctx context.Context, id string) ([]*domain.Activity, error)
	AddNote(ctx context.Context, id, note, actorID string) (*domain.Activity, error)
	RecordContactAttempt(ctx context.Context, id string, method domain.ContactMethod, notes, actorID string) (*domain.Activity, error)
	RecordActivity(ctx context.Context, id string, activityType domain.ActivityType, description, actorID string) (*domain.Activity, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

// Recorder recebe os eventos relevantes para métricas
type Recorder interface {
	StatusChanged(from, to domain.LeadStatus)
	LeadScored(rating float64)
}

type noopRecorder struct{}

func (noopRecorder) StatusChanged(domain.LeadStatus, domain.LeadStatus) {}
func (noopRecorder) LeadScored(float64)                                 {}

type Service struct {
	leadRepository repository.LeadRepository
	ledger         tracking.ActivityLedger
	scorer         scoring.Scorer
	validator      *validator.Validator
	recorder       Recorder
	newID          func() (string, error)
}

type Option func(*Service)

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

func NewService(
	leadRepository repository.LeadRepository,
	ledger tracking.ActivityLedger,
	scorer scoring.Scorer,
	validator *validator.Validator,
	opts ...Option,
) *Service {
	s := &Service{
		leadRepository: leadRepository,
		ledger:         ledger,
		scorer:         scorer,
		validator:      validator,
		recorder:       noopRecorder{},
		newID:          utils.GenerateID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Create(ctx context.Context, request *domain.CreateLeadRequest) (*domain.Lead, error) {
	if request == nil {
		return nil, NewLeadError(ErrInvalidLead, apiErrors.ErrInvalidRequest, "Corpo da requisição ausente")
	}

	if err := s.validator.Struct(request); err != nil {
		return nil, NewLeadError(ErrInvalidLead, apiErrors.ErrInvalidRequest, validator.Describe(err))
	}

	id, err := s.newID()
	if err != nil {
		return nil, NewLeadError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	source := request.Source
	if source == "" {
		source = domain.LeadSourceManual
	}

	lead := &domain.Lead{
		ID:            id,
		CompanyName:   strings.TrimSpace(request.CompanyName),
		ContactName:   strings.TrimSpace(request.ContactName),
		Email:         strings.TrimSpace(request.Email),
		Phone:         strings.TrimSpace(request.Phone),
		Website:       strings.TrimSpace(request.Website),
		Address:       strings.TrimSpace(request.Address),
		City:          strings.TrimSpace(request.City),
		State:         strings.TrimSpace(request.State),
		ZipCode:       strings.TrimSpace(request.ZipCode),
		Country:       strings.TrimSpace(request.Country),
		Industry:      strings.TrimSpace(request.Industry),
		BusinessType:  strings.TrimSpace(request.BusinessType),
		EmployeeCount: request.EmployeeCount,
		AnnualRevenue: request.AnnualRevenue,
		Description:   strings.TrimSpace(request.Description),
		Status:        domain.LeadStatusProspect,
		Source:        source,
	}

	s.scorer.Apply(lead)

	created, err := s.leadRepository.Create(ctx, lead)
	if err != nil {
		log.ForLead(ctx, lead.ID).WithError(err).Error("Erro ao criar lead")
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, lead.ID, "Falha ao gravar lead no banco de dados")
	}

	s.recorder.LeadScored(created.Rating)

	log.ForLead(ctx, created.ID).WithFields(log.Fields{
		"lead_source": created.Source,
		"lead_rating": created.Rating,
	}).Info("Lead criado")

	return created, nil
}

// ChangeStatus valida a transição, atualiza o repositório e registra a atividade
func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.LeadStatus, actorID string) (*domain.Lead, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(&domain.ChangeStatusRequest{Status: status}); err != nil {
		return nil, NewLeadErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidRequest, id, validator.Describe(err))
	}

	if !domain.CanTransition(current.Status, status) {
		return nil, NewLeadErrorWithID(
			ErrInvalidTransition,
			apiErrors.ErrInvalidTransition,
			id,
			"Transição de "+string(current.Status)+" para "+string(status)+" não permitida",
		)
	}

	updated, err := s.leadRepository.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		log.ForLead(ctx, id).WithError(err).Error("Erro ao atualizar status do lead")
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao atualizar status")
	}

	// Nenhuma linha afetada: o lead foi removido ou outro chamador mudou o status antes
	if !updated {
		log.ForLead(ctx, id).WithField("lead_status_from", current.Status).Warn("Status do lead alterado concorrentemente")
		return nil, NewLeadErrorWithID(ErrStatusNotUpdated, apiErrors.ErrStatusUpdateNotStored, id, "Status do lead mudou durante a atualização")
	}

	if _, err := s.ledger.RecordStatusChange(ctx, id, current.Status, status, actorID); err != nil {
		log.ForLead(ctx, id).WithError(err).Error("Status atualizado, mas a atividade não foi registrada")
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao registrar mudança de status")
	}

	s.recorder.StatusChanged(current.Status, status)

	log.ForLead(ctx, id).WithFields(log.Fields{
		"lead_status_from": current.Status,
		"lead_status_to":   status,
	}).Info("Status do lead atualizado")

	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Lead, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewLeadError(ErrLeadIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	lead, err := s.leadRepository.GetByID(ctx, id)
	if err != nil {
		log.ForLead(ctx, id).WithError(err).Error("Erro ao buscar lead")
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar lead")
	}

	if lead == nil {
		return nil, NewLeadErrorWithID(ErrLeadNotFound, apiErrors.ErrLeadNotFound, id, "")
	}

	return lead, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Lead, error) {
	leads, err := s.leadRepository.GetAll(ctx)
	if err != nil {
		return nil, NewLeadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar leads")
	}
	return leads, nil
}

// Search envia ao repositório as facetas suportadas e reaplica o filtro completo em memória
func (s *Service) Search(ctx context.Context, filters domain.SearchFilters) ([]*domain.Lead, error) {
	leads, err := s.leadRepository.Query(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao pesquisar leads")
		return nil, NewLeadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao pesquisar leads")
	}

	return searching.Filter(leads, filters), nil
}

func (s *Service) ScoreDetails(ctx context.Context, id string) (*domain.ScoreResult, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := s.scorer.Score(lead)
	return &result, nil
}

func (s *Service) Timeline(ctx context.Context, id string) (*domain.Timeline, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	activities, err := s.ledger.ForLead(ctx, id)
	if err != nil {
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar atividades")
	}

	tl := timeline.Reconstruct(lead, activities)
	return &tl, nil
}

func (s *Service) Activities(ctx context.Context, id string) ([]*domain.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	activities, err := s.ledger.ForLead(ctx, id)
	if err != nil {
		return nil, NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar atividades")
	}

	return activities, nil
}

func (s *Service) AddNote(ctx context.Context, id, note, actorID string) (*domain.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.validateActivity(id, &domain.NoteRequest{Note: note}); err != nil {
		return nil, err
	}

	activity, err := s.ledger.RecordNote(ctx, id, note, actorID)
	return activity, s.activityError(id, err)
}

func (s *Service) RecordContactAttempt(
	ctx context.Context,
	id string,
	method domain.ContactMethod,
	notes, actorID string,
) (*domain.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.validateActivity(id, &domain.ContactAttemptRequest{Method: method, Notes: notes}); err != nil {
		return nil, err
	}

	activity, err := s.ledger.RecordContactAttempt(ctx, id, method, notes, actorID)
	return activity, s.activityError(id, err)
}

func (s *Service) RecordActivity(
	ctx context.Context,
	id string,
	activityType domain.ActivityType,
	description, actorID string,
) (*domain.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.validateActivity(id, &domain.RecordActivityRequest{Type: activityType, Description: description}); err != nil {
		return nil, err
	}

	activity, err := s.ledger.Record(ctx, id, activityType, description, actorID)
	return activity, s.activityError(id, err)
}

func (s *Service) validateActivity(id string, request any) error {
	if err := s.validator.Struct(request); err != nil {
		return NewLeadErrorWithID(ErrInvalidActivity, apiErrors.ErrInvalidActivity, id, validator.Describe(err))
	}
	return nil
}

// activityError traduz os erros do ledger para erros de lead
func (s *Service) activityError(id string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, tracking.ErrEmptyNote),
		errors.Is(err, tracking.ErrInvalidContactMethod),
		errors.Is(err, tracking.ErrInvalidActivityType),
		errors.Is(err, tracking.ErrEmptyDescription):
		return NewLeadErrorWithID(ErrInvalidActivity, apiErrors.ErrInvalidActivity, id, err.Error())
	default:
		return NewLeadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao registrar atividade")
	}
}

func (s *Service) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	options, err := searching.Options(ctx, s.leadRepository)
	if err != nil {
		return nil, NewLeadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar opções de filtro")
	}
	return options, nil
}

var _ LeadService = (*Service)(nil)
