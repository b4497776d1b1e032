package lead

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository/mocks"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
	"github.com/vfg2006/lead-qualifier-api/pkg/validator"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

type recorderSpy struct {
	transitions [][2]domain.LeadStatus
	scores      []float64
}

func (r *recorderSpy) StatusChanged(from, to domain.LeadStatus) {
	r.transitions = append(r.transitions, [2]domain.LeadStatus{from, to})
}

func (r *recorderSpy) LeadScored(rating float64) {
	r.scores = append(r.scores, rating)
}

type fixture struct {
	service  *Service
	leadRepo *mocks.MockLeadRepository
	store    *mocks.MockActivityStore
	recorder *recorderSpy
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	leadRepo := mocks.NewMockLeadRepository(ctrl)
	store := mocks.NewMockActivityStore(ctrl)
	recorder := &recorderSpy{}

	ledger := tracking.NewLedger(store,
		tracking.WithClock(func() time.Time { return testNow }),
		tracking.WithIDGenerator(func() (string, error) { return "act-1", nil }),
	)

	service := NewService(leadRepo, ledger, scoring.NewEngine(), validator.New(),
		WithRecorder(recorder),
		WithIDGenerator(func() (string, error) { return "lead-new", nil }),
	)

	return &fixture{service: service, leadRepo: leadRepo, store: store, recorder: recorder}
}

func assertLeadErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var leadErr *LeadError
	require.ErrorAs(t, err, &leadErr)
	assert.Equal(t, code, leadErr.Code)
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)

	request := &domain.CreateLeadRequest{
		CompanyName:   "  Green Energy Co ",
		ContactName:   "Mike Chen",
		Email:         "mike@greenenergy.com",
		Phone:         "(555) 987-6543",
		Website:       "https://greenenergy.com",
		Address:       "456 Solar Ave",
		City:          "Austin",
		State:         "TX",
		ZipCode:       "78701",
		Industry:      "Energy",
		BusinessType:  "B2B Services",
		EmployeeCount: 150,
		AnnualRevenue: 15_000_000,
		Description:   "Renewable energy solutions for businesses",
	}

	f.leadRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
			created := *l
			created.CreatedAt = testNow
			created.UpdatedAt = testNow
			return &created, nil
		})

	lead, err := f.service.Create(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "lead-new", lead.ID)
	assert.Equal(t, "Green Energy Co", lead.CompanyName)
	assert.Equal(t, domain.LeadStatusProspect, lead.Status)
	assert.Equal(t, domain.LeadSourceManual, lead.Source)
	assert.InDelta(t, 8.75, lead.Rating, 1e-9)
	assert.Equal(t, scoring.ToPercent(lead.Rating), lead.Score)
	assert.Len(t, f.recorder.scores, 1)
}

func TestService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		request *domain.CreateLeadRequest
	}{
		{name: "requisição nula", request: nil},
		{name: "empresa em branco", request: &domain.CreateLeadRequest{CompanyName: "   "}},
		{name: "funcionários negativos", request: &domain.CreateLeadRequest{CompanyName: "X", EmployeeCount: -1}},
		{name: "origem desconhecida", request: &domain.CreateLeadRequest{CompanyName: "X", Source: "crawler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), tt.request)
			assert.ErrorIs(t, err, ErrInvalidLead)
			assertLeadErrorCode(t, err, apiErrors.ErrInvalidRequest)
		})
	}
}

func TestService_ChangeStatus(t *testing.T) {
	base := &domain.Lead{ID: "lead-1", Status: domain.LeadStatusProspect, CreatedAt: testNow, UpdatedAt: testNow}

	tests := []struct {
		name     string
		target   domain.LeadStatus
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, lead *domain.Lead, err error)
	}{
		{
			name:   "transição válida grava status e atividade",
			target: domain.LeadStatusContacted,
			setup: func(f *fixture) {
				contacted := *base
				contacted.Status = domain.LeadStatusContacted
				contacted.ContactedAt = &testNow

				gomock.InOrder(
					f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil),
					f.leadRepo.EXPECT().UpdateStatus(gomock.Any(), "lead-1", domain.LeadStatusProspect, domain.LeadStatusContacted).Return(true, nil),
					f.store.EXPECT().Append(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, a *domain.Activity) (*domain.Activity, error) {
							assert.Equal(t, domain.ActivityTypeStatusChange, a.Type)
							assert.Equal(t, "prospect", a.OldValue)
							assert.Equal(t, "contacted", a.NewValue)
							assert.Equal(t, "Status changed from prospect to contacted", a.Description)
							assert.Equal(t, "user-1", a.ActorID)
							return a, nil
						}),
					f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(&contacted, nil),
				)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.LeadStatusContacted, lead.Status)
				assert.NotNil(t, lead.ContactedAt)
				assert.Equal(t, [][2]domain.LeadStatus{{domain.LeadStatusProspect, domain.LeadStatusContacted}}, f.recorder.transitions)
			},
		},
		{
			name:   "lead inexistente",
			target: domain.LeadStatusContacted,
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(nil, nil)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrLeadNotFound)
				assertLeadErrorCode(t, err, apiErrors.ErrLeadNotFound)
			},
		},
		{
			name:   "retrocesso é rejeitado sem escrita",
			target: domain.LeadStatusProspect,
			setup: func(f *fixture) {
				replied := *base
				replied.Status = domain.LeadStatusReplied
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(&replied, nil)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assertLeadErrorCode(t, err, apiErrors.ErrInvalidTransition)
				assert.Empty(t, f.recorder.transitions)
			},
		},
		{
			name:   "status desconhecido",
			target: domain.LeadStatus("won"),
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assertLeadErrorCode(t, err, apiErrors.ErrInvalidRequest)
			},
		},
		{
			name:   "status alterado concorrentemente vira conflito sem atividade",
			target: domain.LeadStatusRejected,
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil)
				f.leadRepo.EXPECT().UpdateStatus(gomock.Any(), "lead-1", domain.LeadStatusProspect, domain.LeadStatusRejected).Return(false, nil)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.Nil(t, lead)
				assert.ErrorIs(t, err, ErrStatusNotUpdated)
				assertLeadErrorCode(t, err, apiErrors.ErrStatusUpdateNotStored)
				assert.Empty(t, f.recorder.transitions)
			},
		},
		{
			name:   "status vazio é rejeitado sem escrita",
			target: domain.LeadStatus(""),
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil)
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assertLeadErrorCode(t, err, apiErrors.ErrInvalidRequest)
			},
		},
		{
			name:   "erro do banco na atualização",
			target: domain.LeadStatusContacted,
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil)
				f.leadRepo.EXPECT().UpdateStatus(gomock.Any(), "lead-1", domain.LeadStatusProspect, domain.LeadStatusContacted).Return(false, errors.New("timeout"))
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
				assertLeadErrorCode(t, err, apiErrors.ErrDatabaseOperation)
			},
		},
		{
			name:   "falha no ledger após atualização é reportada",
			target: domain.LeadStatusContacted,
			setup: func(f *fixture) {
				f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(base, nil)
				f.leadRepo.EXPECT().UpdateStatus(gomock.Any(), "lead-1", domain.LeadStatusProspect, domain.LeadStatusContacted).Return(true, nil)
				f.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
			},
			validate: func(t *testing.T, f *fixture, lead *domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
				assert.Empty(t, f.recorder.transitions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			lead, err := f.service.ChangeStatus(context.Background(), "lead-1", tt.target, "user-1")
			tt.validate(t, f, lead, err)
		})
	}
}

func TestService_Search(t *testing.T) {
	f := newFixture(t)

	filters := domain.SearchFilters{EmployeeRanges: []string{"51-200"}}
	f.leadRepo.EXPECT().Query(gomock.Any(), filters).Return([]*domain.Lead{
		{ID: "a", EmployeeCount: 150},
		{ID: "b", EmployeeCount: 20},
		{ID: "c", EmployeeCount: 51},
	}, nil)

	leads, err := f.service.Search(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "a", leads[0].ID)
	assert.Equal(t, "c", leads[1].ID)
}

func TestService_Timeline(t *testing.T) {
	f := newFixture(t)

	t1 := testNow.Add(-72 * time.Hour)
	t2 := testNow.Add(-24 * time.Hour)

	f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(&domain.Lead{
		ID: "lead-1", Status: domain.LeadStatusReplied, CreatedAt: t1, UpdatedAt: t2,
	}, nil)
	f.store.EXPECT().ListForLead(gomock.Any(), "lead-1").Return([]*domain.Activity{
		{ID: "a1", Type: domain.ActivityTypeStatusChange, OldValue: "contacted", NewValue: "replied", Timestamp: t2},
	}, nil)

	tl, err := f.service.Timeline(context.Background(), "lead-1")
	require.NoError(t, err)
	require.Len(t, tl.StatusHistory, 2)
	assert.Equal(t, domain.LeadStatusContacted, tl.StatusHistory[0].Status)
	assert.Equal(t, 2, *tl.StatusHistory[0].DurationDays)
}

func TestService_ActivityCommands(t *testing.T) {
	lead := &domain.Lead{ID: "lead-1", Status: domain.LeadStatusContacted}

	t.Run("nota vazia vira erro de atividade", func(t *testing.T) {
		f := newFixture(t)
		f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(lead, nil)

		_, err := f.service.AddNote(context.Background(), "lead-1", " ", "")
		assert.ErrorIs(t, err, ErrInvalidActivity)
		assertLeadErrorCode(t, err, apiErrors.ErrInvalidActivity)
	})

	t.Run("tentativa de contato registrada", func(t *testing.T) {
		f := newFixture(t)
		f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(lead, nil)
		f.store.EXPECT().Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Activity) (*domain.Activity, error) { return a, nil })

		activity, err := f.service.RecordContactAttempt(context.Background(), "lead-1", domain.ContactMethodPhone, "Left voicemail", "")
		require.NoError(t, err)
		assert.Equal(t, "Contact attempt via phone: Left voicemail", activity.Description)
		assert.Equal(t, testNow, activity.Timestamp)
	})

	t.Run("lead inexistente não grava atividade", func(t *testing.T) {
		f := newFixture(t)
		f.leadRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		_, err := f.service.RecordActivity(context.Background(), "missing", domain.ActivityTypeCallMade, "Called", "")
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestService_ActivityRequestValidation(t *testing.T) {
	lead := &domain.Lead{ID: "lead-1", Status: domain.LeadStatusContacted}

	tests := []struct {
		name   string
		record func(s *Service) (*domain.Activity, error)
	}{
		{
			name: "nota acima do limite",
			record: func(s *Service) (*domain.Activity, error) {
				return s.AddNote(context.Background(), "lead-1", strings.Repeat("a", 10001), "")
			},
		},
		{
			name: "tentativa de contato sem método",
			record: func(s *Service) (*domain.Activity, error) {
				return s.RecordContactAttempt(context.Background(), "lead-1", "", "", "")
			},
		},
		{
			name: "observações da tentativa acima do limite",
			record: func(s *Service) (*domain.Activity, error) {
				return s.RecordContactAttempt(context.Background(), "lead-1", domain.ContactMethodEmail, strings.Repeat("a", 2001), "")
			},
		},
		{
			name: "atividade genérica com tipo de tentativa de contato",
			record: func(s *Service) (*domain.Activity, error) {
				return s.RecordActivity(context.Background(), "lead-1", domain.ActivityTypeContactAttempt, "", "")
			},
		},
		{
			name: "atividade genérica do tipo nota",
			record: func(s *Service) (*domain.Activity, error) {
				return s.RecordActivity(context.Background(), "lead-1", domain.ActivityTypeNoteAdded, strings.Repeat("x", 300), "")
			},
		},
		{
			name: "atividade genérica sem descrição",
			record: func(s *Service) (*domain.Activity, error) {
				return s.RecordActivity(context.Background(), "lead-1", domain.ActivityTypeEmailSent, "", "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(lead, nil)

			activity, err := tt.record(f.service)
			assert.Nil(t, activity)
			assert.ErrorIs(t, err, ErrInvalidActivity)
			assertLeadErrorCode(t, err, apiErrors.ErrInvalidActivity)
		})
	}
}

func TestService_ScoreDetails(t *testing.T) {
	f := newFixture(t)
	f.leadRepo.EXPECT().GetByID(gomock.Any(), "lead-1").Return(&domain.Lead{ID: "lead-1"}, nil)

	result, err := f.service.ScoreDetails(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "lead-1", result.LeadID)
	assert.GreaterOrEqual(t, result.Overall, scoring.MinScore)
}

func TestService_GetRequiresID(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrLeadIDRequired)
}
