package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/lead"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
	"github.com/vfg2006/lead-qualifier-api/pkg/log"
)

func leadID(r *http.Request) string {
	return strings.TrimSpace(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}

// SearchLeads lista os leads aplicando os filtros da query string
func SearchLeads(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SearchLeads")

		filters := domain.SearchFilters{
			Industries:     queryList(r, "industries"),
			BusinessTypes:  queryList(r, "business_types"),
			EmployeeRanges: queryList(r, "employee_ranges"),
			RevenueRanges:  queryList(r, "revenue_ranges"),
			Locations:      queryList(r, "locations"),
			SearchTerm:     strings.TrimSpace(r.URL.Query().Get("q")),
		}

		if raw := r.URL.Query().Get("min_rating"); raw != "" {
			minRating, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "min_rating deve ser numérico", nil)
				return
			}
			filters.MinRating = minRating
		}

		leads, err := service.Search(r.Context(), filters)
		if err != nil {
			writeServiceError(w, err, "Erro ao pesquisar leads")
			return
		}

		if leads == nil {
			leads = []*domain.Lead{}
		}

		writeJSON(w, http.StatusOK, leads)
	}
}

// CreateLead cadastra um novo lead já pontuado
func CreateLead(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateLead")

		var request domain.CreateLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logrus.WithError(err).Warn("Erro ao decodificar lead")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.Create(r.Context(), &request)
		if err != nil {
			writeServiceError(w, err, "Erro ao criar lead")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func GetLead(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := service.Get(r.Context(), leadID(r))
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar lead")
			return
		}

		writeJSON(w, http.StatusOK, found)
	}
}

func GetLeadScore(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.ScoreDetails(r.Context(), leadID(r))
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular nota do lead")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// ChangeLeadStatus move o lead no funil
func ChangeLeadStatus(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ChangeLeadStatus")

		var request domain.ChangeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if request.Status == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Status é obrigatório", nil)
			return
		}

		updated, err := service.ChangeStatus(r.Context(), leadID(r), request.Status, log.GetActorID(r.Context()))
		if err != nil {
			writeServiceError(w, err, "Erro ao atualizar status do lead")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func GetLeadActivities(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := service.Activities(r.Context(), leadID(r))
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar atividades")
			return
		}

		if activities == nil {
			activities = []*domain.Activity{}
		}

		writeJSON(w, http.StatusOK, activities)
	}
}

func RecordLeadActivity(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.RecordActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		activity, err := service.RecordActivity(r.Context(), leadID(r), request.Type, request.Description, log.GetActorID(r.Context()))
		if err != nil {
			writeServiceError(w, err, "Erro ao registrar atividade")
			return
		}

		writeJSON(w, http.StatusCreated, activity)
	}
}

func AddLeadNote(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		activity, err := service.AddNote(r.Context(), leadID(r), request.Note, log.GetActorID(r.Context()))
		if err != nil {
			writeServiceError(w, err, "Erro ao registrar nota")
			return
		}

		writeJSON(w, http.StatusCreated, activity)
	}
}

func RecordContactAttempt(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.ContactAttemptRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		activity, err := service.RecordContactAttempt(r.Context(), leadID(r), request.Method, request.Notes, log.GetActorID(r.Context()))
		if err != nil {
			writeServiceError(w, err, "Erro ao registrar tentativa de contato")
			return
		}

		writeJSON(w, http.StatusCreated, activity)
	}
}

func GetLeadTimeline(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeline, err := service.Timeline(r.Context(), leadID(r))
		if err != nil {
			writeServiceError(w, err, "Erro ao montar linha do tempo")
			return
		}

		writeJSON(w, http.StatusOK, timeline)
	}
}

func GetFilterOptions(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := service.FilterOptions(r.Context())
		if err != nil {
			writeServiceError(w, err, "Erro ao listar opções de filtro")
			return
		}

		writeJSON(w, http.StatusOK, options)
	}
}
