package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRescore    = "rescore"
	CronJobTypeStaleSweep = "stale-sweep"
	CronJobTypeAll        = "all"
)

// CronJob é um job agendado que também pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	LeadRescoringService  CronJob
	StaleLeadSweepService CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var jobs []CronJob
		switch cronType {
		case CronJobTypeRescore:
			jobs = []CronJob{services.LeadRescoringService}
		case CronJobTypeStaleSweep:
			jobs = []CronJob{services.StaleLeadSweepService}
		case CronJobTypeAll:
			jobs = []CronJob{services.LeadRescoringService, services.StaleLeadSweepService}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: rescore, stale-sweep, all", nil)
			return
		}

		started := 0
		for _, job := range jobs {
			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cron não disponível", nil)
				return
			}
			if job.TriggerManualSync() {
				started++
			}
		}

		if started == 0 {
			apiErrors.WriteError(w, apiErrors.ErrSchedulerBusy, "Cron job já está em execução", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.LeadRescoringService != nil {
			status[CronJobTypeRescore] = services.LeadRescoringService.GetStatus()
		}
		if services.StaleLeadSweepService != nil {
			status[CronJobTypeStaleSweep] = services.StaleLeadSweepService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
