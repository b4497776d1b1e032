package handler

import (
	"net/http"

	"github.com/vfg2006/lead-qualifier-api/internal/api/handler/router"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/lead"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Metrics expõe o handler do prometheus no caminho configurado
func Metrics(path string, handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    path,
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Leads(service lead.LeadService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/leads",
			Method:  http.MethodGet,
			Handler: SearchLeads(service),
		},
		{
			Path:    "/v1/leads",
			Method:  http.MethodPost,
			Handler: CreateLead(service),
		},
		{
			Path:    "/v1/leads/:id",
			Method:  http.MethodGet,
			Handler: GetLead(service),
		},
		{
			Path:    "/v1/leads/:id/score",
			Method:  http.MethodGet,
			Handler: GetLeadScore(service),
		},
		{
			Path:    "/v1/leads/:id/status",
			Method:  http.MethodPut,
			Handler: ChangeLeadStatus(service),
		},
		{
			Path:    "/v1/leads/:id/timeline",
			Method:  http.MethodGet,
			Handler: GetLeadTimeline(service),
		},
		{
			Path:    "/v1/filters/options",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
	}
}

// Activities agrupa as rotas do histórico de interações de um lead
func Activities(service lead.LeadService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/leads/:id/activities",
			Method:  http.MethodGet,
			Handler: GetLeadActivities(service),
		},
		{
			Path:    "/v1/leads/:id/activities",
			Method:  http.MethodPost,
			Handler: RecordLeadActivity(service),
		},
		{
			Path:    "/v1/leads/:id/notes",
			Method:  http.MethodPost,
			Handler: AddLeadNote(service),
		},
		{
			Path:    "/v1/leads/:id/contact-attempts",
			Method:  http.MethodPost,
			Handler: RecordContactAttempt(service),
		},
	}
}

func Analytics(service analytics.AnalyticsService, staleThresholdDays int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/stats",
			Method:  http.MethodGet,
			Handler: GetLeadStats(service),
		},
		{
			Path:    "/v1/analytics/funnel",
			Method:  http.MethodGet,
			Handler: GetConversionFunnel(service),
		},
		{
			Path:    "/v1/analytics/activity",
			Method:  http.MethodGet,
			Handler: GetActivityStats(service),
		},
		{
			Path:    "/v1/analytics/stale",
			Method:  http.MethodGet,
			Handler: GetStaleLeads(service, staleThresholdDays),
		},
		{
			Path:    "/v1/analytics/overview",
			Method:  http.MethodGet,
			Handler: GetOverview(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
