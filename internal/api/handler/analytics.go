package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
)

func writeAnalyticsError(w http.ResponseWriter, err error) {
	logrus.WithError(err).Error("Erro ao calcular indicadores")

	if errors.Is(err, analytics.ErrFetchLeads) || errors.Is(err, analytics.ErrFetchActivities) {
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar dados de indicadores", nil)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular indicadores", nil)
}

func GetLeadStats(service analytics.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Stats(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// GetConversionFunnel responde com as taxas arredondadas em uma casa decimal
func GetConversionFunnel(service analytics.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		funnel, err := service.Funnel(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		funnel.ConversionRates = funnel.ConversionRates.Rounded()
		writeJSON(w, http.StatusOK, funnel)
	}
}

func GetActivityStats(service analytics.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeframe, err := domain.ParseTimeframe(r.URL.Query().Get("timeframe"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "timeframe deve ser day, week ou month", nil)
			return
		}

		stats, err := service.Activity(r.Context(), timeframe)
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// GetStaleLeads usa defaultDays quando o parâmetro days não é informado
func GetStaleLeads(service analytics.AnalyticsService, defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := defaultDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "days deve ser um inteiro positivo", nil)
				return
			}
			days = parsed
		}

		stale, err := service.Stale(r.Context(), days)
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		if stale == nil {
			stale = []*domain.Lead{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"threshold_days": days,
			"count":          len(stale),
			"leads":          stale,
		})
	}
}

func GetOverview(service analytics.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := service.Overview(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, overview)
	}
}
