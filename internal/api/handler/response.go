package handler

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/lead"
	"github.com/vfg2006/lead-qualifier-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz erros do serviço de leads para a resposta padronizada
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var leadErr *lead.LeadError
	if errors.As(err, &leadErr) {
		message := leadErr.Err.Error()
		if leadErr.Details != "" {
			message = leadErr.Details
		}
		apiErrors.WriteError(w, leadErr.Code, message, nil)
		return
	}

	logrus.WithError(err).Error(fallback)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

// queryList aceita tanto parâmetros repetidos quanto valores separados por vírgula
func queryList(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, value := range strings.Split(raw, ",") {
			if value = strings.TrimSpace(value); value != "" {
				values = append(values, value)
			}
		}
	}
	return values
}
