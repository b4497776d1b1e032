package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de leads (1000-1999)
	ErrLeadNotFound          = "LEAD_001" // Lead não encontrado
	ErrInvalidTransition     = "LEAD_002" // Transição de status não permitida
	ErrInvalidActivity       = "LEAD_003" // Atividade inválida (tipo, método de contato ou nota)
	ErrStatusUpdateNotStored = "LEAD_004" // Repositório não confirmou a atualização

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrSchedulerBusy     = "SRV_003" // Job agendado já em execução
	ErrRouteNotFound     = "SRV_004" // Rota inexistente
	ErrMethodNotAllowed  = "SRV_005" // Método não suportado na rota
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrLeadNotFound:          http.StatusNotFound,
	ErrInvalidTransition:     http.StatusConflict,
	ErrInvalidActivity:       http.StatusBadRequest,
	ErrStatusUpdateNotStored: http.StatusConflict,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrSchedulerBusy:         http.StatusConflict,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
