package lead

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de leads
var (
	// Erros de validação
	ErrLeadIDRequired    = errors.New("lead ID is required")
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLead       = errors.New("invalid lead")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidActivity   = errors.New("invalid activity")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrStatusNotUpdated  = errors.New("status update was not applied")
	ErrGenerateID        = errors.New("error generating lead ID")
)

// LeadError é um erro com contexto adicional para leads
type LeadError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	LeadID  string // ID do lead envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *LeadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LeadError) Unwrap() error {
	return e.Err
}

func NewLeadError(err error, code string, details string) *LeadError {
	return &LeadError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewLeadErrorWithID(err error, code string, leadID string, details string) *LeadError {
	return &LeadError{
		Err:     err,
		Code:    code,
		LeadID:  leadID,
		Details: details,
	}
}
