// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type LeadStatus string

const (
	LeadStatusProspect  LeadStatus = "prospect"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusReplied   LeadStatus = "replied"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusRejected  LeadStatus = "rejected"
)

// funnelRank posiciona cada status no funil. Rejected fica fora da ordem.
var funnelRank = map[LeadStatus]int{
	LeadStatusProspect:  0,
	LeadStatusContacted: 1,
	LeadStatusReplied:   2,
	LeadStatusConverted: 3,
}

// LeadStatuses lista os status na ordem do funil, com rejected por último
var LeadStatuses = []LeadStatus{
	LeadStatusProspect,
	LeadStatusContacted,
	LeadStatusReplied,
	LeadStatusConverted,
	LeadStatusRejected,
}

func (s LeadStatus) IsValid() bool {
	if s == LeadStatusRejected {
		return true
	}
	_, ok := funnelRank[s]
	return ok
}

// CanTransition informa se a mudança de status respeita o funil:
// apenas avanços (podendo pular etapas), rejected a partir de qualquer status
// e nenhuma saída de rejected.
func CanTransition(from, to LeadStatus) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}

	if from == LeadStatusRejected {
		return false
	}

	if to == LeadStatusRejected {
		return true
	}

	return funnelRank[to] > funnelRank[from]
}

type LeadSource string

const (
	LeadSourceExternalDiscovery LeadSource = "google_maps"
	LeadSourceManual            LeadSource = "manual"
	LeadSourceImport            LeadSource = "import"
)

func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceExternalDiscovery, LeadSourceManual, LeadSourceImport:
		return true
	}
	return false
}

type Lead struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"company_name"`
	ContactName   string     `json:"contact_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Website       string     `json:"website"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	ZipCode       string     `json:"zip_code"`
	Country       string     `json:"country,omitempty"`
	Industry      string     `json:"industry"`
	BusinessType  string     `json:"business_type"`
	EmployeeCount int        `json:"employee_count"`
	AnnualRevenue float64    `json:"annual_revenue"`
	Description   string     `json:"description"`
	Rating        float64    `json:"rating"` // Escala 1-10 calculada pelo motor de pontuação
	Score         int        `json:"score"`  // Rating convertido para 0-100
	Status        LeadStatus `json:"status"`
	Source        LeadSource `json:"source"`
	ContactedAt   *time.Time `json:"contacted_at,omitempty"`
	RepliedAt     *time.Time `json:"replied_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateLeadRequest representa os dados de entrada de um novo lead (manual ou importação)
type CreateLeadRequest struct {
	CompanyName   string     `json:"company_name" validate:"notblank,max=255"`
	ContactName   string     `json:"contact_name" validate:"max=255"`
	Email         string     `json:"email" validate:"max=255"`
	Phone         string     `json:"phone" validate:"max=64"`
	Website       string     `json:"website" validate:"max=512"`
	Address       string     `json:"address" validate:"max=255"`
	City          string     `json:"city" validate:"max=128"`
	State         string     `json:"state" validate:"max=64"`
	ZipCode       string     `json:"zip_code" validate:"max=32"`
	Country       string     `json:"country" validate:"max=64"`
	Industry      string     `json:"industry" validate:"max=128"`
	BusinessType  string     `json:"business_type" validate:"max=128"`
	EmployeeCount int        `json:"employee_count" validate:"gte=0"`
	AnnualRevenue float64    `json:"annual_revenue" validate:"gte=0"`
	Description   string     `json:"description" validate:"max=4000"`
	Source        LeadSource `json:"source" validate:"omitempty,oneof=google_maps manual import"`
}

type ChangeStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required,oneof=prospect contacted replied converted rejected"`
}

// LeadStats é o resumo exibido no painel
type LeadStats struct {
	Total        int `json:"total"`
	Prospects    int `json:"prospects"`
	Contacted    int `json:"contacted"`
	Replied      int `json:"replied"`
	Converted    int `json:"converted"`
	AverageScore int `json:"averageScore"` // 0-100
}
