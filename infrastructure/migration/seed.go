package migration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

// SampleLeads são os leads de demonstração carregados em uma base vazia
func SampleLeads() []*domain.Lead {
	return []*domain.Lead{
		{
			CompanyName:   "TechStart Solutions",
			ContactName:   "Sarah Johnson",
			Email:         "sarah@techstart.com",
			Phone:         "(555) 123-4567",
			Website:       "https://techstart.com",
			Address:       "123 Innovation Dr",
			City:          "San Francisco",
			State:         "CA",
			ZipCode:       "94105",
			Country:       "US",
			Industry:      "Technology",
			BusinessType:  "B2B SaaS",
			EmployeeCount: 25,
			AnnualRevenue: 2_500_000,
			Description:   "AI-powered business automation platform",
			Status:        domain.LeadStatusProspect,
			Source:        domain.LeadSourceExternalDiscovery,
		},
		{
			CompanyName:   "Green Energy Co",
			ContactName:   "Mike Chen",
			Email:         "mike@greenenergy.com",
			Phone:         "(555) 987-6543",
			Website:       "https://greenenergy.com",
			Address:       "456 Solar Ave",
			City:          "Austin",
			State:         "TX",
			ZipCode:       "78701",
			Country:       "US",
			Industry:      "Energy",
			BusinessType:  "B2B Services",
			EmployeeCount: 150,
			AnnualRevenue: 15_000_000,
			Description:   "Renewable energy solutions for businesses",
			Status:        domain.LeadStatusContacted,
			Source:        domain.LeadSourceExternalDiscovery,
		},
		{
			CompanyName:   "Local Cafe Chain",
			ContactName:   "Emma Rodriguez",
			Email:         "emma@localcafe.com",
			Phone:         "(555) 456-7890",
			Website:       "https://localcafe.com",
			Address:       "789 Main St",
			City:          "Portland",
			State:         "OR",
			ZipCode:       "97201",
			Country:       "US",
			Industry:      "Food & Beverage",
			BusinessType:  "B2C Retail",
			EmployeeCount: 45,
			AnnualRevenue: 3_200_000,
			Description:   "Artisanal coffee and pastries",
			Status:        domain.LeadStatusReplied,
			Source:        domain.LeadSourceExternalDiscovery,
		},
	}
}

// Seed insere os leads de exemplo apenas quando não existe nenhum lead.
// Retorna a quantidade inserida.
func Seed(ctx context.Context, leadRepo repository.LeadRepository, scorer scoring.Scorer) (int, error) {
	counts, err := leadRepo.CountByStatus(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	if total > 0 {
		logrus.WithField("leads", total).Info("Base já possui leads, seed ignorado")
		return 0, nil
	}

	inserted := 0
	for _, lead := range SampleLeads() {
		id, err := utils.GenerateID()
		if err != nil {
			return inserted, fmt.Errorf("failed to generate lead ID: %w", err)
		}

		lead.ID = id
		scorer.Apply(lead)

		if _, err := leadRepo.Create(ctx, lead); err != nil {
			return inserted, fmt.Errorf("failed to insert lead %s: %w", lead.CompanyName, err)
		}
		inserted++
	}

	logrus.WithField("leads", inserted).Info("Leads de exemplo inseridos")
	return inserted, nil
}
