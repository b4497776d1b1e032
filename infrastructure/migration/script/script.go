package main

import (
	"context"
	"log"
	"time"

	"github.com/vfg2006/lead-qualifier-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/migration"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/config"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/scoring"
)

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func main() {
	setupLogger()
	startTime := time.Now()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	if err := migration.Migrate(cfg.Database.DSN); err != nil {
		log.Fatalf("ERRO ao aplicar migrations: %v", err)
	}
	log.Println("Migrations aplicadas com sucesso")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()

	inserted, err := migration.Seed(ctx, repository.NewLeadRepository(conn), scoring.NewEngine())
	if err != nil {
		log.Fatalf("ERRO ao inserir leads de exemplo: %v", err)
	}

	log.Printf("Script concluído em %v. Leads inseridos: %d", time.Since(startTime), inserted)
}
