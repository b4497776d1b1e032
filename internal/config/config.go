package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	StaleLeads        StaleLeads        `mapstructure:",squash"`
	LeadRescoringSync LeadRescoringSync `mapstructure:",squash"`
	StaleLeadSweep    StaleLeadSweep    `mapstructure:",squash"`
	Metrics           Metrics           `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	AutoMigrate     bool          `mapstructure:"database_auto_migrate"`
	Seed            bool          `mapstructure:"database_seed"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type StaleLeads struct {
	ThresholdDays int `mapstructure:"stale_leads_threshold_days"`
}

type LeadRescoringSync struct {
	CronSchedule string `mapstructure:"lead_rescoring_sync_cron"`
	Enabled      bool   `mapstructure:"lead_rescoring_sync_enabled"`
}

type StaleLeadSweep struct {
	CronSchedule string `mapstructure:"stale_lead_sweep_cron"`
	Enabled      bool   `mapstructure:"stale_lead_sweep_enabled"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"metrics_enabled"`
	Path    string `mapstructure:"metrics_path"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/leads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	viper.SetDefault("DATABASE_SEED", false)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("STALE_LEADS_THRESHOLD_DAYS", 7) // Dias sem tentativa de contato

	viper.SetDefault("LEAD_RESCORING_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("LEAD_RESCORING_SYNC_ENABLED", false)

	viper.SetDefault("STALE_LEAD_SWEEP_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("STALE_LEAD_SWEEP_ENABLED", false)

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

func BuildDSN(db Database) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// IsDevelopment indica se a aplicação está rodando localmente
func (a App) IsDevelopment() bool {
	return a.Env == "" || a.Env == "dev"
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
