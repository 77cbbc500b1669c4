package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Meta              Meta              `mapstructure:",squash"`
	Google            Google            `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	MonitorSync       MonitorSync       `mapstructure:",squash"`
	OptimizationRules OptimizationRules `mapstructure:",squash"`
	SecretKey         string            `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	URL         string `mapstructure:"meta_url"`
	Version     string `mapstructure:"meta_version"`
	AccessToken string `mapstructure:"meta_access_token"`
	AppID       string `mapstructure:"meta_app_id"`
	AppSecret   string `mapstructure:"meta_app_secret"`
}

type Google struct {
	URL            string `mapstructure:"google_ads_url"`
	DeveloperToken string `mapstructure:"google_ads_developer_token"`
	CustomerID     string `mapstructure:"google_ads_customer_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// MonitorSync configura o agendador do loop de monitoramento de campanhas
type MonitorSync struct {
	CronSchedule        string `mapstructure:"monitor_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"monitor_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"monitor_sync_enabled"`
}

// OptimizationRules reúne os limiares fixos das regras de otimização e de
// alerta. São constantes de política com defaults documentados, não valores
// derivados de dados.
type OptimizationRules struct {
	MaxCPL               float64 `mapstructure:"rules_max_cpl"`
	MinROAS              float64 `mapstructure:"rules_min_roas"`
	MinConversionsROAS   float64 `mapstructure:"rules_min_conversions_roas"`
	MinCTR               float64 `mapstructure:"rules_min_ctr"`
	MinImpressionsCTR    float64 `mapstructure:"rules_min_impressions_ctr"`
	BudgetPacingFraction float64 `mapstructure:"rules_budget_pacing_fraction"`
	PacingHourLimit      int     `mapstructure:"rules_pacing_hour_limit"`
	BidDecreasePercent   float64 `mapstructure:"rules_bid_decrease_percent"`
	BudgetReducePercent  float64 `mapstructure:"rules_budget_reduce_percent"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/optimizer")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_URL", "https://graph.facebook.com/v22.0")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	viper.SetDefault("GOOGLE_ADS_URL", "https://googleads.googleapis.com/v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GOOGLE_ADS_CUSTOMER_ID", "")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para o loop de monitoramento
	viper.SetDefault("MONITOR_SYNC_CRON", "0 * * * *")        // A cada hora
	viper.SetDefault("MONITOR_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre campanhas
	viper.SetDefault("MONITOR_SYNC_ENABLED", false)           // Habilitar o monitor

	// Defaults das regras de otimização (política fixa, não derivada de dados)
	viper.SetDefault("RULES_MAX_CPL", 50.0)                // Custo por lead máximo aceitável
	viper.SetDefault("RULES_MIN_ROAS", 2.0)                // Retorno mínimo sobre o investimento
	viper.SetDefault("RULES_MIN_CONVERSIONS_ROAS", 10.0)   // Volume mínimo para a regra de ROAS
	viper.SetDefault("RULES_MIN_CTR", 1.0)                 // CTR mínimo em porcentagem
	viper.SetDefault("RULES_MIN_IMPRESSIONS_CTR", 1000.0)  // Volume mínimo para a regra de CTR
	viper.SetDefault("RULES_BUDGET_PACING_FRACTION", 0.8)  // Fração do orçamento diário
	viper.SetDefault("RULES_PACING_HOUR_LIMIT", 12)        // Antes desta hora, gasto alto é queima rápida
	viper.SetDefault("RULES_BID_DECREASE_PERCENT", -10.0)  // Ajuste de lance da regra de CPL
	viper.SetDefault("RULES_BUDGET_REDUCE_PERCENT", -20.0) // Ajuste de orçamento da regra de ROAS

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
