package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/api"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/dispatcher"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/scheduler"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	snapshotRepo := repository.NewMetricsSnapshotRepository(pgConn)
	decisionRepo := repository.NewDecisionRepository(pgConn)
	alertRepo := repository.NewAlertRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	googleClient := googleclient.NewClient(cfg)
	googleIntegrator := google.New(cfg, googleClient)

	adapters := integrator.Registry{
		domain.PlatformMeta:   metaIntegrator,
		domain.PlatformGoogle: googleIntegrator,
	}

	actionDispatcher := dispatcher.New(adapters, campaignRepo, decisionRepo)

	campaignService := campaigning.NewService(campaignRepo, adapters, actionDispatcher, cfg)
	reportService := reporting.NewService(snapshotRepo, decisionRepo)
	alertService := alerting.NewService(alertRepo)

	// Inicializa o agendador do loop de monitoramento
	monitorService := scheduler.NewCampaignMonitorService(
		campaignRepo,
		snapshotRepo,
		alertRepo,
		adapters,
		actionDispatcher,
		cfg,
	)

	if err := monitorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de monitoramento de campanhas")
	} else {
		logrus.Info("Agendador de monitoramento de campanhas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		campaignService,
		reportService,
		alertService,
		authenticator,
		monitorService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
