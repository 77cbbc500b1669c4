package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/dispatcher"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/optimizer"
)

// CampaignMonitorConfig representa a configuração do loop de monitoramento
type CampaignMonitorConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// CampaignMonitorService orquestra a passada de monitoramento: busca as
// campanhas ativas, coleta métricas na plataforma, normaliza, persiste a
// fotografia do dia, avalia regras, despacha ações e avalia alertas. As
// campanhas são processadas em sequência, nunca em paralelo, para limitar a
// exposição aos rate limits das plataformas.
type CampaignMonitorService struct {
	scheduler           *gocron.Scheduler
	config              CampaignMonitorConfig
	appConfig           *config.Config
	campaignRepo        repository.CampaignRepository
	snapshotRepo        repository.MetricsSnapshotRepository
	alertRepo           repository.AlertRepository
	adapters            integrator.Registry
	dispatcher          *dispatcher.ActionDispatcher
	ruleEvaluator       *optimizer.RuleEvaluator
	alertEvaluator      *optimizer.AlertEvaluator
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewCampaignMonitorService cria uma nova instância do monitor de campanhas
func NewCampaignMonitorService(
	campaignRepo repository.CampaignRepository,
	snapshotRepo repository.MetricsSnapshotRepository,
	alertRepo repository.AlertRepository,
	adapters integrator.Registry,
	actionDispatcher *dispatcher.ActionDispatcher,
	appConfig *config.Config,
) *CampaignMonitorService {
	monitorConfig := CampaignMonitorConfig{
		CronSchedule:        appConfig.MonitorSync.CronSchedule,
		RequestDelaySeconds: appConfig.MonitorSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.MonitorSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         monitorConfig.CronSchedule,
		"request_delay_seconds": monitorConfig.RequestDelaySeconds,
		"sync_enabled":          monitorConfig.SyncEnabled,
	}).Info("Configuração do monitor de campanhas carregada")

	return &CampaignMonitorService{
		scheduler:      scheduler,
		config:         monitorConfig,
		appConfig:      appConfig,
		campaignRepo:   campaignRepo,
		snapshotRepo:   snapshotRepo,
		alertRepo:      alertRepo,
		adapters:       adapters,
		dispatcher:     actionDispatcher,
		ruleEvaluator:  optimizer.NewRuleEvaluator(appConfig.OptimizationRules),
		alertEvaluator: optimizer.NewAlertEvaluator(appConfig.OptimizationRules),
		now:            time.Now,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *CampaignMonitorService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Monitoramento de campanhas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do monitor de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runMonitoringPass()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o monitor de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do monitor de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// runMonitoringPass executa uma passada completa sobre as campanhas ativas.
// O estado terminal é sempre ocioso, independente de quantas campanhas
// falharam no caminho.
func (s *CampaignMonitorService) runMonitoringPass() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Passada de monitoramento já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := s.now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando passada de monitoramento das campanhas ativas")

	campaigns, err := s.campaignRepo.ListByStatus([]domain.CampaignStatus{domain.CampaignStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas ativas para monitoramento")
		return
	}

	if len(campaigns) == 0 {
		logrus.Info("Nenhuma campanha ativa encontrada para monitoramento")
		return
	}

	logrus.WithField("active_campaigns", len(campaigns)).Info("Campanhas encontradas para monitoramento")

	failures := 0
	for i, campaign := range campaigns {
		if err := s.processCampaign(campaign); err != nil {
			// Isolamento de falha parcial: a campanha com erro é registrada
			// e a passada segue para a próxima
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"external_id": campaign.ExternalID,
				"platform":    campaign.Platform,
				"error":       err.Error(),
			}).Error("Erro ao processar campanha na passada de monitoramento")
			failures++
		}

		// Aguardar antes da próxima campanha para evitar sobrecarga nas APIs
		if i < len(campaigns)-1 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"campaigns": len(campaigns),
		"failures":  failures,
	}).Info("Passada de monitoramento concluída")

	s.lastSyncCompletedAt = s.now()
}

// processCampaign executa o sub-pipeline de uma campanha: coleta → normaliza
// → persiste snapshot → avalia regras → despacha → avalia alertas
func (s *CampaignMonitorService) processCampaign(campaign *domain.Campaign) error {
	if campaign.ExternalID == "" {
		return fmt.Errorf("campanha %s sem external_id", campaign.ID)
	}

	adapter, err := s.adapters.ForPlatform(campaign.Platform)
	if err != nil {
		return err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	filters := &domain.MetricsFilters{StartDate: &today, EndDate: &today}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"external_id": campaign.ExternalID,
		"platform":    campaign.Platform,
		"date":        today.Format(time.DateOnly),
	}).Info("Coletando métricas da campanha")

	raw, err := adapter.GetCampaignMetrics(campaign.ExternalID, filters)
	if err != nil {
		return fmt.Errorf("erro ao coletar métricas da plataforma: %w", err)
	}

	kpis := domain.NormalizeMetrics(*raw)

	if err := s.persistSnapshot(campaign, kpis, today); err != nil {
		return err
	}

	actions := s.ruleEvaluator.Evaluate(campaign, kpis, now)
	if len(actions) > 0 {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"actions":     len(actions),
		}).Info("Regras de otimização dispararam ações")

		if err := s.dispatcher.Dispatch(campaign, actions, kpis); err != nil {
			return err
		}
	}

	alerts := s.alertEvaluator.Evaluate(campaign, kpis)
	for i := range alerts {
		if err := s.alertRepo.Save(&alerts[i]); err != nil {
			return fmt.Errorf("erro ao persistir alerta: %w", err)
		}
	}

	if len(alerts) > 0 {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"alerts":      len(alerts),
		}).Info("Alertas gerados para a campanha")
	}

	return nil
}

// persistSnapshot grava a fotografia do dia e acumula no total da campanha o
// gasto novo em relação à passada anterior do mesmo dia.
func (s *CampaignMonitorService) persistSnapshot(campaign *domain.Campaign, kpis *domain.CampaignKPIs, date time.Time) error {
	previous, err := s.snapshotRepo.GetByCampaignAndDate(campaign.ID, date)
	if err != nil {
		return fmt.Errorf("erro ao buscar snapshot anterior: %w", err)
	}

	snapshot := &domain.MetricsSnapshot{
		CampaignID: campaign.ID,
		Date:       date,
		KPIs:       kpis,
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		return fmt.Errorf("erro ao persistir snapshot de métricas: %w", err)
	}

	spendDelta := kpis.Spend
	if previous != nil && previous.KPIs != nil {
		spendDelta = kpis.Spend - previous.KPIs.Spend
	}

	if spendDelta > 0 {
		if err := s.campaignRepo.ApplySpend(campaign.ID, spendDelta); err != nil {
			return fmt.Errorf("erro ao acumular gasto da campanha: %w", err)
		}
	}

	return nil
}

// TriggerManualSync inicia manualmente uma passada de monitoramento
func (s *CampaignMonitorService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Passada de monitoramento já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando passada manual de monitoramento")
	go s.runMonitoringPass()
}

// GetStatus retorna o status atual do agendador
func (s *CampaignMonitorService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
