package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	integratormocks "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/dispatcher"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/optimizer"
	"go.uber.org/mock/gomock"
)

func testThresholds() config.OptimizationRules {
	return config.OptimizationRules{
		MaxCPL:               50,
		MinROAS:              2.0,
		MinConversionsROAS:   10,
		MinCTR:               1.0,
		MinImpressionsCTR:    1000,
		BudgetPacingFraction: 0.8,
		PacingHourLimit:      12,
		BidDecreasePercent:   -10,
		BudgetReducePercent:  -20,
	}
}

type monitorMocks struct {
	campaignRepo *mocks.MockCampaignRepository
	snapshotRepo *mocks.MockMetricsSnapshotRepository
	decisionRepo *mocks.MockDecisionRepository
	alertRepo    *mocks.MockAlertRepository
	adapter      *integratormocks.MockPlatformAdapter
}

func newMonitorService(ctrl *gomock.Controller, referenceTime time.Time) (*CampaignMonitorService, *monitorMocks) {
	m := &monitorMocks{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		snapshotRepo: mocks.NewMockMetricsSnapshotRepository(ctrl),
		decisionRepo: mocks.NewMockDecisionRepository(ctrl),
		alertRepo:    mocks.NewMockAlertRepository(ctrl),
		adapter:      integratormocks.NewMockPlatformAdapter(ctrl),
	}

	adapters := integrator.Registry{domain.PlatformMeta: m.adapter}
	thresholds := testThresholds()

	service := &CampaignMonitorService{
		config:         CampaignMonitorConfig{SyncEnabled: true},
		campaignRepo:   m.campaignRepo,
		snapshotRepo:   m.snapshotRepo,
		alertRepo:      m.alertRepo,
		adapters:       adapters,
		dispatcher:     dispatcher.New(adapters, m.campaignRepo, m.decisionRepo),
		ruleEvaluator:  optimizer.NewRuleEvaluator(thresholds),
		alertEvaluator: optimizer.NewAlertEvaluator(thresholds),
		now:            func() time.Time { return referenceTime },
	}

	return service, m
}

func activeCampaign(id, externalID string) *domain.Campaign {
	return &domain.Campaign{
		ID:          id,
		Platform:    domain.PlatformMeta,
		ExternalID:  externalID,
		Name:        "Campanha " + id,
		Status:      domain.CampaignStatusActive,
		DailyBudget: 100,
	}
}

func TestCampaignMonitorService_runMonitoringPass(t *testing.T) {
	// 14h: regra de pacing fora da janela da manhã
	referenceTime := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	t.Run("Falha em uma campanha não bloqueia as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		first := activeCampaign("CMP001", "EXT001")
		second := activeCampaign("CMP002", "EXT002")

		m.campaignRepo.EXPECT().
			ListByStatus([]domain.CampaignStatus{domain.CampaignStatusActive}).
			Return([]*domain.Campaign{first, second}, nil)

		// Primeira campanha: a plataforma falha
		m.adapter.EXPECT().
			GetCampaignMetrics("EXT001", gomock.Any()).
			Return(nil, errors.New("timeout na Graph API"))

		// Segunda campanha: processada normalmente, métricas saudáveis
		m.adapter.EXPECT().
			GetCampaignMetrics("EXT002", gomock.Any()).
			Return(&domain.RawMetrics{
				Impressions: 500,
				Clicks:      20,
				Conversions: 2,
				Spend:       10,
				Revenue:     60,
			}, nil)

		m.snapshotRepo.EXPECT().
			GetByCampaignAndDate("CMP002", gomock.Any()).
			Return(nil, nil)

		m.snapshotRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(snapshot *domain.MetricsSnapshot) error {
				assert.Equal(t, "CMP002", snapshot.CampaignID)
				assert.Equal(t, 10.0, snapshot.KPIs.Spend)
				return nil
			})

		m.campaignRepo.EXPECT().
			ApplySpend("CMP002", 10.0).
			Return(nil)

		service.runMonitoringPass()

		assert.False(t, service.syncRunning)
	})

	t.Run("Métricas ruins geram decisões e alertas na mesma passada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		campaign := activeCampaign("CMP003", "EXT003")

		m.campaignRepo.EXPECT().
			ListByStatus([]domain.CampaignStatus{domain.CampaignStatusActive}).
			Return([]*domain.Campaign{campaign}, nil)

		// CPL 8.50, ROAS 1.28, CTR 1.67: apenas a regra de ROAS dispara
		m.adapter.EXPECT().
			GetCampaignMetrics("EXT003", gomock.Any()).
			Return(&domain.RawMetrics{
				Impressions: 3000,
				Clicks:      50,
				Conversions: 20,
				Spend:       170,
				Revenue:     218,
			}, nil)

		m.snapshotRepo.EXPECT().
			GetByCampaignAndDate("CMP003", gomock.Any()).
			Return(nil, nil)
		m.snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.campaignRepo.EXPECT().ApplySpend("CMP003", 170.0).Return(nil)

		// Despacho da realocação de orçamento
		m.adapter.EXPECT().
			ExecuteDecision("EXT003", gomock.Any()).
			DoAndReturn(func(_ string, action *domain.CampaignAction) (*domain.DecisionResult, error) {
				assert.Equal(t, domain.DecisionBudgetReallocation, action.Type)
				return &domain.DecisionResult{Success: true}, nil
			})
		m.decisionRepo.EXPECT().Save(gomock.Any()).Return(nil)
		m.campaignRepo.EXPECT().UpdateDailyBudget("CMP003", gomock.Any()).Return(nil)

		// Alertas: ROAS baixo (crítico) e orçamento quase esgotado (info)
		var savedAlerts []domain.AlertType
		m.alertRepo.EXPECT().
			Save(gomock.Any()).
			DoAndReturn(func(alert *domain.Alert) error {
				savedAlerts = append(savedAlerts, alert.Type)
				return nil
			}).
			Times(2)

		service.runMonitoringPass()

		assert.Equal(t, []domain.AlertType{domain.AlertLowROAS, domain.AlertBudgetConsumed}, savedAlerts)
	})

	t.Run("Campanha sem external_id é pulada sem chamar a plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		broken := activeCampaign("CMP004", "")

		m.campaignRepo.EXPECT().
			ListByStatus([]domain.CampaignStatus{domain.CampaignStatusActive}).
			Return([]*domain.Campaign{broken}, nil)

		// Nenhuma expectativa no adapter nem nos repositórios de escrita

		service.runMonitoringPass()
	})

	t.Run("Erro ao listar campanhas encerra a passada sem efeitos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		m.campaignRepo.EXPECT().
			ListByStatus(gomock.Any()).
			Return(nil, errors.New("banco indisponível"))

		service.runMonitoringPass()

		assert.False(t, service.syncRunning)
	})
}

func TestCampaignMonitorService_persistSnapshot(t *testing.T) {
	referenceTime := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	t.Run("Segunda passada do dia acumula apenas o gasto novo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		campaign := activeCampaign("CMP005", "EXT005")
		kpis := domain.NormalizeMetrics(domain.RawMetrics{Spend: 50})

		m.snapshotRepo.EXPECT().
			GetByCampaignAndDate("CMP005", today).
			Return(&domain.MetricsSnapshot{
				CampaignID: "CMP005",
				Date:       today,
				KPIs:       &domain.CampaignKPIs{RawMetrics: domain.RawMetrics{Spend: 30}},
			}, nil)

		m.snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		m.campaignRepo.EXPECT().ApplySpend("CMP005", 20.0).Return(nil)

		err := service.persistSnapshot(campaign, kpis, today)
		assert.NoError(t, err)
	})

	t.Run("Gasto igual ao da passada anterior não acumula nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newMonitorService(ctrl, referenceTime)

		campaign := activeCampaign("CMP006", "EXT006")
		kpis := domain.NormalizeMetrics(domain.RawMetrics{Spend: 30})

		m.snapshotRepo.EXPECT().
			GetByCampaignAndDate("CMP006", today).
			Return(&domain.MetricsSnapshot{
				KPIs: &domain.CampaignKPIs{RawMetrics: domain.RawMetrics{Spend: 30}},
			}, nil)

		m.snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		// ApplySpend não deve ser chamado

		err := service.persistSnapshot(campaign, kpis, today)
		assert.NoError(t, err)
	})
}
