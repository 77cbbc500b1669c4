package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	integratormocks "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func metaCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:          "CMP001",
		Platform:    domain.PlatformMeta,
		ExternalID:  "120210000000001",
		Name:        "Campanha de Leads",
		Status:      domain.CampaignStatusActive,
		DailyBudget: 100,
	}
}

func TestActionDispatcher_Dispatch(t *testing.T) {
	bidAction := domain.CampaignAction{
		Type:   domain.DecisionBidAdjustment,
		Reason: "CPL acima do limite",
		Payload: domain.ActionPayload{
			Action:     "decrease_bid",
			Adjustment: -10,
		},
	}

	budgetAction := domain.CampaignAction{
		Type:   domain.DecisionBudgetReallocation,
		Reason: "ROAS abaixo do mínimo",
		Payload: domain.ActionPayload{
			Action:     "reduce_budget",
			Adjustment: -20,
		},
	}

	advisoryAction := domain.CampaignAction{
		Type:   domain.DecisionCreativeRefresh,
		Reason: "CTR abaixo do mínimo",
		Payload: domain.ActionPayload{
			Action: "refresh_creatives",
			Note:   "recomendação: renovar os criativos da campanha",
		},
	}

	tests := []struct {
		name    string
		actions []domain.CampaignAction
		setup   func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository)
		wantErr bool
	}{
		{
			name:    "Ação aplicada com sucesso - decisão registrada como success",
			actions: []domain.CampaignAction{bidAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				adapter.EXPECT().
					ExecuteDecision("120210000000001", gomock.Any()).
					Return(&domain.DecisionResult{Success: true}, nil)

				decisionRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(d *domain.Decision) error {
						assert.True(t, d.Success)
						assert.Equal(t, domain.DecisionBidAdjustment, d.Type)
						assert.Equal(t, "CMP001", *d.CampaignID)
						return nil
					})
			},
		},
		{
			name:    "Falha de plataforma - decisão registrada como falha e pipeline segue",
			actions: []domain.CampaignAction{bidAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				adapter.EXPECT().
					ExecuteDecision("120210000000001", gomock.Any()).
					Return(nil, errors.New("erro de rede"))

				decisionRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(d *domain.Decision) error {
						assert.False(t, d.Success)
						return nil
					})
			},
		},
		{
			name:    "Ação consultiva - registrada sem chamada de plataforma",
			actions: []domain.CampaignAction{advisoryAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				// Nenhuma expectativa no adapter: ExecuteDecision não deve ser chamado
				decisionRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(d *domain.Decision) error {
						assert.True(t, d.Success)
						assert.Equal(t, domain.DecisionCreativeRefresh, d.Type)
						return nil
					})
			},
		},
		{
			name:    "Realocação de orçamento confirmada - orçamento local atualizado",
			actions: []domain.CampaignAction{budgetAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				adapter.EXPECT().
					ExecuteDecision("120210000000001", gomock.Any()).
					Return(&domain.DecisionResult{Success: true}, nil)

				decisionRepo.EXPECT().Save(gomock.Any()).Return(nil)

				campaignRepo.EXPECT().
					UpdateDailyBudget("CMP001", gomock.Any()).
					DoAndReturn(func(_ string, budget float64) error {
						assert.InDelta(t, 80.0, budget, 0.001)
						return nil
					})
			},
		},
		{
			name:    "Falha ao gravar no ledger - interrompe o pipeline com erro",
			actions: []domain.CampaignAction{bidAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				adapter.EXPECT().
					ExecuteDecision("120210000000001", gomock.Any()).
					Return(&domain.DecisionResult{Success: true}, nil)

				decisionRepo.EXPECT().
					Save(gomock.Any()).
					Return(errors.New("conexão perdida"))
			},
			wantErr: true,
		},
		{
			name:    "Duas ações em sequência - ambas registradas na ordem",
			actions: []domain.CampaignAction{bidAction, advisoryAction},
			setup: func(adapter *integratormocks.MockPlatformAdapter, campaignRepo *mocks.MockCampaignRepository, decisionRepo *mocks.MockDecisionRepository) {
				adapter.EXPECT().
					ExecuteDecision("120210000000001", gomock.Any()).
					Return(&domain.DecisionResult{Success: true}, nil)

				gomock.InOrder(
					decisionRepo.EXPECT().
						Save(gomock.Any()).
						DoAndReturn(func(d *domain.Decision) error {
							assert.Equal(t, domain.DecisionBidAdjustment, d.Type)
							return nil
						}),
					decisionRepo.EXPECT().
						Save(gomock.Any()).
						DoAndReturn(func(d *domain.Decision) error {
							assert.Equal(t, domain.DecisionCreativeRefresh, d.Type)
							return nil
						}),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			adapter := integratormocks.NewMockPlatformAdapter(ctrl)
			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			decisionRepo := mocks.NewMockDecisionRepository(ctrl)

			tt.setup(adapter, campaignRepo, decisionRepo)

			d := New(integrator.Registry{domain.PlatformMeta: adapter}, campaignRepo, decisionRepo)

			kpis := &domain.CampaignKPIs{CPL: 60}
			err := d.Dispatch(metaCampaign(), tt.actions, kpis)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActionDispatcher_DispatchUnknownPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	decisionRepo := mocks.NewMockDecisionRepository(ctrl)

	// A decisão ainda é registrada, como falha
	decisionRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(d *domain.Decision) error {
			assert.False(t, d.Success)
			return nil
		})

	d := New(integrator.Registry{}, campaignRepo, decisionRepo)

	campaign := metaCampaign()
	campaign.Platform = domain.Platform("tiktok")

	err := d.Dispatch(campaign, []domain.CampaignAction{{
		Type:    domain.DecisionBidAdjustment,
		Reason:  "CPL acima do limite",
		Payload: domain.ActionPayload{Action: "decrease_bid", Adjustment: -10},
	}}, nil)

	assert.NoError(t, err)
}
