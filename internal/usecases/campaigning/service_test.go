package campaigning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	integratormocks "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-optimizer-api/internal/dispatcher"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	campaignRepo *mocks.MockCampaignRepository
	decisionRepo *mocks.MockDecisionRepository
	adapter      *integratormocks.MockPlatformAdapter
}

func newTestService(ctrl *gomock.Controller) (CampaignService, *serviceMocks) {
	m := &serviceMocks{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		decisionRepo: mocks.NewMockDecisionRepository(ctrl),
		adapter:      integratormocks.NewMockPlatformAdapter(ctrl),
	}

	adapters := integrator.Registry{domain.PlatformMeta: m.adapter}

	service := NewService(
		m.campaignRepo,
		adapters,
		dispatcher.New(adapters, m.campaignRepo, m.decisionRepo),
		nil,
	)

	return service, m
}

func validCreateRequest() *domain.CreateCampaignRequest {
	return &domain.CreateCampaignRequest{
		Name:              "Campanha de Conversão",
		Platform:          domain.PlatformMeta,
		AccountExternalID: "act_123456",
		Objective:         "CONVERSIONS",
		DailyBudget:       150,
	}
}

func TestService_CreateCampaign(t *testing.T) {
	t.Run("Campanha criada nasce pausada com o id da plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.adapter.EXPECT().
			CreateCampaign(gomock.Any()).
			Return("EXT999", nil)

		m.campaignRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(campaign *domain.Campaign) error {
				assert.NotEmpty(t, campaign.ID)
				assert.Equal(t, "EXT999", campaign.ExternalID)
				assert.Equal(t, domain.CampaignStatusPaused, campaign.Status)
				return nil
			})

		campaign, err := service.CreateCampaign(validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusPaused, campaign.Status)
	})

	t.Run("Requisição sem nome é rejeitada antes de chamar a plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		req := validCreateRequest()
		req.Name = ""

		_, err := service.CreateCampaign(req)

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Plataforma desconhecida é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		req := validCreateRequest()
		req.Platform = "tiktok"

		_, err := service.CreateCampaign(req)

		assert.ErrorIs(t, err, ErrUnknownPlatform)
	})

	t.Run("Orçamento diário não positivo é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		req := validCreateRequest()
		req.DailyBudget = 0

		_, err := service.CreateCampaign(req)

		assert.ErrorIs(t, err, ErrInvalidBudget)
	})

	t.Run("Erro da plataforma não persiste nada localmente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.adapter.EXPECT().
			CreateCampaign(gomock.Any()).
			Return("", errors.New("conta sem permissão"))

		_, err := service.CreateCampaign(validCreateRequest())

		assert.Error(t, err)
	})
}

func TestService_PauseCampaign(t *testing.T) {
	t.Run("Pausa do operador passa pelo despachante e fica no ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{
				ID:         "CMP001",
				Platform:   domain.PlatformMeta,
				ExternalID: "EXT001",
				Status:     domain.CampaignStatusActive,
			}, nil)

		m.adapter.EXPECT().
			ExecuteDecision("EXT001", gomock.Any()).
			DoAndReturn(func(_ string, action *domain.CampaignAction) (*domain.DecisionResult, error) {
				assert.Equal(t, domain.DecisionPauseCampaign, action.Type)
				assert.Equal(t, "pausa solicitada pelo operador", action.Reason)
				return &domain.DecisionResult{Success: true}, nil
			})

		m.decisionRepo.EXPECT().
			Save(gomock.Any()).
			DoAndReturn(func(decision *domain.Decision) error {
				assert.Equal(t, domain.DecisionPauseCampaign, decision.Type)
				assert.True(t, decision.Success)
				return nil
			})

		m.campaignRepo.EXPECT().
			UpdateStatus("CMP001", domain.CampaignStatusPaused).
			Return(nil)

		err := service.PauseCampaign("CMP001")

		assert.NoError(t, err)
	})

	t.Run("Pausar campanha já pausada é transição inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusPaused}, nil)

		err := service.PauseCampaign("CMP001")

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("Campanha inexistente retorna erro de não encontrada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP404").
			Return(nil, nil)

		err := service.PauseCampaign("CMP404")

		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestService_ActivateCampaign(t *testing.T) {
	t.Run("Campanha pausada volta a ficar ativa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusPaused}, nil)

		m.campaignRepo.EXPECT().
			UpdateStatus("CMP001", domain.CampaignStatusActive).
			Return(nil)

		err := service.ActivateCampaign("CMP001")

		assert.NoError(t, err)
	})

	t.Run("Ativar campanha arquivada é transição inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusArchived}, nil)

		err := service.ActivateCampaign("CMP001")

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestService_ArchiveCampaign(t *testing.T) {
	t.Run("Arquivamento é permitido a partir de qualquer estado não terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusActive}, nil)

		m.campaignRepo.EXPECT().
			UpdateStatus("CMP001", domain.CampaignStatusArchived).
			Return(nil)

		err := service.ArchiveCampaign("CMP001")

		assert.NoError(t, err)
	})

	t.Run("Arquivar campanha já arquivada é transição inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusArchived}, nil)

		err := service.ArchiveCampaign("CMP001")

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestService_UpdateDailyBudget(t *testing.T) {
	t.Run("Atualiza o teto local de orçamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.campaignRepo.EXPECT().
			GetByID("CMP001").
			Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusActive}, nil)

		m.campaignRepo.EXPECT().
			UpdateDailyBudget("CMP001", 250.0).
			Return(nil)

		err := service.UpdateDailyBudget("CMP001", 250)

		assert.NoError(t, err)
	})

	t.Run("Orçamento negativo é rejeitado sem consultar o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		err := service.UpdateDailyBudget("CMP001", -10)

		assert.ErrorIs(t, err, ErrInvalidBudget)
	})
}
