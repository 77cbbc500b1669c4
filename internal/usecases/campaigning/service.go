package campaigning

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/dispatcher"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

type CampaignService interface {
	CreateCampaign(req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	GetCampaign(id string) (*domain.Campaign, error)
	ListCampaigns(statuses []domain.CampaignStatus) ([]*domain.Campaign, error)
	PauseCampaign(id string) error
	ActivateCampaign(id string) error
	ArchiveCampaign(id string) error
	UpdateDailyBudget(id string, dailyBudget float64) error
}

type Service struct {
	campaignRepo repository.CampaignRepository
	adapters     integrator.Registry
	dispatcher   *dispatcher.ActionDispatcher
	cfg          *config.Config
}

func NewService(
	campaignRepo repository.CampaignRepository,
	adapters integrator.Registry,
	actionDispatcher *dispatcher.ActionDispatcher,
	cfg *config.Config,
) CampaignService {
	return &Service{
		campaignRepo: campaignRepo,
		adapters:     adapters,
		dispatcher:   actionDispatcher,
		cfg:          cfg,
	}
}

// CreateCampaign cria a campanha na plataforma dona e persiste a linha
// local. Campanhas nascem pausadas; a ativação é uma ação do operador.
func (s *Service) CreateCampaign(req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if req.Name == "" || req.AccountExternalID == "" {
		return nil, ErrMissingRequiredData
	}

	if !req.Platform.Valid() {
		return nil, ErrUnknownPlatform
	}

	if req.DailyBudget <= 0 {
		return nil, ErrInvalidBudget
	}

	adapter, err := s.adapters.ForPlatform(req.Platform)
	if err != nil {
		return nil, ErrUnknownPlatform
	}

	externalID, err := adapter.CreateCampaign(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":      req.Platform,
			"campaign_name": req.Name,
			"error":         err.Error(),
		}).Error("Erro ao criar campanha na plataforma")
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	campaign := &domain.Campaign{
		ID:                id,
		Platform:          req.Platform,
		AccountExternalID: req.AccountExternalID,
		ExternalID:        externalID,
		Name:              req.Name,
		Objective:         req.Objective,
		Status:            domain.CampaignStatusPaused,
		DailyBudget:       req.DailyBudget,
		Metadata:          json.RawMessage(`{}`),
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"external_id": campaign.ExternalID,
		"platform":    campaign.Platform,
	}).Info("Campanha criada com sucesso")

	return campaign, nil
}

func (s *Service) GetCampaign(id string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

func (s *Service) ListCampaigns(statuses []domain.CampaignStatus) ([]*domain.Campaign, error) {
	if len(statuses) == 0 {
		statuses = []domain.CampaignStatus{
			domain.CampaignStatusActive,
			domain.CampaignStatusPaused,
			domain.CampaignStatusArchived,
		}
	}

	return s.campaignRepo.ListByStatus(statuses)
}

// PauseCampaign despacha uma decisão de pausa pelo mesmo caminho das ações
// automatizadas, para que a intervenção do operador fique no ledger.
func (s *Service) PauseCampaign(id string) error {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return err
	}

	if campaign.Status != domain.CampaignStatusActive {
		return ErrInvalidStatusTransition
	}

	action := domain.CampaignAction{
		Type:   domain.DecisionPauseCampaign,
		Reason: "pausa solicitada pelo operador",
		Payload: domain.ActionPayload{
			Action: "pause_campaign",
		},
	}

	return s.dispatcher.Dispatch(campaign, []domain.CampaignAction{action}, nil)
}

// ActivateCampaign reativa uma campanha pausada. A mutação é local: a
// plataforma passa a ser consultada de novo na próxima passada do monitor.
func (s *Service) ActivateCampaign(id string) error {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return err
	}

	if campaign.Status != domain.CampaignStatusPaused {
		return ErrInvalidStatusTransition
	}

	return s.campaignRepo.UpdateStatus(id, domain.CampaignStatusActive)
}

// ArchiveCampaign arquiva a campanha. Arquivamento é terminal e substitui
// qualquer remoção física.
func (s *Service) ArchiveCampaign(id string) error {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return err
	}

	if campaign.Status == domain.CampaignStatusArchived {
		return ErrInvalidStatusTransition
	}

	return s.campaignRepo.UpdateStatus(id, domain.CampaignStatusArchived)
}

// UpdateDailyBudget ajusta o teto local de orçamento diário usado pelas
// regras de otimização.
func (s *Service) UpdateDailyBudget(id string, dailyBudget float64) error {
	if dailyBudget <= 0 {
		return ErrInvalidBudget
	}

	if _, err := s.GetCampaign(id); err != nil {
		return err
	}

	return s.campaignRepo.UpdateDailyBudget(id, dailyBudget)
}
