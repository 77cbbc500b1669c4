package google

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

type GoogleIntegrator struct {
	cfg    *config.Config
	Client googleclient.Client
}

func New(cfg *config.Config, client googleclient.Client) *GoogleIntegrator {
	return &GoogleIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *GoogleIntegrator) CreateCampaign(req *domain.CreateCampaignRequest) (string, error) {
	externalID, err := s.Client.CreateCampaign(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_name": req.Name,
			"error":         err.Error(),
		}).Error("google: failed to create campaign")
		return "", err
	}

	logrus.WithField("external_id", externalID).Debug("google: campaign created")

	return externalID, nil
}

func (s *GoogleIntegrator) GetCampaignMetrics(externalID string, filters *domain.MetricsFilters) (*domain.RawMetrics, error) {
	result, err := s.Client.SearchCampaignMetrics(externalID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"external_id": externalID,
			"error":       err.Error(),
		}).Error("google: failed to get campaign metrics from API")
		return nil, err
	}

	return factoryRawMetrics(&result.Metrics), nil
}

// ExecuteDecision aplica a decisão na campanha. Diferente do Meta, o Google
// expõe controle de lance, então bid_adjustment vira um bid modifier real.
func (s *GoogleIntegrator) ExecuteDecision(externalID string, action *domain.CampaignAction) (*domain.DecisionResult, error) {
	switch action.Type {
	case domain.DecisionBidAdjustment:
		// Ajuste percentual vira modificador multiplicativo: -10% => 0.9
		modifier := 1 + action.Payload.Adjustment/100
		if err := s.Client.SetBidModifier(externalID, modifier); err != nil {
			return nil, err
		}
		return &domain.DecisionResult{
			Success: true,
			Detail:  fmt.Sprintf("modificador de lance ajustado para %.2f", modifier),
		}, nil

	case domain.DecisionBudgetReallocation:
		return s.applyBudgetAdjustment(externalID, action.Payload.Adjustment)

	case domain.DecisionPauseCampaign:
		if err := s.Client.SetCampaignStatus(externalID, "PAUSED"); err != nil {
			return nil, err
		}
		return &domain.DecisionResult{Success: true, Detail: "campanha pausada"}, nil

	default:
		logrus.WithFields(logrus.Fields{
			"external_id":   externalID,
			"decision_type": action.Type,
		}).Warn("google: unknown decision type")
		return &domain.DecisionResult{
			Success: false,
			Detail:  fmt.Sprintf("tipo de decisão desconhecido: %s", action.Type),
		}, nil
	}
}

func (s *GoogleIntegrator) applyBudgetAdjustment(externalID string, percent float64) (*domain.DecisionResult, error) {
	campaign, err := s.Client.GetCampaign(externalID)
	if err != nil {
		return nil, err
	}

	currentMicros, err := strconv.ParseInt(campaign.CampaignBudget.AmountMicros, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter orçamento da campanha %s: %w", externalID, err)
	}

	newMicros := int64(float64(currentMicros) * (1 + percent/100))
	if err := s.Client.UpdateCampaignBudget(campaign.CampaignBudget.ResourceName, newMicros); err != nil {
		return nil, err
	}

	return &domain.DecisionResult{
		Success: true,
		Detail:  fmt.Sprintf("orçamento diário ajustado de %.2f para %.2f", float64(currentMicros)/1e6, float64(newMicros)/1e6),
	}, nil
}

// factoryRawMetrics converte o bloco de métricas da API, com inteiros em
// string e custo em micros, para os contadores do domínio.
func factoryRawMetrics(metrics *googledomain.CampaignMetrics) *domain.RawMetrics {
	raw := &domain.RawMetrics{
		Conversions: metrics.Conversions,
		Revenue:     metrics.ConversionsValue,
	}

	raw.Impressions = parseCounter(metrics.Impressions, "impressions")
	raw.Clicks = parseCounter(metrics.Clicks, "clicks")
	raw.Spend = parseCounter(metrics.CostMicros, "cost_micros") / 1e6

	return raw
}

func parseCounter(value, field string) float64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("google: error converting counter to float")
		return 0
	}

	return parsed
}
