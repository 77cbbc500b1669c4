package meta

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) CreateCampaign(req *domain.CreateCampaignRequest) (string, error) {
	externalID, err := s.Client.CreateCampaign(req.AccountExternalID, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_external_id": req.AccountExternalID,
			"campaign_name":       req.Name,
			"error":               err.Error(),
		}).Error("meta: failed to create campaign")
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"account_external_id": req.AccountExternalID,
		"external_id":         externalID,
	}).Debug("meta: campaign created")

	return externalID, nil
}

func (s *MetaIntegrator) GetCampaignMetrics(externalID string, filters *domain.MetricsFilters) (*domain.RawMetrics, error) {
	insight, err := s.Client.GetCampaignInsightsByID(externalID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"external_id": externalID,
			"error":       err.Error(),
		}).Error("meta: failed to get campaign insights from API")
		return nil, err
	}

	return factoryRawMetrics(insight), nil
}

// ExecuteDecision aplica a decisão na campanha. O Meta não expõe controle de
// lance por campanha nesta integração, então bid_adjustment é aceito como
// no-op com sucesso; apenas orçamento e status sofrem mutação de verdade.
func (s *MetaIntegrator) ExecuteDecision(externalID string, action *domain.CampaignAction) (*domain.DecisionResult, error) {
	switch action.Type {
	case domain.DecisionBidAdjustment:
		logrus.WithField("external_id", externalID).Debug("meta: bid adjustment is a no-op on this platform")
		return &domain.DecisionResult{
			Success: true,
			Detail:  "ajuste de lance não disponível no Meta, nenhuma mutação aplicada",
		}, nil

	case domain.DecisionBudgetReallocation:
		return s.applyBudgetAdjustment(externalID, action.Payload.Adjustment)

	case domain.DecisionPauseCampaign:
		if err := s.Client.UpdateCampaignStatus(externalID, "PAUSED"); err != nil {
			return nil, err
		}
		return &domain.DecisionResult{Success: true, Detail: "campanha pausada"}, nil

	default:
		logrus.WithFields(logrus.Fields{
			"external_id":   externalID,
			"decision_type": action.Type,
		}).Warn("meta: unknown decision type")
		return &domain.DecisionResult{
			Success: false,
			Detail:  fmt.Sprintf("tipo de decisão desconhecido: %s", action.Type),
		}, nil
	}
}

func (s *MetaIntegrator) applyBudgetAdjustment(externalID string, percent float64) (*domain.DecisionResult, error) {
	campaign, err := s.Client.GetCampaignByID(externalID)
	if err != nil {
		return nil, err
	}

	// daily_budget chega em centavos na Graph API
	currentCents, err := strconv.ParseFloat(campaign.DailyBudget, 64)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter orçamento diário da campanha %s: %w", externalID, err)
	}

	currentBudget := currentCents / 100
	newBudget := currentBudget * (1 + percent/100)

	if err := s.Client.UpdateCampaignBudget(externalID, newBudget); err != nil {
		return nil, err
	}

	return &domain.DecisionResult{
		Success: true,
		Detail:  fmt.Sprintf("orçamento diário ajustado de %.2f para %.2f", currentBudget, newBudget),
	}, nil
}

// factoryRawMetrics converte a linha de insights da Graph API, com seus
// contadores em string, para os contadores numéricos do domínio.
func factoryRawMetrics(insight *metadomain.CampaignInsight) *domain.RawMetrics {
	raw := &domain.RawMetrics{}

	raw.Impressions = parseCounter(insight.Impressions, "impressions")
	raw.Clicks = parseCounter(insight.Clicks, "clicks")
	raw.Spend = parseCounter(insight.Spend, "spend")

	for _, actionType := range metadomain.ConversionActionTypes {
		for _, action := range insight.Actions {
			if action.ActionType == actionType {
				raw.Conversions += parseCounter(action.Value, action.ActionType)
			}
		}
	}

	for _, action := range insight.ActionValues {
		if action.ActionType == metadomain.RevenueActionType {
			raw.Revenue += parseCounter(action.Value, "revenue")
		}
	}

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
		}).Warn("meta: error converting counter to float")
		return 0
	}

	return parsed
}
