package dispatcher

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

// ActionDispatcher aplica as ações produzidas pelo avaliador de regras na
// plataforma dona da campanha e registra cada uma no ledger de decisões.
// Falhas de plataforma são isoladas por decisão: a decisão é registrada com
// success=false e as demais continuam.
type ActionDispatcher struct {
	adapters     integrator.Registry
	campaignRepo repository.CampaignRepository
	decisionRepo repository.DecisionRepository
}

func New(adapters integrator.Registry, campaignRepo repository.CampaignRepository, decisionRepo repository.DecisionRepository) *ActionDispatcher {
	return &ActionDispatcher{
		adapters:     adapters,
		campaignRepo: campaignRepo,
		decisionRepo: decisionRepo,
	}
}

// Dispatch processa as ações em ordem. Ações consultivas são apenas
// registradas; as demais são aplicadas via adapter da plataforma. O erro de
// retorno é reservado a falhas de escrita no ledger, que interrompem o
// pipeline da campanha.
func (d *ActionDispatcher) Dispatch(campaign *domain.Campaign, actions []domain.CampaignAction, metricsBefore *domain.CampaignKPIs) error {
	for _, action := range actions {
		success, detail := d.execute(campaign, &action)

		if err := d.record(campaign, &action, metricsBefore, success); err != nil {
			return err
		}

		if success && !action.Type.Advisory() {
			d.syncLocalState(campaign, &action)
		}

		logrus.WithFields(logrus.Fields{
			"campaign_id":   campaign.ID,
			"decision_type": action.Type,
			"success":       success,
			"detail":        detail,
		}).Info("Decisão processada")
	}

	return nil
}

// syncLocalState reflete na linha local da campanha a mutação que a
// plataforma confirmou. Falha aqui não invalida a decisão já registrada.
func (d *ActionDispatcher) syncLocalState(campaign *domain.Campaign, action *domain.CampaignAction) {
	var err error

	switch action.Type {
	case domain.DecisionBudgetReallocation:
		newBudget := campaign.DailyBudget * (1 + action.Payload.Adjustment/100)
		if err = d.campaignRepo.UpdateDailyBudget(campaign.ID, newBudget); err == nil {
			campaign.DailyBudget = newBudget
		}
	case domain.DecisionPauseCampaign:
		if err = d.campaignRepo.UpdateStatus(campaign.ID, domain.CampaignStatusPaused); err == nil {
			campaign.Status = domain.CampaignStatusPaused
		}
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id":   campaign.ID,
			"decision_type": action.Type,
			"error":         err.Error(),
		}).Error("Erro ao refletir decisão na campanha local")
	}
}

func (d *ActionDispatcher) execute(campaign *domain.Campaign, action *domain.CampaignAction) (bool, string) {
	if action.Type.Advisory() {
		return true, "ação consultiva, sem chamada de plataforma"
	}

	adapter, err := d.adapters.ForPlatform(campaign.Platform)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"platform":    campaign.Platform,
			"error":       err.Error(),
		}).Error("Plataforma sem adapter registrado")
		return false, err.Error()
	}

	result, err := adapter.ExecuteDecision(campaign.ExternalID, action)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id":   campaign.ID,
			"external_id":   campaign.ExternalID,
			"platform":      campaign.Platform,
			"decision_type": action.Type,
			"error":         err.Error(),
		}).Error("Erro ao executar decisão na plataforma")
		return false, err.Error()
	}

	return result.Success, result.Detail
}

func (d *ActionDispatcher) record(campaign *domain.Campaign, action *domain.CampaignAction, metricsBefore *domain.CampaignKPIs, success bool) error {
	actionTaken, err := json.Marshal(action.Payload)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar payload da ação")
	}

	campaignID := campaign.ID
	decision := &domain.Decision{
		CampaignID:    &campaignID,
		Type:          action.Type,
		Reason:        action.Reason,
		ActionTaken:   actionTaken,
		MetricsBefore: metricsBefore,
		Success:       success,
	}

	if err := d.decisionRepo.Save(decision); err != nil {
		return errors.Wrap(err, "erro ao registrar decisão no ledger")
	}

	return nil
}
