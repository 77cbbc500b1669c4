package optimizer

import (
	"fmt"

	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

// AlertEvaluator espelha as condições das regras de otimização, mas produz
// apenas avisos com severidade fixa por regra. Não há deduplicação contra
// alertas abertos: passadas consecutivas podem gerar alertas repetidos, e a
// resolução é responsabilidade do operador.
type AlertEvaluator struct {
	thresholds config.OptimizationRules
	rules      []alertRule
}

type alertRule struct {
	name      string
	triggered func(in ruleInput) bool
	alert     func(in ruleInput) domain.Alert
}

func NewAlertEvaluator(thresholds config.OptimizationRules) *AlertEvaluator {
	e := &AlertEvaluator{thresholds: thresholds}

	e.rules = []alertRule{
		{
			name: "high_cost_per_lead",
			triggered: func(in ruleInput) bool {
				return in.kpis.CPL > thresholds.MaxCPL
			},
			alert: func(in ruleInput) domain.Alert {
				return domain.Alert{
					Type:     domain.AlertHighCPL,
					Severity: domain.AlertSeverityWarning,
					Message:  fmt.Sprintf("campanha %s com CPL de R$%.2f, acima do limite de R$%.2f", in.campaign.Name, in.kpis.CPL, thresholds.MaxCPL),
				}
			},
		},
		{
			name: "low_return_on_ad_spend",
			triggered: func(in ruleInput) bool {
				return in.kpis.ROAS < thresholds.MinROAS && in.kpis.Conversions > thresholds.MinConversionsROAS
			},
			alert: func(in ruleInput) domain.Alert {
				return domain.Alert{
					Type:     domain.AlertLowROAS,
					Severity: domain.AlertSeverityCritical,
					Message:  fmt.Sprintf("campanha %s com ROAS de %.2f, abaixo do mínimo de %.2f", in.campaign.Name, in.kpis.ROAS, thresholds.MinROAS),
				}
			},
		},
		{
			name: "budget_near_exhaustion",
			triggered: func(in ruleInput) bool {
				return in.kpis.Spend > in.campaign.DailyBudget*thresholds.BudgetPacingFraction
			},
			alert: func(in ruleInput) domain.Alert {
				return domain.Alert{
					Type:     domain.AlertBudgetConsumed,
					Severity: domain.AlertSeverityInfo,
					Message:  fmt.Sprintf("campanha %s consumiu R$%.2f de um orçamento diário de R$%.2f", in.campaign.Name, in.kpis.Spend, in.campaign.DailyBudget),
				}
			},
		},
	}

	return e
}

// Evaluate retorna os alertas disparados para a campanha, com o campaign_id
// já preenchido.
func (e *AlertEvaluator) Evaluate(campaign *domain.Campaign, kpis *domain.CampaignKPIs) []domain.Alert {
	in := ruleInput{campaign: campaign, kpis: kpis}

	alerts := make([]domain.Alert, 0)
	for _, r := range e.rules {
		if r.triggered(in) {
			alert := r.alert(in)
			campaignID := campaign.ID
			alert.CampaignID = &campaignID
			alerts = append(alerts, alert)
		}
	}

	return alerts
}
