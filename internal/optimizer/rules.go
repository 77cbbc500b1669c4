package optimizer

import (
	"fmt"
	"time"

	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

// RuleEvaluator avalia o conjunto fixo de regras de otimização sobre os KPIs
// de uma campanha. As regras são independentes entre si e avaliadas sempre na
// mesma ordem; mais de uma pode disparar na mesma passada. A avaliação não
// tem efeitos colaterais: o despacho é responsabilidade de outra camada.
type RuleEvaluator struct {
	thresholds config.OptimizationRules
	rules      []rule
}

type ruleInput struct {
	campaign *domain.Campaign
	kpis     *domain.CampaignKPIs
	now      time.Time
}

type rule struct {
	name      string
	triggered func(in ruleInput) bool
	action    func(in ruleInput) domain.CampaignAction
}

func NewRuleEvaluator(thresholds config.OptimizationRules) *RuleEvaluator {
	e := &RuleEvaluator{thresholds: thresholds}

	// A ordem da lista é a ordem de avaliação e de despacho
	e.rules = []rule{
		{
			name: "high_cost_per_lead",
			triggered: func(in ruleInput) bool {
				return in.kpis.CPL > thresholds.MaxCPL
			},
			action: func(in ruleInput) domain.CampaignAction {
				return domain.CampaignAction{
					Type:   domain.DecisionBidAdjustment,
					Reason: fmt.Sprintf("CPL de R$%.2f acima do limite de R$%.2f", in.kpis.CPL, thresholds.MaxCPL),
					Payload: domain.ActionPayload{
						Action:     "decrease_bid",
						Adjustment: thresholds.BidDecreasePercent,
					},
				}
			},
		},
		{
			name: "low_return_on_ad_spend",
			triggered: func(in ruleInput) bool {
				return in.kpis.ROAS < thresholds.MinROAS && in.kpis.Conversions > thresholds.MinConversionsROAS
			},
			action: func(in ruleInput) domain.CampaignAction {
				return domain.CampaignAction{
					Type:   domain.DecisionBudgetReallocation,
					Reason: fmt.Sprintf("ROAS de %.2f abaixo do mínimo de %.2f com %.0f conversões", in.kpis.ROAS, thresholds.MinROAS, in.kpis.Conversions),
					Payload: domain.ActionPayload{
						Action:     "reduce_budget",
						Adjustment: thresholds.BudgetReducePercent,
					},
				}
			},
		},
		{
			name: "weak_engagement",
			triggered: func(in ruleInput) bool {
				return in.kpis.CTR < thresholds.MinCTR && in.kpis.Impressions > thresholds.MinImpressionsCTR
			},
			action: func(in ruleInput) domain.CampaignAction {
				return domain.CampaignAction{
					Type:   domain.DecisionCreativeRefresh,
					Reason: fmt.Sprintf("CTR de %.2f%% abaixo do mínimo de %.2f%% com %.0f impressões", in.kpis.CTR, thresholds.MinCTR, in.kpis.Impressions),
					Payload: domain.ActionPayload{
						Action: "refresh_creatives",
						Note:   "recomendação: renovar os criativos da campanha",
					},
				}
			},
		},
		{
			name: "fast_budget_burn",
			triggered: func(in ruleInput) bool {
				return in.kpis.Spend > in.campaign.DailyBudget*thresholds.BudgetPacingFraction &&
					in.now.Hour() < thresholds.PacingHourLimit
			},
			action: func(in ruleInput) domain.CampaignAction {
				return domain.CampaignAction{
					Type:   domain.DecisionPacingAdjustment,
					Reason: fmt.Sprintf("gasto de R$%.2f já consumiu mais de %.0f%% do orçamento diário de R$%.2f antes das %dh", in.kpis.Spend, thresholds.BudgetPacingFraction*100, in.campaign.DailyBudget, thresholds.PacingHourLimit),
					Payload: domain.ActionPayload{
						Action: "adjust_pacing",
						Note:   "recomendação: mudar para entrega uniforme ao longo do dia",
					},
				}
			},
		},
	}

	return e
}

// Evaluate retorna as ações disparadas para a campanha, na ordem fixa das
// regras. Zero ações é um resultado normal.
func (e *RuleEvaluator) Evaluate(campaign *domain.Campaign, kpis *domain.CampaignKPIs, now time.Time) []domain.CampaignAction {
	in := ruleInput{campaign: campaign, kpis: kpis, now: now}

	actions := make([]domain.CampaignAction, 0)
	for _, r := range e.rules {
		if r.triggered(in) {
			actions = append(actions, r.action(in))
		}
	}

	return actions
}
