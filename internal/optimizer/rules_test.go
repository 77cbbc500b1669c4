package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

func defaultThresholds() config.OptimizationRules {
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

func TestRuleEvaluator_Evaluate(t *testing.T) {
	evaluator := NewRuleEvaluator(defaultThresholds())

	campaign := &domain.Campaign{
		ID:          "CMP001",
		Name:        "Campanha de Leads",
		Platform:    domain.PlatformMeta,
		DailyBudget: 100,
	}

	morning := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		kpis     *domain.CampaignKPIs
		now      time.Time
		expected []domain.DecisionType
	}{
		{
			name: "Campanha saudável - nenhuma ação",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 500, Spend: 10, Conversions: 2},
				CPL:        30,
				ROAS:       3.0,
				CTR:        2.0,
			},
			now:      morning,
			expected: []domain.DecisionType{},
		},
		{
			name: "Todas as condições violadas pela manhã - quatro ações na ordem das regras",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 2000, Spend: 85, Conversions: 15},
				CPL:        60,
				ROAS:       1.5,
				CTR:        0.5,
			},
			now: morning,
			expected: []domain.DecisionType{
				domain.DecisionBidAdjustment,
				domain.DecisionBudgetReallocation,
				domain.DecisionCreativeRefresh,
				domain.DecisionPacingAdjustment,
			},
		},
		{
			name: "Mesmas métricas à noite - pacing não dispara após o horário limite",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 2000, Spend: 85, Conversions: 15},
				CPL:        60,
				ROAS:       1.5,
				CTR:        0.5,
			},
			now: evening,
			expected: []domain.DecisionType{
				domain.DecisionBidAdjustment,
				domain.DecisionBudgetReallocation,
				domain.DecisionCreativeRefresh,
			},
		},
		{
			name: "CPL exatamente no limite - regra não dispara",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 500, Spend: 50, Conversions: 1},
				CPL:        50,
				ROAS:       3.0,
				CTR:        2.0,
			},
			now:      morning,
			expected: []domain.DecisionType{},
		},
		{
			name: "ROAS baixo com poucas conversões - sem volume estatístico, não dispara",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 500, Spend: 20, Conversions: 5},
				CPL:        4,
				ROAS:       0.5,
				CTR:        2.0,
			},
			now:      morning,
			expected: []domain.DecisionType{},
		},
		{
			name: "CTR baixo com poucas impressões - sem volume estatístico, não dispara",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Impressions: 800, Spend: 10, Conversions: 2},
				CPL:        5,
				ROAS:       3.0,
				CTR:        0.2,
			},
			now:      morning,
			expected: []domain.DecisionType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := evaluator.Evaluate(campaign, tt.kpis, tt.now)

			types := make([]domain.DecisionType, 0, len(actions))
			for _, a := range actions {
				types = append(types, a.Type)
			}

			assert.Equal(t, tt.expected, types)
		})
	}
}

func TestRuleEvaluator_ActionPayloads(t *testing.T) {
	evaluator := NewRuleEvaluator(defaultThresholds())

	campaign := &domain.Campaign{ID: "CMP002", Name: "Campanha B", DailyBudget: 100}
	kpis := &domain.CampaignKPIs{
		RawMetrics: domain.RawMetrics{Impressions: 2000, Spend: 85, Conversions: 15},
		CPL:        60,
		ROAS:       1.5,
		CTR:        0.5,
	}

	actions := evaluator.Evaluate(campaign, kpis, time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	assert.Len(t, actions, 4)

	bid := actions[0]
	assert.Equal(t, "decrease_bid", bid.Payload.Action)
	assert.Equal(t, -10.0, bid.Payload.Adjustment)
	assert.Contains(t, bid.Reason, "60.00")

	budget := actions[1]
	assert.Equal(t, "reduce_budget", budget.Payload.Action)
	assert.Equal(t, -20.0, budget.Payload.Adjustment)

	// Ações consultivas carregam apenas a recomendação
	creative := actions[2]
	assert.True(t, creative.Type.Advisory())
	assert.Equal(t, "refresh_creatives", creative.Payload.Action)
	assert.Zero(t, creative.Payload.Adjustment)

	pacing := actions[3]
	assert.True(t, pacing.Type.Advisory())
	assert.Equal(t, "adjust_pacing", pacing.Payload.Action)
}
