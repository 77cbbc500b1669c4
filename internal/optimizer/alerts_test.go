package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

func TestAlertEvaluator_Evaluate(t *testing.T) {
	evaluator := NewAlertEvaluator(defaultThresholds())

	campaign := &domain.Campaign{
		ID:          "CMP001",
		Name:        "Campanha de Leads",
		DailyBudget: 100,
	}

	tests := []struct {
		name     string
		kpis     *domain.CampaignKPIs
		validate func(t *testing.T, alerts []domain.Alert)
	}{
		{
			name: "Campanha saudável - nenhum alerta",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Spend: 10, Conversions: 2},
				CPL:        30,
				ROAS:       3.0,
			},
			validate: func(t *testing.T, alerts []domain.Alert) {
				assert.Empty(t, alerts)
			},
		},
		{
			name: "CPL acima do limite - alerta de severidade warning",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Spend: 10, Conversions: 2},
				CPL:        75,
				ROAS:       3.0,
			},
			validate: func(t *testing.T, alerts []domain.Alert) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, domain.AlertHighCPL, alerts[0].Type)
				assert.Equal(t, domain.AlertSeverityWarning, alerts[0].Severity)
			},
		},
		{
			name: "ROAS baixo com volume - alerta crítico",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Spend: 40, Conversions: 20},
				CPL:        2,
				ROAS:       0.8,
			},
			validate: func(t *testing.T, alerts []domain.Alert) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, domain.AlertLowROAS, alerts[0].Type)
				assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
			},
		},
		{
			name: "Orçamento quase esgotado - alerta informativo a qualquer hora",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Spend: 90, Conversions: 2},
				CPL:        45,
				ROAS:       3.0,
			},
			validate: func(t *testing.T, alerts []domain.Alert) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, domain.AlertBudgetConsumed, alerts[0].Type)
				assert.Equal(t, domain.AlertSeverityInfo, alerts[0].Severity)
			},
		},
		{
			name: "Todas as condições violadas - três alertas com campaign_id preenchido",
			kpis: &domain.CampaignKPIs{
				RawMetrics: domain.RawMetrics{Spend: 90, Conversions: 15},
				CPL:        60,
				ROAS:       1.0,
			},
			validate: func(t *testing.T, alerts []domain.Alert) {
				assert.Len(t, alerts, 3)
				for _, alert := range alerts {
					if assert.NotNil(t, alert.CampaignID) {
						assert.Equal(t, "CMP001", *alert.CampaignID)
					}
					assert.False(t, alert.Resolved)
					assert.NotEmpty(t, alert.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, evaluator.Evaluate(campaign, tt.kpis))
		})
	}
}
