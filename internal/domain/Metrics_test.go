package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawMetrics
		validate func(t *testing.T, kpis *CampaignKPIs)
	}{
		{
			name: "Campanha com contadores completos - deve calcular todos os KPIs",
			raw: RawMetrics{
				Impressions: 10000,
				Clicks:      250,
				Conversions: 10,
				Spend:       500,
				Revenue:     1500,
			},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Equal(t, 2.5, kpis.CTR)
				assert.Equal(t, 2.0, kpis.CPC)
				assert.Equal(t, 50.0, kpis.CPL)
				assert.Equal(t, 50.0, kpis.CPA)
				assert.Equal(t, 3.0, kpis.ROAS)
				assert.Equal(t, 4.0, kpis.ConversionRate)
			},
		},
		{
			name: "Campanha sem tráfego - denominadores zero produzem KPIs zero",
			raw:  RawMetrics{},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Zero(t, kpis.CTR)
				assert.Zero(t, kpis.CPC)
				assert.Zero(t, kpis.CPL)
				assert.Zero(t, kpis.CPA)
				assert.Zero(t, kpis.ROAS)
				assert.Zero(t, kpis.ConversionRate)
			},
		},
		{
			name: "Gasto sem conversões - CPL e CPA permanecem zero",
			raw: RawMetrics{
				Impressions: 5000,
				Clicks:      100,
				Spend:       300,
			},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Equal(t, 2.0, kpis.CTR)
				assert.Equal(t, 3.0, kpis.CPC)
				assert.Zero(t, kpis.CPL)
				assert.Zero(t, kpis.CPA)
				assert.Zero(t, kpis.ROAS)
			},
		},
		{
			name: "Contadores negativos - tratados como zero",
			raw: RawMetrics{
				Impressions: -100,
				Clicks:      -5,
				Spend:       -10,
			},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Zero(t, kpis.Impressions)
				assert.Zero(t, kpis.Clicks)
				assert.Zero(t, kpis.Spend)
				assert.Zero(t, kpis.CTR)
				assert.Zero(t, kpis.CPC)
			},
		},
		{
			name: "Contadores não-finitos - tratados como zero",
			raw: RawMetrics{
				Impressions: math.Inf(1),
				Clicks:      math.NaN(),
				Spend:       math.Inf(-1),
				Revenue:     100,
			},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Zero(t, kpis.Impressions)
				assert.Zero(t, kpis.Clicks)
				assert.Zero(t, kpis.Spend)
				assert.Zero(t, kpis.ROAS)
				assert.Equal(t, 100.0, kpis.Revenue)
			},
		},
		{
			name: "Divisões com dízima - arredondadas em duas casas",
			raw: RawMetrics{
				Impressions: 3000,
				Clicks:      100,
				Conversions: 3,
				Spend:       100,
				Revenue:     100,
			},
			validate: func(t *testing.T, kpis *CampaignKPIs) {
				assert.Equal(t, 3.33, kpis.CTR)
				assert.Equal(t, 33.33, kpis.CPL)
				assert.Equal(t, 1.0, kpis.ROAS)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpis := NormalizeMetrics(tt.raw)

			// Saída sempre finita, qualquer que seja a entrada
			for _, v := range []float64{kpis.CTR, kpis.CPC, kpis.CPL, kpis.CPA, kpis.ROAS, kpis.ConversionRate} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}

			tt.validate(t, kpis)
		})
	}
}

func TestNormalizeMetricsCPLEqualsCPA(t *testing.T) {
	kpis := NormalizeMetrics(RawMetrics{
		Impressions: 1000,
		Clicks:      50,
		Conversions: 7,
		Spend:       210,
	})

	// As duas métricas compartilham a mesma fórmula de custo por conversão
	assert.Equal(t, kpis.CPL, kpis.CPA)
	assert.Equal(t, 30.0, kpis.CPL)
}
