package domain

import (
	"math"
	"time"

	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

// RawMetrics são os contadores brutos retornados pelas plataformas de
// anúncios para uma campanha em um dia.
type RawMetrics struct {
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// CampaignKPIs agrega os contadores brutos e os KPIs derivados calculados
// por NormalizeMetrics.
type CampaignKPIs struct {
	RawMetrics

	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CPL            float64 `json:"cpl"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	ConversionRate float64 `json:"conversion_rate"`
}

// MetricsSnapshot é a fotografia das métricas de uma campanha em um dia.
// Unicidade garantida por (campaign_id, date); uma nova passada do monitor
// sobrescreve a linha do dia em vez de duplicá-la.
type MetricsSnapshot struct {
	ID         int           `json:"id"`
	CampaignID string        `json:"campaign_id"`
	Date       time.Time     `json:"date"`
	KPIs       *CampaignKPIs `json:"kpis"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// MetricsFilters delimita o período consultado nas plataformas e no banco
type MetricsFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// NormalizeMetrics deriva os KPIs a partir dos contadores brutos. Função
// pura e total: qualquer entrada finita produz saída finita, denominador
// zero produz KPI zero. Contadores negativos ou não-finitos são tratados
// como zero.
func NormalizeMetrics(raw RawMetrics) *CampaignKPIs {
	raw.Impressions = sanitizeCounter(raw.Impressions)
	raw.Clicks = sanitizeCounter(raw.Clicks)
	raw.Conversions = sanitizeCounter(raw.Conversions)
	raw.Spend = sanitizeCounter(raw.Spend)
	raw.Revenue = sanitizeCounter(raw.Revenue)

	kpis := &CampaignKPIs{RawMetrics: raw}

	if raw.Impressions > 0 {
		kpis.CTR = utils.RoundWithTwoDecimalPlace(raw.Clicks / raw.Impressions * 100)
	}

	if raw.Clicks > 0 {
		kpis.CPC = utils.RoundWithTwoDecimalPlace(raw.Spend / raw.Clicks)
		kpis.ConversionRate = utils.RoundWithTwoDecimalPlace(raw.Conversions / raw.Clicks * 100)
	}

	if raw.Conversions > 0 {
		// CPL e CPA compartilham a mesma fórmula: custo por ação de conversão
		costPerConversion := utils.RoundWithTwoDecimalPlace(raw.Spend / raw.Conversions)
		kpis.CPL = costPerConversion
		kpis.CPA = costPerConversion
	}

	if raw.Spend > 0 {
		kpis.ROAS = utils.RoundWithTwoDecimalPlace(raw.Revenue / raw.Spend)
	}

	return kpis
}

func sanitizeCounter(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
