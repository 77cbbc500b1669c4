package domain

import (
	"encoding/json"
	"time"
)

// DecisionType é o tipo de ação corretiva produzida pelo avaliador de regras
type DecisionType string

const (
	DecisionBidAdjustment      DecisionType = "bid_adjustment"
	DecisionBudgetReallocation DecisionType = "budget_reallocation"
	DecisionCreativeRefresh    DecisionType = "creative_refresh"
	DecisionPacingAdjustment   DecisionType = "pacing_adjustment"
	DecisionPauseCampaign      DecisionType = "pause_campaign"
)

// Advisory indica que a decisão é apenas uma recomendação registrada no
// ledger, sem chamada de mutação na plataforma.
func (t DecisionType) Advisory() bool {
	return t == DecisionCreativeRefresh || t == DecisionPacingAdjustment
}

// ActionPayload descreve a mutação a ser aplicada na plataforma
type ActionPayload struct {
	Action     string  `json:"action"`
	Adjustment float64 `json:"adjustment,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// CampaignAction é o descritor produzido pelo avaliador de regras, ainda
// não despachado nem registrado.
type CampaignAction struct {
	Type    DecisionType  `json:"type"`
	Reason  string        `json:"reason"`
	Payload ActionPayload `json:"payload"`
}

// DecisionResult é o retorno da plataforma para um despacho
type DecisionResult struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// Decision é o registro imutável de auditoria de uma ação automatizada.
// Após inseridos, reason, action_taken e metrics_before nunca mudam; apenas
// metrics_after e success podem ser preenchidos por uma passada posterior.
// CampaignID nulo indica um evento de plataforma sem campanha associada.
type Decision struct {
	ID            int             `json:"id"`
	CampaignID    *string         `json:"campaign_id"`
	Type          DecisionType    `json:"type"`
	Reason        string          `json:"reason"`
	ActionTaken   json.RawMessage `json:"action_taken"`
	MetricsBefore *CampaignKPIs   `json:"metrics_before,omitempty"`
	MetricsAfter  *CampaignKPIs   `json:"metrics_after,omitempty"`
	Success       bool            `json:"success"`
	CreatedAt     time.Time       `json:"created_at"`
}
