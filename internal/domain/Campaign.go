package domain

import (
	"encoding/json"
	"time"
)

// Platform identifica a plataforma de anúncios dona da campanha
type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
)

func (p Platform) Valid() bool {
	return p == PlatformMeta || p == PlatformGoogle
}

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusArchived CampaignStatus = "archived"
)

func (s CampaignStatus) Valid() bool {
	return s == CampaignStatusActive || s == CampaignStatusPaused || s == CampaignStatusArchived
}

// Campaign é a raiz de agregação do sistema. Campanhas nunca são removidas
// fisicamente, apenas arquivadas.
type Campaign struct {
	ID                string          `json:"id"`
	Platform          Platform        `json:"platform"`
	AccountExternalID string          `json:"account_external_id"`
	ExternalID        string          `json:"external_id"`
	Name              string          `json:"name"`
	Objective         string          `json:"objective"`
	Status            CampaignStatus  `json:"status"`
	DailyBudget       float64         `json:"daily_budget"`
	TotalSpend        float64         `json:"total_spend"`
	Metadata          json.RawMessage `json:"metadata,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Platform          Platform `json:"platform"`
	AccountExternalID string   `json:"account_external_id"`
	Name              string   `json:"name"`
	Objective         string   `json:"objective"`
	DailyBudget       float64  `json:"daily_budget"`
}
