package domain

import "time"

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type AlertType string

const (
	AlertHighCPL        AlertType = "high_cpl"
	AlertLowROAS        AlertType = "low_roas"
	AlertBudgetConsumed AlertType = "budget_near_exhaustion"
)

// Alert é um aviso produzido pelo avaliador de alertas. Alertas repetidos
// entre passadas não são deduplicados; a resolução acontece fora do loop de
// monitoramento, por ação do operador via API.
type Alert struct {
	ID         int           `json:"id"`
	CampaignID *string       `json:"campaign_id"`
	Type       AlertType     `json:"type"`
	Severity   AlertSeverity `json:"severity"`
	Message    string        `json:"message"`
	Resolved   bool          `json:"resolved"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
