package metadomain

type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
}

// CampaignInsight é a linha de insights retornada pela Graph API. Todos os
// contadores chegam como string e são convertidos no integrador.
type CampaignInsight struct {
	AccountID    string   `json:"account_id"`
	AccountName  string   `json:"account_name"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Clicks       string   `json:"clicks"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Impressions  string   `json:"impressions"`
	Objective    string   `json:"objective"`
	Spend        string   `json:"spend"`
}

// Tipos de ação da Graph API que contam como conversão para o otimizador
var ConversionActionTypes = []string{"lead", "purchase"}

// RevenueActionType é o tipo de ação cujo valor monetário vira receita
const RevenueActionType = "purchase"
