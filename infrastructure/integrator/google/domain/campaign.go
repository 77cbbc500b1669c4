package googledomain

// CampaignMetrics é o bloco de métricas retornado pelo relatório da API do
// Google Ads. Inteiros de 64 bits chegam como string no JSON da API.
type CampaignMetrics struct {
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	CostMicros       string  `json:"costMicros"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
}

type Campaign struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
}

type CampaignBudget struct {
	ResourceName string `json:"resourceName"`
	AmountMicros string `json:"amountMicros"`
}

// SearchResult é uma linha do googleAds:search
type SearchResult struct {
	Campaign       Campaign        `json:"campaign"`
	CampaignBudget CampaignBudget  `json:"campaignBudget"`
	Metrics        CampaignMetrics `json:"metrics"`
}

type SearchResponse struct {
	Results       []SearchResult `json:"results"`
	NextPageToken string         `json:"nextPageToken"`
}

// ErrorResponse é o envelope de erro padrão das APIs do Google
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
