package googleclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

var ErrCampaignNotFound = errors.New("campanha não encontrada no Google Ads")

type searchRequest struct {
	Query string `json:"query"`
}

func (c *GoogleClient) search(operation, query string) (*googledomain.SearchResult, error) {
	body, err := c.doRequest(operation, http.MethodPost, c.customerURL("/googleAds:search"), searchRequest{Query: query})
	if err != nil {
		return nil, err
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do googleAds:search")
		return nil, err
	}

	if len(response.Results) == 0 {
		return nil, ErrCampaignNotFound
	}

	return &response.Results[0], nil
}

func (c *GoogleClient) SearchCampaignMetrics(campaignID string, filters *domain.MetricsFilters) (*googledomain.SearchResult, error) {
	query := fmt.Sprintf(
		"SELECT campaign.id, metrics.impressions, metrics.clicks, metrics.cost_micros, "+
			"metrics.conversions, metrics.conversions_value "+
			"FROM campaign WHERE campaign.id = %s AND segments.date BETWEEN '%s' AND '%s'",
		campaignID,
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)

	return c.search("google.campaign_metrics", query)
}

func (c *GoogleClient) GetCampaign(campaignID string) (*googledomain.SearchResult, error) {
	query := fmt.Sprintf(
		"SELECT campaign.id, campaign.name, campaign.status, "+
			"campaign_budget.resource_name, campaign_budget.amount_micros "+
			"FROM campaign WHERE campaign.id = %s",
		campaignID,
	)

	return c.search("google.campaign_by_id", query)
}

func (c *GoogleClient) CreateCampaign(req *domain.CreateCampaignRequest) (string, error) {
	payload := map[string]any{
		"operations": []map[string]any{
			{
				"create": map[string]any{
					"name":                   req.Name,
					"status":                 "PAUSED", // Campanhas nascem pausadas até o operador ativar
					"advertisingChannelType": req.Objective,
					"campaignBudget": map[string]any{
						"amountMicros": int64(req.DailyBudget * 1e6),
					},
				},
			},
		},
	}

	body, err := c.doRequest("google.create_campaign", http.MethodPost, c.customerURL("/campaigns:mutate"), payload)
	if err != nil {
		return "", err
	}

	var response struct {
		Results []struct {
			ResourceName string `json:"resourceName"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de criação de campanha")
		return "", err
	}

	if len(response.Results) == 0 {
		return "", fmt.Errorf("resposta do Google Ads sem resource name de campanha")
	}

	return response.Results[0].ResourceName, nil
}

func (c *GoogleClient) UpdateCampaignBudget(budgetResourceName string, amountMicros int64) error {
	payload := map[string]any{
		"operations": []map[string]any{
			{
				"update": map[string]any{
					"resourceName": budgetResourceName,
					"amountMicros": amountMicros,
				},
				"updateMask": "amount_micros",
			},
		},
	}

	_, err := c.doRequest("google.update_budget", http.MethodPost, c.customerURL("/campaignBudgets:mutate"), payload)
	return err
}

func (c *GoogleClient) SetCampaignStatus(campaignID, status string) error {
	payload := map[string]any{
		"operations": []map[string]any{
			{
				"update": map[string]any{
					"resourceName": fmt.Sprintf("customers/%s/campaigns/%s", c.Cfg.Google.CustomerID, campaignID),
					"status":       status,
				},
				"updateMask": "status",
			},
		},
	}

	_, err := c.doRequest("google.set_status", http.MethodPost, c.customerURL("/campaigns:mutate"), payload)
	return err
}

// SetBidModifier aplica um modificador multiplicativo de lance na campanha
func (c *GoogleClient) SetBidModifier(campaignID string, modifier float64) error {
	payload := map[string]any{
		"operations": []map[string]any{
			{
				"create": map[string]any{
					"campaign":    fmt.Sprintf("customers/%s/campaigns/%s", c.Cfg.Google.CustomerID, campaignID),
					"bidModifier": modifier,
				},
			},
		},
	}

	_, err := c.doRequest("google.set_bid_modifier", http.MethodPost, c.customerURL("/campaignBidModifiers:mutate"), payload)
	return err
}
