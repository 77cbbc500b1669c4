package googleclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	googledomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

type Client interface {
	SearchCampaignMetrics(campaignID string, filters *domain.MetricsFilters) (*googledomain.SearchResult, error)
	GetCampaign(campaignID string) (*googledomain.SearchResult, error)
	CreateCampaign(req *domain.CreateCampaignRequest) (string, error)
	UpdateCampaignBudget(budgetResourceName string, amountMicros int64) error
	SetCampaignStatus(campaignID, status string) error
	SetBidModifier(campaignID string, modifier float64) error
}

type GoogleClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest executa uma chamada na API do Google Ads com retry básico
func (c *GoogleClient) doRequest(operation, method, url string, payload any) ([]byte, error) {
	var reqBody []byte
	var err error

	if payload != nil {
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar payload: %w", err)
		}
	}

	var body []byte
	err = utils.WithRetry(operation, func() error {
		req, err := http.NewRequest(method, url, bytes.NewReader(reqBody))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("developer-token", c.Cfg.Google.DeveloperToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errResp googledomain.ErrorResponse
			if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error.Message != "" {
				return fmt.Errorf("erro da API do Google Ads: %s (status: %s)", errResp.Error.Message, errResp.Error.Status)
			}
			return fmt.Errorf("erro da API do Google Ads: status %s", resp.Status)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *GoogleClient) customerURL(suffix string) string {
	return fmt.Sprintf("%s/customers/%s%s", c.Cfg.Google.URL, c.Cfg.Google.CustomerID, suffix)
}
