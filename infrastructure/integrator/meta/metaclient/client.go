package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/config"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

type Client interface {
	GetCampaignInsightsByID(campaignID string, filters *domain.MetricsFilters) (*metadomain.CampaignInsight, error)
	GetCampaignByID(campaignID string) (*metadomain.Campaign, error)
	CreateCampaign(accountID string, req *domain.CreateCampaignRequest) (string, error)
	UpdateCampaignBudget(campaignID string, dailyBudget float64) error
	UpdateCampaignStatus(campaignID, status string) error
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest executa uma requisição na Graph API com retry básico e
// tratamento do envelope de erro do Meta.
func (c *MetaClient) doRequest(operation, method, rawURL string, form url.Values) ([]byte, error) {
	var body []byte

	err := utils.WithRetry(operation, func() error {
		var req *http.Request
		var err error

		if method == http.MethodGet {
			req, err = http.NewRequest(method, rawURL, nil)
		} else {
			req, err = http.NewRequest(method, rawURL, strings.NewReader(form.Encode()))
			if req != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
		}
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = c.handleResponse(resp)
		return err
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// handleResponse lê o corpo e converte o envelope de erro do Meta em error
func (c *MetaClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.IsAuthError() {
			logrus.WithFields(logrus.Fields{
				"code":       errResp.Error.Code,
				"fbtrace_id": errResp.Error.FBTraceID,
				"error_type": errResp.Error.Type,
			}).Error("meta: authentication error from Graph API")
		}
		return nil, fmt.Errorf("erro da API do Meta: %s (código: %d)", errResp.Error.Message, errResp.Error.Code)
	}

	return nil, fmt.Errorf("erro da API do Meta: status %s", resp.Status)
}
