package metaclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

// CreateCampaign cria uma campanha na conta de anúncios e retorna o id
// nativo gerado pela Graph API.
func (c *MetaClient) CreateCampaign(accountID string, req *domain.CreateCampaignRequest) (string, error) {
	baseURL := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, strings.TrimPrefix(accountID, "act_"))

	form := url.Values{}
	form.Add("name", req.Name)
	form.Add("objective", req.Objective)
	form.Add("status", "PAUSED") // Campanhas nascem pausadas até o operador ativar
	// A Graph API trabalha com valores monetários em centavos
	form.Add("daily_budget", strconv.Itoa(int(req.DailyBudget*100)))
	form.Add("special_ad_categories", "[]")
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest("meta.create_campaign", http.MethodPost, baseURL, form)
	if err != nil {
		return "", err
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de criação de campanha")
		return "", err
	}

	if response.ID == "" {
		return "", fmt.Errorf("resposta da Graph API sem id de campanha")
	}

	return response.ID, nil
}

// UpdateCampaignBudget altera o orçamento diário da campanha
func (c *MetaClient) UpdateCampaignBudget(campaignID string, dailyBudget float64) error {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, campaignID)

	form := url.Values{}
	form.Add("daily_budget", strconv.Itoa(int(dailyBudget*100)))
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	_, err := c.doRequest("meta.update_budget", http.MethodPost, baseURL, form)
	return err
}

// UpdateCampaignStatus altera o status da campanha (ACTIVE, PAUSED, ARCHIVED)
func (c *MetaClient) UpdateCampaignStatus(campaignID, status string) error {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, campaignID)

	form := url.Values{}
	form.Add("status", status)
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	_, err := c.doRequest("meta.update_status", http.MethodPost, baseURL, form)
	return err
}
