package metaclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetCampaignByID(campaignID string) (*metadomain.Campaign, error) {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, campaignID)

	params := url.Values{}
	params.Add("fields", "id,name,status,daily_budget")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest("meta.campaign_by_id", http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var campaign metadomain.Campaign
	if err := json.Unmarshal(body, &campaign); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON da campanha")
		return nil, err
	}

	return &campaign, nil
}
