package metaclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

type ResponseCampaignInsight struct {
	Data   []metadomain.CampaignInsight `json:"data"`
	Paging metadomain.Paging            `json:"paging"`
}

var ErrNoInsightData = errors.New("nenhum insight encontrado para a campanha")

func (c *MetaClient) GetCampaignInsightsByID(campaignID string, filters *domain.MetricsFilters) (*metadomain.CampaignInsight, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, campaignID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", filters.StartDate.Format(time.DateOnly), filters.EndDate.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", "account_id,account_name,campaign_name,campaign_id,spend,impressions,clicks,actions,action_values,objective")
	params.Add("time_range", timeRange)
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest("meta.campaign_insights", http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var response ResponseCampaignInsight
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights da campanha")
		return nil, err
	}

	logrus.Debugf("meta insights response: %s", utils.PrettyJson(body))

	// Dia sem veiculação não vira snapshot zerado: a campanha é pulada
	// nesta passada e fica registrada no log de falhas do monitor
	if len(response.Data) == 0 {
		return nil, ErrNoInsightData
	}

	return &response.Data[0], nil
}
