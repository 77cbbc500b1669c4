package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

func TestBackfillOutcomeQuery(t *testing.T) {
	t.Run("Back-fill atualiza somente metrics_after e success", func(t *testing.T) {
		metricsAfter, err := json.Marshal(&domain.CampaignKPIs{
			RawMetrics: domain.RawMetrics{Spend: 120},
			ROAS:       2.4,
		})
		assert.NoError(t, err)

		query, args, err := backfillOutcomeQuery(7, metricsAfter, true)

		assert.NoError(t, err)
		assert.Equal(t, "UPDATE decisions SET metrics_after = $1, success = $2 WHERE id = $3", query)
		assert.Equal(t, []interface{}{metricsAfter, true, 7}, args)

		// As colunas imutáveis do ledger ficam fora do UPDATE
		assert.NotContains(t, query, "reason")
		assert.NotContains(t, query, "action_taken")
		assert.NotContains(t, query, "metrics_before")
	})

	t.Run("Back-fill sem métricas grava metrics_after nulo", func(t *testing.T) {
		query, args, err := backfillOutcomeQuery(7, nil, false)

		assert.NoError(t, err)
		assert.Contains(t, query, "metrics_after = $1")
		assert.Nil(t, args[0])
		assert.Equal(t, false, args[1])
	})
}

func TestSaveDecisionQuery(t *testing.T) {
	t.Run("Decisão de plataforma sem campanha insere campaign_id nulo", func(t *testing.T) {
		decision := &domain.Decision{
			CampaignID:  nil,
			Type:        domain.DecisionPauseCampaign,
			Reason:      "mudança incompatível anunciada pela plataforma",
			ActionTaken: json.RawMessage(`{"action":"pause_campaign"}`),
			Success:     false,
		}

		query, args, err := saveDecisionQuery(decision, nil)

		assert.NoError(t, err)
		assert.Contains(t, query, "INSERT INTO decisions")
		assert.Contains(t, query, "campaign_id")

		var campaignID *string
		assert.Equal(t, campaignID, args[0])
	})

	t.Run("Inserção nunca preenche metrics_after", func(t *testing.T) {
		campaignID := "CMP001"
		decision := &domain.Decision{
			CampaignID:  &campaignID,
			Type:        domain.DecisionBidAdjustment,
			Reason:      "CPL acima do limite",
			ActionTaken: json.RawMessage(`{"action":"decrease_bid","adjustment":-10}`),
			Success:     true,
		}

		query, _, err := saveDecisionQuery(decision, []byte(`{"spend":10}`))

		assert.NoError(t, err)
		assert.NotContains(t, query, "metrics_after")
	})
}
