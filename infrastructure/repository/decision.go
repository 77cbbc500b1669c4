package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

const (
	decisionsTable = "decisions d"
)

// DecisionRepository é o ledger de decisões automatizadas. A tabela é
// append-only: depois de inserida, uma decisão só pode receber o resultado
// posterior (metrics_after e success) via BackfillOutcome; reason,
// action_taken e metrics_before nunca mudam.
type DecisionRepository interface {
	Save(decision *domain.Decision) error
	BackfillOutcome(id int, metricsAfter *domain.CampaignKPIs, success bool) error
	ListByCampaign(campaignID string, limit uint64) ([]*domain.Decision, error)
	ListRecent(limit uint64) ([]*domain.Decision, error)
}

type decisionRepository struct {
	conn *postgres.Connection
}

func NewDecisionRepository(conn *postgres.Connection) DecisionRepository {
	return &decisionRepository{
		conn: conn,
	}
}

func (r *decisionRepository) Save(decision *domain.Decision) error {
	var metricsBeforeJSON []byte
	var err error

	if decision.MetricsBefore != nil {
		metricsBeforeJSON, err = json.Marshal(decision.MetricsBefore)
		if err != nil {
			return errors.Wrap(err, "erro ao serializar metrics_before para JSON")
		}
	}

	query, args, err := saveDecisionQuery(decision, metricsBeforeJSON)
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := r.conn.QueryRow(query, args...).Scan(&decision.ID); err != nil {
		return errors.Wrap(err, "erro ao inserir decisão")
	}

	return nil
}

func saveDecisionQuery(decision *domain.Decision, metricsBeforeJSON []byte) (string, []interface{}, error) {
	return squirrel.
		Insert("decisions").
		Columns("campaign_id", "type", "reason", "action_taken", "metrics_before", "success").
		Values(
			decision.CampaignID,
			decision.Type,
			decision.Reason,
			[]byte(decision.ActionTaken),
			metricsBeforeJSON,
			decision.Success,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// BackfillOutcome preenche apenas metrics_after e success de uma decisão já
// registrada; as demais colunas permanecem intocadas.
func (r *decisionRepository) BackfillOutcome(id int, metricsAfter *domain.CampaignKPIs, success bool) error {
	var metricsAfterJSON []byte
	var err error

	if metricsAfter != nil {
		metricsAfterJSON, err = json.Marshal(metricsAfter)
		if err != nil {
			return errors.Wrap(err, "erro ao serializar metrics_after para JSON")
		}
	}

	query, args, err := backfillOutcomeQuery(id, metricsAfterJSON, success)
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao executar a query")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}

	if affected == 0 {
		return errors.Errorf("decisão não encontrada: %d", id)
	}

	return nil
}

func backfillOutcomeQuery(id int, metricsAfterJSON []byte, success bool) (string, []interface{}, error) {
	return squirrel.
		Update("decisions").
		Set("metrics_after", metricsAfterJSON).
		Set("success", success).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *decisionRepository) ListByCampaign(campaignID string, limit uint64) ([]*domain.Decision, error) {
	builder := r.selectDecisions().
		Where(squirrel.Eq{"d.campaign_id": campaignID})

	return r.queryDecisions(builder, limit)
}

func (r *decisionRepository) ListRecent(limit uint64) ([]*domain.Decision, error) {
	return r.queryDecisions(r.selectDecisions(), limit)
}

func (r *decisionRepository) selectDecisions() squirrel.SelectBuilder {
	return squirrel.
		Select("d.id, d.campaign_id, d.type, d.reason, d.action_taken, d.metrics_before, d.metrics_after, d.success, d.created_at").
		From(decisionsTable)
}

func (r *decisionRepository) queryDecisions(builder squirrel.SelectBuilder, limit uint64) ([]*domain.Decision, error) {
	query, args, err := builder.
		OrderBy("d.created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	decisions := make([]*domain.Decision, 0)
	for rows.Next() {
		decision, err := r.scanDecision(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear decisões")
		}
		decisions = append(decisions, decision)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return decisions, nil
}

func (r *decisionRepository) scanDecision(rows *sql.Rows) (*domain.Decision, error) {
	decision := &domain.Decision{}
	var actionTaken, metricsBeforeJSON, metricsAfterJSON []byte

	err := rows.Scan(
		&decision.ID,
		&decision.CampaignID,
		&decision.Type,
		&decision.Reason,
		&actionTaken,
		&metricsBeforeJSON,
		&metricsAfterJSON,
		&decision.Success,
		&decision.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	decision.ActionTaken = actionTaken

	if metricsBeforeJSON != nil {
		kpis := &domain.CampaignKPIs{}
		if err := json.Unmarshal(metricsBeforeJSON, kpis); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON de metrics_before")
		}
		decision.MetricsBefore = kpis
	}

	if metricsAfterJSON != nil {
		kpis := &domain.CampaignKPIs{}
		if err := json.Unmarshal(metricsAfterJSON, kpis); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON de metrics_after")
		}
		decision.MetricsAfter = kpis
	}

	return decision, nil
}
