package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

const (
	alertsTable = "alerts a"
)

type AlertRepository interface {
	Save(alert *domain.Alert) error
	ListUnresolved() ([]*domain.Alert, error)
	Resolve(id int) error
}

type alertRepository struct {
	conn *postgres.Connection
}

func NewAlertRepository(conn *postgres.Connection) AlertRepository {
	return &alertRepository{
		conn: conn,
	}
}

func (r *alertRepository) Save(alert *domain.Alert) error {
	query, args, err := squirrel.
		Insert("alerts").
		Columns("campaign_id", "type", "severity", "message").
		Values(alert.CampaignID, alert.Type, alert.Severity, alert.Message).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := r.conn.QueryRow(query, args...).Scan(&alert.ID); err != nil {
		return errors.Wrap(err, "erro ao inserir alerta")
	}

	return nil
}

func (r *alertRepository) ListUnresolved() ([]*domain.Alert, error) {
	query, args, err := squirrel.
		Select("a.id, a.campaign_id, a.type, a.severity, a.message, a.resolved, a.resolved_at, a.created_at").
		From(alertsTable).
		Where(squirrel.Eq{"a.resolved": false}).
		OrderBy("a.created_at DESC").
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

	alerts := make([]*domain.Alert, 0)
	for rows.Next() {
		alert, err := r.scanAlert(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear alertas")
		}
		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return alerts, nil
}

// Resolve marca o alerta como resolvido. A resolução parte do operador via
// API, nunca do loop de monitoramento.
func (r *alertRepository) Resolve(id int) error {
	query, args, err := squirrel.
		Update("alerts").
		Set("resolved", true).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "resolved": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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
		return errors.Errorf("alerta não encontrado ou já resolvido: %d", id)
	}

	return nil
}

func (r *alertRepository) scanAlert(rows *sql.Rows) (*domain.Alert, error) {
	alert := &domain.Alert{}

	err := rows.Scan(
		&alert.ID,
		&alert.CampaignID,
		&alert.Type,
		&alert.Severity,
		&alert.Message,
		&alert.Resolved,
		&alert.ResolvedAt,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return alert, nil
}
