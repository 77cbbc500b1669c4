package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

const (
	metricsSnapshotsTable = "metrics_snapshots ms"
)

type MetricsSnapshotRepository interface {
	SaveOrUpdate(snapshot *domain.MetricsSnapshot) error
	GetByCampaignAndDate(campaignID string, date time.Time) (*domain.MetricsSnapshot, error)
	GetByDateRange(campaignID string, startDate, endDate time.Time) ([]*domain.MetricsSnapshot, error)
}

type metricsSnapshotRepository struct {
	conn *postgres.Connection
}

func NewMetricsSnapshotRepository(conn *postgres.Connection) MetricsSnapshotRepository {
	return &metricsSnapshotRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava a fotografia do dia. A chave (campaign_id, date) é
// única: uma nova passada do monitor no mesmo dia sobrescreve a linha, pois
// ela representa "as métricas do dia até esta passada".
func (r *metricsSnapshotRepository) SaveOrUpdate(snapshot *domain.MetricsSnapshot) error {
	var kpisJSON []byte
	var err error

	if snapshot.KPIs != nil {
		kpisJSON, err = json.Marshal(snapshot.KPIs)
		if err != nil {
			return fmt.Errorf("erro ao serializar KPIs para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("metrics_snapshots").
		Columns("campaign_id", "date", "kpis").
		Values(
			snapshot.CampaignID,
			snapshot.Date.Format("2006-01-02"),
			kpisJSON,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				kpis = EXCLUDED.kpis,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *metricsSnapshotRepository) GetByCampaignAndDate(campaignID string, date time.Time) (*domain.MetricsSnapshot, error) {
	query, args, err := squirrel.
		Select("ms.id, ms.campaign_id, ms.date, ms.kpis, ms.created_at, ms.updated_at").
		From(metricsSnapshotsTable).
		Where(squirrel.Eq{"ms.campaign_id": campaignID, "ms.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := r.scanSnapshot(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *metricsSnapshotRepository) GetByDateRange(campaignID string, startDate, endDate time.Time) ([]*domain.MetricsSnapshot, error) {
	query, args, err := squirrel.
		Select("ms.id, ms.campaign_id, ms.date, ms.kpis, ms.created_at, ms.updated_at").
		From(metricsSnapshotsTable).
		Where(squirrel.Eq{"ms.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"ms.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"ms.date": endDate.Format("2006-01-02")}).
		OrderBy("ms.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.MetricsSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *metricsSnapshotRepository) scanSnapshot(row squirrel.RowScanner) (*domain.MetricsSnapshot, error) {
	snapshot := &domain.MetricsSnapshot{}
	var kpisJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.CampaignID,
		&snapshot.Date,
		&kpisJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if kpisJSON != nil {
		kpis := &domain.CampaignKPIs{}
		if err := json.Unmarshal(kpisJSON, kpis); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de kpis: %w", err)
		}
		snapshot.KPIs = kpis
	}

	return snapshot, nil
}
