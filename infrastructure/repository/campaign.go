package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

type CampaignRepository interface {
	Create(campaign *domain.Campaign) error
	GetByID(id string) (*domain.Campaign, error)
	ListByStatus(statuses []domain.CampaignStatus) ([]*domain.Campaign, error)
	UpdateStatus(id string, status domain.CampaignStatus) error
	UpdateDailyBudget(id string, dailyBudget float64) error
	ApplySpend(id string, spend float64) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "platform", "account_external_id", "external_id", "name", "objective", "status", "daily_budget", "metadata").
		Values(
			campaign.ID,
			campaign.Platform,
			campaign.AccountExternalID,
			campaign.ExternalID,
			campaign.Name,
			campaign.Objective,
			campaign.Status,
			campaign.DailyBudget,
			[]byte(campaign.Metadata),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.platform, c.account_external_id, c.external_id, c.name, c.objective, c.status, c.daily_budget, c.total_spend, c.metadata, c.created_at, c.updated_at").
		From(campaignsTable + " c").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign, err := r.scanCampaign(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListByStatus(statuses []domain.CampaignStatus) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.platform, c.account_external_id, c.external_id, c.name, c.objective, c.status, c.daily_budget, c.total_spend, c.metadata, c.created_at, c.updated_at").
		From(campaignsTable + " c").
		Where(squirrel.Eq{"c.status": statuses}).
		OrderBy("c.created_at ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := r.scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanhas: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) UpdateStatus(id string, status domain.CampaignStatus) error {
	return r.update(id, squirrel.
		Update(campaignsTable).
		Set("status", status))
}

func (r *campaignRepository) UpdateDailyBudget(id string, dailyBudget float64) error {
	return r.update(id, squirrel.
		Update(campaignsTable).
		Set("daily_budget", dailyBudget))
}

// ApplySpend acumula o gasto reportado pela plataforma no total da campanha
func (r *campaignRepository) ApplySpend(id string, spend float64) error {
	return r.update(id, squirrel.
		Update(campaignsTable).
		Set("total_spend", squirrel.Expr("total_spend + ?", spend)))
}

func (r *campaignRepository) update(id string, builder squirrel.UpdateBuilder) error {
	query, args, err := builder.
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("campanha não encontrada: %s", id)
	}

	return nil
}

func (r *campaignRepository) scanCampaign(row squirrel.RowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var metadata []byte

	err := row.Scan(
		&campaign.ID,
		&campaign.Platform,
		&campaign.AccountExternalID,
		&campaign.ExternalID,
		&campaign.Name,
		&campaign.Objective,
		&campaign.Status,
		&campaign.DailyBudget,
		&campaign.TotalSpend,
		&metadata,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.Metadata = metadata

	return campaign, nil
}
