package reporting

import (
	"errors"
	"time"

	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

var ErrInvalidDateRange = errors.New("intervalo de datas inválido")

const defaultDecisionLimit = 50

type ReportService interface {
	CampaignSnapshots(campaignID string, startDate, endDate time.Time) ([]*domain.MetricsSnapshot, error)
	CampaignDecisions(campaignID string, limit uint64) ([]*domain.Decision, error)
	RecentDecisions(limit uint64) ([]*domain.Decision, error)
}

type Service struct {
	snapshotRepo repository.MetricsSnapshotRepository
	decisionRepo repository.DecisionRepository
}

func NewService(
	snapshotRepo repository.MetricsSnapshotRepository,
	decisionRepo repository.DecisionRepository,
) ReportService {
	return &Service{
		snapshotRepo: snapshotRepo,
		decisionRepo: decisionRepo,
	}
}

func (s *Service) CampaignSnapshots(campaignID string, startDate, endDate time.Time) ([]*domain.MetricsSnapshot, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	return s.snapshotRepo.GetByDateRange(campaignID, startDate, endDate)
}

func (s *Service) CampaignDecisions(campaignID string, limit uint64) ([]*domain.Decision, error) {
	if limit == 0 {
		limit = defaultDecisionLimit
	}

	return s.decisionRepo.ListByCampaign(campaignID, limit)
}

func (s *Service) RecentDecisions(limit uint64) ([]*domain.Decision, error) {
	if limit == 0 {
		limit = defaultDecisionLimit
	}

	return s.decisionRepo.ListRecent(limit)
}
