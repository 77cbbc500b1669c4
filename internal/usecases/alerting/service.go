package alerting

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

var ErrAlertNotFound = errors.New("alerta não encontrado ou já resolvido")

type AlertService interface {
	ListUnresolved() ([]*domain.Alert, error)
	Resolve(id int) error
}

type Service struct {
	alertRepo repository.AlertRepository
}

func NewService(alertRepo repository.AlertRepository) AlertService {
	return &Service{alertRepo: alertRepo}
}

func (s *Service) ListUnresolved() ([]*domain.Alert, error) {
	return s.alertRepo.ListUnresolved()
}

func (s *Service) Resolve(id int) error {
	if err := s.alertRepo.Resolve(id); err != nil {
		logrus.WithFields(logrus.Fields{
			"alert_id": id,
			"error":    err.Error(),
		}).Warn("Erro ao resolver alerta")
		return ErrAlertNotFound
	}

	return nil
}
