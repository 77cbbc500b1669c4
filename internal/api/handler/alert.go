package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-optimizer-api/pkg/apiErrors"
)

// ListAlerts retorna os alertas ainda não resolvidos
func ListAlerts(service alerting.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListAlerts")

		alerts, err := service.ListUnresolved()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar alertas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alerts)
	}
}

// ResolveAlert marca um alerta como resolvido
func ResolveAlert(service alerting.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ResolveAlert")

		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if idStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do alerta não fornecido", nil)
			return
		}

		id, err := strconv.Atoi(idStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do alerta inválido", nil)
			return
		}

		if err := service.Resolve(id); err != nil {
			if errors.Is(err, alerting.ErrAlertNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Alerta não encontrado ou já resolvido", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao resolver alerta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}
