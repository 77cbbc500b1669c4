package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-optimizer-api/pkg/utils"
)

// GetCampaignSnapshots retorna a série histórica de KPIs diários de uma
// campanha no intervalo solicitado (?start_date=2026-08-01&end_date=2026-08-29)
func GetCampaignSnapshots(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCampaignSnapshots")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, formato esperado: 2006-01-02", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, formato esperado: 2006-01-02", nil)
			return
		}

		// Sem intervalo explícito, retorna os últimos 30 dias
		if endDate.IsZero() {
			*endDate = time.Now().Truncate(24 * time.Hour)
		}
		if startDate.IsZero() {
			*startDate = endDate.AddDate(0, 0, -30)
		}

		snapshots, err := service.CampaignSnapshots(campaignID, *startDate, *endDate)
		if err != nil {
			if err == reporting.ErrInvalidDateRange {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Intervalo de datas inválido", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar histórico de métricas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshots)
	}
}

// GetCampaignDecisions retorna o histórico de decisões de uma campanha
func GetCampaignDecisions(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCampaignDecisions")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		decisions, err := service.CampaignDecisions(campaignID, parseLimit(r))
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar decisões da campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(decisions)
	}
}

// GetRecentDecisions retorna as decisões mais recentes de todas as campanhas
func GetRecentDecisions(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRecentDecisions")

		decisions, err := service.RecentDecisions(parseLimit(r))
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar decisões recentes", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(decisions)
	}
}

func parseLimit(r *http.Request) uint64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return limit
}
