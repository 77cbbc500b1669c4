package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
	"github.com/vfg2006/campaign-optimizer-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-optimizer-api/pkg/apiErrors"
)

type UpdateBudgetRequest struct {
	DailyBudget float64 `json:"daily_budget"`
}

// CreateCampaign cria uma campanha na plataforma de anúncios e a registra
// localmente para monitoramento
func CreateCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCampaign")

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		campaign, err := service.CreateCampaign(&req)
		if err != nil {
			handleCampaignError(w, err, "Erro ao criar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(campaign)
	}
}

// ListCampaigns lista as campanhas registradas, com filtro opcional por status
// via query string (ex.: ?status=active,paused)
func ListCampaigns(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListCampaigns")

		var statuses []domain.CampaignStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				status := domain.CampaignStatus(strings.TrimSpace(s))
				if !status.Valid() {
					apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de campanha inválido: "+string(status), nil)
					return
				}
				statuses = append(statuses, status)
			}
		}

		campaigns, err := service.ListCampaigns(statuses)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar campanhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	}
}

// GetCampaign retorna uma campanha pelo ID
func GetCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCampaign")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		campaign, err := service.GetCampaign(id)
		if err != nil {
			handleCampaignError(w, err, "Erro ao consultar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// PauseCampaign pausa uma campanha ativa, registrando a decisão no ledger
func PauseCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return campaignTransition(service.PauseCampaign, "Erro ao pausar campanha")
}

// ActivateCampaign reativa uma campanha pausada
func ActivateCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return campaignTransition(service.ActivateCampaign, "Erro ao ativar campanha")
}

// ArchiveCampaign arquiva uma campanha. Campanhas nunca são removidas fisicamente
func ArchiveCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return campaignTransition(service.ArchiveCampaign, "Erro ao arquivar campanha")
}

func campaignTransition(fn func(id string) error, failureMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		if err := fn(id); err != nil {
			handleCampaignError(w, err, failureMsg)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// UpdateCampaignBudget ajusta o orçamento diário de referência da campanha
func UpdateCampaignBudget(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCampaignBudget")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		var req UpdateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.UpdateDailyBudget(id, req.DailyBudget); err != nil {
			handleCampaignError(w, err, "Erro ao atualizar orçamento")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// handleCampaignError mapeia erros do serviço de campanhas para respostas HTTP
func handleCampaignError(w http.ResponseWriter, err error, fallbackMsg string) {
	logrus.Error(err)

	switch {
	case errors.Is(err, campaigning.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, campaigning.ErrUnknownPlatform):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Plataforma desconhecida", nil)

	case errors.Is(err, campaigning.ErrInvalidBudget):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Orçamento diário inválido", nil)

	case errors.Is(err, campaigning.ErrInvalidStatusTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Transição de status inválida", nil)

	case errors.Is(err, campaigning.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMsg, nil)
	}
}
