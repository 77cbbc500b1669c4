package campaigning

import "errors"

var (
	ErrCampaignNotFound        = errors.New("campanha não encontrada")
	ErrUnknownPlatform         = errors.New("plataforma desconhecida")
	ErrInvalidBudget           = errors.New("orçamento diário inválido")
	ErrInvalidStatusTransition = errors.New("transição de status inválida")
	ErrMissingRequiredData     = errors.New("dados obrigatórios ausentes")
)
