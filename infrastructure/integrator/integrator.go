package integrator

import (
	"errors"
	"fmt"

	"github.com/vfg2006/campaign-optimizer-api/internal/domain"
)

var ErrUnknownPlatform = errors.New("plataforma de anúncios desconhecida")

// PlatformAdapter é o conjunto de capacidades que toda plataforma de
// anúncios integrada precisa expor. As diferenças entre plataformas ficam
// encapsuladas nas implementações; o despachante só conhece esta interface.
type PlatformAdapter interface {
	// CreateCampaign cria a campanha na plataforma e retorna o id nativo
	CreateCampaign(req *domain.CreateCampaignRequest) (string, error)

	// GetCampaignMetrics busca os contadores brutos da campanha no período
	GetCampaignMetrics(externalID string, filters *domain.MetricsFilters) (*domain.RawMetrics, error)

	// ExecuteDecision aplica uma ação corretiva na campanha. Tipos de
	// decisão conhecidos nunca retornam erro de validação; tipos
	// desconhecidos retornam Success=false sem derrubar a passada.
	ExecuteDecision(externalID string, action *domain.CampaignAction) (*domain.DecisionResult, error)
}

// Registry resolve o adapter pela plataforma da campanha
type Registry map[domain.Platform]PlatformAdapter

func (r Registry) ForPlatform(platform domain.Platform) (PlatformAdapter, error) {
	adapter, ok := r[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	return adapter, nil
}
