package ordem

import (
	"context"

	"github.com/ordensapp/ordens-api/internal/audit"
	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

// Campos nil ficam intocados (update parcial)
type UpdateOrdemInput struct {
	NomeServico      *string
	DescricaoServico *string
	Valor            *float64
	Status           *string
}

type UpdateOrdem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrdem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrdem {
	return &UpdateOrdem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateOrdem) Execute(
	ctx context.Context,
	username string,
	ordemID uint,
	in UpdateOrdemInput,
) (*models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	changes := map[string]any{}
	if in.Status != nil {
		if err := domain.ValidateStatus(*in.Status); err != nil {
			return nil, err
		}
		changes["status"] = *in.Status
	}
	if in.NomeServico != nil {
		changes["nome_servico"] = *in.NomeServico
	}
	if in.DescricaoServico != nil {
		changes["descricao_servico"] = *in.DescricaoServico
	}
	if in.Valor != nil {
		changes["valor"] = *in.Valor
	}

	o, err := uc.repo.UpdateOrdemForUser(ctx, ordemID, user.ID,
		func(*models.Ordem) (map[string]any, error) {
			return changes, nil
		})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "ordem_updated",
		Entity:   "ordem",
		EntityID: &o.ID,
	})

	return o, nil
}
