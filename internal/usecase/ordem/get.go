package ordem

import (
	"context"

	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type GetOrdem struct {
	repo domain.Repository
}

func NewGetOrdem(repo domain.Repository) *GetOrdem {
	return &GetOrdem{repo: repo}
}

func (uc *GetOrdem) Execute(
	ctx context.Context,
	username string,
	ordemID uint,
) (*models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	o, err := uc.repo.GetOrdemForUser(ctx, ordemID, user.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("resource_not_found")
	}

	return o, nil
}
