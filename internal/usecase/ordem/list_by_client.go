package ordem

import (
	"context"

	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type ListOrdensByClient struct {
	repo domain.Repository
}

func NewListOrdensByClient(repo domain.Repository) *ListOrdensByClient {
	return &ListOrdensByClient{repo: repo}
}

func (uc *ListOrdensByClient) Execute(
	ctx context.Context,
	username string,
	clientID uint,
) ([]models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	return uc.repo.ListOrdensForClient(ctx, clientID, user.ID)
}
