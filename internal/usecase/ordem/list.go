package ordem

import (
	"context"

	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type ListOrdens struct {
	repo domain.Repository
}

func NewListOrdens(repo domain.Repository) *ListOrdens {
	return &ListOrdens{repo: repo}
}

// Execute lista todas as ordens do usuário; o predicado de ownership
// da query é a própria autorização.
func (uc *ListOrdens) Execute(
	ctx context.Context,
	username string,
) ([]models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	return uc.repo.ListOrdensForUser(ctx, user.ID)
}
