package ordem

import (
	"context"

	"github.com/ordensapp/ordens-api/internal/audit"
	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type CreateOrdemInput struct {
	ClientID         uint
	NomeServico      string
	DescricaoServico string
	Valor            float64
	Status           string
}

type CreateOrdem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrdem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrdem {
	return &CreateOrdem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateOrdem) Execute(
	ctx context.Context,
	username string,
	in CreateOrdemInput,
) (*models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	status := in.Status
	if status == "" {
		status = string(domain.InitialStatus())
	}
	if err := domain.ValidateStatus(status); err != nil {
		return nil, err
	}

	o := &models.Ordem{
		ClientID:         in.ClientID,
		NomeServico:      in.NomeServico,
		DescricaoServico: in.DescricaoServico,
		Valor:            in.Valor,
		Status:           status,
	}

	// o repositório resolve o cliente com filtro de ownership dentro
	// da mesma transação do insert
	if err := uc.repo.CreateOrdem(ctx, user.ID, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "ordem_created",
		Entity:   "ordem",
		EntityID: &o.ID,
	})

	return o, nil
}
