package ordem

import (
	"context"

	"github.com/ordensapp/ordens-api/internal/audit"
	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type UpdateOrdemStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrdemStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrdemStatus {
	return &UpdateOrdemStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateOrdemStatus) Execute(
	ctx context.Context,
	username string,
	ordemID uint,
	status string,
) (*models.Ordem, error) {

	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	// valida antes do lookup: status ilegal nunca toca o banco
	if err := domain.ValidateStatus(status); err != nil {
		return nil, err
	}

	var previous string
	o, err := uc.repo.UpdateOrdemForUser(ctx, ordemID, user.ID,
		func(cur *models.Ordem) (map[string]any, error) {
			previous = cur.Status
			return map[string]any{"status": status}, nil
		})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "ordem_status_changed",
		Entity:   "ordem",
		EntityID: &o.ID,
		Metadata: map[string]string{
			"from": previous,
			"to":   status,
		},
	})

	return o, nil
}
