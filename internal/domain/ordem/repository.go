package ordem

import (
	"context"

	"github.com/ordensapp/ordens-api/internal/models"
)

// Repository é o porto de persistência das ordens. Toda consulta de
// cliente/ordem já carrega o filtro de ownership na própria query;
// não existe lookup por id sem o dono.
type Repository interface {
	// -------- User --------
	GetUserByUsername(
		ctx context.Context,
		username string,
	) (*models.User, error)

	// -------- Client (ownership direto) --------
	GetClientForUser(
		ctx context.Context,
		clientID uint,
		userID uint,
	) (*models.Client, error)

	// -------- Ordem (ownership transitivo via client) --------
	CreateOrdem(
		ctx context.Context,
		userID uint,
		o *models.Ordem,
	) error

	GetOrdemForUser(
		ctx context.Context,
		ordemID uint,
		userID uint,
	) (*models.Ordem, error)

	// UpdateOrdemForUser carrega a ordem com filtro de ownership, trava a
	// linha e aplica as mudanças devolvidas por apply, tudo na mesma
	// transação. apply recebe o estado corrente e devolve as colunas a
	// gravar; mapa vazio significa nenhuma escrita.
	UpdateOrdemForUser(
		ctx context.Context,
		ordemID uint,
		userID uint,
		apply func(o *models.Ordem) (map[string]any, error),
	) (*models.Ordem, error)

	ListOrdensForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Ordem, error)

	ListOrdensForClient(
		ctx context.Context,
		clientID uint,
		userID uint,
	) ([]models.Ordem, error)
}
