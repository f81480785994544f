package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ordensapp/ordens-api/internal/domain/ordem"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

type OrdemGormRepository struct {
	db *gorm.DB
}

func NewOrdemGormRepository(db *gorm.DB) *OrdemGormRepository {
	return &OrdemGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *OrdemGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// GetClientForUser filtra id e dono na mesma query; "não existe" e
// "existe mas não é seu" são indistinguíveis.
func (r *OrdemGormRepository) GetClientForUser(
	ctx context.Context,
	clientID uint,
	userID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Ordem
// --------------------------------------------------

// CreateOrdem resolve o cliente com filtro de ownership e cria a ordem
// na mesma transação, travando a linha do cliente para que um delete
// concorrente não deixe ordem órfã.
func (r *OrdemGormRepository) CreateOrdem(
	ctx context.Context,
	userID uint,
	o *models.Ordem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var client models.Client
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", o.ClientID, userID).
			First(&client).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("resource_not_found")
			}
			return err
		}

		return tx.Create(o).Error
	})
}

func (r *OrdemGormRepository) GetOrdemForUser(
	ctx context.Context,
	ordemID uint,
	userID uint,
) (*models.Ordem, error) {

	var o models.Ordem
	if err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = ordens.client_id").
		Where("ordens.id = ? AND clients.user_id = ?", ordemID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateOrdemForUser faz o read-modify-write em uma única transação:
// a ordem é carregada já filtrada pelo dono e travada, de modo que um
// delete em cascata do cliente ou outro update concorrente serializa
// aqui em vez de ressuscitar ou sobrescrever a linha.
func (r *OrdemGormRepository) UpdateOrdemForUser(
	ctx context.Context,
	ordemID uint,
	userID uint,
	apply func(o *models.Ordem) (map[string]any, error),
) (*models.Ordem, error) {

	var o models.Ordem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Joins("JOIN clients ON clients.id = ordens.client_id").
			Where("ordens.id = ? AND clients.user_id = ?", ordemID, userID).
			First(&o).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("resource_not_found")
			}
			return err
		}

		changes, err := apply(&o)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		return tx.Model(&o).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *OrdemGormRepository) ListOrdensForUser(
	ctx context.Context,
	userID uint,
) ([]models.Ordem, error) {

	var ordens []models.Ordem
	if err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = ordens.client_id").
		Where("clients.user_id = ?", userID).
		Order("ordens.created_at DESC").
		Find(&ordens).Error; err != nil {
		return nil, err
	}

	return ordens, nil
}

func (r *OrdemGormRepository) ListOrdensForClient(
	ctx context.Context,
	clientID uint,
	userID uint,
) ([]models.Ordem, error) {

	var ordens []models.Ordem
	if err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = ordens.client_id").
		Where("ordens.client_id = ? AND clients.user_id = ?", clientID, userID).
		Order("ordens.created_at DESC").
		Find(&ordens).Error; err != nil {
		return nil, err
	}

	return ordens, nil
}

// Compile-time check
var _ domain.Repository = (*OrdemGormRepository)(nil)
