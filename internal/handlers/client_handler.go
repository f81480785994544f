package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordensapp/ordens-api/internal/audit"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/httpresp"
	"github.com/ordensapp/ordens-api/internal/models"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{
		db:    db,
		audit: auditDispatcher,
	}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Telefone string `json:"telefone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type UpdateClientRequest struct {
	Nome     *string `json:"nome,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
}

// --------- Handlers ---------

func (h *ClientHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := models.Client{
		UserID:   user.ID,
		Nome:     req.Nome,
		Telefone: req.Telefone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("user_id = ?", user.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(nome) LIKE ? OR telefone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	clientID, ok := parseID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND user_id = ?", clientID, user.ID).
		First(&client).Error; err != nil {

		httperr.NotFound(c, "resource_not_found", "Cliente não encontrado.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	clientID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	changes := map[string]any{}
	if req.Nome != nil {
		changes["nome"] = *req.Nome
	}
	if req.Telefone != nil {
		changes["telefone"] = *req.Telefone
	}
	if req.Email != nil {
		changes["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	// lookup e escrita na mesma transação, com a linha travada; um
	// delete concorrente não vê este update recriar o cliente
	var client models.Client
	err := h.db.Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", clientID, user.ID).
			First(&client).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("resource_not_found")
			}
			return err
		}

		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&client).Updates(changes).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, "resource_not_found") {
			httperr.NotFound(c, "resource_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

// Delete remove o cliente e todas as suas ordens na mesma transação.
func (h *ClientHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	clientID, ok := parseID(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var client models.Client
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", clientID, user.ID).
			First(&client).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("resource_not_found")
			}
			return err
		}

		if err := tx.
			Where("client_id = ?", client.ID).
			Delete(&models.Ordem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&client).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, "resource_not_found") {
			httperr.NotFound(c, "resource_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &clientID,
	})

	c.JSON(http.StatusOK, gin.H{"msg": "Cliente removido com sucesso."})
}

// --------- Helpers ---------

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
