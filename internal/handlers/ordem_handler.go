package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/httpresp"
	"github.com/ordensapp/ordens-api/internal/middleware"
	ucOrdem "github.com/ordensapp/ordens-api/internal/usecase/ordem"
)

// ======================================================
// HANDLER
// ======================================================

type OrdemHandler struct {
	createUC       *ucOrdem.CreateOrdem
	getUC          *ucOrdem.GetOrdem
	listUC         *ucOrdem.ListOrdens
	listByClientUC *ucOrdem.ListOrdensByClient
	updateUC       *ucOrdem.UpdateOrdem
	updateStatusUC *ucOrdem.UpdateOrdemStatus
}

func NewOrdemHandler(
	createUC *ucOrdem.CreateOrdem,
	getUC *ucOrdem.GetOrdem,
	listUC *ucOrdem.ListOrdens,
	listByClientUC *ucOrdem.ListOrdensByClient,
	updateUC *ucOrdem.UpdateOrdem,
	updateStatusUC *ucOrdem.UpdateOrdemStatus,
) *OrdemHandler {
	return &OrdemHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		listByClientUC: listByClientUC,
		updateUC:       updateUC,
		updateStatusUC: updateStatusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrdemRequest struct {
	ClientID         uint    `json:"client_id" binding:"required"`
	NomeServico      string  `json:"nome_servico" binding:"required"`
	DescricaoServico string  `json:"descricao_servico"`
	Valor            float64 `json:"valor"`
	Status           string  `json:"status"`
}

type UpdateOrdemRequest struct {
	NomeServico      *string  `json:"nome_servico,omitempty"`
	DescricaoServico *string  `json:"descricao_servico,omitempty"`
	Valor            *float64 `json:"valor,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

type UpdateOrdemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *OrdemHandler) Create(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	var req CreateOrdemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	o, err := h.createUC.Execute(c.Request.Context(), username, ucOrdem.CreateOrdemInput{
		ClientID:         req.ClientID,
		NomeServico:      req.NomeServico,
		DescricaoServico: req.DescricaoServico,
		Valor:            req.Valor,
		Status:           req.Status,
	})
	if err != nil {
		writeOrdemError(c, err, "Erro ao criar ordem.")
		return
	}

	httpresp.Created(c, o)
}

func (h *OrdemHandler) Get(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	ordemID, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.getUC.Execute(c.Request.Context(), username, ordemID)
	if err != nil {
		writeOrdemError(c, err, "Erro ao buscar ordem.")
		return
	}

	httpresp.OK(c, o)
}

func (h *OrdemHandler) List(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	ordens, err := h.listUC.Execute(c.Request.Context(), username)
	if err != nil {
		writeOrdemError(c, err, "Erro ao listar ordens.")
		return
	}

	httpresp.List(c, ordens)
}

func (h *OrdemHandler) ListByClient(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	clientID, ok := parseID(c)
	if !ok {
		return
	}

	ordens, err := h.listByClientUC.Execute(c.Request.Context(), username, clientID)
	if err != nil {
		writeOrdemError(c, err, "Erro ao listar ordens.")
		return
	}

	httpresp.List(c, ordens)
}

func (h *OrdemHandler) Update(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	ordemID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrdemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	o, err := h.updateUC.Execute(c.Request.Context(), username, ordemID, ucOrdem.UpdateOrdemInput{
		NomeServico:      req.NomeServico,
		DescricaoServico: req.DescricaoServico,
		Valor:            req.Valor,
		Status:           req.Status,
	})
	if err != nil {
		writeOrdemError(c, err, "Erro ao atualizar ordem.")
		return
	}

	httpresp.OK(c, o)
}

func (h *OrdemHandler) UpdateStatus(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsername).(string)

	ordemID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrdemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	o, err := h.updateStatusUC.Execute(c.Request.Context(), username, ordemID, req.Status)
	if err != nil {
		writeOrdemError(c, err, "Erro ao atualizar status.")
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeOrdemError(c *gin.Context, err error, fallback string) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", fallback)
		return
	}

	switch be.Code {
	case "resource_not_found":
		httperr.NotFound(c, be.Code, "Recurso não encontrado.")
	case "invalid_status":
		httperr.BadRequest(c, be.Code, be.Message)
	case "user_not_found":
		httperr.Internal(c, be.Code, "Usuário não encontrado.")
	default:
		httperr.BadRequest(c, be.Code, fallback)
	}
}
