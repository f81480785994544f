package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordensapp/ordens-api/internal/audit"
	"github.com/ordensapp/ordens-api/internal/auth"
	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
	"github.com/ordensapp/ordens-api/internal/ratelimit"
	"github.com/ordensapp/ordens-api/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	tokens  *auth.TokenService
	limiter *ratelimit.Limiter
	audit   *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	tokens *auth.TokenService,
	limiter *ratelimit.Limiter,
	auditDispatcher *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		tokens:  tokens,
		limiter: limiter,
		audit:   auditDispatcher,
	}
}

// substituível em teste; em produção faz resolução DNS real
var emailDomainValid = validators.IsEmailDomainValid

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	if !h.allow(c, "register:"+c.ClientIP()) {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !emailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao registrar usuário.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "user_already_exists", "Usuário já existe.")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao registrar usuário.")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// corrida com outro registro do mesmo username cai no unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "user_already_exists", "Usuário já existe.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Erro ao registrar usuário.")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !h.allow(c, "login:"+req.Username+":"+c.ClientIP()) {
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		// mesma resposta para usuário inexistente e senha errada
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "user_login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) allow(c *gin.Context, key string) bool {
	allowed, err := h.limiter.Allow(c.Request.Context(), key)
	if err != nil {
		// fail-open: Redis fora do ar não bloqueia autenticação
		return true
	}
	if !allowed {
		httperr.TooManyRequests(c, "too_many_attempts", "Muitas tentativas. Tente novamente em instantes.")
		return false
	}
	return true
}
