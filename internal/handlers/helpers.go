package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/middleware"
	"github.com/ordensapp/ordens-api/internal/models"
)

// currentUser resolve o subject do token para a linha de users.
// Token válido sem usuário é anomalia de integridade, não erro do cliente.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	username := c.MustGet(middleware.ContextUsername).(string)

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Printf("integrity anomaly: valid token for missing user %q", username)
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return nil, false
	}

	return &user, true
}
