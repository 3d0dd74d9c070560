package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	"github.com/BruksfildServices01/semijoias-crm/internal/middleware"
	ucAdmin "github.com/BruksfildServices01/semijoias-crm/internal/usecase/admin"
)

type AuthHandler struct {
	login *ucAdmin.Login
	users admin.Repository
}

func NewAuthHandler(login *ucAdmin.Login, users admin.Repository) *AuthHandler {
	return &AuthHandler{login: login, users: users}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	sess, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "internal_error", "Erro ao entrar.")
		return
	}
	httpresp.OK(c, sess)
}

// Me devolve o usuário do token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	u, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return
	}
	httpresp.OK(c, u)
}
