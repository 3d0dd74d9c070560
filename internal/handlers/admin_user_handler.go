package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucAdmin "github.com/BruksfildServices01/semijoias-crm/internal/usecase/admin"
)

type AdminUserHandler struct {
	users *ucAdmin.Users
}

func NewAdminUserHandler(users *ucAdmin.Users) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

type CreateAdminUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     admin.Role `json:"role"`
}

type UpdateAdminUserRequest struct {
	Name     *string     `json:"name"`
	Password *string     `json:"password"`
	Role     *admin.Role `json:"role"`
	Active   *bool       `json:"active"`
}

func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}
	httpresp.List(c, users)
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err), "invalid_request", "Dados inválidos.")
		return
	}

	u, err := h.users.Create(c.Request.Context(), ucAdmin.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}
	httpresp.Created(c, u)
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err), "invalid_request", "Dados inválidos.")
		return
	}

	u, err := h.users.Update(c.Request.Context(), c.Param("id"), ucAdmin.UserPatch{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		fail(c, err, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}
	httpresp.OK(c, u)
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "failed_to_delete_user", "Erro ao excluir usuário.")
		return
	}
	c.Status(http.StatusNoContent)
}
