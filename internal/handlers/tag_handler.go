package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucTag "github.com/BruksfildServices01/semijoias-crm/internal/usecase/tag"
)

type TagHandler struct {
	tags *ucTag.Service
}

func NewTagHandler(tags *ucTag.Service) *TagHandler {
	return &TagHandler{tags: tags}
}

type CreateTagRequest struct {
	Name  string       `json:"name"`
	Color domain.Color `json:"color"`
}

type AddTagRequest struct {
	TagID string `json:"tagId" binding:"required"`
}

func (h *TagHandler) List(c *gin.Context) {
	httpresp.List(c, h.tags.Tags())
}

// Palette devolve as cores aceitas no formulário de etiqueta.
func (h *TagHandler) Palette(c *gin.Context) {
	httpresp.List(c, domain.Palette)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	t, err := h.tags.CreateTag(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		fail(c, err, "failed_to_create_tag", "Erro ao criar etiqueta.")
		return
	}
	httpresp.Created(c, t)
}

func (h *TagHandler) ClientTags(c *gin.Context) {
	view, err := h.tags.ClientView(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_load_tags", "Erro ao carregar etiquetas.")
		return
	}
	httpresp.OK(c, view)
}

func (h *TagHandler) AddToClient(c *gin.Context) {
	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	h.respondView(c, func(ctx context.Context) error {
		_, err := h.tags.AddTag(ctx, c.Param("id"), req.TagID)
		return err
	})
}

func (h *TagHandler) RemoveFromClient(c *gin.Context) {
	h.respondView(c, func(ctx context.Context) error {
		_, err := h.tags.RemoveTag(ctx, c.Param("id"), c.Param("tagId"))
		return err
	})
}

func (h *TagHandler) respondView(c *gin.Context, op func(ctx context.Context) error) {
	if err := op(c.Request.Context()); err != nil {
		fail(c, err, "failed_to_update_tags", "Erro ao atualizar etiquetas.")
		return
	}
	h.ClientTags(c)
}
