package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/semijoias-crm/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ProductHandler struct {
	catalog *ucCatalog.Service
	upload  *ucCatalog.UploadImage
}

func NewProductHandler(catalog *ucCatalog.Service, upload *ucCatalog.UploadImage) *ProductHandler {
	return &ProductHandler{catalog: catalog, upload: upload}
}

// ======================================================
// PRODUTOS
// ======================================================

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}
	httpresp.List(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}
	httpresp.OK(c, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "failed_to_create_product", "Erro ao criar produto.")
		return
	}
	httpresp.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}
	httpresp.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "failed_to_delete_product", "Erro ao excluir produto.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.catalog.LowStock(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_low_stock", "Erro ao carregar estoque.")
		return
	}
	httpresp.List(c, products)
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	raw, err := uploadedFile(c)
	if err != nil || len(raw) == 0 {
		invalidRequest(c)
		return
	}

	img, err := h.upload.Execute(c.Request.Context(), c.Param("id"), raw, c.PostForm("altText"))
	if err != nil {
		fail(c, err, "failed_to_upload_image", "Erro ao enviar imagem.")
		return
	}
	httpresp.Created(c, img)
}

func (h *ProductHandler) Export(c *gin.Context) {
	body, err := h.catalog.Export(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_export_products", "Erro ao exportar produtos.")
		return
	}
	httpresp.CSV(c, "produtos.csv", body)
}

func (h *ProductHandler) Import(c *gin.Context) {
	raw, err := uploadedFile(c)
	if err != nil || len(raw) == 0 {
		invalidRequest(c)
		return
	}

	n, err := h.catalog.Import(c.Request.Context(), bytes.NewReader(raw))
	if err != nil {
		fail(c, err, "failed_to_import_products", "Erro ao importar produtos.")
		return
	}
	httpresp.OK(c, gin.H{"imported": n})
}

// ======================================================
// CATEGORIAS
// ======================================================

func (h *ProductHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_categories", "Erro ao listar categorias.")
		return
	}
	httpresp.List(c, cats)
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req domain.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	cat, err := h.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "failed_to_create_category", "Erro ao criar categoria.")
		return
	}
	httpresp.Created(c, cat)
}
