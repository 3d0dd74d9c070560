package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucCart "github.com/BruksfildServices01/semijoias-crm/internal/usecase/cart"
	ucCatalog "github.com/BruksfildServices01/semijoias-crm/internal/usecase/catalog"
)

// StoreHandler atende a vitrine pública: catálogo ativo e carrinho.
type StoreHandler struct {
	catalog *ucCatalog.Service
	carts   *ucCart.Service
}

func NewStoreHandler(catalog *ucCatalog.Service, carts *ucCart.Service) *StoreHandler {
	return &StoreHandler{catalog: catalog, carts: carts}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ======================================================
// VITRINE
// ======================================================

// Products aceita ?search=, ?category= e ?price=min-max.
func (h *StoreHandler) Products(c *gin.Context) {
	products, err := h.catalog.Storefront(c.Request.Context(), domain.Filter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category"),
		PriceRange: c.Query("price"),
	})
	if err != nil {
		fail(c, err, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}
	httpresp.List(c, products)
}

func (h *StoreHandler) Product(c *gin.Context) {
	p, err := h.catalog.StorefrontProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}
	httpresp.OK(c, p)
}

func (h *StoreHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_categories", "Erro ao listar categorias.")
		return
	}
	active := make([]domain.Category, 0, len(cats))
	for _, cat := range cats {
		if cat.Active {
			active = append(active, cat)
		}
	}
	httpresp.List(c, active)
}

// ======================================================
// CARRINHO
// ======================================================

func (h *StoreHandler) CreateCart(c *gin.Context) {
	sum, err := h.carts.Create(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_create_cart", "Erro ao criar carrinho.")
		return
	}
	httpresp.Created(c, sum)
}

func (h *StoreHandler) GetCart(c *gin.Context) {
	sum, err := h.carts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_get_cart", "Erro ao carregar carrinho.")
		return
	}
	httpresp.OK(c, sum)
}

func (h *StoreHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	sum, err := h.carts.Add(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		fail(c, err, "failed_to_update_cart", "Erro ao atualizar carrinho.")
		return
	}
	httpresp.OK(c, sum)
}

func (h *StoreHandler) UpdateItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	sum, err := h.carts.UpdateQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"), req.Quantity)
	if err != nil {
		fail(c, err, "failed_to_update_cart", "Erro ao atualizar carrinho.")
		return
	}
	httpresp.OK(c, sum)
}

func (h *StoreHandler) RemoveItem(c *gin.Context) {
	sum, err := h.carts.Remove(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		fail(c, err, "failed_to_update_cart", "Erro ao atualizar carrinho.")
		return
	}
	httpresp.OK(c, sum)
}

func (h *StoreHandler) ClearCart(c *gin.Context) {
	sum, err := h.carts.Clear(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_update_cart", "Erro ao atualizar carrinho.")
		return
	}
	httpresp.OK(c, sum)
}

func (h *StoreHandler) Checkout(c *gin.Context) {
	session, err := h.carts.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_checkout", "Erro ao finalizar compra.")
		return
	}
	httpresp.OK(c, session)
}
