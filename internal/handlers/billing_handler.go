package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/billing"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucBilling "github.com/BruksfildServices01/semijoias-crm/internal/usecase/billing"
)

type BillingHandler struct {
	billing *ucBilling.Service
}

func NewBillingHandler(billing *ucBilling.Service) *BillingHandler {
	return &BillingHandler{billing: billing}
}

type CreateBillingRequest struct {
	ClientID    string          `json:"clientId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DaysToSend  int             `json:"daysToSend"`
	Message     string          `json:"message"`
}

func (h *BillingHandler) List(c *gin.Context) {
	items, err := h.billing.List(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_list_billing", "Erro ao listar cobranças.")
		return
	}
	httpresp.List(c, items)
}

func (h *BillingHandler) Create(c *gin.Context) {
	var req CreateBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	it, err := h.billing.Create(c.Request.Context(), domain.Item{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Description: req.Description,
		DaysToSend:  req.DaysToSend,
		Message:     req.Message,
	})
	if err != nil {
		fail(c, err, "failed_to_create_billing", "Erro ao criar cobrança.")
		return
	}
	httpresp.Created(c, it)
}

func (h *BillingHandler) Delete(c *gin.Context) {
	if err := h.billing.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "failed_to_delete_billing", "Erro ao excluir cobrança.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillingHandler) SendNow(c *gin.Context) {
	it, err := h.billing.SendNow(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_send_billing", "Erro ao enviar cobrança.")
		return
	}
	httpresp.OK(c, it)
}

// SendDue dispara todos os lembretes vencidos.
func (h *BillingHandler) SendDue(c *gin.Context) {
	res, err := h.billing.SendDueReminders(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_send_reminders", "Erro ao enviar lembretes.")
		return
	}
	httpresp.OK(c, res)
}
