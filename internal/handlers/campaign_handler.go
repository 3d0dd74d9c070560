package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	ucAutomation "github.com/BruksfildServices01/semijoias-crm/internal/usecase/automation"
	ucCampaign "github.com/BruksfildServices01/semijoias-crm/internal/usecase/campaign"
)

// ======================================================
// HANDLER
// ======================================================

type CampaignHandler struct {
	send        *ucCampaign.SendCampaign
	automations *ucAutomation.Automations
}

func NewCampaignHandler(
	send *ucCampaign.SendCampaign,
	automations *ucAutomation.Automations,
) *CampaignHandler {
	return &CampaignHandler{
		send:        send,
		automations: automations,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SendCampaignRequest struct {
	TagFilter   string   `json:"tagFilter"`
	SelectedIDs []string `json:"selectedIds"`
	SelectAll   bool     `json:"selectAll"`
	Channel     string   `json:"channel"`
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
}

type AutomationRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Months  int    `json:"months"`
}

// ======================================================
// CAMPANHAS
// ======================================================

// Candidates lista os clientes do filtro ?tag= (vazio ou "all" = todos).
func (h *CampaignHandler) Candidates(c *gin.Context) {
	clients, err := h.send.Preview(c.Request.Context(), c.Query("tag"))
	if err != nil {
		fail(c, err, "failed_to_list_candidates", "Erro ao carregar clientes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *CampaignHandler) Send(c *gin.Context) {
	var req SendCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ch, err := domain.ParseChannel(req.Channel)
	if err != nil {
		fail(c, err, "invalid_channel", "Canal de envio inválido.")
		return
	}

	res, err := h.send.Execute(c.Request.Context(), domain.Request{
		TagFilter:   req.TagFilter,
		SelectedIDs: req.SelectedIDs,
		SelectAll:   req.SelectAll,
		Channel:     ch,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		fail(c, err, "failed_to_send_campaign", "Erro ao enviar campanha.")
		return
	}
	httpresp.OK(c, res)
}

// ======================================================
// AUTOMAÇÕES
// ======================================================

func (h *CampaignHandler) Templates(c *gin.Context) {
	httpresp.OK(c, h.automations.Templates())
}

func (h *CampaignHandler) RunAutomation(c *gin.Context) {
	var req AutomationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c)
			return
		}
	}

	run, err := h.automations.Execute(c.Request.Context(), ucAutomation.Request{
		Kind:    templates.Kind(c.Param("kind")),
		Subject: req.Subject,
		Message: req.Message,
		Months:  req.Months,
	})
	if err != nil {
		fail(c, err, "failed_to_run_automation", "Erro ao executar automação.")
		return
	}
	httpresp.OK(c, run)
}
