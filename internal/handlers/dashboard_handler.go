package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucDashboard "github.com/BruksfildServices01/semijoias-crm/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *ucDashboard.GetSummary
}

func NewDashboardHandler(summary *ucDashboard.GetSummary) *DashboardHandler {
	return &DashboardHandler{summary: summary}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	sum, err := h.summary.Execute(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_load_dashboard", "Erro ao carregar o painel.")
		return
	}
	httpresp.OK(c, sum)
}
