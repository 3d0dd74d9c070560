package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httpresp"
	ucClient "github.com/BruksfildServices01/semijoias-crm/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	list     *ucClient.ListClients
	get      *ucClient.GetClient
	create   *ucClient.CreateClient
	update   *ucClient.UpdateClient
	delete   *ucClient.DeleteClient
	segments *ucClient.ListSegments
	importer *ucClient.ImportClients
	exporter *ucClient.ExportClients
}

func NewClientHandler(
	list *ucClient.ListClients,
	get *ucClient.GetClient,
	create *ucClient.CreateClient,
	update *ucClient.UpdateClient,
	del *ucClient.DeleteClient,
	segments *ucClient.ListSegments,
	importer *ucClient.ImportClients,
	exporter *ucClient.ExportClients,
) *ClientHandler {
	return &ClientHandler{
		list:     list,
		get:      get,
		create:   create,
		update:   update,
		delete:   del,
		segments: segments,
		importer: importer,
		exporter: exporter,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// ClientRequest usa os nomes de campo do painel. Campos ausentes no PATCH
// ficam como estão.
type ClientRequest struct {
	Nome              *string          `json:"nome"`
	Email             *string          `json:"email"`
	Telefone          *string          `json:"telefone"`
	WhatsApp          *string          `json:"whatsapp"`
	Endereco          *string          `json:"endereco"`
	Bairro            *string          `json:"bairro"`
	Cidade            *string          `json:"cidade"`
	Estado            *string          `json:"estado"`
	CEP               *string          `json:"cep"`
	DataNascimento    *string          `json:"dataNascimento"`
	Profissao         *string          `json:"profissao"`
	Empresa           *string          `json:"empresa"`
	Observacoes       *string          `json:"observacoes"`
	UltimaCompra      *string          `json:"ultimaCompra"`
	ValorUltimaCompra *decimal.Decimal `json:"valorUltimaCompra"`
}

func (r ClientRequest) patch() domain.Patch {
	return domain.Patch{
		Name:               r.Nome,
		Email:              r.Email,
		Phone:              r.Telefone,
		WhatsApp:           r.WhatsApp,
		Street:             r.Endereco,
		Neighborhood:       r.Bairro,
		City:               r.Cidade,
		State:              r.Estado,
		PostalCode:         r.CEP,
		BirthDate:          r.DataNascimento,
		Profession:         r.Profissao,
		Employer:           r.Empresa,
		Notes:              r.Observacoes,
		LastPurchaseAt:     r.UltimaCompra,
		LastPurchaseAmount: r.ValorUltimaCompra,
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.list.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	var draft domain.Client
	req.patch().Apply(&draft)

	client, err := h.create.Execute(c.Request.Context(), draft)
	if err != nil {
		fail(c, err, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	client, err := h.update.Execute(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		fail(c, err, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// SEGMENTOS
// ======================================================

func (h *ClientHandler) Segments(c *gin.Context) {
	seg, err := h.segments.Execute(c.Request.Context(), queryInt(c, "months", 0))
	if err != nil {
		fail(c, err, "failed_to_load_segments", "Erro ao carregar segmentos.")
		return
	}
	httpresp.OK(c, seg)
}

// ======================================================
// CSV
// ======================================================

func (h *ClientHandler) Export(c *gin.Context) {
	body, err := h.exporter.Execute(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_export_clients", "Erro ao exportar clientes.")
		return
	}
	httpresp.CSV(c, "clientes.csv", body)
}

func (h *ClientHandler) Import(c *gin.Context) {
	raw, err := uploadedFile(c)
	if err != nil || len(raw) == 0 {
		invalidRequest(c)
		return
	}

	res, err := h.importer.Execute(c.Request.Context(), bytes.NewReader(raw))
	if err != nil {
		fail(c, err, "failed_to_import_clients", "Erro ao importar clientes.")
		return
	}
	httpresp.OK(c, res)
}
