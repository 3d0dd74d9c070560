package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// --------------------------------------------------
// Mapeamento código de negócio → HTTP
// --------------------------------------------------

var businessMessages = map[string]string{
	"invalid_request":         "Dados inválidos.",
	"no_recipients":           "Selecione pelo menos um cliente para enviar a notificação.",
	"empty_message":           "Digite uma mensagem para enviar.",
	"empty_subject":           "Digite um assunto para o email.",
	"invalid_channel":         "Canal de envio inválido.",
	"email_required":          "O email do cliente é obrigatório.",
	"name_required":           "O nome é obrigatório.",
	"invalid_amount":          "Valor inválido.",
	"invalid_days_to_send":    "Prazo de envio inválido.",
	"invalid_threshold":       "O período de inatividade deve estar entre 1 e 12 meses.",
	"invalid_tag_color":       "Cor de etiqueta inválida.",
	"invalid_role":            "Perfil de acesso inválido.",
	"client_not_found":        "Cliente não encontrado.",
	"tag_not_found":           "Etiqueta não encontrada.",
	"product_not_found":       "Produto não encontrado.",
	"billing_not_found":       "Cobrança não encontrada.",
	"cart_not_found":          "Carrinho não encontrado.",
	"empty_cart":              "O carrinho está vazio.",
	"client_without_email":    "O cliente não possui email.",
	"client_without_whatsapp": "O cliente não possui WhatsApp.",
	"description_required":    "A descrição é obrigatória.",
	"invalid_price_range":     "Faixa de preço inválida.",
	"already_sent":            "Esta cobrança já foi enviada.",
	"email_already_exists":    "Já existe um usuário com este email.",
	"checkout_unavailable":    "Pagamento online indisponível no momento.",
	"storage_unavailable":     "Armazenamento de imagens indisponível.",
	"invalid_image":           "Imagem inválida.",
	"invalid_automation":      "Automação desconhecida.",
	"invalid_credentials":     "Email ou senha inválidos.",
	"user_inactive":           "Usuário desativado.",
	"user_not_found":          "Usuário não encontrado.",
	"invalid_email":           "Email inválido.",
	"invalid_email_domain":    "O domínio do e-mail informado não parece ser válido.",
	"weak_password":           "A senha deve ter pelo menos 6 caracteres.",
	"last_admin":              "É preciso manter pelo menos um administrador ativo.",
	"cannot_delete_self":      "Você não pode remover o próprio usuário.",
}

func businessStatus(code string) int {
	switch code {
	case "client_not_found", "tag_not_found", "product_not_found",
		"billing_not_found", "cart_not_found", "user_not_found":
		return http.StatusNotFound
	case "email_already_exists", "already_sent", "last_admin":
		return http.StatusConflict
	case "invalid_credentials":
		return http.StatusUnauthorized
	case "user_inactive", "cannot_delete_self":
		return http.StatusForbidden
	case "checkout_unavailable", "storage_unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// WriteError traduz erros de negócio em 4xx; o resto vira 500 com fallbackCode.
func WriteError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := BusinessCode(err); ok {
		msg := businessMessages[code]
		if msg == "" {
			msg = code
		}
		Write(c, businessStatus(code), code, msg)
		return
	}

	if errors.Is(err, ErrNotFound) {
		NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	Internal(c, fallbackCode, fallbackMessage)
}
