package campaign

import (
	"html"
	"strings"
)

const emailFooter = "Esta mensagem foi enviada através do seu sistema de gerenciamento de clientes."

// Personalize troca {nome} pelo nome do cliente.
func Personalize(text, name string) string {
	return strings.ReplaceAll(text, Placeholder, name)
}

// RenderEmailHTML monta o corpo do email: saudação, mensagem escapada com
// quebras em <br> e o rodapé padrão.
func RenderEmailHTML(name, message string) string {
	body := html.EscapeString(Personalize(message, name))
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "<br>")

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #7c3aed;">Olá, `)
	b.WriteString(html.EscapeString(name))
	b.WriteString(`!</h2>`)
	b.WriteString(`<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	b.WriteString(body)
	b.WriteString(`</div>`)
	b.WriteString(`<p style="color: #64748b; font-size: 14px;">`)
	b.WriteString(emailFooter)
	b.WriteString(`</p></div>`)
	return b.String()
}

func RenderWhatsApp(name, message string) string {
	return "Olá, " + name + "!\n\n" + Personalize(message, name)
}
