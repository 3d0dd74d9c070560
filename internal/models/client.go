package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente da loja; colunas seguem o cadastro original em português.
type Client struct {
	ID    string `gorm:"type:uuid;primaryKey"`
	Nome  string `gorm:"column:nome;not null"`
	Email string `gorm:"column:email;not null"`

	Telefone *string `gorm:"column:telefone"`
	WhatsApp *string `gorm:"column:whatsapp"`

	Endereco *string `gorm:"column:endereco"`
	Bairro   *string `gorm:"column:bairro"`
	Cidade   *string `gorm:"column:cidade"`
	Estado   *string `gorm:"column:estado"`
	CEP      *string `gorm:"column:cep"`

	DataNascimento *time.Time `gorm:"column:data_nascimento;type:date"`
	Profissao      *string    `gorm:"column:profissao"`
	Empresa        *string    `gorm:"column:empresa"`
	Observacoes    *string    `gorm:"column:observacoes"`

	UltimaCompra      *time.Time      `gorm:"column:ultima_compra;type:date"`
	ValorUltimaCompra decimal.Decimal `gorm:"column:valor_ultima_compra;type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string { return "clients" }
