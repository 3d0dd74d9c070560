package client

import "context"

type Repository interface {
	// List devolve todos os clientes, mais recentes primeiro.
	List(ctx context.Context) ([]Client, error)

	Search(ctx context.Context, query string) ([]Client, error)

	Get(ctx context.Context, id string) (*Client, error)

	Create(ctx context.Context, c *Client) error

	Update(ctx context.Context, c *Client) error

	// Delete remove o cliente junto com etiquetas e cobranças pendentes.
	Delete(ctx context.Context, id string) error
}
