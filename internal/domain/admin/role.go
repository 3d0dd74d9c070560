package admin

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

var ErrInvalidRole = httperr.ErrBusiness("invalid_role")

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleViewer:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// UnmarshalJSON recusa qualquer papel fora do enum.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidRole
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// CanWrite: admin e manager alteram dados; viewer só lê.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// Allows informa se r atende ao papel mínimo exigido.
func (r Role) Allows(required Role) bool {
	switch required {
	case RoleViewer:
		return r == RoleViewer || r.CanWrite()
	case RoleManager:
		return r.CanWrite()
	case RoleAdmin:
		return r.CanManageUsers()
	default:
		return false
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
