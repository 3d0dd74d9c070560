package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/validators"
)

const MinPasswordLength = 6

var (
	ErrUserNotFound     = httperr.ErrBusiness("user_not_found")
	ErrInvalidEmail     = httperr.ErrBusiness("invalid_email")
	ErrInvalidDomain    = httperr.ErrBusiness("invalid_email_domain")
	ErrWeakPassword     = httperr.ErrBusiness("weak_password")
	ErrLastAdmin        = httperr.ErrBusiness("last_admin")
	ErrNameRequired     = httperr.ErrBusiness("name_required")
	ErrCannotDeleteSelf = httperr.ErrBusiness("cannot_delete_self")
)

// DomainCheck valida se o domínio do e-mail recebe mensagens.
type DomainCheck func(email string) bool

type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type UserPatch struct {
	Name     *string
	Password *string
	Role     *domain.Role
	Active   *bool
}

type Users struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	domainCheck DomainCheck
}

func NewUsers(repo domain.Repository, audit *audit.Dispatcher, check DomainCheck) *Users {
	if check == nil {
		check = validators.IsEmailDomainValid
	}
	return &Users{
		repo:        repo,
		audit:       audit,
		domainCheck: check,
	}
}

func (s *Users) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Users) Create(ctx context.Context, in NewUser) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailFormatValid(email) {
		return nil, ErrInvalidEmail
	}
	if !s.domainCheck(email) {
		return nil, ErrInvalidDomain
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = domain.RoleViewer
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "admin_user_created",
		Entity:   "admin_user",
		EntityID: u.ID,
		Metadata: map[string]string{"role": string(u.Role)},
	})
	return u, nil
}

// Update não permite rebaixar ou desativar o último admin ativo.
func (s *Users) Update(ctx context.Context, id string, p UserPatch) (*domain.User, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	wasAdmin := u.Role == domain.RoleAdmin && u.Active

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}
	if p.Role != nil {
		if _, err := domain.ParseRole(string(*p.Role)); err != nil {
			return nil, err
		}
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
	if p.Password != nil {
		if len(*p.Password) < MinPasswordLength {
			return nil, ErrWeakPassword
		}
		hash, err := HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if wasAdmin && (u.Role != domain.RoleAdmin || !u.Active) {
		if err := s.ensureAnotherAdmin(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "admin_user_updated",
		Entity:   "admin_user",
		EntityID: u.ID,
	})
	return u, nil
}

func (s *Users) Delete(ctx context.Context, id string) error {
	if id == audit.ActorFrom(ctx) {
		return ErrCannotDeleteSelf
	}
	u, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == domain.RoleAdmin && u.Active {
		if err := s.ensureAnotherAdmin(ctx, u.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "admin_user_deleted",
		Entity:   "admin_user",
		EntityID: id,
	})
	return nil
}

func (s *Users) get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Users) ensureAnotherAdmin(ctx context.Context, exceptID string) error {
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.ID != exceptID && u.Role == domain.RoleAdmin && u.Active {
			return nil
		}
	}
	return ErrLastAdmin
}
