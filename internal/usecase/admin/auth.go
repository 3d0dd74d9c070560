package admin

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
	"github.com/BruksfildServices01/semijoias-crm/internal/validators"
)

const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrUserInactive       = httperr.ErrBusiness("user_inactive")
)

type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type Login struct {
	repo   domain.Repository
	secret []byte
	clock  timezone.Clock
}

func NewLogin(repo domain.Repository, secret string, clock timezone.Clock) *Login {
	return &Login{
		repo:   repo,
		secret: []byte(secret),
		clock:  clock,
	}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	u, err := uc.repo.FindByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrUserInactive
	}

	token, err := IssueToken(uc.secret, u, uc.clock())
	if err != nil {
		return nil, err
	}
	return &Session{User: *u, Token: token}, nil
}

// IssueToken assina um HS256 com sub (id do usuário) e role.
func IssueToken(secret []byte, u *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
