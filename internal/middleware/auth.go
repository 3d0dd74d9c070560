package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, _ := claims["sub"].(string)
		rawRole, _ := claims["role"].(string)
		role, err := admin.ParseRole(rawRole)
		if userID == "" || err != nil {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), userID))

		c.Next()
	}
}

// RequireRole bloqueia quem não atende ao papel mínimo.
func RequireRole(required admin.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		r, ok := role.(admin.Role)
		if !ok || !r.Allows(required) {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Sessão inválida. Faça login novamente.")
	c.Abort()
}
