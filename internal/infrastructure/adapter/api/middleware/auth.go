package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	domainerr "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/auth"
)

// identityKey is the gin context key holding the resolved caller
const identityKey = "identity"

// Auth middleware resolves the Bearer token into an Identity and aborts
// unauthenticated requests
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthenticated,
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthenticated,
				Message: "Invalid or expired session token",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the resolved caller from the gin context. Returns nil
// on routes that skip the Auth middleware.
func IdentityFrom(c *gin.Context) *entity.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*entity.Identity)
	if !ok {
		return nil
	}
	return identity
}
