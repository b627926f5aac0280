package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/account"
)

// AuthMiddleware validates bearer tokens and stores the account identity
// on the request context for handlers downstream.
type AuthMiddleware struct {
	accountUseCase *account.AccountUseCase
}

func NewAuthMiddleware(accountUseCase *account.AccountUseCase) *AuthMiddleware {
	return &AuthMiddleware{accountUseCase: accountUseCase}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := m.accountUseCase.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("token_claims", claims)
		c.Next()
	}
}
