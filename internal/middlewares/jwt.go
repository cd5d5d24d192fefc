package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/pkg/auth"
)

const identityKey = "identity"

// JWTAuth resolves the bearer token into a domain.Identity. Claims are trusted
// as-is; there is no store lookup per request.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		id, err := strconv.ParseUint(claims.Sub, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(identityKey, domain.Identity{
			UserID: uint(id),
			Email:  claims.Email,
			Role:   domain.Role(claims.Role),
		})
		c.Next()
	}
}

// RequireRole gates a route on the caller's role. Unknown roles fail closed.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := map[domain.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if !ident.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			return
		}
		if _, ok := allowed[ident.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity set by JWTAuth; zero value if unset.
func IdentityFrom(c *gin.Context) domain.Identity {
	v, _ := c.Get(identityKey)
	ident, _ := v.(domain.Identity)
	return ident
}
