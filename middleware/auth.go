package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ownerContextKey = "ownerID"

// OwnerClaims is the JWT payload issued at login.
type OwnerClaims struct {
	OwnerID uint `json:"ownerId"`
	jwt.RegisteredClaims
}

// OwnerAuth validates the Bearer token and stores the owner id in the
// request context. Every resource route runs behind it.
func OwnerAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing_token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &OwnerClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.OwnerID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid_token"})
			return
		}

		c.Set(ownerContextKey, claims.OwnerID)
		c.Next()
	}
}

// OwnerID returns the authenticated owner id set by OwnerAuth.
func OwnerID(c *gin.Context) uint {
	if v, ok := c.Get(ownerContextKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
