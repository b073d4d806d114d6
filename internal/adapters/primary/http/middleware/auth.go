package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

const (
	ScopeRead  = "metadata:read"
	ScopeWrite = "metadata:write"
)

// Auth validates Bearer tokens signed with HS256 and enforces the scope the
// request method requires: GET and HEAD need metadata:read, everything else
// metadata:write. A write scope implies read. With enabled=false the
// middleware is a passthrough.
func Auth(enabled bool, secret string) gin.HandlerFunc {
	hmacSecret := []byte(secret)
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return hmacSecret, nil
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, keyFunc, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			log.WithError(err).Debug("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		required := ScopeWrite
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			required = ScopeRead
		}

		if !hasScope(claims, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient scope"})
			return
		}

		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set("subject", sub)
		}

		c.Next()
	}
}

func hasScope(claims jwt.MapClaims, required string) bool {
	raw, ok := claims["scopes"].([]interface{})
	if !ok {
		return false
	}
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s == required || (required == ScopeRead && s == ScopeWrite) {
			return true
		}
	}
	return false
}
