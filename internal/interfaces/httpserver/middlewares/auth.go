package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const (
	userIDContextKey    = "user_id"
	userEmailContextKey = "user_email"
)

// AuthMiddleware validates HMAC-signed bearer tokens issued by the user
// service and exposes the caller's identity to downstream handlers. Token
// issuance itself lives outside this service.
func AuthMiddleware(secret []byte, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn().Err(err).Str("path", c.FullPath()).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		subject, _ := claims.GetSubject()
		if subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
			return
		}

		c.Set(userIDContextKey, subject)
		if email, ok := claims["email"].(string); ok {
			c.Set(userEmailContextKey, email)
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}
