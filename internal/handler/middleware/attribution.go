package middleware

import (
	"log/slog"
	"strings"

	"routine-checkout/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

const ctxCreatorCodeKey = "creator_code"

// AttributionMiddleware resolves the creator behind a request. Attribution is
// optional: a missing or invalid link token never blocks the request, it just
// downgrades it to organic traffic.
type AttributionMiddleware struct {
	tokens *token.Service
}

func NewAttributionMiddleware(tokens *token.Service) *AttributionMiddleware {
	return &AttributionMiddleware{tokens: tokens}
}

func (m *AttributionMiddleware) ResolveCreator() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := m.tokens.Parse(raw)
		if err != nil {
			slog.Debug("link token rejected, treating request as organic", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxCreatorCodeKey, claims.CreatorCode)
		c.Next()
	}
}

func GetCreatorCode(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxCreatorCodeKey)
	if !exists {
		return "", false
	}
	code, ok := v.(string)
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
