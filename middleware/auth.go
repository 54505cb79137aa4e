package middleware

import (
	"net/http"
	"strings"

	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextEmail = "email"
	ContextRole  = "role"
)

// Authenticator checks a session token.
type Authenticator interface {
	Authenticate(token string) (*utils.Claims, error)
}

// RequireAuth demands a bearer token on every request except the public
// prefixes. Websocket upgrades may pass the token as ?token= since browsers
// cannot set headers on them.
func RequireAuth(auth Authenticator, public ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range public {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, ok := bearerToken(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := auth.Authenticate(token)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}
