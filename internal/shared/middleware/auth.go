package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/authz"
	"library-api/internal/shared/response"
	"library-api/pkg/jwt"
)

// SubjectKey is the gin context key holding the verified *authz.Subject.
const SubjectKey = "subject"

// TokenVerifier is satisfied by *jwt.Manager.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware verifies the bearer token. A missing, malformed or invalid
// token is rejected with the same 401 body as an ownership failure.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug().
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Msg("missing bearer token")
			AuthDenials.Inc()
			response.Unauthorized(c)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			log.Debug().
				Err(err).
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Msg("token rejected")
			AuthDenials.Inc()
			response.Unauthorized(c)
			return
		}

		c.Set(SubjectKey, &authz.Subject{ID: claims.ID, Email: claims.Email})
		c.Next()
	}
}

// RequireOwnerOrAdmin lets the request through only when the subject owns the
// record named by the path parameter or is the administrator.
func RequireOwnerOrAdmin(policy authz.Policy, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFromContext(c)
		if err := policy.Authorize(subject, c.Param(param)); err != nil {
			log.Info().
				Str("request_id", c.GetString("request_id")).
				Str("resource_id", c.Param(param)).
				Str("method", c.Request.Method).
				Msg("mutation denied")
			AuthDenials.Inc()
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// SubjectFromContext returns nil when the request carried no verified token.
func SubjectFromContext(c *gin.Context) *authz.Subject {
	v, ok := c.Get(SubjectKey)
	if !ok {
		return nil
	}
	s, _ := v.(*authz.Subject)
	return s
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
