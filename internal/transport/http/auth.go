package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

const actorContextKey = "pharmacy.actor"

type actorClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ActorMiddleware resolves the authenticated actor from a Bearer token and
// stores it in the request context. Requests without a token proceed
// anonymously; changes made anonymously are persisted but not attributed in
// the audit trail. A malformed or badly signed token is rejected.
func ActorMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == header || raw == "" {
			respondError(c, http.StatusUnauthorized, errors.New("authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}
		claims := &actorClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, errors.New("invalid bearer token"))
			c.Abort()
			return
		}
		c.Set(actorContextKey, &ordersports.Actor{ID: claims.Subject, Name: claims.Name})
		c.Next()
	}
}

// actorFrom returns the authenticated actor, or nil for anonymous requests.
func actorFrom(c *gin.Context) *ordersports.Actor {
	value, ok := c.Get(actorContextKey)
	if !ok {
		return nil
	}
	actor, ok := value.(*ordersports.Actor)
	if !ok {
		return nil
	}
	return actor
}
