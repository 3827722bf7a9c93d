package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActorKey is the gin context key holding the entities.Actor of the request.
const ActorKey = "actor"

var errInvalidToken = pkg.NewDomainErrorSimple("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)

// Claims carries the operator identity. The subject is the user id.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token valid for ttl.
func NewToken(secret string, actor entities.Actor, ttl time.Duration) (string, error) {
	claims := &Claims{
		Name: actor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenStr and returns the actor it identifies.
func ParseToken(secret, tokenStr string) (entities.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entities.Actor{}, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return entities.Actor{}, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return entities.Actor{}, errors.New("token without subject")
	}
	return entities.Actor{ID: claims.Subject, Name: claims.Name}, nil
}

// Auth resolves the optional bearer token into the request actor.
//
// Requests without a token go through as the anonymous actor. A token that
// does not validate is rejected with 401. With an empty secret tokens are
// ignored altogether.
func Auth(secret string) gin.HandlerFunc {
	if secret == "" {
		log.Printf("[http][auth] JWT_SECRET not set, every request is anonymous")
	}
	return func(c *gin.Context) {
		var actor entities.Actor

		header := c.GetHeader("Authorization")
		if secret != "" && header != "" {
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
				return
			}
			a, err := ParseToken(secret, strings.TrimSpace(tokenStr))
			if err != nil {
				log.Printf("[http][auth] rejected token path=%s err=%v", c.FullPath(), err)
				c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
				return
			}
			actor = a
		}

		c.Set(ActorKey, actor)
		c.Request = c.Request.WithContext(entities.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}
