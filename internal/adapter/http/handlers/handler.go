package handlers

import (
	"net/http"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/session"
	"credito_tributario/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid payload", http.StatusBadRequest)
	errInvalidQuery   = pkg.NewDomainErrorSimple("INVALID_QUERY", "Invalid query parameters", http.StatusBadRequest)
)

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

// actorOf returns the user set by the auth middleware, if any.
func actorOf(c *gin.Context) entities.Actor {
	return entities.ActorFromContext(c.Request.Context())
}

// sessionUserOf is the owner of the session used by the request.
func sessionUserOf(c *gin.Context) string {
	if a := actorOf(c); a.Authenticated() {
		return a.ID
	}
	return session.AnonymousUser
}
