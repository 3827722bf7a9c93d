package handlers

import (
	"errors"
	"net/http"

	request "credito_tributario/internal/adapter/http/dto/request"
	response "credito_tributario/internal/adapter/http/dto/response"
	"credito_tributario/internal/usecase"
	"credito_tributario/pkg"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the active client selection of the calling user.
type SessionHandler struct {
	usecase usecase.ISessionUseCase
}

func NewSessionHandler(uc usecase.ISessionUseCase) *SessionHandler {
	return &SessionHandler{usecase: uc}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.usecase.GetState(c.Request.Context(), sessionUserOf(c))
	h.respond(c, view, err)
}

func (h *SessionHandler) SelectClient(c *gin.Context) {
	var payload request.SelectClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	view, err := h.usecase.SelectClient(c.Request.Context(), sessionUserOf(c), payload.ResolveClientID())
	h.respond(c, view, err)
}

func (h *SessionHandler) ClearActiveClient(c *gin.Context) {
	view, err := h.usecase.ClearActiveClient(c.Request.Context(), sessionUserOf(c))
	h.respond(c, view, err)
}

func (h *SessionHandler) SetPendingProposals(c *gin.Context) {
	var payload request.PendingProposalsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	view, err := h.usecase.SetPendingProposals(c.Request.Context(), sessionUserOf(c), *payload.Count)
	h.respond(c, view, err)
}

func (h *SessionHandler) respond(c *gin.Context, view usecase.SessionView, err error) {
	if err != nil {
		abortWith(c, mapSessionError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSession(view))
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
