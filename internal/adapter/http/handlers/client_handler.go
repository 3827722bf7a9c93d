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

// ClientHandler handles HTTP requests for the client collection.
type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	var q request.ClientListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWith(c, errInvalidQuery)
		return
	}

	page, err := h.usecase.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWith(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPage(page, response.FromClient))
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var payload request.CreateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), payload.ToEntity())
	if err != nil {
		abortWith(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var payload request.UpdateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		abortWith(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWith(c, mapClientError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidClientName),
		errors.Is(err, usecase.ErrInvalidDocumentNumber),
		errors.Is(err, usecase.ErrInvalidClientType),
		errors.Is(err, usecase.ErrInvalidClientStatus),
		errors.Is(err, usecase.ErrEmptyPatch):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientAlreadyExists):
		return pkg.NewDomainErrorSimple("CLIENT_ALREADY_EXISTS", "A client with this document number already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
