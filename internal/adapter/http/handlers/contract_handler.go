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

// ContractHandler handles HTTP requests for contracts. Contracts are created
// by converting a proposal, so there is no create route.
type ContractHandler struct {
	usecase usecase.IContractUseCase
}

func NewContractHandler(uc usecase.IContractUseCase) *ContractHandler {
	return &ContractHandler{usecase: uc}
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	var q request.ContractListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWith(c, errInvalidQuery)
		return
	}

	page, err := h.usecase.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWith(c, mapContractError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPage(page, response.FromContract))
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, mapContractError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

func (h *ContractHandler) UpdateContract(c *gin.Context) {
	var payload request.UpdateContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	contract, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		abortWith(c, mapContractError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWith(c, mapContractError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapContractError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContractID),
		errors.Is(err, usecase.ErrInvalidContractStatus),
		errors.Is(err, usecase.ErrInvalidContractValue),
		errors.Is(err, usecase.ErrInvalidContractPeriod),
		errors.Is(err, usecase.ErrEmptyPatch):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrContractNotFound):
		return pkg.NewDomainErrorSimple("CONTRACT_NOT_FOUND", "Contract not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
