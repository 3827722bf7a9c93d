package routes

import (
	"credito_tributario/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathContracts = "/contracts"

// Contracts are only created by converting a proposal.
func addContractRoutes(rg *gin.RouterGroup, h *handlers.ContractHandler) {
	contracts := rg.Group(PathContracts)
	{
		contracts.GET("", h.ListContracts)
		contracts.GET("/:id", h.GetContract)
		contracts.PATCH("/:id", h.UpdateContract)
		contracts.DELETE("/:id", h.DeleteContract)
	}
}
