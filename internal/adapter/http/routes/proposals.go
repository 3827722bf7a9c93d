package routes

import (
	"credito_tributario/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathProposals = "/proposals"

func addProposalRoutes(rg *gin.RouterGroup, h *handlers.ProposalHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.GET("", h.ListProposals)
		proposals.POST("", h.CreateProposal)
		proposals.GET("/summary", h.GetSummary)
		proposals.GET("/:id", h.GetProposal)
		proposals.PATCH("/:id", h.UpdateProposal)
		proposals.DELETE("/:id", h.DeleteProposal)

		// Workflow: status carries the target in the body, the others are shortcuts.
		proposals.PATCH("/:id/status", h.UpdateStatus)
		proposals.PATCH("/:id/submit", h.SubmitProposal)
		proposals.PATCH("/:id/approve", h.ApproveProposal)
		proposals.PATCH("/:id/reject", h.RejectProposal)
		proposals.PATCH("/:id/convert", h.ConvertProposal)
		proposals.PATCH("/:id/cancel", h.CancelProposal)
	}
}
