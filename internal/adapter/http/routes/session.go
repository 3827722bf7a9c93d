package routes

import (
	"credito_tributario/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathSession = "/session"

func addSessionRoutes(rg *gin.RouterGroup, h *handlers.SessionHandler) {
	s := rg.Group(PathSession)
	{
		s.GET("", h.GetSession)
		s.PUT("/active-client", h.SelectClient)
		s.DELETE("/active-client", h.ClearActiveClient)
		s.PUT("/pending-proposals", h.SetPendingProposals)
	}
}
