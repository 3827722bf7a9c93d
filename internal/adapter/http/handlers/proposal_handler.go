package handlers

import (
	"errors"
	"net/http"

	request "credito_tributario/internal/adapter/http/dto/request"
	response "credito_tributario/internal/adapter/http/dto/response"
	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase"
	"credito_tributario/pkg"

	"github.com/gin-gonic/gin"
)

// ProposalHandler handles HTTP requests for proposals and their workflow.
type ProposalHandler struct {
	usecase usecase.IProposalUseCase
}

func NewProposalHandler(uc usecase.IProposalUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

func (h *ProposalHandler) ListProposals(c *gin.Context) {
	var q request.ProposalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWith(c, errInvalidQuery)
		return
	}

	page, err := h.usecase.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPage(page, response.FromProposal))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

func (h *ProposalHandler) GetSummary(c *gin.Context) {
	var q request.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWith(c, errInvalidQuery)
		return
	}

	s, err := h.usecase.Summary(c.Request.Context(), q.ClientID)
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposalSummary(s))
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var payload request.CreateProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), payload.ToEntity(), actorOf(c))
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromProposal(p))
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	var payload request.UpdateProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus moves the proposal to the status in the body.
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	status, ok := payload.ResolveStatus()
	if !ok {
		abortWith(c, mapProposalError(usecase.ErrInvalidProposalStatus))
		return
	}
	h.transition(c, status, payload.Comments)
}

func (h *ProposalHandler) SubmitProposal(c *gin.Context) {
	h.transitionByRequest(c, entities.ProposalStatusAnalysis)
}

func (h *ProposalHandler) ApproveProposal(c *gin.Context) {
	h.transitionByRequest(c, entities.ProposalStatusApproved)
}

func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	h.transitionByRequest(c, entities.ProposalStatusRejected)
}

func (h *ProposalHandler) ConvertProposal(c *gin.Context) {
	h.transitionByRequest(c, entities.ProposalStatusConverted)
}

func (h *ProposalHandler) CancelProposal(c *gin.Context) {
	h.transitionByRequest(c, entities.ProposalStatusCanceled)
}

// transitionByRequest reads the optional comment body of the shortcut routes.
func (h *ProposalHandler) transitionByRequest(c *gin.Context, status entities.ProposalStatus) {
	var payload request.CommentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			abortWith(c, errInvalidPayload)
			return
		}
	}
	h.transition(c, status, payload.ResolveComments())
}

func (h *ProposalHandler) transition(c *gin.Context, status entities.ProposalStatus, comments string) {
	p, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), status, comments, actorOf(c))
	if err != nil {
		abortWith(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

func mapProposalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalID),
		errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidProposalTitle),
		errors.Is(err, usecase.ErrInvalidProposalValue),
		errors.Is(err, usecase.ErrInvalidProposalStatus),
		errors.Is(err, usecase.ErrEmptyPatch):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCommentsRequired):
		return pkg.NewDomainErrorSimple("COMMENTS_REQUIRED", "Comments are required to reject or cancel a proposal", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", "Status transition not allowed", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalStatusConflict):
		return pkg.NewDomainErrorSimple("PROPOSAL_STATUS_CONFLICT", "Proposal was changed by another request", http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalLocked):
		return pkg.NewDomainErrorSimple("PROPOSAL_LOCKED", "Proposal can no longer be edited", http.StatusConflict)
	default:
		return internalError(err)
	}
}
