package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/edi-backend/internal/http/response"
	"github.com/yungbote/edi-backend/internal/services"
	"github.com/yungbote/edi-backend/internal/types"
)

type InvitationHandler struct {
	invitationService services.InvitationService
}

func NewInvitationHandler(invitationService services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (ih *InvitationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	invitation, err := ih.invitationService.Invite(c.Request.Context(), userID, req.Email, types.Role(req.Role))
	if err != nil {
		// The row may exist even when delivery failed; surface both.
		if invitation != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"invitation": invitation,
				"error":      gin.H{"message": err.Error(), "code": "email_delivery_failed"},
			})
			return
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, invitation)
}

func (ih *InvitationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitations, err := ih.invitationService.ListByInviter(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"invitations": invitations})
}

func (ih *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	invitation, err := ih.invitationService.Accept(c.Request.Context(), userID, req.Token)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, invitation)
}
