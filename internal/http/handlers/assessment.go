package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/edi-backend/internal/http/response"
	"github.com/yungbote/edi-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (ah *AssessmentHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	view, err := ah.assessmentService.Start(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ah *AssessmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessments, err := ah.assessmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assessments": assessments})
}

func (ah *AssessmentHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := ah.assessmentService.Load(c.Request.Context(), userID, assessmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ah *AssessmentHandler) Answer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		QuestionID string `json:"question_id"`
		Rating     int    `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}

	if err := ah.assessmentService.Answer(c.Request.Context(), userID, assessmentID, questionID, req.Rating); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AssessmentHandler) Advance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := ah.assessmentService.Advance(c.Request.Context(), userID, assessmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ah *AssessmentHandler) Retreat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := ah.assessmentService.Retreat(c.Request.Context(), userID, assessmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ah *AssessmentHandler) Results(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	results, err := ah.assessmentService.Results(c.Request.Context(), userID, assessmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, results)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
