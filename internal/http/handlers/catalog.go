package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/edi-backend/internal/http/response"
	"github.com/yungbote/edi-backend/internal/services"
	"github.com/yungbote/edi-backend/internal/types"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) ListStates(c *gin.Context) {
	states, err := ch.catalogService.ListStates(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"states": states})
}

func (ch *CatalogHandler) ListQuestions(c *gin.Context) {
	questions, err := ch.catalogService.ListQuestions(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

func (ch *CatalogHandler) CreateState(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Color       string `json:"color"`
		Description string `json:"description"`
		Guidance    string `json:"guidance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state := &types.HarmonicState{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		Guidance:    req.Guidance,
	}
	created, err := ch.catalogService.CreateState(c.Request.Context(), state)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (ch *CatalogHandler) UpdateState(c *gin.Context) {
	stateID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	fields, ok := bindUpdateFields(c, "name", "color", "description", "guidance")
	if !ok {
		return
	}
	if err := ch.catalogService.UpdateState(c.Request.Context(), stateID, fields); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *CatalogHandler) DeleteState(c *gin.Context) {
	stateID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ch.catalogService.DeleteState(c.Request.Context(), stateID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *CatalogHandler) CreateQuestion(c *gin.Context) {
	var req struct {
		Text         string `json:"text"`
		StateID      string `json:"state_id"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	stateID, err := uuid.Parse(req.StateID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_state_id", err)
		return
	}
	question := &types.Question{
		Text:         req.Text,
		StateID:      stateID,
		DisplayOrder: req.DisplayOrder,
	}
	created, err := ch.catalogService.CreateQuestion(c.Request.Context(), question)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (ch *CatalogHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	fields, ok := bindUpdateFields(c, "text", "display_order")
	if !ok {
		return
	}
	if err := ch.catalogService.UpdateQuestion(c.Request.Context(), questionID, fields); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *CatalogHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ch.catalogService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// bindUpdateFields accepts a partial JSON body and keeps only the allowed
// column names, so a request can never update columns it should not touch.
func bindUpdateFields(c *gin.Context, allowed ...string) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return nil, false
	}
	fields := make(map[string]any, len(body))
	for _, key := range allowed {
		if v, ok := body[key]; ok {
			fields[key] = v
		}
	}
	return fields, true
}
