package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/edi-backend/internal/http/response"
	"github.com/yungbote/edi-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RenderCard streams the PNG straight to the client; nothing is stored.
func (rh *ReportHandler) RenderCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	buf, err := rh.reportService.RenderCard(c.Request.Context(), userID, assessmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="edi-report-%s.png"`, assessmentID))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
