package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edi-backend/internal/http/response"
	"github.com/yungbote/edi-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Respondent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dashboard, err := dh.dashboardService.Respondent(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}

func (dh *DashboardHandler) Coach(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dashboard, err := dh.dashboardService.Coach(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}

func (dh *DashboardHandler) Partner(c *gin.Context) {
	dashboard, err := dh.dashboardService.Partner(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}

func (dh *DashboardHandler) Admin(c *gin.Context) {
	dashboard, err := dh.dashboardService.Admin(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}
