package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/edi-backend/internal/http"
	"github.com/yungbote/edi-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, m Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log: log,

		AuthMiddleware: m.Auth,
		RoleMiddleware: m.Role,

		HealthHandler:     h.Health,
		AuthHandler:       h.Auth,
		UserHandler:       h.User,
		AssessmentHandler: h.Assessment,
		ReportHandler:     h.Report,
		CatalogHandler:    h.Catalog,
		InvitationHandler: h.Invitation,
		DashboardHandler:  h.Dashboard,
	})
}
