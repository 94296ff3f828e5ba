package app

import (
	"github.com/yungbote/edi-backend/internal/http/handlers"
	"github.com/yungbote/edi-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Assessment *handlers.AssessmentHandler
	Report     *handlers.ReportHandler
	Catalog    *handlers.CatalogHandler
	Invitation *handlers.InvitationHandler
	Dashboard  *handlers.DashboardHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Auth:       handlers.NewAuthHandler(s.Auth),
		User:       handlers.NewUserHandler(s.User),
		Assessment: handlers.NewAssessmentHandler(s.Assessment),
		Report:     handlers.NewReportHandler(s.Report),
		Catalog:    handlers.NewCatalogHandler(s.Catalog),
		Invitation: handlers.NewInvitationHandler(s.Invitation),
		Dashboard:  handlers.NewDashboardHandler(s.Dashboard),
	}
}
