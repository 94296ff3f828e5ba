package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Assessment services.AssessmentService
	Catalog    services.CatalogService
	Invitation services.InvitationService
	Dashboard  services.DashboardService
	Report     services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, r.User)
	assessmentService := services.NewAssessmentService(db, log, r.User, r.Question, r.State, r.Assessment, r.Response)
	catalogService := services.NewCatalogService(db, log, r.State, r.Question, c.CatalogCache)
	invitationService := services.NewInvitationService(db, log, r.Invitation, r.User, c.Mail)
	dashboardService := services.NewDashboardService(db, log, r.User, r.State, r.Question, r.Assessment, r.Invitation)

	reportService, err := services.NewReportService(log, assessmentService)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Auth:       authService,
		User:       userService,
		Assessment: assessmentService,
		Catalog:    catalogService,
		Invitation: invitationService,
		Dashboard:  dashboardService,
		Report:     reportService,
	}, nil
}
