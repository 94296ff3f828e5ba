package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/edi-backend/internal/http/handlers"
	httpMW "github.com/yungbote/edi-backend/internal/http/middleware"
	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware
	RoleMiddleware *httpMW.RoleMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	UserHandler       *httpH.UserHandler
	AssessmentHandler *httpH.AssessmentHandler
	ReportHandler     *httpH.ReportHandler
	CatalogHandler    *httpH.CatalogHandler
	InvitationHandler *httpH.InvitationHandler
	DashboardHandler  *httpH.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Assessment wizard
		if cfg.AssessmentHandler != nil {
			protected.POST("/assessments", cfg.AssessmentHandler.Start)
			protected.GET("/assessments", cfg.AssessmentHandler.List)
			protected.GET("/assessments/:id", cfg.AssessmentHandler.Get)
			protected.POST("/assessments/:id/answer", cfg.AssessmentHandler.Answer)
			protected.POST("/assessments/:id/advance", cfg.AssessmentHandler.Advance)
			protected.POST("/assessments/:id/retreat", cfg.AssessmentHandler.Retreat)
			protected.GET("/assessments/:id/results", cfg.AssessmentHandler.Results)
		}

		if cfg.ReportHandler != nil {
			protected.GET("/assessments/:id/report.png", cfg.ReportHandler.RenderCard)
		}

		// Catalog reads (any signed-in user; the wizard needs them)
		if cfg.CatalogHandler != nil {
			protected.GET("/states", cfg.CatalogHandler.ListStates)
			protected.GET("/questions", cfg.CatalogHandler.ListQuestions)
		}

		// Invitation accept (the invitee must be signed in)
		if cfg.InvitationHandler != nil {
			protected.POST("/invitations/accept", cfg.InvitationHandler.Accept)
		}

		// Dashboards
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard/respondent", cfg.DashboardHandler.Respondent)
		}
	}

	if cfg.RoleMiddleware != nil {
		// Invitation create/list: coaches and partners
		if cfg.InvitationHandler != nil {
			inviters := protected.Group("/")
			inviters.Use(cfg.RoleMiddleware.RequireRole(types.RoleCoach, types.RolePartner, types.RoleAdmin))
			inviters.POST("/invitations", cfg.InvitationHandler.Create)
			inviters.GET("/invitations", cfg.InvitationHandler.List)
		}

		if cfg.DashboardHandler != nil {
			coaches := protected.Group("/")
			coaches.Use(cfg.RoleMiddleware.RequireRole(types.RoleCoach, types.RoleAdmin))
			coaches.GET("/dashboard/coach", cfg.DashboardHandler.Coach)

			partners := protected.Group("/")
			partners.Use(cfg.RoleMiddleware.RequireRole(types.RolePartner, types.RoleAdmin))
			partners.GET("/dashboard/partner", cfg.DashboardHandler.Partner)
		}

		admins := protected.Group("/")
		admins.Use(cfg.RoleMiddleware.RequireRole(types.RoleAdmin))
		if cfg.DashboardHandler != nil {
			admins.GET("/dashboard/admin", cfg.DashboardHandler.Admin)
		}
		if cfg.CatalogHandler != nil {
			admins.POST("/states", cfg.CatalogHandler.CreateState)
			admins.PATCH("/states/:id", cfg.CatalogHandler.UpdateState)
			admins.DELETE("/states/:id", cfg.CatalogHandler.DeleteState)
			admins.POST("/questions", cfg.CatalogHandler.CreateQuestion)
			admins.PATCH("/questions/:id", cfg.CatalogHandler.UpdateQuestion)
			admins.DELETE("/questions/:id", cfg.CatalogHandler.DeleteQuestion)
		}
	}

	return r
}
