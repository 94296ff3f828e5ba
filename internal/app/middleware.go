package app

import (
	"github.com/yungbote/edi-backend/internal/http/middleware"
	"github.com/yungbote/edi-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
	Role *middleware.RoleMiddleware
}

func wireMiddleware(log *logger.Logger, s Services, r Repos) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
		Role: middleware.NewRoleMiddleware(log, r.User),
	}
}
