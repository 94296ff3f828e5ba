package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/repos"
	"github.com/yungbote/edi-backend/internal/requestdata"
	"github.com/yungbote/edi-backend/internal/types"
)

// RoleMiddleware gates route groups on the closed role enum. It reads the
// role from the user row on every request, so a role change (for example an
// accepted invitation) takes effect without re-login.
type RoleMiddleware struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewRoleMiddleware(log *logger.Logger, userRepo repos.UserRepo) *RoleMiddleware {
	middlewareLogger := log.With("Middleware", "RoleMiddleware")
	return &RoleMiddleware{log: middlewareLogger, userRepo: userRepo}
}

// RequireRole must run after RequireAuth.
func (rm *RoleMiddleware) RequireRole(allowed ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		users, err := rm.userRepo.GetByIDs(c.Request.Context(), nil, []uuid.UUID{rd.UserID})
		if err != nil || len(users) == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "forbidden", "code": "forbidden"},
			})
			return
		}

		role := users[0].Role
		for _, a := range allowed {
			if role == a {
				c.Set("role", string(role))
				c.Next()
				return
			}
		}

		rm.log.Warn("Role check rejected", "user_id", rd.UserID.String(), "role", string(role))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": gin.H{"message": "insufficient role", "code": "forbidden"},
		})
	}
}
