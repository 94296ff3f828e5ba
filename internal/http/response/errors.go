package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/edi-backend/internal/platform/apierr"
	"github.com/yungbote/edi-backend/internal/services"
)

// RespondDomainError maps the typed service errors onto HTTP statuses so
// every handler branches the same way. Unknown errors fall through as 500.
func RespondDomainError(c *gin.Context, err error) {
	var ae *apierr.Error
	var pe *services.PersistenceError

	switch {
	case errors.As(err, &ae):
		RespondError(c, ae.Status, ae.Code, err)
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrAssessmentNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrQuestionNotInSession),
		errors.Is(err, services.ErrQuestionUnanswered),
		errors.Is(err, services.ErrNoQuestions),
		errors.Is(err, services.ErrAssessmentIncomplete):
		RespondError(c, http.StatusUnprocessableEntity, "invalid_input", err)
	case errors.Is(err, services.ErrAssessmentCompleted),
		errors.Is(err, services.ErrInvitationUsed),
		errors.Is(err, services.ErrStateInUse):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrInvitationExpired):
		RespondError(c, http.StatusGone, "expired", err)
	case errors.Is(err, services.ErrNotOwner):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.As(err, &pe):
		RespondError(c, http.StatusServiceUnavailable, "persistence_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
