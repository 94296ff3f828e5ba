package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	State      repos.StateRepo
	Question   repos.QuestionRepo
	Assessment repos.AssessmentRepo
	Response   repos.ResponseRepo
	Invitation repos.InvitationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		State:      repos.NewStateRepo(db, log),
		Question:   repos.NewQuestionRepo(db, log),
		Assessment: repos.NewAssessmentRepo(db, log),
		Response:   repos.NewResponseRepo(db, log),
		Invitation: repos.NewInvitationRepo(db, log),
	}
}
