package invitations

import (
	"sync"

	projects_repositories "wedsync/internal/features/projects/repositories"
	projects_services "wedsync/internal/features/projects/services"
	users_repositories "wedsync/internal/features/users/repositories"
	"wedsync/internal/util/logger"
	rate_limit "wedsync/internal/util/rate_limit"
)

var (
	once                 sync.Once
	invitationService    *InvitationService
	invitationController *InvitationController
)

// setUp builds the singletons on first use. The rate limiter dials valkey,
// so none of this may run from package init.
func setUp() {
	invitationService = NewInvitationService(
		&InvitationRepository{},
		&projects_repositories.BindingRepository{},
		&projects_repositories.ProjectRepository{},
		&users_repositories.UserRepository{},
		projects_services.GetProjectService(),
		newConfiguredMailer(),
		logger.GetLogger(),
	)

	invitationController = NewInvitationController(invitationService, rate_limit.NewRateLimiter())
}

// keeps the interface nil when SMTP is not configured, a typed nil
// *SMTPMailer would slip past the service's nil check
func newConfiguredMailer() Mailer {
	if mailer := NewSMTPMailerFromEnv(); mailer != nil {
		return mailer
	}
	return nil
}

func GetInvitationService() *InvitationService {
	once.Do(setUp)
	return invitationService
}

func GetInvitationController() *InvitationController {
	once.Do(setUp)
	return invitationController
}
