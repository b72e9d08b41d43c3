package realtime

import (
	"sync"

	"wedsync/internal/features/invitations"
	projects_services "wedsync/internal/features/projects/services"
	users_services "wedsync/internal/features/users/services"
	"wedsync/internal/util/logger"
)

var (
	once               sync.Once
	hub                *Hub
	realtimeController *RealtimeController
)

func setUp() {
	hub = NewHub(logger.GetLogger())

	realtimeController = NewRealtimeController(
		hub,
		users_services.GetUserService(),
		projects_services.GetProjectService(),
		logger.GetLogger(),
	)
}

func GetHub() *Hub {
	once.Do(setUp)
	return hub
}

func GetRealtimeController() *RealtimeController {
	once.Do(setUp)
	return realtimeController
}

// SetupDependencies points every broadcasting service at the hub. Kept
// out of the service di files to avoid import cycles.
func SetupDependencies() {
	projects_services.GetProjectService().SetEventPublisher(GetHub())
	projects_services.GetCollaboratorService().SetEventPublisher(GetHub())
	invitations.GetInvitationService().SetEventPublisher(GetHub())
}
