package audit_logs

import (
	"sync"

	"wedsync/internal/features/invitations"
	projects_services "wedsync/internal/features/projects/services"
	users_services "wedsync/internal/features/users/services"
	"wedsync/internal/util/logger"
)

var (
	once               sync.Once
	auditLogService    *AuditLogService
	auditLogController *AuditLogController
)

func setUp() {
	auditLogService = NewAuditLogService(
		&AuditLogRepository{},
		projects_services.GetProjectService(),
		logger.GetLogger(),
	)

	auditLogController = NewAuditLogController(auditLogService)
}

func GetAuditLogService() *AuditLogService {
	once.Do(setUp)
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	once.Do(setUp)
	return auditLogController
}

// SetupDependencies points every audited service at this feature. Kept
// here to avoid import cycles between the features.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(GetAuditLogService())
	projects_services.GetProjectService().SetAuditLogWriter(GetAuditLogService())
	projects_services.GetCollaboratorService().SetAuditLogWriter(GetAuditLogService())
	invitations.GetInvitationService().SetAuditLogWriter(GetAuditLogService())
}
