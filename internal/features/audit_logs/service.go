package audit_logs

import (
	"errors"
	"log/slog"
	"time"

	projects_services "wedsync/internal/features/projects/services"
	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"

	"github.com/google/uuid"
)

var (
	ErrGlobalLogsForbidden = errors.New("only administrators can view global audit logs")
	ErrUserLogsForbidden   = errors.New("insufficient permissions to view user audit logs")
)

type AuditLogService struct {
	auditLogStore  AuditLogStore
	projectService *projects_services.ProjectService
	logger         *slog.Logger
}

func NewAuditLogService(
	auditLogStore AuditLogStore,
	projectService *projects_services.ProjectService,
	logger *slog.Logger,
) *AuditLogService {
	return &AuditLogService{
		auditLogStore:  auditLogStore,
		projectService: projectService,
		logger:         logger,
	}
}

// WriteAuditLog satisfies users_interfaces.AuditLogWriter. Failures are
// logged and swallowed so auditing never fails the calling operation.
func (s *AuditLogService) WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	auditLog := &AuditLog{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.auditLogStore.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", "error", err)
	}
}

func (s *AuditLogService) GetGlobalAuditLogs(
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if user.Role != users_enums.UserRoleAdmin {
		return nil, ErrGlobalLogsForbidden
	}

	limit, offset := normalizePagination(request)

	auditLogs, err := s.auditLogStore.GetGlobal(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogStore.CountGlobal(request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *AuditLogService) GetUserAuditLogs(
	targetUserID uuid.UUID,
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	// Users can view their own logs, ADMIN can view any user's logs
	if user.Role != users_enums.UserRoleAdmin && user.ID != targetUserID {
		return nil, ErrUserLogsForbidden
	}

	limit, offset := normalizePagination(request)

	auditLogs, err := s.auditLogStore.GetByUser(targetUserID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     int64(len(auditLogs)),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// GetProjectAuditLogs is gated on the planner role because entries can
// reference invitations and collaborator management.
func (s *AuditLogService) GetProjectAuditLogs(
	projectID uuid.UUID,
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if _, err := s.projectService.Authorize(user, projectID, users_enums.ProjectRolePlanner); err != nil {
		return nil, err
	}

	limit, offset := normalizePagination(request)

	auditLogs, err := s.auditLogStore.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     int64(len(auditLogs)),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func normalizePagination(request *GetAuditLogsRequest) (limit, offset int) {
	limit = request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset = max(request.Offset, 0)

	return limit, offset
}
