package projects_services

import (
	"fmt"
	"time"

	projects_dto "wedsync/internal/features/projects/dto"
	projects_interfaces "wedsync/internal/features/projects/interfaces"
	projects_models "wedsync/internal/features/projects/models"
	users_enums "wedsync/internal/features/users/enums"
	users_interfaces "wedsync/internal/features/users/interfaces"
	users_models "wedsync/internal/features/users/models"

	"github.com/google/uuid"
)

type CollaboratorService struct {
	bindingStore   projects_interfaces.BindingStore
	userStore      users_interfaces.UserStore
	projectService *ProjectService
	// never nil after DI wiring
	auditLogWriter users_interfaces.AuditLogWriter

	publisher projects_interfaces.EventPublisher
}

func NewCollaboratorService(
	bindingStore projects_interfaces.BindingStore,
	userStore users_interfaces.UserStore,
	projectService *ProjectService,
) *CollaboratorService {
	return &CollaboratorService{
		bindingStore:   bindingStore,
		userStore:      userStore,
		projectService: projectService,
	}
}

func (s *CollaboratorService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *CollaboratorService) SetEventPublisher(publisher projects_interfaces.EventPublisher) {
	s.publisher = publisher
}

func (s *CollaboratorService) GetCollaborators(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ListCollaboratorsResponseDTO, error) {
	if _, err := s.projectService.Authorize(user, projectID, users_enums.ProjectRoleViewer); err != nil {
		return nil, err
	}

	bindings, err := s.bindingStore.ListBindingsByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}

	collaborators := make([]projects_dto.CollaboratorResponseDTO, 0, len(bindings))
	for _, binding := range bindings {
		collaborators = append(collaborators, s.toResponseDTO(binding))
	}

	return &projects_dto.ListCollaboratorsResponseDTO{Collaborators: collaborators}, nil
}

func (s *CollaboratorService) AddCollaborator(
	projectID uuid.UUID,
	request *projects_dto.AddCollaboratorRequestDTO,
	actor *users_models.User,
) (*projects_dto.CollaboratorResponseDTO, error) {
	if _, err := s.projectService.Authorize(actor, projectID, users_enums.ProjectRolePlanner); err != nil {
		return nil, err
	}

	if request.Role.Rank() == 0 {
		return nil, fmt.Errorf("invalid role: %s", request.Role)
	}

	// Granting OWNER is reserved for owners of the project.
	if request.Role == users_enums.ProjectRoleOwner {
		if _, err := s.projectService.Authorize(actor, projectID, users_enums.ProjectRoleOwner); err != nil {
			return nil, ErrOwnerProtected
		}
	}

	targetUser, err := s.userStore.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if targetUser == nil {
		return nil, ErrNotFound
	}

	existing, err := s.bindingStore.GetBindingByUserAndProject(targetUser.ID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing binding: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	binding := &projects_models.CollaboratorBinding{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    targetUser.ID,
		Role:      request.Role,
		Status:    projects_models.BindingStatusActive,
		InvitedBy: &actor.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bindingStore.InsertBinding(binding); err != nil {
		return nil, fmt.Errorf("failed to create binding: %w", err)
	}

	s.projectService.InvalidateRoleCache(projectID, targetUser.ID)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Collaborator added: %s as %s", targetUser.Email, request.Role),
		&actor.ID,
		&projectID,
	)

	response := s.toResponseDTO(binding)
	s.publishChange(projectID, "added", &response)

	return &response, nil
}

func (s *CollaboratorService) ChangeCollaboratorRole(
	projectID uuid.UUID,
	bindingID uuid.UUID,
	newRole users_enums.ProjectRole,
	actor *users_models.User,
) (*projects_dto.CollaboratorResponseDTO, error) {
	actorRole, err := s.projectService.Authorize(actor, projectID, users_enums.ProjectRolePlanner)
	if err != nil {
		return nil, err
	}

	if newRole.Rank() == 0 {
		return nil, fmt.Errorf("invalid role: %s", newRole)
	}

	binding, err := s.getProjectBinding(projectID, bindingID)
	if err != nil {
		return nil, err
	}

	// Owner bindings may only be touched by another owner, and the last
	// owner can never be demoted.
	if binding.Role == users_enums.ProjectRoleOwner {
		if !actorRole.Meets(users_enums.ProjectRoleOwner) {
			return nil, ErrOwnerProtected
		}

		if newRole != users_enums.ProjectRoleOwner {
			owners, err := s.bindingStore.CountOwners(projectID)
			if err != nil {
				return nil, fmt.Errorf("failed to count owners: %w", err)
			}
			if owners <= 1 {
				return nil, ErrLastOwner
			}
		}
	}

	if newRole == users_enums.ProjectRoleOwner && !actorRole.Meets(users_enums.ProjectRoleOwner) {
		return nil, ErrOwnerProtected
	}

	if err := s.bindingStore.UpdateBindingRole(binding.ID, newRole); err != nil {
		return nil, fmt.Errorf("failed to update binding: %w", err)
	}

	binding.Role = newRole
	s.projectService.InvalidateRoleCache(projectID, binding.UserID)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Collaborator role changed to %s", newRole),
		&actor.ID,
		&projectID,
	)

	response := s.toResponseDTO(binding)
	s.publishChange(projectID, "role_changed", &response)

	return &response, nil
}

func (s *CollaboratorService) RemoveCollaborator(
	projectID uuid.UUID,
	bindingID uuid.UUID,
	actor *users_models.User,
) error {
	actorRole, err := s.projectService.Authorize(actor, projectID, users_enums.ProjectRolePlanner)
	if err != nil {
		return err
	}

	binding, err := s.getProjectBinding(projectID, bindingID)
	if err != nil {
		return err
	}

	if binding.Role == users_enums.ProjectRoleOwner {
		// The sole owner can never be removed, not even by themselves
		// or a platform admin.
		owners, err := s.bindingStore.CountOwners(projectID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return ErrLastOwner
		}

		if !actorRole.Meets(users_enums.ProjectRoleOwner) {
			return ErrOwnerProtected
		}
	}

	if err := s.bindingStore.DeleteBinding(binding.ID); err != nil {
		return fmt.Errorf("failed to delete binding: %w", err)
	}

	s.projectService.InvalidateRoleCache(projectID, binding.UserID)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Collaborator removed: %s", binding.UserID),
		&actor.ID,
		&projectID,
	)

	response := s.toResponseDTO(binding)
	s.publishChange(projectID, "removed", &response)

	return nil
}

func (s *CollaboratorService) getProjectBinding(
	projectID, bindingID uuid.UUID,
) (*projects_models.CollaboratorBinding, error) {
	binding, err := s.bindingStore.GetBindingByID(bindingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get binding: %w", err)
	}

	if binding == nil || binding.ProjectID != projectID {
		return nil, ErrNotFound
	}

	return binding, nil
}

func (s *CollaboratorService) toResponseDTO(
	binding *projects_models.CollaboratorBinding,
) projects_dto.CollaboratorResponseDTO {
	response := projects_dto.CollaboratorResponseDTO{
		ID:        binding.ID,
		ProjectID: binding.ProjectID,
		UserID:    binding.UserID,
		Role:      binding.Role,
		Status:    binding.Status,
		InvitedBy: binding.InvitedBy,
		CreatedAt: binding.CreatedAt,
	}

	if user, err := s.userStore.GetUserByID(binding.UserID); err == nil && user != nil {
		response.Email = user.Email
		response.Name = user.Name
	}

	return response
}

func (s *CollaboratorService) publishChange(
	projectID uuid.UUID,
	action string,
	collaborator *projects_dto.CollaboratorResponseDTO,
) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(projectID, "collaborator_changed", map[string]any{
		"action":       action,
		"collaborator": collaborator,
	}, "")
}
