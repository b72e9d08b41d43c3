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
	cache_utils "wedsync/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// roleCacheMiss is stored for (project, user) pairs with no binding so
// repeated unauthorized probes do not hit the database.
const roleCacheMiss = users_enums.ProjectRole("NONE")

type ProjectService struct {
	projectStore projects_interfaces.ProjectStore
	bindingStore projects_interfaces.BindingStore
	// never nil after DI wiring
	auditLogWriter users_interfaces.AuditLogWriter

	// nil in hermetic tests; lookups then always go to the store
	roleCache *cache_utils.CacheUtil[users_enums.ProjectRole]
	roleGroup singleflight.Group

	publisher projects_interfaces.EventPublisher
}

func NewProjectService(
	projectStore projects_interfaces.ProjectStore,
	bindingStore projects_interfaces.BindingStore,
	roleCache *cache_utils.CacheUtil[users_enums.ProjectRole],
) *ProjectService {
	return &ProjectService{
		projectStore: projectStore,
		bindingStore: bindingStore,
		roleCache:    roleCache,
	}
}

func (s *ProjectService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProjectService) SetEventPublisher(publisher projects_interfaces.EventPublisher) {
	s.publisher = publisher
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        request.Name,
		WeddingDate: request.WeddingDate,
		Venue:       request.Venue,
		CreatedBy:   user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectStore.InsertProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// The creator is the project's first owner.
	binding := &projects_models.CollaboratorBinding{
		ID:        uuid.New(),
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      users_enums.ProjectRoleOwner,
		Status:    projects_models.BindingStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bindingStore.InsertBinding(binding); err != nil {
		return nil, fmt.Errorf("failed to create owner binding: %w", err)
	}

	s.InvalidateRoleCache(project.ID, user.ID)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&user.ID,
		&project.ID,
	)

	ownerRole := users_enums.ProjectRoleOwner

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		WeddingDate: project.WeddingDate,
		Venue:       project.Venue,
		CreatedAt:   project.CreatedAt,
		UserRole:    &ownerRole,
	}, nil
}

func (s *ProjectService) GetProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	role, err := s.Authorize(user, projectID, users_enums.ProjectRoleViewer)
	if err != nil {
		return nil, err
	}

	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, ErrNotFound
	}

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		WeddingDate: project.WeddingDate,
		Venue:       project.Venue,
		CreatedAt:   project.CreatedAt,
		UserRole:    &role,
	}, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	roles, err := s.bindingStore.ListProjectIDsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user projects: %w", err)
	}

	projects := make([]projects_dto.ProjectResponseDTO, 0, len(roles))
	for projectID, role := range roles {
		project, err := s.projectStore.GetProjectByID(projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}
		if project == nil {
			continue
		}

		userRole := role
		projects = append(projects, projects_dto.ProjectResponseDTO{
			ID:          project.ID,
			Name:        project.Name,
			WeddingDate: project.WeddingDate,
			Venue:       project.Venue,
			CreatedAt:   project.CreatedAt,
			UserRole:    &userRole,
		})
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: projects}, nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	if _, err := s.Authorize(user, projectID, users_enums.ProjectRoleOwner); err != nil {
		return err
	}

	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return ErrNotFound
	}

	bindings, err := s.bindingStore.ListBindingsByProject(projectID)
	if err != nil {
		return fmt.Errorf("failed to list bindings: %w", err)
	}

	if err := s.projectStore.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	for _, binding := range bindings {
		s.InvalidateRoleCache(projectID, binding.UserID)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&projectID,
	)

	s.publish(projectID, "project_deleted", map[string]any{"projectId": projectID})

	return nil
}

// Authorize is the single permission gate every mutation handler calls
// before touching the store. It resolves the caller's role on the
// project and checks it against the required role; platform admins pass
// as owners.
func (s *ProjectService) Authorize(
	user *users_models.User,
	projectID uuid.UUID,
	required users_enums.ProjectRole,
) (users_enums.ProjectRole, error) {
	if user.IsAdmin() {
		return users_enums.ProjectRoleOwner, nil
	}

	role, err := s.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project role: %w", err)
	}

	if role == nil || !role.Meets(required) {
		return "", ErrPermissionDenied
	}

	return *role, nil
}

func (s *ProjectService) GetUserProjectRole(
	projectID, userID uuid.UUID,
) (*users_enums.ProjectRole, error) {
	cacheKey := projectID.String() + ":" + userID.String()

	if s.roleCache != nil {
		if cached := s.roleCache.Get(cacheKey); cached != nil {
			if *cached == roleCacheMiss {
				return nil, nil
			}
			return cached, nil
		}
	}

	value, err, _ := s.roleGroup.Do(cacheKey, func() (any, error) {
		binding, err := s.bindingStore.GetBindingByUserAndProject(userID, projectID)
		if err != nil {
			return nil, err
		}

		if binding == nil {
			if s.roleCache != nil {
				miss := roleCacheMiss
				s.roleCache.Set(cacheKey, &miss)
			}
			return (*users_enums.ProjectRole)(nil), nil
		}

		role := binding.Role
		if s.roleCache != nil {
			s.roleCache.Set(cacheKey, &role)
		}

		return &role, nil
	})

	if err != nil {
		return nil, err
	}

	return value.(*users_enums.ProjectRole), nil
}

func (s *ProjectService) InvalidateRoleCache(projectID, userID uuid.UUID) {
	if s.roleCache == nil {
		return
	}

	s.roleCache.Invalidate(projectID.String() + ":" + userID.String())
}

func (s *ProjectService) publish(projectID uuid.UUID, event string, payload any) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(projectID, event, payload, "")
}
