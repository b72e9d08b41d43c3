package projects_testing

import (
	"net/http"
	"sort"
	"sync"
	"testing"

	projects_dto "wedsync/internal/features/projects/dto"
	projects_models "wedsync/internal/features/projects/models"
	projects_services "wedsync/internal/features/projects/services"
	users_dto "wedsync/internal/features/users/dto"
	users_enums "wedsync/internal/features/users/enums"
	users_middleware "wedsync/internal/features/users/middleware"
	users_testing "wedsync/internal/features/users/testing"
	test_utils "wedsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InMemoryProjectStore implements projects_interfaces.ProjectStore for
// hermetic tests. Deleting a project also drops its bindings, matching
// the transactional behavior of the postgres repository.
type InMemoryProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*projects_models.Project
	bindings *InMemoryBindingStore
}

func NewInMemoryProjectStore(bindings *InMemoryBindingStore) *InMemoryProjectStore {
	return &InMemoryProjectStore{
		projects: make(map[uuid.UUID]*projects_models.Project),
		bindings: bindings,
	}
}

func (s *InMemoryProjectStore) InsertProject(project *projects_models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *project
	s.projects[project.ID] = &copied

	return nil
}

func (s *InMemoryProjectStore) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[projectID]
	if !ok {
		return nil, nil
	}

	copied := *project
	return &copied, nil
}

func (s *InMemoryProjectStore) DeleteProject(projectID uuid.UUID) error {
	s.mu.Lock()
	delete(s.projects, projectID)
	s.mu.Unlock()

	s.bindings.deleteByProject(projectID)

	return nil
}

// InMemoryBindingStore implements projects_interfaces.BindingStore for
// hermetic tests.
type InMemoryBindingStore struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*projects_models.CollaboratorBinding
}

func NewInMemoryBindingStore() *InMemoryBindingStore {
	return &InMemoryBindingStore{
		byID: make(map[uuid.UUID]*projects_models.CollaboratorBinding),
	}
}

func (s *InMemoryBindingStore) InsertBinding(binding *projects_models.CollaboratorBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *binding
	s.byID[binding.ID] = &copied

	return nil
}

func (s *InMemoryBindingStore) GetBindingByID(bindingID uuid.UUID) (*projects_models.CollaboratorBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, ok := s.byID[bindingID]
	if !ok {
		return nil, nil
	}

	copied := *binding
	return &copied, nil
}

func (s *InMemoryBindingStore) GetBindingByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.CollaboratorBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, binding := range s.byID {
		if binding.UserID == userID && binding.ProjectID == projectID {
			copied := *binding
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *InMemoryBindingStore) ListBindingsByProject(
	projectID uuid.UUID,
) ([]*projects_models.CollaboratorBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bindings := make([]*projects_models.CollaboratorBinding, 0)
	for _, binding := range s.byID {
		if binding.ProjectID == projectID {
			copied := *binding
			bindings = append(bindings, &copied)
		}
	}

	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].CreatedAt.Before(bindings[j].CreatedAt)
	})

	return bindings, nil
}

func (s *InMemoryBindingStore) ListProjectIDsByUser(
	userID uuid.UUID,
) (map[uuid.UUID]users_enums.ProjectRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles := make(map[uuid.UUID]users_enums.ProjectRole)
	for _, binding := range s.byID {
		if binding.UserID == userID {
			roles[binding.ProjectID] = binding.Role
		}
	}

	return roles, nil
}

func (s *InMemoryBindingStore) UpdateBindingRole(bindingID uuid.UUID, role users_enums.ProjectRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, ok := s.byID[bindingID]
	if !ok {
		return nil
	}

	binding.Role = role
	return nil
}

func (s *InMemoryBindingStore) DeleteBinding(bindingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, bindingID)
	return nil
}

func (s *InMemoryBindingStore) CountOwners(projectID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, binding := range s.byID {
		if binding.ProjectID == projectID && binding.Role == users_enums.ProjectRoleOwner {
			count++
		}
	}

	return count, nil
}

func (s *InMemoryBindingStore) deleteByProject(projectID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, binding := range s.byID {
		if binding.ProjectID == projectID {
			delete(s.byID, id)
		}
	}
}

// PublishedEvent is one broadcast captured by RecordingPublisher.
type PublishedEvent struct {
	ProjectID     uuid.UUID
	Event         string
	Payload       any
	ExcludeConnID string
}

// RecordingPublisher implements projects_interfaces.EventPublisher and
// records every broadcast for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func (p *RecordingPublisher) Publish(projectID uuid.UUID, event string, payload any, excludeConnID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, PublishedEvent{
		ProjectID:     projectID,
		Event:         event,
		Payload:       payload,
		ExcludeConnID: excludeConnID,
	})
}

func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]PublishedEvent(nil), p.events...)
}

func (p *RecordingPublisher) EventsFor(projectID uuid.UUID, event string) []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	matched := make([]PublishedEvent, 0)
	for _, e := range p.events {
		if e.ProjectID == projectID && e.Event == event {
			matched = append(matched, e)
		}
	}

	return matched
}

// TestEnv wires project and collaborator services over in-memory stores
// so permission tests run without postgres or valkey.
type TestEnv struct {
	*users_testing.TestEnv

	Projects  *InMemoryProjectStore
	Bindings  *InMemoryBindingStore
	Publisher *RecordingPublisher

	ProjectService      *projects_services.ProjectService
	CollaboratorService *projects_services.CollaboratorService
}

func NewTestEnv() *TestEnv {
	usersEnv := users_testing.NewTestEnv()

	bindings := NewInMemoryBindingStore()
	projects := NewInMemoryProjectStore(bindings)
	publisher := &RecordingPublisher{}

	projectService := projects_services.NewProjectService(projects, bindings, nil)
	projectService.SetAuditLogWriter(users_testing.NullAuditLogWriter{})
	projectService.SetEventPublisher(publisher)

	collaboratorService := projects_services.NewCollaboratorService(bindings, usersEnv.Users, projectService)
	collaboratorService.SetAuditLogWriter(users_testing.NullAuditLogWriter{})
	collaboratorService.SetEventPublisher(publisher)

	return &TestEnv{
		TestEnv:             usersEnv,
		Projects:            projects,
		Bindings:            bindings,
		Publisher:           publisher,
		ProjectService:      projectService,
		CollaboratorService: collaboratorService,
	}
}

// ControllerInterface is satisfied by every feature controller that
// registers routes behind the auth middleware.
type ControllerInterface interface {
	RegisterProtectedRoutes(router gin.IRoutes)
}

func (e *TestEnv) CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(e.UserService))

	for _, controller := range controllers {
		controller.RegisterProtectedRoutes(protected)
	}

	return router
}

func CreateTestProject(
	t *testing.T,
	router *gin.Engine,
	owner *users_dto.SignInResponseDTO,
	name string,
) *projects_dto.ProjectResponseDTO {
	request := projects_dto.CreateProjectRequestDTO{Name: name}

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+owner.Token,
		request,
		http.StatusCreated,
		&response,
	)

	return &response
}

func AddCollaboratorToProject(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	collaborator *users_dto.SignInResponseDTO,
	role users_enums.ProjectRole,
	actorToken string,
) *projects_dto.CollaboratorResponseDTO {
	request := projects_dto.AddCollaboratorRequestDTO{
		Email: collaborator.Email,
		Role:  role,
	}

	var response projects_dto.CollaboratorResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/collaborators/"+projectID.String(),
		"Bearer "+actorToken,
		request,
		http.StatusCreated,
		&response,
	)

	return &response
}
