package projects_interfaces

import (
	projects_models "wedsync/internal/features/projects/models"
	users_enums "wedsync/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectStore is the persistence contract for wedding projects.
type ProjectStore interface {
	InsertProject(project *projects_models.Project) error
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
	DeleteProject(projectID uuid.UUID) error
}

// BindingStore is the persistence contract for collaborator bindings.
// Lookups return (nil, nil) when no binding exists.
type BindingStore interface {
	InsertBinding(binding *projects_models.CollaboratorBinding) error
	GetBindingByID(bindingID uuid.UUID) (*projects_models.CollaboratorBinding, error)
	GetBindingByUserAndProject(userID, projectID uuid.UUID) (*projects_models.CollaboratorBinding, error)
	ListBindingsByProject(projectID uuid.UUID) ([]*projects_models.CollaboratorBinding, error)
	ListProjectIDsByUser(userID uuid.UUID) (map[uuid.UUID]users_enums.ProjectRole, error)
	UpdateBindingRole(bindingID uuid.UUID, role users_enums.ProjectRole) error
	DeleteBinding(bindingID uuid.UUID) error
	CountOwners(projectID uuid.UUID) (int64, error)
}

// EventPublisher pushes a domain event into the project's live channel.
// Delivery is best-effort; implementations never block or return errors
// to the mutation path. excludeConnID suppresses echo to the
// originating connection when non-empty.
type EventPublisher interface {
	Publish(projectID uuid.UUID, event string, payload any, excludeConnID string)
}
