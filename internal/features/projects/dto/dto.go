package projects_dto

import (
	"time"

	projects_models "wedsync/internal/features/projects/models"
	users_enums "wedsync/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name        string     `json:"name"        binding:"required,min=1,max=255"`
	WeddingDate *time.Time `json:"weddingDate"`
	Venue       string     `json:"venue"       binding:"max=255"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	WeddingDate *time.Time `json:"weddingDate"`
	Venue       string     `json:"venue"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Caller's role in this project (populated when listing for a user)
	UserRole *users_enums.ProjectRole `json:"userRole,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Collaborator DTOs
type AddCollaboratorRequestDTO struct {
	Email string                  `json:"email" binding:"required,email"`
	Role  users_enums.ProjectRole `json:"role"  binding:"required"`
}

type ChangeCollaboratorRoleRequestDTO struct {
	Role users_enums.ProjectRole `json:"role" binding:"required"`
}

type CollaboratorResponseDTO struct {
	ID        uuid.UUID                   `json:"id"`
	ProjectID uuid.UUID                   `json:"projectId"`
	UserID    uuid.UUID                   `json:"userId"`
	Email     string                      `json:"email"`
	Name      string                      `json:"name"`
	Role      users_enums.ProjectRole     `json:"role"`
	Status    projects_models.BindingStatus `json:"status"`
	InvitedBy *uuid.UUID                  `json:"invitedBy"`
	CreatedAt time.Time                   `json:"createdAt"`
}

type ListCollaboratorsResponseDTO struct {
	Collaborators []CollaboratorResponseDTO `json:"collaborators"`
}
