package projects_models

import (
	"time"

	users_enums "wedsync/internal/features/users/enums"

	"github.com/google/uuid"
)

type BindingStatus string

const (
	BindingStatusActive BindingStatus = "ACTIVE"
)

// CollaboratorBinding is one user's standing permission on one project.
// At most one binding exists per (project, user) pair.
type CollaboratorBinding struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_bindings_project_user"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id;uniqueIndex:idx_bindings_project_user"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	Status    BindingStatus           `json:"status"    gorm:"column:status"`
	InvitedBy *uuid.UUID              `json:"invitedBy" gorm:"column:invited_by"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
}

func (CollaboratorBinding) TableName() string {
	return "collaborator_bindings"
}
