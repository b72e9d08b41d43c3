package invitations

import (
	users_enums "wedsync/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateInvitationRequestDTO struct {
	Email string                  `json:"email" binding:"required,email"`
	Role  users_enums.ProjectRole `json:"role"  binding:"required"`
}

type GetInvitationsResponseDTO struct {
	Invitations []*Invitation `json:"invitations"`
}

type AcceptInvitationRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type AcceptInvitationResponseDTO struct {
	ProjectID uuid.UUID               `json:"projectId"`
	BindingID uuid.UUID               `json:"bindingId"`
	Role      users_enums.ProjectRole `json:"role"`
}
