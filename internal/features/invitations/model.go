package invitations

import (
	"time"

	users_enums "wedsync/internal/features/users/enums"

	"github.com/google/uuid"
)

type Invitation struct {
	ID          uuid.UUID               `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID               `json:"projectId"   gorm:"column:project_id"`
	Email       string                  `json:"email"       gorm:"column:email"`
	Role        users_enums.ProjectRole `json:"role"        gorm:"column:role"`
	TokenPrefix string                  `json:"tokenPrefix" gorm:"column:token_prefix"`
	TokenHash   string                  `json:"-"           gorm:"column:token_hash;uniqueIndex"` // Never expose in JSON
	Status      InvitationStatus        `json:"status"      gorm:"column:status"`
	InvitedBy   uuid.UUID               `json:"invitedBy"   gorm:"column:invited_by"`
	CreatedAt   time.Time               `json:"createdAt"   gorm:"column:created_at"`
	ExpiresAt   time.Time               `json:"expiresAt"   gorm:"column:expires_at"`
	AcceptedBy  *uuid.UUID              `json:"acceptedBy"  gorm:"column:accepted_by"`
	AcceptedAt  *time.Time              `json:"acceptedAt"  gorm:"column:accepted_at"`

	Token string `json:"token,omitempty" gorm:"-"` // Temporary field only populated during creation
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
