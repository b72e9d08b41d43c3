package invitations

import (
	"errors"
	"time"

	"wedsync/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationStore is implemented by the postgres repository and by the
// in-memory store used in tests.
type InvitationStore interface {
	InsertInvitation(invitation *Invitation) error
	GetInvitationByID(invitationID uuid.UUID) (*Invitation, error)
	GetInvitationByTokenHash(tokenHash string) (*Invitation, error)
	GetPendingInvitationByEmail(projectID uuid.UUID, email string) (*Invitation, error)
	ListInvitationsByProject(projectID uuid.UUID) ([]*Invitation, error)
	UpdateInvitation(invitation *Invitation) error
}

type InvitationRepository struct{}

func (r *InvitationRepository) InsertInvitation(invitation *Invitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetInvitationByID(invitationID uuid.UUID) (*Invitation, error) {
	var invitation Invitation

	err := storage.GetDb().
		Where("id = ?", invitationID).
		First(&invitation).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetInvitationByTokenHash(tokenHash string) (*Invitation, error) {
	var invitation Invitation

	err := storage.GetDb().
		Where("token_hash = ?", tokenHash).
		First(&invitation).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetPendingInvitationByEmail(
	projectID uuid.UUID,
	email string,
) (*Invitation, error) {
	var invitation Invitation

	err := storage.GetDb().
		Where("project_id = ? AND LOWER(email) = LOWER(?) AND status = ?",
			projectID, email, InvitationStatusPending).
		First(&invitation).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) ListInvitationsByProject(projectID uuid.UUID) ([]*Invitation, error) {
	var invitations []*Invitation

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) UpdateInvitation(invitation *Invitation) error {
	return storage.GetDb().Save(invitation).Error
}
