package invitations

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	projects_interfaces "wedsync/internal/features/projects/interfaces"
	projects_models "wedsync/internal/features/projects/models"
	projects_services "wedsync/internal/features/projects/services"
	users_enums "wedsync/internal/features/users/enums"
	users_interfaces "wedsync/internal/features/users/interfaces"
	users_models "wedsync/internal/features/users/models"

	"github.com/google/uuid"
)

const (
	TokenPrefix = "wi_"
	TokenLength = 32 // random bytes per token

	InvitationTTL = 7 * 24 * time.Hour
)

type InvitationService struct {
	invitationStore InvitationStore
	bindingStore    projects_interfaces.BindingStore
	projectStore    projects_interfaces.ProjectStore
	userStore       users_interfaces.UserStore
	projectService  *projects_services.ProjectService
	mailer          Mailer // nil disables outbound email
	logger          *slog.Logger

	// never nil after DI wiring
	auditLogWriter users_interfaces.AuditLogWriter
	publisher      projects_interfaces.EventPublisher
}

func NewInvitationService(
	invitationStore InvitationStore,
	bindingStore projects_interfaces.BindingStore,
	projectStore projects_interfaces.ProjectStore,
	userStore users_interfaces.UserStore,
	projectService *projects_services.ProjectService,
	mailer Mailer,
	logger *slog.Logger,
) *InvitationService {
	return &InvitationService{
		invitationStore: invitationStore,
		bindingStore:    bindingStore,
		projectStore:    projectStore,
		userStore:       userStore,
		projectService:  projectService,
		mailer:          mailer,
		logger:          logger,
	}
}

func (s *InvitationService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *InvitationService) SetEventPublisher(publisher projects_interfaces.EventPublisher) {
	s.publisher = publisher
}

func (s *InvitationService) CreateInvitation(
	projectID uuid.UUID,
	request *CreateInvitationRequestDTO,
	creator *users_models.User,
) (*Invitation, error) {
	if _, err := s.projectService.Authorize(creator, projectID, users_enums.ProjectRolePlanner); err != nil {
		return nil, err
	}

	if request.Role.Rank() == 0 {
		return nil, fmt.Errorf("invalid role: %s", request.Role)
	}

	// Inviting as OWNER is reserved for owners of the project.
	if request.Role == users_enums.ProjectRoleOwner {
		if _, err := s.projectService.Authorize(creator, projectID, users_enums.ProjectRoleOwner); err != nil {
			return nil, projects_services.ErrOwnerProtected
		}
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	if existingUser, err := s.userStore.GetUserByEmail(email); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	} else if existingUser != nil {
		binding, err := s.bindingStore.GetBindingByUserAndProject(existingUser.ID, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing binding: %w", err)
		}
		if binding != nil {
			return nil, projects_services.ErrAlreadyExists
		}
	}

	pending, err := s.invitationStore.GetPendingInvitationByEmail(projectID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}
	if pending != nil && !s.expireIfStale(pending, time.Now().UTC()) {
		return nil, projects_services.ErrAlreadyExists
	}

	fullToken, tokenPrefix, tokenHash, err := s.generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now().UTC()
	invitation := &Invitation{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Email:       email,
		Role:        request.Role,
		TokenPrefix: tokenPrefix,
		TokenHash:   tokenHash,
		Status:      InvitationStatusPending,
		InvitedBy:   creator.ID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(InvitationTTL),
	}

	if err := s.invitationStore.InsertInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Invitation created for %s as %s (%s)", email, request.Role, tokenPrefix),
		&creator.ID,
		&projectID,
	)

	s.sendInvitationEmail(invitation, fullToken)

	s.publishInvitationChange(projectID, "created", invitation)

	// The full token is only returned once, at creation.
	invitation.Token = fullToken

	return invitation, nil
}

func (s *InvitationService) GetProjectInvitations(
	projectID uuid.UUID,
	user *users_models.User,
) (*GetInvitationsResponseDTO, error) {
	if _, err := s.projectService.Authorize(user, projectID, users_enums.ProjectRolePlanner); err != nil {
		return nil, err
	}

	invitations, err := s.invitationStore.ListInvitationsByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := time.Now().UTC()
	for _, invitation := range invitations {
		s.expireIfStale(invitation, now)
	}

	return &GetInvitationsResponseDTO{Invitations: invitations}, nil
}

// AcceptInvitation redeems a token for the authenticated user. A token
// redeems exactly once; any later attempt fails with ErrAlreadyUsed.
func (s *InvitationService) AcceptInvitation(
	token string,
	user *users_models.User,
) (*AcceptInvitationResponseDTO, error) {
	if !strings.HasPrefix(token, TokenPrefix) {
		return nil, ErrInvalidToken
	}

	invitation, err := s.invitationStore.GetInvitationByTokenHash(s.hashToken(token))
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}
	if invitation == nil {
		return nil, ErrInvalidToken
	}

	switch invitation.Status {
	case InvitationStatusAccepted, InvitationStatusCancelled:
		return nil, ErrAlreadyUsed
	case InvitationStatusExpired:
		return nil, ErrExpired
	}

	if s.expireIfStale(invitation, time.Now().UTC()) {
		return nil, ErrExpired
	}

	// The token alone is not enough; the accepting account must carry
	// the invited address. Admins may accept on any account.
	if !strings.EqualFold(invitation.Email, user.Email) && !user.IsAdmin() {
		return nil, ErrInvalidToken
	}

	binding, err := s.bindingStore.GetBindingByUserAndProject(user.ID, invitation.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing binding: %w", err)
	}

	if binding == nil {
		binding = &projects_models.CollaboratorBinding{
			ID:        uuid.New(),
			ProjectID: invitation.ProjectID,
			UserID:    user.ID,
			Role:      invitation.Role,
			Status:    projects_models.BindingStatusActive,
			InvitedBy: &invitation.InvitedBy,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.bindingStore.InsertBinding(binding); err != nil {
			return nil, fmt.Errorf("failed to create binding: %w", err)
		}

		s.projectService.InvalidateRoleCache(invitation.ProjectID, user.ID)
	}

	now := time.Now().UTC()
	invitation.Status = InvitationStatusAccepted
	invitation.AcceptedBy = &user.ID
	invitation.AcceptedAt = &now

	if err := s.invitationStore.UpdateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Invitation accepted by %s as %s", user.Email, binding.Role),
		&user.ID,
		&invitation.ProjectID,
	)

	if s.publisher != nil {
		s.publisher.Publish(invitation.ProjectID, "collaborator_changed", map[string]any{
			"action": "added",
			"collaborator": map[string]any{
				"id":        binding.ID,
				"projectId": binding.ProjectID,
				"userId":    binding.UserID,
				"email":     user.Email,
				"name":      user.Name,
				"role":      binding.Role,
			},
		}, "")
	}

	return &AcceptInvitationResponseDTO{
		ProjectID: invitation.ProjectID,
		BindingID: binding.ID,
		Role:      binding.Role,
	}, nil
}

func (s *InvitationService) CancelInvitation(
	projectID uuid.UUID,
	invitationID uuid.UUID,
	actor *users_models.User,
) error {
	if _, err := s.projectService.Authorize(actor, projectID, users_enums.ProjectRolePlanner); err != nil {
		return err
	}

	invitation, err := s.invitationStore.GetInvitationByID(invitationID)
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation == nil || invitation.ProjectID != projectID {
		return projects_services.ErrNotFound
	}

	if s.expireIfStale(invitation, time.Now().UTC()) {
		return ErrInvalidState
	}

	if invitation.Status != InvitationStatusPending {
		return ErrInvalidState
	}

	invitation.Status = InvitationStatusCancelled
	if err := s.invitationStore.UpdateInvitation(invitation); err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Invitation cancelled for %s (%s)", invitation.Email, invitation.TokenPrefix),
		&actor.ID,
		&projectID,
	)

	s.publishInvitationChange(projectID, "cancelled", invitation)

	return nil
}

// expireIfStale flips a stale PENDING invitation to EXPIRED. Expiry is
// evaluated lazily when an invitation is read; there is no sweeper.
func (s *InvitationService) expireIfStale(invitation *Invitation, now time.Time) bool {
	if invitation.Status != InvitationStatusPending || !invitation.IsExpired(now) {
		return false
	}

	invitation.Status = InvitationStatusExpired
	if err := s.invitationStore.UpdateInvitation(invitation); err != nil {
		s.logger.Error("failed to mark invitation expired",
			"invitationId", invitation.ID, "error", err)
	}

	return true
}

func (s *InvitationService) sendInvitationEmail(invitation *Invitation, fullToken string) {
	if s.mailer == nil {
		return
	}

	projectName := "a wedding project"
	if project, err := s.projectStore.GetProjectByID(invitation.ProjectID); err == nil && project != nil {
		projectName = project.Name
	}

	email := invitation.Email

	go func() {
		if err := s.mailer.SendInvitation(email, projectName, fullToken); err != nil {
			s.logger.Error("failed to send invitation email",
				"email", email, "error", err)
		}
	}()
}

func (s *InvitationService) publishInvitationChange(
	projectID uuid.UUID,
	action string,
	invitation *Invitation,
) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(projectID, "invitation_changed", map[string]any{
		"action":       action,
		"invitationId": invitation.ID,
		"email":        invitation.Email,
		"role":         invitation.Role,
		"status":       invitation.Status,
	}, "")
}

func (s *InvitationService) generateSecureToken() (fullToken, prefix, hash string, err error) {
	tokenBytes := make([]byte, TokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", "", err
	}

	tokenSuffix := hex.EncodeToString(tokenBytes)
	fullToken = TokenPrefix + tokenSuffix
	prefix = TokenPrefix + tokenSuffix[:6] + "..."
	hash = s.hashToken(fullToken)

	return fullToken, prefix, hash, nil
}

func (s *InvitationService) hashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}
