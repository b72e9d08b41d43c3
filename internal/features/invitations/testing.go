package invitations

import (
	"strings"
	"sync"

	projects_testing "wedsync/internal/features/projects/testing"
	users_testing "wedsync/internal/features/users/testing"
	"wedsync/internal/util/logger"

	"github.com/google/uuid"
)

// InMemoryInvitationStore implements InvitationStore for hermetic tests.
type InMemoryInvitationStore struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*Invitation
}

func NewInMemoryInvitationStore() *InMemoryInvitationStore {
	return &InMemoryInvitationStore{
		byID: make(map[uuid.UUID]*Invitation),
	}
}

func (s *InMemoryInvitationStore) InsertInvitation(invitation *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *invitation
	s.byID[invitation.ID] = &copied

	return nil
}

func (s *InMemoryInvitationStore) GetInvitationByID(invitationID uuid.UUID) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitation, ok := s.byID[invitationID]
	if !ok {
		return nil, nil
	}

	copied := *invitation
	return &copied, nil
}

func (s *InMemoryInvitationStore) GetInvitationByTokenHash(tokenHash string) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, invitation := range s.byID {
		if invitation.TokenHash == tokenHash {
			copied := *invitation
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *InMemoryInvitationStore) GetPendingInvitationByEmail(
	projectID uuid.UUID,
	email string,
) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, invitation := range s.byID {
		if invitation.ProjectID == projectID &&
			strings.EqualFold(invitation.Email, email) &&
			invitation.Status == InvitationStatusPending {
			copied := *invitation
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *InMemoryInvitationStore) ListInvitationsByProject(projectID uuid.UUID) ([]*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations := make([]*Invitation, 0)
	for _, invitation := range s.byID {
		if invitation.ProjectID == projectID {
			copied := *invitation
			invitations = append(invitations, &copied)
		}
	}

	return invitations, nil
}

func (s *InMemoryInvitationStore) UpdateInvitation(invitation *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *invitation
	s.byID[invitation.ID] = &copied

	return nil
}

// SentMail is one email captured by CapturingMailer.
type SentMail struct {
	Email       string
	ProjectName string
	Token       string
}

// CapturingMailer records outbound invitations instead of sending them.
// Sends happen on a background goroutine, so assertions should poll
// SentMails.
type CapturingMailer struct {
	mu    sync.Mutex
	mails []SentMail
}

func (m *CapturingMailer) SendInvitation(email, projectName, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mails = append(m.mails, SentMail{Email: email, ProjectName: projectName, Token: token})
	return nil
}

func (m *CapturingMailer) SentMails() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentMail(nil), m.mails...)
}

// TestEnv layers invitation wiring over the projects test environment.
type TestEnv struct {
	*projects_testing.TestEnv

	Invitations       *InMemoryInvitationStore
	Mailer            *CapturingMailer
	InvitationService *InvitationService
}

func NewTestEnv() *TestEnv {
	projectsEnv := projects_testing.NewTestEnv()

	invitations := NewInMemoryInvitationStore()
	mailer := &CapturingMailer{}

	service := NewInvitationService(
		invitations,
		projectsEnv.Bindings,
		projectsEnv.Projects,
		projectsEnv.Users,
		projectsEnv.ProjectService,
		mailer,
		logger.GetLogger(),
	)
	service.SetAuditLogWriter(users_testing.NullAuditLogWriter{})
	service.SetEventPublisher(projectsEnv.Publisher)

	return &TestEnv{
		TestEnv:           projectsEnv,
		Invitations:       invitations,
		Mailer:            mailer,
		InvitationService: service,
	}
}
