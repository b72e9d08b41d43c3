package users_testing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	users_dto "wedsync/internal/features/users/dto"
	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"
	users_services "wedsync/internal/features/users/services"

	"github.com/google/uuid"
)

// InMemoryUserStore implements users_interfaces.UserStore for hermetic
// tests.
type InMemoryUserStore struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*users_models.User
	byKey map[string]*users_models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:  make(map[uuid.UUID]*users_models.User),
		byKey: make(map[string]*users_models.User),
	}
}

func (s *InMemoryUserStore) CreateUser(user *users_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.byKey[key]; exists {
		return fmt.Errorf("duplicate email: %s", user.Email)
	}

	copied := *user
	s.byID[user.ID] = &copied
	s.byKey[key] = &copied

	return nil
}

func (s *InMemoryUserStore) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", userID)
	}

	copied := *user
	return &copied, nil
}

func (s *InMemoryUserStore) GetUserByEmail(email string) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byKey[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}

func (s *InMemoryUserStore) UpdateUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}

	user.Role = role

	return nil
}

func (s *InMemoryUserStore) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}

	user.HashedPassword = &hashedPassword
	user.PasswordCreationTime = time.Now().UTC()

	return nil
}

type StaticSecretKeyStore struct {
	Secret string
}

func (s *StaticSecretKeyStore) GetSecretKey() (string, error) {
	return s.Secret, nil
}

// NullAuditLogWriter discards audit entries in tests that do not assert
// on them.
type NullAuditLogWriter struct{}

func (NullAuditLogWriter) WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {}

// TestEnv wires a user service over in-memory stores so auth-dependent
// tests run without postgres.
type TestEnv struct {
	Users       *InMemoryUserStore
	UserService *users_services.UserService
}

func NewTestEnv() *TestEnv {
	users := NewInMemoryUserStore()

	service := users_services.NewUserService(users, &StaticSecretKeyStore{Secret: "test-secret"})
	service.SetAuditLogWriter(NullAuditLogWriter{})

	return &TestEnv{
		Users:       users,
		UserService: service,
	}
}

// CreateTestUser inserts an active user and returns sign-in credentials
// with a valid access token.
func (e *TestEnv) CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		Name:                 "Test " + string(role),
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
	}

	if err := e.Users.CreateUser(user); err != nil {
		panic(err)
	}

	response, err := e.UserService.GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}
