package users_interfaces

import (
	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"

	"github.com/google/uuid"
)

// UserStore is the persistence contract the user service requires; the
// gorm repository satisfies it in production, in-memory fakes in tests.
type UserStore interface {
	CreateUser(user *users_models.User) error
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
	GetUserByEmail(email string) (*users_models.User, error)
	UpdateUserPassword(userID uuid.UUID, hashedPassword string) error
	UpdateUserRole(userID uuid.UUID, role users_enums.UserRole) error
}

type SecretKeyStore interface {
	GetSecretKey() (string, error)
}

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID)
}
