package users_services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	users_dto "wedsync/internal/features/users/dto"
	users_enums "wedsync/internal/features/users/enums"
	users_interfaces "wedsync/internal/features/users/interfaces"
	users_models "wedsync/internal/features/users/models"
)

// ErrUnauthenticated covers every credential failure: missing session,
// bad token, deactivated account. Callers get no finer detail.
var ErrUnauthenticated = errors.New("unauthenticated")

const accessTokenLifetime = 30 * 24 * time.Hour

type UserService struct {
	userStore      users_interfaces.UserStore
	secretKeyStore users_interfaces.SecretKeyStore
	// never nil after DI wiring
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewUserService(
	userStore users_interfaces.UserStore,
	secretKeyStore users_interfaces.SecretKeyStore,
) *UserService {
	return &UserService{
		userStore:      userStore,
		secretKeyStore: secretKeyStore,
	}
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) error {
	existingUser, err := s.userStore.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                request.Email,
		Name:                 request.Name,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleMember,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userStore.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User registered with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return nil
}

func (s *UserService) SignIn(request *users_dto.SignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userStore.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || !user.HasPassword() {
		return nil, errors.New("email or password is incorrect")
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password)); err != nil {
		return nil, errors.New("email or password is incorrect")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return response, nil
}

// GetUserFromToken resolves a bearer token to the trusted caller
// identity. Every downstream permission check assumes this succeeded.
func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyStore.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, ErrUnauthenticated
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrUnauthenticated
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userStore.GetUserByID(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if !user.IsActiveUser() {
		return nil, ErrUnauthenticated
	}

	// A password change invalidates all previously issued tokens.
	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0).Truncate(time.Second)
	userPasswordTime := user.PasswordCreationTime.Truncate(time.Second)

	if !tokenPasswordTime.Equal(userPasswordTime) {
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyStore.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  now.Add(accessTokenLifetime).Unix(),
		"iat":                  now.Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userStore.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userStore.GetUserByEmail(email)
}

// PromoteUserToAdmin grants the platform ADMIN role to an existing
// account. Used for operator bootstrap, there is no API route for it.
func (s *UserService) PromoteUserToAdmin(email string) error {
	user, err := s.userStore.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		return fmt.Errorf("user with email %s does not exist", email)
	}

	if user.Role == users_enums.UserRoleAdmin {
		return nil
	}

	if err := s.userStore.UpdateUserRole(user.ID, users_enums.UserRoleAdmin); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User promoted to administrator: %s", user.Email),
		&user.ID,
		nil,
	)

	return nil
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActiveUser(),
		CreatedAt: user.CreatedAt,
	}
}
