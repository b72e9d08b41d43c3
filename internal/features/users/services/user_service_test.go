package users_services_test

import (
	"testing"
	"time"

	users_dto "wedsync/internal/features/users/dto"
	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"
	users_services "wedsync/internal/features/users/services"
	users_testing "wedsync/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUpTestUser(t *testing.T, env *users_testing.TestEnv, email string) {
	t.Helper()

	err := env.UserService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Name:     "Test User",
		Password: "password123",
	})
	require.NoError(t, err)
}

func Test_SignIn_AfterSignUp_ReturnsToken(t *testing.T) {
	env := users_testing.NewTestEnv()
	signUpTestUser(t, env, "bride@example.com")

	response, err := env.UserService.SignIn(&users_dto.SignInRequestDTO{
		Email:    "bride@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "bride@example.com", response.Email)
}

func Test_SignUp_WhenEmailTaken_ReturnsError(t *testing.T) {
	env := users_testing.NewTestEnv()
	signUpTestUser(t, env, "bride@example.com")

	err := env.UserService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    "bride@example.com",
		Name:     "Someone Else",
		Password: "password123",
	})

	assert.Error(t, err)
}

func Test_SignIn_WithWrongPassword_ReturnsError(t *testing.T) {
	env := users_testing.NewTestEnv()
	signUpTestUser(t, env, "bride@example.com")

	_, err := env.UserService.SignIn(&users_dto.SignInRequestDTO{
		Email:    "bride@example.com",
		Password: "wrong-password",
	})

	assert.Error(t, err)
}

func Test_GetUserFromToken_WithValidToken_ReturnsUser(t *testing.T) {
	env := users_testing.NewTestEnv()
	credentials := env.CreateTestUser(users_enums.UserRoleMember)

	user, err := env.UserService.GetUserFromToken(credentials.Token)

	require.NoError(t, err)
	assert.Equal(t, credentials.UserID, user.ID)
}

func Test_GetUserFromToken_WithGarbageToken_ReturnsUnauthenticated(t *testing.T) {
	env := users_testing.NewTestEnv()

	_, err := env.UserService.GetUserFromToken("not-a-jwt")

	assert.ErrorIs(t, err, users_services.ErrUnauthenticated)
}

func Test_GetUserFromToken_AfterPasswordChange_ReturnsUnauthenticated(t *testing.T) {
	env := users_testing.NewTestEnv()

	// The token carries the password creation time; backdate it so the
	// rotation below lands in a different second.
	hashedPassword := "$2a$10$original"
	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                "rotated@example.com",
		Name:                 "Rotated",
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC().Add(-time.Hour),
		CreatedAt:            time.Now().UTC().Add(-time.Hour),
		Role:                 users_enums.UserRoleMember,
		Status:               users_enums.UserStatusActive,
	}
	require.NoError(t, env.Users.CreateUser(user))

	credentials, err := env.UserService.GenerateAccessToken(user)
	require.NoError(t, err)

	require.NoError(t, env.Users.UpdateUserPassword(user.ID, "$2a$10$rotated"))

	_, err = env.UserService.GetUserFromToken(credentials.Token)

	assert.ErrorIs(t, err, users_services.ErrUnauthenticated)
}

func Test_PromoteUserToAdmin_WithExistingUser_GrantsAdminRole(t *testing.T) {
	env := users_testing.NewTestEnv()
	signUpTestUser(t, env, "planner@example.com")

	err := env.UserService.PromoteUserToAdmin("planner@example.com")
	require.NoError(t, err)

	user, err := env.UserService.GetUserByEmail("planner@example.com")
	require.NoError(t, err)
	assert.Equal(t, users_enums.UserRoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func Test_PromoteUserToAdmin_WithUnknownEmail_ReturnsError(t *testing.T) {
	env := users_testing.NewTestEnv()

	err := env.UserService.PromoteUserToAdmin("nobody@example.com")

	assert.Error(t, err)
}
