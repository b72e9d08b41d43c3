package users_controllers

import (
	"net/http"
	"testing"

	users_dto "wedsync/internal/features/users/dto"
	users_enums "wedsync/internal/features/users/enums"
	users_middleware "wedsync/internal/features/users/middleware"
	users_testing "wedsync/internal/features/users/testing"
	test_utils "wedsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createControllerTestEnv() (*users_testing.TestEnv, *gin.Engine) {
	env := users_testing.NewTestEnv()
	controller := NewUserController(env.UserService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	controller.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(env.UserService))
	controller.RegisterProtectedRoutes(protected)

	return env, router
}

func Test_SignUp_WithValidRequest_ReturnsCreated(t *testing.T) {
	_, router := createControllerTestEnv()

	request := users_dto.SignUpRequestDTO{
		Email:    "bride@example.com",
		Name:     "Bride",
		Password: "password123",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusCreated)
}

func Test_SignUp_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	_, router := createControllerTestEnv()

	request := users_dto.SignUpRequestDTO{
		Email:    "bride@example.com",
		Name:     "Bride",
		Password: "short",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusBadRequest)
}

func Test_SignIn_WithValidCredentials_ReturnsToken(t *testing.T) {
	_, router := createControllerTestEnv()

	signUp := users_dto.SignUpRequestDTO{
		Email:    "bride@example.com",
		Name:     "Bride",
		Password: "password123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signUp, http.StatusCreated)

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "bride@example.com", Password: "password123"},
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
}

func Test_SignIn_WithWrongPassword_ReturnsUnauthorized(t *testing.T) {
	_, router := createControllerTestEnv()

	signUp := users_dto.SignUpRequestDTO{
		Email:    "bride@example.com",
		Name:     "Bride",
		Password: "password123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signUp, http.StatusCreated)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "bride@example.com", Password: "wrong-password"},
		http.StatusUnauthorized,
	)
}

func Test_GetProfile_WithValidToken_ReturnsProfile(t *testing.T) {
	env, router := createControllerTestEnv()
	credentials := env.CreateTestUser(users_enums.UserRoleMember)

	var response users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+credentials.Token,
		http.StatusOK,
		&response,
	)

	require.Equal(t, credentials.UserID, response.ID)
	assert.Equal(t, users_enums.UserRoleMember, response.Role)
}

func Test_GetProfile_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	_, router := createControllerTestEnv()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
}
