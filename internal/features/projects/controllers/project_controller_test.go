package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "wedsync/internal/features/projects/dto"
	projects_testing "wedsync/internal/features/projects/testing"
	users_enums "wedsync/internal/features/users/enums"
	test_utils "wedsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createControllerTestEnv() (*projects_testing.TestEnv, *gin.Engine) {
	env := projects_testing.NewTestEnv()
	router := env.CreateTestRouter(
		NewProjectController(env.ProjectService),
		NewCollaboratorController(env.CollaboratorService),
	)

	return env, router
}

func Test_CreateProject_WhenAuthenticated_ReturnsProjectWithOwnerRole(t *testing.T) {
	env, router := createControllerTestEnv()
	owner := env.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject(t, router, owner, "Beach Wedding")

	assert.Equal(t, "Beach Wedding", project.Name)
	require.NotNil(t, project.UserRole)
	assert.Equal(t, users_enums.ProjectRoleOwner, *project.UserRole)
}

func Test_CreateProject_WhenNoToken_Returns401(t *testing.T) {
	_, router := createControllerTestEnv()

	request := projects_dto.CreateProjectRequestDTO{Name: "Beach Wedding"}
	test_utils.MakePostRequest(t, router, "/api/v1/projects", "", request, http.StatusUnauthorized)
}

func Test_GetProject_WhenNotCollaborator_Returns403(t *testing.T) {
	env, router := createControllerTestEnv()
	owner := env.CreateTestUser(users_enums.UserRoleMember)
	stranger := env.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject(t, router, owner, "Private Wedding")

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+stranger.Token,
		http.StatusForbidden,
	)
}

func Test_GetProject_WhenInvalidProjectID_Returns400(t *testing.T) {
	env, router := createControllerTestEnv()
	user := env.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/not-a-uuid",
		"Bearer "+user.Token,
		http.StatusBadRequest,
	)
}

func Test_GetUserProjects_WhenUserHasProjects_ReturnsThem(t *testing.T) {
	env, router := createControllerTestEnv()
	owner := env.CreateTestUser(users_enums.UserRoleMember)

	projects_testing.CreateTestProject(t, router, owner, "First Wedding")
	projects_testing.CreateTestProject(t, router, owner, "Second Wedding")

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Projects, 2)
}

func Test_DeleteProject_WhenOwner_Returns200(t *testing.T) {
	env, router := createControllerTestEnv()
	owner := env.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject(t, router, owner, "Cancelled Wedding")

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		http.StatusForbidden,
	)
}

func Test_DeleteProject_WhenCollaborator_Returns403(t *testing.T) {
	env, router := createControllerTestEnv()
	owner := env.CreateTestUser(users_enums.UserRoleMember)
	collaborator := env.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject(t, router, owner, "Protected Wedding")
	projects_testing.AddCollaboratorToProject(
		t, router, project.ID, collaborator, users_enums.ProjectRoleCollaborator, owner.Token)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+collaborator.Token,
		http.StatusForbidden,
	)
}
