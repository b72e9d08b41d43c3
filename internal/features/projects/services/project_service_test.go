package projects_services_test

import (
	"testing"

	projects_dto "wedsync/internal/features/projects/dto"
	projects_services "wedsync/internal/features/projects/services"
	projects_testing "wedsync/internal/features/projects/testing"
	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createServiceTestUser(
	t *testing.T,
	env *projects_testing.TestEnv,
	role users_enums.UserRole,
) *users_models.User {
	credentials := env.CreateTestUser(role)

	user, err := env.UserService.GetUserByID(credentials.UserID)
	require.NoError(t, err)

	return user
}

func createServiceTestProject(
	t *testing.T,
	env *projects_testing.TestEnv,
	owner *users_models.User,
) uuid.UUID {
	response, err := env.ProjectService.CreateProject(
		&projects_dto.CreateProjectRequestDTO{Name: "Smith-Jones Wedding"},
		owner,
	)
	require.NoError(t, err)

	return response.ID
}

func Test_CreateProject_WhenCreated_CreatorBecomesOwner(t *testing.T) {
	env := projects_testing.NewTestEnv()
	creator := createServiceTestUser(t, env, users_enums.UserRoleMember)

	response, err := env.ProjectService.CreateProject(
		&projects_dto.CreateProjectRequestDTO{Name: "Garden Ceremony"},
		creator,
	)

	require.NoError(t, err)
	require.NotNil(t, response.UserRole)
	assert.Equal(t, users_enums.ProjectRoleOwner, *response.UserRole)

	binding, err := env.Bindings.GetBindingByUserAndProject(creator.ID, response.ID)
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, users_enums.ProjectRoleOwner, binding.Role)
}

func Test_Authorize_WhenUserHasNoBinding_ReturnsPermissionDenied(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	stranger := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)

	_, err := env.ProjectService.Authorize(stranger, projectID, users_enums.ProjectRoleViewer)

	assert.ErrorIs(t, err, projects_services.ErrPermissionDenied)
}

func Test_Authorize_WhenRoleBelowRequired_ReturnsPermissionDenied(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	viewer := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)
	_, err := env.CollaboratorService.AddCollaborator(
		projectID,
		&projects_dto.AddCollaboratorRequestDTO{Email: viewer.Email, Role: users_enums.ProjectRoleViewer},
		owner,
	)
	require.NoError(t, err)

	_, err = env.ProjectService.Authorize(viewer, projectID, users_enums.ProjectRolePlanner)

	assert.ErrorIs(t, err, projects_services.ErrPermissionDenied)
}

func Test_Authorize_WhenRoleMeetsRequired_ReturnsRole(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	planner := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)
	_, err := env.CollaboratorService.AddCollaborator(
		projectID,
		&projects_dto.AddCollaboratorRequestDTO{Email: planner.Email, Role: users_enums.ProjectRolePlanner},
		owner,
	)
	require.NoError(t, err)

	role, err := env.ProjectService.Authorize(planner, projectID, users_enums.ProjectRoleCollaborator)

	require.NoError(t, err)
	assert.Equal(t, users_enums.ProjectRolePlanner, role)
}

func Test_Authorize_WhenUserIsAdmin_BypassesAsOwner(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	admin := createServiceTestUser(t, env, users_enums.UserRoleAdmin)

	projectID := createServiceTestProject(t, env, owner)

	role, err := env.ProjectService.Authorize(admin, projectID, users_enums.ProjectRoleOwner)

	require.NoError(t, err)
	assert.Equal(t, users_enums.ProjectRoleOwner, role)
}

func Test_GetProject_WhenUserIsViewer_ReturnsProjectWithRole(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	viewer := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)
	_, err := env.CollaboratorService.AddCollaborator(
		projectID,
		&projects_dto.AddCollaboratorRequestDTO{Email: viewer.Email, Role: users_enums.ProjectRoleViewer},
		owner,
	)
	require.NoError(t, err)

	response, err := env.ProjectService.GetProject(projectID, viewer)

	require.NoError(t, err)
	assert.Equal(t, projectID, response.ID)
	require.NotNil(t, response.UserRole)
	assert.Equal(t, users_enums.ProjectRoleViewer, *response.UserRole)
}

func Test_GetUserProjects_ReturnsOnlyBoundProjects(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	other := createServiceTestUser(t, env, users_enums.UserRoleMember)

	ownProjectID := createServiceTestProject(t, env, owner)
	createServiceTestProject(t, env, other)

	response, err := env.ProjectService.GetUserProjects(owner)

	require.NoError(t, err)
	require.Len(t, response.Projects, 1)
	assert.Equal(t, ownProjectID, response.Projects[0].ID)
}

func Test_DeleteProject_WhenUserIsPlanner_ReturnsPermissionDenied(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)
	planner := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)
	_, err := env.CollaboratorService.AddCollaborator(
		projectID,
		&projects_dto.AddCollaboratorRequestDTO{Email: planner.Email, Role: users_enums.ProjectRolePlanner},
		owner,
	)
	require.NoError(t, err)

	err = env.ProjectService.DeleteProject(projectID, planner)

	assert.ErrorIs(t, err, projects_services.ErrPermissionDenied)
}

func Test_DeleteProject_WhenUserIsOwner_DeletesProjectAndBindings(t *testing.T) {
	env := projects_testing.NewTestEnv()
	owner := createServiceTestUser(t, env, users_enums.UserRoleMember)

	projectID := createServiceTestProject(t, env, owner)

	err := env.ProjectService.DeleteProject(projectID, owner)
	require.NoError(t, err)

	project, err := env.Projects.GetProjectByID(projectID)
	require.NoError(t, err)
	assert.Nil(t, project)

	bindings, err := env.Bindings.ListBindingsByProject(projectID)
	require.NoError(t, err)
	assert.Empty(t, bindings)

	assert.Len(t, env.Publisher.EventsFor(projectID, "project_deleted"), 1)
}
