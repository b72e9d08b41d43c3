package invitations

import (
	"net/http"
	"testing"

	users_enums "wedsync/internal/features/users/enums"
	users_models "wedsync/internal/features/users/models"
	test_utils "wedsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInvitationTestRouter(env *TestEnv) *gin.Engine {
	return env.CreateTestRouter(NewInvitationController(env.InvitationService, nil))
}

func tokenFor(t *testing.T, env *TestEnv, user *users_models.User) (*Invitation, string) {
	owner := createInvitationTestUser(t, env, users_enums.UserRoleMember)
	projectID := createInvitationTestProject(t, env, owner)

	invitation := createPendingInvitation(
		t, env, projectID, user.Email, users_enums.ProjectRoleCollaborator, owner)

	credentials, err := env.UserService.GenerateAccessToken(user)
	require.NoError(t, err)

	return invitation, credentials.Token
}

func Test_AcceptInvitation_ViaAPI_Returns200(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	guest := createInvitationTestUser(t, env, users_enums.UserRoleMember)

	invitation, authToken := tokenFor(t, env, guest)

	var response AcceptInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+authToken,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, invitation.ProjectID, response.ProjectID)
	assert.Equal(t, users_enums.ProjectRoleCollaborator, response.Role)
}

func Test_AcceptInvitation_ViaAPI_WhenTokenUnknown_Returns400(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	guest := env.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+guest.Token,
		AcceptInvitationRequestDTO{Token: TokenPrefix + "bogus"},
		http.StatusBadRequest,
	)
}

func Test_AcceptInvitation_ViaAPI_WhenExpired_Returns410(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	guest := createInvitationTestUser(t, env, users_enums.UserRoleMember)

	invitation, authToken := tokenFor(t, env, guest)
	forceInvitationExpiry(t, env, invitation.ID)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+authToken,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusGone,
	)
}

func Test_CreateInvitation_ViaAPI_WhenOwner_Returns201(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	owner := createInvitationTestUser(t, env, users_enums.UserRoleMember)
	projectID := createInvitationTestProject(t, env, owner)

	credentials, err := env.UserService.GenerateAccessToken(owner)
	require.NoError(t, err)

	var response Invitation
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/"+projectID.String(),
		"Bearer "+credentials.Token,
		CreateInvitationRequestDTO{Email: "guest@example.com", Role: users_enums.ProjectRoleViewer},
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, InvitationStatusPending, response.Status)
	assert.NotEmpty(t, response.Token)
}

func Test_CreateInvitation_ViaAPI_WhenNotCollaborator_Returns403(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	owner := createInvitationTestUser(t, env, users_enums.UserRoleMember)
	stranger := env.CreateTestUser(users_enums.UserRoleMember)
	projectID := createInvitationTestProject(t, env, owner)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/"+projectID.String(),
		"Bearer "+stranger.Token,
		CreateInvitationRequestDTO{Email: "guest@example.com", Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
}

func Test_CancelInvitation_ViaAPI_WhenPending_Returns200(t *testing.T) {
	env := NewTestEnv()
	router := createInvitationTestRouter(env)
	owner := createInvitationTestUser(t, env, users_enums.UserRoleMember)
	projectID := createInvitationTestProject(t, env, owner)

	invitation := createPendingInvitation(
		t, env, projectID, "guest@example.com", users_enums.ProjectRoleViewer, owner)

	credentials, err := env.UserService.GenerateAccessToken(owner)
	require.NoError(t, err)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/invitations/"+projectID.String()+"/"+invitation.ID.String(),
		"Bearer "+credentials.Token,
		http.StatusOK,
	)

	stored, err := env.Invitations.GetInvitationByID(invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, InvitationStatusCancelled, stored.Status)
}
