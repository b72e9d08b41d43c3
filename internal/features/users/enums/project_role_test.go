package users_enums

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderedRoles = []ProjectRole{
	ProjectRoleViewer,
	ProjectRoleCollaborator,
	ProjectRolePlanner,
	ProjectRoleOwner,
}

func Test_Meets_ForAllRolePairs_MatchesRankOrder(t *testing.T) {
	for _, caller := range orderedRoles {
		for _, required := range orderedRoles {
			expected := caller.Rank() >= required.Rank()

			assert.Equal(
				t,
				expected,
				caller.Meets(required),
				fmt.Sprintf("caller=%s required=%s", caller, required),
			)
		}
	}
}

func Test_Meets_OwnerSatisfiesEveryRequirement(t *testing.T) {
	for _, required := range orderedRoles {
		assert.True(t, ProjectRoleOwner.Meets(required))
	}
}

func Test_Meets_ViewerSatisfiesOnlyViewer(t *testing.T) {
	assert.True(t, ProjectRoleViewer.Meets(ProjectRoleViewer))
	assert.False(t, ProjectRoleViewer.Meets(ProjectRoleCollaborator))
	assert.False(t, ProjectRoleViewer.Meets(ProjectRolePlanner))
	assert.False(t, ProjectRoleViewer.Meets(ProjectRoleOwner))
}

func Test_Meets_RoleAlwaysSatisfiesItself(t *testing.T) {
	for _, role := range orderedRoles {
		assert.True(t, role.Meets(role))
	}
}

func Test_Rank_UnknownRoleRanksZeroAndIsDeniedEverywhere(t *testing.T) {
	unknown := ProjectRole("WEDDING_CRASHER")

	assert.Equal(t, 0, unknown.Rank())
	assert.False(t, unknown.IsValid())

	for _, required := range orderedRoles {
		assert.False(t, unknown.Meets(required))
	}
}

func Test_DerivedChecks_FollowTheSingleRanking(t *testing.T) {
	for _, role := range orderedRoles {
		assert.Equal(t, role.Meets(ProjectRoleCollaborator), role.CanEdit())
		assert.Equal(t, role.Meets(ProjectRolePlanner), role.CanManageCollaborators())
	}

	assert.False(t, ProjectRoleViewer.CanEdit())
	assert.True(t, ProjectRoleCollaborator.CanEdit())
	assert.False(t, ProjectRoleCollaborator.CanManageCollaborators())
	assert.True(t, ProjectRolePlanner.CanManageCollaborators())
	assert.True(t, ProjectRoleOwner.CanManageCollaborators())
}
