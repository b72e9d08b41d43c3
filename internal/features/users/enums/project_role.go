package users_enums

// ProjectRole is a user's standing permission on one wedding project,
// ordered by capability: VIEWER < COLLABORATOR < PLANNER < OWNER.
type ProjectRole string

const (
	ProjectRoleViewer       ProjectRole = "VIEWER"
	ProjectRoleCollaborator ProjectRole = "COLLABORATOR"
	ProjectRolePlanner      ProjectRole = "PLANNER"
	ProjectRoleOwner        ProjectRole = "OWNER"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleViewer, ProjectRoleCollaborator, ProjectRolePlanner, ProjectRoleOwner:
		return true
	default:
		return false
	}
}

// Rank returns the capability rank of the role. Unknown values rank as 0
// so they never satisfy any requirement (deny by default).
func (r ProjectRole) Rank() int {
	switch r {
	case ProjectRoleViewer:
		return 1
	case ProjectRoleCollaborator:
		return 2
	case ProjectRolePlanner:
		return 3
	case ProjectRoleOwner:
		return 4
	default:
		return 0
	}
}

// Meets reports whether a caller holding this role satisfies the required
// role. Every permission check in the system goes through this single
// ranking; derived checks below are expressed in terms of it.
func (r ProjectRole) Meets(required ProjectRole) bool {
	return r.Rank() >= required.Rank()
}

// CanEdit reports whether the role may mutate project records
// (tasks, guests, vendors, budget entries).
func (r ProjectRole) CanEdit() bool {
	return r.Meets(ProjectRoleCollaborator)
}

// CanManageCollaborators reports whether the role may invite, re-role,
// or remove other collaborators.
func (r ProjectRole) CanManageCollaborators() bool {
	return r.Meets(ProjectRolePlanner)
}
