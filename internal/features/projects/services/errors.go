package projects_services

import "errors"

var (
	// ErrPermissionDenied is returned on any insufficient-role check.
	// The message deliberately does not say which role would suffice.
	ErrPermissionDenied = errors.New("insufficient role for this action")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("user is already a collaborator on this project")

	// ErrOwnerProtected guards OWNER bindings: only another owner may
	// change or remove them.
	ErrOwnerProtected = errors.New("owner bindings can only be changed by an owner")

	// ErrLastOwner guards against orphaning a project.
	ErrLastOwner = errors.New("a project must keep at least one owner")
)
