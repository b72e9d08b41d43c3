package invitations

import "errors"

// Token failures share deliberately vague messages so responses do not
// reveal whether a given token ever existed.
var (
	ErrInvalidToken = errors.New("invitation is invalid")
	ErrExpired      = errors.New("invitation has expired")
	ErrAlreadyUsed  = errors.New("invitation has already been used")
	ErrInvalidState = errors.New("invitation is not pending")
)
