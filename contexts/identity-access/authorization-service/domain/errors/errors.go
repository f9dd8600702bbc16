package errors

import "errors"

var (
	ErrInvalidRoleName     = errors.New("invalid role name")
	ErrInvalidAssignment   = errors.New("role id is required")
	ErrRoleNotFound        = errors.New("role not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
	ErrAdminRequired       = errors.New("admin role required")
	ErrCompanyMismatch     = errors.New("user belongs to a different company")
)
