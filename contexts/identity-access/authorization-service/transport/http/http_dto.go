package httptransport

import "time"

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RoleResponse is the wire shape of a global role.
type RoleResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Permissions PermissionsResponse `json:"permissions"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// PermissionsResponse carries the per-role flag set.
type PermissionsResponse struct {
	All         bool `json:"all"`
	Create      bool `json:"create"`
	Read        bool `json:"read"`
	Update      bool `json:"update"`
	Delete      bool `json:"delete"`
	ManageUsers bool `json:"manageUsers"`
}

// AssignRoleRequest grants an existing role to a user in the actor's company.
type AssignRoleRequest struct {
	RoleID string `json:"roleId" validate:"required"`
}

// CompanyUserResponse is a directory row with its roles embedded.
type CompanyUserResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	CompanyID string         `json:"companyId"`
	CreatedAt time.Time      `json:"createdAt"`
	Roles     []RoleResponse `json:"roles"`
}
