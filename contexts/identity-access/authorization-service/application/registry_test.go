package application_test

import (
	"context"
	"errors"
	"testing"

	authorization "atlas/contexts/identity-access/authorization-service"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/internal/shared/authctx"
)

func TestEnsureRoleIsIdempotent(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	ctx := context.Background()

	first, err := module.Registry.EnsureRole(ctx, "user", authctx.PermissionSet{Create: true, Read: true, Update: true})
	if err != nil {
		t.Fatalf("ensure role: %v", err)
	}
	second, err := module.Registry.EnsureRole(ctx, "user", authctx.PermissionSet{All: true})
	if err != nil {
		t.Fatalf("ensure role again: %v", err)
	}

	if first.RoleID != second.RoleID {
		t.Fatalf("same name should resolve the same role")
	}
	if second.Permissions.All {
		t.Fatalf("permissions bind at creation; a later ensure must not widen them")
	}
}

func TestEnsureRoleRejectsBlankName(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	_, err := module.Registry.EnsureRole(context.Background(), "   ", authctx.PermissionSet{Read: true})
	if !errors.Is(err, domainerrors.ErrInvalidRoleName) {
		t.Fatalf("expected ErrInvalidRoleName, got %v", err)
	}
}

func TestAssignRoleUnknownRole(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	err := module.Registry.AssignRole(context.Background(), "u1", "missing-role")
	if !errors.Is(err, domainerrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestAssignRoleDuplicate(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	ctx := context.Background()

	role, err := module.Registry.EnsureRole(ctx, "user", authctx.PermissionSet{Read: true})
	if err != nil {
		t.Fatalf("ensure role: %v", err)
	}
	if err := module.Registry.AssignRole(ctx, "u1", role.RoleID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	err = module.Registry.AssignRole(ctx, "u1", role.RoleID)
	if !errors.Is(err, domainerrors.ErrRoleAlreadyAssigned) {
		t.Fatalf("expected ErrRoleAlreadyAssigned, got %v", err)
	}
}

func TestListUserRolesReturnsGrants(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	ctx := context.Background()

	admin, err := module.Registry.EnsureRole(ctx, authctx.AdminRoleName, authctx.PermissionSet{All: true, ManageUsers: true})
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	viewer, err := module.Registry.EnsureRole(ctx, "viewer", authctx.PermissionSet{Read: true})
	if err != nil {
		t.Fatalf("ensure viewer: %v", err)
	}
	if err := module.Registry.AssignRole(ctx, "u1", admin.RoleID); err != nil {
		t.Fatalf("assign admin: %v", err)
	}
	if err := module.Registry.AssignRole(ctx, "u1", viewer.RoleID); err != nil {
		t.Fatalf("assign viewer: %v", err)
	}

	grants, err := module.Registry.ListUserRoles(ctx, "u1")
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants))
	}

	actor := authctx.Context{UserID: "u1", CompanyID: "c1", Roles: grants}
	if !actor.IsAdmin() {
		t.Fatalf("grant set should pass the admin gate")
	}
	if !actor.HasPermission(authctx.FlagDelete) {
		t.Fatalf("admin grant should cover delete through the all flag")
	}
}
