package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	authorization "atlas/contexts/identity-access/authorization-service"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"
)

func admin(companyID string) authctx.Context {
	return authctx.Context{
		UserID:    "admin-1",
		CompanyID: companyID,
		Roles: []authctx.RoleGrant{
			{Name: authctx.AdminRoleName, Permissions: authctx.PermissionSet{All: true, ManageUsers: true}},
		},
	}
}

func TestListCompanyUsersScopedToActorCompany(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	now := time.Now()
	module.Store.PutUser(ports.UserRecord{UserID: "u1", Username: "alice", CompanyID: "c1", CreatedAt: now})
	module.Store.PutUser(ports.UserRecord{UserID: "u2", Username: "bob", CompanyID: "c1", CreatedAt: now.Add(time.Second)})
	module.Store.PutUser(ports.UserRecord{UserID: "u3", Username: "mallory", CompanyID: "c2", CreatedAt: now})

	users, err := module.Handler.ListCompanyUsers.Execute(context.Background(), admin("c1"))
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 company users, got %d", len(users))
	}
	for _, user := range users {
		if user.User.CompanyID != "c1" {
			t.Fatalf("foreign user leaked into the listing: %+v", user.User)
		}
	}
}

func TestListCompanyUsersEmbedsRoles(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	ctx := context.Background()
	module.Store.PutUser(ports.UserRecord{UserID: "u1", Username: "alice", CompanyID: "c1", CreatedAt: time.Now()})

	role, err := module.Registry.EnsureRole(ctx, "user", authctx.PermissionSet{Read: true})
	if err != nil {
		t.Fatalf("ensure role: %v", err)
	}
	if err := module.Registry.AssignRole(ctx, "u1", role.RoleID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	users, err := module.Handler.ListCompanyUsers.Execute(ctx, admin("c1"))
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || len(users[0].Roles) != 1 || users[0].Roles[0].Name != "user" {
		t.Fatalf("listing should embed role assignments, got %+v", users)
	}
}

func TestListCompanyUsersRequiresAdmin(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	member := authctx.Context{
		UserID:    "u2",
		CompanyID: "c1",
		Roles:     []authctx.RoleGrant{{Name: "user", Permissions: authctx.PermissionSet{Read: true}}},
	}
	_, err := module.Handler.ListCompanyUsers.Execute(context.Background(), member)
	if !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
}

func TestListRolesRequiresAdmin(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)
	ctx := context.Background()

	if _, err := module.Registry.EnsureRole(ctx, "user", authctx.PermissionSet{Read: true}); err != nil {
		t.Fatalf("ensure role: %v", err)
	}

	member := authctx.Context{
		UserID:    "u2",
		CompanyID: "c1",
		Roles:     []authctx.RoleGrant{{Name: "user", Permissions: authctx.PermissionSet{Read: true}}},
	}
	if _, err := module.Handler.ListRoles.Execute(ctx, member); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired for members, got %v", err)
	}

	roles, err := module.Handler.ListRoles.Execute(ctx, admin("c1"))
	if err != nil {
		t.Fatalf("list roles as admin: %v", err)
	}
	if len(roles) != 1 || roles[0].Name != "user" {
		t.Fatalf("expected the single registered role, got %+v", roles)
	}
}
