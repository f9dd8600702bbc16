package commands_test

import (
	"context"
	"errors"
	"testing"

	auth "atlas/contexts/identity-access/auth-service"
	"atlas/contexts/identity-access/auth-service/application/commands"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"
	authorization "atlas/contexts/identity-access/authorization-service"
	"atlas/internal/shared/authctx"
)

func newModules(t *testing.T) (auth.Module, authorization.Module) {
	t.Helper()
	authzModule := authorization.NewInMemoryModule(nil)
	authModule := auth.NewInMemoryModule(authzModule.Registry, nil)
	return authModule, authzModule
}

func register(t *testing.T, module auth.Module, username, password, company string) commands.RegisterResult {
	t.Helper()
	result, err := module.Handler.Register.Execute(context.Background(), commands.RegisterCommand{
		Username:    username,
		Password:    password,
		CompanyName: company,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return result
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	authModule, _ := newModules(t)

	result := register(t, authModule, "alice", "s3cret-pass", "Acme")

	if len(result.Roles) != 1 || result.Roles[0].Name != authctx.AdminRoleName {
		t.Fatalf("first company user should hold the admin role, got %+v", result.Roles)
	}
	perms := result.Roles[0].Permissions
	if !perms.All || !perms.ManageUsers {
		t.Fatalf("admin role should carry all + manageUsers, got %+v", perms)
	}
	if result.Session.Token == "" {
		t.Fatalf("registration should start a session")
	}
	if result.User.PasswordHash == "s3cret-pass" {
		t.Fatalf("password must not be stored in the clear")
	}
}

func TestRegisterSecondUserGetsDefaultRole(t *testing.T) {
	authModule, _ := newModules(t)

	first := register(t, authModule, "alice", "s3cret-pass", "Acme")
	second := register(t, authModule, "bob", "s3cret-pass", "Acme")

	if second.User.CompanyID != first.User.CompanyID {
		t.Fatalf("same company name should join the existing company")
	}
	if len(second.Roles) != 1 || second.Roles[0].Name != "user" {
		t.Fatalf("second user should hold the default role, got %+v", second.Roles)
	}
	perms := second.Roles[0].Permissions
	if !perms.Create || !perms.Read || !perms.Update {
		t.Fatalf("default role should grant create/read/update, got %+v", perms)
	}
	if perms.Delete || perms.All || perms.ManageUsers {
		t.Fatalf("default role must not grant delete or admin flags, got %+v", perms)
	}
}

func TestRegisterSameCompanyNameDifferentTenantsStaySeparate(t *testing.T) {
	authModule, _ := newModules(t)

	acme := register(t, authModule, "alice", "s3cret-pass", "Acme")
	globex := register(t, authModule, "carol", "s3cret-pass", "Globex")

	if acme.User.CompanyID == globex.User.CompanyID {
		t.Fatalf("different company names must create distinct tenants")
	}
	if len(globex.Roles) != 1 || globex.Roles[0].Name != authctx.AdminRoleName {
		t.Fatalf("first user of a new company should be its admin")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	authModule, _ := newModules(t)
	register(t, authModule, "alice", "s3cret-pass", "Acme")

	_, err := authModule.Handler.Register.Execute(context.Background(), commands.RegisterCommand{
		Username:    "alice",
		Password:    "other-pass",
		CompanyName: "Globex",
	})
	if !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	authModule, _ := newModules(t)

	_, err := authModule.Handler.Register.Execute(context.Background(), commands.RegisterCommand{
		Username:    "  ",
		Password:    "s3cret-pass",
		CompanyName: "Acme",
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank username, got %v", err)
	}
}
