package commands_test

import (
	"context"
	"errors"
	"testing"

	object "atlas/contexts/crm-catalog/object-service"
	"atlas/contexts/crm-catalog/object-service/application/commands"
	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/internal/shared/authctx"
)

func adminActor(userID, companyID string) authctx.Context {
	return authctx.Context{
		UserID:    userID,
		CompanyID: companyID,
		Roles: []authctx.RoleGrant{
			{Name: authctx.AdminRoleName, Permissions: authctx.PermissionSet{All: true, ManageUsers: true}},
		},
	}
}

func memberActor(userID, companyID string) authctx.Context {
	return authctx.Context{
		UserID:    userID,
		CompanyID: companyID,
		Roles: []authctx.RoleGrant{
			{Name: "user", Permissions: authctx.PermissionSet{Create: true, Read: true, Update: true}},
		},
	}
}

func createObject(t *testing.T, module object.Module, actor authctx.Context, name, objectType string, fields entities.Fields) entities.Object {
	t.Helper()
	created, err := module.Handler.CreateObject.Execute(context.Background(), actor, commands.CreateObjectCommand{
		Name:   name,
		Type:   objectType,
		Fields: fields,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return created
}

func TestCreateObjectStampsOwnership(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := memberActor("u1", "c1")

	created := createObject(t, module, actor, "Globex deal", "Lead", entities.Fields{
		"value": entities.NumberValue(5000),
	})

	if created.CompanyID != "c1" || created.CreatedBy != "u1" {
		t.Fatalf("ownership must come from the actor, got %+v", created)
	}
	if created.ObjectID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("create should stamp id and timestamps")
	}
}

func TestCreateObjectRequiresCreateFlag(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	reader := authctx.Context{
		UserID:    "u1",
		CompanyID: "c1",
		Roles:     []authctx.RoleGrant{{Name: "viewer", Permissions: authctx.PermissionSet{Read: true}}},
	}

	_, err := module.Handler.CreateObject.Execute(context.Background(), reader, commands.CreateObjectCommand{
		Name: "Globex deal",
		Type: "Lead",
	})
	if !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCreateObjectValidation(t *testing.T) {
	module := object.NewInMemoryModule(nil)

	_, err := module.Handler.CreateObject.Execute(context.Background(), memberActor("u1", "c1"), commands.CreateObjectCommand{
		Name: "  ",
		Type: "Lead",
	})
	if !errors.Is(err, domainerrors.ErrInvalidObject) {
		t.Fatalf("expected ErrInvalidObject for blank name, got %v", err)
	}
}

func TestUpdateObjectMergesFields(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := memberActor("u1", "c1")
	created := createObject(t, module, actor, "Globex deal", "Lead", entities.Fields{
		"stage": entities.StringValue("new"),
		"value": entities.NumberValue(5000),
	})

	newName := "Globex renewal"
	updated, err := module.Handler.UpdateObject.Execute(context.Background(), actor, commands.UpdateObjectCommand{
		ObjectID: created.ObjectID,
		Name:     &newName,
		Fields: entities.Fields{
			"stage": entities.StringValue("won"),
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Globex renewal" {
		t.Fatalf("name should update, got %q", updated.Name)
	}
	if updated.Type != "Lead" {
		t.Fatalf("absent members must stay untouched, got type %q", updated.Type)
	}
	if updated.Fields["stage"].Str != "won" {
		t.Fatalf("field patch should win, got %+v", updated.Fields["stage"])
	}
	if updated.Fields["value"].Num != 5000 {
		t.Fatalf("untouched fields must survive the merge, got %+v", updated.Fields["value"])
	}
}

func TestUpdateForeignObjectReadsAsMissing(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	created := createObject(t, module, memberActor("u1", "c1"), "Globex deal", "Lead", nil)

	newName := "hijacked"
	_, err := module.Handler.UpdateObject.Execute(context.Background(), memberActor("u9", "c2"), commands.UpdateObjectCommand{
		ObjectID: created.ObjectID,
		Name:     &newName,
	})
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("cross-tenant update must look like not-found, got %v", err)
	}
}

func TestDeleteObjectRequiresDeleteFlag(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	member := memberActor("u1", "c1")
	created := createObject(t, module, member, "Globex deal", "Lead", nil)

	err := module.Handler.DeleteObject.Execute(context.Background(), member, created.ObjectID)
	if !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("default member role has no delete flag, got %v", err)
	}

	admin := adminActor("u2", "c1")
	if err := module.Handler.DeleteObject.Execute(context.Background(), admin, created.ObjectID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	_, err = module.Handler.GetObject.Execute(context.Background(), admin, created.ObjectID)
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("deleted record should be gone, got %v", err)
	}
}

func TestDeleteForeignObjectReadsAsMissing(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	created := createObject(t, module, memberActor("u1", "c1"), "Globex deal", "Lead", nil)

	err := module.Handler.DeleteObject.Execute(context.Background(), adminActor("u9", "c2"), created.ObjectID)
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("cross-tenant delete must look like not-found, got %v", err)
	}
}

func TestCreateRelationSameCompanyOnly(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := memberActor("u1", "c1")
	source := createObject(t, module, actor, "Globex", "Company", nil)
	target := createObject(t, module, actor, "Hank Scorpio", "Contact", nil)
	foreign := createObject(t, module, memberActor("u9", "c2"), "Moe's", "Company", nil)

	relation, err := module.Handler.CreateRelation.Execute(context.Background(), actor, commands.CreateRelationCommand{
		SourceID: source.ObjectID,
		TargetID: target.ObjectID,
		Label:    "employs",
	})
	if err != nil {
		t.Fatalf("create relation: %v", err)
	}
	if relation.CompanyID != "c1" || relation.Label != "employs" {
		t.Fatalf("unexpected relation %+v", relation)
	}

	_, err = module.Handler.CreateRelation.Execute(context.Background(), actor, commands.CreateRelationCommand{
		SourceID: source.ObjectID,
		TargetID: foreign.ObjectID,
		Label:    "partners",
	})
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("foreign endpoint must read as missing, got %v", err)
	}
}

func TestCreateRelationRejectsSelfLink(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := memberActor("u1", "c1")
	source := createObject(t, module, actor, "Globex", "Company", nil)

	_, err := module.Handler.CreateRelation.Execute(context.Background(), actor, commands.CreateRelationCommand{
		SourceID: source.ObjectID,
		TargetID: source.ObjectID,
		Label:    "self",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRelation) {
		t.Fatalf("expected ErrInvalidRelation, got %v", err)
	}
}

func TestDeleteObjectRemovesItsRelations(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	admin := adminActor("u1", "c1")
	source := createObject(t, module, admin, "Globex", "Company", nil)
	target := createObject(t, module, admin, "Hank Scorpio", "Contact", nil)

	if _, err := module.Handler.CreateRelation.Execute(context.Background(), admin, commands.CreateRelationCommand{
		SourceID: source.ObjectID,
		TargetID: target.ObjectID,
		Label:    "employs",
	}); err != nil {
		t.Fatalf("create relation: %v", err)
	}
	if err := module.Handler.DeleteObject.Execute(context.Background(), admin, source.ObjectID); err != nil {
		t.Fatalf("delete source: %v", err)
	}

	relations, err := module.Handler.ListRelations.Execute(context.Background(), admin, target.ObjectID)
	if err != nil {
		t.Fatalf("list relations: %v", err)
	}
	if len(relations) != 0 {
		t.Fatalf("edges must die with either endpoint, got %+v", relations)
	}
}
