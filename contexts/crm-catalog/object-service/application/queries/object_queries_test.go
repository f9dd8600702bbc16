package queries_test

import (
	"context"
	"errors"
	"testing"

	object "atlas/contexts/crm-catalog/object-service"
	"atlas/contexts/crm-catalog/object-service/application/commands"
	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

func member(userID, companyID string) authctx.Context {
	return authctx.Context{
		UserID:    userID,
		CompanyID: companyID,
		Roles: []authctx.RoleGrant{
			{Name: "user", Permissions: authctx.PermissionSet{Create: true, Read: true, Update: true}},
		},
	}
}

func seed(t *testing.T, module object.Module, actor authctx.Context, name, objectType string, fields entities.Fields) entities.Object {
	t.Helper()
	created, err := module.Handler.CreateObject.Execute(context.Background(), actor, commands.CreateObjectCommand{
		Name:   name,
		Type:   objectType,
		Fields: fields,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return created
}

func TestListObjectsScopedToCompany(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	acme := member("u1", "c1")
	globex := member("u9", "c2")
	seed(t, module, acme, "Acme lead", "Lead", nil)
	seed(t, module, globex, "Globex lead", "Lead", nil)

	listed, err := module.Handler.ListObjects.Execute(context.Background(), acme, ports.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Acme lead" {
		t.Fatalf("listing must stay inside the actor's company, got %+v", listed)
	}
}

func TestListObjectsSearchScope(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := member("u1", "c1")
	ctx := context.Background()

	seed(t, module, actor, "Paris office", "Company", nil)
	if _, err := module.Handler.CreateObject.Execute(ctx, actor, commands.CreateObjectCommand{
		Name:        "Globex",
		Type:        "Company",
		Description: "HQ moved to Paris in 2024",
	}); err != nil {
		t.Fatalf("seed Globex: %v", err)
	}
	// Matches only inside a dynamic field; free-text search must skip it.
	seed(t, module, actor, "Initech", "Company", entities.Fields{
		"city": entities.StringValue("Paris"),
	})

	listed, err := module.Handler.ListObjects.Execute(ctx, actor, ports.ListFilter{Search: "paris", SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Globex" || listed[1].Name != "Paris office" {
		t.Fatalf("search covers name, type, and description only, got %+v", listed)
	}

	listed, err = module.Handler.ListObjects.Execute(ctx, actor, ports.ListFilter{
		Fields: map[string]string{"city": "paris"},
	})
	if err != nil {
		t.Fatalf("field filter: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Initech" {
		t.Fatalf("field values stay reachable through per-field filters, got %+v", listed)
	}
}

func TestListObjectsFieldFilter(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := member("u1", "c1")
	seed(t, module, actor, "Globex", "Company", entities.Fields{"city": entities.StringValue("Paris")})
	seed(t, module, actor, "Initech", "Company", entities.Fields{"city": entities.StringValue("Austin")})
	seed(t, module, actor, "Hooli", "Company", nil)

	listed, err := module.Handler.ListObjects.Execute(context.Background(), actor, ports.ListFilter{
		Fields: map[string]string{"city": "aus"},
	})
	if err != nil {
		t.Fatalf("field filter: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Initech" {
		t.Fatalf("field filter should substring-match one record, got %+v", listed)
	}
}

func TestListObjectsTypeFilterAndSort(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := member("u1", "c1")
	seed(t, module, actor, "Beta", "Lead", nil)
	seed(t, module, actor, "Alpha", "Lead", nil)
	seed(t, module, actor, "Gamma", "Contact", nil)

	listed, err := module.Handler.ListObjects.Execute(context.Background(), actor, ports.ListFilter{
		Type:      "Lead",
		SortBy:    "name",
		SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Alpha" || listed[1].Name != "Beta" {
		t.Fatalf("expected [Alpha Beta], got %+v", listed)
	}
}

func TestListObjectsRejectsUnknownSortColumn(t *testing.T) {
	module := object.NewInMemoryModule(nil)

	_, err := module.Handler.ListObjects.Execute(context.Background(), member("u1", "c1"), ports.ListFilter{
		SortBy: "companyId",
	})
	if !errors.Is(err, domainerrors.ErrInvalidListFilter) {
		t.Fatalf("expected ErrInvalidListFilter, got %v", err)
	}
}

func TestListObjectTypesMergesSeedRegisteredAndInUse(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := member("u1", "c1")
	ctx := context.Background()

	seed(t, module, actor, "Q3 offsite", "Event", nil)
	if _, err := module.Handler.SaveObjectType.Execute(ctx, actor, "Invoice", nil); err != nil {
		t.Fatalf("save type: %v", err)
	}

	names, err := module.Handler.ListObjectTypes.Execute(ctx, actor)
	if err != nil {
		t.Fatalf("list types: %v", err)
	}

	want := map[string]bool{"Contact": true, "Lead": true, "Company": true, "Project": true, "Task": true, "Event": true, "Invoice": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d types, got %v", len(want), names)
	}
	for _, name := range names {
		if !want[name] {
			t.Fatalf("unexpected type %q in %v", name, names)
		}
	}
}

func TestListRelationsAnchorsOnCompanyRecord(t *testing.T) {
	module := object.NewInMemoryModule(nil)
	actor := member("u1", "c1")
	ctx := context.Background()

	source := seed(t, module, actor, "Globex", "Company", nil)
	target := seed(t, module, actor, "Hank Scorpio", "Contact", nil)
	if _, err := module.Handler.CreateRelation.Execute(ctx, actor, commands.CreateRelationCommand{
		SourceID: source.ObjectID,
		TargetID: target.ObjectID,
		Label:    "employs",
	}); err != nil {
		t.Fatalf("create relation: %v", err)
	}

	// Both directions resolve the edge.
	for _, anchor := range []string{source.ObjectID, target.ObjectID} {
		relations, err := module.Handler.ListRelations.Execute(ctx, actor, anchor)
		if err != nil {
			t.Fatalf("list relations: %v", err)
		}
		if len(relations) != 1 || relations[0].Label != "employs" {
			t.Fatalf("expected the single edge, got %+v", relations)
		}
	}

	// A foreign caller cannot anchor on the record at all.
	_, err := module.Handler.ListRelations.Execute(ctx, member("u9", "c2"), source.ObjectID)
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("foreign anchor must read as missing, got %v", err)
	}
}
