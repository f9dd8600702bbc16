package queries

import (
	"context"
	"sort"

	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

// seedTypes are always offered, so a fresh company sees a usable catalog
// before it registers anything or creates its first record.
var seedTypes = []string{"Company", "Contact", "Lead", "Project", "Task"}

// ListObjectTypesUseCase merges the seed catalog, registered catalog
// entries, and types already in use by the company's records.
type ListObjectTypesUseCase struct {
	Repository ports.Repository
}

func (u ListObjectTypesUseCase) Execute(ctx context.Context, actor authctx.Context) ([]string, error) {
	inUse, err := u.Repository.ListDistinctTypes(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	registered, err := u.Repository.ListObjectTypes(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	names := make([]string, 0, len(seedTypes)+len(inUse)+len(registered))
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range seedTypes {
		add(name)
	}
	for _, entry := range registered {
		add(entry.Name)
	}
	for _, name := range inUse {
		add(name)
	}
	sort.Strings(names)
	return names, nil
}
