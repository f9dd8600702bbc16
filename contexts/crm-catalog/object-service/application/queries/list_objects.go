package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

// ListObjectsUseCase lists the actor's company records with optional search,
// type, and per-field filters. Reads are open to any authenticated company
// member; the company predicate is the only hard gate.
type ListObjectsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListObjectsUseCase) Execute(ctx context.Context, actor authctx.Context, filter ports.ListFilter) ([]entities.Object, error) {
	normalized, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return u.Repository.ListObjects(ctx, actor.CompanyID, normalized)
}

func normalizeFilter(filter ports.ListFilter) (ports.ListFilter, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Type = strings.TrimSpace(filter.Type)

	switch filter.SortBy {
	case "", "createdAt", "name", "type":
	default:
		return ports.ListFilter{}, fmt.Errorf("%w: unknown sort column %q", domainerrors.ErrInvalidListFilter, filter.SortBy)
	}
	if filter.SortBy == "" {
		filter.SortBy = "createdAt"
	}

	switch strings.ToLower(filter.SortOrder) {
	case "":
		filter.SortOrder = "desc"
	case "asc", "desc":
		filter.SortOrder = strings.ToLower(filter.SortOrder)
	default:
		return ports.ListFilter{}, fmt.Errorf("%w: sort order must be asc or desc", domainerrors.ErrInvalidListFilter)
	}

	for name := range filter.Fields {
		if strings.TrimSpace(name) == "" {
			return ports.ListFilter{}, fmt.Errorf("%w: blank field filter name", domainerrors.ErrInvalidListFilter)
		}
	}
	return filter, nil
}
