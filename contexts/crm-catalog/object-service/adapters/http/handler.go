package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"atlas/contexts/crm-catalog/object-service/application/commands"
	"atlas/contexts/crm-catalog/object-service/application/queries"
	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	transport "atlas/contexts/crm-catalog/object-service/transport/http"
	"atlas/internal/shared/authctx"
)

var validate = validator.New()

// Handler adapts HTTP DTOs to application use cases.
type Handler struct {
	CreateObject    commands.CreateObjectUseCase
	UpdateObject    commands.UpdateObjectUseCase
	DeleteObject    commands.DeleteObjectUseCase
	CreateRelation  commands.CreateRelationUseCase
	SaveObjectType  commands.SaveObjectTypeUseCase
	GetObject       queries.GetObjectUseCase
	ListObjects     queries.ListObjectsUseCase
	ListObjectTypes queries.ListObjectTypesUseCase
	ListRelations   queries.ListRelationsUseCase
	Logger          *slog.Logger
}

func (h Handler) CreateObjectHandler(ctx context.Context, actor authctx.Context, req transport.CreateObjectRequest) (transport.ObjectResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.ObjectResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidObject, err)
	}
	object, err := h.CreateObject.Execute(ctx, actor, commands.CreateObjectCommand{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Fields:      req.Fields,
	})
	if err != nil {
		return transport.ObjectResponse{}, err
	}
	return toObjectResponse(object), nil
}

func (h Handler) GetObjectHandler(ctx context.Context, actor authctx.Context, objectID string) (transport.ObjectResponse, error) {
	object, err := h.GetObject.Execute(ctx, actor, objectID)
	if err != nil {
		return transport.ObjectResponse{}, err
	}
	return toObjectResponse(object), nil
}

func (h Handler) ListObjectsHandler(ctx context.Context, actor authctx.Context, filter ports.ListFilter) ([]transport.ObjectResponse, error) {
	objects, err := h.ListObjects.Execute(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.ObjectResponse, 0, len(objects))
	for _, object := range objects {
		responses = append(responses, toObjectResponse(object))
	}
	return responses, nil
}

func (h Handler) UpdateObjectHandler(ctx context.Context, actor authctx.Context, objectID string, req transport.UpdateObjectRequest) (transport.ObjectResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.ObjectResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidObject, err)
	}
	object, err := h.UpdateObject.Execute(ctx, actor, commands.UpdateObjectCommand{
		ObjectID:    objectID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Fields:      req.Fields,
	})
	if err != nil {
		return transport.ObjectResponse{}, err
	}
	return toObjectResponse(object), nil
}

func (h Handler) DeleteObjectHandler(ctx context.Context, actor authctx.Context, objectID string) error {
	return h.DeleteObject.Execute(ctx, actor, objectID)
}

func (h Handler) ListObjectTypesHandler(ctx context.Context, actor authctx.Context) (transport.ObjectTypesResponse, error) {
	names, err := h.ListObjectTypes.Execute(ctx, actor)
	if err != nil {
		return transport.ObjectTypesResponse{}, err
	}
	return transport.ObjectTypesResponse{Types: names}, nil
}

func (h Handler) SaveObjectTypeHandler(ctx context.Context, actor authctx.Context, req transport.SaveObjectTypeRequest) (transport.ObjectTypeResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.ObjectTypeResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidObjectType, err)
	}
	saved, err := h.SaveObjectType.Execute(ctx, actor, req.Name, req.Fields)
	if err != nil {
		return transport.ObjectTypeResponse{}, err
	}
	fields := saved.Template
	if fields == nil {
		fields = entities.Fields{}
	}
	return transport.ObjectTypeResponse{
		ID:        saved.TypeID,
		Name:      saved.Name,
		Fields:    fields,
		CreatedAt: saved.CreatedAt,
	}, nil
}

func (h Handler) CreateRelationHandler(ctx context.Context, actor authctx.Context, sourceID string, req transport.CreateRelationRequest) (transport.RelationResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.RelationResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidRelation, err)
	}
	relation, err := h.CreateRelation.Execute(ctx, actor, commands.CreateRelationCommand{
		SourceID: sourceID,
		TargetID: req.TargetID,
		Label:    req.Label,
	})
	if err != nil {
		return transport.RelationResponse{}, err
	}
	return toRelationResponse(relation), nil
}

func (h Handler) ListRelationsHandler(ctx context.Context, actor authctx.Context, objectID string) ([]transport.RelationResponse, error) {
	relations, err := h.ListRelations.Execute(ctx, actor, objectID)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.RelationResponse, 0, len(relations))
	for _, relation := range relations {
		responses = append(responses, toRelationResponse(relation))
	}
	return responses, nil
}

func toObjectResponse(object entities.Object) transport.ObjectResponse {
	fields := object.Fields
	if fields == nil {
		fields = entities.Fields{}
	}
	return transport.ObjectResponse{
		ID:          object.ObjectID,
		Name:        object.Name,
		Type:        object.Type,
		Description: object.Description,
		Fields:      fields,
		CompanyID:   object.CompanyID,
		CreatedBy:   object.CreatedBy,
		CreatedAt:   object.CreatedAt,
		UpdatedAt:   object.UpdatedAt,
	}
}

func toRelationResponse(relation entities.ObjectRelation) transport.RelationResponse {
	return transport.RelationResponse{
		ID:        relation.RelationID,
		SourceID:  relation.SourceID,
		TargetID:  relation.TargetID,
		Label:     relation.Label,
		CreatedBy: relation.CreatedBy,
		CreatedAt: relation.CreatedAt,
	}
}
