package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateObject(ctx context.Context, object entities.Object) error {
	row, err := objectModelFromEntity(object)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetObject(ctx context.Context, objectID, companyID string) (entities.Object, error) {
	var row objectModel
	err := r.db.WithContext(ctx).
		Where("object_id = ? AND company_id = ?", objectID, companyID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Object{}, domainerrors.ErrObjectNotFound
		}
		return entities.Object{}, err
	}
	return row.toEntity()
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"type":      "object_type",
}

func (r *Repository) ListObjects(ctx context.Context, companyID string, filter ports.ListFilter) ([]entities.Object, error) {
	// Tenancy predicate first; every other clause narrows within it.
	query := r.db.WithContext(ctx).
		Model(&objectModel{}).
		Where("company_id = ?", companyID)

	if filter.Type != "" {
		query = query.Where("object_type = ?", filter.Type)
	}
	// Free-text search covers name, type, and description only; dynamic
	// fields are reachable through the per-field filters.
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR object_type ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	for name, value := range filter.Fields {
		query = query.Where("fields->>? ILIKE ?", name, "%"+value+"%")
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort column %q", domainerrors.ErrInvalidListFilter, filter.SortBy)
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	var rows []objectModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	objects := make([]entities.Object, 0, len(rows))
	for _, row := range rows {
		object, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (r *Repository) UpdateObject(ctx context.Context, object entities.Object) error {
	row, err := objectModelFromEntity(object)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&objectModel{}).
		Where("object_id = ? AND company_id = ?", object.ObjectID, object.CompanyID).
		Updates(map[string]any{
			"name":        row.Name,
			"object_type": row.ObjectType,
			"description": row.Description,
			"fields":      row.Fields,
			"updated_at":  row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrObjectNotFound
	}
	return nil
}

func (r *Repository) DeleteObject(ctx context.Context, objectID, companyID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("object_id = ? AND company_id = ?", objectID, companyID).
			Delete(&objectModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrObjectNotFound
		}
		// Edges die with either endpoint.
		return tx.
			Where("company_id = ? AND (source_id = ? OR target_id = ?)", companyID, objectID, objectID).
			Delete(&relationModel{}).
			Error
	})
}

func (r *Repository) ListDistinctTypes(ctx context.Context, companyID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&objectModel{}).
		Distinct("object_type").
		Where("company_id = ?", companyID).
		Order("object_type ASC").
		Pluck("object_type", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SaveObjectType races through the per-company unique name constraint:
// insert with on-conflict-do-nothing, then re-fetch whichever row won.
func (r *Repository) SaveObjectType(ctx context.Context, objectType entities.ObjectType) (entities.ObjectType, error) {
	template := objectType.Template
	if template == nil {
		template = entities.Fields{}
	}
	encoded, err := json.Marshal(template)
	if err != nil {
		return entities.ObjectType{}, err
	}
	row := objectTypeModel{
		TypeID:    objectType.TypeID,
		CompanyID: objectType.CompanyID,
		Name:      objectType.Name,
		Template:  datatypes.JSON(encoded),
		CreatedBy: objectType.CreatedBy,
		CreatedAt: objectType.CreatedAt.UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return entities.ObjectType{}, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return row.toEntity()
	}

	var existing objectTypeModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", objectType.CompanyID, objectType.Name).
		First(&existing).
		Error; err != nil {
		return entities.ObjectType{}, err
	}
	return existing.toEntity()
}

func (r *Repository) ListObjectTypes(ctx context.Context, companyID string) ([]entities.ObjectType, error) {
	var rows []objectTypeModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	types := make([]entities.ObjectType, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		types = append(types, entry)
	}
	return types, nil
}

func (r *Repository) CreateRelation(ctx context.Context, relation entities.ObjectRelation) error {
	row := relationModel{
		RelationID: relation.RelationID,
		CompanyID:  relation.CompanyID,
		SourceID:   relation.SourceID,
		TargetID:   relation.TargetID,
		Label:      relation.Label,
		CreatedBy:  relation.CreatedBy,
		CreatedAt:  relation.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListRelations(ctx context.Context, objectID, companyID string) ([]entities.ObjectRelation, error) {
	var rows []relationModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND (source_id = ? OR target_id = ?)", companyID, objectID, objectID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	relations := make([]entities.ObjectRelation, 0, len(rows))
	for _, row := range rows {
		relations = append(relations, row.toEntity())
	}
	return relations, nil
}

type objectModel struct {
	ObjectID    string         `gorm:"column:object_id;primaryKey"`
	CompanyID   string         `gorm:"column:company_id;index"`
	Name        string         `gorm:"column:name"`
	ObjectType  string         `gorm:"column:object_type;index"`
	Description string         `gorm:"column:description"`
	Fields      datatypes.JSON `gorm:"column:fields"`
	CreatedBy   string         `gorm:"column:created_by"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (objectModel) TableName() string {
	return "objects"
}

func objectModelFromEntity(object entities.Object) (objectModel, error) {
	fields := object.Fields
	if fields == nil {
		fields = entities.Fields{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return objectModel{}, err
	}
	return objectModel{
		ObjectID:    object.ObjectID,
		CompanyID:   object.CompanyID,
		Name:        object.Name,
		ObjectType:  object.Type,
		Description: object.Description,
		Fields:      datatypes.JSON(encoded),
		CreatedBy:   object.CreatedBy,
		CreatedAt:   object.CreatedAt.UTC(),
		UpdatedAt:   object.UpdatedAt.UTC(),
	}, nil
}

func (m objectModel) toEntity() (entities.Object, error) {
	fields := entities.Fields{}
	if len(m.Fields) > 0 {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return entities.Object{}, err
		}
	}
	return entities.Object{
		ObjectID:    m.ObjectID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Type:        m.ObjectType,
		Description: m.Description,
		Fields:      fields,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

type objectTypeModel struct {
	TypeID    string         `gorm:"column:type_id;primaryKey"`
	CompanyID string         `gorm:"column:company_id;uniqueIndex:idx_object_types_company_name"`
	Name      string         `gorm:"column:name;uniqueIndex:idx_object_types_company_name"`
	Template  datatypes.JSON `gorm:"column:template"`
	CreatedBy string         `gorm:"column:created_by"`
	CreatedAt time.Time      `gorm:"column:created_at"`
}

func (objectTypeModel) TableName() string {
	return "object_types"
}

func (m objectTypeModel) toEntity() (entities.ObjectType, error) {
	template := entities.Fields{}
	if len(m.Template) > 0 {
		if err := json.Unmarshal(m.Template, &template); err != nil {
			return entities.ObjectType{}, err
		}
	}
	return entities.ObjectType{
		TypeID:    m.TypeID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Template:  template,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

type relationModel struct {
	RelationID string    `gorm:"column:relation_id;primaryKey"`
	CompanyID  string    `gorm:"column:company_id;index"`
	SourceID   string    `gorm:"column:source_id;index"`
	TargetID   string    `gorm:"column:target_id;index"`
	Label      string    `gorm:"column:label"`
	CreatedBy  string    `gorm:"column:created_by"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (relationModel) TableName() string {
	return "object_relations"
}

func (m relationModel) toEntity() entities.ObjectRelation {
	return entities.ObjectRelation{
		RelationID: m.RelationID,
		CompanyID:  m.CompanyID,
		SourceID:   m.SourceID,
		TargetID:   m.TargetID,
		Label:      m.Label,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}
