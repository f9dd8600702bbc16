package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"atlas/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"

	"github.com/jackc/pgx/v5/pgconn"
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

// EnsureRole races through the unique name constraint: insert with
// on-conflict-do-nothing, then re-fetch whichever row won.
func (r *Repository) EnsureRole(ctx context.Context, role entities.Role) (entities.Role, error) {
	row := roleModelFromEntity(role)
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return entities.Role{}, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return row.toEntity(), nil
	}

	var existing roleModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", role.Name).
		First(&existing).
		Error; err != nil {
		return entities.Role{}, err
	}
	return existing.toEntity(), nil
}

func (r *Repository) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, domainerrors.ErrRoleNotFound
		}
		return entities.Role{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRoles(ctx context.Context) ([]entities.Role, error) {
	var rows []roleModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	roles := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.toEntity())
	}
	return roles, nil
}

func (r *Repository) AssignRole(ctx context.Context, assignment entities.UserRole) error {
	row := userRoleModel{
		UserID:     assignment.UserID,
		RoleID:     assignment.RoleID,
		AssignedAt: assignment.AssignedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRoleAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *Repository) ListUserRoles(ctx context.Context, userID string) ([]entities.Role, error) {
	var rows []roleModel
	err := r.db.WithContext(ctx).
		Model(&roleModel{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	roles := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.toEntity())
	}
	return roles, nil
}

// FindUser and ListCompanyUsers read the auth service's users table through
// a read-only projection; this adapter never writes identity rows.
func (r *Repository) FindUser(ctx context.Context, userID string) (ports.UserRecord, bool, error) {
	var row directoryUserModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserRecord{}, false, nil
		}
		return ports.UserRecord{}, false, err
	}
	return row.toRecord(), true, nil
}

func (r *Repository) ListCompanyUsers(ctx context.Context, companyID string) ([]ports.UserRecord, error) {
	var rows []directoryUserModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	records := make([]ports.UserRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type roleModel struct {
	RoleID      string    `gorm:"column:role_id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	All         bool      `gorm:"column:perm_all"`
	Create      bool      `gorm:"column:perm_create"`
	Read        bool      `gorm:"column:perm_read"`
	Update      bool      `gorm:"column:perm_update"`
	Delete      bool      `gorm:"column:perm_delete"`
	ManageUsers bool      `gorm:"column:perm_manage_users"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (roleModel) TableName() string {
	return "roles"
}

func roleModelFromEntity(role entities.Role) roleModel {
	return roleModel{
		RoleID:      role.RoleID,
		Name:        role.Name,
		All:         role.Permissions.All,
		Create:      role.Permissions.Create,
		Read:        role.Permissions.Read,
		Update:      role.Permissions.Update,
		Delete:      role.Permissions.Delete,
		ManageUsers: role.Permissions.ManageUsers,
		CreatedAt:   role.CreatedAt.UTC(),
	}
}

func (m roleModel) toEntity() entities.Role {
	return entities.Role{
		RoleID: m.RoleID,
		Name:   m.Name,
		Permissions: authctx.PermissionSet{
			All:         m.All,
			Create:      m.Create,
			Read:        m.Read,
			Update:      m.Update,
			Delete:      m.Delete,
			ManageUsers: m.ManageUsers,
		},
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type userRoleModel struct {
	UserID     string    `gorm:"column:user_id;primaryKey"`
	RoleID     string    `gorm:"column:role_id;primaryKey"`
	AssignedAt time.Time `gorm:"column:assigned_at"`
}

func (userRoleModel) TableName() string {
	return "user_roles"
}

type directoryUserModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Username  string    `gorm:"column:username"`
	CompanyID string    `gorm:"column:company_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (directoryUserModel) TableName() string {
	return "users"
}

func (m directoryUserModel) toRecord() ports.UserRecord {
	return ports.UserRecord{
		UserID:    m.UserID,
		Username:  m.Username,
		CompanyID: m.CompanyID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
