package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"

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

// EnsureCompany relies on the unique name constraint for race safety:
// insert-on-conflict-do-nothing, then re-fetch the winner.
func (r *Repository) EnsureCompany(ctx context.Context, company entities.Company) (entities.Company, bool, error) {
	row := companyModelFromEntity(company)
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return entities.Company{}, false, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return row.toEntity(), true, nil
	}

	var existing companyModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", company.Name).
		First(&existing).
		Error; err != nil {
		return entities.Company{}, false, err
	}
	return existing.toEntity(), false, nil
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateSession(ctx context.Context, session entities.Session) error {
	row := sessionModel{
		Token:     session.Token,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.UTC(),
		ExpiresAt: session.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetSession(ctx context.Context, token string, now time.Time) (entities.Session, bool, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Session{}, false, nil
		}
		return entities.Session{}, false, err
	}

	if !row.ExpiresAt.After(now.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("token = ?", token).
			Delete(&sessionModel{}).
			Error; err != nil {
			return entities.Session{}, false, err
		}
		return entities.Session{}, false, nil
	}

	return entities.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) ExtendSession(ctx context.Context, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("token = ?", token).
		Update("expires_at", expiresAt.UTC()).
		Error
}

func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&sessionModel{}).
		Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type companyModel struct {
	CompanyID string    `gorm:"column:company_id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (companyModel) TableName() string {
	return "companies"
}

func companyModelFromEntity(company entities.Company) companyModel {
	return companyModel{
		CompanyID: company.CompanyID,
		Name:      company.Name,
		CreatedAt: company.CreatedAt.UTC(),
	}
}

func (m companyModel) toEntity() entities.Company {
	return entities.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CompanyID    string    `gorm:"column:company_id;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		UserID:       user.UserID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CompanyID:    user.CompanyID,
		CreatedAt:    user.CreatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CompanyID:    m.CompanyID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type sessionModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (sessionModel) TableName() string {
	return "sessions"
}
