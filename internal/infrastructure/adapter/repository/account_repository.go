package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		Username:  m.Username,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

func (r *AccountRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": id,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateToken
	}
	return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}
	return r.modelToEntity(&m), nil
}

// GetByUsername retrieves an account by display name
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account by username", result.Error, username)
	}
	return r.modelToEntity(&m), nil
}

// Create creates a new account at signup
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := &model.Account{
		ID:        account.ID,
		Username:  account.Username,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("creating account", err, account.ID)
	}
	return nil
}

// UpdateRole changes the account's privilege tier
func (r *AccountRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return r.handleDatabaseError("updating account role", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
