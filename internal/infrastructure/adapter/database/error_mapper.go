package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/crownplay/casino-engine/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeAccount represents the account entity
	EntityTypeAccount EntityType = "account"
	// EntityTypeWallet represents the wallet entity
	EntityTypeWallet EntityType = "wallet"
	// EntityTypeSettlement represents the settlement entity
	EntityTypeSettlement EntityType = "settlement"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for common GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrAccountNotFound
	}

	// Check for PostgreSQL specific errors
	errMsg := strings.ToLower(err.Error())

	switch {
	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout"):
		return domainErr.ErrConflictRetry

	// Duplicate key errors
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return domainErr.ErrDuplicateToken

	// Constraint violations
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrInvalidBet

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return domainErr.ErrPersistenceUnavailable

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrPersistenceUnavailable, operation)

	// Default error
	default:
		return fmt.Errorf("%w: %s failed: %s", domainErr.ErrInternalServer, operation, err.Error())
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeAccount:
			return domainErr.ErrAccountNotFound
		case EntityTypeWallet:
			return domainErr.ErrWalletNotFound
		case EntityTypeSettlement:
			return domainErr.ErrSettlementNotFound
		default:
			return domainErr.ErrAccountNotFound
		}
	}

	return m.MapError(err, string(entityType))
}

// MapWalletNotFoundError maps database errors to wallet not found errors
func (m *ErrorMapper) MapWalletNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypeWallet)
}

// MapSettlementNotFoundError maps database errors to settlement not found errors
func (m *ErrorMapper) MapSettlementNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypeSettlement)
}
