package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds = 4001
	CodeBelowMinimum      = 4002
	CodeInvalidFormat     = 4003
	CodeDuplicateToken    = 4004
	CodeUnauthenticated   = 4010
	CodeBanned            = 4030
	CodeForbidden         = 4031
	CodeAccountNotFound   = 4040
	CodeNoGameAvailable   = 4041
	CodeAlreadyClaimed    = 4090
	CodeBusy              = 4230

	// 5xxx - Server errors
	CodeInternalServer         = 5000
	CodePersistenceUnavailable = 5030
)

// Base error types
var (
	// ErrUnauthenticated is returned when no identity is attached to the request
	ErrUnauthenticated = errors.New("authentication required")

	// ErrBanned is returned when the account has a ban record
	ErrBanned = errors.New("account is banned")

	// ErrForbidden is returned when the caller's role does not allow the operation
	ErrForbidden = errors.New("operation not permitted for this role")

	// ErrInsufficientFunds is returned when the wallet cannot cover the bet
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBelowMinimum is returned when the bet is under the game's floor
	ErrBelowMinimum = errors.New("bet is below the game minimum")

	// ErrInvalidFormat is returned when an amount string cannot be parsed
	ErrInvalidFormat = errors.New("invalid amount format")

	// ErrInvalidBet is returned when the bet amount is not a positive number
	ErrInvalidBet = errors.New("bet must be a positive amount")

	// ErrInvalidToken is returned when the settlement token is empty or malformed
	ErrInvalidToken = errors.New("settlement token cannot be empty")

	// ErrInvalidGameType is returned when the game type is not one of the known games
	ErrInvalidGameType = errors.New("unknown game type")

	// ErrDuplicateToken is returned when a settlement with the same token already exists
	ErrDuplicateToken = errors.New("settlement with this token already exists")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrWalletNotFound is returned when the account has no wallet row
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrSettlementNotFound is returned when the requested settlement doesn't exist
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrNoGameAvailable is returned when no joinable multiplayer row exists,
	// or the conditional claim lost the race
	ErrNoGameAvailable = errors.New("no game available to join")

	// ErrAlreadyClaimedToday is returned when the daily reward was already taken
	// on the current calendar day
	ErrAlreadyClaimedToday = errors.New("daily reward already claimed today")

	// ErrConflictRetry is returned when a conditional wallet update lost the
	// race; callers re-read and retry a bounded number of times
	ErrConflictRetry = errors.New("wallet update conflicted, retry")

	// ErrBusy is returned after the conflict retry budget is exhausted
	ErrBusy = errors.New("account is busy with concurrent operations")

	// ErrPersistenceUnavailable is returned for transient storage failures
	// after the retry budget is exhausted
	ErrPersistenceUnavailable = errors.New("persistence temporarily unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrBelowMinimum), errors.Is(err, ErrInvalidBet):
		return CodeBelowMinimum
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidGameType):
		return CodeInvalidFormat
	case errors.Is(err, ErrDuplicateToken):
		return CodeDuplicateToken
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrBanned):
		return CodeBanned
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrWalletNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrNoGameAvailable):
		return CodeNoGameAvailable
	case errors.Is(err, ErrAlreadyClaimedToday):
		return CodeAlreadyClaimed
	case errors.Is(err, ErrBusy), errors.Is(err, ErrConflictRetry):
		return CodeBusy
	case errors.Is(err, ErrPersistenceUnavailable):
		return CodePersistenceUnavailable
	default:
		return CodeInternalServer
	}
}

// BannedError carries the reason recorded on the ban
type BannedError struct {
	AccountID string
	Reason    string
}

// Error implements the error interface
func (e *BannedError) Error() string {
	return fmt.Sprintf("account %s is banned: %s", e.AccountID, e.Reason)
}

// Is checks if the target error is ErrBanned
func (e *BannedError) Is(target error) bool {
	return target == ErrBanned
}

// LogFields returns a map of fields for structured logging
func (e *BannedError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "banned",
		"account_id": e.AccountID,
		"reason":     e.Reason,
		"error_code": CodeBanned,
	}
}

// NewBannedError creates a detailed ban error
func NewBannedError(accountID, reason string) error {
	return &BannedError{AccountID: accountID, Reason: reason}
}

// InsufficientFundsError provides balance detail for a rejected debit
type InsufficientFundsError struct {
	AccountID string
	Bet       int64
	Balance   int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for account %s: required %d, available %d",
		e.AccountID, e.Bet, e.Balance)
}

// Is checks if the target error is ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"account_id": e.AccountID,
		"bet":        e.Bet,
		"balance":    e.Balance,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(accountID string, bet, balance int64) error {
	return &InsufficientFundsError{AccountID: accountID, Bet: bet, Balance: balance}
}

// BelowMinimumError reports the configured floor alongside the offending bet
type BelowMinimumError struct {
	GameType string
	Bet      int64
	Minimum  int64
}

// Error implements the error interface
func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("bet %d is below the %s minimum of %d", e.Bet, e.GameType, e.Minimum)
}

// Is checks if the target error is ErrBelowMinimum
func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimum
}

// LogFields returns a map of fields for structured logging
func (e *BelowMinimumError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "below_minimum",
		"game_type":  e.GameType,
		"bet":        e.Bet,
		"minimum":    e.Minimum,
		"error_code": CodeBelowMinimum,
	}
}

// NewBelowMinimumError creates a detailed minimum-bet error
func NewBelowMinimumError(gameType string, bet, minimum int64) error {
	return &BelowMinimumError{GameType: gameType, Bet: bet, Minimum: minimum}
}

// InvalidFormatError carries the rejected input for logging
type InvalidFormatError struct {
	Input string
}

// Error implements the error interface
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid amount format: %q", e.Input)
}

// Is checks if the target error is ErrInvalidFormat
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewInvalidFormatError creates a detailed format error
func NewInvalidFormatError(input string) error {
	return &InvalidFormatError{Input: input}
}

// SettlementError wraps a failure inside the settlement pipeline
type SettlementError struct {
	Token     string
	AccountID string
	GameType  string
	Bet       int64
	Reason    string
	Err       error
}

// Error implements the error interface
func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement %s failed (account: %s, game: %s, bet: %d): %s - %v",
		e.Token, e.AccountID, e.GameType, e.Bet, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "settlement_error",
		"token":      e.Token,
		"account_id": e.AccountID,
		"game_type":  e.GameType,
		"bet":        e.Bet,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewSettlementError creates a detailed settlement error
func NewSettlementError(token, accountID, gameType string, bet int64, reason string, err error) error {
	return &SettlementError{
		Token:     token,
		AccountID: accountID,
		GameType:  gameType,
		Bet:       bet,
		Reason:    reason,
		Err:       err,
	}
}

// IsInsufficientFundsError checks if the error is an insufficient funds error
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsDuplicateTokenError checks if the error is a duplicate settlement token error
func IsDuplicateTokenError(err error) bool {
	return errors.Is(err, ErrDuplicateToken)
}

// IsBannedError checks if the error is a ban rejection
func IsBannedError(err error) bool {
	return errors.Is(err, ErrBanned)
}

// IsConflictError checks if the error is a lost conditional update
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflictRetry)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrSettlementNotFound)
}

// IsRetryable reports whether the caller may usefully retry the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflictRetry) || errors.Is(err, ErrPersistenceUnavailable)
}
