package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInsufficientFunds.Error() != "insufficient funds" {
		t.Errorf("ErrInsufficientFunds has unexpected message: %s", ErrInsufficientFunds.Error())
	}
	if ErrInvalidFormat.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidFormat has unexpected message: %s", ErrInvalidFormat.Error())
	}
	if ErrBusy.Error() != "account is busy with concurrent operations" {
		t.Errorf("ErrBusy has unexpected message: %s", ErrBusy.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4001},
		{"BelowMinimum", ErrBelowMinimum, 4002},
		{"InvalidBet", ErrInvalidBet, 4002},
		{"InvalidFormat", ErrInvalidFormat, 4003},
		{"InvalidToken", ErrInvalidToken, 4003},
		{"DuplicateToken", ErrDuplicateToken, 4004},
		{"Unauthenticated", ErrUnauthenticated, 4010},
		{"Banned", ErrBanned, 4030},
		{"Forbidden", ErrForbidden, 4031},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"WalletNotFound", ErrWalletNotFound, 4040},
		{"NoGameAvailable", ErrNoGameAvailable, 4041},
		{"AlreadyClaimed", ErrAlreadyClaimedToday, 4090},
		{"Busy", ErrBusy, 4230},
		{"ConflictRetry", ErrConflictRetry, 4230},
		{"PersistenceUnavailable", ErrPersistenceUnavailable, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidToken), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("acc-1", 2_000_000, 500_000)

	expectedMsg := "insufficient funds for account acc-1: required 2000000, available 500000"
	if err.Error() != expectedMsg {
		t.Errorf("InsufficientFundsError.Error() = %s, want %s", err.Error(), expectedMsg)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Error("InsufficientFundsError should match ErrInsufficientFunds")
	}
	if ErrorCode(err) != CodeInsufficientFunds {
		t.Errorf("ErrorCode = %d, want %d", ErrorCode(err), CodeInsufficientFunds)
	}

	var typed *InsufficientFundsError
	if !errors.As(err, &typed) {
		t.Fatal("expected an *InsufficientFundsError")
	}
	fields := typed.LogFields()
	if fields["account_id"] != "acc-1" || fields["bet"] != int64(2_000_000) {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestBelowMinimumError(t *testing.T) {
	err := NewBelowMinimumError("coinflip", 100, 500_000)

	expectedMsg := "bet 100 is below the coinflip minimum of 500000"
	if err.Error() != expectedMsg {
		t.Errorf("BelowMinimumError.Error() = %s, want %s", err.Error(), expectedMsg)
	}
	if !errors.Is(err, ErrBelowMinimum) {
		t.Error("BelowMinimumError should match ErrBelowMinimum")
	}
}

func TestBannedError(t *testing.T) {
	err := NewBannedError("acc-1", "chargeback")

	if err.Error() != "account acc-1 is banned: chargeback" {
		t.Errorf("BannedError.Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrBanned) {
		t.Error("BannedError should match ErrBanned")
	}
	if !IsBannedError(err) {
		t.Error("IsBannedError should report true")
	}
}

func TestSettlementError(t *testing.T) {
	base := ErrConflictRetry
	err := NewSettlementError("tok-1", "acc-1", "slots", 1_000_000, "wallet write conflicted", base)

	if !errors.Is(err, ErrConflictRetry) {
		t.Error("SettlementError should unwrap to its cause")
	}

	var typed *SettlementError
	if !errors.As(err, &typed) {
		t.Fatal("expected a *SettlementError")
	}
	fields := typed.LogFields()
	if fields["token"] != "tok-1" || fields["error_code"] != CodeBusy {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsConflictError(fmt.Errorf("tx: %w", ErrConflictRetry)) {
		t.Error("IsConflictError should see through wrapping")
	}
	if !IsDuplicateTokenError(ErrDuplicateToken) {
		t.Error("IsDuplicateTokenError should report true")
	}
	if !IsNotFoundError(ErrWalletNotFound) {
		t.Error("IsNotFoundError should cover wallet lookups")
	}
	if IsNotFoundError(ErrBusy) {
		t.Error("IsNotFoundError should not cover busy")
	}
	if !IsRetryable(ErrPersistenceUnavailable) {
		t.Error("IsRetryable should cover transient storage failures")
	}
	if IsRetryable(ErrInsufficientFunds) {
		t.Error("IsRetryable should not cover rejected debits")
	}
}
