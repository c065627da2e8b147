package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStockErrorMessage(t *testing.T) {
	err := &StockError{CurrentStock: 2, Requested: 5}

	want := "insufficient stock: available 2, requested 5"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestIsInsufficientStock(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "stock error", err: &StockError{CurrentStock: 1, Requested: 2}, want: true},
		{name: "wrapped stock error", err: fmt.Errorf("check stock: %w", &StockError{}), want: true},
		{name: "other error", err: ErrOrderNotFound, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsInsufficientStock(tc.err); got != tc.want {
				t.Fatalf("IsInsufficientStock() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "order", err: ErrOrderNotFound, want: true},
		{name: "user", err: ErrUserNotFound, want: true},
		{name: "product", err: ErrProductNotFound, want: true},
		{name: "wrapped", err: fmt.Errorf("create order: %w", ErrUserNotFound), want: true},
		{name: "validation", err: ErrQuantityInvalid, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNotFound(tc.err); got != tc.want {
				t.Fatalf("IsNotFound() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "user id", err: ErrUserIDInvalid, want: true},
		{name: "product id", err: ErrProductIDInvalid, want: true},
		{name: "quantity", err: ErrQuantityInvalid, want: true},
		{name: "status", err: ErrStatusInvalid, want: true},
		{name: "joined", err: errors.Join(ErrQuantityInvalid, errors.New("extra")), want: true},
		{name: "not found", err: ErrOrderNotFound, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidationError(tc.err); got != tc.want {
				t.Fatalf("IsValidationError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsIdempotencyConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "already exists", err: ErrIdempotencyKeyAlreadyExists, want: true},
		{name: "hash mismatch", err: ErrIdempotencyHashMismatch, want: true},
		{name: "wrapped", err: fmt.Errorf("idempotency: %w", ErrIdempotencyHashMismatch), want: true},
		{name: "other", err: ErrIdempotencyKeyNotFound, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsIdempotencyConflict(tc.err); got != tc.want {
				t.Fatalf("IsIdempotencyConflict() = %v, want %v", got, tc.want)
			}
		})
	}
}
