package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "customer", err: ErrCustomerNotFound, want: true},
		{name: "product", err: ErrProductNotFound, want: true},
		{name: "order", err: ErrOrderNotFound, want: true},
		{name: "summary", err: ErrSummaryNotFound, want: true},
		{name: "wrapped order", err: fmt.Errorf("load order: %w", ErrOrderNotFound), want: true},
		{name: "insufficient stock", err: ErrInsufficientStock, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInsufficientStock(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "insufficient stock", err: ErrInsufficientStock, want: true},
		{name: "joined", err: errors.Join(ErrInsufficientStock, errors.New("only 7 left")), want: true},
		{name: "other error", err: ErrProductNotFound, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsufficientStock(tt.err); got != tt.want {
				t.Errorf("IsInsufficientStock() = %v, want %v", got, tt.want)
			}
		})
	}
}
