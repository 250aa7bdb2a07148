package domain

import "github.com/pkg/errors"

var (
	// ErrOrderNotFound is returned when no order record exists for the key
	ErrOrderNotFound = errors.New("order not found")

	// ErrTransactionNotFound is returned when a compensation cannot locate
	// its prior forward transaction record
	ErrTransactionNotFound = errors.New("transaction not found")
)
