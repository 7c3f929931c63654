package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

// storeError maps a database failure onto the service error taxonomy so
// handlers can pick a response without inspecting driver internals.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "too many clients"),
		strings.Contains(msg, "the database system is"):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	case strings.Contains(msg, "violates check constraint"),
		strings.Contains(msg, "violates not-null constraint"),
		strings.Contains(msg, "invalid input syntax"):
		return fmt.Errorf("%w: %v", ErrStoreValidation, err)
	case strings.Contains(msg, "duplicate key value"):
		return fmt.Errorf("%w: %v", ErrDuplicateOrder, err)
	}
	return err
}
