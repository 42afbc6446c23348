package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", store.ErrTimeout, err)
	}

	// Return the original error for errors that don't have specific mappings
	return err
}
