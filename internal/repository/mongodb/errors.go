package mongodb

import (
	"errors"
	"fmt"

	"taskdeck/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// notFoundOr maps ErrNoDocuments to domain.ErrNotFound and wraps anything else
func notFoundOr(err error, resource, id, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", resource, id, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
