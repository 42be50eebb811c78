package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. Called once at
// startup; the unique indexes are the uniqueness backstop for the
// check-then-write duplicate pre-checks in the services.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewNoteRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("note indexes: %w", err)
	}
	return nil
}
