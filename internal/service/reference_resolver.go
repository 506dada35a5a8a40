package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// ReferenceResolver reconciles a list of name specs into persisted reference
// entities scoped to one owner, creating any that do not exist yet.
type ReferenceResolver interface {
	Resolve(ctx context.Context, ownerID uint, kind model.ReferenceKind, names []string) ([]model.Reference, error)
}

type referenceResolver struct {
	references repository.ReferenceRepository
}

// NewReferenceResolver creates a resolver over the given repository.
func NewReferenceResolver(references repository.ReferenceRepository) ReferenceResolver {
	return &referenceResolver{references: references}
}

// Resolve looks up each name under (owner, kind) and reuses the existing row
// or creates a new one. Duplicate names in the input resolve to a single
// entity. A create that fails, including one losing the unique-index race
// against a concurrent identical request, is returned as a persistence
// error; there is no retry.
func (r *referenceResolver) Resolve(ctx context.Context, ownerID uint, kind model.ReferenceKind, names []string) ([]model.Reference, error) {
	resolved := make([]model.Reference, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		ref, err := r.references.FindByName(ctx, kind, ownerID, name)
		if err == nil {
			resolved = append(resolved, *ref)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("find %s %q", kind, name), err)
		}

		created, err := r.references.Create(ctx, kind, ownerID, name)
		if err != nil {
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("create %s %q", kind, name), err)
		}
		resolved = append(resolved, *created)
	}

	return resolved, nil
}
