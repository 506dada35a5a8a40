package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// ReferenceService backs the tag and ingredient endpoints: owner-scoped
// listing, rename, and (for tags) deletion.
type ReferenceService interface {
	List(ctx context.Context, ownerID uint, kind model.ReferenceKind) ([]model.Reference, error)
	Rename(ctx context.Context, ownerID uint, kind model.ReferenceKind, id uint, name string) (*model.Reference, error)
	Delete(ctx context.Context, ownerID uint, kind model.ReferenceKind, id uint) error
}

type referenceService struct {
	references repository.ReferenceRepository
}

// NewReferenceService creates a new reference service.
func NewReferenceService(references repository.ReferenceRepository) ReferenceService {
	return &referenceService{references: references}
}

// List returns the owner's references of the given kind, name-descending.
func (s *referenceService) List(ctx context.Context, ownerID uint, kind model.ReferenceKind) ([]model.Reference, error) {
	refs, err := s.references.ListByUser(ctx, kind, ownerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("list %ss", kind), err)
	}
	return refs, nil
}

// Rename changes the name of an owned reference.
func (s *referenceService) Rename(ctx context.Context, ownerID uint, kind model.ReferenceKind, id uint, name string) (*model.Reference, error) {
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "must not be blank")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	ref, err := s.ownedReference(ctx, ownerID, kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.references.UpdateName(ctx, kind, id, name); err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("rename %s", kind), err)
	}
	ref.Name = name
	return ref, nil
}

// Delete removes an owned reference row. Recipes linked to it only lose the
// link; the operation is destructive for the reference itself.
func (s *referenceService) Delete(ctx context.Context, ownerID uint, kind model.ReferenceKind, id uint) error {
	if _, err := s.ownedReference(ctx, ownerID, kind, id); err != nil {
		return err
	}
	if err := s.references.Delete(ctx, kind, id); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("delete %s", kind), err)
	}
	return nil
}

// ownedReference loads the reference and hides other users' rows behind a
// not-found, matching the owner-scoped query surface.
func (s *referenceService) ownedReference(ctx context.Context, ownerID uint, kind model.ReferenceKind, id uint) (*model.Reference, error) {
	ref, err := s.references.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("load %s", kind), err)
	}
	if ref.UserID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return ref, nil
}
