package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// ReferenceRepository persists user-scoped reference entities. One
// implementation serves both kinds; the kind parameter selects the table.
type ReferenceRepository interface {
	Create(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error)
	FindByName(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error)
	FindByID(ctx context.Context, kind model.ReferenceKind, id uint) (*model.Reference, error)
	ListByUser(ctx context.Context, kind model.ReferenceKind, userID uint) ([]model.Reference, error)
	UpdateName(ctx context.Context, kind model.ReferenceKind, id uint, name string) error
	Delete(ctx context.Context, kind model.ReferenceKind, id uint) error
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository builds a GORM-backed repository.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) Create(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error) {
	switch kind {
	case model.KindTag:
		tag := model.Tag{UserID: userID, Name: name}
		if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
			return nil, err
		}
		ref := tag.AsReference()
		return &ref, nil
	case model.KindIngredient:
		ingredient := model.Ingredient{UserID: userID, Name: name}
		if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return nil, err
		}
		ref := ingredient.AsReference()
		return &ref, nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (r *referenceRepository) FindByName(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error) {
	switch kind {
	case model.KindTag:
		var tag model.Tag
		if err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&tag).Error; err != nil {
			return nil, err
		}
		ref := tag.AsReference()
		return &ref, nil
	case model.KindIngredient:
		var ingredient model.Ingredient
		if err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&ingredient).Error; err != nil {
			return nil, err
		}
		ref := ingredient.AsReference()
		return &ref, nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (r *referenceRepository) FindByID(ctx context.Context, kind model.ReferenceKind, id uint) (*model.Reference, error) {
	switch kind {
	case model.KindTag:
		var tag model.Tag
		if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
			return nil, err
		}
		ref := tag.AsReference()
		return &ref, nil
	case model.KindIngredient:
		var ingredient model.Ingredient
		if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
			return nil, err
		}
		ref := ingredient.AsReference()
		return &ref, nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

// ListByUser returns the user's references ordered by name descending.
func (r *referenceRepository) ListByUser(ctx context.Context, kind model.ReferenceKind, userID uint) ([]model.Reference, error) {
	scope := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name DESC")
	switch kind {
	case model.KindTag:
		var tags []model.Tag
		if err := scope.Find(&tags).Error; err != nil {
			return nil, err
		}
		refs := make([]model.Reference, 0, len(tags))
		for _, tag := range tags {
			refs = append(refs, tag.AsReference())
		}
		return refs, nil
	case model.KindIngredient:
		var ingredients []model.Ingredient
		if err := scope.Find(&ingredients).Error; err != nil {
			return nil, err
		}
		refs := make([]model.Reference, 0, len(ingredients))
		for _, ingredient := range ingredients {
			refs = append(refs, ingredient.AsReference())
		}
		return refs, nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (r *referenceRepository) UpdateName(ctx context.Context, kind model.ReferenceKind, id uint, name string) error {
	switch kind {
	case model.KindTag:
		return r.db.WithContext(ctx).Model(&model.Tag{}).Where("id = ?", id).Update("name", name).Error
	case model.KindIngredient:
		return r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("id = ?", id).Update("name", name).Error
	default:
		return fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (r *referenceRepository) Delete(ctx context.Context, kind model.ReferenceKind, id uint) error {
	switch kind {
	case model.KindTag:
		// Join rows go with the tag via the FK cascade on recipe_tags.
		return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
	case model.KindIngredient:
		return r.db.WithContext(ctx).Delete(&model.Ingredient{}, id).Error
	default:
		return fmt.Errorf("unknown reference kind %q", kind)
	}
}
