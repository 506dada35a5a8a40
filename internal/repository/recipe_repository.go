package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// RecipeRepository defines recipe persistence operations. WithTransaction
// hands the callback transaction-scoped recipe and reference repositories so
// a recipe's scalar fields and its links commit or roll back as one unit.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Recipe, error)
	Delete(ctx context.Context, id uint) error
	ReplaceReferences(ctx context.Context, recipe *model.Recipe, kind model.ReferenceKind, refs []model.Reference) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, references ReferenceRepository) error) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository builds a GORM-backed repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Create(recipe).Error
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(recipe).Error
}

// FindByID loads a recipe together with its tag and ingredient sets.
func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListByUser returns the user's recipes, newest first.
func (r *recipeRepository) ListByUser(ctx context.Context, userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Recipe{}, id).Error
}

// ReplaceReferences swaps the recipe's link set for the given kind. An empty
// refs slice clears all links; rows of other recipes are untouched and the
// reference rows themselves are never deleted here.
func (r *recipeRepository) ReplaceReferences(ctx context.Context, recipe *model.Recipe, kind model.ReferenceKind, refs []model.Reference) error {
	assoc := r.db.WithContext(ctx).Model(recipe)
	switch kind {
	case model.KindTag:
		if len(refs) == 0 {
			return assoc.Association("Tags").Clear()
		}
		tags := make([]model.Tag, 0, len(refs))
		for _, ref := range refs {
			tags = append(tags, model.Tag{ID: ref.ID, UserID: ref.UserID, Name: ref.Name})
		}
		return assoc.Association("Tags").Replace(&tags)
	case model.KindIngredient:
		if len(refs) == 0 {
			return assoc.Association("Ingredients").Clear()
		}
		ingredients := make([]model.Ingredient, 0, len(refs))
		for _, ref := range refs {
			ingredients = append(ingredients, model.Ingredient{ID: ref.ID, UserID: ref.UserID, Name: ref.Name})
		}
		return assoc.Association("Ingredients").Replace(&ingredients)
	default:
		return fmt.Errorf("unknown reference kind %q", kind)
	}
}

// WithTransaction executes fn inside one database transaction.
func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, references ReferenceRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &recipeRepository{db: tx}, &referenceRepository{db: tx})
	})
}
