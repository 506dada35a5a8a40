package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// maxPrice is the largest value a decimal(5,2) column holds.
var maxPrice = decimal.NewFromFloat(999.99)

// CreateRecipeInput carries the fields of a recipe create request. Required
// scalars are pointers so a missing field can be reported by name alongside
// the other violations.
type CreateRecipeInput struct {
	Title       *string
	TimeMinute  *int
	Price       *decimal.Decimal
	Desc        string
	Link        string
	Tags        *[]string
	Ingredients *[]string
}

// UpdateRecipeInput carries a partial update. Nil means the field was absent
// from the request and stays untouched. For Tags and Ingredients a non-nil
// empty slice is an explicit clear, distinct from nil.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinute  *int
	Price       *decimal.Decimal
	Desc        *string
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeService orchestrates recipe writes together with their tag and
// ingredient sets, one transaction per call.
type RecipeService interface {
	Create(ctx context.Context, ownerID uint, input CreateRecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, ownerID, recipeID uint, input UpdateRecipeInput) (*model.Recipe, error)
	Get(ctx context.Context, ownerID, recipeID uint) (*model.Recipe, error)
	List(ctx context.Context, ownerID uint) ([]model.Recipe, error)
	Delete(ctx context.Context, ownerID, recipeID uint) error
}

type recipeService struct {
	recipes repository.RecipeRepository
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipes repository.RecipeRepository) RecipeService {
	return &recipeService{recipes: recipes}
}

// Create validates the scalar fields, persists the recipe, and links the
// resolved tag and ingredient sets, all inside one transaction.
func (s *recipeService) Create(ctx context.Context, ownerID uint, input CreateRecipeInput) (*model.Recipe, error) {
	verr := &apperrors.ValidationError{}
	validateTitle(verr, input.Title, true)
	validateTimeMinute(verr, input.TimeMinute, true)
	validatePrice(verr, input.Price, true)
	if verr.HasErrors() {
		return nil, verr
	}

	var recipeID uint
	err := s.recipes.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, references repository.ReferenceRepository) error {
		recipe := &model.Recipe{
			UserID:     ownerID,
			Title:      *input.Title,
			TimeMinute: *input.TimeMinute,
			Price:      *input.Price,
			Desc:       input.Desc,
			Link:       input.Link,
		}
		if err := recipes.Create(ctx, recipe); err != nil {
			return apperrors.NewPersistenceError("create recipe", err)
		}
		if err := linkReferences(ctx, recipes, references, recipe, model.KindTag, input.Tags); err != nil {
			return err
		}
		if err := linkReferences(ctx, recipes, references, recipe, model.KindIngredient, input.Ingredients); err != nil {
			return err
		}
		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadRecipe(ctx, recipeID)
}

// Update applies the provided scalar changes and reconciles the tag and
// ingredient links. A nil spec list leaves the existing links untouched; a
// non-nil list, empty included, replaces them. The whole call is one
// transaction, so a resolver failure rolls back the scalar changes too.
func (s *recipeService) Update(ctx context.Context, ownerID, recipeID uint, input UpdateRecipeInput) (*model.Recipe, error) {
	verr := &apperrors.ValidationError{}
	validateTitle(verr, input.Title, false)
	validateTimeMinute(verr, input.TimeMinute, false)
	validatePrice(verr, input.Price, false)
	if verr.HasErrors() {
		return nil, verr
	}

	err := s.recipes.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, references repository.ReferenceRepository) error {
		recipe, err := recipes.FindByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistenceError("load recipe", err)
		}
		// Ownership is checked by the caller already; a mismatch here is an
		// invariant violation and must not be silently absorbed.
		if recipe.UserID != ownerID {
			return &apperrors.AuthorizationError{Resource: "recipe"}
		}

		if input.Title != nil {
			recipe.Title = *input.Title
		}
		if input.TimeMinute != nil {
			recipe.TimeMinute = *input.TimeMinute
		}
		if input.Price != nil {
			recipe.Price = *input.Price
		}
		if input.Desc != nil {
			recipe.Desc = *input.Desc
		}
		if input.Link != nil {
			recipe.Link = *input.Link
		}
		if err := recipes.Update(ctx, recipe); err != nil {
			return apperrors.NewPersistenceError("update recipe", err)
		}

		if err := linkReferences(ctx, recipes, references, recipe, model.KindTag, input.Tags); err != nil {
			return err
		}
		return linkReferences(ctx, recipes, references, recipe, model.KindIngredient, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.loadRecipe(ctx, recipeID)
}

// Get returns the recipe with its tag and ingredient sets. Recipes of other
// users are reported as not found rather than revealed.
func (s *recipeService) Get(ctx context.Context, ownerID, recipeID uint) (*model.Recipe, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return recipe, nil
}

// List returns the user's recipes, newest first.
func (s *recipeService) List(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list recipes", err)
	}
	return recipes, nil
}

// Delete removes the recipe and its link rows. The tag and ingredient rows
// themselves stay for reuse.
func (s *recipeService) Delete(ctx context.Context, ownerID, recipeID uint) error {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != ownerID {
		return apperrors.ErrNotFound
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return apperrors.NewPersistenceError("delete recipe", err)
	}
	return nil
}

func (s *recipeService) loadRecipe(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError("load recipe", err)
	}
	return recipe, nil
}

// linkReferences resolves the name list and swaps the recipe's links for the
// given kind. A nil list means the field was absent and nothing changes.
func linkReferences(ctx context.Context, recipes repository.RecipeRepository, references repository.ReferenceRepository, recipe *model.Recipe, kind model.ReferenceKind, names *[]string) error {
	if names == nil {
		return nil
	}
	refs, err := NewReferenceResolver(references).Resolve(ctx, recipe.UserID, kind, *names)
	if err != nil {
		return err
	}
	if err := recipes.ReplaceReferences(ctx, recipe, kind, refs); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("link %ss", kind), err)
	}
	return nil
}

func validateTitle(verr *apperrors.ValidationError, title *string, required bool) {
	if title == nil {
		if required {
			verr.Add("title", "is required")
		}
		return
	}
	if strings.TrimSpace(*title) == "" {
		verr.Add("title", "must not be blank")
	}
}

func validateTimeMinute(verr *apperrors.ValidationError, timeMinute *int, required bool) {
	if timeMinute == nil {
		if required {
			verr.Add("time_minute", "is required")
		}
		return
	}
	if *timeMinute <= 0 {
		verr.Add("time_minute", "must be greater than zero")
	}
}

func validatePrice(verr *apperrors.ValidationError, price *decimal.Decimal, required bool) {
	if price == nil {
		if required {
			verr.Add("price", "is required")
		}
		return
	}
	if price.IsNegative() {
		verr.Add("price", "must not be negative")
		return
	}
	if price.GreaterThan(maxPrice) || price.Exponent() < -2 {
		verr.Add("price", "must fit 5 digits with 2 decimal places")
	}
}
