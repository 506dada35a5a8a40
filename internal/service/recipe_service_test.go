package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// MockRecipeRepository is a mock implementation of RecipeRepository. The
// WithTransaction mock runs the callback against the mock itself and the
// attached reference repository, so transactional paths are exercised.
type MockRecipeRepository struct {
	mock.Mock
	refs repository.ReferenceRepository
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListByUser(ctx context.Context, userID uint) ([]model.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceReferences(ctx context.Context, recipe *model.Recipe, kind model.ReferenceKind, refs []model.Reference) error {
	args := m.Called(ctx, recipe, kind, refs)
	return args.Error(0)
}

func (m *MockRecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes repository.RecipeRepository, references repository.ReferenceRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m, m.refs)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func namesPtr(names ...string) *[]string { return &names }

func fieldNames(verr *apperrors.ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestRecipeService_CreateWithMixedTags(t *testing.T) {
	mockRefs := new(MockReferenceRepository)
	mockRecipes := &MockRecipeRepository{refs: mockRefs}

	dinner := &model.Reference{ID: 10, UserID: 1, Name: "Dinner"}
	egg := &model.Reference{ID: 11, UserID: 1, Name: "Egg"}
	mockRefs.On("FindByName", mock.Anything, model.KindTag, uint(1), "Dinner").Return(dinner, nil)
	mockRefs.On("FindByName", mock.Anything, model.KindTag, uint(1), "Egg").Return(nil, gorm.ErrRecordNotFound)
	mockRefs.On("Create", mock.Anything, model.KindTag, uint(1), "Egg").Return(egg, nil)

	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Recipe).ID = 1
		}).Return(nil)
	mockRecipes.On("ReplaceReferences", mock.Anything, mock.Anything, model.KindTag,
		mock.MatchedBy(func(refs []model.Reference) bool { return len(refs) == 2 })).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(&model.Recipe{
		ID:         1,
		UserID:     1,
		Title:      "Omelette",
		TimeMinute: 10,
		Price:      decimal.RequireFromString("3.50"),
		Tags: []model.Tag{
			{ID: 10, UserID: 1, Name: "Dinner"},
			{ID: 11, UserID: 1, Name: "Egg"},
		},
	}, nil)

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Create(context.Background(), 1, CreateRecipeInput{
		Title:      strPtr("Omelette"),
		TimeMinute: intPtr(10),
		Price:      decPtr("3.50"),
		Tags:       namesPtr("Dinner", "Egg"),
	})

	assert.NoError(t, err)
	assert.Len(t, recipe.Tags, 2)
	mockRecipes.AssertExpectations(t)
	mockRefs.AssertExpectations(t)
	// Ingredients were absent: no ingredient link pass happened.
	mockRecipes.AssertNotCalled(t, "ReplaceReferences", mock.Anything, mock.Anything, model.KindIngredient, mock.Anything)
}

func TestRecipeService_CreateValidationAggregation(t *testing.T) {
	mockRecipes := &MockRecipeRepository{}

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Create(context.Background(), 1, CreateRecipeInput{
		Title:      strPtr(""),
		TimeMinute: intPtr(-1),
	})

	assert.Nil(t, recipe)
	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	names := fieldNames(verr)
	assert.Contains(t, names, "title")
	assert.Contains(t, names, "time_minute")
	assert.Contains(t, names, "price")
	mockRecipes.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestRecipeService_CreatePriceValidation(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{name: "fits 5,2", price: "999.99", valid: true},
		{name: "too large", price: "1000.00", valid: false},
		{name: "too many decimal places", price: "10.555", valid: false},
		{name: "negative", price: "-1.00", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRecipes := &MockRecipeRepository{refs: new(MockReferenceRepository)}
			if tt.valid {
				mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mockRecipes.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Recipe).ID = 7
					}).Return(nil)
				mockRecipes.On("FindByID", mock.Anything, uint(7)).Return(&model.Recipe{ID: 7, UserID: 1}, nil)
			}

			svc := NewRecipeService(mockRecipes)
			_, err := svc.Create(context.Background(), 1, CreateRecipeInput{
				Title:      strPtr("Stew"),
				TimeMinute: intPtr(60),
				Price:      decPtr(tt.price),
			})

			if tt.valid {
				assert.NoError(t, err)
			} else {
				var verr *apperrors.ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.Contains(t, fieldNames(verr), "price")
			}
		})
	}
}

func TestRecipeService_UpdatePartialLeavesTagsAlone(t *testing.T) {
	mockRefs := new(MockReferenceRepository)
	mockRecipes := &MockRecipeRepository{refs: mockRefs}

	existing := &model.Recipe{
		ID:         1,
		UserID:     1,
		Title:      "Old Title",
		TimeMinute: 20,
		Price:      decimal.RequireFromString("5.00"),
		Tags:       []model.Tag{{ID: 10, UserID: 1, Name: "Dinner"}},
	}
	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	mockRecipes.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return r.Title == "X"
	})).Return(nil)

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Update(context.Background(), 1, 1, UpdateRecipeInput{
		Title: strPtr("X"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "X", recipe.Title)
	assert.Len(t, recipe.Tags, 1)
	// Tags were absent from the request: the link set is untouched.
	mockRecipes.AssertNotCalled(t, "ReplaceReferences", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_UpdateExplicitClearRemovesLinks(t *testing.T) {
	mockRefs := new(MockReferenceRepository)
	mockRecipes := &MockRecipeRepository{refs: mockRefs}

	existing := &model.Recipe{
		ID:         1,
		UserID:     1,
		Title:      "Curry",
		TimeMinute: 40,
		Price:      decimal.RequireFromString("8.00"),
		Tags:       []model.Tag{{ID: 10, UserID: 1, Name: "Dinner"}},
	}
	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	mockRecipes.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("ReplaceReferences", mock.Anything, mock.Anything, model.KindTag,
		mock.MatchedBy(func(refs []model.Reference) bool { return len(refs) == 0 })).Return(nil)

	svc := NewRecipeService(mockRecipes)
	_, err := svc.Update(context.Background(), 1, 1, UpdateRecipeInput{
		Tags: &[]string{},
	})

	assert.NoError(t, err)
	mockRecipes.AssertExpectations(t)
	// Clearing links never deletes the tag rows themselves.
	mockRefs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_UpdateReassignsTags(t *testing.T) {
	mockRefs := new(MockReferenceRepository)
	mockRecipes := &MockRecipeRepository{refs: mockRefs}

	existing := &model.Recipe{
		ID:         1,
		UserID:     1,
		Title:      "Pancakes",
		TimeMinute: 15,
		Price:      decimal.RequireFromString("4.00"),
		Tags:       []model.Tag{{ID: 10, UserID: 1, Name: "Dinner"}},
	}
	lunch := &model.Reference{ID: 12, UserID: 1, Name: "Lunch"}
	mockRefs.On("FindByName", mock.Anything, model.KindTag, uint(1), "Lunch").Return(nil, gorm.ErrRecordNotFound)
	mockRefs.On("Create", mock.Anything, model.KindTag, uint(1), "Lunch").Return(lunch, nil)

	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	mockRecipes.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("ReplaceReferences", mock.Anything, mock.Anything, model.KindTag,
		mock.MatchedBy(func(refs []model.Reference) bool {
			return len(refs) == 1 && refs[0].Name == "Lunch"
		})).Return(nil)

	svc := NewRecipeService(mockRecipes)
	_, err := svc.Update(context.Background(), 1, 1, UpdateRecipeInput{
		Tags: namesPtr("Lunch"),
	})

	assert.NoError(t, err)
	mockRecipes.AssertExpectations(t)
	mockRefs.AssertExpectations(t)
	// "Dinner" is unlinked, not deleted.
	mockRefs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_UpdateOwnershipMismatch(t *testing.T) {
	mockRecipes := &MockRecipeRepository{refs: new(MockReferenceRepository)}
	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(&model.Recipe{ID: 1, UserID: 2}, nil)

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Update(context.Background(), 1, 1, UpdateRecipeInput{Title: strPtr("Stolen")})

	assert.Nil(t, recipe)
	var authzErr *apperrors.AuthorizationError
	assert.True(t, errors.As(err, &authzErr))
	mockRecipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecipeService_UpdateResolverFailureAbortsScalars(t *testing.T) {
	mockRefs := new(MockReferenceRepository)
	mockRecipes := &MockRecipeRepository{refs: mockRefs}

	existing := &model.Recipe{ID: 1, UserID: 1, Title: "Soup", TimeMinute: 30, Price: decimal.RequireFromString("2.00")}
	mockRefs.On("FindByName", mock.Anything, model.KindTag, uint(1), "Dinner").Return(nil, gorm.ErrRecordNotFound)
	mockRefs.On("Create", mock.Anything, model.KindTag, uint(1), "Dinner").Return(nil, errors.New("connection lost"))

	mockRecipes.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRecipes.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	mockRecipes.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Update(context.Background(), 1, 1, UpdateRecipeInput{
		Title: strPtr("New Soup"),
		Tags:  namesPtr("Dinner"),
	})

	// The transaction callback fails, so the whole update is rolled back.
	assert.Nil(t, recipe)
	var persistenceErr *apperrors.PersistenceError
	assert.True(t, errors.As(err, &persistenceErr))
}

func TestRecipeService_GetHidesOtherUsersRecipes(t *testing.T) {
	mockRecipes := &MockRecipeRepository{}
	mockRecipes.On("FindByID", mock.Anything, uint(5)).Return(&model.Recipe{ID: 5, UserID: 2}, nil)

	svc := NewRecipeService(mockRecipes)
	recipe, err := svc.Get(context.Background(), 1, 5)

	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
