package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
)

// MockReferenceRepository is a mock implementation of ReferenceRepository.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) Create(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error) {
	args := m.Called(ctx, kind, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reference), args.Error(1)
}

func (m *MockReferenceRepository) FindByName(ctx context.Context, kind model.ReferenceKind, userID uint, name string) (*model.Reference, error) {
	args := m.Called(ctx, kind, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reference), args.Error(1)
}

func (m *MockReferenceRepository) FindByID(ctx context.Context, kind model.ReferenceKind, id uint) (*model.Reference, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reference), args.Error(1)
}

func (m *MockReferenceRepository) ListByUser(ctx context.Context, kind model.ReferenceKind, userID uint) ([]model.Reference, error) {
	args := m.Called(ctx, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reference), args.Error(1)
}

func (m *MockReferenceRepository) UpdateName(ctx context.Context, kind model.ReferenceKind, id uint, name string) error {
	args := m.Called(ctx, kind, id, name)
	return args.Error(0)
}

func (m *MockReferenceRepository) Delete(ctx context.Context, kind model.ReferenceKind, id uint) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func TestReferenceResolver_ResolveReusesExisting(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	dinner := &model.Reference{ID: 10, UserID: 1, Name: "Dinner"}
	mockRepo.On("FindByName", mock.Anything, model.KindTag, uint(1), "Dinner").Return(dinner, nil)

	resolver := NewReferenceResolver(mockRepo)

	// Two sequential calls with a duplicated name yield the same single
	// entity both times, and nothing is ever created.
	for i := 0; i < 2; i++ {
		refs, err := resolver.Resolve(context.Background(), 1, model.KindTag, []string{"Dinner", "Dinner"})
		assert.NoError(t, err)
		assert.Len(t, refs, 1)
		assert.Equal(t, uint(10), refs[0].ID)
	}

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReferenceResolver_ResolveCreatesMissing(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	dinner := &model.Reference{ID: 10, UserID: 1, Name: "Dinner"}
	egg := &model.Reference{ID: 11, UserID: 1, Name: "Egg"}
	mockRepo.On("FindByName", mock.Anything, model.KindTag, uint(1), "Dinner").Return(dinner, nil)
	mockRepo.On("FindByName", mock.Anything, model.KindTag, uint(1), "Egg").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, model.KindTag, uint(1), "Egg").Return(egg, nil)

	resolver := NewReferenceResolver(mockRepo)
	refs, err := resolver.Resolve(context.Background(), 1, model.KindTag, []string{"Dinner", "Egg"})

	assert.NoError(t, err)
	assert.Len(t, refs, 2)
	mockRepo.AssertExpectations(t)
}

func TestReferenceResolver_ResolveScopesToOwner(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	mockRepo.On("FindByName", mock.Anything, model.KindTag, uint(1), "Dinner").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByName", mock.Anything, model.KindTag, uint(2), "Dinner").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, model.KindTag, uint(1), "Dinner").
		Return(&model.Reference{ID: 20, UserID: 1, Name: "Dinner"}, nil)
	mockRepo.On("Create", mock.Anything, model.KindTag, uint(2), "Dinner").
		Return(&model.Reference{ID: 21, UserID: 2, Name: "Dinner"}, nil)

	resolver := NewReferenceResolver(mockRepo)

	refsA, err := resolver.Resolve(context.Background(), 1, model.KindTag, []string{"Dinner"})
	assert.NoError(t, err)
	refsB, err := resolver.Resolve(context.Background(), 2, model.KindTag, []string{"Dinner"})
	assert.NoError(t, err)

	// Same name, different owners, distinct entities.
	assert.NotEqual(t, refsA[0].ID, refsB[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestReferenceResolver_ResolveCreateFailure(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	mockRepo.On("FindByName", mock.Anything, model.KindIngredient, uint(1), "Salt").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, model.KindIngredient, uint(1), "Salt").
		Return(nil, fmt.Errorf("duplicate entry"))

	resolver := NewReferenceResolver(mockRepo)
	refs, err := resolver.Resolve(context.Background(), 1, model.KindIngredient, []string{"Salt"})

	assert.Nil(t, refs)
	var persistenceErr *apperrors.PersistenceError
	assert.True(t, errors.As(err, &persistenceErr))
	mockRepo.AssertExpectations(t)
}
