package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("title", "must not be blank")
	verr.Add("time_minute", "must be greater than zero")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "validation error", err: verr, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_FAILED"},
		{name: "authorization error", err: &AuthorizationError{Resource: "recipe"}, expectedStatus: http.StatusForbidden, expectedCode: "FORBIDDEN"},
		{name: "persistence error", err: NewPersistenceError("create tag", fmt.Errorf("duplicate entry")), expectedStatus: http.StatusInternalServerError, expectedCode: "PERSISTENCE_FAILED"},
		{name: "not found", err: ErrNotFound, expectedStatus: http.StatusNotFound, expectedCode: "NOT_FOUND"},
		{name: "invalid credentials", err: ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_CREDENTIALS"},
		{name: "user already exists", err: ErrUserAlreadyExists, expectedStatus: http.StatusConflict, expectedCode: "USER_ALREADY_EXISTS"},
		{name: "unknown error", err: fmt.Errorf("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestValidationErrorListsAllFields(t *testing.T) {
	verr := &ValidationError{}
	assert.False(t, verr.HasErrors())

	verr.Add("title", "is required")
	verr.Add("price", "is required")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "validation failed: title, price", verr.Error())

	httpErr := MapErrorToHTTP(verr)
	resp := httpErr.ToErrorResponse()
	assert.Len(t, resp.Fields, 2)
}

func TestPersistenceErrorHidesCauseFromClients(t *testing.T) {
	cause := fmt.Errorf("Error 1062: Duplicate entry 'Dinner' for key 'idx_tags_user_name'")
	err := NewPersistenceError("create tag", cause)

	httpErr := MapErrorToHTTP(err)
	assert.NotContains(t, httpErr.Message, "1062")
	assert.ErrorIs(t, err, cause)
}
