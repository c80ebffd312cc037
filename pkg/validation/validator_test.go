package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/resto_pos/pkg/apperr"
)

type reserveRequest struct {
	ReservedBy string `json:"reserved_by" validate:"required,max=100"`
}

type tableRequest struct {
	Code     string `json:"code" validate:"required,max=3"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=0"`
	Status   string `json:"status" validate:"required,oneof=available inactive"`
}

func TestValidate_OK(t *testing.T) {
	capacity := 4
	err := New().Validate(&tableRequest{Code: "T01", Capacity: &capacity, Status: "available"})
	require.NoError(t, err)
}

func TestValidate_CollectsFieldDetailsByJSONName(t *testing.T) {
	neg := -1
	err := New().Validate(&tableRequest{Code: "T0001", Capacity: &neg, Status: "occupied"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Contains(t, appErr.Details, "code")
	assert.Contains(t, appErr.Details, "capacity")
	assert.Contains(t, appErr.Details, "status")
}

func TestValidate_Required(t *testing.T) {
	err := New().Validate(&reserveRequest{})

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"The reserved_by field is required."}, appErr.Details["reserved_by"])
}
