package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrNilWhenEmpty(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Err())
	assert.False(t, IsValidation(errors.New("plain")))
	assert.Nil(t, Fields(errors.New("plain")))
}

func TestWrappedErrorsStayDetectable(t *testing.T) {
	var errs Errors
	errs.Add("name", "name is required")
	errs.Add("address", "address is required")

	err := fmt.Errorf("create customer: %w", errs.Err())
	assert.True(t, IsValidation(err))
	assert.Len(t, Fields(err), 2)
	assert.Equal(t, "create customer: name: name is required; address: address is required", err.Error())

	single := fmt.Errorf("wrap: %w", FieldError{Field: "quantity", Message: "must be positive"})
	assert.Equal(t, []FieldError{{Field: "quantity", Message: "must be positive"}}, Fields(single))
}
