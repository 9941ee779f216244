package utils

import (
	"errors"
	"testing"

	"bloomfundr-settlement/internal/constant"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Status string `validate:"oneof=pending completed"`
	Size   int    `validate:"min=1,max=200"`
}

func TestBindError_ListsFields(t *testing.T) {
	err := validator.New().Struct(bindTarget{Status: "lost", Size: 500})
	require.Error(t, err)

	resp := BindError(err)
	assert.Equal(t, constant.CodeInvalidParams, resp.Code)
	fields, ok := resp.Data.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "Status", fields[0].Field)
	assert.Equal(t, "must be one of [pending completed]", fields[0].Error)
	assert.Equal(t, "must be at most 200", fields[1].Error)
}

func TestBindError_NonValidationError(t *testing.T) {
	resp := BindError(errors.New("unexpected EOF"))
	assert.Equal(t, constant.CodeInvalidParams, resp.Code)
	assert.Nil(t, resp.Data)
}
