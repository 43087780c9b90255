package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growbro/backend/internal/interfaces/http/dto"
)

type validatedPayload struct {
	Title string `json:"title" validate:"required"`
	Size  int    `json:"size" validate:"min=1,max=100"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()

	t.Run("reports one detail per invalid field", func(t *testing.T) {
		err := v.Struct(validatedPayload{Size: 500})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-1")

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("passes through non-validator errors without details", func(t *testing.T) {
		resp := FormatValidationErrors(errors.New("unexpected EOF"), "req-2")

		require.NotNil(t, resp.Error)
		assert.Equal(t, "unexpected EOF", resp.Error.Message)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestValidationMessage(t *testing.T) {
	v := validator.New()
	err := v.Struct(validatedPayload{Title: "ok", Size: 0})
	require.Error(t, err)

	fieldErrors := err.(validator.ValidationErrors)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "must be at least 1", validationMessage(fieldErrors[0]))
}
