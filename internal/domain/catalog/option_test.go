package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growbro/backend/internal/domain/shared"
)

func TestValidateOptionGroups(t *testing.T) {
	t.Run("valid groups pass", func(t *testing.T) {
		groups := []OptionGroup{
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Color", Values: []string{"Red", "Blue"}},
		}
		assert.NoError(t, ValidateOptionGroups(groups))
	})

	t.Run("empty slice passes", func(t *testing.T) {
		assert.NoError(t, ValidateOptionGroups(nil))
	})

	t.Run("blank group name rejected", func(t *testing.T) {
		groups := []OptionGroup{{Name: "   ", Values: []string{"S"}}}
		err := ValidateOptionGroups(groups)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_OPTION_NAME", domainErr.Code)
	})

	t.Run("group with no usable values rejected", func(t *testing.T) {
		groups := []OptionGroup{{Name: "Size", Values: []string{"", "  "}}}
		err := ValidateOptionGroups(groups)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_OPTION_VALUES", domainErr.Code)
	})

	t.Run("duplicate values detected case-insensitively", func(t *testing.T) {
		groups := []OptionGroup{{Name: "Size", Values: []string{"Small", " small "}}}
		err := ValidateOptionGroups(groups)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_OPTION_VALUE", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Size")
	})

	t.Run("same value in different groups allowed", func(t *testing.T) {
		groups := []OptionGroup{
			{Name: "Size", Values: []string{"One"}},
			{Name: "Pack", Values: []string{"One"}},
		}
		assert.NoError(t, ValidateOptionGroups(groups))
	})
}
