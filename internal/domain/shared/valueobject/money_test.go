package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(12.5), USD)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(12.5).Equal(m.Amount()))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("19.90", EUR)
	require.NoError(t, err)
	assert.Equal(t, "19.9 EUR", m.String())

	_, err = NewMoneyFromString("not-a-number", EUR)
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	t.Run("sums same-currency amounts", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromFloat(0.1))
		b := NewMoneyUSD(decimal.NewFromFloat(0.2))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(0.3).Equal(sum.Amount()), "decimal addition must be exact")
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd := NewMoneyUSD(decimal.NewFromInt(1))
		eur, err := NewMoney(decimal.NewFromInt(1), EUR)
		require.NoError(t, err)

		_, err = usd.Add(eur)
		assert.Error(t, err)
	})
}

func TestMoneyEquals(t *testing.T) {
	a, _ := NewMoneyFromString("1.50", USD)
	b, _ := NewMoneyFromString("1.5", USD)
	c, _ := NewMoneyFromString("1.5", EUR)

	assert.True(t, a.Equals(b), "trailing zeros must not matter")
	assert.False(t, a.Equals(c))
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, Zero(USD).IsZero())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-3)).IsNegative())
	assert.False(t, NewMoneyUSD(decimal.NewFromInt(3)).IsNegative())
}
