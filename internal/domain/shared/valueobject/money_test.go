package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), MYR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, MYR, m.Currency())
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyMYRFromString("19.99")
		require.NoError(t, err)
		assert.Equal(t, "19.99", m.StringFixed(2))
	})

	t.Run("invalid string rejected", func(t *testing.T) {
		_, err := NewMoneyMYRFromString("abc")
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("multiply keeps exact decimal value", func(t *testing.T) {
		// 19.99 * 3 must be exactly 59.97, not 59.970000000000006
		m := NewMoneyMYR(decimal.RequireFromString("19.99"))
		total := m.MultiplyByInt(3)
		assert.Equal(t, "59.97", total.Amount().String())
	})

	t.Run("add same currency", func(t *testing.T) {
		a := NewMoneyMYR(decimal.RequireFromString("10.50"))
		b := NewMoneyMYR(decimal.RequireFromString("0.25"))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "10.75", sum.StringFixed(2))
	})

	t.Run("add mismatched currency fails", func(t *testing.T) {
		a := NewMoneyMYR(decimal.NewFromInt(1))
		b, _ := NewMoney(decimal.NewFromInt(1), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("divide by zero fails", func(t *testing.T) {
		m := NewMoneyMYR(decimal.NewFromInt(10))
		_, err := m.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("divide and round half up", func(t *testing.T) {
		m := NewMoneyMYR(decimal.RequireFromString("100.00"))
		avg, err := m.Divide(decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.Equal(t, "33.33", avg.Round(2).StringFixed(2))
	})
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "RM 0.00"},
		{"small", "7.5", "RM 7.50"},
		{"three digits", "999.99", "RM 999.99"},
		{"four digits grouped", "1234.56", "RM 1,234.56"},
		{"seven digits grouped", "1234567.89", "RM 1,234,567.89"},
		{"negative", "-1234.56", "RM -1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoneyMYR(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, m.Format())
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyMYR(decimal.RequireFromString("1234.56"))
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.56","currency":"MYR"}`, string(data))

	var decoded Money
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scan string defaults currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.10"))
		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.Equal(t, "42.10", m.StringFixed(2))
	})

	t.Run("scan nil yields zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("scan garbage fails", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
