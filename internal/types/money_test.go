package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyArithmetic(t *testing.T) {
	total := MoneyFromFloat(50, "USD").Mul(2).Add(MoneyFromFloat(30, "USD").Mul(2))
	assert.Equal(t, Money{Amount: 16000, Currency: "USD"}, total)
	assert.Equal(t, int64(1600), total.Percent(10).Amount)
	assert.Equal(t, int64(7200), Money{Amount: 14400, Currency: "USD"}.Div(2).Amount)
	assert.Equal(t, int64(0), total.Div(0).Amount)
}

func TestMoneyRounding(t *testing.T) {
	assert.Equal(t, int64(5645), MoneyFromFloat(56.45, "EUR").Amount)
	assert.Equal(t, int64(33), Money{Amount: 100}.Div(3).Amount)
	assert.Equal(t, int64(2), Money{Amount: 5}.Div(3).Amount)
	assert.Equal(t, int64(-2), Money{Amount: -5}.Div(3).Amount)
	assert.Equal(t, int64(335), Money{Amount: 3345}.Percent(10).Amount)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-10-20")
	assert.NoError(t, err)
	assert.Equal(t, "2026-10-22", d.AddDays(2).String())
	assert.Equal(t, "2026-10-31", NewDate(2026, 11, 1).AddDays(-1).String())

	b, err := d.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2026-10-20"`, string(b))

	var back Date
	assert.NoError(t, back.UnmarshalJSON(b))
	assert.True(t, back.Equal(d.Time))

	_, err = ParseDate("20/10/2026")
	assert.Error(t, err)
}
