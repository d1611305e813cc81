package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	m, err := New(1500, "eur")
	require.NoError(t, err)
	assert.Equal(t, Money{Amount: 1500, Currency: "EUR"}, m)

	_, err = New(100, "EURO")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestArithmetic(t *testing.T) {
	a := Must(1000, "EUR")
	b := Must(250, "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(750), diff.Amount)

	assert.Equal(t, int64(3000), a.Multiply(3).Amount)
	assert.Equal(t, int64(-1000), a.Neg().Amount)

	_, err = a.Add(Must(100, "USD"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestPercentHalfUpRounding(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		pct    float64
		want   int64
	}{
		{"exact", 15000, 10, 1500},
		{"half rounds up", 1250, 15, 188}, // 187.5
		{"below half rounds down", 1000, 12.34, 123},
		{"zero percent", 9999, 0, 0},
		{"fifteen of ten thousand", 10001, 15, 1500}, // 1500.15
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Must(tt.amount, "EUR").Percent(tt.pct)
			assert.Equal(t, tt.want, got.Amount)
			assert.Equal(t, "EUR", got.Currency)
		})
	}
}

func TestBasisPointsHalfUpRounding(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		bps    int64
		want   int64
	}{
		{"nineteen percent of 150", 15000, 1900, 2850},
		{"half rounds up", 50, 1900, 10}, // 9.5
		{"below half rounds down", 23, 1900, 4},
		{"full rate", 12345, 10000, 12345},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Must(tt.amount, "EUR").BasisPoints(tt.bps).Amount)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "178.50 EUR", Must(17850, "EUR").String())
	assert.Equal(t, "0.05 EUR", Must(5, "EUR").String())
	assert.Equal(t, "-1.25 EUR", Must(-125, "EUR").String())
}
