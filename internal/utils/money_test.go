package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCents_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "1.01", RoundCents(decimal.RequireFromString("1.005")).StringFixed(2))
	assert.Equal(t, "-1.01", RoundCents(decimal.RequireFromString("-1.005")).StringFixed(2))
	assert.Equal(t, "2.50", RoundCents(decimal.RequireFromString("2.504")).StringFixed(2))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5220), ToMinorUnits(decimal.RequireFromString("52.20")))
	assert.Equal(t, int64(1), ToMinorUnits(decimal.RequireFromString("0.01")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}
