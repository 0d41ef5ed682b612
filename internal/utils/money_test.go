package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, int64(2000), DollarsToCents(20.00))
	assert.Equal(t, int64(1999), DollarsToCents(19.99))
	assert.Equal(t, int64(0), DollarsToCents(0))

	// Rounds half away from zero. 0.125 is exact in binary, so the
	// half-cent boundary is hit precisely.
	assert.Equal(t, int64(13), DollarsToCents(0.125))
	assert.Equal(t, int64(-13), DollarsToCents(-0.125))
	assert.Equal(t, int64(-1999), DollarsToCents(-19.99))

	// Float representation noise must not shave a cent.
	assert.Equal(t, int64(4990), DollarsToCents(49.90))
	assert.Equal(t, int64(33333), DollarsToCents(333.33))
}

func TestCentsToDollars(t *testing.T) {
	assert.InDelta(t, 19.99, CentsToDollars(1999), 0.0001)
	assert.InDelta(t, -0.5, CentsToDollars(-50), 0.0001)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$50.00", FormatCents(5000))
	assert.Equal(t, "$0.05", FormatCents(5))
}
