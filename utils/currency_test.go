package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyIDR(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatCurrencyIDR(0))
	assert.Equal(t, "Rp 500", FormatCurrencyIDR(500))
	assert.Equal(t, "Rp 15.000", FormatCurrencyIDR(15000))
	assert.Equal(t, "Rp 1.250.000", FormatCurrencyIDR(1250000))
	assert.Equal(t, "-Rp 15.000", FormatCurrencyIDR(-15000))
}

func TestPaginate(t *testing.T) {
	offset, limit := Paginate(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Paginate(3, 20)
	assert.Equal(t, 40, offset)
	assert.Equal(t, 20, limit)

	// Nilai tak masuk akal jatuh ke default
	offset, limit = Paginate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Paginate(-3, 1000)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}
