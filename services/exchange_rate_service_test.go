package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRatesSamePair(t *testing.T) {
	rate, err := StaticRates{}.Rate("EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestStaticRatesCrossPair(t *testing.T) {
	rate, err := StaticRates{}.Rate("EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1.08, rate, 1e-9)

	// Cross rate goes through USD
	rate, err = StaticRates{}.Rate("GBP", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 1.26/1.08, rate, 1e-9)
}

func TestStaticRatesUnknownCurrency(t *testing.T) {
	_, err := StaticRates{}.Rate("XXX", "USD")
	assert.Error(t, err)

	_, err = StaticRates{}.Rate("USD", "XXX")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	got, err := Convert(StaticRates{}, 100, "EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 108.0, got, 1e-9)
}
