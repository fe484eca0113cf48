package services

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
)

// BaseCurrency is the currency all dashboard money figures are reported in.
const BaseCurrency = "USD"

// ExchangeRateProvider resolves a conversion rate for a currency pair.
// Aggregators depend on this narrow capability so the hardcoded table below
// can be swapped for a real rates service without touching metric logic.
type ExchangeRateProvider interface {
	Rate(from, to string) (float64, error)
}

// StaticRates is the placeholder rate table carried over from the first CRM
// iteration. Rates are relative to USD.
type StaticRates struct{}

var usdRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.08,
	"GBP": 1.26,
	"CAD": 0.73,
	"AUD": 0.65,
	"GHS": 0.064,
	"NGN": 0.00065,
}

func (StaticRates) Rate(from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	fromUSD, ok := usdRates[from]
	if !ok {
		return 0, fmt.Errorf("no rate for currency %q", from)
	}
	toUSD, ok := usdRates[to]
	if !ok {
		return 0, fmt.Errorf("no rate for currency %q", to)
	}
	return fromUSD / toUSD, nil
}

// Convert translates an amount between currencies via the provider.
func Convert(p ExchangeRateProvider, amount float64, from, to string) (float64, error) {
	rate, err := p.Rate(from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

// ── Redis-caching decorator ──────────────────────────────────────────────────
// Wraps a provider so a future live-rates upstream is only hit once per TTL.

const rateCacheTTL = time.Hour

type CachedRates struct {
	Upstream ExchangeRateProvider
}

func (c CachedRates) Rate(from, to string) (float64, error) {
	key := "fx:" + from + ":" + to

	if val, err := config.RedisClient.Get(config.Ctx, key).Result(); err == nil {
		if rate, perr := strconv.ParseFloat(val, 64); perr == nil {
			return rate, nil
		}
	}

	rate, err := c.Upstream.Rate(from, to)
	if err != nil {
		return 0, err
	}

	if err := config.RedisClient.Set(config.Ctx, key,
		strconv.FormatFloat(rate, 'f', -1, 64), rateCacheTTL).Err(); err != nil {
		log.Printf("[fx] WARN failed to cache rate %s->%s: %v", from, to, err)
	}

	return rate, nil
}
