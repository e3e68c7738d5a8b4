// Package fx normalises monetary amounts into the AED reporting currency.
package fx

import "math"

// BaseCurrency is the fixed reporting currency for every filing.
const BaseCurrency = "AED"

// Config is the per-workflow currency conversion parameter set.
type Config struct {
	Selected  string  `json:"selectedCurrency"`
	Custom    string  `json:"customCurrency"`
	RateToAED float64 `json:"exchangeRateToAed"`
}

// DefaultConfig reports amounts already denominated in AED.
func DefaultConfig() Config {
	return Config{Selected: BaseCurrency, RateToAED: 1}
}

// Currency resolves the effective source currency.
func (c Config) Currency() string {
	if c.Custom != "" {
		return c.Custom
	}
	if c.Selected != "" {
		return c.Selected
	}
	return BaseCurrency
}

// Rate returns the effective conversion rate, identity for AED or when the
// configured rate is unusable.
func (c Config) Rate() float64 {
	if c.Currency() == BaseCurrency {
		return 1
	}
	if c.RateToAED <= 0 || math.IsNaN(c.RateToAED) || math.IsInf(c.RateToAED, 0) {
		return 1
	}
	return c.RateToAED
}

// ToAED converts a source-currency amount into whole AED units.
func (c Config) ToAED(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return math.Round(amount * c.Rate())
}

// FromAED inverts ToAED for round-trip checks and display in source currency.
func (c Config) FromAED(amount float64) float64 {
	rate := c.Rate()
	if rate == 0 {
		return 0
	}
	return amount / rate
}
