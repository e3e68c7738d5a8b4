// Package tax implements the UAE tax rules the filing workflow depends on.
package tax

import "math"

const (
	// CTThresholdAED is the taxable-income threshold below which no corporate
	// tax is due (Federal Decree-Law No. 47 of 2022).
	CTThresholdAED = 375000.0
	// CTRate is the corporate tax rate applied above the threshold.
	CTRate = 0.09
)

// CorporateTax returns the corporate tax provision for a net profit figure.
// Losses carry no provision; only the excess over the threshold is taxed.
func CorporateTax(netProfit float64) float64 {
	taxable := math.Max(0, netProfit)
	if taxable <= CTThresholdAED {
		return 0
	}
	return math.Round((taxable - CTThresholdAED) * CTRate)
}
