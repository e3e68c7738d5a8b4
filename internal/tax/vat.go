package tax

import "math"

// VATStandardRate is the UAE standard VAT rate.
const VATStandardRate = 0.05

// VATSummary aggregates one VAT return period.
type VATSummary struct {
	OutputVAT  float64 `json:"outputVat"`
	InputVAT   float64 `json:"inputVat"`
	NetDue     float64 `json:"netDue"`
	Refundable bool    `json:"refundable"`
}

// VATOnSupplies computes output VAT on standard-rated supplies.
func VATOnSupplies(netAmount float64) float64 {
	if math.IsNaN(netAmount) || netAmount <= 0 {
		return 0
	}
	return math.Round(netAmount * VATStandardRate)
}

// SummariseVAT nets recoverable input VAT against output VAT for the period.
func SummariseVAT(outputVAT, inputVAT float64) VATSummary {
	net := math.Round(outputVAT - inputVAT)
	return VATSummary{
		OutputVAT:  math.Round(outputVAT),
		InputVAT:   math.Round(inputVAT),
		NetDue:     net,
		Refundable: net < 0,
	}
}
