package currency

import "math"

// USDToINRRate is the fixed conversion rate the web client historically used to
// render nightly prices. Responses must reproduce it exactly so that rendered
// amounts stay identical across clients.
const USDToINRRate = 83.33

// USDToINR converts a USD amount to whole rupees, rounding half away from zero.
func USDToINR(usd float64) int64 {
	return int64(math.Round(usd * USDToINRRate))
}
