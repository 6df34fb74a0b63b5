// ABOUTME: Number formatting shared by gpu-tco commands and the TUI report
// ABOUTME: Renders currency, capacities, and ratios the backend could not compute

package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

// NotAvailable stands in for ratios the backend reports as null.
const NotAvailable = "n/a"

// USD renders whole dollars with thousands separators.
func USD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	if v < 0 {
		return "-$" + humanize.Comma(int64(math.Round(-v)))
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// round rounds half away from zero at the given decimal place. humanize
// truncates extra digits, so values are rounded before they reach it.
func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

// Decimal renders v with at most digits decimals and no trailing zeros.
func Decimal(v float64, digits int) string {
	return humanize.FtoaWithDigits(round(v, digits), digits)
}

// PB renders a capacity in petabytes with two decimals.
func PB(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return humanize.CommafWithDigits(round(v, 2), 2) + " PB"
}

// TB renders a capacity in terabytes with one decimal.
func TB(v float64) string {
	return humanize.CommafWithDigits(round(v, 1), 1) + " TB"
}

// TBps renders throughput in terabytes per second.
func TBps(v float64) string {
	return humanize.CommafWithDigits(round(v, 1), 1) + " TB/s"
}

// KW renders power draw in kilowatts.
func KW(v float64) string {
	return humanize.CommafWithDigits(round(v, 1), 1) + " kW"
}

// Minutes renders a nullable interval in minutes.
func Minutes(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Decimal(*v, 1) + " min"
}

// Percent renders a nullable percentage.
func Percent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Decimal(*v, 1) + "%"
}

// Ratio renders a nullable 0..1 ratio as a percentage.
func Ratio(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	pct := *v * 100
	return Percent(&pct)
}

// PerPB renders a nullable dollar figure per usable petabyte.
func PerPB(v *float64) string {
	return per(v, "/PB")
}

// PerGPU renders a nullable dollar figure per GPU.
func PerGPU(v *float64) string {
	return per(v, "/GPU")
}

// PerTB renders a nullable dollar figure per terabyte.
func PerTB(v *float64) string {
	return per(v, "/TB")
}

func per(v *float64, unit string) string {
	if v == nil {
		return NotAvailable
	}
	return USD(*v) + unit
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
