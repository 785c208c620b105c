package types

import "github.com/shopspring/decimal"

// equityDigits is the number of significant digits kept per equity sample.
const equityDigits = 18

// EquityCurve holds portfolio value after each realized trade. The first
// sample is the starting capital.
type EquityCurve struct {
	values []decimal.Decimal
}

// NewEquityCurve starts a curve at initial.
func NewEquityCurve(initial float64) *EquityCurve {
	return &EquityCurve{values: []decimal.Decimal{decimal.NewFromFloat(initial)}}
}

// Compound appends last · (1 + pnlPercent/100) and returns the new value.
func (c *EquityCurve) Compound(pnlPercent float64) float64 {
	last := c.values[len(c.values)-1]
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(pnlPercent).Div(decimal.NewFromInt(100)))
	next := roundSignificant(last.Mul(factor), equityDigits)
	c.values = append(c.values, next)

	return next.InexactFloat64()
}

// roundSignificant rounds d to digits significant digits. Non-zero values stay non-zero.
func roundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}

	lead := int32(d.NumDigits()) + d.Exponent()

	return d.Round(digits - lead)
}

// Initial returns the starting capital.
func (c *EquityCurve) Initial() float64 {
	return c.values[0].InexactFloat64()
}

// Final returns the latest equity value.
func (c *EquityCurve) Final() float64 {
	return c.values[len(c.values)-1].InexactFloat64()
}

// Len returns the number of samples.
func (c *EquityCurve) Len() int {
	return len(c.values)
}

// Values returns every sample as float64.
func (c *EquityCurve) Values() []float64 {
	out := make([]float64, len(c.values))
	for i, v := range c.values {
		out[i] = v.InexactFloat64()
	}

	return out
}

// MaxDrawdownPct returns the largest peak-to-trough decline in percent.
func (c *EquityCurve) MaxDrawdownPct() float64 {
	peak := c.values[0]
	worst := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for _, v := range c.values {
		if v.GreaterThan(peak) {
			peak = v
		}

		if peak.IsPositive() {
			dd := peak.Sub(v).Div(peak).Mul(hundred)
			if dd.GreaterThan(worst) {
				worst = dd
			}
		}
	}

	return worst.InexactFloat64()
}
