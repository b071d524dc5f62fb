package core

// LineInput is the numeric input for one quote line. DiscountPct and
// TaxRate are pointers so a legitimate user-entered 0 is distinguishable
// from an absent field; absent means 0.
type LineInput struct {
	Quantity    float64
	UnitPrice   float64
	DiscountPct *float64
	TaxRate     *float64
}

// QuoteTotals is the result of ComputeTotals.
type QuoteTotals struct {
	LineTotals []float64
	Subtotal   float64
	Total      float64
}

// orZero substitutes 0 for an absent optional numeric field.
func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// LineTotal computes quantity * unitPrice * (1 - discountPct/100) * (1 + taxRate/100).
// Plain IEEE-754 double arithmetic, no rounding; validation of the inputs
// (quantity > 0, unitPrice >= 0, percentages in [0,100]) is the caller's job.
func LineTotal(in LineInput) float64 {
	return in.Quantity * in.UnitPrice * (1 - orZero(in.DiscountPct)/100) * (1 + orZero(in.TaxRate)/100)
}

// ComputeTotals derives per-line totals and quote-level aggregates.
// Subtotal sums quantity*unitPrice before any item-level discount or tax;
// quote-level discount and tax are applied to the subtotal only.
func ComputeTotals(items []LineInput, discountAmount, taxAmount *float64) QuoteTotals {
	t := QuoteTotals{LineTotals: make([]float64, len(items))}
	for i, it := range items {
		t.LineTotals[i] = LineTotal(it)
		t.Subtotal += it.Quantity * it.UnitPrice
	}
	t.Total = t.Subtotal - orZero(discountAmount) + orZero(taxAmount)
	return t
}
