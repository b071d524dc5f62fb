package core_test

import (
	"math"
	"testing"

	"quotegen/internal/core"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func fp(v float64) *float64 { return &v }

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		in   core.LineInput
		want float64
	}{
		{
			name: "no discount no tax",
			in:   core.LineInput{Quantity: 2, UnitPrice: 100},
			want: 200,
		},
		{
			name: "explicit zero discount equals absent discount",
			in:   core.LineInput{Quantity: 2, UnitPrice: 100, DiscountPct: fp(0), TaxRate: fp(0)},
			want: 200,
		},
		{
			name: "discount only",
			in:   core.LineInput{Quantity: 4, UnitPrice: 25, DiscountPct: fp(10)},
			want: 90,
		},
		{
			name: "tax only",
			in:   core.LineInput{Quantity: 1, UnitPrice: 1000, TaxRate: fp(23)},
			want: 1230,
		},
		{
			name: "discount and tax combined",
			in:   core.LineInput{Quantity: 3, UnitPrice: 50, DiscountPct: fp(20), TaxRate: fp(10)},
			want: 3 * 50 * 0.8 * 1.1,
		},
		{
			name: "zero price",
			in:   core.LineInput{Quantity: 5, UnitPrice: 0, DiscountPct: fp(50), TaxRate: fp(50)},
			want: 0,
		},
		{
			name: "fractional quantity",
			in:   core.LineInput{Quantity: 1.5, UnitPrice: 99.99, DiscountPct: fp(5), TaxRate: fp(23)},
			want: 1.5 * 99.99 * 0.95 * 1.23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.LineTotal(tt.in)
			if !almostEqual(got, tt.want) {
				t.Errorf("LineTotal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("documented example", func(t *testing.T) {
		items := []core.LineInput{
			{Quantity: 2, UnitPrice: 100},
			{Quantity: 1, UnitPrice: 500},
		}
		got := core.ComputeTotals(items, fp(50), fp(20.50))

		if !almostEqual(got.Subtotal, 700) {
			t.Errorf("Subtotal = %v, want 700", got.Subtotal)
		}
		if !almostEqual(got.Total, 670.50) {
			t.Errorf("Total = %v, want 670.50", got.Total)
		}
		if len(got.LineTotals) != 2 || !almostEqual(got.LineTotals[0], 200) || !almostEqual(got.LineTotals[1], 500) {
			t.Errorf("LineTotals = %v, want [200 500]", got.LineTotals)
		}
	})

	t.Run("subtotal ignores item discount and tax", func(t *testing.T) {
		items := []core.LineInput{
			{Quantity: 2, UnitPrice: 100, DiscountPct: fp(50), TaxRate: fp(23)},
		}
		got := core.ComputeTotals(items, nil, nil)

		if !almostEqual(got.Subtotal, 200) {
			t.Errorf("Subtotal = %v, want 200 (pre-discount, pre-tax)", got.Subtotal)
		}
		if !almostEqual(got.LineTotals[0], 2*100*0.5*1.23) {
			t.Errorf("LineTotals[0] = %v", got.LineTotals[0])
		}
	})

	t.Run("absent quote-level amounts default to zero", func(t *testing.T) {
		got := core.ComputeTotals([]core.LineInput{{Quantity: 1, UnitPrice: 10}}, nil, nil)
		if !almostEqual(got.Total, 10) {
			t.Errorf("Total = %v, want 10", got.Total)
		}
	})

	t.Run("zero items", func(t *testing.T) {
		got := core.ComputeTotals(nil, fp(5), fp(2))
		if !almostEqual(got.Subtotal, 0) {
			t.Errorf("Subtotal = %v, want 0", got.Subtotal)
		}
		if !almostEqual(got.Total, -3) {
			t.Errorf("Total = %v, want -3", got.Total)
		}
	})
}
