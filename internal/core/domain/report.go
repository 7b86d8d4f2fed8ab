package domain

// AIReport is the tax summary computed for one Document by the remote
// report producer. Amounts are in the producer's currency.
type AIReport struct {
	// TotalIncome is the gross income the producer recognised.
	TotalIncome float64

	// TotalTaxOld is the tax payable under the old regime.
	TotalTaxOld float64

	// TotalTaxNew is the tax payable under the new regime.
	TotalTaxNew float64

	// TaxDueOrRefundOld is the balance due (positive) or refund (negative)
	// under the old regime.
	TaxDueOrRefundOld float64

	// TaxDueOrRefundNew is the balance due or refund under the new regime.
	TaxDueOrRefundNew float64

	// InvestmentInsights is free-form advice text.
	InvestmentInsights string
}

// Regime is one tax regime's line in a report comparison.
type Regime struct {
	Name        string
	Tax         float64
	DueOrRefund float64
}

// Regimes returns the old and new regime figures in display order.
func (r *AIReport) Regimes() []Regime {
	return []Regime{
		{Name: "Old Regime", Tax: r.TotalTaxOld, DueOrRefund: r.TaxDueOrRefundOld},
		{Name: "New Regime", Tax: r.TotalTaxNew, DueOrRefund: r.TaxDueOrRefundNew},
	}
}

// Clone returns a copy so snapshots sent to the assistant cannot alias
// session state.
func (r *AIReport) Clone() *AIReport {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// CurrencySymbol prefixes report amounts.
const CurrencySymbol = "₹"

// Summary returns the report amounts formatted with their display labels,
// in order.
func (r *AIReport) Summary() []Field {
	return []Field{
		{Key: "Total Income", Value: FormatAmount(r.TotalIncome)},
		{Key: "Tax (Old Regime)", Value: FormatAmount(r.TotalTaxOld)},
		{Key: "Tax (New Regime)", Value: FormatAmount(r.TotalTaxNew)},
		{Key: "Refund/Due (Old)", Value: FormatAmount(r.TaxDueOrRefundOld)},
		{Key: "Refund/Due (New)", Value: FormatAmount(r.TaxDueOrRefundNew)},
	}
}

// FormatAmount renders an amount with the currency symbol.
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + CurrencySymbol + FormatValue(-v)
	}
	return CurrencySymbol + FormatValue(v)
}
