package memory

import (
	"time"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// DemoDocuments returns a small set of extracted documents for offline use.
func DemoDocuments() []domain.Document {
	base := time.Date(2025, time.July, 14, 9, 30, 0, 0, time.UTC)
	return []domain.Document{
		{
			ID:           "demo-form16",
			DocumentType: "Form 16",
			CreatedAt:    base,
			Extracted: map[string]any{
				"employer":        "Acme Analytics Pvt Ltd",
				"gross_salary":    float64(1450000),
				"deduction_80c":   float64(150000),
				"deduction_80d":   float64(25000),
				"tds":             float64(182000),
				"assessment_year": "2025-26",
				"other_income":    float64(32000),
			},
		},
		{
			ID:           "demo-ais",
			DocumentType: "AIS",
			CreatedAt:    base.Add(26 * time.Hour),
			Extracted: map[string]any{
				"interest_income":  float64(41250.5),
				"dividend_income":  float64(8800),
				"tds":              float64(4925),
				"sft_transactions": []any{"Mutual fund purchase", "Time deposit"},
			},
		},
		{
			ID:        "demo-unparsed",
			CreatedAt: base.Add(50 * time.Hour),
		},
	}
}
