package memory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.AssistantGateway = (*Gateway)(nil)

// ReportFunc produces a report for extracted data.
type ReportFunc func(extracted map[string]any) (*domain.AIReport, error)

// AnswerFunc produces an answer for a question.
type AnswerFunc func(req domain.AskRequest) (string, error)

// Gateway is an in-memory implementation of driven.AssistantGateway.
// Responses are scripted with the Set* methods; every call is recorded.
type Gateway struct {
	mu        sync.Mutex
	documents []domain.Document
	listErr   error
	report    ReportFunc
	answer    AnswerFunc

	fetchCalls int
	generated  []map[string]any
	asked      []domain.AskRequest
}

// NewGateway creates a gateway serving docs, with estimated reports and
// canned answers.
func NewGateway(docs ...domain.Document) *Gateway {
	g := &Gateway{
		report: EstimateReport,
		answer: CannedAnswer,
	}
	g.documents = append(g.documents, docs...)
	return g
}

// SetListError makes FetchDocuments fail with err.
func (g *Gateway) SetListError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listErr = err
}

// SetReportFunc replaces the report producer.
func (g *Gateway) SetReportFunc(fn ReportFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.report = fn
}

// SetAnswerFunc replaces the answer producer.
func (g *Gateway) SetAnswerFunc(fn AnswerFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.answer = fn
}

// FetchDocuments returns the configured documents.
func (g *Gateway) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]domain.Document, len(g.documents))
	copy(out, g.documents)
	return out, nil
}

// GenerateReport runs the report producer.
func (g *Gateway) GenerateReport(ctx context.Context, extracted map[string]any) (*domain.AIReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.generated = append(g.generated, extracted)
	fn := g.report
	g.mu.Unlock()
	return fn(extracted)
}

// Ask runs the answer producer.
func (g *Gateway) Ask(ctx context.Context, req domain.AskRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	g.mu.Lock()
	g.asked = append(g.asked, req)
	fn := g.answer
	g.mu.Unlock()
	return fn(req)
}

// FetchCalls returns how many times FetchDocuments ran.
func (g *Gateway) FetchCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCalls
}

// Generated returns the extracted payloads sent for generation.
func (g *Gateway) Generated() []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]map[string]any, len(g.generated))
	copy(out, g.generated)
	return out
}

// Asked returns the questions received, in order.
func (g *Gateway) Asked() []domain.AskRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.AskRequest, len(g.asked))
	copy(out, g.asked)
	return out
}

// Flat demo rates. The old regime allows deductions, the new one does not.
const (
	oldRegimeRate = 0.20
	newRegimeRate = 0.18
)

// EstimateReport derives a rough report from extracted fields. Keys
// containing "income", "salary" or "gross" add to income, keys containing
// "deduction" or "80c" reduce taxable income under the old regime, and keys
// containing "tds" or "tax_paid" count as tax already paid.
func EstimateReport(extracted map[string]any) (*domain.AIReport, error) {
	var income, deductions, paid float64
	for key, value := range extracted {
		n, ok := number(value)
		if !ok {
			continue
		}
		k := strings.ToLower(key)
		switch {
		case strings.Contains(k, "tds"), strings.Contains(k, "tax_paid"):
			paid += n
		case strings.Contains(k, "deduction"), strings.Contains(k, "80c"):
			deductions += n
		case strings.Contains(k, "income"), strings.Contains(k, "salary"), strings.Contains(k, "gross"):
			income += n
		}
	}

	oldTax := round(math.Max(income-deductions, 0) * oldRegimeRate)
	newTax := round(income * newRegimeRate)

	insights := "Investments under section 80C lower your tax only under the old regime."
	if newTax < oldTax {
		insights = "The new regime costs less for this income; extra deductions would be needed to favour the old one."
	}

	return &domain.AIReport{
		TotalIncome:        income,
		TotalTaxOld:        oldTax,
		TotalTaxNew:        newTax,
		TaxDueOrRefundOld:  round(oldTax - paid),
		TaxDueOrRefundNew:  round(newTax - paid),
		InvestmentInsights: insights,
	}, nil
}

// CannedAnswer replies using the report the question carries.
func CannedAnswer(req domain.AskRequest) (string, error) {
	if req.Report == nil {
		return "I need a generated report before I can answer.", nil
	}
	best := "new"
	if req.Report.TotalTaxOld < req.Report.TotalTaxNew {
		best = "old"
	}
	return fmt.Sprintf("Based on your report, the %s regime results in lower tax: %s.",
		best, domain.FormatValue(math.Min(req.Report.TotalTaxOld, req.Report.TotalTaxNew))), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}
