package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var validate = validator.New()

// documentsResponse is the GET documents response format.
type documentsResponse struct {
	Data []documentPayload `json:"data" validate:"required,dive"`
}

// documentPayload is one extracted document. The backend stores documents
// in MongoDB, so the identifier usually arrives as "_id".
type documentPayload struct {
	MongoID      string          `json:"_id"`
	ID           string          `json:"id"`
	DocumentType string          `json:"documentType"`
	Extracted    map[string]any  `json:"extracted"`
	CreatedAt    json.RawMessage `json:"createdAt"`
}

func (p documentPayload) identifier() string {
	if p.MongoID != "" {
		return p.MongoID
	}
	return p.ID
}

// reportPayload is the report response format. Amounts are pointers so a
// missing field can be told apart from zero.
type reportPayload struct {
	TotalIncome        *amount         `json:"total_income" validate:"required"`
	TotalTaxOld        *amount         `json:"total_tax_old" validate:"required"`
	TotalTaxNew        *amount         `json:"total_tax_new" validate:"required"`
	TaxDueOrRefundOld  *amount         `json:"tax_due_or_refund_old" validate:"required"`
	TaxDueOrRefundNew  *amount         `json:"tax_due_or_refund_new" validate:"required"`
	InvestmentInsights json.RawMessage `json:"investment_insights"`
}

// amount is a report figure. Producers send either a JSON number or a
// numeric string such as "50000" or "1,20,000". It encodes as a number.
type amount float64

// UnmarshalJSON implements json.Unmarshaler. null never reaches it for a
// pointer field, so a null amount stays nil and fails validation.
func (a *amount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*a = amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a number or numeric string, got %s", data)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return fmt.Errorf("amount %q is not numeric", s)
	}
	*a = amount(f)
	return nil
}

func newAmount(f float64) *amount {
	a := amount(f)
	return &a
}

// chatRequest is the chat request format.
type chatRequest struct {
	Message  string         `json:"message"`
	TaxData  *reportPayload `json:"taxData"`
	UserData map[string]any `json:"userData"`
}

// chatResponse is the chat response format.
type chatResponse struct {
	Answer *string `json:"answer"`
}

// decodeDocuments converts a documents response body.
func decodeDocuments(body []byte) ([]domain.Document, error) {
	var resp documentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if err := validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	docs := make([]domain.Document, 0, len(resp.Data))
	for i, p := range resp.Data {
		id := p.identifier()
		if id == "" {
			return nil, fmt.Errorf("%w: document %d has no id", domain.ErrMalformedResponse, i)
		}
		docs = append(docs, domain.Document{
			ID:           id,
			DocumentType: p.DocumentType,
			Extracted:    p.Extracted,
			CreatedAt:    parseTime(p.CreatedAt),
		})
	}
	return docs, nil
}

// parseTime accepts an RFC 3339 string or epoch milliseconds. Anything
// else yields the zero time.
func parseTime(raw json.RawMessage) time.Time {
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// decodeReport converts a report response body.
func decodeReport(body []byte) (*domain.AIReport, error) {
	var p reportPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	insights, err := decodeInsights(p.InvestmentInsights)
	if err != nil {
		return nil, err
	}

	return &domain.AIReport{
		TotalIncome:        float64(*p.TotalIncome),
		TotalTaxOld:        float64(*p.TotalTaxOld),
		TotalTaxNew:        float64(*p.TotalTaxNew),
		TaxDueOrRefundOld:  float64(*p.TaxDueOrRefundOld),
		TaxDueOrRefundNew:  float64(*p.TaxDueOrRefundNew),
		InvestmentInsights: insights,
	}, nil
}

// decodeInsights accepts a string, a list of strings (joined by newlines)
// or any other JSON value (kept as compact JSON). Null or absent is "".
func decodeInsights(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err == nil {
		return strings.Join(list, "\n"), nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return "", fmt.Errorf("%w: investment_insights: %w", domain.ErrMalformedResponse, err)
	}
	return compact.String(), nil
}

// encodeReport converts a report for the chat request. nil stays nil.
func encodeReport(r *domain.AIReport) *reportPayload {
	if r == nil {
		return nil
	}
	insights, _ := json.Marshal(r.InvestmentInsights)
	return &reportPayload{
		TotalIncome:        newAmount(r.TotalIncome),
		TotalTaxOld:        newAmount(r.TotalTaxOld),
		TotalTaxNew:        newAmount(r.TotalTaxNew),
		TaxDueOrRefundOld:  newAmount(r.TaxDueOrRefundOld),
		TaxDueOrRefundNew:  newAmount(r.TaxDueOrRefundNew),
		InvestmentInsights: insights,
	}
}

// decodeAnswer extracts the answer text. A missing or null answer is "".
func decodeAnswer(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if resp.Answer == nil {
		return "", nil
	}
	return *resp.Answer, nil
}
