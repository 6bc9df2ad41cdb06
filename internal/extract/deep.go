package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rezonia/facturx-studio/internal/llm"
	"github.com/rezonia/facturx-studio/internal/model"
)

// DeepExtractor asks an OpenAI-compatible model to pull invoice
// fields out of the recovered PDF text. Used when the regex scan
// comes back too sparse to generate from.
type DeepExtractor struct {
	client *llm.Client
	model  string
}

// DeepOption configures the deep extractor
type DeepOption func(*DeepExtractor)

// WithModel overrides the analysis model
func WithModel(m string) DeepOption {
	return func(e *DeepExtractor) {
		e.model = m
	}
}

// NewDeepExtractor creates an LLM-backed extractor
func NewDeepExtractor(client *llm.Client, opts ...DeepOption) *DeepExtractor {
	e := &DeepExtractor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Method returns the extraction method identifier
func (e *DeepExtractor) Method() string {
	return MethodDeep
}

// deepResponse mirrors the JSON schema requested in the prompt
type deepResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	SellerName    string `json:"seller_name"`
	BuyerName     string `json:"buyer_name"`
	TotalHT       string `json:"total_ht"`
	TotalTTC      string `json:"total_ttc"`
	Currency      string `json:"currency"`
}

// Extract recovers the PDF text and asks the model for the field map
func (e *DeepExtractor) Extract(ctx context.Context, pdfData []byte) (model.Fields, error) {
	text, err := pageText(pdfData)
	if err != nil {
		return nil, model.NewExtractionError(MethodDeep, "cannot read PDF", err)
	}
	if text == "" {
		return nil, model.NewExtractionError(MethodDeep, "no recoverable text in PDF", nil)
	}

	userPrompt := fmt.Sprintf(UserPromptFieldExtraction, text)
	response, err := e.client.ChatText(ctx, e.model, SystemPromptFieldExtractor, userPrompt)
	if err != nil {
		return nil, model.NewExtractionError(MethodDeep, "document analysis call failed", err)
	}

	var parsed deepResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &parsed); err != nil {
		return nil, model.NewExtractionError(MethodDeep, "analysis response is not valid JSON", err)
	}

	out := model.Fields{}
	put := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	put(model.FieldInvoiceNumber, parsed.InvoiceNumber)
	put(model.FieldInvoiceDate, parsed.InvoiceDate)
	put(model.FieldSellerName, parsed.SellerName)
	put(model.FieldBuyerName, parsed.BuyerName)
	put(model.FieldTotalHT, parsed.TotalHT)
	put(model.FieldTotalTTC, parsed.TotalTTC)
	put(model.FieldCurrency, parsed.Currency)

	return out, nil
}
