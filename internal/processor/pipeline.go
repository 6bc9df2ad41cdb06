// Package processor orchestrates the Factur-X flow: extract fields
// from the source PDF, coerce them, build the profile XML, run the
// external schema check, and embed the payload back into the PDF.
// The pipeline holds no mutable state between calls and is safe for
// concurrent per-invoice use.
package processor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/facturx-studio/internal/cii"
	"github.com/rezonia/facturx-studio/internal/embed"
	"github.com/rezonia/facturx-studio/internal/extract"
	"github.com/rezonia/facturx-studio/internal/fields"
	"github.com/rezonia/facturx-studio/internal/logger"
	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/validator"
)

// Method identifies how invoice fields were obtained
type Method string

const (
	MethodText   Method = "text"
	MethodDeep   Method = "deep"
	MethodManual Method = "manual"
)

// Result is the outcome of one processing call
type Result struct {
	XML      []byte
	PDF      []byte
	Fields   model.Fields
	Invoice  *fields.Invoice
	Profile  model.Profile
	Method   Method
	Warnings []string
	Error    error
}

// Request describes one PDF to process. Operator carries the
// authenticated tenant's seller registration identity (SIRET/VAT);
// the seller name still comes from the document.
type Request struct {
	PDF      []byte
	Profile  model.Profile
	Operator model.Party
	Lines    []model.Line // BASIC profile line items, optional
	DeepScan bool
	Quota    *Quota
}

// Pipeline wires the extract/build/validate/embed collaborators
type Pipeline struct {
	text     *extract.TextExtractor
	deep     *extract.DeepExtractor
	check    *validator.Validator
	embedder *embed.Embedder
	minimum  *cii.MinimumBuilder
	basic    *cii.BasicBuilder
	strict   bool
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithDeepExtractor enables LLM deep scanning
func WithDeepExtractor(e *extract.DeepExtractor) Option {
	return func(p *Pipeline) {
		p.deep = e
	}
}

// WithValidator sets the external schema validator
func WithValidator(v *validator.Validator) Option {
	return func(p *Pipeline) {
		p.check = v
	}
}

// WithStrictValidation makes a missing validator tool an error
// instead of a warning
func WithStrictValidation() Option {
	return func(p *Pipeline) {
		p.strict = true
	}
}

// WithClock overrides the date-defaulting clock
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a pipeline. Without options it performs text
// scanning only and skips schema validation with a warning.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		text:     extract.NewTextExtractor(),
		embedder: embed.NewEmbedder(),
		minimum:  cii.NewMinimumBuilder(),
		basic:    cii.NewBasicBuilder(),
		now:      time.Now,
		log:      logger.WithComponent("processor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan extracts fields from a PDF without generating anything
func (p *Pipeline) Scan(ctx context.Context, pdfData []byte, deepScan bool) (model.Fields, Method, error) {
	if deepScan && p.deep != nil {
		f, err := p.deep.Extract(ctx, pdfData)
		return f, MethodDeep, err
	}
	f, err := p.text.Extract(ctx, pdfData)
	return f, MethodText, err
}

// ProcessPDF runs the full flow for one invoice PDF
func (p *Pipeline) ProcessPDF(ctx context.Context, req Request) *Result {
	result := &Result{Profile: req.Profile}

	if err := req.Quota.Consume(); err != nil {
		result.Error = err
		return result
	}

	extracted, method, err := p.Scan(ctx, req.PDF, req.DeepScan)
	if err != nil {
		result.Error = err
		return result
	}
	result.Fields = extracted
	result.Method = method

	coerced := fields.Coerce(extracted, p.now())
	result.Invoice = &coerced
	result.Warnings = append(result.Warnings, coerced.Warnings...)

	seller := coerced.Seller
	seller.LegalID = req.Operator.LegalID
	seller.VATID = req.Operator.VATID
	if seller.Name == "" {
		seller.Name = req.Operator.Name
	}

	xmlData, err := p.build(req.Profile, coerced, seller, req.Lines)
	if err != nil {
		result.Error = err
		return result
	}
	result.XML = xmlData

	if req.Profile == model.ProfileBasic && len(req.Lines) == 0 {
		result.Warnings = append(result.Warnings, "no line items supplied, emitted placeholder line")
	}

	if err := p.validate(ctx, req.Profile, xmlData, result); err != nil {
		result.Error = err
		return result
	}

	out, err := p.embedder.Embed(req.PDF, xmlData)
	if err != nil {
		result.Error = err
		return result
	}
	result.PDF = out

	p.log.Debug().
		Str("profile", string(req.Profile)).
		Str("method", string(method)).
		Str("invoice", coerced.Header.InvoiceNumber).
		Msg("invoice processed")

	return result
}

// GenerateXML builds profile XML from already-typed inputs (manual
// entry), validating when a checker is configured
func (p *Pipeline) GenerateXML(ctx context.Context, profile model.Profile, inv fields.Invoice, seller model.Party, lines []model.Line) *Result {
	result := &Result{Profile: profile, Method: MethodManual, Invoice: &inv}

	xmlData, err := p.build(profile, inv, seller, lines)
	if err != nil {
		result.Error = err
		return result
	}
	result.XML = xmlData

	if err := p.validate(ctx, profile, xmlData, result); err != nil {
		result.Error = err
	}
	return result
}

// Validate runs the external checker on caller-supplied XML
func (p *Pipeline) Validate(ctx context.Context, profile model.Profile, xmlData []byte) error {
	if p.check == nil || !p.check.Available() {
		return model.NewValidationError(profile, "no validator tool available")
	}
	return p.check.Validate(ctx, profile, xmlData)
}

func (p *Pipeline) build(profile model.Profile, inv fields.Invoice, seller model.Party, lines []model.Line) ([]byte, error) {
	switch profile {
	case model.ProfileBasic:
		return p.basic.Build(inv.Header, seller, inv.Buyer, lines, inv.VATRate)
	default:
		return p.minimum.Build(inv.Header, seller, inv.Buyer, inv.NetTotal, inv.VATRate)
	}
}

func (p *Pipeline) validate(ctx context.Context, profile model.Profile, xmlData []byte, result *Result) error {
	if p.check == nil || !p.check.Available() {
		if p.strict {
			return model.NewValidationError(profile, "no validator tool available")
		}
		result.Warnings = append(result.Warnings, "validation skipped: no validator tool available")
		return nil
	}
	return p.check.Validate(ctx, profile, xmlData)
}
