// Package facturx provides the public API for generating Factur-X
// hybrid invoice PDFs.
//
// Example usage:
//
//	builder := facturx.NewMinimumBuilder()
//	xml, err := builder.Build(header, seller, buyer, net, rate)
//	if err != nil {
//	    log.Fatal(err)
//	}
package facturx

import (
	"github.com/rezonia/facturx-studio/internal/cii"
	"github.com/rezonia/facturx-studio/internal/embed"
	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/processor"
	"github.com/rezonia/facturx-studio/internal/validator"
)

// Re-export core types for public API
type (
	Header  = model.Header
	Party   = model.Party
	Line    = model.Line
	Fields  = model.Fields
	Profile = model.Profile

	MinimumBuilder = cii.MinimumBuilder
	BasicBuilder   = cii.BasicBuilder
	Embedder       = embed.Embedder

	Pipeline = processor.Pipeline
	Request  = processor.Request
	Result   = processor.Result
	Quota    = processor.Quota
	Option   = processor.Option
)

// Re-export profile constants
const (
	ProfileMinimum = model.ProfileMinimum
	ProfileBasic   = model.ProfileBasic
)

// Re-export error types
type (
	CoercionError   = model.CoercionError
	ValidationError = model.ValidationError
	ExtractionError = model.ExtractionError
	EmbedError      = model.EmbedError
)

// NewMinimumBuilder creates a MINIMUM profile document builder
func NewMinimumBuilder() *MinimumBuilder {
	return cii.NewMinimumBuilder()
}

// NewBasicBuilder creates a BASIC profile document builder
func NewBasicBuilder() *BasicBuilder {
	return cii.NewBasicBuilder()
}

// NewEmbedder creates a PDF attachment embedder
func NewEmbedder() *Embedder {
	return embed.NewEmbedder()
}

// NewPipeline creates a processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	return processor.NewPipeline(opts...)
}

// NewQuota creates a per-request processing quota
func NewQuota(limit int) *Quota {
	return processor.NewQuota(limit)
}

// WithValidatorTool wires the schema validator, probing PATH when
// path is empty
func WithValidatorTool(path string) Option {
	var opts []validator.Option
	if path != "" {
		opts = append(opts, validator.WithTool(path))
	}
	return processor.WithValidator(validator.New(opts...))
}

// WithStrictValidation makes a missing validator tool an error
func WithStrictValidation() Option {
	return processor.WithStrictValidation()
}
