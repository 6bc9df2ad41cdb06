// Package extract produces best-effort invoice field maps from PDF
// bytes. Two extractors exist: a fast regex scan over the PDF text
// and an LLM-backed deep scan. Both return sparse, untrusted string
// maps; callers coerce and default before use.
package extract

import (
	"context"

	"github.com/rezonia/facturx-studio/internal/model"
)

// Extraction methods
const (
	MethodText = "text"
	MethodDeep = "deep"
)

// Extractor produces a field map from PDF bytes. A partially filled
// or empty map is a valid result; errors are reserved for failures
// of the extraction mechanism itself.
type Extractor interface {
	Extract(ctx context.Context, pdfData []byte) (model.Fields, error)
	Method() string
}
