// Package embed attaches the generated CII XML to the original PDF.
// The attachment is always named factur-x.xml, the filename readers
// of the hybrid format look for.
package embed

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/facturx-studio/internal/model"
)

// AttachmentName is the fixed payload filename inside the container
const AttachmentName = "factur-x.xml"

// Embedder packages XML invoices into PDF containers
type Embedder struct {
	conf *pdfmodel.Configuration
}

// NewEmbedder creates a new embedder
func NewEmbedder() *Embedder {
	return &Embedder{conf: pdfmodel.NewDefaultConfiguration()}
}

// Embed returns a new PDF with xmlData attached as factur-x.xml.
// Bytes in, bytes out; the inputs are never modified.
func (e *Embedder) Embed(pdfData, xmlData []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "facturx-embed-")
	if err != nil {
		return nil, model.NewEmbedError("cannot create temp dir", err)
	}
	defer os.RemoveAll(tmpDir)

	// pdfcpu names attachments after the source file
	xmlPath := filepath.Join(tmpDir, AttachmentName)
	if err := os.WriteFile(xmlPath, xmlData, 0600); err != nil {
		return nil, model.NewEmbedError("cannot write XML payload", err)
	}

	var out bytes.Buffer
	if err := api.AddAttachments(bytes.NewReader(pdfData), &out, []string{xmlPath}, false, e.conf); err != nil {
		return nil, model.NewEmbedError("cannot attach XML to PDF", err)
	}

	return out.Bytes(), nil
}
