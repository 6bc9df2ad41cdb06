// Package validator wraps the external Factur-X schema check. The
// generated XML is handed to the official facturx-xmlcheck tool (or a
// configured fallback command); pass/fail plus the tool's combined
// output is all this package reports. No XSD evaluation happens
// in-process.
package validator

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rezonia/facturx-studio/internal/model"
)

// DefaultTimeout bounds a single validator run
const DefaultTimeout = 30 * time.Second

// candidate validator binaries, in preference order
var candidates = []string{"facturx-xmlcheck"}

// Validator runs the external schema checker on generated XML
type Validator struct {
	toolPath  string
	available bool
	timeout   time.Duration
}

// Option configures the validator
type Option func(*Validator)

// WithTool forces a specific validator binary path
func WithTool(path string) Option {
	return func(v *Validator) {
		v.toolPath = path
		v.available = path != ""
	}
}

// WithTimeout overrides the per-run timeout
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.timeout = d
	}
}

// New creates a validator, probing PATH for a known checker binary
func New(opts ...Option) *Validator {
	v := &Validator{timeout: DefaultTimeout}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			v.toolPath = path
			v.available = true
			break
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Available reports whether a validator binary was found
func (v *Validator) Available() bool {
	return v.available
}

// Validate writes the XML to a temp file and runs the checker on it.
// A non-zero exit becomes a ValidationError carrying the tool's
// combined stdout/stderr text. Returns nil when the document passes.
func (v *Validator) Validate(ctx context.Context, profile model.Profile, xmlData []byte) error {
	if !v.available {
		return model.NewValidationError(profile, "no validator tool available")
	}

	tmpFile, err := os.CreateTemp("", "facturx-*.xml")
	if err != nil {
		return model.NewValidationError(profile, "cannot create temp file: "+err.Error())
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(xmlData); err != nil {
		tmpFile.Close()
		return model.NewValidationError(profile, "cannot write temp file: "+err.Error())
	}
	tmpFile.Close()

	runCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, v.toolPath, tmpFile.Name())

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Run(); err != nil {
		diagnostic := combined.String()
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		return model.NewValidationError(profile, diagnostic)
	}

	return nil
}
