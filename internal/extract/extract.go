// Package extract abstracts the text extraction collaborator. The version
// store never parses the document format itself; it hands the uploaded bytes
// to an Extractor and persists whatever text comes back. Extraction failure
// rejects the upload before anything is persisted.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Extractor derives plain text from an uploaded document's binary content.
// Empty output is valid (e.g. a scanned document with no text layer).
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// Pdftotext extracts text by piping the document through poppler's
// pdftotext binary. Stateless, safe for concurrent use.
type Pdftotext struct {
	// Bin is the pdftotext executable; defaults to "pdftotext" on PATH.
	Bin string
}

// NewPdftotext returns a poppler-backed Extractor. bin may be empty to use
// the default lookup on PATH.
func NewPdftotext(bin string) *Pdftotext {
	if bin == "" {
		bin = "pdftotext"
	}
	return &Pdftotext{Bin: bin}
}

var _ Extractor = (*Pdftotext)(nil)

// Extract runs "pdftotext - -", feeding the document on stdin and reading
// the extracted text from stdout.
func (p *Pdftotext) Extract(ctx context.Context, r io.Reader) (string, error) {
	cmd := exec.CommandContext(ctx, p.Bin, "-", "-")
	cmd.Stdin = r

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if errBuf.Len() > 0 {
			return "", fmt.Errorf("pdftotext: %s: %w", bytes.TrimSpace(errBuf.Bytes()), err)
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return out.String(), nil
}
