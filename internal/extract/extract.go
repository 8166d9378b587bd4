package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction indicates the uploaded document could not be read as a PDF.
// No partial text is ever returned alongside it.
var ErrExtraction = errors.New("could not extract text from document")

// Text converts PDF bytes into plain text using github.com/ledongthuc/pdf.
// Extraction is synchronous and idempotent for the same bytes.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return buf.String(), nil
}
