// Package resume extracts plain text from an uploaded PDF resume so it can
// be folded into the generation prompt as context.
package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxChars caps the extracted text so a large resume cannot blow the model's
// context window.
const MaxChars = 8000

// truncationMarker is appended whenever the extracted text was cut off.
const truncationMarker = "\n[...truncated for context limit]"

// ExtractText pulls the plain text out of a PDF. Empty input yields "".
// Text beyond MaxChars is dropped and the truncation marker appended; the
// head of a resume carries the most useful information.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	return Truncate(strings.TrimSpace(buf.String())), nil
}

// Truncate enforces the character cap on already-extracted text.
func Truncate(text string) string {
	if len(text) <= MaxChars {
		return text
	}
	return text[:MaxChars] + truncationMarker
}
