// Package tesseract recognizes text with the Tesseract OCR engine (cgo).
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer runs Tesseract on PNG images. A gosseract client is not safe
// for concurrent use, so each call gets its own.
type Recognizer struct {
	language string
}

// NewRecognizer creates a recognizer for a Tesseract language code such as "eng"
func NewRecognizer(language string) *Recognizer {
	if language == "" {
		language = "eng"
	}
	return &Recognizer{language: language}
}

// Recognize returns the text found in png
func (r *Recognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", fmt.Errorf("set language %q: %w", r.language, err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return text, nil
}
