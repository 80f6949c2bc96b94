// Package ocr measures how legible a rendered page is by recognizing the
// text on its screenshot and comparing it with the text in its DOM.
package ocr

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/anime-shed/page-inspector-go/pkg/models"
	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"
)

// Recognizer extracts text from a PNG image
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// Checker compares recognized screenshot text with a reference text
type Checker struct {
	recognizer Recognizer
}

// NewChecker creates a checker backed by recognizer
func NewChecker(recognizer Recognizer) *Checker {
	return &Checker{recognizer: recognizer}
}

// Check recognizes the screenshot and scores it against reference
func (c *Checker) Check(ctx context.Context, screenshot []byte, reference string) (*models.Legibility, error) {
	extracted, err := c.recognizer.Recognize(ctx, screenshot)
	if err != nil {
		return nil, fmt.Errorf("recognize screenshot: %w", err)
	}
	result := Compare(reference, extracted)
	return &result, nil
}

// Words lowercases s and splits it into words, dropping punctuation
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Compare returns the word and character error rates of extracted against
// reference, after both are reduced to lowercase words. An empty reference
// scores 0 when nothing was extracted and 1 otherwise.
func Compare(reference, extracted string) models.Legibility {
	ref := Words(reference)
	got := Words(extracted)
	result := models.Legibility{ReferenceWords: len(ref), ExtractedWords: len(got)}

	if len(ref) == 0 {
		if len(got) > 0 {
			result.WER, result.CER = 1, 1
		}
		return result
	}

	result.WER, _ = wer.WER(ref, got)

	refText := strings.Join(ref, " ")
	gotText := strings.Join(got, " ")
	result.CER = float64(levenshtein.Distance(refText, gotText)) / float64(len([]rune(refText)))
	return result
}
