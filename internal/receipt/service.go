package receipt

import (
	"context"
	"errors"
	"log/slog"
)

// ErrExtraction marks adapter failures and unparseable output. Callers
// degrade to an empty editable item list; the error is never fatal.
var ErrExtraction = errors.New("receipt extraction failed")

// TextExtractor recognizes text in a receipt image. The real recognizer
// lives on the device; the service only depends on this boundary.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Formatter reformats raw recognized text into one-item-per-line form.
// GroqClient implements it.
type Formatter interface {
	Format(ctx context.Context, rawText string) (string, error)
}

// Service runs the receipt pipeline: extract text, optionally reformat it
// through the language model, and parse the result into items.
type Service struct {
	extractor TextExtractor
	formatter Formatter
	logger    *slog.Logger
}

// NewService creates a new receipt service. Either adapter may be nil, in
// which case the corresponding step is skipped.
func NewService(extractor TextExtractor, formatter Formatter, logger *slog.Logger) *Service {
	return &Service{extractor: extractor, formatter: formatter, logger: logger}
}

// ParseImage recognizes text in the image and parses it. Extraction
// failures return ErrExtraction alongside an empty result so the caller
// can fall back to a blank form.
func (s *Service) ParseImage(ctx context.Context, image []byte) (Parsed, error) {
	if s.extractor == nil {
		return Parsed{Items: []Item{}}, ErrExtraction
	}

	text, err := s.extractor.ExtractText(ctx, image)
	if err != nil {
		s.logger.Warn("text extraction failed", "err", err)
		return Parsed{Items: []Item{}}, ErrExtraction
	}
	return s.ParseText(ctx, text), nil
}

// ParseText parses raw recognized text directly, first with the line
// patterns and, when that yields nothing and a formatter is configured,
// through the model. Formatter output is validated before it is accepted.
func (s *Service) ParseText(ctx context.Context, text string) Parsed {
	parsed := Parse(text)
	if len(parsed.Items) > 0 || s.formatter == nil {
		parsed.Items = ValidItems(parsed.Items)
		return parsed
	}

	formatted, err := s.formatter.Format(ctx, text)
	if err != nil {
		s.logger.Warn("formatter unavailable, returning direct parse", "err", err)
		return parsed
	}

	reparsed := Parse(formatted)
	reparsed.Items = ValidItems(reparsed.Items)
	return reparsed
}
