package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

// ReportStream is a lazy, ordered, finite sequence of report text fragments.
// One logical reader pulls it to exhaustion; fragments are never skipped or
// reordered, and abandoning the stream is the only cancellation needed.
type ReportStream struct {
	next func() (*genai.GenerateContentResponse, error)
	done bool
}

// NewReportStream wraps a pull function in the stream contract.
func NewReportStream(next func() (*genai.GenerateContentResponse, error)) *ReportStream {
	return &ReportStream{next: next}
}

// GenerateReportStream starts a streamed report generation. The call itself
// cannot fail; a provider fault surfaces as the stream's final diagnostic
// fragment instead.
func (c *Client) GenerateReportStream(ctx context.Context, prompt string) *ReportStream {
	iter := c.report.GenerateContentStream(ctx, genai.Text(prompt))
	return NewReportStream(iter.Next)
}

// Next returns the next text fragment. ok is false once the stream is
// exhausted. A mid-stream failure yields exactly one diagnostic fragment and
// then exhaustion; it never propagates as an error past the consumer.
func (s *ReportStream) Next() (fragment string, ok bool) {
	if s.done {
		return "", false
	}

	for {
		resp, err := s.next()
		if err == iterator.Done {
			s.done = true
			return "", false
		}
		if err != nil {
			s.done = true
			return fmt.Sprintf("\n\nStreaming error: %v", err), true
		}

		var text strings.Builder
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
		if text.Len() == 0 {
			continue
		}
		return text.String(), true
	}
}
