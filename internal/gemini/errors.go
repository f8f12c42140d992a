package gemini

import (
	"errors"
	"strings"
)

// Kind classifies a generation fault for user messaging. The orchestration
// layer shows a specific message per kind; it never retries here.
type Kind int

const (
	// KindOther covers any fault without a more specific classification.
	KindOther Kind = iota
	// KindContextTooLarge means the prompt (usually a large resume) blew
	// the model's context or token budget.
	KindContextTooLarge
	// KindAuth means the API key is missing, invalid or unauthorized.
	KindAuth
	// KindMalformed means the model answered but no usable JSON question
	// array could be extracted from the response.
	KindMalformed
)

// GenerationError is a classified fault from the generation path.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Classify wraps err with the fault kind inferred from its message. Provider
// errors do not expose stable types for these conditions, so matching on the
// message is the contract here, same as the taxonomy it feeds.
func Classify(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "context") || strings.Contains(msg, "token"):
		return &GenerationError{Kind: KindContextTooLarge, Err: err}
	case strings.Contains(msg, "api key") || strings.Contains(msg, "auth") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission"):
		return &GenerationError{Kind: KindAuth, Err: err}
	default:
		return &GenerationError{Kind: KindOther, Err: err}
	}
}
